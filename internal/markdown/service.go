package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-olist/internal/logging"
	"github.com/goliatone/go-olist/pkg/interfaces"
)

// Config controls how the Markdown service discovers, parses and writes files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// Service implements interfaces.MarkdownService for filesystem-backed documents.
type Service struct {
	cfg         Config
	transformer interfaces.MarkdownTransformer
	loader      *Loader
	logger      interfaces.Logger
	writeFile   func(name string, data []byte, perm fs.FileMode) error
}

var _ interfaces.MarkdownService = (*Service)(nil)

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used for per-file diagnostics.
func WithServiceLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWriteFunc replaces os.WriteFile for write-back.
func WithWriteFunc(fn func(name string, data []byte, perm fs.FileMode) error) ServiceOption {
	return func(s *Service) {
		if fn != nil {
			s.writeFile = fn
		}
	}
}

// NewService constructs a Markdown service rooted at cfg.BasePath. When
// transformer is nil, a Transformer built from cfg.Parser is used.
func NewService(cfg Config, transformer interfaces.MarkdownTransformer, opts ...ServiceOption) (*Service, error) {
	if strings.TrimSpace(cfg.BasePath) == "" {
		cfg.BasePath = "."
	}
	base, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("markdown service: resolve base path %s: %w", cfg.BasePath, err)
	}
	cfg.BasePath = base
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		cfg:       cfg,
		logger:    logging.NoOp(),
		writeFile: os.WriteFile,
	}
	for _, opt := range opts {
		opt(svc)
	}

	if transformer == nil {
		transformer = NewTransformer(cfg.Parser, WithLogger(svc.logger))
	}
	svc.transformer = transformer
	svc.loader = NewLoader(filesystem, LoaderConfig{
		BasePath:    cfg.BasePath,
		Pattern:     cfg.Pattern,
		Recursive:   cfg.Recursive,
		FrontMatter: cfg.Parser.FrontMatter,
	})
	return svc, nil
}

// Load reads a single Markdown document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, _ interfaces.LoadOptions) (*interfaces.Document, error) {
	return s.loader.LoadFile(ctx, s.normalisePath(path))
}

// LoadDirectory reads every Markdown document within the supplied directory.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	return s.loader.LoadDirectory(ctx, s.normalisePath(dir), opts)
}

// TransformBytes rewrites an in-memory document.
func (s *Service) TransformBytes(ctx context.Context, source []byte) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.transformer.Transform(source).Output, nil
}

// TransformDocument fills doc.Output and reports whether it differs from the
// source. Documents where no list was converted are never reported as changed.
func (s *Service) TransformDocument(ctx context.Context, doc *interfaces.Document) (*interfaces.TransformResult, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	out := s.transformer.Transform(doc.Source)
	doc.Output = out.Output
	if out.FrontMatter.Raw != nil {
		doc.FrontMatter = out.FrontMatter
	}

	sourceSum := doc.Checksum
	if len(sourceSum) == 0 {
		sourceSum = checksum(doc.Source)
	}

	// Rendering is lossy, so only a converted list makes a document eligible
	// for write-back.
	converted := out.Stats.ListsConverted > 0

	result := &interfaces.TransformResult{
		FilePath: doc.FilePath,
		Output:   doc.Output,
		Changed:  converted && !bytes.Equal(sourceSum, checksum(out.Output)),
		Skipped:  out.Skipped,
		Stats:    out.Stats,
	}

	logging.WithMarkdownContext(s.logger, doc.FilePath, "transform").Debug("markdown.document.transformed",
		"changed", result.Changed,
		"skipped", result.Skipped,
		"lists_converted", result.Stats.ListsConverted,
	)
	return result, nil
}

// TransformFile loads, transforms and optionally writes back a single file.
func (s *Service) TransformFile(ctx context.Context, path string, opts interfaces.WriteOptions) (*interfaces.TransformResult, error) {
	doc, err := s.Load(ctx, path, interfaces.LoadOptions{})
	if err != nil {
		return nil, err
	}
	result, err := s.TransformDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := s.writeBack(doc, result, opts); err != nil {
		return result, err
	}
	return result, nil
}

// TransformDirectory transforms every discovered document. Write failures are
// collected per file so one bad file does not abort the batch.
func (s *Service) TransformDirectory(ctx context.Context, dir string, opts interfaces.DirectoryOptions) (*interfaces.DirectoryResult, error) {
	docs, err := s.LoadDirectory(ctx, dir, opts.LoadOptions)
	if err != nil {
		return nil, err
	}

	summary := &interfaces.DirectoryResult{
		Results: make([]interfaces.TransformResult, 0, len(docs)),
	}
	for _, doc := range docs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}

		result, err := s.TransformDocument(ctx, doc)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Errorf("markdown transform %s: %w", doc.FilePath, err))
			continue
		}
		if err := s.writeBack(doc, result, opts.WriteOptions); err != nil {
			summary.Errors = append(summary.Errors, err)
		}

		summary.Results = append(summary.Results, *result)
		if result.Changed {
			summary.Changed++
		}
		if result.Written {
			summary.Written++
		}
		if result.Skipped {
			summary.Skipped++
		}
	}

	s.logger.Info("markdown.directory.transformed",
		"directory", dir,
		"documents", len(docs),
		"changed", summary.Changed,
		"written", summary.Written,
		"errors", len(summary.Errors),
	)
	return summary, nil
}

func (s *Service) writeBack(doc *interfaces.Document, result *interfaces.TransformResult, opts interfaces.WriteOptions) error {
	if !opts.Write || opts.DryRun || !result.Changed {
		return nil
	}

	target := filepath.Join(s.cfg.BasePath, filepath.FromSlash(doc.FilePath))
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}
	if err := s.writeFile(target, doc.Output, perm); err != nil {
		return fmt.Errorf("markdown service: write %s: %w", doc.FilePath, err)
	}

	result.Written = true
	logging.WithMarkdownContext(s.logger, doc.FilePath, "write").Info("markdown.document.written",
		"bytes", len(doc.Output),
	)
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown service: base path %s is not a directory", basePath)
	}
	return os.DirFS(basePath), nil
}
