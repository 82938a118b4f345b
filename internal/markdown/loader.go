package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-olist/pkg/interfaces"
)

const defaultPattern = "*.md"

// LoaderConfig configures how Markdown files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where Markdown documents live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// FrontMatter decodes leading metadata into Document.FrontMatter.
	FrontMatter bool
}

// Loader turns filesystem paths into Markdown documents with metadata.
type Loader struct {
	fs          fs.FS
	basePath    string
	pattern     string
	recursive   bool
	frontMatter bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = defaultPattern
	}

	return &Loader{
		fs:          filesystem,
		basePath:    filepath.Clean(cfg.BasePath),
		pattern:     pattern,
		recursive:   cfg.Recursive,
		frontMatter: cfg.FrontMatter,
	}
}

// LoadFile reads a single Markdown document. Invalid front matter is not an
// error here; the transformer reports it when the document is processed.
func (l *Loader) LoadFile(ctx context.Context, path string) (*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	doc := &interfaces.Document{
		FilePath:     rel,
		Source:       data,
		LastModified: info.ModTime(),
		Checksum:     checksum(data),
	}
	if l.frontMatter {
		if meta, _, _, err := ParseFrontMatter(data); err == nil {
			doc.FrontMatter = meta
		}
	}
	return doc, nil
}

// LoadDirectory discovers Markdown files under dir, sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.ToSlash(filepath.Clean(root))

	var docs []*interfaces.Document

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if !l.matchesPattern(path, opts.Pattern) {
			return nil
		}

		doc, err := l.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})

	return docs, nil
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// Without recursion only the root directory is walked.
	return filepath.Clean(root) == filepath.Clean(current)
}

func (l *Loader) matchesPattern(path string, override string) bool {
	pattern := override
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, "**") {
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	target := filepath.Base(path)
	if strings.Contains(pattern, "/") {
		target = path
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" || l.basePath == "." {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", path, err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("markdown loader: %s is outside base path %s", path, l.basePath)
	}
	return rel, nil
}

func checksum(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}
