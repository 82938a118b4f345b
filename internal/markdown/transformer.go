package markdown

import (
	"github.com/goliatone/go-olist/internal/logging"
	"github.com/goliatone/go-olist/internal/render"
	"github.com/goliatone/go-olist/internal/transform"
	"github.com/goliatone/go-olist/pkg/interfaces"
)

// Transformer runs parse, list conversion and printing over one document.
// It keeps no per-document state and is safe for concurrent use.
type Transformer struct {
	parser      *GoldmarkParser
	frontMatter bool
	logger      interfaces.Logger
}

var _ interfaces.MarkdownTransformer = (*Transformer)(nil)

// TransformerOption configures a Transformer.
type TransformerOption func(*Transformer)

// WithLogger injects the logger used for per-document diagnostics.
func WithLogger(logger interfaces.Logger) TransformerOption {
	return func(t *Transformer) {
		if logger == nil {
			t.logger = logging.NoOp()
			return
		}
		t.logger = logger
	}
}

// NewTransformer builds a transformer for the given parse options.
func NewTransformer(opts interfaces.ParseOptions, options ...TransformerOption) *Transformer {
	t := &Transformer{
		parser:      NewGoldmarkParser(opts),
		frontMatter: opts.FrontMatter,
		logger:      logging.NoOp(),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

var defaultTransformer = NewTransformer(interfaces.ParseOptions{})

// Transform rewrites input with plain CommonMark parsing and no front matter
// handling.
func Transform(input string) string {
	return string(defaultTransformer.Transform([]byte(input)).Output)
}

// Transform satisfies interfaces.MarkdownTransformer.
func (t *Transformer) Transform(source []byte) interfaces.TransformOutput {
	var (
		meta interfaces.FrontMatter
		raw  []byte
		body = source
	)
	if t.frontMatter {
		fm, block, rest, err := ParseFrontMatter(source)
		if err != nil {
			t.logger.Warn("markdown.transform.frontmatter_invalid", "error", err)
		} else {
			meta, raw, body = fm, block, rest
		}
	}

	if meta.Disabled() {
		t.logger.Debug("markdown.transform.skipped", "reason", "frontmatter")
		return interfaces.TransformOutput{
			Output:      append([]byte(nil), source...),
			FrontMatter: meta,
			Skipped:     true,
		}
	}

	doc := t.parser.Parse(body)
	stats := transform.Apply(doc)
	rendered := []byte(render.Render(doc))

	if stats.UnterminatedRegions > 0 {
		t.logger.Warn("markdown.transform.unterminated_region",
			"regions", stats.UnterminatedRegions,
			"start_markers", stats.StartMarkers,
			"end_markers", stats.EndMarkers,
		)
	}
	t.logger.Debug("markdown.transform.completed",
		"lists_converted", stats.ListsConverted,
		"items_numbered", stats.ItemsNumbered,
		"references_resolved", stats.ReferencesResolved,
		"nodes", doc.Len(),
	)

	return interfaces.TransformOutput{
		Output:      joinFrontMatter(raw, body, rendered),
		FrontMatter: meta,
		Stats:       toInterfaceStats(stats),
	}
}

func toInterfaceStats(stats transform.Stats) interfaces.TransformStats {
	return interfaces.TransformStats{
		StartMarkers:        stats.StartMarkers,
		EndMarkers:          stats.EndMarkers,
		ListsConverted:      stats.ListsConverted,
		ItemsNumbered:       stats.ItemsNumbered,
		ReferencesResolved:  stats.ReferencesResolved,
		UnterminatedRegions: stats.UnterminatedRegions,
	}
}
