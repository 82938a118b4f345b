package olist

import (
	"github.com/goliatone/go-olist/internal/di"
	"github.com/goliatone/go-olist/internal/markdown"
	"github.com/goliatone/go-olist/pkg/interfaces"
)

// MarkdownService exports the markdown file service contract.
type MarkdownService = interfaces.MarkdownService

// Transformer exports the single-document transform contract.
type Transformer = interfaces.MarkdownTransformer

// Option customises module wiring.
type Option = di.Option

var (
	// WithLoggerProvider overrides the provider selected from Config.Logging.
	WithLoggerProvider = di.WithLoggerProvider
	// WithLogWriter redirects console log output.
	WithLogWriter = di.WithLogWriter
	// WithMarkdownService replaces the filesystem-backed markdown service.
	WithMarkdownService = di.WithMarkdownService
)

// Module represents the top level olist runtime façade.
type Module struct {
	container *di.Container
}

// New constructs an olist module using the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Markdown returns the configured markdown service.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// Transformer returns the transformer built from Config.Markdown.
func (m *Module) Transformer() Transformer {
	return m.container.Transformer()
}

// LoggerProvider returns the active logger provider, or nil when logging is disabled.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Close releases command subscriptions held by the module.
func (m *Module) Close() {
	m.container.Close()
}

// Transform rewrites a markdown document: bullet lists between <!-- ol -->
// and <!-- /ol --> become ordered lists and (cur±N) references inside them
// resolve to item numbers. It uses plain CommonMark with no front matter
// handling and never fails.
func Transform(input string) string {
	return markdown.Transform(input)
}
