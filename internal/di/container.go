package di

import (
	"fmt"
	"io"

	"github.com/goliatone/go-olist/internal/commands"
	markdowncmd "github.com/goliatone/go-olist/internal/commands/markdown"
	"github.com/goliatone/go-olist/internal/logging"
	"github.com/goliatone/go-olist/internal/logging/console"
	"github.com/goliatone/go-olist/internal/logging/gologger"
	"github.com/goliatone/go-olist/internal/markdown"
	"github.com/goliatone/go-olist/internal/runtimeconfig"
	"github.com/goliatone/go-olist/pkg/interfaces"
)

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogWriter redirects the console provider. It has no effect on go-logger.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.logWriter = w
		}
	}
}

// WithMarkdownService replaces the filesystem-backed markdown service.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		if svc != nil {
			c.markdownSvc = svc
		}
	}
}

// WithCommandRetries sets how many times the dispatcher retries a failed command.
func WithCommandRetries(retries int) Option {
	return func(c *Container) {
		c.retries = max(retries, 0)
	}
}

// Container wires configuration, logging, the markdown service and the
// command layer.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	transformer    *markdown.Transformer
	markdownSvc    interfaces.MarkdownService
	dispatcher     *commands.Dispatcher
	retries        int
}

// NewContainer validates cfg and builds the runtime services.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	c.dispatcher = commands.NewDispatcher(c.retries)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch runtimeconfig.NormalizeProvider(c.Config.Logging.Provider) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("olist container: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		level, err := console.ParseLevel(c.Config.Logging.Level)
		if err != nil {
			return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingLevelInvalid, c.Config.Logging.Level)
		}
		c.loggerProvider = console.NewProvider(console.Options{
			Writer:   c.logWriter,
			MinLevel: &level,
		})
	}
	return nil
}

func (c *Container) configureMarkdown() error {
	parse := interfaces.ParseOptions{
		Extensions:  append([]string(nil), c.Config.Markdown.Extensions...),
		FrontMatter: c.Config.Markdown.FrontMatter,
	}
	c.transformer = markdown.NewTransformer(parse, markdown.WithLogger(logging.TransformLogger(c.loggerProvider)))

	if c.markdownSvc != nil {
		return nil
	}
	svc, err := markdown.NewService(markdown.Config{
		BasePath:  c.Config.Markdown.BasePath,
		Pattern:   c.Config.Markdown.Pattern,
		Recursive: c.Config.Markdown.Recursive,
		Parser:    parse,
	}, c.transformer, markdown.WithServiceLogger(logging.MarkdownLogger(c.loggerProvider)))
	if err != nil {
		return err
	}
	c.markdownSvc = svc
	return nil
}

// LoggerProvider returns the active provider. It is nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Transformer returns the configured markdown transformer.
func (c *Container) Transformer() interfaces.MarkdownTransformer {
	return c.transformer
}

// MarkdownService returns the markdown file service.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// Dispatcher returns the command dispatcher owned by the container.
func (c *Container) Dispatcher() *commands.Dispatcher {
	return c.dispatcher
}

// RegisterMarkdownCommands subscribes the markdown handlers to the container
// dispatcher, applying the configured command timeout.
func (c *Container) RegisterMarkdownCommands(opts ...markdowncmd.Option) (*markdowncmd.HandlerSet, error) {
	timeout := c.Config.Commands.Timeout
	base := []markdowncmd.Option{
		markdowncmd.WithFileHandlerOptions(commands.WithTimeout[markdowncmd.TransformFileCommand](timeout)),
		markdowncmd.WithDirectoryHandlerOptions(commands.WithTimeout[markdowncmd.TransformDirectoryCommand](timeout)),
	}
	return markdowncmd.RegisterMarkdownCommands(c.dispatcher, c.markdownSvc, c.loggerProvider, append(base, opts...)...)
}

// Close releases dispatcher subscriptions.
func (c *Container) Close() {
	if c.dispatcher != nil {
		c.dispatcher.Close()
	}
}
