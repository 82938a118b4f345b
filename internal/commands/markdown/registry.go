package markdowncmd

import (
	"errors"

	"github.com/goliatone/go-olist/internal/commands"
	"github.com/goliatone/go-olist/internal/logging"
	"github.com/goliatone/go-olist/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) (commands.Subscription, error)
}

var _ CommandRegistry = (*commands.Dispatcher)(nil)

// HandlerSet groups the Markdown command handlers produced by RegisterMarkdownCommands.
type HandlerSet struct {
	File      *TransformFileHandler
	Directory *TransformDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	fileHandlerOpts      []commands.HandlerOption[TransformFileCommand]
	directoryHandlerOpts []commands.HandlerOption[TransformDirectoryCommand]
	fileObserver         FileObserver
	directoryObserver    DirectoryObserver
}

// WithFileHandlerOptions forwards options to the TransformFileHandler constructor.
func WithFileHandlerOptions(opts ...commands.HandlerOption[TransformFileCommand]) Option {
	return func(cfg *options) {
		cfg.fileHandlerOpts = append(cfg.fileHandlerOpts, opts...)
	}
}

// WithDirectoryHandlerOptions forwards options to the TransformDirectoryHandler constructor.
func WithDirectoryHandlerOptions(opts ...commands.HandlerOption[TransformDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.directoryHandlerOpts = append(cfg.directoryHandlerOpts, opts...)
	}
}

// WithFileObserver reports every file result to fn.
func WithFileObserver(fn FileObserver) Option {
	return func(cfg *options) {
		cfg.fileObserver = fn
	}
}

// WithDirectoryObserver reports every directory summary to fn.
func WithDirectoryObserver(fn DirectoryObserver) Option {
	return func(cfg *options) {
		cfg.directoryObserver = fn
	}
}

// RegisterMarkdownCommands builds Markdown command handlers and registers them with the provided
// registry. A HandlerSet containing the constructed handlers is returned so callers can execute
// them directly when no registry is supplied.
func RegisterMarkdownCommands(reg CommandRegistry, service interfaces.MarkdownService, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("markdown command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.CommandLogger(provider, "markdown")

	fileHandler := NewTransformFileHandler(service, logger, cfg.fileObserver, cfg.fileHandlerOpts...)
	directoryHandler := NewTransformDirectoryHandler(service, logger, cfg.directoryObserver, cfg.directoryHandlerOpts...)

	if reg != nil {
		if _, err := reg.RegisterCommand(fileHandler); err != nil {
			return nil, err
		}
		if _, err := reg.RegisterCommand(directoryHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		File:      fileHandler,
		Directory: directoryHandler,
	}, nil
}
