package markdowncmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-olist/internal/commands"
	"github.com/goliatone/go-olist/internal/logging"
	"github.com/goliatone/go-olist/pkg/interfaces"
)

const (
	transformFileOperation      = "markdown.transform_file"
	transformDirectoryOperation = "markdown.transform_directory"
)

// ErrDirectoryIncomplete is returned when a directory run finished but one or
// more files could not be transformed or written.
var ErrDirectoryIncomplete = errors.New("markdown command: directory transform incomplete")

var (
	_ command.Commander[TransformFileCommand]      = (*TransformFileHandler)(nil)
	_ command.Commander[TransformDirectoryCommand] = (*TransformDirectoryHandler)(nil)
	_ commands.Subscriber                          = (*TransformFileHandler)(nil)
	_ commands.Subscriber                          = (*TransformDirectoryHandler)(nil)
)

// FileObserver receives the result of a successful file transform.
type FileObserver func(ctx context.Context, msg TransformFileCommand, result *interfaces.TransformResult)

// DirectoryObserver receives the summary of a directory run, including runs
// that completed with per-file errors.
type DirectoryObserver func(ctx context.Context, msg TransformDirectoryCommand, result *interfaces.DirectoryResult)

// TransformFileHandler transforms one file via the shared command handler foundation.
type TransformFileHandler struct {
	inner *commands.Handler[TransformFileCommand]
}

// NewTransformFileHandler creates a handler bound to the supplied Markdown service.
func NewTransformFileHandler(service interfaces.MarkdownService, logger interfaces.Logger, observer FileObserver, opts ...commands.HandlerOption[TransformFileCommand]) *TransformFileHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg TransformFileCommand) error {
		result, err := service.TransformFile(ctx, msg.Path, interfaces.WriteOptions{
			Write:  msg.Write,
			DryRun: msg.DryRun,
		})
		if err != nil {
			return err
		}
		if result == nil {
			return nil
		}

		logging.WithFields(baseLogger, map[string]any{
			"markdown_path":   result.FilePath,
			"changed":         result.Changed,
			"written":         result.Written,
			"skipped":         result.Skipped,
			"lists_converted": result.Stats.ListsConverted,
			"dry_run":         msg.DryRun,
		}).Info("markdown.command.transform_file.completed")

		if observer != nil {
			observer(ctx, msg, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[TransformFileCommand]{
		commands.WithLogger[TransformFileCommand](baseLogger),
		commands.WithOperation[TransformFileCommand](transformFileOperation),
		commands.WithMessageFields(func(msg TransformFileCommand) map[string]any {
			fields := map[string]any{
				"markdown_path": msg.Path,
			}
			if msg.Write {
				fields["write"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &TransformFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[TransformFileCommand].
func (h *TransformFileHandler) Execute(ctx context.Context, msg TransformFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Subscribe binds the handler to the go-command dispatcher.
func (h *TransformFileHandler) Subscribe(opts ...runner.Option) commands.Subscription {
	return commands.Subscribe[TransformFileCommand](h, opts...)
}

// TransformDirectoryHandler transforms a directory tree via the shared command handler foundation.
type TransformDirectoryHandler struct {
	inner *commands.Handler[TransformDirectoryCommand]
}

// NewTransformDirectoryHandler creates a handler bound to the supplied Markdown service.
func NewTransformDirectoryHandler(service interfaces.MarkdownService, logger interfaces.Logger, observer DirectoryObserver, opts ...commands.HandlerOption[TransformDirectoryCommand]) *TransformDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg TransformDirectoryCommand) error {
		result, err := service.TransformDirectory(ctx, msg.Directory, interfaces.DirectoryOptions{
			LoadOptions: interfaces.LoadOptions{
				Recursive: msg.Recursive,
				Pattern:   msg.Pattern,
			},
			WriteOptions: interfaces.WriteOptions{
				Write:  msg.Write,
				DryRun: msg.DryRun,
			},
		})
		if err != nil {
			return err
		}
		if result == nil {
			return nil
		}

		logging.WithFields(baseLogger, map[string]any{
			"document_count": len(result.Results),
			"changed_count":  result.Changed,
			"written_count":  result.Written,
			"skipped_count":  result.Skipped,
			"error_count":    len(result.Errors),
			"dry_run":        msg.DryRun,
		}).Info("markdown.command.transform_directory.completed")

		if observer != nil {
			observer(ctx, msg, result)
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("%w: %w", ErrDirectoryIncomplete, errors.Join(result.Errors...))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[TransformDirectoryCommand]{
		commands.WithLogger[TransformDirectoryCommand](baseLogger),
		commands.WithOperation[TransformDirectoryCommand](transformDirectoryOperation),
		commands.WithMessageFields(func(msg TransformDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive != nil {
				fields["recursive"] = *msg.Recursive
			}
			if msg.Write {
				fields["write"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &TransformDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[TransformDirectoryCommand].
func (h *TransformDirectoryHandler) Execute(ctx context.Context, msg TransformDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Subscribe binds the handler to the go-command dispatcher.
func (h *TransformDirectoryHandler) Subscribe(opts ...runner.Option) commands.Subscription {
	return commands.Subscribe[TransformDirectoryCommand](h, opts...)
}
