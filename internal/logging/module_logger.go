package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-olist/pkg/interfaces"
)

const (
	rootModule      = "olist"
	transformModule = "olist.transform"
	markdownModule  = "olist.markdown"
	commandsModule  = "olist.commands"
)

const (
	fieldMarkdownPath   = "markdown_path"
	fieldMarkdownAction = "markdown_action"
	fieldCommand        = "command"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// TransformLogger returns the logger namespace reserved for the list conversion pass.
func TransformLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, transformModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown workflows.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// CommandLogger returns a logger scoped to a single command, e.g.
// "olist.commands.transform_file".
func CommandLogger(provider interfaces.LoggerProvider, command string) interfaces.Logger {
	command = strings.TrimSpace(command)
	if command == "" {
		return ModuleLogger(provider, commandsModule)
	}
	logger := ModuleLogger(provider, commandsModule+"."+command)
	return WithFields(logger, map[string]any{fieldCommand: command})
}

// WithMarkdownContext enriches the provided logger with the file path and the
// action being performed on it. Empty values are ignored.
func WithMarkdownContext(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldMarkdownPath] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldMarkdownAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
