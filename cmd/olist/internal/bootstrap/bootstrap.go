package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-olist"
	"github.com/goliatone/go-olist/internal/logging"
	"github.com/goliatone/go-olist/pkg/interfaces"
)

// Options captures configuration for the olist CLI bootstrap.
type Options struct {
	ConfigFile string
	LogLevel   string
	// LogFormat switches logging to go-logger with the named output type.
	LogFormat  string
	Pattern    string
	Extensions []string
	LogWriter  io.Writer
}

// Module wraps the olist module and the loggers used by the CLI.
type Module struct {
	Module *olist.Module
	Logger interfaces.Logger
	// BasePath is the directory every CLI path is resolved against.
	BasePath string
}

// BuildModule constructs an olist module configured for command line use.
// CLI arguments are filesystem paths, so the markdown base path is the root
// of the current volume and callers pass absolute paths.
func BuildModule(opts Options) (*Module, error) {
	cfg := olist.DefaultConfig()
	if file := strings.TrimSpace(opts.ConfigFile); file != "" {
		loaded, err := olist.LoadConfig(file)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = format
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Markdown.Pattern = pattern
	}
	if len(opts.Extensions) > 0 {
		cfg.Markdown.Extensions = append([]string(nil), opts.Extensions...)
	}

	base, err := volumeRoot()
	if err != nil {
		return nil, err
	}
	cfg.Markdown.BasePath = base

	module, err := olist.New(cfg, olist.WithLogWriter(opts.LogWriter))
	if err != nil {
		return nil, fmt.Errorf("initialise olist module: %w", err)
	}

	return &Module{
		Module:   module,
		Logger:   logging.ModuleLogger(module.LoggerProvider(), "olist.cli"),
		BasePath: base,
	}, nil
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func volumeRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return filepath.VolumeName(cwd) + string(filepath.Separator), nil
}
