package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-olist/internal/logging/console"
	"github.com/goliatone/go-olist/internal/logging/gologger"
	"github.com/goliatone/go-olist/internal/markdown"
)

var ErrMarkdownPatternInvalid = errors.New("olist config: markdown pattern is invalid")
var ErrMarkdownExtensionUnknown = errors.New("olist config: markdown extension is unknown")
var ErrLoggingProviderRequired = errors.New("olist config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("olist config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("olist config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("olist config: logging format is invalid")
var ErrCommandTimeoutInvalid = errors.New("olist config: command timeout must be zero or positive")

// ErrConfigFileInvalid wraps read and decode failures from LoadFile.
var ErrConfigFileInvalid = errors.New("olist config: config file is invalid")

// Config aggregates the settings for the olist module and CLI.
type Config struct {
	Features Features       `yaml:"features"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Logging  LoggingConfig  `yaml:"logging"`
	Commands CommandsConfig `yaml:"commands"`
}

// Features toggles optional behaviour.
type Features struct {
	// Logger enables the configured logging provider. When false, a provider
	// must be injected or logs are dropped.
	Logger bool `yaml:"logger"`
}

// MarkdownConfig captures filesystem and parser behaviour.
type MarkdownConfig struct {
	BasePath  string `yaml:"base_path"`
	Pattern   string `yaml:"pattern"`
	Recursive bool   `yaml:"recursive"`
	// Extensions lists goldmark extensions by name. Empty keeps plain CommonMark.
	Extensions  []string `yaml:"extensions"`
	FrontMatter bool     `yaml:"front_matter"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	// Timeout bounds a single command execution. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns defaults for CLI use: plain CommonMark, front matter
// passthrough, console logs at info level.
func DefaultConfig() Config {
	return Config{
		Features: Features{
			Logger: true,
		},
		Markdown: MarkdownConfig{
			BasePath:    ".",
			Pattern:     "*.md",
			Recursive:   true,
			FrontMatter: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Commands: CommandsConfig{
			Timeout: time.Minute,
		},
	}
}

// LoadFile reads a YAML config file on top of DefaultConfig. Unknown keys are
// rejected so typos surface early. The result is not validated.
func LoadFile(name string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrConfigFileInvalid, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %s: %w", ErrConfigFileInvalid, name, err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if pattern := strings.TrimSpace(cfg.Markdown.Pattern); pattern != "" {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: %s", ErrMarkdownPatternInvalid, pattern)
		}
	}
	for _, name := range cfg.Markdown.Extensions {
		if !markdown.SupportedExtension(name) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, name)
		}
	}
	if cfg.Commands.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrCommandTimeoutInvalid, cfg.Commands.Timeout)
	}
	if cfg.Features.Logger {
		provider := NormalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" {
			if _, err := console.ParseLevel(level); err != nil {
				return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
			}
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !gologger.SupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// NormalizeProvider lower-cases and trims a provider name.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}
