package olist

import "github.com/goliatone/go-olist/internal/runtimeconfig"

var (
	ErrMarkdownPatternInvalid   = runtimeconfig.ErrMarkdownPatternInvalid
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrCommandTimeoutInvalid    = runtimeconfig.ErrCommandTimeoutInvalid
	ErrConfigFileInvalid        = runtimeconfig.ErrConfigFileInvalid
)

type (
	Config         = runtimeconfig.Config
	Features       = runtimeconfig.Features
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	CommandsConfig = runtimeconfig.CommandsConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(name string) (Config, error) {
	return runtimeconfig.LoadFile(name)
}
