package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-olist/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "requires logging provider when feature enabled",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Provider = " " },
			want:   runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name:   "rejects unknown logging provider",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Provider = "syslog" },
			want:   runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name:   "rejects invalid level",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Level = "loud" },
			want:   runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name: "rejects invalid gologger format",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Logging.Provider = "gologger"
				cfg.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
		{
			name:   "rejects malformed pattern",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Markdown.Pattern = "[*.md" },
			want:   runtimeconfig.ErrMarkdownPatternInvalid,
		},
		{
			name:   "rejects unknown extension",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Markdown.Extensions = []string{"table", "mermaid"} },
			want:   runtimeconfig.ErrMarkdownExtensionUnknown,
		},
		{
			name:   "rejects negative timeout",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Commands.Timeout = -time.Second },
			want:   runtimeconfig.ErrCommandTimeoutInvalid,
		},
		{
			name: "ignores logging settings when feature disabled",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = false
				cfg.Logging.Provider = "syslog"
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "olist.yaml")
	content := []byte(`markdown:
  pattern: "*.markdown"
  extensions: [table, tasklist]
logging:
  provider: gologger
  format: pretty
commands:
  timeout: 5s
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	want := runtimeconfig.DefaultConfig()
	want.Markdown.Pattern = "*.markdown"
	want.Markdown.Extensions = []string{"table", "tasklist"}
	want.Logging.Provider = "gologger"
	want.Logging.Format = "pretty"
	want.Commands.Timeout = 5 * time.Second

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("loaded config should validate: %v", err)
	}
}

func TestLoadFileEmptyKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if diff := cmp.Diff(runtimeconfig.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := runtimeconfig.LoadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, runtimeconfig.ErrConfigFileInvalid) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}

	path := filepath.Join(dir, "typo.yaml")
	if err := os.WriteFile(path, []byte("markdown:\n  patern: \"*.md\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runtimeconfig.LoadFile(path); !errors.Is(err, runtimeconfig.ErrConfigFileInvalid) {
		t.Fatalf("expected unknown key to be rejected, got %v", err)
	}
}
