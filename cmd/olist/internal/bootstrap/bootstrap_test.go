package bootstrap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-olist"
)

func TestSplitList(t *testing.T) {
	got := SplitList(" table, ,tasklist ,")
	if diff := cmp.Diff([]string{"table", "tasklist"}, got); diff != "" {
		t.Fatalf("unexpected list (-want +got):\n%s", diff)
	}
	if SplitList("  ") != nil {
		t.Fatalf("expected nil for blank input")
	}
}

func TestBuildModuleAppliesOverrides(t *testing.T) {
	var logs bytes.Buffer
	module, err := BuildModule(Options{
		LogLevel:   "debug",
		Extensions: []string{"table"},
		LogWriter:  &logs,
	})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	t.Cleanup(module.Module.Close)

	cfg := module.Module.Container().Config
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Logging.Level)
	}
	if diff := cmp.Diff([]string{"table"}, cfg.Markdown.Extensions); diff != "" {
		t.Fatalf("unexpected extensions (-want +got):\n%s", diff)
	}
	if !filepath.IsAbs(module.BasePath) || cfg.Markdown.BasePath != module.BasePath {
		t.Fatalf("expected absolute base path, got %q / %q", module.BasePath, cfg.Markdown.BasePath)
	}

	module.Logger.Debug("cli.ready")
	if !bytes.Contains(logs.Bytes(), []byte("cli.ready")) {
		t.Fatalf("expected CLI logger to write to the configured writer, got %q", logs.String())
	}
}

func TestBuildModuleConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "olist.yaml")
	if err := os.WriteFile(path, []byte("markdown:\n  pattern: \"*.markdown\"\n  front_matter: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	module, err := BuildModule(Options{ConfigFile: path, LogWriter: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	t.Cleanup(module.Module.Close)

	cfg := module.Module.Container().Config
	if cfg.Markdown.Pattern != "*.markdown" || cfg.Markdown.FrontMatter {
		t.Fatalf("expected config file values applied, got %+v", cfg.Markdown)
	}
}

func TestBuildModuleRejectsBadLevel(t *testing.T) {
	_, err := BuildModule(Options{LogLevel: "loud"})
	if !errors.Is(err, olist.ErrLoggingLevelInvalid) {
		t.Fatalf("expected invalid level error, got %v", err)
	}
}
