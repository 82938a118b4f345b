package olist_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-olist"
)

func TestTransform(t *testing.T) {
	input := "# Steps\n\n<!-- ol -->\n- Prepare\n- Repeat (cur-1)\n<!-- /ol -->\n"
	want := "# Steps\n\n<!-- ol -->\n1. Prepare\n2. Repeat (1)\n\n<!-- /ol -->\n"

	if diff := cmp.Diff(want, olist.Transform(input)); diff != "" {
		t.Fatalf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestTransformLeavesUnmarkedListsAlone(t *testing.T) {
	input := "- a\n- b\n"
	if got := olist.Transform(input); got != input {
		t.Fatalf("expected unmarked list unchanged, got %q", got)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := olist.DefaultConfig()
	cfg.Markdown.Pattern = "["

	if _, err := olist.New(cfg); !errors.Is(err, olist.ErrMarkdownPatternInvalid) {
		t.Fatalf("expected invalid pattern error, got %v", err)
	}
}

func TestModuleMarkdownService(t *testing.T) {
	cfg := olist.DefaultConfig()
	cfg.Markdown.BasePath = t.TempDir()
	cfg.Features.Logger = false

	module, err := olist.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(module.Close)

	if module.LoggerProvider() != nil {
		t.Fatalf("expected logging disabled")
	}
	out, err := module.Markdown().TransformBytes(context.Background(), []byte("<!-- ol -->\n* x\n<!-- /ol -->"))
	if err != nil {
		t.Fatalf("TransformBytes: %v", err)
	}
	if want := "<!-- ol -->\n1. x\n\n<!-- /ol -->\n"; string(out) != want {
		t.Fatalf("unexpected output %q, want %q", out, want)
	}
}
