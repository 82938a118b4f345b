package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	markedInput  = "<!-- ol -->\n- Install\n- Configure after (cur-1)\n<!-- /ol -->\n"
	markedOutput = "<!-- ol -->\n1. Install\n2. Configure after (1)\n\n<!-- /ol -->\n"
	plainInput   = "# Notes\n\nSee [the docs](https://example.com/docs) and **bold**.\n\n```go\nfmt.Println(\"hi\")\n```\n"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRunStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(markedInput), &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	if diff := cmp.Diff(markedOutput, stdout.String()); diff != "" {
		t.Fatalf("unexpected stdout (-want +got):\n%s", diff)
	}
}

func TestRunFilePrintsWithoutWriting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.md")
	writeFile(t, path, markedInput)

	var stdout, stderr bytes.Buffer
	if code := run([]string{path}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	if stdout.String() != markedOutput {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
	if got := readFile(t, path); got != markedInput {
		t.Fatalf("file must not change without -w, got %q", got)
	}
}

func TestRunFileWriteInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.md")
	writeFile(t, path, markedInput)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-w", path}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no stdout with -w, got %q", stdout.String())
	}
	if got := readFile(t, path); got != markedOutput {
		t.Fatalf("unexpected rewritten file %q", got)
	}
}

func TestRunFileDryRunListsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.md")
	writeFile(t, path, markedInput)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-dry-run", path}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != path {
		t.Fatalf("expected changed path listed, got %q", stdout.String())
	}
	if got := readFile(t, path); got != markedInput {
		t.Fatalf("dry run must not write, got %q", got)
	}
}

func TestRunMissingFileExitsWithError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.md")

	var stdout, stderr bytes.Buffer
	if code := run([]string{missing}, strings.NewReader(""), &stdout, &stderr); code != exitError {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "missing.md") {
		t.Fatalf("expected error to name the file, got %q", stderr.String())
	}
}

func TestRunDirectoryWrite(t *testing.T) {
	dir := t.TempDir()
	top := filepath.Join(dir, "a.md")
	nested := filepath.Join(dir, "nested", "b.md")
	other := filepath.Join(dir, "notes.txt")
	writeFile(t, top, markedInput)
	writeFile(t, nested, markedInput)
	writeFile(t, other, markedInput)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-w", "-dir", dir}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	if got := readFile(t, top); got != markedOutput {
		t.Fatalf("unexpected top-level output %q", got)
	}
	if got := readFile(t, nested); got != markedOutput {
		t.Fatalf("unexpected nested output %q", got)
	}
	if got := readFile(t, other); got != markedInput {
		t.Fatalf("non-markdown file must be skipped, got %q", got)
	}
}

func TestRunWriteLeavesFilesWithoutListsUntouched(t *testing.T) {
	dir := t.TempDir()
	marked := filepath.Join(dir, "a.md")
	plain := filepath.Join(dir, "notes.md")
	writeFile(t, marked, markedInput)
	writeFile(t, plain, plainInput)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-w", "-dir", dir}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	if got := readFile(t, marked); got != markedOutput {
		t.Fatalf("unexpected marked output %q", got)
	}
	if got := readFile(t, plain); got != plainInput {
		t.Fatalf("directory write rewrote a file without lists: %q", got)
	}

	stdout.Reset()
	stderr.Reset()
	if code := run([]string{"-w", plain}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	if got := readFile(t, plain); got != plainInput {
		t.Fatalf("file write rewrote a file without lists: %q", got)
	}
}

func TestRunDirectoryNonRecursiveListsChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), markedInput)
	writeFile(t, filepath.Join(dir, "nested", "b.md"), markedInput)

	var stdout, stderr bytes.Buffer
	args := []string{"-recursive=false", "-dir", dir}
	if code := run(args, strings.NewReader(""), &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr %q)", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "a.md") || strings.Contains(out, "b.md") {
		t.Fatalf("expected only the top-level file listed, got %q", out)
	}
}

func TestRunUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-dir", "x", "file.md"}, strings.NewReader(""), &stdout, &stderr); code != exitUsage {
		t.Fatalf("expected usage exit for -dir with files, got %d", code)
	}
	if code := run([]string{"-no-such-flag"}, strings.NewReader(""), &stdout, &stderr); code != exitUsage {
		t.Fatalf("expected usage exit for unknown flag, got %d", code)
	}
}

func TestRunInvalidLogLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-log-level", "loud"}, strings.NewReader(""), &stdout, &stderr); code != exitError {
		t.Fatalf("expected exit 1 for invalid log level, got %d", code)
	}
}

func TestDisplayPath(t *testing.T) {
	base := string(filepath.Separator)
	cwd := filepath.Join(base, "work")
	if got := displayPath(base, cwd, "work/docs/a.md"); got != filepath.Join("docs", "a.md") {
		t.Fatalf("unexpected display path %q", got)
	}
	if got := displayPath(base, "", "work/a.md"); got != filepath.Join(base, "work", "a.md") {
		t.Fatalf("unexpected display path without cwd %q", got)
	}
}
