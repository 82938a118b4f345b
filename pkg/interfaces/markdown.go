package interfaces

import (
	"context"
	"time"
)

// MarkdownTransformer rewrites markdown source, converting bullet lists inside
// ol marker regions into ordered lists and resolving (cur±N) references.
type MarkdownTransformer interface {
	// Transform never fails; input it cannot act on is re-serialised as is.
	Transform(source []byte) TransformOutput
}

// ParseOptions customises how markdown source is parsed before the
// transform runs. Option names stay readable for config files and CLI flags.
type ParseOptions struct {
	// Extensions enables goldmark extensions by name ("table", "tasklist", ...).
	// Empty means plain CommonMark.
	Extensions []string
	// FrontMatter splits a leading YAML/TOML block off and emits it verbatim.
	FrontMatter bool
}

// TransformOutput carries the rewritten document plus what changed.
type TransformOutput struct {
	Output      []byte
	FrontMatter FrontMatter
	Stats       TransformStats
	// Skipped is true when front matter disabled the transform for this document.
	Skipped bool
}

// TransformStats summarises a single document pass.
type TransformStats struct {
	StartMarkers        int
	EndMarkers          int
	ListsConverted      int
	ItemsNumbered       int
	ReferencesResolved  int
	UnterminatedRegions int
}

// MarkdownService exposes the file workflows built on top of the transformer.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	TransformBytes(ctx context.Context, source []byte) ([]byte, error)
	TransformDocument(ctx context.Context, doc *Document) (*TransformResult, error)
	TransformFile(ctx context.Context, path string, opts WriteOptions) (*TransformResult, error)
	TransformDirectory(ctx context.Context, dir string, opts DirectoryOptions) (*DirectoryResult, error)
}

// Document represents a markdown file loaded from disk.
type Document struct {
	FilePath    string
	FrontMatter FrontMatter
	// Source is the file content as read, front matter included.
	Source []byte
	// Output is filled by TransformDocument.
	Output       []byte
	LastModified time.Time
	// Checksum stores the SHA-256 of Source so write-back can skip unchanged files.
	Checksum []byte
}

// FrontMatter models metadata found at the top of a markdown file.
type FrontMatter struct {
	Title string         `yaml:"title" json:"title"`
	OList *bool          `yaml:"olist" json:"olist,omitempty"`
	Raw   map[string]any `yaml:"-" json:"raw"`
}

// Disabled reports whether the document opted out with `olist: false`.
func (fm FrontMatter) Disabled() bool {
	return fm.OList != nil && !*fm.OList
}

// LoadOptions fine-tunes how documents are discovered on disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
}

// WriteOptions controls what happens with transformed output.
type WriteOptions struct {
	// Write stores the output back to the source file when it differs.
	Write bool
	// DryRun computes results without touching the filesystem.
	DryRun bool
}

// DirectoryOptions combines discovery and write options for batch runs.
type DirectoryOptions struct {
	LoadOptions
	WriteOptions
}

// TransformResult reports the outcome for one document.
type TransformResult struct {
	FilePath string
	// Output is the transformed document, front matter included.
	Output  []byte
	Changed bool
	Written bool
	Skipped bool
	Stats   TransformStats
}

// DirectoryResult summarises a batch run across many files.
type DirectoryResult struct {
	Results []TransformResult
	Changed int
	Written int
	Skipped int
	Errors  []error
}
