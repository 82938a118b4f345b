package markdowncmd

import (
	"path"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	transformFileMessageType      = "olist.markdown.transform_file"
	transformDirectoryMessageType = "olist.markdown.transform_directory"
)

// TransformFileCommand rewrites a single Markdown file. Path is resolved
// against the service base path when relative.
type TransformFileCommand struct {
	// Path selects the Markdown file to transform.
	Path string `json:"path"`
	// Write stores the transformed output back to Path when it changed.
	Write bool `json:"write,omitempty"`
	// DryRun reports what would change without touching the file.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (TransformFileCommand) Type() string { return transformFileMessageType }

// Validate ensures a path is present before handlers execute.
func (cmd TransformFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(notBlank(
			"olist.markdown.transform_file.path_required", "path is required",
		))),
	)
}

// TransformDirectoryCommand rewrites every Markdown file discovered under
// Directory.
type TransformDirectoryCommand struct {
	// Directory selects the filesystem path (relative or absolute) to walk.
	Directory string `json:"directory"`
	// Pattern overrides the configured file glob when set.
	Pattern string `json:"pattern,omitempty"`
	// Recursive overrides the configured recursion setting when non-nil.
	Recursive *bool `json:"recursive,omitempty"`
	// Write stores transformed output back to each changed file.
	Write bool `json:"write,omitempty"`
	// DryRun reports what would change without touching any file.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (TransformDirectoryCommand) Type() string { return transformDirectoryMessageType }

// Validate ensures directory input is present and the pattern is a valid glob.
func (cmd TransformDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank(
			"olist.markdown.transform_directory.directory_required", "directory is required",
		))),
		validation.Field(&cmd.Pattern, validation.By(func(value any) error {
			pattern, _ := value.(string)
			if strings.TrimSpace(pattern) == "" {
				return nil
			}
			if _, err := path.Match(pattern, ""); err != nil {
				return validation.NewError("olist.markdown.transform_directory.pattern_invalid", "pattern must be a valid glob")
			}
			return nil
		})),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
