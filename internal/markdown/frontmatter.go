package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-olist/pkg/interfaces"
)

// ParseFrontMatter splits a leading front matter block off source. It returns
// the decoded metadata, the raw block (delimiters included) and the markdown
// body. Sources without front matter yield an empty block and the full body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, source, fmt.Errorf("parse frontmatter: %w", err)
	}
	if len(body) == len(source) || !bytes.HasSuffix(source, body) {
		return interfaces.FrontMatter{}, nil, source, nil
	}

	raw := source[:len(source)-len(body)]
	return envelopeToFrontMatter(meta), raw, body, nil
}

type frontMatterEnvelope struct {
	Title  string         `yaml:"title" toml:"title" json:"title"`
	OList  *bool          `yaml:"olist" toml:"olist" json:"olist"`
	Custom map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	raw := make(map[string]any, len(env.Custom)+2)
	for key, value := range env.Custom {
		raw[key] = value
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.OList != nil {
		raw["olist"] = *env.OList
	}

	return interfaces.FrontMatter{
		Title: env.Title,
		OList: env.OList,
		Raw:   raw,
	}
}

// joinFrontMatter places the untouched front matter block ahead of the
// rendered body, keeping one blank line between them when the source had one.
func joinFrontMatter(raw, sourceBody, rendered []byte) []byte {
	if len(raw) == 0 {
		return rendered
	}
	head := bytes.TrimRight(raw, " \t\r\n")
	out := make([]byte, 0, len(head)+len(rendered)+2)
	out = append(out, head...)
	out = append(out, '\n')
	if len(bytes.TrimSpace(rendered)) == 0 {
		return out
	}
	if startsWithBlankLine(raw, sourceBody) {
		out = append(out, '\n')
	}
	return append(out, rendered...)
}

func startsWithBlankLine(raw, body []byte) bool {
	trailing := raw[len(bytes.TrimRight(raw, " \t\r\n")):]
	if bytes.Count(trailing, []byte{'\n'}) > 1 {
		return true
	}
	line, _, _ := bytes.Cut(body, []byte{'\n'})
	return len(bytes.TrimSpace(line)) == 0 && bytes.IndexByte(body, '\n') >= 0
}
