// Package render serialises a document tree back to markdown text.
package render

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/goliatone/go-olist/internal/tree"
)

// bulletCounter marks a bullet list on the counter stack.
const bulletCounter int64 = -1

// Printer renders a tree to markdown. A Printer is single use.
type Printer struct {
	out   strings.Builder
	lists []int64
	t     *tree.Tree
}

// NewPrinter returns an empty printer.
func NewPrinter() *Printer {
	return &Printer{}
}

// Render is a convenience wrapper around NewPrinter, RenderNode and Finish.
func Render(t *tree.Tree) string {
	p := NewPrinter()
	if t != nil {
		p.RenderNode(t, t.Root())
	}
	return p.Finish()
}

// Finish returns the rendered text with trailing whitespace collapsed into a
// single newline.
func (p *Printer) Finish() string {
	return strings.TrimRightFunc(p.out.String(), unicode.IsSpace) + "\n"
}

// RenderNode appends the markdown for the subtree rooted at id.
func (p *Printer) RenderNode(t *tree.Tree, id tree.NodeID) {
	p.t = t
	t.Walk(id, p.visit)
}

func (p *Printer) visit(id tree.NodeID, entering bool) tree.WalkStatus {
	node, ok := p.t.Node(id)
	if !ok {
		return tree.WalkSkipChildren
	}
	switch node.Kind {
	case tree.KindHeading:
		p.heading(id, node, entering)
	case tree.KindParagraph:
		p.paragraph(id, entering)
	case tree.KindList:
		p.list(id, node, entering)
	case tree.KindItem:
		return p.item(node, entering)
	case tree.KindText:
		if entering {
			p.out.WriteString(node.Literal)
		}
	case tree.KindSoftBreak:
		if entering {
			if p.inList() {
				p.out.WriteByte(' ')
			} else {
				p.out.WriteByte('\n')
			}
		}
	case tree.KindLineBreak:
		if entering {
			p.out.WriteString("  \n")
		}
	case tree.KindHTMLBlock:
		if entering {
			p.out.WriteString(node.Literal)
			p.ensureNewline()
		}
	case tree.KindHTMLInline:
		if entering {
			p.out.WriteString(node.Literal)
		}
	}
	// Document and unrecognised kinds render their children only.
	return tree.WalkContinue
}

func (p *Printer) heading(id tree.NodeID, node tree.Node, entering bool) {
	if entering {
		p.out.WriteString(strings.Repeat("#", clampLevel(node.Level)))
		p.out.WriteByte(' ')
		return
	}
	p.out.WriteByte('\n')
	if p.t.NextSibling(id) != tree.NoNode {
		p.out.WriteByte('\n')
	}
}

func (p *Printer) paragraph(id tree.NodeID, entering bool) {
	if entering || p.inList() {
		return
	}
	p.out.WriteByte('\n')
	switch p.t.Kind(p.t.NextSibling(id)) {
	case tree.KindList, tree.KindHeading:
		p.out.WriteByte('\n')
	}
}

func (p *Printer) list(id tree.NodeID, node tree.Node, entering bool) {
	if entering {
		if node.List.Kind == tree.ListOrdered {
			p.lists = append(p.lists, int64(node.List.Start))
		} else {
			p.lists = append(p.lists, bulletCounter)
		}
		return
	}
	p.lists = p.lists[:len(p.lists)-1]
	if p.inList() {
		return
	}
	next := p.t.NextSibling(id)
	if next != tree.NoNode && p.t.Kind(next) != tree.KindList {
		p.out.WriteByte('\n')
	}
}

func (p *Printer) item(node tree.Node, entering bool) tree.WalkStatus {
	if !p.inList() {
		return tree.WalkSkipChildren
	}
	if !entering {
		p.out.WriteByte('\n')
		return tree.WalkContinue
	}
	p.out.WriteString(indentation(node.Pos.Column))
	top := len(p.lists) - 1
	if p.lists[top] == bulletCounter {
		p.out.WriteString("- ")
		return tree.WalkContinue
	}
	p.out.WriteString(strconv.FormatInt(p.lists[top], 10))
	p.out.WriteString(". ")
	p.lists[top]++
	return tree.WalkContinue
}

func (p *Printer) inList() bool {
	return len(p.lists) > 0
}

func (p *Printer) ensureNewline() {
	s := p.out.String()
	if !strings.HasSuffix(s, "\n") {
		p.out.WriteByte('\n')
	}
}

// indentation maps a 1-based source column to leading spaces.
func indentation(column int) string {
	if column <= 1 {
		return ""
	}
	return strings.Repeat(" ", column-1)
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	default:
		return level
	}
}
