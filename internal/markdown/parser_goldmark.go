package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-olist/internal/tree"
	"github.com/goliatone/go-olist/pkg/interfaces"
)

// GoldmarkParser turns markdown source into a document tree using the
// goldmark engine. It is stateless; a single instance can be shared.
type GoldmarkParser struct {
	engine goldmark.Markdown
}

// NewGoldmarkParser builds a parser for the supplied options. Without
// extensions the parser is plain CommonMark.
func NewGoldmarkParser(opts interfaces.ParseOptions) *GoldmarkParser {
	engineOptions := []goldmark.Option{}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return &GoldmarkParser{engine: goldmark.New(engineOptions...)}
}

// Parse builds a tree for source. Parsing never fails; any input yields a tree.
func (p *GoldmarkParser) Parse(source []byte) *tree.Tree {
	doc := p.engine.Parser().Parse(text.NewReader(source))
	b := newTreeBuilder(source)
	b.build(doc)
	return b.tree
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// SupportedExtension reports whether name maps onto a goldmark extension.
func SupportedExtension(name string) bool {
	_, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

// treeBuilder mirrors a goldmark AST into a tree.Tree.
type treeBuilder struct {
	source     []byte
	lineStarts []int
	tree       *tree.Tree
	parents    []tree.NodeID
	// lastText is the most recent Text node that may absorb the next text
	// segment of the same parent.
	lastText tree.NodeID
}

func newTreeBuilder(source []byte) *treeBuilder {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	t := tree.New()
	return &treeBuilder{
		source:     source,
		lineStarts: starts,
		tree:       t,
		parents:    []tree.NodeID{t.Root()},
		lastText:   tree.NoNode,
	}
}

func (b *treeBuilder) build(doc ast.Node) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if n.Kind() == ast.KindDocument {
			return ast.WalkContinue, nil
		}
		if !entering {
			if b.opens(n) {
				b.parents = b.parents[:len(b.parents)-1]
				b.lastText = tree.NoNode
			}
			return ast.WalkContinue, nil
		}
		return b.enter(n), nil
	})
}

func (b *treeBuilder) parent() tree.NodeID {
	return b.parents[len(b.parents)-1]
}

// opens reports whether n is pushed as a parent while its children are built.
func (b *treeBuilder) opens(n ast.Node) bool {
	switch n.Kind() {
	case ast.KindText, ast.KindString, ast.KindHTMLBlock, ast.KindRawHTML, extast.KindTaskCheckBox:
		return false
	}
	return true
}

func (b *treeBuilder) enter(n ast.Node) ast.WalkStatus {
	switch node := n.(type) {
	case *ast.Text:
		b.appendText(string(node.Segment.Value(b.source)), node.Segment.Start)
		switch {
		case node.HardLineBreak():
			b.appendLeaf(tree.Node{Kind: tree.KindLineBreak, Pos: b.position(node.Segment.Stop)})
		case node.SoftLineBreak():
			b.appendLeaf(tree.Node{Kind: tree.KindSoftBreak, Pos: b.position(node.Segment.Stop)})
		}
		return ast.WalkContinue
	case *ast.String:
		b.appendText(string(node.Value), -1)
		return ast.WalkContinue
	case *extast.TaskCheckBox:
		if node.IsChecked {
			b.appendText("[x] ", -1)
		} else {
			b.appendText("[ ] ", -1)
		}
		b.markTaskList()
		return ast.WalkContinue
	case *ast.HTMLBlock:
		b.appendLeaf(tree.Node{
			Kind:    tree.KindHTMLBlock,
			Pos:     b.position(firstLineStart(node)),
			Literal: b.htmlBlockLiteral(node),
		})
		return ast.WalkSkipChildren
	case *ast.RawHTML:
		b.appendLeaf(tree.Node{
			Kind:    tree.KindHTMLInline,
			Pos:     b.position(segmentsStart(node.Segments)),
			Literal: b.segmentsValue(node.Segments),
		})
		return ast.WalkSkipChildren
	}

	out := b.convertContainer(n)
	id := b.tree.Append(b.parent(), out)
	b.parents = append(b.parents, id)
	b.lastText = tree.NoNode

	if link, ok := n.(*ast.AutoLink); ok {
		b.appendText(string(link.Label(b.source)), -1)
	}
	return ast.WalkContinue
}

func (b *treeBuilder) convertContainer(n ast.Node) tree.Node {
	switch node := n.(type) {
	case *ast.Heading:
		return tree.Node{Kind: tree.KindHeading, Level: node.Level, Pos: b.position(firstLineStart(node))}
	case *ast.Paragraph, *ast.TextBlock:
		return tree.Node{Kind: tree.KindParagraph, Pos: b.position(firstLineStart(node))}
	case *ast.List:
		return tree.Node{Kind: tree.KindList, List: b.listData(node), Pos: b.itemPosition(node.FirstChild())}
	case *ast.ListItem:
		return tree.Node{Kind: tree.KindItem, Pos: b.itemPosition(node)}
	default:
		return tree.Node{Kind: tree.KindOther, Name: n.Kind().String(), Pos: b.position(firstLineStart(n))}
	}
}

func (b *treeBuilder) listData(list *ast.List) tree.ListData {
	data := tree.ListData{
		Kind:  tree.ListBullet,
		Start: list.Start,
		Tight: list.IsTight,
	}
	if list.IsOrdered() {
		data.Kind = tree.ListOrdered
		if list.Marker == ')' {
			data.Delimiter = tree.DelimParen
		}
	} else {
		data.BulletChar = list.Marker
	}
	if first, ok := list.FirstChild().(*ast.ListItem); ok {
		data.Padding = first.Offset
		if marker := b.markerOffset(first); marker >= 0 {
			data.MarkerOffset = marker - b.lineStart(marker)
		}
	}
	return data
}

func (b *treeBuilder) appendLeaf(n tree.Node) tree.NodeID {
	b.lastText = tree.NoNode
	return b.tree.Append(b.parent(), n)
}

// appendText adds literal to the current parent, merging it into the previous
// text node when nothing separates them.
func (b *treeBuilder) appendText(literal string, offset int) {
	if b.lastText != tree.NoNode && b.tree.Parent(b.lastText) == b.parent() {
		if prev, ok := b.tree.Node(b.lastText); ok {
			b.tree.SetText(b.lastText, prev.Literal+literal)
			return
		}
	}
	pos := tree.Position{}
	if offset >= 0 {
		pos = b.position(offset)
	}
	b.lastText = b.tree.Append(b.parent(), tree.Node{Kind: tree.KindText, Literal: literal, Pos: pos})
}

// markTaskList flags the enclosing list once a checkbox shows up in an item.
func (b *treeBuilder) markTaskList() {
	for i := len(b.parents) - 1; i >= 0; i-- {
		id := b.parents[i]
		if b.tree.Kind(id) != tree.KindList {
			continue
		}
		node, _ := b.tree.Node(id)
		data := node.List
		data.TaskList = true
		b.tree.SetList(id, data)
		return
	}
}

func (b *treeBuilder) htmlBlockLiteral(node *ast.HTMLBlock) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(b.source))
	}
	if node.HasClosure() {
		sb.Write(node.ClosureLine.Value(b.source))
	}
	return sb.String()
}

func (b *treeBuilder) segmentsValue(segments *text.Segments) string {
	var sb strings.Builder
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		sb.Write(segment.Value(b.source))
	}
	return sb.String()
}

// itemPosition locates the list marker of an item. Items whose marker cannot
// be recovered from the source inherit the column of the previous item.
func (b *treeBuilder) itemPosition(n ast.Node) tree.Position {
	item, ok := n.(*ast.ListItem)
	if ok {
		if marker := b.markerOffset(item); marker >= 0 {
			return b.position(marker)
		}
	}
	if siblings := b.tree.Children(b.parent()); len(siblings) > 0 && b.tree.Kind(b.parent()) == tree.KindList {
		if prev, ok := b.tree.Node(siblings[len(siblings)-1]); ok {
			return prev.Pos
		}
	}
	return tree.Position{Line: 1, Column: 1}
}

// markerOffset returns the byte offset of the marker that opens item, or -1.
func (b *treeBuilder) markerOffset(item *ast.ListItem) int {
	first := item.FirstChild()
	if first == nil {
		return -1
	}
	if nested, ok := first.(*ast.List); ok {
		inner, ok := nested.FirstChild().(*ast.ListItem)
		if !ok {
			return -1
		}
		start := b.markerOffset(inner)
		if start < 0 {
			return -1
		}
		return b.scanBackMarker(start)
	}
	start := firstLineStart(first)
	if start < 0 {
		return -1
	}
	return b.scanBackMarker(start)
}

// scanBackMarker walks left from pos over blanks and a list marker ("-", "+",
// "*", or digits followed by "." or ")") on the same line.
func (b *treeBuilder) scanBackMarker(pos int) int {
	i := pos
	for i > 0 && (b.source[i-1] == ' ' || b.source[i-1] == '\t') {
		i--
	}
	if i == 0 {
		return -1
	}
	switch c := b.source[i-1]; c {
	case '-', '+', '*':
		return i - 1
	case '.', ')':
		j := i - 1
		for j > 0 && b.source[j-1] >= '0' && b.source[j-1] <= '9' {
			j--
		}
		if j == i-1 {
			return -1
		}
		return j
	}
	return -1
}

func (b *treeBuilder) lineStart(offset int) int {
	line := sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > offset }) - 1
	if line < 0 {
		return 0
	}
	return b.lineStarts[line]
}

// position converts a byte offset into a 1-based line and column.
func (b *treeBuilder) position(offset int) tree.Position {
	if offset < 0 {
		return tree.Position{Line: 1, Column: 1}
	}
	line := sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return tree.Position{Line: line + 1, Column: offset - b.lineStarts[line] + 1}
}

// firstLineStart returns the source offset of the first line owned by n or
// its first block descendant, or -1.
func firstLineStart(n ast.Node) int {
	for current := n; current != nil; current = current.FirstChild() {
		if current.Type() != ast.TypeBlock {
			return -1
		}
		if lines := current.Lines(); lines != nil && lines.Len() > 0 {
			return lines.At(0).Start
		}
	}
	return -1
}

func segmentsStart(segments *text.Segments) int {
	if segments == nil || segments.Len() == 0 {
		return -1
	}
	return segments.At(0).Start
}
