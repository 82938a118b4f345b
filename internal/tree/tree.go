// Package tree holds the arena-backed document tree the transform and render
// passes operate on. Nodes are addressed by NodeID and own their children as
// ID lists, so mutation is always "look up by id, replace payload".
package tree

// NodeID addresses a node inside a Tree. The zero value is the document root.
type NodeID int

// NoNode is returned by lookups that have no answer (no parent, no sibling).
const NoNode NodeID = -1

// Kind identifies the variant of a node.
type Kind uint8

const (
	KindDocument Kind = iota
	KindHeading
	KindParagraph
	KindList
	KindItem
	KindText
	KindSoftBreak
	KindLineBreak
	KindHTMLBlock
	KindHTMLInline
	KindOther
)

var kindNames = [...]string{
	KindDocument:   "Document",
	KindHeading:    "Heading",
	KindParagraph:  "Paragraph",
	KindList:       "List",
	KindItem:       "Item",
	KindText:       "Text",
	KindSoftBreak:  "SoftBreak",
	KindLineBreak:  "LineBreak",
	KindHTMLBlock:  "HtmlBlock",
	KindHTMLInline: "HtmlInline",
	KindOther:      "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Other"
}

// ListKind distinguishes bullet lists from ordered lists.
type ListKind uint8

const (
	ListBullet ListKind = iota
	ListOrdered
)

func (k ListKind) String() string {
	if k == ListOrdered {
		return "ordered"
	}
	return "bullet"
}

// Delimiter is the punctuation following an ordered list number.
type Delimiter uint8

const (
	DelimPeriod Delimiter = iota
	DelimParen
)

// ListData is the payload of a List node. Everything other than Kind and
// Start is carried through conversions untouched.
type ListData struct {
	Kind         ListKind
	Start        int
	Delimiter    Delimiter
	BulletChar   byte
	Tight        bool
	TaskList     bool
	MarkerOffset int
	Padding      int
}

// Position is a 1-based source location.
type Position struct {
	Line   int
	Column int
}

// Node is a single tree entry. Only the fields relevant to Kind are set.
type Node struct {
	Kind     Kind
	Pos      Position
	List     ListData
	Level    int
	Literal  string
	Name     string
	parent   NodeID
	index    int
	children []NodeID
}

// Tree owns every node of one document.
type Tree struct {
	nodes []Node
}

// New returns a tree containing only the Document root.
func New() *Tree {
	return &Tree{
		nodes: []Node{{Kind: KindDocument, Pos: Position{Line: 1, Column: 1}, parent: NoNode}},
	}
}

// Root returns the document node.
func (t *Tree) Root() NodeID { return 0 }

// Len reports the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Append adds n as the last child of parent and returns its id. It is meant
// for tree construction; the transform passes never call it.
func (t *Tree) Append(parent NodeID, n Node) NodeID {
	if !t.valid(parent) {
		return NoNode
	}
	id := NodeID(len(t.nodes))
	n.parent = parent
	n.index = len(t.nodes[parent].children)
	n.children = nil
	t.nodes = append(t.nodes, n)
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// Node returns a copy of the node stored under id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.valid(id) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Kind returns the variant of id, or KindOther for unknown ids.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.valid(id) {
		return KindOther
	}
	return t.nodes[id].Kind
}

// Children returns the ordered child ids of id. The slice must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// Parent returns the parent of id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.valid(id) {
		return NoNode
	}
	return t.nodes[id].parent
}

// NextSibling returns the sibling following id, or NoNode.
func (t *Tree) NextSibling(id NodeID) NodeID {
	parent := t.Parent(id)
	if parent == NoNode {
		return NoNode
	}
	siblings := t.nodes[parent].children
	if next := t.nodes[id].index + 1; next < len(siblings) {
		return siblings[next]
	}
	return NoNode
}

// SetList replaces the list payload of id. It is a no-op for non-list nodes.
func (t *Tree) SetList(id NodeID, data ListData) bool {
	if !t.valid(id) || t.nodes[id].Kind != KindList {
		return false
	}
	t.nodes[id].List = data
	return true
}

// SetText replaces the literal of a Text node.
func (t *Tree) SetText(id NodeID, literal string) bool {
	if !t.valid(id) || t.nodes[id].Kind != KindText {
		return false
	}
	t.nodes[id].Literal = literal
	return true
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}
