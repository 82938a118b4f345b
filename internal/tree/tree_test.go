package tree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildSample(t *testing.T) (*Tree, NodeID, NodeID) {
	t.Helper()
	tr := New()
	list := tr.Append(tr.Root(), Node{Kind: KindList, List: ListData{Kind: ListBullet, BulletChar: '-', Tight: true}})
	item := tr.Append(list, Node{Kind: KindItem, Pos: Position{Line: 1, Column: 1}})
	para := tr.Append(item, Node{Kind: KindParagraph})
	tr.Append(para, Node{Kind: KindText, Literal: "A"})
	tr.Append(tr.Root(), Node{Kind: KindHTMLBlock, Literal: "<!-- /ol -->\n"})
	return tr, list, item
}

func TestAppendLinksParentAndSiblings(t *testing.T) {
	tr, list, item := buildSample(t)

	if got := tr.Parent(item); got != list {
		t.Fatalf("expected item parent %d, got %d", list, got)
	}
	if got := tr.Parent(tr.Root()); got != NoNode {
		t.Fatalf("expected root to have no parent, got %d", got)
	}
	next := tr.NextSibling(list)
	if tr.Kind(next) != KindHTMLBlock {
		t.Fatalf("expected html block after list, got %s", tr.Kind(next))
	}
	if got := tr.NextSibling(next); got != NoNode {
		t.Fatalf("expected no sibling after last child, got %d", got)
	}
	if got := tr.Append(NodeID(99), Node{Kind: KindText}); got != NoNode {
		t.Fatalf("expected append to unknown parent to fail, got %d", got)
	}
}

func TestSetListOnlyTouchesLists(t *testing.T) {
	tr, list, item := buildSample(t)

	if tr.SetList(item, ListData{Kind: ListOrdered}) {
		t.Fatal("expected SetList on an item to be rejected")
	}
	data := ListData{Kind: ListOrdered, Start: 1, BulletChar: '-', Tight: true}
	if !tr.SetList(list, data) {
		t.Fatal("expected SetList on a list to succeed")
	}
	node, _ := tr.Node(list)
	if diff := cmp.Diff(data, node.List); diff != "" {
		t.Fatalf("list payload mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkOrder(t *testing.T) {
	tr, _, _ := buildSample(t)

	var events []string
	tr.Walk(tr.Root(), func(id NodeID, entering bool) WalkStatus {
		prefix := "<"
		if entering {
			prefix = ">"
		}
		events = append(events, prefix+tr.Kind(id).String())
		return WalkContinue
	})

	want := []string{
		">Document", ">List", ">Item", ">Paragraph", ">Text", "<Text",
		"<Paragraph", "<Item", "<List", ">HtmlBlock", "<HtmlBlock", "<Document",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalkSkipChildrenAndStop(t *testing.T) {
	tr, list, _ := buildSample(t)

	var visited []Kind
	tr.Walk(tr.Root(), func(id NodeID, entering bool) WalkStatus {
		if !entering {
			return WalkContinue
		}
		visited = append(visited, tr.Kind(id))
		if id == list {
			return WalkSkipChildren
		}
		return WalkContinue
	})
	if diff := cmp.Diff([]Kind{KindDocument, KindList, KindHTMLBlock}, visited); diff != "" {
		t.Fatalf("skip children mismatch (-want +got):\n%s", diff)
	}

	count := 0
	tr.Walk(tr.Root(), func(NodeID, bool) WalkStatus {
		count++
		return WalkStop
	})
	if count != 1 {
		t.Fatalf("expected walk to stop after first callback, got %d calls", count)
	}
}

func TestPostOrderVisitsChildrenFirst(t *testing.T) {
	tr, _, _ := buildSample(t)

	var order []Kind
	tr.PostOrder(tr.Root(), func(id NodeID) {
		order = append(order, tr.Kind(id))
	})
	want := []Kind{KindText, KindParagraph, KindItem, KindList, KindHTMLBlock, KindDocument}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("post-order mismatch (-want +got):\n%s", diff)
	}
	if len(order) != tr.Len() {
		t.Fatalf("expected every node once, got %d of %d", len(order), tr.Len())
	}
}

func TestWalkHandlesDeepNesting(t *testing.T) {
	tr := New()
	parent := tr.Root()
	for i := 0; i < 100000; i++ {
		parent = tr.Append(parent, Node{Kind: KindOther})
	}
	visited := 0
	tr.PostOrder(tr.Root(), func(NodeID) { visited++ })
	if visited != tr.Len() {
		t.Fatalf("expected %d visits, got %d", tr.Len(), visited)
	}
}
