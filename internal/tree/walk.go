package tree

// WalkStatus tells Walk how to continue after a callback.
type WalkStatus uint8

const (
	WalkContinue WalkStatus = iota
	WalkSkipChildren
	WalkStop
)

// Walker is invoked twice per node: once entering, once leaving. Leaving
// calls are skipped for nodes whose entering call returned WalkSkipChildren.
type Walker func(id NodeID, entering bool) WalkStatus

type frame struct {
	id    NodeID
	next  int
	enter bool
}

// Walk traverses the subtree rooted at id depth-first using an explicit
// stack, so deeply nested input cannot exhaust the goroutine stack.
func (t *Tree) Walk(id NodeID, fn Walker) {
	if !t.valid(id) || fn == nil {
		return
	}
	stack := []frame{{id: id, enter: true}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.enter {
			top.enter = false
			switch fn(top.id, true) {
			case WalkStop:
				return
			case WalkSkipChildren:
				stack = stack[:len(stack)-1]
				continue
			}
		}
		children := t.nodes[top.id].children
		if top.next < len(children) {
			child := children[top.next]
			top.next++
			stack = append(stack, frame{id: child, enter: true})
			continue
		}
		current := top.id
		stack = stack[:len(stack)-1]
		if fn(current, false) == WalkStop {
			return
		}
	}
}

// PostOrder visits every node below and including id exactly once, children
// before their parent.
func (t *Tree) PostOrder(id NodeID, visit func(NodeID)) {
	if visit == nil {
		return
	}
	t.Walk(id, func(n NodeID, entering bool) WalkStatus {
		if !entering {
			visit(n)
		}
		return WalkContinue
	})
}

// Descendants visits every node strictly below id in document order.
func (t *Tree) Descendants(id NodeID, visit func(NodeID)) {
	if visit == nil {
		return
	}
	t.Walk(id, func(n NodeID, entering bool) WalkStatus {
		if entering && n != id {
			visit(n)
		}
		return WalkContinue
	})
}
