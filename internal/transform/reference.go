package transform

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-olist/internal/tree"
)

const referencePrefix = "(cur"

// ResolveReferences numbers the Item children of list from start and rewrites
// every (cur±N) reference found in text below each item. It returns the number
// of items numbered and the number of references replaced.
func ResolveReferences(t *tree.Tree, list tree.NodeID, start int) (items, resolved int) {
	position := int32(start)
	for _, child := range t.Children(list) {
		if t.Kind(child) != tree.KindItem {
			continue
		}
		items++
		t.Descendants(child, func(id tree.NodeID) {
			node, ok := t.Node(id)
			if !ok || node.Kind != tree.KindText {
				return
			}
			replaced, count := ReplaceReferences(node.Literal, position)
			if count > 0 {
				t.SetText(id, replaced)
				resolved += count
			}
		})
		position++
	}
	return items, resolved
}

// ReplaceReferences substitutes every "(cur+N)" / "(cur-N)" in text with
// "(current+N)". Offsets outside the int32 range are left as written.
// Addition wraps on int32 overflow.
func ReplaceReferences(text string, current int32) (string, int) {
	if !strings.Contains(text, referencePrefix) {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))
	count := 0
	rest := text
	for {
		idx := strings.Index(rest, referencePrefix)
		if idx < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:idx])
		candidate := rest[idx:]

		end, ok := matchReference(candidate)
		if !ok {
			b.WriteString(referencePrefix)
			rest = candidate[len(referencePrefix):]
			continue
		}

		offset, err := strconv.ParseInt(candidate[len(referencePrefix):end-1], 10, 32)
		if err != nil {
			b.WriteString(candidate[:end])
		} else {
			b.WriteByte('(')
			b.WriteString(strconv.FormatInt(int64(current+int32(offset)), 10))
			b.WriteByte(')')
			count++
		}
		rest = candidate[end:]
	}
	return b.String(), count
}

// matchReference reports whether s starts with "(cur", a sign, one or more
// ASCII digits and ")". end is the index just past the closing paren.
func matchReference(s string) (end int, ok bool) {
	i := len(referencePrefix)
	if i >= len(s) || (s[i] != '+' && s[i] != '-') {
		return 0, false
	}
	i++
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits || i >= len(s) || s[i] != ')' {
		return 0, false
	}
	return i + 1, true
}
