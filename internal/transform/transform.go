// Package transform converts bullet lists enclosed by ol marker comments into
// ordered lists and resolves (cur±N) references inside the converted items.
package transform

import (
	"strings"

	"github.com/goliatone/go-olist/internal/tree"
)

const (
	// StartMarker opens a conversion region.
	StartMarker = "<!-- ol -->"
	// EndMarker closes a conversion region.
	EndMarker = "<!-- /ol -->"
)

// Stats summarises what a pass changed.
type Stats struct {
	StartMarkers       int
	EndMarkers         int
	ListsConverted     int
	ItemsNumbered      int
	ReferencesResolved int
	// UnterminatedRegions counts parents whose children ended while a region
	// was still open. Lists after such a start marker are still converted.
	UnterminatedRegions int
}

// Changed reports whether the pass mutated the tree.
func (s Stats) Changed() bool {
	return s.ListsConverted > 0
}

// Apply runs the conversion over every node of t, children before parents.
func Apply(t *tree.Tree) Stats {
	var stats Stats
	if t == nil {
		return stats
	}
	t.PostOrder(t.Root(), func(id tree.NodeID) {
		convertRegions(t, id, &stats)
	})
	return stats
}

// convertRegions scans the direct children of parent for marker regions and
// converts the bullet lists found inside them.
func convertRegions(t *tree.Tree, parent tree.NodeID, stats *Stats) {
	children := t.Children(parent)
	if len(children) == 0 {
		return
	}

	convertMode := false
	var pending []tree.NodeID
	for _, child := range children {
		node, ok := t.Node(child)
		if !ok {
			continue
		}
		switch {
		case node.Kind == tree.KindHTMLBlock:
			switch strings.TrimSpace(node.Literal) {
			case StartMarker:
				convertMode = true
				stats.StartMarkers++
			case EndMarker:
				convertMode = false
				stats.EndMarkers++
			}
		case convertMode && node.Kind == tree.KindList && node.List.Kind == tree.ListBullet:
			pending = append(pending, child)
		}
	}
	if convertMode {
		stats.UnterminatedRegions++
	}

	for _, list := range pending {
		convertList(t, list, stats)
	}
}

// convertList flips a bullet list to an ordered list numbered from 1 and
// resolves references inside its items.
func convertList(t *tree.Tree, list tree.NodeID, stats *Stats) {
	node, ok := t.Node(list)
	if !ok {
		return
	}
	data := node.List
	data.Kind = tree.ListOrdered
	data.Start = 1
	if !t.SetList(list, data) {
		return
	}
	stats.ListsConverted++

	items, resolved := ResolveReferences(t, list, data.Start)
	stats.ItemsNumbered += items
	stats.ReferencesResolved += resolved
}
