// Package repricer composes the locate → extract → adjust → splice
// pipeline over a parsed document. The candidate list is frozen before any
// mutation, nodes are rewritten last-to-first and markers within a node
// right-to-left, so an edit never invalidates an offset that is still
// pending to its left.
package repricer

import (
	"fmt"
	"math"

	"github.com/dgallion1/repricer/internal/adjust"
	"github.com/dgallion1/repricer/internal/amount"
	"github.com/dgallion1/repricer/internal/dom"
	"github.com/dgallion1/repricer/internal/locate"
	"github.com/dgallion1/repricer/internal/splice"
)

// Options tune one Adjust invocation.
type Options struct {
	Marker byte // currency symbol; amount.DefaultMarker when zero
	Limit  int  // maximum matched nodes to process; 0 means unbounded
}

// Adjust locates every amount under root, applies adj to each, and splices
// the reformatted digits back into the owning node's markup in place. It
// returns the number of nodes rewritten. Nodes without occurrences are
// silently skipped; a node whose capture cannot be parsed is left
// untouched rather than partially rewritten.
func Adjust(root *dom.Node, adj adjust.Adjustment, opts Options) (int, error) {
	marker := opts.Marker
	if marker == 0 {
		marker = amount.DefaultMarker
	}

	candidates := locate.Find(root, marker, opts.Limit)

	rewritten := 0
	for i := len(candidates) - 1; i >= 0; i-- {
		node := candidates[i].Node
		changed, err := repriceNode(node, marker, adj)
		if err != nil {
			return rewritten, fmt.Errorf("reprice <%s> node: %w", node.Tag(), err)
		}
		if changed {
			rewritten++
		}
	}

	return rewritten, nil
}

// AdjustHTML parses a serialized HTML document, adjusts every amount in
// it, and returns the re-serialized document together with the number of
// nodes rewritten. adjustment uses the adjust.Parse syntax.
func AdjustHTML(src, adjustment string, opts Options) (string, int, error) {
	adj, err := adjust.Parse(adjustment)
	if err != nil {
		return "", 0, err
	}
	root, err := dom.ParseString(src)
	if err != nil {
		return "", 0, err
	}
	n, err := Adjust(root, adj, opts)
	if err != nil {
		return "", n, err
	}
	out, err := root.Render()
	if err != nil {
		return "", n, err
	}
	return out, n, nil
}

// repriceNode rewrites every amount in one node's inner markup. Markers
// are processed right-to-left: a rightward edit never shifts the offsets
// recorded for a marker to its left.
func repriceNode(node *dom.Node, marker byte, adj adjust.Adjustment) (bool, error) {
	markup, err := node.InnerHTML()
	if err != nil {
		return false, err
	}

	offsets := amount.MarkerOffsets(markup, marker)
	changed := false
	for i := len(offsets) - 1; i >= 0; i-- {
		tok := amount.Capture(markup, offsets[i])
		if tok.Empty() || math.IsNaN(tok.Value) {
			continue
		}
		formatted := adjust.Format(adj.Apply(tok.Value))
		markup = splice.Replace(markup, tok.Offsets, formatted)
		changed = true
	}
	if !changed {
		return false, nil
	}

	return true, node.SetInnerHTML(markup)
}
