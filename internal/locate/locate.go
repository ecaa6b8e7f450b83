// Package locate walks a document tree and selects the most specific
// elements containing marker-prefixed amounts.
package locate

import (
	"github.com/dgallion1/repricer/internal/amount"
	"github.com/dgallion1/repricer/internal/dom"
)

// Candidate pairs a located element with the number of amount occurrences
// in its aggregated text. The list never contains an ancestor/descendant
// pair with equal counts, and a descendant inside a larger matched block
// is dropped in favor of the ancestor.
type Candidate struct {
	Node  *dom.Node
	Count int
}

// Find traverses all descendant elements of root in document order and
// returns at most limit candidates (unbounded when limit <= 0). Pre-order
// traversal guarantees a container is visited before its children, which
// drives the parent/child disambiguation:
//
//   - equal occurrence counts: the child is the more specific container,
//     so the previously accepted parent is replaced by the child;
//   - parent count strictly greater: the child is noise inside a larger
//     matched block, so the child and its whole subtree are skipped.
//
// An empty result is valid; no text matching the amount pattern is not an
// error.
func Find(root *dom.Node, marker byte, limit int) []Candidate {
	var out []Candidate

	var walk func(parent *dom.Node) bool
	walk = func(parent *dom.Node) bool {
		for _, child := range parent.ElementChildren() {
			if limit > 0 && len(out) >= limit {
				return false
			}
			count := amount.Count(child.Text(), marker)
			if count > 0 {
				if len(out) > 0 && out[len(out)-1].Node.Same(child.Parent()) {
					last := out[len(out)-1]
					if last.Count == count {
						out[len(out)-1] = Candidate{Node: child, Count: count}
					} else {
						// Parent spans more amounts than this child;
						// the parent stays authoritative and the
						// child's subtree is excluded from the scan.
						continue
					}
				} else {
					out = append(out, Candidate{Node: child, Count: count})
				}
			}
			if !walk(child) {
				return false
			}
		}
		return true
	}
	walk(root)

	return out
}
