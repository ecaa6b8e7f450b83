// Package splice rewrites a captured digit run inside a markup string.
// The original string is consumed as immutable input; the result is built
// by copying untouched spans and substituting the mapped positions, so
// every byte outside the offset map survives unchanged.
package splice

import "strings"

// Replace substitutes the characters of markup at the given offsets with
// repl, right-aligned: the last offset receives the last character of repl
// and so on leftward. When repl is shorter than the offset map, the
// leftmost unmatched offsets are deleted; when it is longer, the leftover
// prefix is inserted at the first offset. Offsets must be strictly
// increasing, as produced by the extractor.
func Replace(markup string, offsets []int, repl string) string {
	if len(offsets) == 0 {
		return markup
	}

	shift := len(repl) - len(offsets)
	var b strings.Builder
	b.Grow(len(markup) + shift)

	prev := 0
	for i, off := range offsets {
		b.WriteString(markup[prev:off])
		j := i + shift
		switch {
		case j < 0:
			// Replacement exhausted; this position is deleted.
		case i == 0 && shift > 0:
			b.WriteString(repl[:shift+1])
		default:
			b.WriteByte(repl[j])
		}
		prev = off + 1
	}
	b.WriteString(markup[prev:])

	return b.String()
}
