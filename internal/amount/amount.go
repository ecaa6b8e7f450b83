// Package amount recognizes and extracts marker-prefixed monetary amounts.
// The matcher runs over plain aggregated text; the extractor runs over
// serialized markup, skipping tags and recording a per-character offset map
// so the rewriter can splice a replacement back into the original string.
package amount

import (
	"math"
	"strconv"
	"strings"
)

// DefaultMarker is the currency symbol scanned for when none is configured.
const DefaultMarker byte = '$'

// Token is the result of one extraction: the captured digit/separator run,
// a same-length list of offsets into the source markup (strictly
// increasing), and the parsed numeric value. Tokens live for a single
// marker-processing step and are never persisted.
type Token struct {
	Chars   []byte
	Offsets []int
	Value   float64
}

// Empty reports whether the capture produced no usable digits.
func (t Token) Empty() bool {
	return len(t.Chars) == 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isRunChar(c byte) bool {
	return isDigit(c) || c == '.' || c == ','
}

// matchAt reports whether an amount starts at the marker position i in text,
// and the exclusive end of the matched run. An amount is the marker followed
// by a leading digit and any run of digits, periods and commas, or the
// marker directly followed by a two-digit fraction with no integer part.
func matchAt(text string, i int, marker byte) (int, bool) {
	if text[i] != marker {
		return 0, false
	}
	j := i + 1
	if j < len(text) && isDigit(text[j]) {
		for j < len(text) && isRunChar(text[j]) {
			j++
		}
		return j, true
	}
	// Fraction-only form: marker, period, exactly two digits.
	if j+2 < len(text) && text[j] == '.' && isDigit(text[j+1]) && isDigit(text[j+2]) {
		return j + 3, true
	}
	return 0, false
}

// Count returns how many amounts occur in plain text.
func Count(text string, marker byte) int {
	n := 0
	for i := 0; i < len(text); {
		if end, ok := matchAt(text, i, marker); ok {
			n++
			i = end
			continue
		}
		i++
	}
	return n
}

// Contains reports whether text holds at least one amount.
func Contains(text string, marker byte) bool {
	for i := 0; i < len(text); i++ {
		if _, ok := matchAt(text, i, marker); ok {
			return true
		}
	}
	return false
}

// MarkerOffsets returns the offsets of every marker character in markup
// that sits outside a tag, in ascending order. Markers inside tags
// (attribute values, for instance) are never amount starts.
func MarkerOffsets(markup string, marker byte) []int {
	var offs []int
	inTag := false
	for i := 0; i < len(markup); i++ {
		c := markup[i]
		switch {
		case inTag:
			if c == '>' {
				inTag = false
			}
		case c == '<':
			inTag = true
		case c == marker:
			offs = append(offs, i)
		}
	}
	return offs
}

// Capture scans markup forward from the character after markerOffset and
// collects the digit/separator run, skipping over tags. Each captured
// character is recorded together with its offset in markup. Trailing
// periods and commas are trimmed from both sequences before the numeric
// value is parsed; a run cannot end in a separator.
func Capture(markup string, markerOffset int) Token {
	var tok Token
	inTag := false
	for i := markerOffset + 1; i < len(markup); i++ {
		c := markup[i]
		if inTag {
			if c == '>' {
				inTag = false
			}
			continue
		}
		if c == '<' {
			inTag = true
			continue
		}
		if !isRunChar(c) {
			break
		}
		tok.Chars = append(tok.Chars, c)
		tok.Offsets = append(tok.Offsets, i)
	}

	for len(tok.Chars) > 0 && !isDigit(tok.Chars[len(tok.Chars)-1]) {
		tok.Chars = tok.Chars[:len(tok.Chars)-1]
		tok.Offsets = tok.Offsets[:len(tok.Offsets)-1]
	}

	tok.Value = parseRun(tok.Chars)
	return tok
}

// parseRun strips grouping separators and parses the run as a float.
// Only the first decimal point is meaningful: "1.2.3" parses as 1.2,
// though the splice still replaces the full captured run. An empty run
// yields NaN; the caller must not splice a NaN result.
func parseRun(run []byte) float64 {
	if len(run) == 0 {
		return math.NaN()
	}
	cleaned := strings.ReplaceAll(string(run), ",", "")
	if i := strings.IndexByte(cleaned, '.'); i >= 0 {
		if j := strings.IndexByte(cleaned[i+1:], '.'); j >= 0 {
			cleaned = cleaned[:i+1+j]
		}
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
