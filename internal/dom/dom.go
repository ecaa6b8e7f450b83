// Package dom wraps golang.org/x/net/html with the small node surface the
// repricing pipeline needs: aggregated text, inner-markup read/overwrite,
// and parent/child navigation. The pipeline never creates or destroys
// nodes; it only reads and rewrites the inner markup of located elements.
package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Node is one node of a parsed HTML document.
type Node struct {
	n *html.Node
}

// Parse reads an HTML document and returns its root node.
func Parse(r io.Reader) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Node{n: doc}, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(src string) (*Node, error) {
	return Parse(strings.NewReader(src))
}

// Same reports whether two wrappers refer to the same underlying node.
func (nd *Node) Same(o *Node) bool {
	return o != nil && nd.n == o.n
}

// Parent returns the parent node, or nil at the root.
func (nd *Node) Parent() *Node {
	if nd.n.Parent == nil {
		return nil
	}
	return &Node{n: nd.n.Parent}
}

// Tag returns the element's tag name, or "" for non-element nodes.
func (nd *Node) Tag() string {
	if nd.n.Type != html.ElementNode {
		return ""
	}
	return nd.n.Data
}

// IsElement reports whether the node is an element.
func (nd *Node) IsElement() bool {
	return nd.n.Type == html.ElementNode
}

// ElementChildren returns the node's direct element children in document order.
func (nd *Node) ElementChildren() []*Node {
	var out []*Node
	for c := nd.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Node{n: c})
		}
	}
	return out
}

// Text returns the concatenated text content of the node and its descendants.
func (nd *Node) Text() string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(nd.n)
	return buf.String()
}

// InnerHTML serializes the node's children.
func (nd *Node) InnerHTML() (string, error) {
	var buf strings.Builder
	for c := nd.n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render inner html: %w", err)
		}
	}
	return buf.String(), nil
}

// SetInnerHTML replaces the node's children with the parsed fragment.
// Only valid on element nodes; fragment parsing uses the node itself as
// context so content models (td, li, ...) behave as in a full document.
func (nd *Node) SetInnerHTML(markup string) error {
	if nd.n.Type != html.ElementNode {
		return fmt.Errorf("set inner html: not an element node")
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), nd.n)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	for c := nd.n.FirstChild; c != nil; {
		next := c.NextSibling
		nd.n.RemoveChild(c)
		c = next
	}
	for _, c := range nodes {
		nd.n.AppendChild(c)
	}
	return nil
}

// Render serializes the node and its subtree (outer HTML).
func (nd *Node) Render() (string, error) {
	var buf strings.Builder
	if err := html.Render(&buf, nd.n); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
