//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gls

import (
	"html"
	"strings"
)

// Node - a presentation node; Class is styling only, Tags are the toggle vocabulary. An empty Elem is a bare text node.
type Node struct {
	Elem     string
	Class    []string
	Tags     []string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Attr - attributes keep their insertion order so that output is byte-stable
type Attr struct {
	Key string
	Val string
}

var voidelements = map[string]bool{"input": true, "br": true, "hr": true}

func el(elem string, class ...string) *Node {
	return &Node{Elem: elem, Class: class}
}

func txt(s string) *Node {
	return &Node{Text: s}
}

// Add - append children and return the parent
func (n *Node) Add(kids ...*Node) *Node {
	n.Children = append(n.Children, kids...)
	return n
}

// Tag - attach toggle tags and return the node
func (n *Node) Tag(tags ...string) *Node {
	n.Tags = append(n.Tags, tags...)
	return n
}

// Set - add an attribute and return the node
func (n *Node) Set(k string, v string) *Node {
	n.Attrs = append(n.Attrs, Attr{Key: k, Val: v})
	return n
}

// HasTag - does the node itself carry the tag (descendants are not consulted)
func (n *Node) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Walk - depth-first in document order; parent is nil for the starting node
func (n *Node) Walk(fn func(node *Node, parent *Node)) {
	var walk func(c *Node, p *Node)
	walk = func(c *Node, p *Node) {
		fn(c, p)
		for _, k := range c.Children {
			walk(k, c)
		}
	}
	walk(n, nil)
}

// Find - every node in document order carrying the tag
func (n *Node) Find(tag string) []*Node {
	var found []*Node
	n.Walk(func(c *Node, _ *Node) {
		if c.HasTag(tag) {
			found = append(found, c)
		}
	})
	return found
}

// HTML - project the node into markup; tags and styling classes share the class attribute
func (n *Node) HTML() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n.Elem == "" {
		sb.WriteString(html.EscapeString(n.Text))
		return
	}

	sb.WriteString("<")
	sb.WriteString(n.Elem)
	if cl := n.classes(); len(cl) > 0 {
		sb.WriteString(` class="`)
		sb.WriteString(html.EscapeString(strings.Join(cl, " ")))
		sb.WriteString(`"`)
	}
	for _, a := range n.Attrs {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		if a.Val != "" {
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(a.Val))
			sb.WriteString(`"`)
		}
	}
	sb.WriteString(">")

	if voidelements[n.Elem] {
		return
	}

	sb.WriteString(html.EscapeString(n.Text))
	for _, k := range n.Children {
		k.write(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.Elem)
	sb.WriteString(">")
}

func (n *Node) classes() []string {
	cl := make([]string, 0, len(n.Class)+len(n.Tags))
	cl = append(cl, n.Class...)
	return append(cl, n.Tags...)
}
