package domadapter

import (
	"bytes"

	"github.com/acsamson/range-kit/dom"
	"github.com/antchfx/xpath"
)

// nodeNavigator adapts *dom.Node to antchfx/xpath's NodeNavigator, grounded
// on the same child-index/attribute-index bookkeeping a styled-tree
// adapter uses for an immutable, indexed tree (see the xpathadapter
// reference in this module's design notes). It only needs to support
// forward traversal and attribute lookup for the legacy XPath path format.
type nodeNavigator struct {
	root, current *dom.Node
	attr          int
}

func newNodeNavigator(root *dom.Node) *nodeNavigator {
	return &nodeNavigator{root: root, current: root, attr: -1}
}

func (nav *nodeNavigator) NodeType() xpath.NodeType {
	if nav.attr != -1 {
		return xpath.AttributeNode
	}
	switch nav.current.NodeType() {
	case dom.DocumentNode:
		return xpath.RootNode
	case dom.ElementNode:
		return xpath.ElementNode
	case dom.TextNode, dom.CDATASectionNode:
		return xpath.TextNode
	case dom.CommentNode:
		return xpath.CommentNode
	default:
		return xpath.RootNode
	}
}

func (nav *nodeNavigator) attrs() []*dom.Attr {
	if nav.current.NodeType() != dom.ElementNode {
		return nil
	}
	el := (*dom.Element)(nav.current)
	nm := el.Attributes()
	out := make([]*dom.Attr, nm.Length())
	for i := range out {
		out[i] = nm.Item(i)
	}
	return out
}

func (nav *nodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return nav.attrs()[nav.attr].LocalName()
	}
	if nav.current.NodeType() == dom.ElementNode {
		return (*dom.Element)(nav.current).LocalName()
	}
	return ""
}

func (nav *nodeNavigator) Prefix() string {
	return ""
}

func (nav *nodeNavigator) Value() string {
	if nav.attr != -1 {
		return nav.attrs()[nav.attr].NodeValue()
	}
	switch nav.current.NodeType() {
	case dom.TextNode, dom.CDATASectionNode, dom.CommentNode:
		return nav.current.NodeValue()
	case dom.ElementNode:
		return innerText(nav.current)
	}
	return ""
}

func innerText(n *dom.Node) string {
	var buf bytes.Buffer
	var walk func(*dom.Node)
	walk = func(n *dom.Node) {
		if n.NodeType() == dom.TextNode {
			buf.WriteString(n.NodeValue())
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func (nav *nodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *nodeNavigator) MoveToRoot() {
	nav.current = nav.root
	nav.attr = -1
}

func (nav *nodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1
		return true
	}
	if nav.current == nav.root {
		return false
	}
	parent := nav.current.ParentNode()
	if parent == nil {
		return false
	}
	nav.current = parent
	return true
}

func (nav *nodeNavigator) MoveToNextAttribute() bool {
	attrs := nav.attrs()
	if nav.attr+1 >= len(attrs) {
		return false
	}
	nav.attr++
	return true
}

func (nav *nodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	child := nav.current.FirstChild()
	if child == nil {
		return false
	}
	nav.current = child
	return true
}

func (nav *nodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || nav.current == nav.root {
		return false
	}
	parent := nav.current.ParentNode()
	if parent == nil {
		return false
	}
	first := parent.FirstChild()
	if first == nil {
		return false
	}
	nav.current = first
	return true
}

func (nav *nodeNavigator) MoveToNext() bool {
	if nav.attr != -1 {
		return false
	}
	next := nav.current.NextSibling()
	if next == nil {
		return false
	}
	nav.current = next
	return true
}

func (nav *nodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 {
		return false
	}
	prev := nav.current.PreviousSibling()
	if prev == nil {
		return false
	}
	nav.current = prev
	return true
}

func (nav *nodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*nodeNavigator)
	if !ok || o.root != nav.root {
		return false
	}
	nav.current = o.current
	nav.attr = o.attr
	return true
}

func (nav *nodeNavigator) String() string {
	return nav.Value()
}

var _ xpath.NodeNavigator = (*nodeNavigator)(nil)
