// Package domadapter binds the locator package's TreeAdapter capability
// interface to the in-memory DOM implemented in the dom package, the way
// the css package's matcher binds selector matching to the same dom.Element
// type. It resolves path expressions through the real css selector engine
// (selector.go/matcher.go) and, for legacy XPath expressions, through
// github.com/antchfx/xpath.
package domadapter

import (
	"strings"

	"github.com/acsamson/range-kit/css"
	"github.com/acsamson/range-kit/dom"
	"github.com/acsamson/range-kit/locator"
	"github.com/antchfx/xpath"
)

// Adapter implements locator.TreeAdapter over a single dom.Document.
// ElementHandle and TextHandle values it produces and accepts are always
// *dom.Element and *dom.Node respectively.
type Adapter struct {
	doc *dom.Document
}

// New returns an Adapter bound to doc.
func New(doc *dom.Document) *Adapter {
	return &Adapter{doc: doc}
}

var _ locator.TreeAdapter = (*Adapter)(nil)

func toElement(h locator.ElementHandle) *dom.Element {
	if h == nil {
		return nil
	}
	el, _ := h.(*dom.Element)
	return el
}

func toTextNode(h locator.TextHandle) *dom.Node {
	if h == nil {
		return nil
	}
	n, _ := h.(*dom.Node)
	return n
}

func (a *Adapter) scopeNode(scope locator.ElementHandle) *dom.Node {
	if el := toElement(scope); el != nil {
		return el.AsNode()
	}
	return a.doc.AsNode()
}

// walkElements visits every descendant element of root in document order.
func walkElements(root *dom.Node, visit func(*dom.Element) bool) bool {
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if child.NodeType() == dom.ElementNode {
			el := (*dom.Element)(child)
			if visit(el) {
				return true
			}
		}
		if walkElements(child, visit) {
			return true
		}
	}
	return false
}

func (a *Adapter) GetElementByID(scope locator.ElementHandle, id string) locator.ElementHandle {
	if id == "" {
		return nil
	}
	if scope == nil {
		if el := a.doc.GetElementById(id); el != nil {
			return el
		}
		return nil
	}
	var found *dom.Element
	walkElements(a.scopeNode(scope), func(el *dom.Element) bool {
		if el.Id() == id {
			found = el
			return true
		}
		return false
	})
	if found == nil {
		return nil
	}
	return found
}

func (a *Adapter) QueryByAttribute(scope locator.ElementHandle, attrName, value string) locator.ElementHandle {
	var found *dom.Element
	walkElements(a.scopeNode(scope), func(el *dom.Element) bool {
		if el.HasAttribute(attrName) && el.GetAttribute(attrName) == value {
			found = el
			return true
		}
		return false
	})
	if found == nil {
		return nil
	}
	return found
}

// QuerySelector resolves pathExpression through the real css selector
// engine when it parses as one (the spec §3.4 grammar is a strict subset
// of CSS); otherwise it falls back to evaluating it as an XPath expression
// via github.com/antchfx/xpath, for descriptors carrying the legacy path
// format.
func (a *Adapter) QuerySelector(scope locator.ElementHandle, pathExpression string) locator.ElementHandle {
	if pathExpression == "" {
		return nil
	}

	if sel, err := css.ParseSelector(pathExpression); err == nil {
		var scopeEl *dom.Element
		ctx := &css.MatchContext{}
		if el := toElement(scope); el != nil {
			scopeEl = el
			ctx.ScopeElement = el
		}
		var found *dom.Element
		root := a.scopeNode(scope)
		if scopeEl != nil && sel.MatchElementWithContext(scopeEl, ctx) {
			found = scopeEl
		}
		if found == nil {
			walkElements(root, func(el *dom.Element) bool {
				if sel.MatchElementWithContext(el, ctx) {
					found = el
					return true
				}
				return false
			})
		}
		if found != nil {
			return found
		}
	}

	return a.queryXPath(scope, pathExpression)
}

func (a *Adapter) queryXPath(scope locator.ElementHandle, expr string) locator.ElementHandle {
	compiled, err := xpath.Compile(expr)
	if err != nil {
		return nil
	}
	nav := newNodeNavigator(a.scopeNode(scope))
	iter := compiled.Select(nav)
	if !iter.MoveNext() {
		return nil
	}
	resultNav, ok := iter.Current().(*nodeNavigator)
	if !ok || resultNav.current.NodeType() != dom.ElementNode {
		return nil
	}
	return (*dom.Element)(resultNav.current)
}

func (a *Adapter) QueryAll(scope locator.ElementHandle, tag string) []locator.ElementHandle {
	var out []locator.ElementHandle
	walkElements(a.scopeNode(scope), func(el *dom.Element) bool {
		if tag == "*" || strings.EqualFold(el.TagName(), tag) {
			out = append(out, el)
		}
		return false
	})
	return out
}

func (a *Adapter) Children(h locator.ElementHandle) []locator.ElementHandle {
	el := toElement(h)
	if el == nil {
		return nil
	}
	var out []locator.ElementHandle
	node := el.AsNode()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.NodeType() == dom.ElementNode {
			out = append(out, (*dom.Element)(child))
		}
	}
	return out
}

func (a *Adapter) Parent(h locator.ElementHandle) locator.ElementHandle {
	el := toElement(h)
	if el == nil {
		return nil
	}
	parent := el.AsNode().ParentElement()
	if parent == nil {
		return nil
	}
	return parent
}

func (a *Adapter) Tag(h locator.ElementHandle) string {
	el := toElement(h)
	if el == nil {
		return ""
	}
	return strings.ToLower(el.TagName())
}

func (a *Adapter) ID(h locator.ElementHandle) string {
	el := toElement(h)
	if el == nil {
		return ""
	}
	return el.Id()
}

func (a *Adapter) Classes(h locator.ElementHandle) []string {
	el := toElement(h)
	if el == nil {
		return nil
	}
	cn := strings.TrimSpace(el.ClassName())
	if cn == "" {
		return nil
	}
	return strings.Fields(cn)
}

func (a *Adapter) Attr(h locator.ElementHandle, name string) (string, bool) {
	el := toElement(h)
	if el == nil || !el.HasAttribute(name) {
		return "", false
	}
	return el.GetAttribute(name), true
}

func (a *Adapter) IsBefore(h1, h2 locator.ElementHandle) bool {
	e1, e2 := toElement(h1), toElement(h2)
	if e1 == nil || e2 == nil {
		return false
	}
	pos := e1.AsNode().CompareDocumentPosition(e2.AsNode())
	const documentPositionFollowing = 0x04
	return pos&documentPositionFollowing != 0
}

func (a *Adapter) Contains(h1, h2 locator.ElementHandle) bool {
	e1, e2 := toElement(h1), toElement(h2)
	if e1 == nil || e2 == nil {
		return false
	}
	return e1.AsNode().Contains(e2.AsNode())
}

func (a *Adapter) TextContent(h locator.ElementHandle) string {
	el := toElement(h)
	if el == nil {
		return ""
	}
	return el.TextContent()
}

func (a *Adapter) WalkTextNodes(h locator.ElementHandle) []locator.TextNodeInfo {
	el := toElement(h)
	if el == nil {
		return nil
	}
	var out []locator.TextNodeInfo
	var walk func(*dom.Node)
	walk = func(n *dom.Node) {
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if child.NodeType() == dom.TextNode {
				out = append(out, locator.TextNodeInfo{Node: child, Length: len([]rune(child.NodeValue()))})
				continue
			}
			walk(child)
		}
	}
	walk(el.AsNode())
	return out
}

func (a *Adapter) TextParent(h locator.TextHandle) locator.ElementHandle {
	n := toTextNode(h)
	if n == nil {
		return nil
	}
	parent := n.ParentElement()
	if parent == nil {
		return nil
	}
	return parent
}

func (a *Adapter) TextData(h locator.TextHandle) string {
	n := toTextNode(h)
	if n == nil {
		return ""
	}
	return n.NodeValue()
}

func (a *Adapter) MakeRange(startNode locator.TextHandle, startOffset int, endNode locator.TextHandle, endOffset int) locator.RangeHandle {
	r := dom.NewRange(a.doc)
	_ = r.SetStart(toTextNode(startNode), startOffset)
	_ = r.SetEnd(toTextNode(endNode), endOffset)
	return r
}

func (a *Adapter) RangeText(h locator.RangeHandle) string {
	r, ok := h.(*dom.Range)
	if !ok || r == nil {
		return ""
	}
	return r.ToString()
}

func (a *Adapter) CloneRange(h locator.RangeHandle) locator.RangeHandle {
	r, ok := h.(*dom.Range)
	if !ok || r == nil {
		return nil
	}
	return r.CloneRange()
}
