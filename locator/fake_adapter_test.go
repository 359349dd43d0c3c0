package locator

import "strings"

// fakeNode is a minimal hand-built tree node used to unit-test the
// cascade in isolation from the dom package, the way the teacher's own
// css tests build small literal dom.Document trees rather than parsing
// HTML fixtures.
type fakeNode struct {
	tag      string
	id       string
	classes  []string
	attrs    map[string]string
	text     string // non-empty only for text nodes
	parent   *fakeNode
	children []*fakeNode
}

func elem(tag string, attrs map[string]string, kids ...*fakeNode) *fakeNode {
	n := &fakeNode{tag: tag, attrs: attrs}
	if attrs != nil {
		n.id = attrs["id"]
		if cls, ok := attrs["class"]; ok {
			n.classes = strings.Fields(cls)
		}
	}
	for _, k := range kids {
		k.parent = n
		n.children = append(n.children, k)
	}
	return n
}

func text(s string) *fakeNode {
	return &fakeNode{text: s}
}

// fakeAdapter implements TreeAdapter over a tree of *fakeNode.
type fakeAdapter struct{ root *fakeNode }

func toFake(h interface{}) *fakeNode {
	if h == nil {
		return nil
	}
	n, _ := h.(*fakeNode)
	return n
}

func (a *fakeAdapter) scopeRoot(scope ElementHandle) *fakeNode {
	if n := toFake(scope); n != nil {
		return n
	}
	return a.root
}

func walkFake(root *fakeNode, visit func(*fakeNode) bool) bool {
	for _, c := range root.children {
		if c.tag != "" && visit(c) {
			return true
		}
		if walkFake(c, visit) {
			return true
		}
	}
	return false
}

func (a *fakeAdapter) GetElementByID(scope ElementHandle, id string) ElementHandle {
	var found *fakeNode
	walkFake(a.scopeRoot(scope), func(n *fakeNode) bool {
		if n.id == id {
			found = n
			return true
		}
		return false
	})
	if found == nil {
		return nil
	}
	return found
}

func (a *fakeAdapter) QueryByAttribute(scope ElementHandle, attrName, value string) ElementHandle {
	var found *fakeNode
	walkFake(a.scopeRoot(scope), func(n *fakeNode) bool {
		if n.attrs[attrName] == value && value != "" {
			found = n
			return true
		}
		return false
	})
	if found == nil {
		return nil
	}
	return found
}

// QuerySelector supports the tiny subset this test suite needs: a bare
// tag, "tag#id", or "tag.class".
func (a *fakeAdapter) QuerySelector(scope ElementHandle, expr string) ElementHandle {
	tag, id, class := expr, "", ""
	if i := strings.IndexByte(expr, '#'); i >= 0 {
		tag, id = expr[:i], expr[i+1:]
	} else if i := strings.IndexByte(expr, '.'); i >= 0 {
		tag, class = expr[:i], expr[i+1:]
	}
	var found *fakeNode
	walkFake(a.scopeRoot(scope), func(n *fakeNode) bool {
		if tag != "" && n.tag != tag {
			return false
		}
		if id != "" && n.id != id {
			return false
		}
		if class != "" {
			ok := false
			for _, c := range n.classes {
				if c == class {
					ok = true
				}
			}
			if !ok {
				return false
			}
		}
		found = n
		return true
	})
	if found == nil {
		return nil
	}
	return found
}

func (a *fakeAdapter) QueryAll(scope ElementHandle, tag string) []ElementHandle {
	var out []ElementHandle
	walkFake(a.scopeRoot(scope), func(n *fakeNode) bool {
		if tag == "*" || n.tag == tag {
			out = append(out, n)
		}
		return false
	})
	return out
}

func (a *fakeAdapter) Children(h ElementHandle) []ElementHandle {
	n := toFake(h)
	var out []ElementHandle
	for _, c := range n.children {
		if c.tag != "" {
			out = append(out, c)
		}
	}
	return out
}

func (a *fakeAdapter) Parent(h ElementHandle) ElementHandle {
	n := toFake(h)
	if n == nil || n.parent == nil || n.parent.tag == "" {
		return nil
	}
	return n.parent
}

func (a *fakeAdapter) Tag(h ElementHandle) string     { return toFake(h).tag }
func (a *fakeAdapter) ID(h ElementHandle) string      { return toFake(h).id }
func (a *fakeAdapter) Classes(h ElementHandle) []string { return toFake(h).classes }

func (a *fakeAdapter) Attr(h ElementHandle, name string) (string, bool) {
	n := toFake(h)
	v, ok := n.attrs[name]
	return v, ok
}

func order(root, target *fakeNode, counter *int, found *int) {
	if root == target {
		*found = *counter
	}
	*counter++
	for _, c := range root.children {
		order(c, target, counter, found)
	}
}

func (a *fakeAdapter) position(n *fakeNode) int {
	counter, found := 0, -1
	order(a.root, n, &counter, &found)
	return found
}

func (a *fakeAdapter) IsBefore(h1, h2 ElementHandle) bool {
	return a.position(toFake(h1)) < a.position(toFake(h2))
}

func (a *fakeAdapter) Contains(h1, h2 ElementHandle) bool {
	n1, n2 := toFake(h1), toFake(h2)
	for cur := n2; cur != nil; cur = cur.parent {
		if cur == n1 {
			return true
		}
	}
	return false
}

func (a *fakeAdapter) TextContent(h ElementHandle) string {
	n := toFake(h)
	var sb strings.Builder
	var walk func(*fakeNode)
	walk = func(n *fakeNode) {
		if n.text != "" {
			sb.WriteString(n.text)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func (a *fakeAdapter) WalkTextNodes(h ElementHandle) []TextNodeInfo {
	n := toFake(h)
	var out []TextNodeInfo
	var walk func(*fakeNode)
	walk = func(n *fakeNode) {
		for _, c := range n.children {
			if c.text != "" {
				out = append(out, TextNodeInfo{Node: c, Length: len([]rune(c.text))})
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func (a *fakeAdapter) TextParent(h TextHandle) ElementHandle {
	n := toFake(h)
	if n == nil {
		return nil
	}
	return n.parent
}

func (a *fakeAdapter) TextData(h TextHandle) string {
	return toFake(h).text
}

func (a *fakeAdapter) MakeRange(startNode TextHandle, startOffset int, endNode TextHandle, endOffset int) RangeHandle {
	return Range{StartContainer: startNode, StartOffset: startOffset, EndContainer: endNode, EndOffset: endOffset}
}

func (a *fakeAdapter) RangeText(h RangeHandle) string {
	r := h.(Range)
	startEl := a.TextParent(r.StartContainer)
	root := startEl
	for root.parent != nil {
		root = root.parent
	}
	nodes := a.WalkTextNodes(root)
	var sb strings.Builder
	recording := false
	for _, tn := range nodes {
		s := toFake(tn.Node).text
		lo, hi := 0, len([]rune(s))
		if tn.Node == r.StartContainer {
			recording = true
			lo = r.StartOffset
		}
		if tn.Node == r.EndContainer {
			hi = r.EndOffset
			if recording {
				sb.WriteString(string([]rune(s)[lo:hi]))
				break
			}
		}
		if recording {
			sb.WriteString(string([]rune(s)[lo:hi]))
		}
	}
	return sb.String()
}

func (a *fakeAdapter) CloneRange(h RangeHandle) RangeHandle {
	return h
}

var _ TreeAdapter = (*fakeAdapter)(nil)
