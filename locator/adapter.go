package locator

// ElementHandle is an opaque reference to a host-tree element. The core
// never dereferences it; it is passed back to the TreeAdapter that minted
// it. A nil ElementHandle denotes "no element".
type ElementHandle interface{}

// TextHandle is an opaque reference to a host-tree text node.
type TextHandle interface{}

// RangeHandle is an opaque reference to a host-tree Range-like value
// produced by TreeAdapter.MakeRange.
type RangeHandle interface{}

// TextNodeInfo is one entry yielded while walking the text nodes under an
// element in document order.
type TextNodeInfo struct {
	Node   TextHandle
	Length int
}

// TreeAdapter is the capability interface the core needs from any host
// tree. Implementations bind it to a concrete tree: a browser DOM, a parsed
// HTML AST, or an in-memory tree. See spec §6.1; method names below mirror
// the spec's illustrative names in Go style.
type TreeAdapter interface {
	// GetElementByID looks up an element by its id attribute within scope.
	// scope may be nil to search the whole tree.
	GetElementByID(scope ElementHandle, id string) ElementHandle

	// QueryByAttribute looks up the first element within scope carrying
	// attrName == value.
	QueryByAttribute(scope ElementHandle, attrName, value string) ElementHandle

	// QuerySelector resolves a path expression (spec §3.4 grammar, or a
	// legacy XPath expression) to its first match within scope.
	QuerySelector(scope ElementHandle, pathExpression string) ElementHandle

	// QueryAll returns every element of the given tag within scope, in
	// document order.
	QueryAll(scope ElementHandle, tag string) []ElementHandle

	Children(el ElementHandle) []ElementHandle
	Parent(el ElementHandle) ElementHandle

	Tag(el ElementHandle) string
	ID(el ElementHandle) string
	Classes(el ElementHandle) []string
	Attr(el ElementHandle, name string) (string, bool)

	// IsBefore reports whether a precedes b in document order.
	IsBefore(a, b ElementHandle) bool
	// Contains reports whether a is an inclusive ancestor of b.
	Contains(a, b ElementHandle) bool

	TextContent(el ElementHandle) string

	// WalkTextNodes yields the text nodes under el in document order.
	WalkTextNodes(el ElementHandle) []TextNodeInfo

	// TextParent returns the nearest ancestor element of a text node.
	TextParent(t TextHandle) ElementHandle

	// TextData returns a text node's string payload.
	TextData(t TextHandle) string

	MakeRange(startNode TextHandle, startOffset int, endNode TextHandle, endOffset int) RangeHandle
	RangeText(r RangeHandle) string
	CloneRange(r RangeHandle) RangeHandle
}

// Range is the core's own ordered-pair representation of a selection,
// returned by Serialize's caller and by the Restorer. It bounds a
// contiguous text region via two (node, offset) boundary points.
type Range struct {
	StartContainer TextHandle
	StartOffset    int
	EndContainer   TextHandle
	EndOffset      int
}
