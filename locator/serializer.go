package locator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SerializeOptions configures Serialize. The zero value uses a 50-character
// text context window and generates a random id.
type SerializeOptions struct {
	// ContextLength caps TextContext.PrecedingText/FollowingText. 0 means
	// the spec default of 50.
	ContextLength int
	// ID, if non-empty, is used verbatim as Descriptor.ID instead of a
	// generated one.
	ID string
}

func (o SerializeOptions) contextLength() int {
	if o.ContextLength > 0 {
		return o.ContextLength
	}
	return 50
}

// Serialize captures a live selection as a portable Descriptor. It returns
// nil if the selection is collapsed or its text is empty/whitespace-only
// (spec §4.1).
func Serialize(ta TreeAdapter, cfg *Config, startNode TextHandle, startOffset int, endNode TextHandle, endOffset int, opts SerializeOptions) *Descriptor {
	if cfg == nil {
		cfg = NewConfig()
	}
	if startNode == endNode && startOffset == endOffset {
		return nil
	}

	text := rangeText(ta, Range{StartContainer: startNode, StartOffset: startOffset, EndContainer: endNode, EndOffset: endOffset})
	if strings.TrimSpace(text) == "" {
		return nil
	}

	startEl := ta.TextParent(startNode)
	endEl := ta.TextParent(endNode)

	d := &Descriptor{
		ID:   opts.ID,
		Text: text,
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	d.Anchors = serializeIdentityAnchors(ta, cfg, startEl, endEl, startNode, startOffset, endNode, endOffset)
	d.Paths = serializePathAnchors(ta, startEl, endEl, startNode, startOffset, endNode, endOffset)
	d.Multi = serializeMultiAnchor(ta, startEl, endEl)
	d.Fingerprint = serializeFingerprint(ta, startEl)
	d.Context = serializeTextContext(ta, startEl, startNode, startOffset, endNode, endOffset, text, opts.contextLength())

	return d
}

func serializeIdentityAnchors(ta TreeAdapter, cfg *Config, startEl, endEl ElementHandle, startNode TextHandle, startOffset int, endNode TextHandle, endOffset int) IdentityAnchors {
	startID, startCustom, startAnchor := nearestIdentifiedAncestor(ta, cfg, startEl)
	endID, endCustom, endAnchor := nearestIdentifiedAncestor(ta, cfg, endEl)

	a := IdentityAnchors{
		StartID:           startID,
		EndID:             endID,
		StartCustomID:     startCustom,
		EndCustomID:       endCustom,
		CustomIDAttribute: cfg.customIDAttribute,
	}
	if startAnchor != nil {
		a.StartOffset = offsetWithinAnchor(ta, startAnchor, startNode, startOffset)
	}
	if endAnchor != nil {
		a.EndOffset = offsetWithinAnchor(ta, endAnchor, endNode, endOffset)
	}
	return a
}

// nearestIdentifiedAncestor walks up from el to the nearest element whose
// id or custom id is non-empty and accepted by the registered id filter.
func nearestIdentifiedAncestor(ta TreeAdapter, cfg *Config, el ElementHandle) (id, customID string, anchor ElementHandle) {
	for cur := el; cur != nil; cur = ta.Parent(cur) {
		var cid string
		if cfg.customIDAttribute != "" {
			if v, ok := ta.Attr(cur, cfg.customIDAttribute); ok && cfg.acceptsID(v) {
				cid = v
			}
		}
		curID := ta.ID(cur)
		if !cfg.acceptsID(curID) {
			curID = ""
		}
		if cid != "" || curID != "" {
			return curID, cid, cur
		}
	}
	return "", "", nil
}

// offsetWithinAnchor sums the lengths of every text node preceding node
// under anchor, in document order, and adds localOffset.
func offsetWithinAnchor(ta TreeAdapter, anchor ElementHandle, node TextHandle, localOffset int) int {
	sum := 0
	for _, tn := range ta.WalkTextNodes(anchor) {
		if tn.Node == node {
			return sum + localOffset
		}
		sum += tn.Length
	}
	return sum + localOffset
}

func serializePathAnchors(ta TreeAdapter, startEl, endEl ElementHandle, startNode TextHandle, startOffset int, endNode TextHandle, endOffset int) PathAnchors {
	startOff := offsetWithinAnchor(ta, startEl, startNode, startOffset)
	endOff := offsetWithinAnchor(ta, endEl, endNode, endOffset)
	return PathAnchors{
		StartPath:       buildPathExpression(ta, startEl),
		EndPath:         buildPathExpression(ta, endEl),
		StartOffset:     startOff,
		EndOffset:       endOff,
		StartTextOffset: startOff,
		EndTextOffset:   endOff,
	}
}

// buildPathExpression ascends from el to the document root, stopping as
// soon as an id is found, producing the grammar from spec §3.4: "tag"
// segments joined by " > ", decorated with ".class" and an optional
// ":nth-of-type(n)", with a trailing "#id" where present.
func buildPathExpression(ta TreeAdapter, el ElementHandle) string {
	var segments []string
	for cur := el; cur != nil; {
		seg := ta.Tag(cur)
		if classes := ta.Classes(cur); len(classes) > 0 {
			seg += "." + strings.Join(classes, ".")
		}
		if n := nthOfType(ta, cur); n > 0 {
			seg += fmt.Sprintf(":nth-of-type(%d)", n)
		}
		id := ta.ID(cur)
		if id != "" {
			seg += "#" + id
		}
		segments = append([]string{seg}, segments...)
		if id != "" {
			break
		}
		parent := ta.Parent(cur)
		if parent == nil {
			break
		}
		cur = parent
	}
	return strings.Join(segments, " > ")
}

// nthOfType returns el's 1-based position among same-tag siblings, or 0
// when el is the only child of its tag (spec: "when siblings share the
// tag").
func nthOfType(ta TreeAdapter, el ElementHandle) int {
	parent := ta.Parent(el)
	if parent == nil {
		return 0
	}
	tag := ta.Tag(el)
	siblings := ta.Children(parent)
	same := 0
	for _, s := range siblings {
		if ta.Tag(s) == tag {
			same++
		}
	}
	if same <= 1 {
		return 0
	}
	idx := 0
	for _, s := range siblings {
		if ta.Tag(s) == tag {
			idx++
			if s == el {
				return idx
			}
		}
	}
	return 0
}

func anchorSignatureOf(ta TreeAdapter, el ElementHandle) AnchorSignature {
	sig := AnchorSignature{
		Tag:         ta.Tag(el),
		ClassString: strings.Join(ta.Classes(el), " "),
		ID:          ta.ID(el),
	}
	for _, name := range whitelistedAttributes {
		if v, ok := ta.Attr(el, name); ok && v != "" {
			if sig.Attributes == nil {
				sig.Attributes = map[string]string{}
			}
			sig.Attributes[name] = v
		}
	}
	return sig
}

func serializeMultiAnchor(ta TreeAdapter, startEl, endEl ElementHandle) MultiAnchor {
	m := MultiAnchor{
		StartAnchor: anchorSignatureOf(ta, startEl),
		EndAnchor:   anchorSignatureOf(ta, endEl),
	}

	if startEl == endEl {
		return m
	}

	lca := lowestCommonAncestor(ta, startEl, endEl)
	if lca != nil {
		m.CommonParent = buildPathExpression(ta, lca)
	}

	if parent := ta.Parent(startEl); parent != nil && sameHandle(parent, ta.Parent(endEl)) {
		children := ta.Children(parent)
		startIdx, endIdx := -1, -1
		for i, c := range children {
			if c == startEl {
				startIdx = i
			}
			if c == endEl {
				endIdx = i
			}
		}
		if startIdx >= 0 && endIdx >= 0 {
			lo, hi := startIdx, endIdx
			if lo > hi {
				lo, hi = hi, lo
			}
			var between []string
			for i := lo + 1; i < hi; i++ {
				between = append(between, ta.Tag(children[i]))
			}
			m.SiblingInfo = &SiblingInfo{
				Index:      startIdx,
				Total:      len(children),
				TagPattern: strings.Join(between, ","),
			}
		}
	}

	return m
}

func sameHandle(a, b ElementHandle) bool {
	return a == b
}

// lowestCommonAncestor returns the deepest element that contains both a
// and b.
func lowestCommonAncestor(ta TreeAdapter, a, b ElementHandle) ElementHandle {
	ancestorsOf := func(el ElementHandle) []ElementHandle {
		var chain []ElementHandle
		for cur := el; cur != nil; cur = ta.Parent(cur) {
			chain = append(chain, cur)
		}
		return chain
	}
	aChain := ancestorsOf(a)
	aSet := make(map[ElementHandle]bool, len(aChain))
	for _, e := range aChain {
		aSet[e] = true
	}
	for cur := b; cur != nil; cur = ta.Parent(cur) {
		if aSet[cur] {
			return cur
		}
	}
	return nil
}

func serializeFingerprint(ta TreeAdapter, el ElementHandle) Fingerprint {
	fp := Fingerprint{
		Tag:         ta.Tag(el),
		ClassString: strings.Join(ta.Classes(el), " "),
		TextLength:  len([]rune(normalizeWhitespace(ta.TextContent(el)))),
		ChildCount:  len(ta.Children(el)),
	}
	for _, name := range whitelistedAttributes {
		if v, ok := ta.Attr(el, name); ok && v != "" {
			if fp.Attributes == nil {
				fp.Attributes = map[string]string{}
			}
			fp.Attributes[name] = v
		}
	}

	depth := 0
	for cur := ta.Parent(el); cur != nil; cur = ta.Parent(cur) {
		depth++
		if len(fp.ParentChain) < maxParentChainDepth {
			fp.ParentChain = append(fp.ParentChain, ParentChainEntry{
				Tag:         ta.Tag(cur),
				ClassString: strings.Join(ta.Classes(cur), " "),
				ID:          ta.ID(cur),
			})
		}
	}
	fp.Depth = depth

	if parent := ta.Parent(el); parent != nil {
		siblings := ta.Children(parent)
		pos := -1
		for i, s := range siblings {
			if s == el {
				pos = i
				break
			}
		}
		if pos >= 0 {
			fp.SiblingPattern.Position = pos
			fp.SiblingPattern.Total = len(siblings)
			for i := pos - 1; i >= 0 && len(fp.SiblingPattern.BeforeTags) < 2; i-- {
				fp.SiblingPattern.BeforeTags = append([]string{ta.Tag(siblings[i])}, fp.SiblingPattern.BeforeTags...)
			}
			for i := pos + 1; i < len(siblings) && len(fp.SiblingPattern.AfterTags) < 2; i++ {
				fp.SiblingPattern.AfterTags = append(fp.SiblingPattern.AfterTags, ta.Tag(siblings[i]))
			}
		}
	}

	return fp
}

func serializeTextContext(ta TreeAdapter, startEl ElementHandle, startNode TextHandle, startOffset int, endNode TextHandle, endOffset int, selectionText string, contextLen int) TextContext {
	ctx := TextContext{}

	startPayload := []rune(ta.TextData(startNode))
	if startOffset > len(startPayload) {
		startOffset = len(startPayload)
	}
	precedeFrom := startOffset - contextLen
	if precedeFrom < 0 {
		precedeFrom = 0
	}
	ctx.PrecedingText = string(startPayload[precedeFrom:startOffset])

	endPayload := []rune(ta.TextData(endNode))
	if endOffset > len(endPayload) {
		endOffset = len(endPayload)
	}
	followTo := endOffset + contextLen
	if followTo > len(endPayload) {
		followTo = len(endPayload)
	}
	ctx.FollowingText = string(endPayload[endOffset:followTo])

	ctx.ParentText = normalizeWhitespace(ta.TextContent(startEl))
	ctx.TextPosition.TotalLength = len([]rune(ctx.ParentText))
	if idx := IndexText(ctx.ParentText, selectionText); idx >= 0 {
		ctx.TextPosition.Start = idx
		ctx.TextPosition.End = idx + len([]rune(selectionText))
	} else {
		ctx.TextPosition.Start = -1
		ctx.TextPosition.End = -1
	}

	return ctx
}

func normalizeWhitespace(s string) string {
	out, _ := collapseWhitespace([]rune(s))
	return string(out)
}
