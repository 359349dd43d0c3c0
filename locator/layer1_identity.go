package locator

// restoreLayerIdentity implements L1 (spec §4.4): resolve the anchor
// elements by id (custom id takes precedence when present), then walk each
// anchor's text nodes to the stored character offset.
//
// Same-element selections validate directly off the stored offsets. Cross-
// element selections first try the raw offsets; if those don't validate,
// an offset-overflow repair searches the concatenated start+end text
// content for the literal descriptor text and remaps it back into
// element-local offsets (step 5); if that still doesn't validate, a
// common-ancestor precise walk searches the lowest common ancestor's full
// text content instead, with up to five single-character end-offset
// backoffs before conceding (step 6).
func restoreLayerIdentity(ta TreeAdapter, cfg *Config, scope ElementHandle, d *Descriptor) (Range, error) {
	a := d.Anchors

	startEl := resolveIdentityAnchor(ta, scope, a.StartID, a.StartCustomID, a.CustomIDAttribute)
	sameElement := a.SameElement()
	var endEl ElementHandle
	if sameElement {
		endEl = startEl
	} else {
		endEl = resolveIdentityAnchor(ta, scope, a.EndID, a.EndCustomID, a.CustomIDAttribute)
	}
	if startEl == nil || endEl == nil {
		return Range{}, ErrMissingAnchor
	}

	if sameElement {
		startNode, startOff, ok1 := locateTextOffset(ta, startEl, a.StartOffset)
		endNode, endOff, ok2 := locateTextOffset(ta, startEl, a.EndOffset)
		if !ok1 || !ok2 {
			return Range{}, ErrOffsetMismatch
		}
		candidate := Range{StartContainer: startNode, StartOffset: startOff, EndContainer: endNode, EndOffset: endOff}
		if rng, accepted := validate(ta, candidate, d.Text); accepted {
			return rng, nil
		}
		return Range{}, ErrOffsetMismatch
	}

	// Cross-element: raw offsets first.
	if rng, ok := identityOffsetCandidate(ta, startEl, endEl, a.StartOffset, a.EndOffset, d.Text); ok {
		return rng, nil
	}

	// Step 5: offset-overflow repair via concatenation search.
	if rng, ok := repairCrossElementOffsets(ta, startEl, endEl, d.Text); ok {
		return rng, nil
	}

	// Step 6: common-ancestor precise walk, plus up to 5 single-character
	// end-offset backoffs before conceding.
	if rng, ok := identityCommonAncestorWalk(ta, startEl, endEl, d.Text); ok {
		return rng, nil
	}

	return Range{}, ErrOffsetMismatch
}

func identityOffsetCandidate(ta TreeAdapter, startEl, endEl ElementHandle, startOffset, endOffset int, text string) (Range, bool) {
	startNode, startOff, ok1 := locateTextOffset(ta, startEl, startOffset)
	endNode, endOff, ok2 := locateTextOffset(ta, endEl, endOffset)
	if !ok1 || !ok2 {
		return Range{}, false
	}
	candidate := Range{StartContainer: startNode, StartOffset: startOff, EndContainer: endNode, EndOffset: endOff}
	return validate(ta, candidate, text)
}

// repairCrossElementOffsets implements spec §4.4 step 5: concatenate
// start_element.text_content + end_element.text_content, search for the
// literal descriptor text in that concatenation, and map the found indices
// back into (start, end) element-local offsets according to where the
// concatenation boundary falls.
func repairCrossElementOffsets(ta TreeAdapter, startEl, endEl ElementHandle, text string) (Range, bool) {
	startText := ta.TextContent(startEl)
	endText := ta.TextContent(endEl)
	concat := startText + endText

	idx := runeIndexOf(concat, text)
	if idx < 0 {
		return Range{}, false
	}
	startLen := len([]rune(startText))
	endIdx := idx + len([]rune(text))

	startTargetEl, startOffset := startEl, idx
	if idx >= startLen {
		startTargetEl, startOffset = endEl, idx-startLen
	}
	endTargetEl, endOffset := startEl, endIdx
	if endIdx > startLen {
		endTargetEl, endOffset = endEl, endIdx-startLen
	}

	startNode, startOff, ok1 := locateTextOffset(ta, startTargetEl, startOffset)
	endNode, endOff, ok2 := locateTextOffset(ta, endTargetEl, endOffset)
	if !ok1 || !ok2 {
		return Range{}, false
	}
	candidate := Range{StartContainer: startNode, StartOffset: startOff, EndContainer: endNode, EndOffset: endOff}
	return validate(ta, candidate, text)
}

// identityCommonAncestorWalk implements spec §4.4 step 6: find the lowest
// common ancestor, search its full text content for descriptor.text, and
// precisely place the start/end containers from that search. If the
// resulting range still doesn't validate, back the end offset off by 1..5
// characters before conceding.
func identityCommonAncestorWalk(ta TreeAdapter, startEl, endEl ElementHandle, text string) (Range, bool) {
	lca := lowestCommonAncestor(ta, startEl, endEl)
	if lca == nil {
		return Range{}, false
	}
	candidate, ok := locateTextInElement(ta, lca, text)
	if !ok {
		return Range{}, false
	}
	if rng, accepted := validate(ta, candidate, text); accepted {
		return rng, true
	}

	for back := 1; back <= 5; back++ {
		trial := candidate
		trial.EndOffset = candidate.EndOffset - back
		if trial.EndOffset < 0 {
			break
		}
		if trial.StartContainer == trial.EndContainer && trial.EndOffset < trial.StartOffset {
			break
		}
		if rng, accepted := validate(ta, trial, text); accepted {
			return rng, true
		}
	}
	return Range{}, false
}

// resolveIdentityAnchor looks up an anchor element by custom id (preferred,
// when both a custom attribute and value are given) or by plain id.
func resolveIdentityAnchor(ta TreeAdapter, scope ElementHandle, id, customID, customAttr string) ElementHandle {
	if customID != "" && customAttr != "" {
		if el := ta.QueryByAttribute(scope, customAttr, customID); el != nil {
			return el
		}
	}
	if id != "" {
		return ta.GetElementByID(scope, id)
	}
	return nil
}

// locateTextOffset walks el's text nodes in document order and returns the
// node and local offset that targetOffset (an in-element character offset)
// falls within. When targetOffset exceeds the element's total text length
// (content was shortened since serialization), it degrades to the first
// non-empty text node at offset 0, per spec §4.4 step 3 — the Validator
// rejects downstream if that doesn't reproduce the expected text.
func locateTextOffset(ta TreeAdapter, el ElementHandle, targetOffset int) (TextHandle, int, bool) {
	if targetOffset < 0 {
		return nil, 0, false
	}
	nodes := ta.WalkTextNodes(el)
	sum := 0
	for _, tn := range nodes {
		if targetOffset <= sum+tn.Length {
			return tn.Node, targetOffset - sum, true
		}
		sum += tn.Length
	}
	for _, tn := range nodes {
		if tn.Length > 0 {
			return tn.Node, 0, true
		}
	}
	return nil, 0, false
}
