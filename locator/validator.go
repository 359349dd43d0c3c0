package locator

// crossElement reports whether a Range's two boundary points sit in
// different text nodes.
func (r Range) crossElement() bool {
	return r.StartContainer != r.EndContainer
}

func rangeText(ta TreeAdapter, r Range) string {
	rh := ta.MakeRange(r.StartContainer, r.StartOffset, r.EndContainer, r.EndOffset)
	return ta.RangeText(rh)
}

// validate is the cross-cutting gatekeeper described in spec §4.3: a
// candidate Range is accepted only if its extracted text equals
// expectedText byte-for-byte, or after the narrow boundary-adjustment
// tolerance below. It never does partial/best-effort matching — on
// rejection the caller's layer must yield to the next one.
func validate(ta TreeAdapter, candidate Range, expectedText string) (Range, bool) {
	text := rangeText(ta, candidate)
	if text == expectedText {
		return cloneRange(ta, candidate), true
	}

	if !candidate.crossElement() {
		return Range{}, false
	}

	// Boundary adjustment, cross-element candidates only.

	// 1. Trailing/leading newline-run tolerance: if the candidate's text,
	// once leading/trailing newline runs are trimmed, equals expectedText
	// and the trimmed length difference is small (<=4), accept a range
	// whose boundaries are actually moved in by the trimmed amount — not
	// the untrimmed candidate — so its extracted text equals expectedText.
	if adjusted, ok := adjustForNewlines(ta, candidate, text, expectedText); ok {
		return cloneRange(ta, adjusted), true
	}

	// 2. Walk the end boundary back 1..5 characters within the same end
	// text node, looking for an exact match.
	for back := 1; back <= 5; back++ {
		trial := candidate
		trial.EndOffset = candidate.EndOffset - back
		if trial.EndOffset < trial.StartOffset && trial.StartContainer == trial.EndContainer {
			break
		}
		if trial.EndOffset < 0 {
			break
		}
		if rangeText(ta, trial) == expectedText {
			return cloneRange(ta, trial), true
		}
	}

	return Range{}, false
}

// adjustForNewlines implements the conservative trailing-newline tolerance
// from spec §9 and §4.3: accept when the length difference is small (<=4)
// and the expected text is a newline-stripped substring of the candidate's
// text, returning a Range whose boundaries are walked in by the trimmed
// leading/trailing run so its own extracted text equals expectedText.
func adjustForNewlines(ta TreeAdapter, candidate Range, candidateText, expectedText string) (Range, bool) {
	delta := len(candidateText) - len(expectedText)
	if delta < 0 {
		delta = -delta
	}
	if delta > 4 {
		return Range{}, false
	}

	lead, trail, ok := newlineTrimCounts(candidateText, expectedText)
	if !ok || (lead == 0 && trail == 0) {
		return Range{}, false
	}

	adjusted, ok := shrinkRangeBoundaries(ta, candidate, lead, trail)
	if !ok {
		return Range{}, false
	}
	if rangeText(ta, adjusted) != expectedText {
		return Range{}, false
	}
	return adjusted, true
}

// newlineTrimCounts reports how many leading and trailing "\n"/"\r"
// characters must be trimmed from candidateText for it to equal
// expectedText exactly.
func newlineTrimCounts(candidateText, expectedText string) (lead, trail int, ok bool) {
	runes := []rune(candidateText)
	i, j := 0, len(runes)
	for i < j && (runes[i] == '\n' || runes[i] == '\r') {
		i++
	}
	for j > i && (runes[j-1] == '\n' || runes[j-1] == '\r') {
		j--
	}
	if string(runes[i:j]) != expectedText {
		return 0, 0, false
	}
	return i, len(runes) - j, true
}

// shrinkRangeBoundaries walks candidate's start boundary forward by lead
// characters and its end boundary backward by trail characters, resolving
// new (node, offset) boundary points against the lowest common ancestor's
// text-node sequence so the walk can cross text-node boundaries when the
// trim amount exceeds what's left in the original boundary node.
func shrinkRangeBoundaries(ta TreeAdapter, candidate Range, lead, trail int) (Range, bool) {
	startParent := ta.TextParent(candidate.StartContainer)
	endParent := ta.TextParent(candidate.EndContainer)
	root := startParent
	if startParent != endParent {
		root = lowestCommonAncestor(ta, startParent, endParent)
	}
	if root == nil {
		return Range{}, false
	}

	nodes := ta.WalkTextNodes(root)
	bounds := make([]int, 1, len(nodes)+1)
	for _, tn := range nodes {
		bounds = append(bounds, bounds[len(bounds)-1]+tn.Length)
	}

	startGlobal, ok1 := globalTextOffset(nodes, bounds, candidate.StartContainer, candidate.StartOffset)
	endGlobal, ok2 := globalTextOffset(nodes, bounds, candidate.EndContainer, candidate.EndOffset)
	if !ok1 || !ok2 {
		return Range{}, false
	}

	newStart := startGlobal + lead
	newEnd := endGlobal - trail
	if newStart > newEnd {
		return Range{}, false
	}

	startNode, startOff, ok3 := mapGlobalTextOffset(nodes, bounds, newStart)
	endNode, endOff, ok4 := mapGlobalTextOffset(nodes, bounds, newEnd)
	if !ok3 || !ok4 {
		return Range{}, false
	}
	return Range{StartContainer: startNode, StartOffset: startOff, EndContainer: endNode, EndOffset: endOff}, true
}

// globalTextOffset is the inverse of mapGlobalTextOffset: given a text node
// and a local offset within it, return the node's offset in the
// concatenated text of nodes.
func globalTextOffset(nodes []TextNodeInfo, bounds []int, node TextHandle, localOffset int) (int, bool) {
	for i, tn := range nodes {
		if tn.Node == node {
			return bounds[i] + localOffset, true
		}
	}
	return 0, false
}

func cloneRange(ta TreeAdapter, r Range) Range {
	rh := ta.MakeRange(r.StartContainer, r.StartOffset, r.EndContainer, r.EndOffset)
	cloned := ta.CloneRange(rh)
	_ = cloned // the adapter clone exists for host-tree bookkeeping; our own
	// Range struct is already an independent value copy.
	return r
}
