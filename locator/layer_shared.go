package locator

import "strings"

// locateTextInElement concatenates root's text nodes in document order and
// runs the intelligent text match (spec §4.8) for needle, mapping the
// match back to a cross-element-capable Range. This is how L3 and L4
// assemble a range after identifying a candidate element or common
// ancestor, rather than assuming the selection sits in a single text node.
func locateTextInElement(ta TreeAdapter, root ElementHandle, needle string) (Range, bool) {
	if root == nil || needle == "" {
		return Range{}, false
	}
	nodes := ta.WalkTextNodes(root)
	if len(nodes) == 0 {
		return Range{}, false
	}

	var sb strings.Builder
	bounds := make([]int, 1, len(nodes)+1)
	bounds[0] = 0
	for _, tn := range nodes {
		sb.WriteString(ta.TextData(tn.Node))
		bounds = append(bounds, bounds[len(bounds)-1]+tn.Length)
	}

	idx := IndexText(sb.String(), needle)
	if idx < 0 {
		return Range{}, false
	}
	endIdx := idx + len([]rune(needle))

	startNode, startOff, ok1 := mapGlobalTextOffset(nodes, bounds, idx)
	endNode, endOff, ok2 := mapGlobalTextOffset(nodes, bounds, endIdx)
	if !ok1 || !ok2 {
		return Range{}, false
	}
	return Range{StartContainer: startNode, StartOffset: startOff, EndContainer: endNode, EndOffset: endOff}, true
}

func mapGlobalTextOffset(nodes []TextNodeInfo, bounds []int, offset int) (TextHandle, int, bool) {
	for i, tn := range nodes {
		if offset <= bounds[i+1] {
			return tn.Node, offset - bounds[i], true
		}
	}
	return nil, 0, false
}

// anchorMatchThreshold is the minimum normalized AnchorSignature match
// score L3 requires before accepting a candidate element.
const anchorMatchThreshold = 0.55

// anchorSignatureScore scores how well el matches sig: id exact-match
// (weight 0.4), BEM class similarity (weight 0.4), and whitelisted
// attribute overlap (weight 0.2), each weight dropped from the
// denominator when sig carries nothing to compare on that axis.
func anchorSignatureScore(sig AnchorSignature, ta TreeAdapter, el ElementHandle) float64 {
	if ta.Tag(el) != sig.Tag {
		return 0
	}

	var score, weight float64

	if sig.ID != "" {
		weight += 0.4
		if ta.ID(el) == sig.ID {
			score += 0.4
		}
	}

	if sig.ClassString != "" {
		weight += 0.4
		score += 0.4 * BEMClassSimilarity(sig.ClassString, strings.Join(ta.Classes(el), " "))
	}

	if len(sig.Attributes) > 0 {
		weight += 0.2
		matched := 0
		for name, val := range sig.Attributes {
			if got, ok := ta.Attr(el, name); ok && got == val {
				matched++
			}
		}
		score += 0.2 * float64(matched) / float64(len(sig.Attributes))
	}

	if weight == 0 {
		return 0
	}
	return score / weight
}

// dataRangeExcludeAttr is the explicit opt-out attribute from spec §4.6:
// candidates whose ancestor chain carries it are skipped during L3
// enumeration regardless of how well they score.
const dataRangeExcludeAttr = "data-range-exclude"

// hasExcludedAncestor reports whether el or any of its ancestors (up to
// and including scope, or the document root when scope is nil) carries
// dataRangeExcludeAttr.
func hasExcludedAncestor(ta TreeAdapter, scope, el ElementHandle) bool {
	for cur := el; cur != nil; cur = ta.Parent(cur) {
		if _, ok := ta.Attr(cur, dataRangeExcludeAttr); ok {
			return true
		}
		if cur == scope {
			break
		}
	}
	return false
}

// bestAnchorCandidate finds the highest-scoring element of sig.Tag under
// scope. sibling, when non-nil, nudges the score toward candidates whose
// parent has the recorded sibling count — a tie-breaker, not a gate.
// Candidates opted out via dataRangeExcludeAttr (spec §4.6) are skipped.
func bestAnchorCandidate(ta TreeAdapter, scope ElementHandle, sig AnchorSignature, sibling *SiblingInfo) ElementHandle {
	var best ElementHandle
	bestScore := 0.0
	for _, el := range ta.QueryAll(scope, sig.Tag) {
		if hasExcludedAncestor(ta, scope, el) {
			continue
		}
		s := anchorSignatureScore(sig, ta, el)
		if sibling != nil {
			if parent := ta.Parent(el); parent != nil && len(ta.Children(parent)) == sibling.Total {
				s += 0.05
			}
		}
		if s > bestScore {
			bestScore = s
			best = el
		}
	}
	if bestScore < anchorMatchThreshold {
		return nil
	}
	return best
}

func sameAnchorSignature(a, b AnchorSignature) bool {
	return a.Tag == b.Tag && a.ClassString == b.ClassString && a.ID == b.ID
}

func elementDepth(ta TreeAdapter, el ElementHandle) int {
	depth := 0
	for cur := ta.Parent(el); cur != nil; cur = ta.Parent(cur) {
		depth++
	}
	return depth
}

func parentChainOf(ta TreeAdapter, el ElementHandle) []ParentChainEntry {
	var chain []ParentChainEntry
	for cur := ta.Parent(el); cur != nil && len(chain) < maxParentChainDepth; cur = ta.Parent(cur) {
		chain = append(chain, ParentChainEntry{
			Tag:         ta.Tag(cur),
			ClassString: strings.Join(ta.Classes(cur), " "),
			ID:          ta.ID(cur),
		})
	}
	return chain
}
