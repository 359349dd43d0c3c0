package locator

import "strings"

// fingerprintMatchThreshold is the minimum normalized structural
// similarity score L4 requires before accepting a candidate element.
const fingerprintMatchThreshold = 0.6

// crossElementTextBonus is added to a candidate's similarity score when its
// text contains descriptor.context.parent_text, per spec §4.7's
// cross-element cross-bonus: a hint that the candidate is (or sits inside)
// the original cross-element selection's containing element, applied
// before the threshold check.
const crossElementTextBonus = 0.15

// restoreLayerFingerprint implements L4 (spec §4.7): the last resort. It
// scores every element under scope whose tag is fp.Tag or a semantically
// compatible tag (with a 0.9x penalty for the latter) using the weighted
// structural similarity function, then locates the selection text inside
// the best candidate — or, if the text doesn't fit there, inside its
// parent, to cover selections that now straddle a sibling boundary.
func restoreLayerFingerprint(ta TreeAdapter, cfg *Config, scope ElementHandle, d *Descriptor) (Range, error) {
	fp := d.Fingerprint
	if fp.Tag == "" {
		return Range{}, ErrMissingAnchor
	}

	candidate := bestFingerprintCandidate(ta, scope, fp, d.Context.ParentText)
	if candidate == nil {
		return Range{}, ErrMissingAnchor
	}

	rng, ok := locateTextInElement(ta, candidate, d.Text)
	if !ok {
		if parent := ta.Parent(candidate); parent != nil {
			rng, ok = locateTextInElement(ta, parent, d.Text)
		}
	}
	if !ok {
		return Range{}, ErrTextMismatch
	}
	if accepted, yes := validate(ta, rng, d.Text); yes {
		return accepted, nil
	}
	return Range{}, ErrTextMismatch
}

func bestFingerprintCandidate(ta TreeAdapter, scope ElementHandle, fp Fingerprint, parentText string) ElementHandle {
	tags := append([]string{fp.Tag}, SemanticallyCompatibleTags(fp.Tag)...)

	var best ElementHandle
	bestScore := 0.0
	for _, tag := range tags {
		expanded := tag != fp.Tag
		for _, el := range ta.QueryAll(scope, tag) {
			candTextNormalized := normalizeWhitespace(ta.TextContent(el))
			candClasses := strings.Join(ta.Classes(el), " ")
			candChildren := len(ta.Children(el))
			candDepth := elementDepth(ta, el)
			candChain := parentChainOf(ta, el)

			score := structuralSimilarity(fp, ta.Tag(el), candClasses, len([]rune(candTextNormalized)), candChildren, candDepth, candChain, expanded)
			if parentText != "" && strings.Contains(candTextNormalized, parentText) {
				score += crossElementTextBonus
			}
			if score > bestScore {
				bestScore = score
				best = el
			}
		}
	}
	if bestScore < fingerprintMatchThreshold {
		return nil
	}
	return best
}
