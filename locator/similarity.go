package locator

import (
	"regexp"
	"strings"
)

// classTokens splits a space-separated class string into its tokens,
// dropping empties.
func classTokens(classString string) []string {
	fields := strings.Fields(classString)
	return fields
}

var noisyClassPrefixes = []string{"js-", "is-", "has-", "u-"}

func isNoisyClassToken(tok string) bool {
	for _, p := range noisyClassPrefixes {
		if strings.HasPrefix(tok, p) {
			return true
		}
	}
	return false
}

// bemPattern recognizes block[__element][--modifier] class tokens.
var bemPattern = regexp.MustCompile(`^([a-zA-Z0-9-]+?)(?:__([a-zA-Z0-9-]+))?(?:--([a-zA-Z0-9-]+))?$`)

type bemParts struct {
	block, element, modifier string
}

func parseBEM(tok string) bemParts {
	m := bemPattern.FindStringSubmatch(tok)
	if m == nil {
		return bemParts{block: tok}
	}
	return bemParts{block: m[1], element: m[2], modifier: m[3]}
}

// bemTokenSimilarity scores a pair of class tokens using weighted BEM part
// scores: block=0.5, element=0.3, modifier=0.2, normalized by the parts
// present in both tokens (spec §4.6).
func bemTokenSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	pa, pb := parseBEM(a), parseBEM(b)

	type weighted struct {
		present bool
		match   bool
		weight  float64
	}
	parts := []weighted{
		{present: pa.block != "" && pb.block != "", match: pa.block == pb.block, weight: 0.5},
		{present: pa.element != "" && pb.element != "", match: pa.element == pb.element, weight: 0.3},
		{present: pa.modifier != "" && pb.modifier != "", match: pa.modifier == pb.modifier, weight: 0.2},
	}

	var totalWeight, score float64
	for _, p := range parts {
		if !p.present {
			continue
		}
		totalWeight += p.weight
		if p.match {
			score += p.weight
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return score / totalWeight
}

// BEMClassSimilarity scores two class strings. Identical strings score
// 1.0; otherwise each anchor token is matched against its best candidate
// counterpart, noisy utility/state tokens (js-, is-, has-, u- prefixes)
// are weighted 0.3x, and the mean weighted best-match ratio is returned
// (spec §4.6).
func BEMClassSimilarity(anchorClasses, candidateClasses string) float64 {
	if anchorClasses == candidateClasses {
		return 1.0
	}
	anchorToks := classTokens(anchorClasses)
	candToks := classTokens(candidateClasses)
	if len(anchorToks) == 0 {
		if len(candToks) == 0 {
			return 1.0
		}
		return 0
	}

	var total float64
	for _, a := range anchorToks {
		best := 0.0
		for _, c := range candToks {
			if s := bemTokenSimilarity(a, c); s > best {
				best = s
			}
		}
		if isNoisyClassToken(a) {
			best *= 0.3
		}
		total += best
	}
	return total / float64(len(anchorToks))
}

// semanticTagGroups is the curated table of structurally interchangeable
// tags used by L4's semantic-tag expansion (spec §4.7 and §9: "implementers
// should treat it as a configuration table and reproduce the table
// verbatim from the reference"). Every tag in a group is considered
// compatible with every other tag in that same group.
var semanticTagGroups = [][]string{
	{"p", "div", "section", "li", "dd"},
	{"h1", "h2", "h3", "h4", "h5", "h6", "div"},
	{"strong", "em", "i", "b", "mark"},
}

// SemanticallyCompatibleTags returns every tag considered interchangeable
// with tag (tag itself excluded), across every curated group it belongs
// to.
func SemanticallyCompatibleTags(tag string) []string {
	seen := map[string]bool{}
	var out []string
	for _, group := range semanticTagGroups {
		inGroup := false
		for _, t := range group {
			if t == tag {
				inGroup = true
				break
			}
		}
		if !inGroup {
			continue
		}
		for _, t := range group {
			if t != tag && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// structuralSimilarity implements L4's weighted similarity function
// (spec §4.7): tag(2) + class-set(1) + text-length-ratio(3) + depth(1) +
// child-count(1) + parent-chain(2), normalized to [0,1] over the 10 total
// weight points.
func structuralSimilarity(fp Fingerprint, candTag, candClassString string, candTextLen, candChildCount, candDepth int, candParentChain []ParentChainEntry, expandedTagPenalty bool) float64 {
	const maxWeight = 10.0
	var score float64

	// Tag match (weight 2), possibly via semantic-tag expansion.
	if fp.Tag == candTag {
		score += 2
	} else if expandedTagPenalty {
		// semantic-tag expansion already established compatibility; the
		// 0.9 penalty is applied once to the overall score below.
		score += 2
	}

	// Class set match (weight 1).
	aSet := classTokens(fp.ClassString)
	bSet := classTokens(candClassString)
	score += 1 * classSetOverlap(aSet, bSet)

	// Text length ratio (weight 3), only scored when both sides are non-empty.
	if fp.TextLength > 0 && candTextLen > 0 {
		lo, hi := float64(fp.TextLength), float64(candTextLen)
		if hi < lo {
			lo, hi = hi, lo
		}
		score += 3 * (lo / hi)
	}

	// Depth match (weight 1).
	depthDelta := fp.Depth - candDepth
	if depthDelta < 0 {
		depthDelta = -depthDelta
	}
	depthScore := 1 - float64(depthDelta)/10
	if depthScore < 0 {
		depthScore = 0
	}
	score += 1 * depthScore

	// Child-count match (weight 1).
	if fp.ChildCount == candChildCount {
		score += 1
	} else {
		delta := fp.ChildCount - candChildCount
		if delta < 0 {
			delta = -delta
		}
		childScore := 1 - float64(delta)/5
		if childScore < 0 {
			childScore = 0
		}
		score += 1 * childScore
	}

	// Parent-chain match (weight 2): per-level tag(0.7) + class-set(0.3),
	// averaged over max(len_a, len_b) up to 6 levels.
	n := len(fp.ParentChain)
	if len(candParentChain) > n {
		n = len(candParentChain)
	}
	if n > maxParentChainDepth {
		n = maxParentChainDepth
	}
	if n > 0 {
		var chainScore float64
		for i := 0; i < n; i++ {
			var a, b ParentChainEntry
			if i < len(fp.ParentChain) {
				a = fp.ParentChain[i]
			}
			if i < len(candParentChain) {
				b = candParentChain[i]
			}
			level := 0.0
			if a.Tag == b.Tag {
				level += 0.7
			}
			level += 0.3 * classSetOverlap(classTokens(a.ClassString), classTokens(b.ClassString))
			chainScore += level
		}
		score += 2 * (chainScore / float64(n))
	}

	similarity := score / maxWeight
	if expandedTagPenalty {
		similarity *= 0.9
	}
	return similarity
}

// classSetOverlap is |A∩B|/max(|A|,|B|), returning 1 for two empty sets.
func classSetOverlap(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	shared := 0
	for _, t := range b {
		if set[t] {
			shared++
		}
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return float64(shared) / float64(maxLen)
}

const maxParentChainDepth = 6
