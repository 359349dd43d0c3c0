package locator

import (
	"regexp"
	"strings"
	"unicode"
)

// IndexText implements the four-stage "intelligent text match" used by L3
// and L4 (spec §4.8): a direct substring search, then three increasingly
// tolerant normalized searches. It returns the rune offset into haystack
// where needle begins, or -1.
func IndexText(haystack, needle string) int {
	if needle == "" {
		return -1
	}

	if idx := runeIndexOf(haystack, needle); idx >= 0 {
		return idx
	}

	if idx := normalizedSearch(haystack, needle, collapseWhitespace); idx >= 0 {
		return idx
	}

	if idx := enhancedSearch(haystack, needle); idx >= 0 {
		return idx
	}

	if idx := fuzzyWordSequenceMatch(haystack, needle); idx >= 0 {
		return idx
	}

	return -1
}

// runeIndexOf is a rune-offset strings.Index.
func runeIndexOf(haystack, needle string) int {
	byteIdx := strings.Index(haystack, needle)
	if byteIdx < 0 {
		return -1
	}
	return len([]rune(haystack[:byteIdx]))
}

// runeFolder produces a normalized rune sequence from the input runes
// along with a mapping back from each output rune to the input rune index
// it was derived from.
type runeFolder func(in []rune) (out []rune, mapping []int)

func normalizedSearch(haystack, needle string, fold runeFolder) int {
	hRunes := []rune(haystack)
	nRunes := []rune(needle)

	hFolded, hMap := fold(hRunes)
	nFolded, _ := fold(nRunes)
	if len(nFolded) == 0 {
		return -1
	}

	idx := runesIndex(hFolded, nFolded)
	if idx < 0 {
		return -1
	}
	return hMap[idx]
}

func runesIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// collapseWhitespace collapses runs of whitespace to a single space and
// trims leading/trailing whitespace (spec §4.8 stage 2).
func collapseWhitespace(in []rune) ([]rune, []int) {
	out := make([]rune, 0, len(in))
	mapping := make([]int, 0, len(in))

	i := 0
	for i < len(in) {
		r := in[i]
		if unicode.IsSpace(r) {
			start := i
			for i < len(in) && unicode.IsSpace(in[i]) {
				i++
			}
			if len(out) == 0 || i == len(in) {
				continue // trim leading/trailing whitespace
			}
			out = append(out, ' ')
			mapping = append(mapping, start)
			continue
		}
		out = append(out, r)
		mapping = append(mapping, i)
		i++
	}
	return out, mapping
}

// brandTokens get their case normalized by enhancedFold, but nothing else
// does: this is a curated list, not a blanket case fold (spec §4.8 stage 3).
var brandTokenPattern = regexp.MustCompile(`(?i)\b(chatgpt|gpt-4|openai|google)\b`)

func lowerBrandTokens(s string) string {
	return brandTokenPattern.ReplaceAllStringFunc(s, strings.ToLower)
}

// cjkPunctuationFold maps common CJK/fullwidth punctuation to its ASCII
// equivalent.
var cjkPunctuationFold = map[rune]rune{
	'＜': '<', '＞': '>', '＆': '&', '％': '%', '：': ':', '；': ';',
	'！': '!', '？': '?', '（': '(', '）': ')', '，': ',', '。': '.',
	'／': '/', '＝': '=', '＋': '+', '－': '-',
}

// enhancedFold folds fullwidth digits and CJK punctuation to ASCII, strips
// thousands separators inside digit runs, and removes spaces immediately
// before a '%' sign (spec §4.8 stage 3). Brand-token casing must already
// have been normalized by the caller via lowerBrandTokens.
func enhancedFold(in []rune) ([]rune, []int) {
	out := make([]rune, 0, len(in))
	mapping := make([]int, 0, len(in))

	isDigit := func(r rune) bool {
		return (r >= '0' && r <= '9') || (r >= 0xFF10 && r <= 0xFF19)
	}

	i := 0
	for i < len(in) {
		r := in[i]

		switch {
		case unicode.IsSpace(r):
			start := i
			for i < len(in) && unicode.IsSpace(in[i]) {
				i++
			}
			if i < len(in) && in[i] == '%' {
				continue // remove spaces before '%'
			}
			if len(out) == 0 || i == len(in) {
				continue
			}
			out = append(out, ' ')
			mapping = append(mapping, start)

		case r >= 0xFF10 && r <= 0xFF19:
			out = append(out, '0'+(r-0xFF10))
			mapping = append(mapping, i)
			i++

		case (r == ',' || r == '，') && len(out) > 0 && isDigit(out[len(out)-1]) && i+1 < len(in) && isDigit(in[i+1]):
			i++ // thousands separator, drop it

		case cjkPunctuationFold[r] != 0:
			out = append(out, cjkPunctuationFold[r])
			mapping = append(mapping, i)
			i++

		default:
			out = append(out, r)
			mapping = append(mapping, i)
			i++
		}
	}
	return out, mapping
}

// enhancedSearch is stage 3: brand tokens get their case normalized before
// the fold runs, since enhancedFold itself performs no blanket case fold.
func enhancedSearch(haystack, needle string) int {
	return normalizedSearch(lowerBrandTokens(haystack), lowerBrandTokens(needle), enhancedFold)
}

var wordTokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// fuzzyWordSequenceMatch tokenizes both strings on non-word/non-CJK
// characters and accepts a window of haystack tokens if at least 80% of
// them substring-contain their paired needle token (spec §4.8 stage 4).
func fuzzyWordSequenceMatch(haystack, needle string) int {
	hLocs := wordTokenPattern.FindAllStringIndex(haystack, -1)
	nLocs := wordTokenPattern.FindAllStringIndex(needle, -1)
	if len(nLocs) == 0 || len(hLocs) < len(nLocs) {
		return -1
	}

	hTokens := make([]string, len(hLocs))
	for i, loc := range hLocs {
		hTokens[i] = strings.ToLower(haystack[loc[0]:loc[1]])
	}
	nTokens := make([]string, len(nLocs))
	for i, loc := range nLocs {
		nTokens[i] = strings.ToLower(needle[loc[0]:loc[1]])
	}

	windowLen := len(nTokens)
	threshold := (windowLen*8 + 9) / 10 // ceil(80% of windowLen)
	if threshold < 1 {
		threshold = 1
	}

	for start := 0; start+windowLen <= len(hTokens); start++ {
		matches := 0
		for j := 0; j < windowLen; j++ {
			if strings.Contains(hTokens[start+j], nTokens[j]) {
				matches++
			}
		}
		if matches >= threshold {
			byteIdx := hLocs[start][0]
			return len([]rune(haystack[:byteIdx]))
		}
	}
	return -1
}
