package dedupe

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// acronymScore is the similarity of a name to the initials of another.
const acronymScore = 0.9

// Similarity returns 0-1 similarity of two normalized names. It is the
// best of edit distance ratio, IDF-weighted token overlap and acronym
// match.
func (m *Model) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	ta, tb := strings.Fields(a), strings.Fields(b)
	res := levenshteinRatio(a, b)
	res = max(res, m.tokenOverlap(ta, tb))
	res = max(res, acronym(ta, tb))
	return res
}

func levenshteinRatio(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// tokenOverlap is a weighted Jaccard index of two token sets.
func (m *Model) tokenOverlap(ta, tb []string) float64 {
	setA := make(map[string]struct{}, len(ta))
	for _, v := range ta {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(tb))
	for _, v := range tb {
		setB[v] = struct{}{}
	}

	var common, union float64
	for tok := range setA {
		w := m.Weight(tok)
		union += w
		if _, ok := setB[tok]; ok {
			common += w
		}
	}
	for tok := range setB {
		if _, ok := setA[tok]; !ok {
			union += m.Weight(tok)
		}
	}
	if union == 0 {
		return 0
	}
	return common / union
}

// acronym checks if a single-token name spells initials of the other.
func acronym(ta, tb []string) float64 {
	if len(ta) > 1 {
		ta, tb = tb, ta
	}
	if len(ta) != 1 || len(tb) < 2 {
		return 0
	}
	if ta[0] == initials(tb) {
		return acronymScore
	}
	return 0
}

func initials(toks []string) string {
	var sb strings.Builder
	for _, v := range toks {
		r, _ := utf8.DecodeRuneInString(v)
		sb.WriteRune(r)
	}
	return sb.String()
}
