package dedupe

import (
	"slices"
	"strings"
)

const (
	// prefixLen is the length of token prefixes used as block keys.
	prefixLen = 3

	// maxBlockShare is the largest share of the population a token may
	// appear in and still be used for blocking.
	maxBlockShare = 0.25

	// minBlockPopulation is the population size below which every token
	// is used for blocking.
	minBlockPopulation = 20
)

type pair struct {
	a, b int
}

// blockKeys returns keys of the blocks a name belongs to: prefixes of
// significant tokens and initials (a single-token name is its own
// initials).
func (m *Model) blockKeys(name string) []string {
	toks := strings.Fields(name)
	if len(toks) == 0 {
		return nil
	}

	var res []string
	for _, tok := range toks {
		if len(tok) < prefixLen || !m.significant(tok) {
			continue
		}
		res = append(res, "p:"+tok[:prefixLen])
	}

	if len(toks) == 1 {
		res = append(res, "i:"+toks[0])
	} else {
		res = append(res, "i:"+initials(toks))
	}
	return res
}

func (m *Model) significant(tok string) bool {
	if m.Population < minBlockPopulation {
		return true
	}
	share := float64(m.DocFreq[tok]) / float64(m.Population)
	return share <= maxBlockShare
}

// candidatePairs returns unique pairs of record indices that share a
// country and at least one block. The result is sorted.
func (m *Model) candidatePairs(recs []Record) []pair {
	blocks := make(map[string][]int)
	for i, v := range recs {
		for _, key := range m.blockKeys(v.Name) {
			k := v.Country + "\x00" + key
			blocks[k] = append(blocks[k], i)
		}
	}

	seen := make(map[pair]struct{})
	var res []pair
	for _, idx := range blocks {
		for i := 0; i < len(idx); i++ {
			for j := i + 1; j < len(idx); j++ {
				p := pair{a: min(idx[i], idx[j]), b: max(idx[i], idx[j])}
				if p.a == p.b {
					continue
				}
				if _, ok := seen[p]; ok {
					continue
				}
				seen[p] = struct{}{}
				res = append(res, p)
			}
		}
	}

	slices.SortFunc(res, func(x, y pair) int {
		if x.a != y.a {
			return x.a - y.a
		}
		return x.b - y.b
	})
	return res
}
