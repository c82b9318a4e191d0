package dedupe

import (
	"math"
	"slices"
	"strings"

	"github.com/gnames/gnuuid"
)

// Model keeps token statistics of the population it was trained on.
// It is gob-encoded for persistence, so all fields are exported.
type Model struct {
	// IDF maps a name token to its inverse document frequency.
	IDF map[string]float64

	// DocFreq maps a name token to the number of names containing it.
	DocFreq map[string]int

	// Population is the number of records the model was trained on.
	Population int

	// Fingerprint is a UUID v5 of the sorted training population.
	Fingerprint string
}

// Train fits token weights over recs.
func (mt *matcher) Train(recs []Record) (*Model, error) {
	return Train(recs)
}

// Train fits token weights over recs. Every name counts once per token.
func Train(recs []Record) (*Model, error) {
	if len(recs) == 0 {
		return nil, ModelTrainError(0, errEmptyPopulation)
	}

	df := make(map[string]int)
	for _, v := range recs {
		seen := make(map[string]struct{})
		for _, tok := range strings.Fields(v.Name) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	n := len(recs)
	idf := make(map[string]float64, len(df))
	for tok, count := range df {
		idf[tok] = idfValue(n, count)
	}

	res := &Model{
		IDF:         idf,
		DocFreq:     df,
		Population:  n,
		Fingerprint: Fingerprint(recs),
	}
	return res, nil
}

// Fingerprint identifies a population by its countries and names,
// regardless of record order and IDs.
func Fingerprint(recs []Record) string {
	keys := make([]string, len(recs))
	for i, v := range recs {
		keys[i] = v.Country + "|" + v.Name
	}
	slices.Sort(keys)
	return gnuuid.New(strings.Join(keys, "\n")).String()
}

// Weight returns the IDF of a token. Tokens unknown to the model are
// treated as the rarest ones.
func (m *Model) Weight(tok string) float64 {
	if w, ok := m.IDF[tok]; ok {
		return w
	}
	return idfValue(m.Population, 0)
}

// smoothed inverse document frequency, always positive
func idfValue(n, df int) float64 {
	return math.Log(float64(n+1)/float64(df+1)) + 1
}
