package dedupe

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

type scoredPair struct {
	pair
	score float64
}

// FindCandidates scores plausible pairs concurrently, builds connected
// components of pairs that pass the threshold and splits every
// component into clusters with average linkage. Each pair of records
// joined into one cluster is emitted with the linkage at which their
// sub-clusters were joined.
func (mt *matcher) FindCandidates(
	ctx context.Context,
	m *Model,
	recs []Record,
) ([]Candidate, error) {
	if m == nil {
		return nil, ModelCandidatesError(errNoModel)
	}
	if len(recs) < 2 {
		return nil, nil
	}

	pairs := m.candidatePairs(recs)
	slog.Info("Scoring candidate pairs",
		"records", len(recs), "pairs", len(pairs))

	accepted, err := mt.score(ctx, m, recs, pairs)
	if err != nil {
		return nil, err
	}

	clusters := components(len(recs), accepted)
	res := mt.clusterCandidates(m, recs, clusters)
	slog.Info("Found candidates",
		"clusters", len(clusters), "candidates", len(res))
	return res, nil
}

func (mt *matcher) score(
	ctx context.Context,
	m *Model,
	recs []Record,
	pairs []pair,
) ([]pair, error) {
	chIn := make(chan pair)
	chOut := make(chan scoredPair)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for _, p := range pairs {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case chIn <- p:
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for range mt.jobsNum {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for p := range chIn {
				sp := scoredPair{
					pair:  p,
					score: m.Similarity(recs[p.a].Name, recs[p.b].Name),
				}
				select {
				case <-gCtx.Done():
					return gCtx.Err()
				case chOut <- sp:
				}
			}
			return nil
		})
	}

	go func() {
		wg.Wait()
		close(chOut)
	}()

	var res []pair
	for sp := range chOut {
		if sp.score >= mt.threshold {
			res = append(res, sp.pair)
		}
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, ModelCandidatesError(err)
	}
	return res, nil
}

// components groups record indices into connected components using
// union-find. Only components of two or more members are returned,
// each sorted by index.
func components(n int, pairs []pair) [][]int {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	for _, p := range pairs {
		ra, rb := find(p.a), find(p.b)
		if ra != rb {
			parent[max(ra, rb)] = min(ra, rb)
		}
	}

	groups := make(map[int][]int)
	for i := range n {
		r := find(i)
		groups[r] = append(groups[r], i)
	}

	var res [][]int
	for _, g := range groups {
		if len(g) > 1 {
			res = append(res, g)
		}
	}
	slices.SortFunc(res, func(a, b []int) int { return a[0] - b[0] })
	return res
}

// join is one step of agglomerative clustering: members of the two
// joined clusters and their mean cross-similarity.
type join struct {
	a, b    []int
	linkage float64
}

// agglomerate clusters members of a component with average linkage.
// Two clusters are joined only while their mean cross-similarity stays
// at or above threshold, so a record that is loosely similar to one
// member cannot chain dissimilar records together.
func agglomerate(m *Model, recs []Record, members []int, threshold float64) []join {
	n := len(members)
	clusters := make([][]int, n)
	sums := make([][]float64, n)
	for i := range n {
		clusters[i] = []int{members[i]}
		sums[i] = make([]float64, n)
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			s := m.Similarity(recs[members[i]].Name, recs[members[j]].Name)
			sums[i][j], sums[j][i] = s, s
		}
	}

	var res []join
	for {
		bi, bj := -1, -1
		var best float64
		for i := range n {
			if clusters[i] == nil {
				continue
			}
			for j := i + 1; j < n; j++ {
				if clusters[j] == nil {
					continue
				}
				l := sums[i][j] / float64(len(clusters[i])*len(clusters[j]))
				if bi < 0 || l > best {
					bi, bj, best = i, j, l
				}
			}
		}
		if bi < 0 || best < threshold {
			return res
		}

		res = append(res, join{a: clusters[bi], b: clusters[bj], linkage: best})
		clusters[bi] = append(slices.Clone(clusters[bi]), clusters[bj]...)
		clusters[bj] = nil
		for k := range n {
			sums[bi][k] += sums[bj][k]
			sums[k][bi] = sums[bi][k]
		}
	}
}

// clusterCandidates emits pairs across every join of every component.
// Joins of average linkage never raise the linkage, so pairs at or
// above any confidence threshold form whole clusters.
func (mt *matcher) clusterCandidates(
	m *Model,
	recs []Record,
	comps [][]int,
) []Candidate {
	seen := make(map[[2]string]struct{})
	var res []Candidate
	for _, comp := range comps {
		for _, j := range agglomerate(m, recs, comp, mt.threshold) {
			for _, x := range j.a {
				for _, y := range j.b {
					idX, idY := recs[x].ID, recs[y].ID
					if idX == idY {
						continue
					}
					key := [2]string{min(idX, idY), max(idX, idY)}
					if _, ok := seen[key]; ok {
						continue
					}
					seen[key] = struct{}{}
					res = append(res, Candidate{
						KeepID:     key[0],
						MergeID:    key[1],
						Confidence: j.linkage,
					})
				}
			}
		}
	}

	slices.SortFunc(res, func(a, b Candidate) int {
		if c := strings.Compare(a.KeepID, b.KeepID); c != 0 {
			return c
		}
		return strings.Compare(a.MergeID, b.MergeID)
	})
	return res
}
