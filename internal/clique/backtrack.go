package clique

import (
	"context"
	"sort"

	"github.com/nomadstar/classplanner/internal/sectionset"
)

// backtrack enumerates maximal cliques of the compatibility graph (the
// complement of conflict) via Bron-Kerbosch with pivoting, bounded by
// cfg.ExhaustiveBudget node visits. It only runs for instances small enough
// (n <= cfg.BacktrackingMaxN) that full enumeration is affordable, and is an
// enrichment pass: it can surface maximal schedules the greedy seeds miss,
// adapted from original_source's clique_bk.rs/clique_bk2.rs. Candidate
// ordering is always over sorted int slices so a budget-truncated run is
// still deterministic.
func backtrack(ctx context.Context, order []int, sections []sectionset.Section, weights []int, conflict [][]bool, cfg Config) ([]sectionset.Schedule, bool) {
	n := len(order)
	neighbors := make([][]int, n)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if a != b && !conflict[order[a]][order[b]] {
				neighbors[a] = append(neighbors[a], b)
			}
		}
	}

	var schedules []sectionset.Schedule
	visited := 0
	cancelled := false

	var bk func(r, p, x []int) bool
	bk = func(r, p, x []int) bool {
		visited++
		if visited%cfg.CancelCheckInterval == 0 && ctxDone(ctx) {
			cancelled = true
			return true
		}
		if visited > cfg.ExhaustiveBudget {
			cancelled = true
			return true
		}
		if len(p) == 0 && len(x) == 0 {
			if len(r) > 0 {
				indices := make([]int, len(r))
				for i, pos := range r {
					indices[i] = order[pos]
				}
				schedules = append(schedules, buildSchedule(indices, sections, weights))
			}
			return false
		}

		pivot := choosePivot(p, x, neighbors)
		candidates := subtractSorted(p, neighbors[pivot])
		for _, v := range candidates {
			nr := append(append([]int{}, r...), v)
			np := intersectSorted(p, neighbors[v])
			nx := intersectSorted(x, neighbors[v])
			if bk(nr, np, nx) {
				return true
			}
			p = removeSorted(p, v)
			x = insertSorted(x, v)
		}
		return false
	}

	p0 := make([]int, n)
	for i := range p0 {
		p0[i] = i
	}
	bk(nil, p0, nil)
	return schedules, cancelled
}

func choosePivot(p, x []int, neighbors [][]int) int {
	best, bestCount := -1, -1
	for _, v := range p {
		if len(neighbors[v]) > bestCount {
			best, bestCount = v, len(neighbors[v])
		}
	}
	for _, v := range x {
		if len(neighbors[v]) > bestCount {
			best, bestCount = v, len(neighbors[v])
		}
	}
	return best
}

func intersectSorted(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

func subtractSorted(a, b []int) []int {
	var out []int
	bi := 0
	for _, v := range a {
		for bi < len(b) && b[bi] < v {
			bi++
		}
		if bi < len(b) && b[bi] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}

func removeSorted(a []int, v int) []int {
	out := make([]int, 0, len(a))
	for _, cur := range a {
		if cur != v {
			out = append(out, cur)
		}
	}
	return out
}

func insertSorted(a []int, v int) []int {
	out := append(append([]int{}, a...), v)
	sort.Ints(out)
	return out
}

// finalize sorts the accumulated schedules by total score descending (ties
// broken by signature ascending, for determinism) and truncates to kTotal.
func finalize(results []sectionset.Schedule, kTotal int) []sectionset.Schedule {
	out := make([]sectionset.Schedule, len(results))
	copy(out, results)
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].TotalScore != out[b].TotalScore {
			return out[a].TotalScore > out[b].TotalScore
		}
		return out[a].Signature() < out[b].Signature()
	})
	if kTotal > 0 && len(out) > kTotal {
		out = out[:kTotal]
	}
	return out
}
