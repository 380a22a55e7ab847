// Package clique implements the clique selector (C7): a bounded,
// deterministic multi-seed greedy search over the section conflict graph
// that yields up to K_TOTAL diverse, pairwise non-conflicting schedules,
// with a bounded exhaustive-completion fallback when diversity falls short
// and an optional bounded backtracking cross-check for small instances
// (adapted from original_source/quickshift's clique_bk.rs/clique_bk2.rs).
package clique

import (
	"context"
	"sort"

	"github.com/nomadstar/classplanner/internal/sectionset"
)

// Config holds the search bounds from §4.7/§5.
type Config struct {
	Seeds                int
	KTotal               int
	KMin                 int
	MaxCourses           int
	ExhaustiveBudget     int
	BacktrackingMaxN     int
	CancelCheckInterval  int
}

// DefaultConfig matches the constants named in §4.7.
func DefaultConfig() Config {
	return Config{
		Seeds:               80,
		KTotal:              80,
		KMin:                15,
		MaxCourses:          8,
		ExhaustiveBudget:    5000,
		BacktrackingMaxN:    40,
		CancelCheckInterval: 256,
	}
}

// Result is the outcome of a Select call.
type Result struct {
	Schedules []sectionset.Schedule
	Partial   bool // true if a cancellation or time budget cut the search short
}

// Select runs the bounded multi-seed greedy search described in §4.7.
// sections and weights are parallel slices; conflict is the symmetric
// matrix from sectionset.BuildConflictMatrix over the same sections.
func Select(ctx context.Context, sections []sectionset.Section, weights []int, conflict [][]bool, cfg Config) Result {
	n := len(sections)
	if n == 0 {
		return Result{}
	}

	order := sortedIndices(sections, weights)
	seen := make(map[string]bool)
	var results []sectionset.Schedule

	for s := 0; s < cfg.Seeds; s++ {
		if ctxDone(ctx) {
			return Result{Schedules: finalize(results, cfg.KTotal), Partial: true}
		}
		sched := greedyFrom(order[s%n], order, sections, weights, conflict, cfg.MaxCourses)
		addIfNew(&results, seen, sched)
	}

	if n <= cfg.BacktrackingMaxN {
		bkSchedules, partial := backtrack(ctx, order, sections, weights, conflict, cfg)
		for _, sc := range bkSchedules {
			addIfNew(&results, seen, sc)
		}
		if partial {
			return Result{Schedules: finalize(results, cfg.KTotal), Partial: true}
		}
	}

	if len(results) < cfg.KMin {
		extra, partial := exhaustiveCompletion(ctx, order, sections, weights, conflict, cfg, seen)
		results = append(results, extra...)
		if partial {
			return Result{Schedules: finalize(results, cfg.KTotal), Partial: true}
		}
	}

	return Result{Schedules: finalize(results, cfg.KTotal)}
}

func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func addIfNew(results *[]sectionset.Schedule, seen map[string]bool, sched sectionset.Schedule) {
	if len(sched.Sections) == 0 {
		return
	}
	sig := sched.Signature()
	if seen[sig] {
		return
	}
	seen[sig] = true
	*results = append(*results, sched)
}

// sortedIndices sorts section indices by weight descending, ties broken by
// name_key then section_label, as §4.7 requires.
func sortedIndices(sections []sectionset.Section, weights []int) []int {
	idx := make([]int, len(sections))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if weights[ia] != weights[ib] {
			return weights[ia] > weights[ib]
		}
		if sections[ia].NameKey != sections[ib].NameKey {
			return sections[ia].NameKey < sections[ib].NameKey
		}
		return sections[ia].SectionLabel < sections[ib].SectionLabel
	})
	return idx
}

// greedyFrom builds one clique seeded at startIdx: repeatedly add the
// highest-weight remaining candidate (order is already weight-sorted) that
// doesn't conflict with anything chosen and isn't a second section of an
// already-chosen course.
func greedyFrom(startIdx int, order []int, sections []sectionset.Section, weights []int, conflict [][]bool, maxCourses int) sectionset.Schedule {
	chosen := []int{startIdx}
	chosenCourses := map[string]bool{sections[startIdx].NameKey: true}

	for maxCourses <= 0 || len(chosen) < maxCourses {
		next := -1
		for _, cand := range order {
			if chosenCourses[sections[cand].NameKey] {
				continue
			}
			if conflictsWithAny(cand, chosen, conflict) {
				continue
			}
			next = cand
			break
		}
		if next == -1 {
			break
		}
		chosen = append(chosen, next)
		chosenCourses[sections[next].NameKey] = true
	}

	return buildSchedule(chosen, sections, weights)
}

func conflictsWithAny(cand int, chosen []int, conflict [][]bool) bool {
	for _, c := range chosen {
		if conflict[cand][c] {
			return true
		}
	}
	return false
}

func buildSchedule(indices []int, sections []sectionset.Section, weights []int) sectionset.Schedule {
	sc := sectionset.Schedule{Sections: make([]sectionset.ScoredSection, 0, len(indices))}
	total := 0
	for _, i := range indices {
		sc.Sections = append(sc.Sections, sectionset.ScoredSection{Section: sections[i], Priority: weights[i]})
		total += weights[i]
	}
	sc.TotalScore = total
	sort.Slice(sc.Sections, func(a, b int) bool {
		return sc.Sections[a].Section.ID() < sc.Sections[b].Section.ID()
	})
	return sc
}

// exhaustiveCompletion runs a bounded exhaustive search when the multi-seed
// pass produced fewer than K_MIN distinct schedules: starting from the empty
// set, it enumerates non-conflicting section sets depth-first in weight
// order (each capped at MaxCourses sections), recording every new one, up to
// ExhaustiveBudget total node visits, checking ctx every
// CancelCheckInterval iterations. The returned bool is true only when ctx
// ended the search; running out of budget is not a cancellation.
func exhaustiveCompletion(ctx context.Context, order []int, sections []sectionset.Section, weights []int, conflict [][]bool, cfg Config, seen map[string]bool) ([]sectionset.Schedule, bool) {
	var found []sectionset.Schedule
	budget := cfg.ExhaustiveBudget
	visited := 0
	cancelled := false

	var rec func(chosen []int, chosenCourses map[string]bool, next int) bool // returns true if should stop (cancel/budget)
	rec = func(chosen []int, chosenCourses map[string]bool, next int) bool {
		visited++
		if visited%cfg.CancelCheckInterval == 0 && ctxDone(ctx) {
			cancelled = true
			return true
		}
		if visited > budget {
			return true
		}
		if len(chosen) > 0 {
			sched := buildSchedule(chosen, sections, weights)
			addIfNew(&found, seen, sched)
		}
		if cfg.MaxCourses > 0 && len(chosen) >= cfg.MaxCourses {
			return false
		}
		for i := next; i < len(order); i++ {
			cand := order[i]
			if chosenCourses[sections[cand].NameKey] {
				continue
			}
			if conflictsWithAny(cand, chosen, conflict) {
				continue
			}
			chosenCourses[sections[cand].NameKey] = true
			if rec(append(chosen, cand), chosenCourses, i+1) {
				return true
			}
			delete(chosenCourses, sections[cand].NameKey)
		}
		return false
	}

	rec(nil, map[string]bool{}, 0)
	return found, cancelled
}
