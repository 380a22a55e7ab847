// Package pert implements the PERT engine (C4): earliest/latest start and
// slack over the prerequisite DAG, computed by a forward and a backward
// pass over a deterministic topological order.
package pert

import (
	"container/heap"
	"sort"

	"github.com/nomadstar/classplanner/internal/diag"
	"github.com/nomadstar/classplanner/internal/sectionset"
)

// Compute fills in EarliestStart, LatestStart, Slack and Critical on every
// course in courses, using unlocks (the reverse adjacency of
// Course.PrerequisiteNameKeys) for the forward-looking steps. It performs
// its own topological sort and fails with CyclicCurriculum if the graph is
// not acyclic, independent of whatever check the caller already ran.
func Compute(courses map[string]*sectionset.Course, unlocks map[string][]string) error {
	order, err := topoSort(courses, unlocks)
	if err != nil {
		return err
	}

	for _, key := range order {
		c := courses[key]
		earliest := 0
		for _, p := range c.PrerequisiteNameKeys {
			if cand := courses[p].EarliestStart + 1; cand > earliest {
				earliest = cand
			}
		}
		c.EarliestStart = earliest
	}

	for i := len(order) - 1; i >= 0; i-- {
		key := order[i]
		c := courses[key]
		successors := unlocks[key]
		if len(successors) == 0 {
			c.LatestStart = c.EarliestStart
			continue
		}
		latest := -1
		for _, s := range successors {
			cand := courses[s].LatestStart - 1
			if latest == -1 || cand < latest {
				latest = cand
			}
		}
		c.LatestStart = latest
	}

	for _, c := range courses {
		c.Slack = c.LatestStart - c.EarliestStart
		c.Critical = c.Slack == 0
	}
	return nil
}

// CriticalPath returns the name keys of every critical (zero-slack) course,
// ascending, which per §8's PERT-correctness property always forms at
// least one root-to-sink path through the DAG.
func CriticalPath(courses map[string]*sectionset.Course) []string {
	var path []string
	for key, c := range courses {
		if c.Critical {
			path = append(path, key)
		}
	}
	sort.Strings(path)
	return path
}

// topoSort runs Kahn's algorithm with a min-heap frontier so ties are
// always broken by ascending name_key, as required by §4.4.
func topoSort(courses map[string]*sectionset.Course, unlocks map[string][]string) ([]string, error) {
	indegree := make(map[string]int, len(courses))
	for k, c := range courses {
		indegree[k] = len(c.PrerequisiteNameKeys)
	}

	frontier := &stringHeap{}
	for k, d := range indegree {
		if d == 0 {
			heap.Push(frontier, k)
		}
	}

	order := make([]string, 0, len(courses))
	for frontier.Len() > 0 {
		key := heap.Pop(frontier).(string)
		order = append(order, key)
		for _, next := range unlocks[key] {
			indegree[next]--
			if indegree[next] == 0 {
				heap.Push(frontier, next)
			}
		}
	}

	if len(order) != len(courses) {
		return nil, &diag.FatalError{
			Kind:    diag.CyclicCurriculum,
			Message: "prerequisite graph contains a cycle",
		}
	}
	return order, nil
}

type stringHeap []string

func (h stringHeap) Len() int            { return len(h) }
func (h stringHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h stringHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *stringHeap) Push(x interface{}) { *h = append(*h, x.(string)) }
func (h *stringHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
