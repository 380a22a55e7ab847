// Package curriculum implements the curriculum assembler (C3): it turns
// the Master Map into an immutable Course catalog plus its prerequisite
// DAG, resolving prerequisite malla_ids to name keys and computing each
// course's out_degree by transitive closure.
package curriculum

import (
	"fmt"
	"sort"

	"github.com/nomadstar/classplanner/internal/diag"
	"github.com/nomadstar/classplanner/internal/identity"
	"github.com/nomadstar/classplanner/internal/sectionset"
)

// Catalog is the assembled Course catalog and its prerequisite DAG.
// Unlocks is the reverse adjacency of Course.PrerequisiteNameKeys: for key
// u, Unlocks[u] lists the courses that list u as a direct prerequisite.
type Catalog struct {
	Courses map[string]*sectionset.Course
	Unlocks map[string][]string
}

// Assemble builds a Catalog from a Master Map. It returns non-fatal
// DanglingPrerequisite warnings for prerequisite ids that do not resolve,
// and a fatal CyclicCurriculum error if the prerequisite graph has a cycle.
func Assemble(mm *identity.MasterMap) (*Catalog, []diag.Warning, error) {
	keys := mm.SortedKeys()
	courses := make(map[string]*sectionset.Course, len(keys))
	for _, key := range keys {
		sk, _ := mm.Get(key)
		courses[key] = &sectionset.Course{
			NameKey:        sk.NameKey,
			Name:           sk.Name,
			MallaID:        sk.MallaID,
			CodeOffering:   sk.CodeOffering,
			CodeDifficulty: sk.CodeDifficulty,
			Semester:       sk.Semester,
			IsElective:     sk.IsElective,
			Difficulty:     sk.Difficulty,
		}
	}

	var warnings []diag.Warning
	unlocks := make(map[string][]string)
	for _, key := range keys {
		sk, _ := mm.Get(key)
		for _, mallaID := range sk.PrerequisiteMallaIDs {
			prereqKey, ok := mm.KeyByMallaID(mallaID)
			if !ok {
				warnings = append(warnings, diag.Warning{
					Kind:    diag.DanglingPrerequisite,
					Message: fmt.Sprintf("course %q references unknown prerequisite malla_id %d; edge dropped", sk.Name, mallaID),
				})
				continue
			}
			if prereqKey == key {
				warnings = append(warnings, diag.Warning{
					Kind:    diag.DanglingPrerequisite,
					Message: fmt.Sprintf("course %q lists itself as a prerequisite; edge dropped", sk.Name),
				})
				continue
			}
			courses[key].PrerequisiteNameKeys = append(courses[key].PrerequisiteNameKeys, prereqKey)
			unlocks[prereqKey] = append(unlocks[prereqKey], key)
		}
	}

	for _, c := range courses {
		c.PrerequisiteNameKeys = sortedUnique(c.PrerequisiteNameKeys)
	}
	for k, v := range unlocks {
		unlocks[k] = sortedUnique(v)
	}

	if err := checkAcyclic(courses); err != nil {
		return nil, warnings, err
	}

	computeOutDegree(courses, unlocks)

	return &Catalog{Courses: courses, Unlocks: unlocks}, warnings, nil
}

func sortedUnique(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// checkAcyclic walks the prerequisite graph with a standard 3-color DFS;
// any back edge to a gray node is a cycle.
func checkAcyclic(courses map[string]*sectionset.Course) error {
	const (
		white = iota
		gray
		black
	)
	state := make(map[string]int, len(courses))
	keys := make([]string, 0, len(courses))
	for k := range courses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var cycleErr error
	var visit func(key string) bool
	visit = func(key string) bool {
		state[key] = gray
		for _, prereq := range courses[key].PrerequisiteNameKeys {
			switch state[prereq] {
			case gray:
				cycleErr = &diag.FatalError{
					Kind:    diag.CyclicCurriculum,
					Message: fmt.Sprintf("prerequisite cycle detected between %q and %q", key, prereq),
				}
				return false
			case white:
				if !visit(prereq) {
					return false
				}
			}
		}
		state[key] = black
		return true
	}

	for _, k := range keys {
		if state[k] == white {
			if !visit(k) {
				return cycleErr
			}
		}
	}
	return nil
}

// computeOutDegree fills in Course.OutDegree: the size of the transitive
// closure of courses unlocked by each node, memoized since the same
// sub-closure is shared by many ancestors in a DAG.
func computeOutDegree(courses map[string]*sectionset.Course, unlocks map[string][]string) {
	memo := make(map[string]map[string]struct{}, len(courses))
	var visit func(key string) map[string]struct{}
	visit = func(key string) map[string]struct{} {
		if v, ok := memo[key]; ok {
			return v
		}
		set := make(map[string]struct{})
		memo[key] = set // break recursion on self-reference defensively; cycles already rejected
		for _, next := range unlocks[key] {
			set[next] = struct{}{}
			for d := range visit(next) {
				set[d] = struct{}{}
			}
		}
		return set
	}

	for key, c := range courses {
		c.OutDegree = len(visit(key))
	}
}
