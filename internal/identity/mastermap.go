// Package identity implements the Master Map (C2): the 3-way merge of
// curriculum, offering and difficulty rows keyed by normalized course name,
// which is the system's answer to catalog codes drifting from year to year
// while display names stay stable.
package identity

import (
	"sort"

	"github.com/nomadstar/classplanner/internal/normalize"
	"github.com/nomadstar/classplanner/internal/rows"
)

// Skeleton is a partially-built Course, accumulated across the three merge
// steps. internal/curriculum turns it into a sectionset.Course once
// prerequisite ids have been resolved to name keys.
type Skeleton struct {
	NameKey              string
	Name                 string
	MallaID              *int
	CodeOffering         *string
	CodeDifficulty       *string
	Semester             *int
	IsElective           bool
	Difficulty           *float64
	PrerequisiteMallaIDs []int
}

// MasterMap is the canonical dictionary keyed by normalized course name.
type MasterMap struct {
	byKey            map[string]*Skeleton
	byCodeOffering   map[string]string
	byCodeDifficulty map[string]string
	byMallaID        map[int]string
	order            []string // insertion order, for deterministic iteration
	provenance       map[string][]ProvenanceEntry
}

// New returns an empty Master Map.
func New() *MasterMap {
	return &MasterMap{
		byKey:            make(map[string]*Skeleton),
		byCodeOffering:   make(map[string]string),
		byCodeDifficulty: make(map[string]string),
		byMallaID:        make(map[int]string),
		provenance:       make(map[string][]ProvenanceEntry),
	}
}

func (m *MasterMap) getOrCreate(key, displayName string) *Skeleton {
	if s, ok := m.byKey[key]; ok {
		if s.Name == "" && displayName != "" {
			s.Name = displayName
		}
		return s
	}
	s := &Skeleton{NameKey: key, Name: displayName}
	m.byKey[key] = s
	m.order = append(m.order, key)
	return s
}

// MergeDifficulty is step 1 of the 3-step merge: for each difficulty row,
// set code_difficulty, difficulty and is_elective. Duplicate names within
// this one call are a fatal DuplicateName error.
func (m *MasterMap) MergeDifficulty(rs []rows.DifficultyRow) error {
	seen := make(map[string]bool, len(rs))
	for _, r := range rs {
		key := normalize.Key(r.Name)
		if seen[key] {
			return duplicateNameError("difficulty", r.Name)
		}
		seen[key] = true

		s := m.getOrCreate(key, r.Name)
		if r.Code != "" {
			code := r.Code
			s.CodeDifficulty = &code
			m.byCodeDifficulty[code] = key
			m.recordProvenance(key, "difficulty", "code_difficulty")
		}
		if pct, ok := rows.ParseApprovalPercent(r.ApprovalPercent); ok {
			s.Difficulty = &pct
			m.recordProvenance(key, "difficulty", "difficulty")
		}
		if r.IsElective {
			s.IsElective = true
		}
	}
	return nil
}

// MergeOffering is step 2: for each offering row, set code_offering, never
// overwriting an existing non-empty value with an empty one. Unlike
// MergeDifficulty and MergeCurriculum, repeated names are expected here —
// an offering row is one section, and a course with three sections appears
// as three rows sharing the same name — so this step never treats a
// repeated name as a DuplicateName error.
func (m *MasterMap) MergeOffering(rs []rows.OfferingRow) error {
	for _, r := range rs {
		key := normalize.Key(r.Name)
		s := m.getOrCreate(key, r.Name)
		if r.Code != "" && s.CodeOffering == nil {
			code := r.Code
			s.CodeOffering = &code
			m.byCodeOffering[code] = key
			m.recordProvenance(key, "offering", "code_offering")
		}
	}
	return nil
}

// MergeCurriculum is step 3: for each curriculum row, set malla_id,
// semester and prerequisite_ids.
func (m *MasterMap) MergeCurriculum(rs []rows.CurriculumRow) error {
	seen := make(map[string]bool, len(rs))
	for _, r := range rs {
		key := normalize.Key(r.Name)
		if seen[key] {
			return duplicateNameError("curriculum", r.Name)
		}
		seen[key] = true

		s := m.getOrCreate(key, r.Name)
		mallaID := r.MallaID
		s.MallaID = &mallaID
		m.byMallaID[r.MallaID] = key
		s.Semester = r.Semester
		s.PrerequisiteMallaIDs = append([]int(nil), r.PrerequisiteIDs...)
		m.recordProvenance(key, "curriculum", "malla_id")
	}
	return nil
}

// Get returns the skeleton for a name key, if present.
func (m *MasterMap) Get(key string) (*Skeleton, bool) {
	s, ok := m.byKey[key]
	return s, ok
}

// Keys returns all name keys in deterministic (insertion) order.
func (m *MasterMap) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// SortedKeys returns all name keys sorted ascending, matching the tie-break
// rule used throughout the pipeline (§4.4, §4.7).
func (m *MasterMap) SortedKeys() []string {
	out := m.Keys()
	sort.Strings(out)
	return out
}

// KeyByMallaID resolves a curriculum malla_id to its name key.
func (m *MasterMap) KeyByMallaID(id int) (string, bool) {
	k, ok := m.byMallaID[id]
	return k, ok
}

// ResolveKey resolves a caller-supplied reference — a display name or
// either catalog code — to its canonical name key, per the secondary
// indices built in §4.2. Name references are matched after normalization;
// code references are matched exactly, since catalog codes are not
// free text.
func (m *MasterMap) ResolveKey(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if key := normalize.Key(raw); key != "" {
		if _, ok := m.byKey[key]; ok {
			return key, true
		}
	}
	if key, ok := m.byCodeOffering[raw]; ok {
		return key, true
	}
	if key, ok := m.byCodeDifficulty[raw]; ok {
		return key, true
	}
	return "", false
}

// ResolveKeys resolves a batch of caller-supplied references, as used for
// request.approved_course_keys and request.priority_course_keys. Anything
// that fails to resolve is returned separately so the caller can emit an
// UnresolvedCourseReference warning rather than fail the whole call.
func ResolveKeys(m *MasterMap, raw []string) (resolved map[string]struct{}, unresolved []string) {
	resolved = make(map[string]struct{}, len(raw))
	for _, r := range raw {
		if key, ok := m.ResolveKey(r); ok {
			resolved[key] = struct{}{}
		} else {
			unresolved = append(unresolved, r)
		}
	}
	return resolved, unresolved
}
