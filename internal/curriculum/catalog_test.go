package curriculum

import (
	"testing"

	"github.com/nomadstar/classplanner/internal/diag"
	"github.com/nomadstar/classplanner/internal/identity"
	"github.com/nomadstar/classplanner/internal/rows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMap(t *testing.T, cur []rows.CurriculumRow) *identity.MasterMap {
	m := identity.New()
	require.NoError(t, m.MergeCurriculum(cur))
	return m
}

func TestAssembleResolvesPrerequisites(t *testing.T) {
	// A -> B -> C (A is prereq of B, B is prereq of C)
	mm := buildMap(t, []rows.CurriculumRow{
		{MallaID: 1, Name: "A"},
		{MallaID: 2, Name: "B", PrerequisiteIDs: []int{1}},
		{MallaID: 3, Name: "C", PrerequisiteIDs: []int{2}},
	})
	cat, warnings, err := Assemble(mm)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Empty(t, cat.Courses["a"].PrerequisiteNameKeys)
	assert.Equal(t, []string{"a"}, cat.Courses["b"].PrerequisiteNameKeys)
	assert.Equal(t, []string{"b"}, cat.Courses["c"].PrerequisiteNameKeys)
}

func TestAssembleOutDegreeTransitive(t *testing.T) {
	mm := buildMap(t, []rows.CurriculumRow{
		{MallaID: 1, Name: "A"},
		{MallaID: 2, Name: "B", PrerequisiteIDs: []int{1}},
		{MallaID: 3, Name: "C", PrerequisiteIDs: []int{2}},
	})
	cat, _, err := Assemble(mm)
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Courses["a"].OutDegree) // unlocks B and transitively C
	assert.Equal(t, 1, cat.Courses["b"].OutDegree) // unlocks C
	assert.Equal(t, 0, cat.Courses["c"].OutDegree)
	assert.Equal(t, []string{"a"}, cat.Courses["b"].PrerequisiteNameKeys)
	assert.Equal(t, []string{"b"}, cat.Courses["c"].PrerequisiteNameKeys)
}

func TestAssembleDanglingPrerequisiteWarns(t *testing.T) {
	mm := buildMap(t, []rows.CurriculumRow{
		{MallaID: 1, Name: "A", PrerequisiteIDs: []int{99}},
	})
	cat, warnings, err := Assemble(mm)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, diag.DanglingPrerequisite, warnings[0].Kind)
	assert.Empty(t, cat.Courses["a"].PrerequisiteNameKeys)
}

func TestAssembleCycleIsFatal(t *testing.T) {
	mm := buildMap(t, []rows.CurriculumRow{
		{MallaID: 1, Name: "A", PrerequisiteIDs: []int{2}},
		{MallaID: 2, Name: "B", PrerequisiteIDs: []int{1}},
	})
	_, _, err := Assemble(mm)
	require.Error(t, err)
	var fatal *diag.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, diag.CyclicCurriculum, fatal.Kind)
}
