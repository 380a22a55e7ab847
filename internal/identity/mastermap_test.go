package identity

import (
	"testing"

	"github.com/nomadstar/classplanner/internal/diag"
	"github.com/nomadstar/classplanner/internal/rows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeUnifiesDriftingCodes(t *testing.T) {
	// S4: course X has code CIG1002 in offering and CIG1013 in difficulty,
	// same name — the Master Map produces one entry with both codes.
	m := New()
	require.NoError(t, m.MergeDifficulty([]rows.DifficultyRow{
		{Code: "CIG1013", Name: "Fundamentos de Programacion", ApprovalPercent: "70%"},
	}))
	require.NoError(t, m.MergeOffering([]rows.OfferingRow{
		{Code: "CIG1002", Name: "Fundamentos de Programación"},
	}))

	s, ok := m.Get("fundamentos de programacion")
	require.True(t, ok)
	require.NotNil(t, s.CodeOffering)
	require.NotNil(t, s.CodeDifficulty)
	assert.Equal(t, "CIG1002", *s.CodeOffering)
	assert.Equal(t, "CIG1013", *s.CodeDifficulty)

	k1, ok1 := m.ResolveKey("CIG1002")
	k2, ok2 := m.ResolveKey("CIG1013")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, k1, k2)
}

func TestMergeNeverOverwritesWithEmpty(t *testing.T) {
	m := New()
	require.NoError(t, m.MergeOffering([]rows.OfferingRow{{Code: "ABC123", Name: "Redes"}}))
	require.NoError(t, m.MergeOffering([]rows.OfferingRow{{Code: "", Name: "Redes"}}))

	s, ok := m.Get("redes")
	require.True(t, ok)
	require.NotNil(t, s.CodeOffering)
	assert.Equal(t, "ABC123", *s.CodeOffering)
}

func TestMergeDuplicateNameWithinSourceIsFatal(t *testing.T) {
	m := New()
	err := m.MergeDifficulty([]rows.DifficultyRow{
		{Code: "A1", Name: "Calculo I", ApprovalPercent: "80%"},
		{Code: "A2", Name: "Cálculo I", ApprovalPercent: "60%"},
	})
	require.Error(t, err)
	var fatal *diag.FatalError
	require.ErrorAs(t, err, &fatal)
	assert.Equal(t, diag.DuplicateName, fatal.Kind)
}

func TestMergeOfferingAllowsRepeatedNameAcrossSections(t *testing.T) {
	m := New()
	err := m.MergeOffering([]rows.OfferingRow{
		{Code: "MAT101", Name: "Calculo I", SectionLabel: "1"},
		{Code: "MAT101", Name: "Calculo I", SectionLabel: "2"},
	})
	require.NoError(t, err)
	s, ok := m.Get("calculo i")
	require.True(t, ok)
	assert.Equal(t, "MAT101", *s.CodeOffering)
}

func TestMergeIsOrderIndependent(t *testing.T) {
	diff := []rows.DifficultyRow{{Code: "D1", Name: "Algebra", ApprovalPercent: "55%"}}
	off := []rows.OfferingRow{{Code: "O1", Name: "Algebra"}}
	cur := []rows.CurriculumRow{{MallaID: 7, Name: "Algebra"}}

	m1 := New()
	require.NoError(t, m1.MergeDifficulty(diff))
	require.NoError(t, m1.MergeOffering(off))
	require.NoError(t, m1.MergeCurriculum(cur))

	m2 := New()
	require.NoError(t, m2.MergeCurriculum(cur))
	require.NoError(t, m2.MergeOffering(off))
	require.NoError(t, m2.MergeDifficulty(diff))

	s1, _ := m1.Get("algebra")
	s2, _ := m2.Get("algebra")
	assert.Equal(t, *s1.CodeOffering, *s2.CodeOffering)
	assert.Equal(t, *s1.CodeDifficulty, *s2.CodeDifficulty)
	assert.Equal(t, *s1.MallaID, *s2.MallaID)
	assert.Equal(t, *s1.Difficulty, *s2.Difficulty)
}

func TestResolveKeysSeparatesUnresolved(t *testing.T) {
	m := New()
	require.NoError(t, m.MergeCurriculum([]rows.CurriculumRow{{MallaID: 1, Name: "Fisica I"}}))

	resolved, unresolved := ResolveKeys(m, []string{"Fisica I", "Nonexistent Course"})
	assert.Contains(t, resolved, "fisica i")
	assert.Equal(t, []string{"Nonexistent Course"}, unresolved)
}
