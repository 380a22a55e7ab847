package pert

import (
	"testing"

	"github.com/nomadstar/classplanner/internal/sectionset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainCatalog builds A -> B -> C -> D, a single critical path, plus a free
// elective E with no edges, to exercise both the critical path and slack.
func chainCatalog() (map[string]*sectionset.Course, map[string][]string) {
	courses := map[string]*sectionset.Course{
		"a": {NameKey: "a"},
		"b": {NameKey: "b", PrerequisiteNameKeys: []string{"a"}},
		"c": {NameKey: "c", PrerequisiteNameKeys: []string{"b"}},
		"d": {NameKey: "d", PrerequisiteNameKeys: []string{"c"}},
		"e": {NameKey: "e"},
	}
	unlocks := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"d"},
	}
	return courses, unlocks
}

func TestComputeEarliestLatestAndSlack(t *testing.T) {
	courses, unlocks := chainCatalog()
	require.NoError(t, Compute(courses, unlocks))

	assert.Equal(t, 0, courses["a"].EarliestStart)
	assert.Equal(t, 1, courses["b"].EarliestStart)
	assert.Equal(t, 2, courses["c"].EarliestStart)
	assert.Equal(t, 3, courses["d"].EarliestStart)

	for key, c := range courses {
		assert.LessOrEqual(t, c.EarliestStart, c.LatestStart, key)
	}

	// the chain a->b->c->d is the only path, so all four are critical
	for _, key := range []string{"a", "b", "c", "d"} {
		assert.True(t, courses[key].Critical, key)
		assert.Equal(t, 0, courses[key].Slack, key)
	}
	// the isolated elective is trivially critical too (earliest==latest==0)
	assert.Equal(t, 0, courses["e"].Slack)
}

func TestComputeCycleFails(t *testing.T) {
	courses := map[string]*sectionset.Course{
		"a": {NameKey: "a", PrerequisiteNameKeys: []string{"b"}},
		"b": {NameKey: "b", PrerequisiteNameKeys: []string{"a"}},
	}
	unlocks := map[string][]string{"a": {"b"}, "b": {"a"}}
	err := Compute(courses, unlocks)
	assert.Error(t, err)
}

func TestCriticalPathFormsRootToSink(t *testing.T) {
	courses, unlocks := chainCatalog()
	require.NoError(t, Compute(courses, unlocks))
	path := CriticalPath(courses)
	assert.Contains(t, path, "a")
	assert.Contains(t, path, "d")
}
