package priority

import (
	"testing"

	"github.com/nomadstar/classplanner/internal/sectionset"
	"github.com/stretchr/testify/assert"
)

func semester(n int) *int { return &n }

func TestScoreEarlierSemesterScoresHigher(t *testing.T) {
	cfg := DefaultConfig()
	early := &sectionset.Course{Semester: semester(1)}
	late := &sectionset.Course{Semester: semester(8)}
	assert.Greater(t, Score(early, false, 8, cfg), Score(late, false, 8, cfg))
}

func TestScoreCriticalityAndUnlockBonuses(t *testing.T) {
	cfg := DefaultConfig()
	plain := &sectionset.Course{Semester: semester(3)}
	critical := &sectionset.Course{Semester: semester(3), Critical: true}
	unlocker := &sectionset.Course{Semester: semester(3), OutDegree: 4}

	base := Score(plain, false, 8, cfg)
	assert.Greater(t, Score(critical, false, 8, cfg), base)
	assert.Greater(t, Score(unlocker, false, 8, cfg), base)
}

func TestScorePriorityOverrideDominates(t *testing.T) {
	cfg := DefaultConfig()
	notPriority := &sectionset.Course{Semester: semester(1), Critical: true, OutDegree: 10}
	priority := &sectionset.Course{Semester: semester(8)}
	assert.Greater(t, Score(priority, true, 8, cfg), Score(notPriority, false, 8, cfg))
}

func TestSectionBonusAppliesOnlyWhenWithinPreferredTimes(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.PreferredTimeBonus, SectionBonus(true, cfg))
	assert.Equal(t, 0, SectionBonus(false, cfg))
}

func approval(pct float64) *float64 { return &pct }

func TestScoreHarderCourseScoresHigherThanEasierCourse(t *testing.T) {
	cfg := DefaultConfig()
	hard := &sectionset.Course{Semester: semester(3), Difficulty: approval(30)}
	easy := &sectionset.Course{Semester: semester(3), Difficulty: approval(90)}
	assert.Greater(t, Score(hard, false, 8, cfg), Score(easy, false, 8, cfg))
}

func TestScoreUnknownDifficultyFallsBackToNeutralFifty(t *testing.T) {
	cfg := DefaultConfig()
	unknown := &sectionset.Course{Semester: semester(3), Difficulty: nil}
	neutral := &sectionset.Course{Semester: semester(3), Difficulty: approval(50)}
	assert.Equal(t, Score(neutral, false, 8, cfg), Score(unknown, false, 8, cfg))
}

func TestMaxSemesterIgnoresElectives(t *testing.T) {
	courses := map[string]*sectionset.Course{
		"a": {Semester: semester(3)},
		"b": {Semester: nil},
		"c": {Semester: semester(6)},
	}
	assert.Equal(t, 6, MaxSemester(courses))
}
