// Package priority computes the per-Course integer priority score (§3)
// that the clique selector (C7) weighs sections by, combining term
// proximity, criticality, unlock value and the caller's explicit
// priority_course_keys override.
package priority

import "github.com/nomadstar/classplanner/internal/sectionset"

// Config holds the tunable weights, loaded from internal/config.
type Config struct {
	CriticalityBonus   int
	UnlockWeight       float64
	OverrideBonus      int
	TermProximityGain  int
	PreferredTimeBonus int
	DifficultyWeight   float64
}

// DefaultConfig holds the values used throughout this package's tests;
// internal/config.Default copies them as its defaults.
func DefaultConfig() Config {
	return Config{
		CriticalityBonus:   50,
		UnlockWeight:       5.0,
		OverrideBonus:      1000,
		TermProximityGain:  10,
		PreferredTimeBonus: 20,
		DifficultyWeight:   1.0,
	}
}

// neutralApprovalPercent is the approval percentage an unknown difficulty
// (nil Course.Difficulty) falls back to — SPEC_FULL §C.2, adopted from
// original_source/quickshift's porcentajes.rs treatment of a
// blank/unparseable cell.
const neutralApprovalPercent = 50.0

// Score computes the priority score for one course. maxSemester is the
// highest recommended semester across the whole catalog, used to invert
// "earlier semester -> higher score" into a positive integer scale;
// electives (nil Semester) get a fixed low-but-positive base so they are
// never worthless, only deprioritized relative to required courses.
func Score(c *sectionset.Course, isPriorityOverride bool, maxSemester int, cfg Config) int {
	base := cfg.TermProximityGain // elective baseline
	if c.Semester != nil {
		distanceFromEnd := maxSemester - *c.Semester + 1
		if distanceFromEnd < 1 {
			distanceFromEnd = 1
		}
		base = distanceFromEnd * cfg.TermProximityGain
	}

	score := base
	if c.Critical {
		score += cfg.CriticalityBonus
	}
	score += int(float64(c.OutDegree) * cfg.UnlockWeight)

	approval := neutralApprovalPercent
	if c.Difficulty != nil {
		approval = *c.Difficulty
	}
	// Lower approval percent means a harder course historically, which
	// earns a higher score so it gets scheduled sooner rather than put off.
	score += int((100 - approval) * cfg.DifficultyWeight)

	if isPriorityOverride {
		score += cfg.OverrideBonus
	}
	return score
}

// SectionBonus returns the additional section weight (§4.7) awarded when a
// section's meetings all fall within the caller's preferred time windows.
func SectionBonus(withinPreferredTimes bool, cfg Config) int {
	if withinPreferredTimes {
		return cfg.PreferredTimeBonus
	}
	return 0
}

// MaxSemester returns the highest recommended semester across a catalog,
// or 0 if every course is an elective (nil Semester).
func MaxSemester(courses map[string]*sectionset.Course) int {
	max := 0
	for _, c := range courses {
		if c.Semester != nil && *c.Semester > max {
			max = *c.Semester
		}
	}
	return max
}
