// Package plan implements the planner entry point (C9) and the
// orchestration that wires C1 through C8 together: a single synchronous,
// pure function from (rows, request) to response, matching the
// concurrency model's "no suspension points inside the planner" rule.
package plan

import (
	"time"

	"github.com/nomadstar/classplanner/internal/clique"
	"github.com/nomadstar/classplanner/internal/diag"
	"github.com/nomadstar/classplanner/internal/priority"
	"github.com/nomadstar/classplanner/internal/sectionset"
)

// Request is the planner's external entry point contract (§6.2).
type Request struct {
	ApprovedCourseKeys []string         `json:"approved_course_keys,omitempty"`
	PriorityCourseKeys []string         `json:"priority_course_keys,omitempty"`
	PreferredTimes     []string         `json:"preferred_times,omitempty"`
	MallaID            string           `json:"malla_id,omitempty"`
	Sheet              string           `json:"sheet,omitempty"` // optional override of MallaID's sheet selection
	Filters            *FiltersRequest  `json:"filters,omitempty"`
}

// FiltersRequest mirrors the four optional filters of §6.2, each nil when
// absent from the request.
type FiltersRequest struct {
	FreeDayTime    *FreeDayTimeRequest    `json:"free_day_time,omitempty"`
	InterActivity  *InterActivityRequest  `json:"inter_activity,omitempty"`
	InstructorPref *InstructorPrefRequest `json:"instructor_pref,omitempty"`
	LineBalance    *LineBalanceRequest    `json:"line_balance,omitempty"`
}

// FreeDayTimeRequest's Ranges use the same "DAY HH:MM-HH:MM" grammar as
// PreferredTimes.
type FreeDayTimeRequest struct {
	Enabled      bool     `json:"enabled"`
	FreeDays     []string `json:"free_days,omitempty"`
	Ranges       []string `json:"ranges,omitempty"`
	MinimizeGaps bool     `json:"minimize_gaps,omitempty"`
}

type InterActivityRequest struct {
	Enabled    bool `json:"enabled"`
	MinMinutes int  `json:"min_minutes,omitempty"`
}

type InstructorPrefRequest struct {
	Enabled bool     `json:"enabled"`
	Prefer  []string `json:"prefer,omitempty"`
	Avoid   []string `json:"avoid,omitempty"`
}

type LineBalanceRequest struct {
	Enabled bool               `json:"enabled"`
	Lines   map[string]float64 `json:"lines,omitempty"`
}

// Response is the planner's external response contract (§6.3).
type Response struct {
	DocumentsRead int            `json:"documents_read"`
	ScheduleCount int            `json:"schedule_count"`
	Schedules     []ScheduleView `json:"schedules"`
	Diagnostics   Diagnostics    `json:"diagnostics"`
	CriticalPath  []string       `json:"critical_path,omitempty"` // supplemented: the catalog's critical-path course keys
}

// Diagnostics is Response.diagnostics (§6.3).
type Diagnostics struct {
	LivenessFallback bool     `json:"liveness_fallback"`
	FiltersApplied   []string `json:"filters_applied,omitempty"`
	PartialResult    bool     `json:"partial_result"`
	Warnings         []string `json:"warnings,omitempty"`
}

// ScheduleView is one returned Schedule, serialized with section details
// per §4.9.
type ScheduleView struct {
	Sections   []SectionView `json:"sections"`
	TotalScore int           `json:"total_score"`
}

// SectionView is one section within a returned Schedule.
type SectionView struct {
	NameKey      string                `json:"name_key"`
	CourseName   string                `json:"course_name"`
	SectionLabel string                `json:"section_label"`
	Instructor   string                `json:"instructor"`
	Meetings     []sectionset.Meeting  `json:"meetings"`
}

// Error is the planner's error envelope (§6.4).
type Error struct {
	ErrorKind diag.Kind      `json:"error_kind"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return string(e.ErrorKind) + ": " + e.Message
}

// Config holds the tunables a caller (CLI, HTTP handler, cache layer)
// assembles once and reuses across calls.
type Config struct {
	TimeBudget time.Duration
	NMax       int
	Priority   priority.Config
	Clique     clique.Config
}

// DefaultConfig matches the constants named throughout §4 and §5: a 500ms
// soft time budget and N_MAX = 10.
func DefaultConfig() Config {
	return Config{
		TimeBudget: 500 * time.Millisecond,
		NMax:       10,
		Priority:   priority.DefaultConfig(),
		Clique:     clique.DefaultConfig(),
	}
}
