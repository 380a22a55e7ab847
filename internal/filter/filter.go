// Package filter implements the optional filter pipeline (C8): a fixed
// ordered sequence of pure, composable predicates over Schedules, plus a
// flag reporting when enabled filters emptied the result.
package filter

import (
	"sort"

	"github.com/nomadstar/classplanner/internal/sectionset"
)

// FreeDayTimeConfig corresponds to the free_day_time filter in §6.2.
type FreeDayTimeConfig struct {
	Enabled      bool
	FreeDays     []sectionset.Day
	Ranges       []Window
	MinimizeGaps bool
}

// Window is a day-scoped time range, mirroring internal/timewindow.Window
// but kept local so this package has no dependency beyond sectionset.
type Window struct {
	Day         sectionset.Day
	StartMinute int
	EndMinute   int
}

func (w Window) contains(m sectionset.Meeting) bool {
	return m.Day == w.Day && m.StartMinute >= w.StartMinute && m.EndMinute <= w.EndMinute
}

// InterActivityConfig corresponds to the inter_activity filter.
type InterActivityConfig struct {
	Enabled    bool
	MinMinutes int
}

// InstructorPrefConfig corresponds to the instructor_pref filter. Avoid is a
// hard exclusion; Prefer only affects tie-break ranking among survivors.
type InstructorPrefConfig struct {
	Enabled bool
	Prefer  []string
	Avoid   []string
}

// LineBalanceConfig corresponds to the line_balance filter. Lines maps a
// subject-area line (the section's code letter prefix) to the maximum
// number of sections from that line a schedule may contain.
type LineBalanceConfig struct {
	Enabled bool
	Lines   map[string]float64
}

// Config bundles the four filters in the fixed composition order required
// by §4.8: time-window, instructor, inter-activity gap, line balance.
type Config struct {
	FreeDayTime    FreeDayTimeConfig
	InterActivity  InterActivityConfig
	InstructorPref InstructorPrefConfig
	LineBalance    LineBalanceConfig
	NMax           int
}

// NamedPredicate pairs a filter's external name (used in diagnostics'
// filters_applied) with its predicate function.
type NamedPredicate struct {
	Name      string
	Predicate func(sectionset.Schedule) bool
}

// Build returns the enabled predicates in the fixed composition order.
// Removing any prefix of the returned slice still yields a valid,
// consistent (superset) pipeline, as §4.8 requires.
func Build(cfg Config) []NamedPredicate {
	var preds []NamedPredicate
	if cfg.FreeDayTime.Enabled {
		preds = append(preds, NamedPredicate{"free_day_time", freeDayTimePredicate(cfg.FreeDayTime)})
	}
	if cfg.InstructorPref.Enabled {
		preds = append(preds, NamedPredicate{"instructor_pref", instructorPredicate(cfg.InstructorPref)})
	}
	if cfg.InterActivity.Enabled {
		preds = append(preds, NamedPredicate{"inter_activity", interActivityPredicate(cfg.InterActivity)})
	}
	if cfg.LineBalance.Enabled {
		preds = append(preds, NamedPredicate{"line_balance", lineBalancePredicate(cfg.LineBalance)})
	}
	return preds
}

// Outcome is what C8 hands to the response builder (C9).
type Outcome struct {
	Schedules           []sectionset.Schedule
	FiltersApplied      []string
	AllSchedulesDropped bool // filters enabled but emptied the result — legal, not a liveness violation
}

// Apply runs the fixed filter pipeline over an already-ranked schedule list
// and truncates to NMax (defaulting to 10, the spec's N_MAX). Liveness
// fallback (no filters enabled, an empty result, and unapproved work still
// remaining) is an orchestration-level concern handled by internal/plan, not here: this
// package only ever reports what filtering did to the list it was given.
func Apply(ranked []sectionset.Schedule, cfg Config) Outcome {
	nMax := cfg.NMax
	if nMax <= 0 {
		nMax = 10
	}

	preds := Build(cfg)
	if len(preds) == 0 {
		return Outcome{Schedules: topN(ranked, nMax)}
	}

	names := make([]string, len(preds))
	for i, p := range preds {
		names[i] = p.Name
	}

	var survivors []sectionset.Schedule
	for _, sched := range ranked {
		ok := true
		for _, p := range preds {
			if !p.Predicate(sched) {
				ok = false
				break
			}
		}
		if ok {
			survivors = append(survivors, sched)
		}
	}

	survivors = rankWithPreferences(survivors, cfg)
	out := topN(survivors, nMax)

	return Outcome{
		Schedules:           out,
		FiltersApplied:      names,
		AllSchedulesDropped: len(out) == 0,
	}
}

func topN(schedules []sectionset.Schedule, n int) []sectionset.Schedule {
	if len(schedules) <= n {
		return schedules
	}
	return schedules[:n]
}

func freeDayTimePredicate(cfg FreeDayTimeConfig) func(sectionset.Schedule) bool {
	forbiddenDays := make(map[sectionset.Day]bool, len(cfg.FreeDays))
	for _, d := range cfg.FreeDays {
		forbiddenDays[d] = true
	}
	return func(sched sectionset.Schedule) bool {
		for _, sc := range sched.Sections {
			for _, m := range sc.Section.Meetings {
				if forbiddenDays[m.Day] {
					return false
				}
				if len(cfg.Ranges) > 0 && !withinAny(m, cfg.Ranges) {
					return false
				}
			}
		}
		return true
	}
}

func withinAny(m sectionset.Meeting, windows []Window) bool {
	for _, w := range windows {
		if w.contains(m) {
			return true
		}
	}
	return false
}

func instructorPredicate(cfg InstructorPrefConfig) func(sectionset.Schedule) bool {
	avoid := toSet(cfg.Avoid)
	return func(sched sectionset.Schedule) bool {
		for _, sc := range sched.Sections {
			if avoid[sc.Section.Instructor] {
				return false
			}
		}
		return true
	}
}

func interActivityPredicate(cfg InterActivityConfig) func(sectionset.Schedule) bool {
	return func(sched sectionset.Schedule) bool {
		byDay := map[sectionset.Day][]sectionset.Meeting{}
		for _, sc := range sched.Sections {
			for _, m := range sc.Section.Meetings {
				byDay[m.Day] = append(byDay[m.Day], m)
			}
		}
		for _, meetings := range byDay {
			sort.Slice(meetings, func(i, j int) bool { return meetings[i].StartMinute < meetings[j].StartMinute })
			for i := 1; i < len(meetings); i++ {
				gap := meetings[i].StartMinute - meetings[i-1].EndMinute
				if gap < cfg.MinMinutes {
					return false
				}
			}
		}
		return true
	}
}

func lineBalancePredicate(cfg LineBalanceConfig) func(sectionset.Schedule) bool {
	return func(sched sectionset.Schedule) bool {
		if len(cfg.Lines) == 0 {
			return true
		}
		counts := map[string]int{}
		for _, sc := range sched.Sections {
			counts[lineOf(sc.Section)]++
		}
		for line, max := range cfg.Lines {
			if float64(counts[line]) > max {
				return false
			}
		}
		return true
	}
}

// lineOf derives a subject-area line from a section's code: the leading
// run of letters (e.g. "CIG1002" -> "CIG"), falling back to the course's
// name_key when no raw code was recorded.
func lineOf(s sectionset.Section) string {
	code := s.RawCode
	if code == "" {
		code = s.NameKey
	}
	i := 0
	for i < len(code) && isLetter(code[i]) {
		i++
	}
	if i == 0 {
		return code
	}
	return code[:i]
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
