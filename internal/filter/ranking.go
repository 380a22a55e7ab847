package filter

import (
	"sort"

	"github.com/nomadstar/classplanner/internal/sectionset"
)

// rankWithPreferences re-sorts filtered survivors, keeping total_score
// descending as the primary key (per §4.7's return contract) but breaking
// ties first by preferred-instructor count, then by total daily gap minutes
// when free_day_time.minimize_gaps was requested, and finally by signature
// ascending for full determinism.
func rankWithPreferences(schedules []sectionset.Schedule, cfg Config) []sectionset.Schedule {
	if len(schedules) == 0 {
		return schedules
	}
	prefer := toSet(cfg.InstructorPref.Prefer)
	minimizeGaps := cfg.FreeDayTime.MinimizeGaps

	type scored struct {
		sched       sectionset.Schedule
		preferCount int
		gapMinutes  int
	}
	items := make([]scored, len(schedules))
	for i, s := range schedules {
		items[i] = scored{sched: s, preferCount: countPreferred(s, prefer), gapMinutes: totalGapMinutes(s)}
	}

	sort.SliceStable(items, func(a, b int) bool {
		if items[a].sched.TotalScore != items[b].sched.TotalScore {
			return items[a].sched.TotalScore > items[b].sched.TotalScore
		}
		if len(prefer) > 0 && items[a].preferCount != items[b].preferCount {
			return items[a].preferCount > items[b].preferCount
		}
		if minimizeGaps && items[a].gapMinutes != items[b].gapMinutes {
			return items[a].gapMinutes < items[b].gapMinutes
		}
		return items[a].sched.Signature() < items[b].sched.Signature()
	})

	out := make([]sectionset.Schedule, len(items))
	for i, it := range items {
		out[i] = it.sched
	}
	return out
}

func countPreferred(sched sectionset.Schedule, prefer map[string]bool) int {
	if len(prefer) == 0 {
		return 0
	}
	n := 0
	for _, sc := range sched.Sections {
		if prefer[sc.Section.Instructor] {
			n++
		}
	}
	return n
}

func totalGapMinutes(sched sectionset.Schedule) int {
	byDay := map[sectionset.Day][]sectionset.Meeting{}
	for _, sc := range sched.Sections {
		for _, m := range sc.Section.Meetings {
			byDay[m.Day] = append(byDay[m.Day], m)
		}
	}
	total := 0
	for _, meetings := range byDay {
		sort.Slice(meetings, func(i, j int) bool { return meetings[i].StartMinute < meetings[j].StartMinute })
		for i := 1; i < len(meetings); i++ {
			gap := meetings[i].StartMinute - meetings[i-1].EndMinute
			if gap > 0 {
				total += gap
			}
		}
	}
	return total
}
