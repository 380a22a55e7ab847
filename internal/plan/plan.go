package plan

import (
	"context"
	"fmt"

	"github.com/nomadstar/classplanner/internal/clique"
	"github.com/nomadstar/classplanner/internal/curriculum"
	"github.com/nomadstar/classplanner/internal/diag"
	"github.com/nomadstar/classplanner/internal/filter"
	"github.com/nomadstar/classplanner/internal/identity"
	"github.com/nomadstar/classplanner/internal/normalize"
	"github.com/nomadstar/classplanner/internal/pert"
	"github.com/nomadstar/classplanner/internal/priority"
	"github.com/nomadstar/classplanner/internal/rows"
	"github.com/nomadstar/classplanner/internal/sectionset"
	"github.com/nomadstar/classplanner/internal/timewindow"
)

// Plan is the planner's entry point: a synchronous, pure function from
// (documents, request) to response. It performs no I/O of its own — rows
// must already be loaded by the caller (internal/rows.Load or the cache
// layer) — and it suspends nowhere except the soft time budget it installs
// around the clique search.
func Plan(ctx context.Context, docs rows.Documents, req Request, cfg Config) (*Response, *Error) {
	if cfg.NMax <= 0 {
		cfg.NMax = 10
	}

	mm := identity.New()
	if err := mm.MergeDifficulty(docs.Difficulty); err != nil {
		return nil, toPlanError(err)
	}
	if err := mm.MergeOffering(docs.Offering); err != nil {
		return nil, toPlanError(err)
	}
	if err := mm.MergeCurriculum(docs.Curriculum); err != nil {
		return nil, toPlanError(err)
	}

	catalog, warnings, err := curriculum.Assemble(mm)
	if err != nil {
		return nil, toPlanError(err)
	}
	if err := pert.Compute(catalog.Courses, catalog.Unlocks); err != nil {
		return nil, toPlanError(err)
	}

	var diagWarnings []string
	for _, w := range warnings {
		diagWarnings = append(diagWarnings, string(w.Kind)+": "+w.Message)
	}

	resolvedApproved, unresolvedApproved := identity.ResolveKeys(mm, req.ApprovedCourseKeys)
	resolvedPriority, unresolvedPriority := identity.ResolveKeys(mm, req.PriorityCourseKeys)
	for _, raw := range append(append([]string{}, unresolvedApproved...), unresolvedPriority...) {
		diagWarnings = append(diagWarnings, fmt.Sprintf("%s: %q did not resolve to a known course", diag.UnresolvedCourseReference, raw))
	}

	sections := buildSections(docs.Offering)
	viable := sectionset.ViableSections(sections, resolvedApproved)

	unapprovedWork := hasUnapprovedCourse(catalog.Courses, resolvedApproved)
	if len(viable) == 0 {
		if !unapprovedWork {
			return &Response{
				DocumentsRead: docs.DocumentsRead,
				ScheduleCount: 0,
				CriticalPath:  pert.CriticalPath(catalog.Courses),
				Diagnostics: Diagnostics{
					Warnings: append(diagWarnings, "no unapproved courses remain"),
				},
			}, nil
		}
		return &Response{
			DocumentsRead: docs.DocumentsRead,
			ScheduleCount: 0,
			CriticalPath:  pert.CriticalPath(catalog.Courses),
			Diagnostics: Diagnostics{
				Warnings: append(diagWarnings, string(diag.EmptyOffering)+": no viable section for any unapproved course"),
			},
		}, nil
	}

	preferredWindows, malformedWindows := timewindow.ParseAll(req.PreferredTimes)
	for _, m := range malformedWindows {
		diagWarnings = append(diagWarnings, fmt.Sprintf("%s: malformed preferred time %q ignored", diag.InputParse, m))
	}

	conflict := sectionset.BuildConflictMatrix(viable)
	weights := buildWeights(viable, catalog.Courses, resolvedPriority, preferredWindows, cfg.Priority)

	budgetCtx := ctx
	var cancel context.CancelFunc
	if cfg.TimeBudget > 0 {
		budgetCtx, cancel = context.WithTimeout(ctx, cfg.TimeBudget)
		defer cancel()
	}

	result := clique.Select(budgetCtx, viable, weights, conflict, cfg.Clique)
	ranked := result.Schedules
	partial := result.Partial

	filtersEnabled := anyFilterEnabled(req.Filters)
	livenessFallback := false

	var outcome filter.Outcome
	if !filtersEnabled {
		outcome = filter.Apply(ranked, filter.Config{NMax: cfg.NMax})
		if len(outcome.Schedules) == 0 && unapprovedWork {
			// The no-filters liveness guarantee (§4.8 cl.3, invariant 5) was
			// about to be violated: retry the clique search without the
			// viability exclusion so approved-but-unavoidable sections can
			// still produce a schedule, rather than returning nothing.
			fallbackSections := sections
			fallbackConflict := sectionset.BuildConflictMatrix(fallbackSections)
			fallbackWeights := buildWeights(fallbackSections, catalog.Courses, resolvedPriority, preferredWindows, cfg.Priority)
			fallbackResult := clique.Select(budgetCtx, fallbackSections, fallbackWeights, fallbackConflict, cfg.Clique)
			outcome = filter.Apply(fallbackResult.Schedules, filter.Config{NMax: cfg.NMax})
			partial = partial || fallbackResult.Partial
			livenessFallback = true
			diagWarnings = append(diagWarnings, string(diag.LivenessViolation)+": unfiltered ranking was empty with unapproved work remaining; fell back to the unrestricted catalog")
		}
	} else {
		filterCfg := buildFilterConfig(req.Filters, cfg.NMax)
		outcome = filter.Apply(ranked, filterCfg)
		if outcome.AllSchedulesDropped {
			diagWarnings = append(diagWarnings, "filters removed all schedules — consider relaxing")
		}
	}

	return &Response{
		DocumentsRead: docs.DocumentsRead,
		ScheduleCount: len(outcome.Schedules),
		Schedules:     toScheduleViews(outcome.Schedules, catalog.Courses),
		CriticalPath:  pert.CriticalPath(catalog.Courses),
		Diagnostics: Diagnostics{
			LivenessFallback: livenessFallback,
			FiltersApplied:   outcome.FiltersApplied,
			PartialResult:    partial,
			Warnings:         diagWarnings,
		},
	}, nil
}

func toPlanError(err error) *Error {
	if fe, ok := err.(*diag.FatalError); ok {
		return &Error{ErrorKind: fe.Kind, Message: fe.Message}
	}
	return &Error{ErrorKind: diag.InputParse, Message: err.Error()}
}

// buildSections turns offering rows into sectionset.Sections, keyed the
// same way internal/identity.MergeOffering keys the Master Map, so a
// section's NameKey always matches a catalog entry built from the same
// documents.
func buildSections(offering []rows.OfferingRow) []sectionset.Section {
	out := make([]sectionset.Section, 0, len(offering))
	for _, r := range offering {
		out = append(out, sectionset.Section{
			NameKey:      normalize.Key(r.Name),
			SectionLabel: r.SectionLabel,
			Meetings:     r.Meetings,
			Instructor:   r.Instructor,
			RawCode:      r.RawCode,
		})
	}
	return out
}

func hasUnapprovedCourse(courses map[string]*sectionset.Course, approved map[string]struct{}) bool {
	for key := range courses {
		if _, ok := approved[key]; !ok {
			return true
		}
	}
	return false
}

func buildWeights(sections []sectionset.Section, courses map[string]*sectionset.Course, priorityKeys map[string]struct{}, preferredWindows []timewindow.Window, cfg priority.Config) []int {
	maxSemester := priority.MaxSemester(courses)
	weights := make([]int, len(sections))
	for i, s := range sections {
		c, ok := courses[s.NameKey]
		if !ok {
			c = &sectionset.Course{NameKey: s.NameKey}
		}
		_, isPriority := priorityKeys[s.NameKey]
		weights[i] = priority.Score(c, isPriority, maxSemester, cfg) +
			priority.SectionBonus(timewindow.AllWithin(s.Meetings, preferredWindows), cfg)
	}
	return weights
}

func anyFilterEnabled(fr *FiltersRequest) bool {
	if fr == nil {
		return false
	}
	return (fr.FreeDayTime != nil && fr.FreeDayTime.Enabled) ||
		(fr.InterActivity != nil && fr.InterActivity.Enabled) ||
		(fr.InstructorPref != nil && fr.InstructorPref.Enabled) ||
		(fr.LineBalance != nil && fr.LineBalance.Enabled)
}

func toScheduleViews(schedules []sectionset.Schedule, courses map[string]*sectionset.Course) []ScheduleView {
	out := make([]ScheduleView, len(schedules))
	for i, sched := range schedules {
		sections := make([]SectionView, len(sched.Sections))
		for j, sc := range sched.Sections {
			name := sc.Section.NameKey
			if c, ok := courses[sc.Section.NameKey]; ok {
				name = c.Name
			}
			sections[j] = SectionView{
				NameKey:      sc.Section.NameKey,
				CourseName:   name,
				SectionLabel: sc.Section.SectionLabel,
				Instructor:   sc.Section.Instructor,
				Meetings:     sc.Section.Meetings,
			}
		}
		out[i] = ScheduleView{Sections: sections, TotalScore: sched.TotalScore}
	}
	return out
}
