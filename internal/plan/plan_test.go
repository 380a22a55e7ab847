package plan

import (
	"context"
	"testing"

	"github.com/nomadstar/classplanner/internal/rows"
	"github.com/nomadstar/classplanner/internal/sectionset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func meeting(day sectionset.Day, start, end int) sectionset.Meeting {
	return sectionset.Meeting{Day: day, StartMinute: start, EndMinute: end}
}

// threeCourseChain builds the S1/S2/S3 fixture: A, B (requires A), C, each
// with one non-conflicting section.
func threeCourseChain() rows.Documents {
	return rows.Documents{
		Curriculum: []rows.CurriculumRow{
			{MallaID: 1, Name: "Course A", Semester: intPtr(1)},
			{MallaID: 2, Name: "Course B", Semester: intPtr(2), PrerequisiteIDs: []int{1}},
			{MallaID: 3, Name: "Course C", Semester: intPtr(1)},
		},
		Offering: []rows.OfferingRow{
			{Code: "A1", Name: "Course A", SectionLabel: "1", Meetings: []sectionset.Meeting{meeting(sectionset.Mon, 480, 570)}},
			{Code: "B1", Name: "Course B", SectionLabel: "1", Meetings: []sectionset.Meeting{meeting(sectionset.Tue, 480, 570)}},
			{Code: "C1", Name: "Course C", SectionLabel: "1", Meetings: []sectionset.Meeting{meeting(sectionset.Wed, 480, 570)}},
		},
		DocumentsRead: 3,
	}
}

func TestPlanS1ReturnsScheduleCoveringAllThreeCourses(t *testing.T) {
	resp, planErr := Plan(context.Background(), threeCourseChain(), Request{}, DefaultConfig())
	require.Nil(t, planErr)
	require.GreaterOrEqual(t, resp.ScheduleCount, 1)

	names := map[string]bool{}
	for _, sc := range resp.Schedules[0].Sections {
		names[sc.CourseName] = true
	}
	assert.True(t, names["Course A"])
	assert.True(t, names["Course B"])
	assert.True(t, names["Course C"])
}

func TestPlanS2ApprovedCourseNeverReturned(t *testing.T) {
	resp, planErr := Plan(context.Background(), threeCourseChain(), Request{ApprovedCourseKeys: []string{"Course A"}}, DefaultConfig())
	require.Nil(t, planErr)
	for _, sched := range resp.Schedules {
		for _, sc := range sched.Sections {
			assert.NotEqual(t, "Course A", sc.CourseName)
		}
	}
}

func TestPlanS3NeverIncludesBothSectionsOfSameCourse(t *testing.T) {
	docs := rows.Documents{
		Curriculum: []rows.CurriculumRow{
			{MallaID: 1, Name: "Course A", Semester: intPtr(1)},
			{MallaID: 2, Name: "Course B", Semester: intPtr(1)},
		},
		Offering: []rows.OfferingRow{
			{Code: "A1", Name: "Course A", SectionLabel: "1", Meetings: []sectionset.Meeting{meeting(sectionset.Mon, 480, 570)}},
			{Code: "A2", Name: "Course A", SectionLabel: "2", Meetings: []sectionset.Meeting{meeting(sectionset.Mon, 480, 570)}},
			{Code: "B1", Name: "Course B", SectionLabel: "1", Meetings: []sectionset.Meeting{meeting(sectionset.Tue, 480, 570)}},
		},
		DocumentsRead: 3,
	}
	resp, planErr := Plan(context.Background(), docs, Request{}, DefaultConfig())
	require.Nil(t, planErr)
	for _, sched := range resp.Schedules {
		countA := 0
		for _, sc := range sched.Sections {
			if sc.CourseName == "Course A" {
				countA++
			}
		}
		assert.LessOrEqual(t, countA, 1)
	}
}

func TestPlanS5AllApprovedYieldsZeroSchedulesWithoutLivenessFallback(t *testing.T) {
	resp, planErr := Plan(context.Background(), threeCourseChain(), Request{
		ApprovedCourseKeys: []string{"Course A", "Course B", "Course C"},
	}, DefaultConfig())
	require.Nil(t, planErr)
	assert.Equal(t, 0, resp.ScheduleCount)
	assert.False(t, resp.Diagnostics.LivenessFallback)
	assert.Contains(t, resp.Diagnostics.Warnings, "no unapproved courses remain")
}

func TestPlanS6FiltersRemovingEverythingDoesNotTriggerLivenessFallback(t *testing.T) {
	req := Request{
		Filters: &FiltersRequest{
			InstructorPref: &InstructorPrefRequest{Enabled: true, Avoid: []string{"Anyone"}},
		},
	}
	docs := rows.Documents{
		Curriculum: []rows.CurriculumRow{{MallaID: 1, Name: "Course A", Semester: intPtr(1)}},
		Offering: []rows.OfferingRow{
			{Code: "A1", Name: "Course A", SectionLabel: "1", Instructor: "Anyone", Meetings: []sectionset.Meeting{meeting(sectionset.Mon, 480, 570)}},
		},
		DocumentsRead: 3,
	}
	resp, planErr := Plan(context.Background(), docs, req, DefaultConfig())
	require.Nil(t, planErr)
	assert.Equal(t, 0, resp.ScheduleCount)
	assert.False(t, resp.Diagnostics.LivenessFallback)
	assert.Contains(t, resp.Diagnostics.Warnings, "filters removed all schedules — consider relaxing")
}

func TestPlanS7CyclicCurriculumIsFatal(t *testing.T) {
	docs := rows.Documents{
		Curriculum: []rows.CurriculumRow{
			{MallaID: 1, Name: "Course A", PrerequisiteIDs: []int{2}},
			{MallaID: 2, Name: "Course B", PrerequisiteIDs: []int{1}},
		},
	}
	_, planErr := Plan(context.Background(), docs, Request{}, DefaultConfig())
	require.NotNil(t, planErr)
	assert.Equal(t, "CyclicCurriculum", string(planErr.ErrorKind))
}

func TestPlanIsDeterministic(t *testing.T) {
	docs := threeCourseChain()
	first, err1 := Plan(context.Background(), docs, Request{}, DefaultConfig())
	second, err2 := Plan(context.Background(), docs, Request{}, DefaultConfig())
	require.Nil(t, err1)
	require.Nil(t, err2)
	require.Equal(t, first.ScheduleCount, second.ScheduleCount)
	for i := range first.Schedules {
		assert.Equal(t, first.Schedules[i].TotalScore, second.Schedules[i].TotalScore)
	}
}
