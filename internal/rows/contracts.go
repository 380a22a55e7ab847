// Package rows defines the typed row contracts the planner consumes from
// its spreadsheet-parsing collaborator (out of scope per spec), plus thin
// CSV adapters and a concurrent loader used by the CLI and tests to
// produce those rows from files on disk.
package rows

import "github.com/nomadstar/classplanner/internal/sectionset"

// CurriculumRow is one entry of the curriculum graph table (§6.1).
type CurriculumRow struct {
	MallaID         int
	Name            string
	Semester        *int
	PrerequisiteIDs []int
	IsCriticalHint  bool
}

// OfferingRow is one section of the published course offering for a term
// (§6.1). Meetings holds already-parsed meetings; MeetingsRaw holds the
// grammar string when the collaborator delivers it unparsed — ParseMeetings
// turns the latter into the former.
type OfferingRow struct {
	Code         string
	Name         string
	SectionLabel string
	MeetingsRaw  string
	Meetings     []sectionset.Meeting
	Instructor   string
	RawCode      string
}

// DifficultyRow is one entry of the course-difficulty table (§6.1).
// ApprovalPercent is kept as the raw cell text; ParseApprovalPercent
// tolerates "78%", "78,5" and 78.5-style input.
type DifficultyRow struct {
	Code            string
	Name            string
	ApprovalPercent string
	IsElective      bool
}
