// Package sectionset holds the shared catalog entities (Course, Section,
// Meeting) and the two stages of the pipeline that operate directly on
// them without needing the prerequisite DAG: the viability filter and the
// conflict matrix builder.
package sectionset

// Day is one of the six days the source offering tables schedule classes on.
type Day string

const (
	Mon Day = "MO"
	Tue Day = "TU"
	Wed Day = "WE"
	Thu Day = "TH"
	Fri Day = "FR"
	Sat Day = "SA"
)

var allDays = [...]Day{Mon, Tue, Wed, Thu, Fri, Sat}

// Meeting is one weekly class period. StartMinute and EndMinute are
// minutes since midnight; both must be multiples of 5 and EndMinute must
// be strictly greater than StartMinute.
type Meeting struct {
	Day          Day
	StartMinute  int
	EndMinute    int
}

// Valid reports whether the meeting satisfies its invariant.
func (m Meeting) Valid() bool {
	if m.EndMinute <= m.StartMinute {
		return false
	}
	if m.StartMinute < 0 || m.EndMinute > 24*60 {
		return false
	}
	return m.StartMinute%5 == 0 && m.EndMinute%5 == 0
}

// Course is the catalog entity produced by the curriculum assembler (C3)
// from the Master Map. NameKey is the stable identity; either
// CodeOffering or CodeDifficulty should be present.
type Course struct {
	NameKey               string
	Name                  string
	MallaID               *int
	CodeOffering          *string
	CodeDifficulty        *string
	Semester              *int
	IsElective            bool
	Difficulty            *float64 // approval percentage in [0,100]; nil means unknown
	PrerequisiteNameKeys  []string

	// PERT-derived fields (C4), filled in by internal/pert and internal/curriculum.
	EarliestStart int
	LatestStart   int
	Slack         int
	Critical      bool
	OutDegree     int
}

// Section is a concrete scheduled instance of a Course.
type Section struct {
	NameKey      string // the Course this section belongs to
	SectionLabel string
	Meetings     []Meeting
	Instructor   string
	RawCode      string
}

// ID is a deterministic, human-readable identifier for a section, used as
// the atomic unit of a clique signature.
func (s Section) ID() string {
	return s.NameKey + "#" + s.SectionLabel
}

// ScoredSection pairs a Section with the priority score it was selected
// under, for inclusion in a Schedule.
type ScoredSection struct {
	Section  Section
	Priority int
}

// Schedule is an ordered, non-conflicting set of sections plus the total
// priority score they accumulate.
type Schedule struct {
	Sections   []ScoredSection
	TotalScore int
}

// Signature is the deterministic dedup key for a Schedule: its section IDs
// sorted ascending and joined. Two schedules with the same set of sections
// (regardless of the order they were assembled in) have the same signature.
func (s Schedule) Signature() string {
	ids := make([]string, len(s.Sections))
	for i, sc := range s.Sections {
		ids[i] = sc.Section.ID()
	}
	return joinSorted(ids)
}
