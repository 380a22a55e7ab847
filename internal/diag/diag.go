// Package diag holds the shared warning/error-kind vocabulary of spec §7,
// threaded through the pipeline so every stage reports problems the same
// way instead of each package inventing its own diagnostic shape.
package diag

// Kind is one of the error taxonomy entries from spec §7.
type Kind string

const (
	InputParse               Kind = "InputParse"
	DuplicateName            Kind = "DuplicateName"
	CyclicCurriculum         Kind = "CyclicCurriculum"
	DanglingPrerequisite     Kind = "DanglingPrerequisite"
	UnresolvedCourseReference Kind = "UnresolvedCourseReference"
	EmptyOffering            Kind = "EmptyOffering"
	LivenessViolation        Kind = "LivenessViolation"
	Cancelled                Kind = "Cancelled"
	TimeBudgetExceeded       Kind = "TimeBudgetExceeded"
)

// Warning is a non-fatal diagnostic accumulated during a plan call and
// surfaced in Response.Diagnostics.Warnings.
type Warning struct {
	Kind    Kind
	Message string
}

// FatalError is returned by a pipeline stage to abort the call before any
// response is materialized (§7: "Fatal errors abort the call before any
// response is materialized").
type FatalError struct {
	Kind    Kind
	Message string
}

func (e *FatalError) Error() string {
	return string(e.Kind) + ": " + e.Message
}
