package review

import "github.com/shalwin04/code-reviewer-sensei-sub001/internal/convention"

// Status tracks where a pipeline run is in its lifecycle.
type Status string

const (
	StatusPending            Status = "pending"
	StatusLoadingConventions Status = "loading-conventions"
	StatusReviewing          Status = "reviewing"
	StatusAggregating        Status = "aggregating"
	StatusFormatting         Status = "formatting"
	StatusReady              Status = "ready"
	StatusComplete           Status = "complete"
	StatusError              Status = "error"
)

// RunState is the mutable record threaded through a pipeline run. It is
// owned exclusively by the currently executing stage; stages never mutate
// it concurrently.
type RunState struct {
	Conventions   []convention.Convention
	Violations    []Violation
	Explained     []ExplainedFeedback
	Comments      []FormattedComment
	Summary       string
	FilesReviewed []string
	Errors        []string
	Status        Status
}

// NewRunState returns a pending run state.
func NewRunState() *RunState {
	return &RunState{Status: StatusPending}
}

// Delta is a stage's partial output. Each field's merge policy is fixed
// here, at definition time, not per call:
//
//   - append fields are plain slices: new items concatenate onto state
//   - replace fields are pointers: a non-nil value overwrites state,
//     making stage re-runs idempotent
//
// Violations accumulate across the per-file fan-out, so they append.
// Explained feedback and the summary are whole-stage outputs, so they
// replace. Using the wrong policy either silently drops prior results
// (replace where append was meant) or duplicates them on re-invocation
// (append where replace was meant).
type Delta struct {
	Conventions     *[]convention.Convention // replace
	Violations      []Violation              // append
	ResetViolations bool                     // clears violations before appending (aggregation boundary)
	Explained       *[]ExplainedFeedback     // replace
	Comments        []FormattedComment       // append
	ResetComments   bool                     // clears comments before appending (stage boundary)
	Summary         *string                  // replace
	FilesReviewed   []string                 // append
	Errors          []string                 // append
	Status          Status                   // replace when non-empty
}

// Apply merges a stage delta into the state under the declared policies.
func (s *RunState) Apply(d Delta) {
	if d.Conventions != nil {
		s.Conventions = *d.Conventions
	}
	if d.ResetViolations {
		s.Violations = nil
	}
	s.Violations = append(s.Violations, d.Violations...)
	if d.Explained != nil {
		s.Explained = *d.Explained
	}
	if d.ResetComments {
		s.Comments = nil
	}
	s.Comments = append(s.Comments, d.Comments...)
	if d.Summary != nil {
		s.Summary = *d.Summary
	}
	s.FilesReviewed = append(s.FilesReviewed, d.FilesReviewed...)
	s.Errors = append(s.Errors, d.Errors...)
	if d.Status != "" {
		s.Status = d.Status
	}
}

// Result projects the final state into the delivery-facing result.
func (s *RunState) Result(pr PRDiffInput) Result {
	return Result{
		PRNumber: pr.PRNumber,
		Title:    pr.Title,
		Summary:  s.Summary,
		Comments: s.Comments,
		Counts:   CountBySeverity(s.Comments),
		Errors:   s.Errors,
	}
}
