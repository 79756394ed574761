package review

import "context"

// Generator is the narrow generation contract the pipeline stages need.
// Satisfied by the llm package's providers.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Severity of a violation.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// SeverityRank returns a numeric rank for sorting (lower = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeveritySuggestion:
		return 2
	default:
		return 3
	}
}

// MeetsThreshold returns true if severity is at or above the threshold.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	return SeverityRank(s) <= SeverityRank(Severity(threshold))
}

// NormalizeSeverity clamps unknown severity strings to warning.
func NormalizeSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeveritySuggestion:
		return Severity(s)
	default:
		return SeverityWarning
	}
}

// Violation is one detected deviation from a convention. Never mutated
// after creation.
type Violation struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	File         string   `json:"file"`
	Line         int      `json:"line"`
	Code         string   `json:"code,omitempty"`
	Issue        string   `json:"issue"`
	Severity     Severity `json:"severity"`
	ConventionID string   `json:"conventionId,omitempty"`
}

// CodeExample shows a violation's code before and after the fix.
type CodeExample struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// ExplainedFeedback pairs a violation with its prose explanation. Produced
// 1:1 with violations by the explainer.
type ExplainedFeedback struct {
	ID              string       `json:"id"`
	Violation       Violation    `json:"violation"`
	Explanation     string       `json:"explanation"`
	TeamExpectation string       `json:"teamExpectation"`
	CodeExample     *CodeExample `json:"codeExample,omitempty"`
}

// FormattedComment is a delivery-ready markdown comment derived from
// exactly one ExplainedFeedback.
type FormattedComment struct {
	ID       string   `json:"id"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Body     string   `json:"body"`
	Severity Severity `json:"severity"`
	Type     string   `json:"type"`
}

// PRFile is one changed file in a pull request.
type PRFile struct {
	Path      string `json:"path"`
	Diff      string `json:"diff"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// PRDiffInput is the pipeline's input, supplied by the source-control
// collaborator.
type PRDiffInput struct {
	PRNumber   int      `json:"prNumber"`
	Title      string   `json:"title"`
	Files      []PRFile `json:"files"`
	BaseBranch string   `json:"baseBranch"`
	HeadBranch string   `json:"headBranch"`
}

// SeverityCounts holds comment counts by severity.
type SeverityCounts struct {
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	Suggestions int `json:"suggestions"`
}

// CountBySeverity tallies formatted comments by severity.
func CountBySeverity(comments []FormattedComment) SeverityCounts {
	var c SeverityCounts
	for _, fc := range comments {
		switch fc.Severity {
		case SeverityError:
			c.Errors++
		case SeverityWarning:
			c.Warnings++
		case SeveritySuggestion:
			c.Suggestions++
		}
	}
	return c
}

// Result is the pipeline's final output handed to delivery formatters.
type Result struct {
	PRNumber int                `json:"prNumber"`
	Title    string             `json:"title"`
	Summary  string             `json:"summary"`
	Comments []FormattedComment `json:"comments"`
	Counts   SeverityCounts     `json:"counts"`
	Errors   []string           `json:"errors,omitempty"`
}
