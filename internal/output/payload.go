package output

import (
	"encoding/json"
	"io"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/review"
)

// PayloadComment is one review-comment record in the GitHub-shaped payload.
type PayloadComment struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Body string `json:"body"`
}

// Payload is the GitHub-shaped delivery payload.
type Payload struct {
	Summary  string           `json:"summary"`
	Comments []PayloadComment `json:"comments"`
}

// BuildPayload maps each formatted comment 1:1 to a review-comment record.
func BuildPayload(res review.Result) Payload {
	comments := make([]PayloadComment, 0, len(res.Comments))
	for _, c := range res.Comments {
		comments = append(comments, PayloadComment{
			Path: c.File,
			Line: c.Line,
			Body: c.Body,
		})
	}
	return Payload{Summary: res.Summary, Comments: comments}
}

// PayloadWriter emits the GitHub-shaped payload as JSON.
type PayloadWriter struct{}

func (p *PayloadWriter) Write(w io.Writer, res review.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildPayload(res))
}
