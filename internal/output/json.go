package output

import (
	"encoding/json"
	"io"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/review"
)

// JSONWriter outputs the full review result as indented JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, res review.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
