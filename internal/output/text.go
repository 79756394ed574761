package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/review"
)

// TextWriter outputs a human-readable plain-text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, res review.Result) error {
	ew := &errWriter{w: w}

	ew.println(strings.Repeat("═", 60))
	ew.printf("Convention Review - PR #%d", res.PRNumber)
	if res.Title != "" {
		ew.printf(": %s", res.Title)
	}
	ew.println("")
	ew.println(strings.Repeat("═", 60))

	if res.Summary != "" {
		ew.printf("\n%s\n", res.Summary)
	}

	total := res.Counts.Errors + res.Counts.Warnings + res.Counts.Suggestions
	ew.printf("\nComments: %d total", total)
	if total > 0 {
		ew.printf(" (%d errors, %d warnings, %d suggestions)",
			res.Counts.Errors, res.Counts.Warnings, res.Counts.Suggestions)
	}
	ew.println("")

	for _, c := range res.Comments {
		ew.printf("\n%s\n", strings.Repeat("─", 60))
		ew.printf("%s:%d  [%s/%s]\n\n", c.File, c.Line, c.Severity, c.Type)
		ew.println(c.Body)
	}

	if len(res.Errors) > 0 {
		ew.printf("\n%s\n", strings.Repeat("─", 60))
		ew.println("Degraded during this run:")
		for _, e := range res.Errors {
			ew.printf("  - %s\n", e)
		}
	}

	return ew.err
}

// errWriter accumulates the first write error so each print call doesn't
// need its own check.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
