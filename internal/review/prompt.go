package review

import (
	"fmt"
	"strings"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/convention"
)

const analyzerPromptHeader = `You are a code review assistant checking a diff against team conventions.

Rules:
1. Only report violations of the conventions listed below. Never invent conventions that are not in the list.
2. Only review the changes shown in the diff. Do not comment on unchanged code.
3. Reference 1-based line numbers from the diff. Use line 1 for file-level issues.
4. Rate severity as "error", "warning", or "suggestion".

You MUST respond with ONLY a JSON array of violations. No markdown, no explanation, no preamble.

Each violation must have this exact structure:
{
  "issue": "What deviates from the convention",
  "conventionId": "id of the violated convention, or empty string",
  "file": "relative/file/path",
  "line": 1,
  "code": "the offending snippet, or empty string",
  "severity": "error|warning|suggestion"
}

If nothing violates the listed conventions, respond with an empty array: []`

// BuildAnalyzerPrompt constructs the per-file, per-category analysis prompt.
func BuildAnalyzerPrompt(category convention.Category, filePath, diffText string, conventions []convention.Convention) string {
	var b strings.Builder

	b.WriteString(analyzerPromptHeader)
	fmt.Fprintf(&b, "\n\nCategory under review: %s\n", category)
	fmt.Fprintf(&b, "File under review: %s\n\n", filePath)

	b.WriteString("Team conventions (the complete set; report nothing outside it):\n")
	b.WriteString(convention.PromptSection(conventions))

	b.WriteString("\n--- BEGIN DIFF ---\n")
	b.WriteString(diffText)
	b.WriteString("\n--- END DIFF ---\n")

	return b.String()
}

// BuildExplainPrompt asks for a constructive explanation of one violation.
func BuildExplainPrompt(v Violation, matched *convention.Convention) string {
	var b strings.Builder

	b.WriteString("Explain the following code review finding to the author in a constructive, non-shaming tone.\n\n")
	fmt.Fprintf(&b, "Finding: %s\n", v.Issue)
	fmt.Fprintf(&b, "File: %s, line %d\n", v.File, v.Line)
	if v.Code != "" {
		fmt.Fprintf(&b, "Code:\n%s\n", v.Code)
	}
	if matched != nil {
		fmt.Fprintf(&b, "\nThe team convention involved: %s", matched.Rule)
		if matched.Description != "" {
			fmt.Fprintf(&b, ": %s", matched.Description)
		}
		b.WriteString("\n")
		for _, ex := range matched.Examples {
			if ex.Good != "" {
				fmt.Fprintf(&b, "Approved pattern example: %s\n", ex.Good)
			}
		}
	}
	b.WriteString("\nWrite 4-6 sentences explaining why this matters, then on a final line starting with \"Expectation:\" state the pattern the team expects instead.\n")

	return b.String()
}

// BuildCommentPrompt asks for a polished markdown review comment.
func BuildCommentPrompt(fb ExplainedFeedback) string {
	var b strings.Builder

	b.WriteString("Write a short, encouraging markdown code review comment covering: the issue, why it matters, and the fix.\n\n")
	fmt.Fprintf(&b, "Issue: %s\n", fb.Violation.Issue)
	fmt.Fprintf(&b, "Severity: %s\n", fb.Violation.Severity)
	fmt.Fprintf(&b, "Explanation: %s\n", fb.Explanation)
	fmt.Fprintf(&b, "Team expectation: %s\n", fb.TeamExpectation)
	if fb.CodeExample != nil {
		fmt.Fprintf(&b, "Before:\n%s\nAfter:\n%s\n", fb.CodeExample.Before, fb.CodeExample.After)
	}
	b.WriteString("\nRespond with the comment body only.\n")

	return b.String()
}

// BuildSummaryPrompt asks for an aggregate review summary.
func BuildSummaryPrompt(counts SeverityCounts, digest []FormattedComment) string {
	var b strings.Builder

	b.WriteString("Write a markdown pull request review summary in at most 200 words. ")
	b.WriteString("Include a one-line overview, the top issues, acknowledgment of good patterns if any, and an encouraging close.\n\n")
	fmt.Fprintf(&b, "Totals: %d errors, %d warnings, %d suggestions.\n\n", counts.Errors, counts.Warnings, counts.Suggestions)

	b.WriteString("Sample findings:\n")
	for _, c := range digest {
		fmt.Fprintf(&b, "- [%s] %s:%d %s\n", c.Severity, c.File, c.Line, firstLine(c.Body))
	}

	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
