package review

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxSummaryDigest bounds how many comments are sampled into the summary prompt.
const maxSummaryDigest = 10

// formatConcurrency bounds concurrent comment-formatting generation calls.
const formatConcurrency = 4

// dedupKey identifies feedback items that trace back to the same finding.
type dedupKey struct {
	file string
	line int
	typ  string
}

// Dedup keeps the first feedback item for each (file, line, type) key, in
// original order. It is a pure projection: running it on its own output
// yields the same set.
func Dedup(items []ExplainedFeedback) []ExplainedFeedback {
	seen := make(map[dedupKey]bool, len(items))
	out := make([]ExplainedFeedback, 0, len(items))
	for _, fb := range items {
		k := dedupKey{fb.Violation.File, fb.Violation.Line, fb.Violation.Type}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, fb)
	}
	return out
}

// Controller deduplicates explained feedback, formats delivery-ready
// comments, and produces the aggregate summary.
type Controller struct {
	gen Generator
	log *zap.Logger
}

// NewController creates a feedback controller.
func NewController(gen Generator, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{gen: gen, log: log}
}

// Process runs dedup, comment formatting, and summarization against the
// run state: pending -> formatting -> ready -> complete.
func (c *Controller) Process(ctx context.Context, state *RunState) {
	state.Apply(Delta{Status: StatusFormatting})

	deduped := Dedup(state.Explained)
	state.Apply(Delta{Explained: &deduped})

	comments := c.formatComments(ctx, deduped)
	state.Apply(Delta{ResetComments: true, Comments: comments, Status: StatusReady})

	summary := c.summarize(ctx, comments)
	state.Apply(Delta{Summary: &summary, Status: StatusComplete})
}

// formatComments formats items concurrently but assembles the result in
// input order, not completion order. A per-item generation failure falls
// back to the deterministic template.
func (c *Controller) formatComments(ctx context.Context, items []ExplainedFeedback) []FormattedComment {
	comments := make([]FormattedComment, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(formatConcurrency)
	for i, fb := range items {
		i, fb := i, fb
		g.Go(func() error {
			body, err := c.gen.Generate(gctx, BuildCommentPrompt(fb))
			if err != nil || strings.TrimSpace(body) == "" {
				if err != nil {
					c.log.Warn("comment generation failed, using template",
						zap.String("feedback", fb.ID),
						zap.Error(err))
				}
				body = FallbackComment(fb)
			}
			comments[i] = FormattedComment{
				ID:       fb.ID,
				File:     fb.Violation.File,
				Line:     fb.Violation.Line,
				Body:     strings.TrimSpace(body),
				Severity: fb.Violation.Severity,
				Type:     fb.Violation.Type,
			}
			return nil
		})
	}
	_ = g.Wait()

	return comments
}

// FallbackComment builds the deterministic comment template used when
// generation fails.
func FallbackComment(fb ExplainedFeedback) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s %s**\n\n", severityIcon(fb.Violation.Severity), fb.Violation.Issue)
	fmt.Fprintf(&b, "%s\n\n", fb.Explanation)
	fmt.Fprintf(&b, "**Team expectation:** %s\n", fb.TeamExpectation)
	if fb.CodeExample != nil {
		fmt.Fprintf(&b, "\n```diff\n- %s\n+ %s\n```\n", fb.CodeExample.Before, fb.CodeExample.After)
	}
	return strings.TrimSpace(b.String())
}

func severityIcon(s Severity) string {
	switch s {
	case SeverityError:
		return ":red_circle:"
	case SeverityWarning:
		return ":orange_circle:"
	case SeveritySuggestion:
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}

// summarize builds the aggregate review summary: severity totals, a digest
// of the first comments, one generation call, deterministic fallback.
func (c *Controller) summarize(ctx context.Context, comments []FormattedComment) string {
	counts := CountBySeverity(comments)

	digest := comments
	if len(digest) > maxSummaryDigest {
		digest = digest[:maxSummaryDigest]
	}

	summary, err := c.gen.Generate(ctx, BuildSummaryPrompt(counts, digest))
	if err != nil || strings.TrimSpace(summary) == "" {
		if err != nil {
			c.log.Warn("summary generation failed, using fallback", zap.Error(err))
		}
		return fallbackSummary(counts)
	}
	return strings.TrimSpace(summary)
}

func fallbackSummary(counts SeverityCounts) string {
	total := counts.Errors + counts.Warnings + counts.Suggestions
	if total == 0 {
		return "## Review Summary\n\nNo convention violations found. Nice work!"
	}
	return fmt.Sprintf(
		"## Review Summary\n\n%d finding(s): %d error(s), %d warning(s), %d suggestion(s). See the inline comments for details.",
		total, counts.Errors, counts.Warnings, counts.Suggestions)
}
