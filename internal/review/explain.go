package review

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/convention"
)

const (
	fallbackExpectation = "Follow the documented team pattern."
	genericExpectation  = "Follow team conventions"
	maxSentences        = 5
)

// Explainer turns each violation into one ExplainedFeedback. Violations
// are processed strictly sequentially, one generation call at a time, to
// bound concurrent load on the generation backend.
type Explainer struct {
	gen         Generator
	conventions map[string]convention.Convention
	log         *zap.Logger
}

// NewExplainer creates an explainer. The convention set is indexed by ID
// so each violation can surface its approved pattern.
func NewExplainer(gen Generator, conventions []convention.Convention, log *zap.Logger) *Explainer {
	if log == nil {
		log = zap.NewNop()
	}
	byID := make(map[string]convention.Convention, len(conventions))
	for _, c := range conventions {
		byID[c.ID] = c
	}
	return &Explainer{gen: gen, conventions: byID, log: log}
}

// Explain produces exactly one ExplainedFeedback per violation, in input
// order. A per-item generation failure substitutes a deterministic
// fallback; no violation is ever dropped at this stage.
func (e *Explainer) Explain(ctx context.Context, violations []Violation) []ExplainedFeedback {
	out := make([]ExplainedFeedback, 0, len(violations))
	for _, v := range violations {
		out = append(out, e.explainOne(ctx, v))
	}
	return out
}

func (e *Explainer) explainOne(ctx context.Context, v Violation) ExplainedFeedback {
	fb := ExplainedFeedback{
		ID:        v.ID,
		Violation: v,
	}

	var matched *convention.Convention
	if c, ok := e.conventions[v.ConventionID]; ok {
		matched = &c
		for _, ex := range c.Examples {
			if ex.Bad != "" && ex.Good != "" {
				fb.CodeExample = &CodeExample{Before: ex.Bad, After: ex.Good}
				break
			}
		}
	}

	resp, err := e.gen.Generate(ctx, BuildExplainPrompt(v, matched))
	if err != nil {
		e.log.Warn("explanation generation failed, using fallback",
			zap.String("violation", v.ID),
			zap.Error(err))
		fb.Explanation = "This code violates: " + v.Issue
		fb.TeamExpectation = fallbackExpectation
		return fb
	}

	explanation, expectation := splitExpectation(resp)
	fb.Explanation = CleanExplanation(explanation)
	if fb.Explanation == "" {
		fb.Explanation = "This code violates: " + v.Issue
	}
	fb.TeamExpectation = strings.TrimSpace(expectation)
	if fb.TeamExpectation == "" {
		fb.TeamExpectation = genericExpectation
	}
	return fb
}

// splitExpectation separates the generated prose from the trailing
// "Expectation:" line the prompt asks for.
func splitExpectation(resp string) (explanation, expectation string) {
	lines := strings.Split(resp, "\n")
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "Expectation:"); ok {
			expectation = rest
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), expectation
}

// CleanExplanation collapses newlines to single spaces, caps the text at
// five sentences, and fixes a trailing double period left by the cap.
// A period with digits on both sides (version numbers, decimals) does not
// count as a sentence end.
func CleanExplanation(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	count := 0
	cut := len(s)
	for i, r := range s {
		if r == '.' || r == '!' || r == '?' {
			if r == '.' && i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
				continue
			}
			count++
			if count == maxSentences {
				cut = i + 1
				break
			}
		}
	}
	s = strings.TrimSpace(s[:cut])

	if strings.HasSuffix(s, "..") && !strings.HasSuffix(s, "...") {
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
