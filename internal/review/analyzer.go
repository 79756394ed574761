package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/convention"
)

// rawViolation is the JSON structure returned by the generator. Richer
// fields some models emit (reasoning, impact, recommendation) are accepted
// and folded into the issue text when present.
type rawViolation struct {
	Issue          string `json:"issue"`
	ConventionID   string `json:"conventionId"`
	File           string `json:"file"`
	Line           int    `json:"line"`
	Code           string `json:"code"`
	Severity       string `json:"severity"`
	Reasoning      string `json:"reasoning"`
	Impact         string `json:"impact"`
	Recommendation string `json:"recommendation"`
}

// Analyzer detects violations of one convention category in a file diff.
// It is pure with respect to shared state: inputs are never mutated and
// every call returns a fresh slice.
type Analyzer struct {
	category convention.Category
	gen      Generator
	log      *zap.Logger
}

// NewAnalyzer creates an analyzer for the given category.
func NewAnalyzer(category convention.Category, gen Generator, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{category: category, gen: gen, log: log}
}

// Category returns the convention category this analyzer covers.
func (a *Analyzer) Category() convention.Category { return a.category }

// Analyze checks one file's diff against this category's conventions.
// Generation and parse failures degrade to zero findings, never an error:
// a malformed model response must not abort the run.
func (a *Analyzer) Analyze(ctx context.Context, diffText, filePath string, conventions []convention.Convention) []Violation {
	relevant := convention.FilterByCategory(conventions, a.category)
	if len(relevant) == 0 {
		return nil
	}

	prompt := BuildAnalyzerPrompt(a.category, filePath, diffText, relevant)

	resp, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		a.log.Warn("analyzer generation failed, treating as zero findings",
			zap.String("category", string(a.category)),
			zap.String("file", filePath),
			zap.Error(err))
		return nil
	}

	violations, err := parseViolations(resp)
	if err != nil {
		a.log.Warn("analyzer response unparseable, treating as zero findings",
			zap.String("category", string(a.category)),
			zap.String("file", filePath),
			zap.Error(err))
		return nil
	}

	out := make([]Violation, 0, len(violations))
	for _, r := range violations {
		if strings.TrimSpace(r.Issue) == "" {
			continue
		}
		issue := r.Issue
		if r.Reasoning != "" {
			issue += " " + r.Reasoning
		}
		line := r.Line
		if line < 1 {
			line = 1
		}
		out = append(out, Violation{
			ID:           uuid.NewString(),
			Type:         string(a.category),
			File:         filePath,
			Line:         line,
			Code:         r.Code,
			Issue:        issue,
			Severity:     NormalizeSeverity(r.Severity),
			ConventionID: r.ConventionID,
		})
	}
	return out
}

// parseViolations extracts the first well-formed JSON array from the
// response, tolerating markdown fences and surrounding prose. Bracketed
// prose before the array (like "[3 total]") is skipped. An object wrapping
// the array under "violations" or "findings" is also accepted.
func parseViolations(content string) ([]rawViolation, error) {
	content = stripFences(strings.TrimSpace(content))

	for rest := content; ; {
		arr, start := nextBalanced(rest, '[', ']')
		if start < 0 {
			break
		}
		if arr != "" {
			var raw []rawViolation
			if err := json.Unmarshal([]byte(arr), &raw); err == nil {
				return raw, nil
			}
		}
		rest = rest[start+1:]
	}

	for rest := content; ; {
		obj, start := nextBalanced(rest, '{', '}')
		if start < 0 {
			break
		}
		if obj != "" {
			var wrapper struct {
				Violations []rawViolation `json:"violations"`
				Findings   []rawViolation `json:"findings"`
			}
			if err := json.Unmarshal([]byte(obj), &wrapper); err == nil {
				if wrapper.Violations != nil {
					return wrapper.Violations, nil
				}
				if wrapper.Findings != nil {
					return wrapper.Findings, nil
				}
			}
		}
		rest = rest[start+1:]
	}

	return nil, fmt.Errorf("no valid JSON violation array in response")
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}

// nextBalanced returns the first balanced substring delimited by open/close
// and the index where it starts, skipping brackets inside JSON strings. A
// start of -1 means no opening byte remains; an empty substring with a valid
// start means that candidate never closed.
func nextBalanced(content string, open, close byte) (string, int) {
	start := strings.IndexByte(content, open)
	if start < 0 {
		return "", -1
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return content[start : i+1], start
			}
		}
	}
	return "", start
}
