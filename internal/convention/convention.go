package convention

import (
	"fmt"
	"strings"
)

// Category classifies a convention. The set is open-ended; the four
// analyzer categories are the ones the pipeline routes on.
type Category string

const (
	CategoryNaming        Category = "naming"
	CategoryStructure     Category = "structure"
	CategoryPattern       Category = "pattern"
	CategoryTesting       Category = "testing"
	CategoryErrorHandling Category = "error-handling"
	CategorySecurity      Category = "security"
)

// AnalyzerCategories are the categories with a dedicated analyzer.
func AnalyzerCategories() []Category {
	return []Category{CategoryNaming, CategoryStructure, CategoryPattern, CategoryTesting}
}

// Example pairs an approved snippet with a rejected one.
type Example struct {
	Good        string `json:"good"`
	Bad         string `json:"bad"`
	Explanation string `json:"explanation,omitempty"`
}

// Convention is a single team rule. Immutable for the duration of a run.
type Convention struct {
	ID          string    `json:"id"`
	Category    Category  `json:"category"`
	Rule        string    `json:"rule"`
	Description string    `json:"description,omitempty"`
	Severity    string    `json:"severity,omitempty"`
	Confidence  float64   `json:"confidence"`
	Tags        []string  `json:"tags,omitempty"`
	Examples    []Example `json:"examples,omitempty"`
}

// FilterByCategory returns the conventions matching the given category.
// The result is a fresh slice; the input is never mutated.
func FilterByCategory(conventions []Convention, cat Category) []Convention {
	var out []Convention
	for _, c := range conventions {
		if c.Category == cat {
			out = append(out, c)
		}
	}
	return out
}

// ForbiddenKeywords extracts `forbid:<keyword>` directives from a
// convention's tags.
func ForbiddenKeywords(c Convention) []string {
	var out []string
	for _, tag := range c.Tags {
		if kw, ok := strings.CutPrefix(tag, "forbid:"); ok && kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// PromptSection renders conventions as numbered prompt instructions.
// Tagged examples and forbid directives are included when present.
func PromptSection(conventions []Convention) string {
	var b strings.Builder
	for i, c := range conventions {
		fmt.Fprintf(&b, "%d. [%s] %s", i+1, c.ID, c.Rule)
		if c.Description != "" {
			fmt.Fprintf(&b, ": %s", c.Description)
		}
		b.WriteString("\n")
		for _, kw := range ForbiddenKeywords(c) {
			fmt.Fprintf(&b, "   Never use: %s\n", kw)
		}
		for _, ex := range c.Examples {
			if ex.Good != "" {
				fmt.Fprintf(&b, "   Preferred: %s\n", ex.Good)
			}
			if ex.Bad != "" {
				fmt.Fprintf(&b, "   Avoid: %s\n", ex.Bad)
			}
		}
	}
	return b.String()
}
