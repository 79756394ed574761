package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shalwin04/code-reviewer-sensei-sub001/internal/convention"
)

func TestExplain_OnePerViolation(t *testing.T) {
	gen := constGenerator("This name is hard to scan in reviews.\nExpectation: use camelCase for local variables")
	e := NewExplainer(gen, nil, nil)

	violations := []Violation{
		{ID: "v1", Issue: "snake_case variable", File: "src/a.ts", Line: 3},
		{ID: "v2", Issue: "unclear abbreviation", File: "src/b.ts", Line: 9},
	}
	got := e.Explain(context.Background(), violations)

	require.Len(t, got, 2)
	assert.Equal(t, "v1", got[0].ID)
	assert.Equal(t, "v2", got[1].ID)
	assert.Equal(t, "This name is hard to scan in reviews.", got[0].Explanation)
	assert.Equal(t, "use camelCase for local variables", got[0].TeamExpectation)
}

func TestExplain_FailureFallsBackAndDropsNothing(t *testing.T) {
	e := NewExplainer(failingGenerator(errors.New("timeout")), nil, nil)

	violations := []Violation{
		{ID: "v1", Issue: "snake_case variable"},
		{ID: "v2", Issue: "missing error check"},
		{ID: "v3", Issue: "nested callbacks"},
	}
	got := e.Explain(context.Background(), violations)

	require.Len(t, got, 3, "explainer output stays 1:1 with input even when every call fails")
	for i, fb := range got {
		assert.Equal(t, violations[i].ID, fb.ID)
		assert.Equal(t, "This code violates: "+violations[i].Issue, fb.Explanation)
		assert.Equal(t, "Follow the documented team pattern.", fb.TeamExpectation)
	}
}

func TestExplain_CodeExampleFromMatchedConvention(t *testing.T) {
	conventions := []convention.Convention{
		{
			ID:       "naming-001",
			Category: convention.CategoryNaming,
			Rule:     "camelCase for variables",
			Examples: []convention.Example{
				{Good: "const userName = 1", Bad: "const user_name = 1"},
			},
		},
	}
	e := NewExplainer(constGenerator("Short explanation.\nExpectation: camelCase"), conventions, nil)

	got := e.Explain(context.Background(), []Violation{
		{ID: "v1", Issue: "snake_case", ConventionID: "naming-001"},
		{ID: "v2", Issue: "other", ConventionID: "unknown-id"},
	})

	require.Len(t, got, 2)
	require.NotNil(t, got[0].CodeExample)
	assert.Equal(t, "const user_name = 1", got[0].CodeExample.Before)
	assert.Equal(t, "const userName = 1", got[0].CodeExample.After)
	assert.Nil(t, got[1].CodeExample)
}

func TestExplain_EmptyResponseFallsBack(t *testing.T) {
	e := NewExplainer(constGenerator("\n\n"), nil, nil)

	got := e.Explain(context.Background(), []Violation{{ID: "v1", Issue: "bad name"}})

	require.Len(t, got, 1)
	assert.Equal(t, "This code violates: bad name", got[0].Explanation)
	assert.Equal(t, "Follow team conventions", got[0].TeamExpectation)
}

func TestCleanExplanation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "one\n\ntwo   three.", "one two three."},
		{
			"caps at five sentences",
			"One. Two. Three. Four. Five. Six. Seven.",
			"One. Two. Three. Four. Five.",
		},
		{"keeps short text", "Just two sentences. That is all.", "Just two sentences. That is all."},
		{"empty", "", ""},
		{
			"decimals are not sentence ends",
			"Pinned in v1.2.3 already. Two. Three. Four. Five. Six.",
			"Pinned in v1.2.3 already. Two. Three. Four. Five.",
		},
		{"fixes double period", "Ends oddly..", "Ends oddly."},
		{"keeps ellipsis", "Trailing off...", "Trailing off..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanExplanation(tt.in))
		})
	}
}

func TestSplitExpectation(t *testing.T) {
	explanation, expectation := splitExpectation("Line one.\nLine two.\nExpectation: do this instead")
	assert.Equal(t, "Line one.\nLine two.", explanation)
	assert.Equal(t, " do this instead", expectation)

	explanation, expectation = splitExpectation("No marker here.")
	assert.Equal(t, "No marker here.", explanation)
	assert.Empty(t, expectation)
}
