package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityRank(SeverityError), SeverityRank(SeverityWarning))
	assert.Less(t, SeverityRank(SeverityWarning), SeverityRank(SeveritySuggestion))
	assert.Less(t, SeverityRank(SeveritySuggestion), SeverityRank(Severity("bogus")))
}

func TestMeetsThreshold(t *testing.T) {
	tests := []struct {
		severity  Severity
		threshold string
		want      bool
	}{
		{SeverityError, "error", true},
		{SeverityWarning, "error", false},
		{SeverityError, "warning", true},
		{SeverityWarning, "warning", true},
		{SeveritySuggestion, "warning", false},
		{SeveritySuggestion, "suggestion", true},
		{SeverityError, "none", false},
		{SeverityError, "", false},
	}
	for _, tt := range tests {
		got := MeetsThreshold(tt.severity, tt.threshold)
		assert.Equal(t, tt.want, got, "MeetsThreshold(%q, %q)", tt.severity, tt.threshold)
	}
}

func TestNormalizeSeverity(t *testing.T) {
	assert.Equal(t, SeverityError, NormalizeSeverity("error"))
	assert.Equal(t, SeveritySuggestion, NormalizeSeverity("suggestion"))
	assert.Equal(t, SeverityWarning, NormalizeSeverity("critical"))
	assert.Equal(t, SeverityWarning, NormalizeSeverity(""))
}

func TestCountBySeverity(t *testing.T) {
	counts := CountBySeverity([]FormattedComment{
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
		{Severity: SeveritySuggestion},
	})
	assert.Equal(t, SeverityCounts{Errors: 1, Warnings: 2, Suggestions: 1}, counts)
}
