package analysis

import (
	"testing"

	"github.com/josephgoksu/OpsWing/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexity(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	tests := []struct {
		text string
		want Complexity
	}{
		{"Prepare slides", ComplexityMedium},
		{"A quick basic fix", ComplexityLow},
		{"Simple wrapper around a complex pipeline", ComplexityHigh},
		{"Enterprise rollout, small team, quick wins", ComplexityHigh},
		{"Typical monthly close", ComplexityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Complexity(tt.text, ""))
		})
	}
}

func TestSuggestDeadline(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	tests := []struct {
		name     string
		task     string
		priority string
		hours    *int
		wantDays int
	}{
		{name: "high priority default complexity", task: "Prepare slides", priority: "High", wantDays: 2},
		{name: "high priority high complexity", task: "Comprehensive audit", priority: "High", wantDays: 1},
		{name: "low priority low complexity", task: "Quick tidy", priority: "Low", wantDays: 14},
		{name: "medium low complexity", task: "Small update", priority: "Medium", wantDays: 6},
		{name: "unknown priority degrades to medium", task: "Prepare slides", priority: "whenever", wantDays: 4},
		{name: "hours push later", task: "Prepare slides", priority: "Medium", hours: intPtr(40), wantDays: 7},
		{name: "hours never pull earlier", task: "Prepare slides", priority: "Low", hours: intPtr(1), wantDays: 7},
		{name: "zero hours ignored", task: "Prepare slides", priority: "High", hours: intPtr(0), wantDays: 2},
		{name: "partial day rounds up", task: "Comprehensive audit", priority: "High", hours: intPtr(13), wantDays: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := a.SuggestDeadline(tt.task, "", tt.priority, tt.hours)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, s.DaysFromNow)
			assert.Equal(t, fixedNow.AddDate(0, 0, tt.wantDays).Format(models.DateLayout), s.SuggestedDeadline)
			assert.InDelta(t, 0.8, s.Confidence, 0.0001)
		})
	}
}

func TestSuggestDeadline_Reasoning(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	s, err := a.SuggestDeadline("Prepare slides", "", "high", intPtr(3))
	require.NoError(t, err)
	assert.Equal(t, models.PriorityHigh, s.Priority)
	assert.Equal(t, ComplexityMedium, s.Complexity)
	assert.Equal(t, []string{
		"Priority level: High",
		"Complexity assessment: Medium",
		"Estimated duration: 3 hours",
		"Suggested completion: June 12, 2025",
	}, s.Reasoning)
}

func TestSuggestDeadline_NegativeHours(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	_, err := a.SuggestDeadline("Prepare slides", "", "High", intPtr(-1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSuggestDeadline_MonotonicInHours(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	for _, p := range models.Priorities {
		prev := 0
		for h := 0; h <= 120; h++ {
			s, err := a.SuggestDeadline("Prepare slides", "", string(p), intPtr(h))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.DaysFromNow, prev, "priority %s hours %d", p, h)
			prev = s.DaysFromNow
		}
	}
}

func TestDeadlineTable_Fallback(t *testing.T) {
	table := DeadlineTable{models.PriorityHigh: {ComplexityHigh: 1}}
	assert.Equal(t, 1, table.Days(models.PriorityHigh, ComplexityHigh))
	assert.Equal(t, 4, table.Days(models.PriorityLow, ComplexityLow))
	assert.Equal(t, 7, DefaultDeadlineTable().Days(models.PriorityLow, ComplexityMedium))
}
