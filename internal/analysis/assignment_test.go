package analysis

import (
	"testing"

	"github.com/josephgoksu/OpsWing/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAssignment_EmptyTeam(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	_, err := a.ScoreAssignment(AssignmentRequest{TaskName: "Build API"}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScoreAssignment_SkillsDecide(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	members := []models.TeamMember{
		{Name: "Bob", Skills: "design figma"},
		{Name: "Alice", Skills: "Go, SQL"},
	}

	rec, err := a.ScoreAssignment(AssignmentRequest{
		TaskName:       "Build API",
		RequiredSkills: "go sql",
		Priority:       "Medium",
	}, members, nil)
	require.NoError(t, err)

	assert.Equal(t, "Alice", rec.RecommendedAssignee)
	assert.InDelta(t, 1.0, rec.ConfidenceScore, 0.0001)
	assert.Equal(t, WeightingMultiplicative, rec.Strategy)
	assert.Equal(t, CategoryDevelopment, rec.TaskAnalysis.Label)
	assert.Equal(t, []string{
		"Capacity available: 100%",
		"Skill match: 100%",
		"Current workload: Light Load",
		"Priority adjustment: x1.00 (multiplicative)",
		"Final score: 1.00",
	}, rec.Reasoning)

	require.Len(t, rec.Candidates, 2)
	assert.InDelta(t, 0.4, rec.Candidates[0].Score, 0.0001)
	require.Len(t, rec.Alternatives, 1)
	assert.Equal(t, "Bob", rec.Alternatives[0].Name)
}

func TestScoreAssignment_ConfidenceClamped(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	members := []models.TeamMember{{Name: "Alice", Skills: "go"}}

	rec, err := a.ScoreAssignment(AssignmentRequest{TaskName: "Fix", RequiredSkills: "go", Priority: "High"}, members, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, rec.Candidates[0].Score, 0.0001)
	assert.InDelta(t, 1.0, rec.ConfidenceScore, 0.0001)
	assert.Empty(t, rec.Alternatives)
}

func TestScoreAssignment_TiesKeepInputOrder(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	members := []models.TeamMember{{Name: "Zed"}, {Name: "Amy"}, {Name: "Kim"}, {Name: "Lou"}}

	rec, err := a.ScoreAssignment(AssignmentRequest{TaskName: "Plan offsite"}, members, nil)
	require.NoError(t, err)
	assert.Equal(t, "Zed", rec.RecommendedAssignee)
	assert.InDelta(t, 0.7, rec.ConfidenceScore, 0.0001)

	names := make([]string, 0, len(rec.Alternatives))
	for _, alt := range rec.Alternatives {
		names = append(names, alt.Name)
	}
	assert.Equal(t, []string{"Amy", "Kim"}, names)
}

func TestScoreAssignment_AlternativesByCapacity(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	members := []models.TeamMember{
		{Name: "Expert", Skills: "go"},
		{Name: "Busy"},
		{Name: "Free"},
		{Name: "Half"},
	}
	var tasks []models.Task
	tasks = append(tasks, tasksFor("Expert", models.PriorityLow, 2)...)
	tasks = append(tasks, tasksFor("Busy", models.PriorityHigh, 4)...)
	tasks = append(tasks, tasksFor("Half", models.PriorityMedium, 1)...)

	rec, err := a.ScoreAssignment(AssignmentRequest{TaskName: "Fix", RequiredSkills: "go"}, members, tasks)
	require.NoError(t, err)

	// Expert: 1*0.6 + 0.50*0.4 = 0.80; Free: 0 skill + 0.4 = 0.40
	assert.Equal(t, "Expert", rec.RecommendedAssignee)
	require.Len(t, rec.Alternatives, 2)
	assert.Equal(t, "Free", rec.Alternatives[0].Name)
	assert.Equal(t, 100, rec.Alternatives[0].CapacityAvailable)
	assert.Equal(t, "Half", rec.Alternatives[1].Name)
	assert.Equal(t, 70, rec.Alternatives[1].CapacityAvailable)
}

func TestScoreAssignment_Strategies(t *testing.T) {
	members := []models.TeamMember{{Name: "Loaded"}, {Name: "Idle"}}
	tasks := tasksFor("Loaded", models.PriorityHigh, 24) // weight 72
	req := AssignmentRequest{TaskName: "Outage review", Priority: "High"}

	t.Run("multiplicative", func(t *testing.T) {
		a := newTestAnalyzer(t, DefaultConfig())
		rec, err := a.ScoreAssignment(req, members, tasks)
		require.NoError(t, err)
		assert.InDelta(t, 1.2, rec.Candidates[0].PriorityAdjustment, 0.0001)
		assert.InDelta(t, 0.36, rec.Candidates[0].Score, 0.0001)
		assert.InDelta(t, 0.84, rec.Candidates[1].Score, 0.0001)
		assert.Equal(t, "Idle", rec.RecommendedAssignee)
	})

	t.Run("threshold penalty", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weighting = WeightingThresholdPenalty
		a := newTestAnalyzer(t, cfg)

		rec, err := a.ScoreAssignment(req, members, tasks)
		require.NoError(t, err)
		assert.Equal(t, WeightingThresholdPenalty, rec.Strategy)
		assert.InDelta(t, 0.7, rec.Candidates[0].PriorityAdjustment, 0.0001)
		assert.InDelta(t, 0.21, rec.Candidates[0].Score, 0.0001)
		assert.InDelta(t, 1.0, rec.Candidates[1].PriorityAdjustment, 0.0001)
		assert.InDelta(t, 0.7, rec.Candidates[1].Score, 0.0001)
	})

	t.Run("threshold penalty ignores non-high", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weighting = WeightingThresholdPenalty
		a := newTestAnalyzer(t, cfg)

		low := req
		low.Priority = "Low"
		rec, err := a.ScoreAssignment(low, members, tasks)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, rec.Candidates[0].PriorityAdjustment, 0.0001)
	})
}

func TestSkillMatch(t *testing.T) {
	assert.InDelta(t, 0.5, SkillMatch(nil, []string{"go"}), 0.0001)
	assert.InDelta(t, 0.5, SkillMatch([]string{"go"}, nil), 0.0001)
	assert.InDelta(t, 0.5, SkillMatch([]string{"go", "sql"}, []string{"go"}), 0.0001)
	assert.InDelta(t, 0.0, SkillMatch([]string{"rust"}, []string{"go"}), 0.0001)
}
