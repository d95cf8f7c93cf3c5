package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose_RestAPIScenario(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	b, err := a.Decompose("Build REST API for customer data", "", 40, 1)
	require.NoError(t, err)

	assert.Equal(t, CategoryDevelopment, b.Category)
	require.Len(t, b.Subtasks, 7)

	sum := 0
	for _, st := range b.Subtasks {
		sum += st.EstimatedHours
	}
	assert.Equal(t, 40, sum)
	assert.Equal(t, []int{6, 6, 6, 6, 6, 5, 5}, []int{
		b.Subtasks[0].EstimatedHours, b.Subtasks[1].EstimatedHours, b.Subtasks[2].EstimatedHours,
		b.Subtasks[3].EstimatedHours, b.Subtasks[4].EstimatedHours, b.Subtasks[5].EstimatedHours,
		b.Subtasks[6].EstimatedHours,
	})

	assert.False(t, b.Subtasks[0].CanParallel)
	assert.False(t, b.Subtasks[1].CanParallel)
	assert.True(t, b.Subtasks[2].CanParallel)
	assert.Equal(t, "Requirements Analysis and Planning - Build REST API for customer data", b.Subtasks[0].Name)

	assert.Empty(t, b.Subtasks[0].DependsOn)
	assert.NotNil(t, b.Subtasks[0].DependsOn)
	assert.Equal(t, []int{3}, b.Subtasks[3].DependsOn)
	require.Len(t, b.Dependencies, 6)
	assert.Equal(t, Dependency{TaskID: 2, DependsOn: []int{1}, DependencyType: "sequential"}, b.Dependencies[0])

	plan := b.ExecutionPlan
	assert.Equal(t, 40, plan.TotalEstimatedHours)
	assert.Equal(t, 5, plan.SequentialExecutionDays)
	assert.Equal(t, 5, plan.ParallelOpportunities)
	assert.Equal(t, 3, plan.OptimizedExecutionDays)
	assert.Equal(t, 1, b.TeamSize)
}

func TestDecompose_HoursSumForAllTemplates(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	tasks := map[string]int{
		"Build REST API for customer data": 7,
		"Newsletter campaign":              6,
		"Coordinate project timeline":      7,
		"Write the user guide":             5,
	}
	for name, steps := range tasks {
		for hours := 0; hours <= 60; hours++ {
			b, err := a.Decompose(name, "", hours, 2)
			require.NoError(t, err)
			require.Len(t, b.Subtasks, steps, name)

			sum := 0
			for _, st := range b.Subtasks {
				sum += st.EstimatedHours
			}
			assert.Equal(t, hours, sum, "%s with %d hours", name, hours)
		}
	}
}

func TestDecompose_GenericTemplate(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	b, err := a.Decompose("Write the user guide", "", 12, 3)
	require.NoError(t, err)
	assert.Equal(t, CategoryContentManagement, b.Category)
	assert.Equal(t, "Planning and Analysis - Write the user guide", b.Subtasks[0].Name)
	assert.Equal(t, "Parallel execution where possible", b.ExecutionPlan.RecommendedApproach)
}

func TestDecompose_ZeroHours(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	b, err := a.Decompose("Newsletter campaign", "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, b.TeamSize)
	assert.Equal(t, 0, b.ExecutionPlan.SequentialExecutionDays)
	assert.Equal(t, 1, b.ExecutionPlan.OptimizedExecutionDays)
	for _, st := range b.Subtasks {
		assert.Zero(t, st.EstimatedHours)
	}
}

func TestDecompose_InvalidInput(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	_, err := a.Decompose("Newsletter campaign", "", -1, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = a.Decompose("Newsletter campaign", "", 10, -2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
