package analysis

import (
	"fmt"
	"testing"

	"github.com/josephgoksu/OpsWing/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeSchedule(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	tasks := []models.Task{
		{ID: "1", Name: "Low later", Priority: models.PriorityLow, DueDate: "2025-06-20"},
		{ID: "2", Name: "High A", Priority: models.PriorityHigh, DueDate: "2025-06-15", AssignedTo: "Alice"},
		{ID: "3", Name: "High soon", Priority: "high", DueDate: "2025-06-12", AssignedTo: "Alice"},
		{ID: "4", Name: "Medium undated", Priority: models.PriorityMedium},
		{ID: "5", Name: "High done", Priority: models.PriorityHigh, Status: models.StatusDone, DueDate: "2025-06-15", AssignedTo: "Alice"},
		{ID: "6", Name: "High B", Priority: models.PriorityHigh, DueDate: "2025-06-15", AssignedTo: "Alice"},
		{ID: "7", Name: "High late", Priority: models.PriorityHigh, DueDate: "2025-06-01", AssignedTo: "Bob"},
	}

	s := a.OptimizeSchedule(tasks)

	ids := make([]string, 0, len(s.OptimizedSchedule))
	for _, st := range s.OptimizedSchedule {
		ids = append(ids, st.TaskID)
	}
	assert.Equal(t, []string{"7", "3", "2", "6", "4", "1"}, ids)
	assert.True(t, s.OptimizedSchedule[0].Overdue)
	assert.Equal(t, 1, s.OptimizedSchedule[0].Order)
	assert.Equal(t, models.PriorityHigh, s.OptimizedSchedule[1].Priority)

	require.Len(t, s.PotentialConflicts, 1)
	assert.Equal(t, "Alice", s.PotentialConflicts[0].AssignedTo)
	assert.Equal(t, "2025-06-15", s.PotentialConflicts[0].DueDate)
	assert.Equal(t, []string{"High A", "High B"}, s.PotentialConflicts[0].TaskNames)

	assert.Equal(t, []string{
		"Reschedule overdue tasks and adjust future deadlines accordingly",
		"Group similar tasks together for better focus",
		"Schedule high-priority tasks during peak productivity hours",
		"Leave buffer time between complex tasks",
	}, s.Recommendations)
	assert.Equal(t, []string{
		"Assign owners to 2 open tasks",
		"Set due dates on 1 open tasks",
	}, s.EfficiencyImprovements)
}

func TestOptimizeSchedule_ManyHighTasks(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	var tasks []models.Task
	for i := 0; i < 6; i++ {
		tasks = append(tasks, models.Task{
			Name:       fmt.Sprintf("High %d", i),
			Priority:   models.PriorityHigh,
			DueDate:    fmt.Sprintf("2025-06-%02d", 20+i),
			AssignedTo: "Alice",
		})
	}

	s := a.OptimizeSchedule(tasks)
	require.NotEmpty(t, s.Recommendations)
	assert.Equal(t, "Consider breaking down 6 high-priority tasks into smaller chunks", s.Recommendations[0])
	assert.Len(t, s.Recommendations, 4)
	assert.Empty(t, s.PotentialConflicts)
	assert.Empty(t, s.EfficiencyImprovements)
}

func TestOptimizeSchedule_Empty(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	s := a.OptimizeSchedule(nil)
	assert.Empty(t, s.OptimizedSchedule)
	assert.Len(t, s.Recommendations, 3)
}
