package analysis

import (
	"testing"

	"github.com/josephgoksu/OpsWing/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tasksFor(assignee string, p models.TaskPriority, n int) []models.Task {
	out := make([]models.Task, n)
	for i := range out {
		out[i] = models.Task{Name: "Task", AssignedTo: assignee, Priority: p, Status: models.StatusTodo}
	}
	return out
}

func TestAnalyzeWorkload_HeavyAndLight(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	members := []models.TeamMember{{Name: "A", Role: "Developer"}, {Name: "B", Role: "Analyst"}}

	w := a.AnalyzeWorkload(members, tasksFor("A", models.PriorityHigh, 5))

	require.Len(t, w.Members, 2)
	ra, ok := w.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, HeavyLoad, ra.WorkloadStatus)
	assert.Equal(t, 5, ra.CurrentTasks)
	assert.Equal(t, 15, ra.PriorityWeight)
	assert.Equal(t, 0, ra.CapacityAvailable)
	assert.Equal(t, "Developer", ra.Role)

	rb, ok := w.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, LightLoad, rb.WorkloadStatus)
	assert.Equal(t, 100, rb.CapacityAvailable)

	assert.Equal(t, 5, w.TotalTasks)
	assert.InDelta(t, 2.5, w.AverageTasksPerMember, 0.0001)
	assert.Equal(t, []string{
		"Consider redistributing tasks from A to balance workload",
		"Team members B have capacity for additional tasks",
	}, w.Recommendations)
}

func TestAnalyzeWorkload_NoMembers(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	w := a.AnalyzeWorkload(nil, tasksFor("A", models.PriorityLow, 3))
	assert.Empty(t, w.Members)
	assert.Equal(t, 3, w.TotalTasks)
	assert.Zero(t, w.AverageTasksPerMember)
	assert.Equal(t, []string{"Workload appears well-balanced across the team"}, w.Recommendations)
}

func TestAnalyzeWorkload_Balanced(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	members := []models.TeamMember{{Name: "A"}}

	w := a.AnalyzeWorkload(members, tasksFor("A", models.PriorityMedium, 3))
	r, _ := w.Lookup("A")
	assert.Equal(t, ModerateLoad, r.WorkloadStatus)
	assert.Equal(t, 10, r.CapacityAvailable)
	assert.Equal(t, []string{"Workload appears well-balanced across the team"}, w.Recommendations)
}

func TestAnalyzeWorkload_MatchingRules(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	members := []models.TeamMember{
		{Name: "Alice", Role: "Lead"},
		{Name: "Bob"},
		{Name: "Alice", Role: "Duplicate"},
	}
	tasks := []models.Task{
		{Name: "One", AssignedTo: "Alice", Priority: models.PriorityHigh},
		{Name: "Two", AssignedTo: "alice", Priority: models.PriorityHigh},
		{Name: "Three", AssignedTo: models.Unassigned, Priority: models.PriorityHigh},
		{Name: "Four", AssignedTo: "", Priority: models.PriorityHigh},
		{Name: "Five", AssignedTo: "Alice", Priority: "bogus"},
	}

	w := a.AnalyzeWorkload(members, tasks)
	require.Len(t, w.Members, 2)
	assert.Equal(t, "Alice", w.Members[0].MemberName)
	assert.Equal(t, "Lead", w.Members[0].Role)
	assert.Equal(t, 2, w.Members[0].CurrentTasks)
	assert.Equal(t, 5, w.Members[0].PriorityWeight)
	assert.Equal(t, 0, w.Members[1].CurrentTasks)
	assert.Equal(t, 5, w.TotalTasks)

	_, ok := w.Lookup("alice")
	assert.False(t, ok)
}

func TestCapacity_Bounds(t *testing.T) {
	for count := 0; count <= 12; count++ {
		for weight := 0; weight <= 3*count; weight++ {
			c := Capacity(count, weight)
			assert.GreaterOrEqual(t, c, 0)
			assert.LessOrEqual(t, c, 100)
		}
	}
	assert.Equal(t, 100, Capacity(0, 0))
	assert.Equal(t, 65, Capacity(1, 3))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, LightLoad, StatusFor(0))
	assert.Equal(t, LightLoad, StatusFor(2))
	assert.Equal(t, ModerateLoad, StatusFor(3))
	assert.Equal(t, ModerateLoad, StatusFor(4))
	assert.Equal(t, HeavyLoad, StatusFor(5))
}
