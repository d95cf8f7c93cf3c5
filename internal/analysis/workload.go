package analysis

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/OpsWing/models"
)

// WorkloadStatus labels how loaded a member is.
type WorkloadStatus string

const (
	LightLoad    WorkloadStatus = "Light Load"
	ModerateLoad WorkloadStatus = "Moderate Load"
	HeavyLoad    WorkloadStatus = "Heavy Load"
)

// WorkloadRecord is one member's load, rebuilt on every call.
type WorkloadRecord struct {
	MemberName        string         `json:"member_name"`
	Role              string         `json:"role,omitempty"`
	Department        string         `json:"department,omitempty"`
	CurrentTasks      int            `json:"current_tasks"`
	PriorityWeight    int            `json:"priority_weight"`
	CapacityAvailable int            `json:"capacity_available"`
	WorkloadStatus    WorkloadStatus `json:"workload_status"`
}

// WorkloadAnalysis aggregates tasks by assignee.
type WorkloadAnalysis struct {
	Members               []WorkloadRecord `json:"team_analysis"`
	TotalTasks            int              `json:"total_tasks"`
	AverageTasksPerMember float64          `json:"average_tasks_per_member"`
	Recommendations       []string         `json:"recommendations"`

	index map[string]int
}

// Lookup returns the record for an exact member name.
func (w WorkloadAnalysis) Lookup(name string) (WorkloadRecord, bool) {
	i, ok := w.index[name]
	if !ok {
		return WorkloadRecord{}, false
	}
	return w.Members[i], true
}

// Capacity is 100 minus 20 per task and 5 per weight point, floored at 0.
func Capacity(taskCount, priorityWeight int) int {
	c := 100 - 20*taskCount - 5*priorityWeight
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// StatusFor maps a task count onto the load labels.
func StatusFor(taskCount int) WorkloadStatus {
	switch {
	case taskCount <= 2:
		return LightLoad
	case taskCount <= 4:
		return ModerateLoad
	default:
		return HeavyLoad
	}
}

// AnalyzeWorkload produces a record per member in input order. Tasks count
// toward a member only when the assignee equals the name exactly; a repeated
// member name keeps its first record.
func (a *Analyzer) AnalyzeWorkload(members []models.TeamMember, tasks []models.Task) WorkloadAnalysis {
	type tally struct{ count, weight int }
	byAssignee := make(map[string]*tally)
	for _, t := range tasks {
		if !t.IsAssigned() {
			continue
		}
		tl, ok := byAssignee[t.AssignedTo]
		if !ok {
			tl = &tally{}
			byAssignee[t.AssignedTo] = tl
		}
		tl.count++
		tl.weight += t.Priority.Weight()
	}

	out := WorkloadAnalysis{
		Members:         make([]WorkloadRecord, 0, len(members)),
		TotalTasks:      len(tasks),
		Recommendations: []string{},
		index:           make(map[string]int, len(members)),
	}

	var heavy, light []string
	for _, m := range members {
		if _, dup := out.index[m.Name]; dup {
			continue
		}
		var count, weight int
		if tl, ok := byAssignee[m.Name]; ok {
			count, weight = tl.count, tl.weight
		}
		rec := WorkloadRecord{
			MemberName:        m.Name,
			Role:              m.Role,
			Department:        m.Department,
			CurrentTasks:      count,
			PriorityWeight:    weight,
			CapacityAvailable: Capacity(count, weight),
			WorkloadStatus:    StatusFor(count),
		}
		out.index[m.Name] = len(out.Members)
		out.Members = append(out.Members, rec)

		switch rec.WorkloadStatus {
		case HeavyLoad:
			heavy = append(heavy, m.Name)
		case LightLoad:
			light = append(light, m.Name)
		}
	}

	if n := len(out.Members); n > 0 {
		out.AverageTasksPerMember = float64(out.TotalTasks) / float64(n)
	}

	if len(heavy) > 0 {
		out.Recommendations = append(out.Recommendations,
			fmt.Sprintf("Consider redistributing tasks from %s to balance workload", strings.Join(heavy, ", ")))
	}
	if len(light) > 0 {
		out.Recommendations = append(out.Recommendations,
			fmt.Sprintf("Team members %s have capacity for additional tasks", strings.Join(light, ", ")))
	}
	if len(out.Recommendations) == 0 {
		out.Recommendations = append(out.Recommendations, "Workload appears well-balanced across the team")
	}
	return out
}
