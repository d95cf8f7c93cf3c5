package analysis

import (
	"fmt"
	"sort"

	"github.com/josephgoksu/OpsWing/models"
)

// ScheduledTask is one open task in suggested working order.
type ScheduledTask struct {
	Order      int                 `json:"order"`
	TaskID     string              `json:"task_id,omitempty"`
	TaskName   string              `json:"task_name"`
	AssignedTo string              `json:"assigned_to,omitempty"`
	DueDate    string              `json:"due_date,omitempty"`
	Priority   models.TaskPriority `json:"priority"`
	Overdue    bool                `json:"overdue"`
}

// ScheduleConflict flags an assignee with competing High tasks on one date.
type ScheduleConflict struct {
	AssignedTo string   `json:"assigned_to"`
	DueDate    string   `json:"due_date"`
	TaskNames  []string `json:"task_names"`
	Reason     string   `json:"reason"`
}

// ScheduleOptimization is the result of OptimizeSchedule.
type ScheduleOptimization struct {
	OptimizedSchedule      []ScheduledTask    `json:"optimized_schedule"`
	Recommendations        []string           `json:"recommendations"`
	PotentialConflicts     []ScheduleConflict `json:"potential_conflicts"`
	EfficiencyImprovements []string           `json:"efficiency_improvements"`
}

const highTaskBreakdownThreshold = 5

var schedulingTips = []string{
	"Group similar tasks together for better focus",
	"Schedule high-priority tasks during peak productivity hours",
	"Leave buffer time between complex tasks",
}

// OptimizeSchedule orders open tasks by priority then due date. Tasks
// without a parseable date sort after dated ones; ties keep input order.
func (a *Analyzer) OptimizeSchedule(tasks []models.Task) ScheduleOptimization {
	now := a.now()

	open := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsDone() {
			open = append(open, t.Normalized())
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		ri, rj := open[i].Priority.Rank(), open[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		di, oki := open[i].Due()
		dj, okj := open[j].Due()
		switch {
		case oki && okj:
			return di.Before(dj)
		case oki != okj:
			return oki
		}
		return false
	})

	out := ScheduleOptimization{
		OptimizedSchedule:      make([]ScheduledTask, 0, len(open)),
		Recommendations:        []string{},
		PotentialConflicts:     []ScheduleConflict{},
		EfficiencyImprovements: []string{},
	}

	var high, overdue, unassigned, undated int
	type slot struct{ who, date string }
	var slots []slot
	bySlot := make(map[slot][]string)
	for i, t := range open {
		late := IsOverdue(t, now)
		out.OptimizedSchedule = append(out.OptimizedSchedule, ScheduledTask{
			Order:      i + 1,
			TaskID:     t.ID,
			TaskName:   t.Name,
			AssignedTo: t.AssignedTo,
			DueDate:    t.DueDate,
			Priority:   t.Priority,
			Overdue:    late,
		})
		if late {
			overdue++
		}
		if !t.IsAssigned() {
			unassigned++
		}
		if _, ok := t.Due(); !ok {
			undated++
		}
		if t.Priority != models.PriorityHigh {
			continue
		}
		high++
		if t.IsAssigned() && t.DueDate != "" {
			s := slot{t.AssignedTo, t.DueDate}
			if _, seen := bySlot[s]; !seen {
				slots = append(slots, s)
			}
			bySlot[s] = append(bySlot[s], t.Name)
		}
	}

	for _, s := range slots {
		if names := bySlot[s]; len(names) > 1 {
			out.PotentialConflicts = append(out.PotentialConflicts, ScheduleConflict{
				AssignedTo: s.who,
				DueDate:    s.date,
				TaskNames:  names,
				Reason:     fmt.Sprintf("%d high-priority tasks due on the same day", len(names)),
			})
		}
	}

	if high > highTaskBreakdownThreshold {
		out.Recommendations = append(out.Recommendations,
			fmt.Sprintf("Consider breaking down %d high-priority tasks into smaller chunks", high))
	}
	if overdue > 0 {
		out.Recommendations = append(out.Recommendations,
			"Reschedule overdue tasks and adjust future deadlines accordingly")
	}
	out.Recommendations = append(out.Recommendations, schedulingTips...)

	if unassigned > 0 {
		out.EfficiencyImprovements = append(out.EfficiencyImprovements,
			fmt.Sprintf("Assign owners to %d open tasks", unassigned))
	}
	if undated > 0 {
		out.EfficiencyImprovements = append(out.EfficiencyImprovements,
			fmt.Sprintf("Set due dates on %d open tasks", undated))
	}
	return out
}
