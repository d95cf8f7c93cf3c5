/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the calendar date format used by every date column.
const DateLayout = "2006-01-02"

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
	StatusBlocked    TaskStatus = "Blocked"
)

// TaskStatuses lists the closed status set in workflow order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone, StatusBlocked}

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// Priorities lists the closed priority set, highest first.
var Priorities = []TaskPriority{PriorityHigh, PriorityMedium, PriorityLow}

// Unassigned is the assignee placeholder that never counts towards anyone's workload.
const Unassigned = "Unassigned"

// Task represents a row of the task sheet.
type Task struct {
	ID                string       `json:"task_id" yaml:"task_id"`
	Name              string       `json:"task_name" yaml:"task_name" validate:"required,min=3,max=255"`
	Description       string       `json:"task_description,omitempty" yaml:"task_description,omitempty"`
	AssignedTo        string       `json:"assigned_to,omitempty" yaml:"assigned_to,omitempty"`
	DueDate           string       `json:"due_date,omitempty" yaml:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Priority          TaskPriority `json:"priority" yaml:"priority" validate:"required,oneof=High Medium Low"`
	Status            TaskStatus   `json:"status" yaml:"status" validate:"required,oneof='To Do' 'In Progress' Done Blocked"`
	EstimatedHours    int          `json:"estimated_hours,omitempty" yaml:"estimated_hours,omitempty" validate:"gte=0"`
	Frequency         string       `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Category          string       `json:"ai_category,omitempty" yaml:"ai_category,omitempty"`
	SuggestedDeadline string       `json:"suggested_deadline,omitempty" yaml:"suggested_deadline,omitempty"`
	CompletedAt       *time.Time   `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// canonical folds free text into the title-cased form used by the enums.
// Casers carry state, so each call builds its own.
func canonical(s string) string {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " ")
	return cases.Title(language.English).String(strings.ToLower(s))
}

// ParsePriority reports whether s names one of the closed priorities.
func ParsePriority(s string) (TaskPriority, bool) {
	p := TaskPriority(canonical(s))
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, true
	}
	return "", false
}

// NormalizePriority maps s onto the closed set, degrading to Medium.
func NormalizePriority(s string) TaskPriority {
	if p, ok := ParsePriority(s); ok {
		return p
	}
	return PriorityMedium
}

// Weight is the workload weight of a priority (High=3, Medium=2, Low=1).
func (p TaskPriority) Weight() int {
	switch NormalizePriority(string(p)) {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// Rank orders priorities for scheduling; lower runs first.
func (p TaskPriority) Rank() int {
	switch NormalizePriority(string(p)) {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// ParseTaskStatus reports whether s names one of the closed statuses.
// "todo", "completed" and "complete" are accepted as aliases.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	c := canonical(s)
	switch c {
	case "Todo":
		return StatusTodo, true
	case "Completed", "Complete":
		return StatusDone, true
	}
	st := TaskStatus(c)
	switch st {
	case StatusTodo, StatusInProgress, StatusDone, StatusBlocked:
		return st, true
	}
	return "", false
}

// NormalizeTaskStatus maps s onto the closed set, degrading to To Do.
func NormalizeTaskStatus(s string) TaskStatus {
	if st, ok := ParseTaskStatus(s); ok {
		return st
	}
	return StatusTodo
}

// Normalized returns a copy with priority and status folded onto their closed sets.
func (t Task) Normalized() Task {
	t.Priority = NormalizePriority(string(t.Priority))
	t.Status = NormalizeTaskStatus(string(t.Status))
	t.AssignedTo = strings.TrimSpace(t.AssignedTo)
	t.DueDate = strings.TrimSpace(t.DueDate)
	return t
}

// IsDone reports whether the task is finished.
func (t Task) IsDone() bool {
	return NormalizeTaskStatus(string(t.Status)) == StatusDone
}

// IsAssigned reports whether the task counts towards a team member.
func (t Task) IsAssigned() bool {
	a := strings.TrimSpace(t.AssignedTo)
	return a != "" && a != Unassigned
}

// Due parses DueDate. ok is false for empty or unparseable dates.
func (t Task) Due() (time.Time, bool) {
	return ParseDate(t.DueDate)
}

// ParseDate parses a DateLayout string in local time.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// NewTask returns a task with sheet defaults applied.
func NewTask(name string) Task {
	return Task{
		Name:      name,
		Priority:  PriorityMedium,
		Status:    StatusTodo,
		Frequency: "One-time",
	}
}
