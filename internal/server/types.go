package server

import "github.com/josephgoksu/OpsWing/models"

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StatusRequest is the payload for the status PUT endpoints.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TaskTextRequest is the payload for /api/ai/categorize-task and suggest-priority.
type TaskTextRequest struct {
	TaskName        string `json:"task_name" validate:"required"`
	TaskDescription string `json:"task_description"`
	DueDate         string `json:"due_date"`
}

// DeadlineRequest is the payload for /api/ai/suggest-deadline.
type DeadlineRequest struct {
	TaskName        string `json:"task_name" validate:"required"`
	TaskDescription string `json:"task_description"`
	Priority        string `json:"priority"`
	EstimatedHours  *int   `json:"estimated_hours"`
}

// BreakdownRequest is the payload for /api/ai/break-down-task.
type BreakdownRequest struct {
	TaskName        string `json:"task_name" validate:"required"`
	TaskDescription string `json:"task_description"`
	EstimatedHours  *int   `json:"estimated_hours" validate:"required"`
	TeamSize        int    `json:"team_size"`
}

// ScheduleRequest is the optional payload for /api/ai/optimize-schedule.
// Without tasks the stored task sheet is scheduled.
type ScheduleRequest struct {
	Tasks []models.Task `json:"tasks"`
}

// RecipientRequest is the optional payload for manager-level notifications.
type RecipientRequest struct {
	ManagerEmail   string `json:"manager_email"`
	ManagerName    string `json:"manager_name"`
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
}
