// Package notify renders notification messages from structured data and
// hands them to a Sender. Delivery over SMTP is out of scope; the bundled
// senders log or keep messages in memory.
package notify

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/josephgoksu/OpsWing/models"
)

// Template names.
const (
	KindTaskAssignment  = "task_assignment"
	KindOverdueReminder = "overdue_reminder"
	KindKPIAlert        = "kpi_alert"
	KindDailySummary    = "daily_summary"
	KindWeeklyReport    = "weekly_report"
)

const footer = `
---
This is an automated message from OpsWing.
`

var defaultTemplates = map[string][2]string{
	KindTaskAssignment: {
		`New Task Assignment: {{.Task.Name}}`,
		`NEW TASK ASSIGNMENT

Hello {{.Name}},

You have been assigned a new task. Please review the details below:

Task Name: {{.Task.Name}}
Description: {{or .Task.Description "No description provided"}}
Priority: {{or .Task.Priority "Medium"}}
Due Date: {{or .Task.DueDate "Not specified"}}
Estimated Hours: {{if .Task.EstimatedHours}}{{.Task.EstimatedHours}}{{else}}Not specified{{end}}
Category: {{or .Task.Category "General"}}

If you have any questions about this task, please contact your project manager.
` + footer,
	},
	KindDailySummary: {
		`Daily Task Summary - {{.Date}}`,
		`DAILY TASK SUMMARY - {{.Date}}

Hello {{.Name}},

Here are your tasks for today ({{len .Tasks}} total):
{{range $i, $t := .Tasks}}
{{inc $i}}. {{$t.Name}}
   Priority: {{or $t.Priority "Medium"}}
   Due Date: {{or $t.DueDate "Not specified"}}
   Status: {{or $t.Status "To Do"}}
{{end}}
Have a productive day!
` + footer,
	},
	KindOverdueReminder: {
		`Overdue Task Reminder - {{len .Tasks}} task(s) need attention`,
		`OVERDUE TASK REMINDER

Hello {{.Name}},

You have {{len .Tasks}} overdue task(s) that need immediate attention:
{{range $i, $t := .Tasks}}
{{inc $i}}. {{$t.Name}}
   Due Date: {{or $t.DueDate "Not specified"}}
   Priority: {{or $t.Priority "Medium"}}
   Status: {{or $t.Status "To Do"}}
{{end}}
Please update these tasks as soon as possible and contact your manager if you need assistance.
` + footer,
	},
	KindKPIAlert: {
		`KPI Performance Alert - {{len .Alerts}} metric(s) need attention`,
		`KPI PERFORMANCE ALERT

Hello {{.Name}},

The following KPI metrics require your attention:
{{range $i, $a := .Alerts}}
{{inc $i}}. {{$a.EmployeeName}} - {{$a.KPIName}}
   Department: {{$a.Department}}
   Target: {{$a.Target}}
   Actual: {{$a.Actual}}
   Trend: {{or $a.Trend "Unknown"}}
   Severity: {{$a.Severity}}
{{end}}
Please review these metrics and take appropriate action to improve performance.
` + footer,
	},
	KindWeeklyReport: {
		`Weekly Performance Report - Week Ending {{.WeekEnding}}`,
		`WEEKLY PERFORMANCE REPORT
Week Ending {{.WeekEnding}}

Hello {{.Name}},

Here's your weekly performance summary:

TASK COMPLETION:
- Completed: {{.Report.CompletedTasks}} tasks
- In Progress: {{.Report.InProgressTasks}} tasks
- Overdue: {{.Report.OverdueTasks}} tasks

KPI PERFORMANCE:
- Green Status: {{.Report.GreenKPIs}} KPIs
- Yellow Status: {{.Report.YellowKPIs}} KPIs
- Red Status: {{.Report.RedKPIs}} KPIs
` + footer,
	},
}

// AssignmentData feeds the task_assignment template.
type AssignmentData struct {
	Name string
	Task models.Task
}

// TaskListData feeds the daily_summary and overdue_reminder templates.
type TaskListData struct {
	Name  string
	Date  string
	Tasks []models.Task
}

// KPIAlert is one underperforming KPI entry.
type KPIAlert struct {
	EmployeeName string  `json:"employee_name"`
	Department   string  `json:"department"`
	KPIName      string  `json:"kpi_name"`
	Target       float64 `json:"target_value"`
	Actual       float64 `json:"actual_value"`
	Date         string  `json:"date,omitempty"`
	Trend        string  `json:"performance_trend,omitempty"`
	Severity     string  `json:"severity"`
}

// KPIAlertData feeds the kpi_alert template.
type KPIAlertData struct {
	Name   string
	Alerts []KPIAlert
}

// WeeklyReport holds the weekly counts.
type WeeklyReport struct {
	CompletedTasks  int `json:"completed_tasks"`
	InProgressTasks int `json:"in_progress_tasks"`
	OverdueTasks    int `json:"overdue_tasks"`
	GreenKPIs       int `json:"green_kpis"`
	YellowKPIs      int `json:"yellow_kpis"`
	RedKPIs         int `json:"red_kpis"`
}

// WeeklyReportData feeds the weekly_report template.
type WeeklyReportData struct {
	Name       string
	WeekEnding string
	Report     WeeklyReport
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

type compiled struct {
	subject *template.Template
	body    *template.Template
}

// Renderer compiles and renders named subject/body template pairs.
type Renderer struct {
	mu        sync.RWMutex
	templates map[string]compiled
}

// NewRenderer seeds the renderer with the built-in templates.
func NewRenderer() *Renderer {
	r := &Renderer{templates: make(map[string]compiled)}
	for name, t := range defaultTemplates {
		if err := r.Register(name, t[0], t[1]); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds or replaces a template pair.
func (r *Renderer) Register(name, subject, body string) error {
	s, err := template.New(name + ".subject").Funcs(funcs).Parse(subject)
	if err != nil {
		return fmt.Errorf("parse subject template %s: %w", name, err)
	}
	b, err := template.New(name).Funcs(funcs).Parse(body)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[name] = compiled{subject: s, body: b}
	return nil
}

// Render executes the named pair. The returned Message has no recipient.
func (r *Renderer) Render(name string, data any) (Message, error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return Message{}, fmt.Errorf("template %s not found", name)
	}

	var subject, body strings.Builder
	if err := t.subject.Execute(&subject, data); err != nil {
		return Message{}, fmt.Errorf("render subject %s: %w", name, err)
	}
	if err := t.body.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("render template %s: %w", name, err)
	}
	return Message{
		Kind:    name,
		Subject: strings.TrimSpace(subject.String()),
		Body:    body.String(),
	}, nil
}
