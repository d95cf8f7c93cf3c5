package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/josephgoksu/OpsWing/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_TaskAssignment(t *testing.T) {
	r := NewRenderer()
	task := models.Task{Name: "Build REST API", Priority: models.PriorityHigh, DueDate: "2025-06-20", EstimatedHours: 40, Category: "Development"}

	msg, err := r.Render(KindTaskAssignment, AssignmentData{Name: "Ada", Task: task})
	require.NoError(t, err)

	assert.Equal(t, KindTaskAssignment, msg.Kind)
	assert.Equal(t, "New Task Assignment: Build REST API", msg.Subject)
	assert.Contains(t, msg.Body, "Hello Ada,")
	assert.Contains(t, msg.Body, "Priority: High")
	assert.Contains(t, msg.Body, "Estimated Hours: 40")
	assert.Contains(t, msg.Body, "Description: No description provided")
}

func TestRenderer_Defaults(t *testing.T) {
	r := NewRenderer()
	msg, err := r.Render(KindTaskAssignment, AssignmentData{Name: "Bo", Task: models.Task{Name: "Tidy wiki"}})
	require.NoError(t, err)
	assert.Contains(t, msg.Body, "Due Date: Not specified")
	assert.Contains(t, msg.Body, "Estimated Hours: Not specified")
	assert.Contains(t, msg.Body, "Category: General")
}

func TestRenderer_TaskLists(t *testing.T) {
	r := NewRenderer()
	tasks := []models.Task{
		{Name: "Send invoices", Priority: models.PriorityHigh, DueDate: "2025-06-01", Status: models.StatusTodo},
		{Name: "Update roadmap", DueDate: "2025-06-03", Status: models.StatusInProgress},
	}

	msg, err := r.Render(KindOverdueReminder, TaskListData{Name: "Ada", Tasks: tasks})
	require.NoError(t, err)
	assert.Equal(t, "Overdue Task Reminder - 2 task(s) need attention", msg.Subject)
	assert.Contains(t, msg.Body, "1. Send invoices")
	assert.Contains(t, msg.Body, "2. Update roadmap")
	assert.Contains(t, msg.Body, "Priority: Medium")

	msg, err = r.Render(KindDailySummary, TaskListData{Name: "Ada", Date: "2025-06-10", Tasks: tasks[:1]})
	require.NoError(t, err)
	assert.Equal(t, "Daily Task Summary - 2025-06-10", msg.Subject)
	assert.Contains(t, msg.Body, "(1 total)")
}

func TestRenderer_KPIAlertAndWeekly(t *testing.T) {
	r := NewRenderer()
	msg, err := r.Render(KindKPIAlert, KPIAlertData{Name: "Manager", Alerts: []KPIAlert{
		{EmployeeName: "Ada", Department: "Sales", KPIName: "Calls", Target: 100, Actual: 40, Trend: "Declining", Severity: "High"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "KPI Performance Alert - 1 metric(s) need attention", msg.Subject)
	assert.Contains(t, msg.Body, "1. Ada - Calls")
	assert.Contains(t, msg.Body, "Severity: High")

	msg, err = r.Render(KindWeeklyReport, WeeklyReportData{Name: "Manager", WeekEnding: "2025-06-15", Report: WeeklyReport{CompletedTasks: 4, RedKPIs: 1}})
	require.NoError(t, err)
	assert.Equal(t, "Weekly Performance Report - Week Ending 2025-06-15", msg.Subject)
	assert.Contains(t, msg.Body, "- Completed: 4 tasks")
	assert.Contains(t, msg.Body, "- Red Status: 1 KPIs")
}

func TestRenderer_RegisterAndUnknown(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render("nope", nil)
	assert.Error(t, err)

	require.Error(t, r.Register("broken", "{{.Name", "body"))

	require.NoError(t, r.Register(KindTaskAssignment, "Task for {{.Name}}", "{{.Task.Name}}"))
	msg, err := r.Render(KindTaskAssignment, AssignmentData{Name: "Ada", Task: models.Task{Name: "Ship"}})
	require.NoError(t, err)
	assert.Equal(t, "Task for Ada", msg.Subject)
	assert.Equal(t, "Ship", msg.Body)
}

func TestNotifier_Notify(t *testing.T) {
	sender := NewMemorySender()
	n := NewNotifier(nil, sender, "ops@example.com")

	msg, err := n.Notify(context.Background(), KindTaskAssignment, " ada@example.com ", AssignmentData{Name: "Ada", Task: models.Task{Name: "Ship"}})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "ops@example.com", msg.From)

	sent := sender.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, msg, sent[0])

	_, err = n.Notify(context.Background(), KindTaskAssignment, "", AssignmentData{})
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(slog.New(slog.NewTextHandler(&buf, nil)))

	err := s.Send(context.Background(), Message{Kind: KindKPIAlert, To: "boss@example.com", Subject: "KPI"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "to=boss@example.com")
	assert.Contains(t, buf.String(), "kind=kpi_alert")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{}), context.Canceled)
}

func TestNewSender(t *testing.T) {
	s, err := NewSender("")
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)

	s, err = NewSender("memory")
	require.NoError(t, err)
	assert.IsType(t, &MemorySender{}, s)

	_, err = NewSender("smtp")
	assert.Error(t, err)
}
