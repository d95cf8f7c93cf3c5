package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/josephgoksu/OpsWing/internal/analysis"
	"github.com/josephgoksu/OpsWing/internal/notify"
	"github.com/josephgoksu/OpsWing/internal/telemetry"
	"github.com/josephgoksu/OpsWing/models"
)

const (
	defaultManagerEmail = "manager@company.com"
	defaultManagerName  = "Manager"
)

// Recipient names the person a manager-level report goes to. Empty fields
// fall back to the configured manager.
type Recipient struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Name  string `json:"name,omitempty"`
}

func (s *Service) manager(r Recipient) Recipient {
	if strings.TrimSpace(r.Email) == "" {
		r.Email = s.managerEmail
		if r.Email == "" {
			r.Email = defaultManagerEmail
		}
	}
	if strings.TrimSpace(r.Name) == "" {
		r.Name = defaultManagerName
	}
	return r
}

// DispatchResult is the outcome for one recipient of a fan-out notification.
type DispatchResult struct {
	Employee  string `json:"employee"`
	Email     string `json:"email"`
	TaskCount int    `json:"task_count"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// DispatchReport summarizes a fan-out notification.
type DispatchReport struct {
	Recipients int              `json:"recipients"`
	Sent       int              `json:"sent"`
	Results    []DispatchResult `json:"results"`
}

func (r *DispatchReport) record(res DispatchResult) {
	if res.Sent {
		r.Sent++
	}
	r.Results = append(r.Results, res)
}

// TaskAssignmentRequest asks for an assignment notice.
type TaskAssignmentRequest struct {
	AssigneeEmail string      `json:"assignee_email" validate:"required,email"`
	AssigneeName  string      `json:"assignee_name" validate:"required"`
	Task          models.Task `json:"task_data" validate:"-"`
}

// SendTaskAssignment notifies one assignee about a task.
func (s *Service) SendTaskAssignment(ctx context.Context, req TaskAssignmentRequest) (notify.Message, error) {
	if err := validate(req); err != nil {
		return notify.Message{}, err
	}
	msg, err := s.notifier.Notify(ctx, notify.KindTaskAssignment, req.AssigneeEmail, notify.AssignmentData{Name: req.AssigneeName, Task: req.Task})
	if err != nil {
		return notify.Message{}, err
	}
	s.telemetry.Track(telemetry.EventNotificationOut, telemetry.Properties{"kind": notify.KindTaskAssignment, "count": 1})
	return msg, nil
}

// SendDailySummary sends every member with an email their open tasks.
// Members whose send fails are reported, not returned as an error.
func (s *Service) SendDailySummary(ctx context.Context) (DispatchReport, error) {
	team, tasks, err := s.teamAndTasks(ctx)
	if err != nil {
		return DispatchReport{}, err
	}
	report := DispatchReport{Recipients: len(team), Results: []DispatchResult{}}
	date := s.today()
	for _, m := range team {
		if strings.TrimSpace(m.Email) == "" {
			continue
		}
		open := filterTasks(tasks, func(t models.Task) bool {
			return strings.EqualFold(t.AssignedTo, m.Name) && !t.IsDone()
		})
		_, err := s.notifier.Notify(ctx, notify.KindDailySummary, m.Email, notify.TaskListData{Name: m.Name, Date: date, Tasks: open})
		report.record(dispatchResult(m.Name, m.Email, len(open), err))
	}
	s.telemetry.Track(telemetry.EventNotificationOut, telemetry.Properties{"kind": notify.KindDailySummary, "count": report.Sent})
	return report, nil
}

// SendOverdueReminders groups overdue tasks by assignee and reminds those
// with an email on the team sheet. Recipients counts assignees with overdue
// work, including those without an address.
func (s *Service) SendOverdueReminders(ctx context.Context) (DispatchReport, error) {
	team, tasks, err := s.teamAndTasks(ctx)
	if err != nil {
		return DispatchReport{}, err
	}
	emails := make(map[string]string, len(team))
	for _, m := range team {
		if _, ok := emails[m.Name]; !ok {
			emails[m.Name] = strings.TrimSpace(m.Email)
		}
	}

	var order []string
	byAssignee := map[string][]models.Task{}
	for _, t := range s.analyzer.Overdue(tasks) {
		if _, ok := byAssignee[t.AssignedTo]; !ok {
			order = append(order, t.AssignedTo)
		}
		byAssignee[t.AssignedTo] = append(byAssignee[t.AssignedTo], t)
	}

	report := DispatchReport{Recipients: len(order), Results: []DispatchResult{}}
	for _, assignee := range order {
		email := emails[assignee]
		if email == "" {
			slog.Debug("overdue reminder skipped, no email", "assignee", assignee)
			continue
		}
		overdue := byAssignee[assignee]
		_, err := s.notifier.Notify(ctx, notify.KindOverdueReminder, email, notify.TaskListData{Name: assignee, Date: s.today(), Tasks: overdue})
		report.record(dispatchResult(assignee, email, len(overdue), err))
	}
	s.telemetry.Track(telemetry.EventNotificationOut, telemetry.Properties{"kind": notify.KindOverdueReminder, "count": report.Sent})
	return report, nil
}

// KPIAlertReport is the outcome of SendKPIAlerts.
type KPIAlertReport struct {
	AlertCount   int             `json:"alert_count"`
	ManagerEmail string          `json:"manager_email"`
	Sent         bool            `json:"sent"`
	Message      *notify.Message `json:"message,omitempty"`
}

// NoKPIAlertsMessage is reported when every KPI is performing.
const NoKPIAlertsMessage = "No KPI alerts to send - all metrics are performing well"

// SendKPIAlerts sends the manager one message listing every Red KPI. Nothing
// is sent when there are no alerts.
func (s *Service) SendKPIAlerts(ctx context.Context, to Recipient) (KPIAlertReport, error) {
	if err := validate(to); err != nil {
		return KPIAlertReport{}, err
	}
	to = s.manager(to)
	alerts, err := s.KPIAlerts(ctx)
	if err != nil {
		return KPIAlertReport{}, err
	}
	report := KPIAlertReport{AlertCount: len(alerts), ManagerEmail: to.Email}
	if len(alerts) == 0 {
		return report, nil
	}

	data := notify.KPIAlertData{Name: to.Name, Alerts: make([]notify.KPIAlert, 0, len(alerts))}
	for _, a := range alerts {
		data.Alerts = append(data.Alerts, notify.KPIAlert{
			EmployeeName: a.EmployeeName,
			Department:   a.Department,
			KPIName:      a.Name,
			Target:       a.Target,
			Actual:       a.Actual,
			Date:         a.Date,
			Trend:        string(a.Trend),
			Severity:     a.Severity,
		})
	}
	msg, err := s.notifier.Notify(ctx, notify.KindKPIAlert, to.Email, data)
	if err != nil {
		return KPIAlertReport{}, err
	}
	report.Sent = true
	report.Message = &msg
	s.telemetry.Track(telemetry.EventNotificationOut, telemetry.Properties{"kind": notify.KindKPIAlert, "count": 1})
	return report, nil
}

// WeeklyReport computes the weekly counts without sending anything.
func (s *Service) WeeklyReport(ctx context.Context) (notify.WeeklyReport, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return notify.WeeklyReport{}, err
	}
	kpis, err := s.store.ListKPIs(ctx)
	if err != nil {
		return notify.WeeklyReport{}, err
	}

	var r notify.WeeklyReport
	for _, t := range tasks {
		switch t.Normalized().Status {
		case models.StatusDone:
			r.CompletedTasks++
		case models.StatusInProgress:
			r.InProgressTasks++
		}
	}
	r.OverdueTasks = len(s.analyzer.Overdue(tasks))
	for _, k := range kpis {
		switch analysis.KPIStatus(k) {
		case models.KPIGreen:
			r.GreenKPIs++
		case models.KPIYellow:
			r.YellowKPIs++
		case models.KPIRed:
			r.RedKPIs++
		}
	}
	return r, nil
}

// SendWeeklyReport sends the weekly counts to the recipient.
func (s *Service) SendWeeklyReport(ctx context.Context, to Recipient) (notify.WeeklyReport, error) {
	if err := validate(to); err != nil {
		return notify.WeeklyReport{}, err
	}
	to = s.manager(to)
	report, err := s.WeeklyReport(ctx)
	if err != nil {
		return notify.WeeklyReport{}, err
	}
	data := notify.WeeklyReportData{Name: to.Name, WeekEnding: s.today(), Report: report}
	if _, err := s.notifier.Notify(ctx, notify.KindWeeklyReport, to.Email, data); err != nil {
		return notify.WeeklyReport{}, err
	}
	s.telemetry.Track(telemetry.EventNotificationOut, telemetry.Properties{"kind": notify.KindWeeklyReport, "count": 1})
	return report, nil
}

func dispatchResult(name, email string, count int, err error) DispatchResult {
	res := DispatchResult{Employee: name, Email: email, TaskCount: count, Sent: err == nil}
	if err != nil {
		slog.Warn("notification failed", "employee", name, "error", err)
		res.Error = err.Error()
	}
	return res
}
