package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/josephgoksu/OpsWing/models"
)

// Column lists shared by the SQL backends. Ordering by the numeric ID keeps
// sheet row order.
const (
	taskColumns       = `id, name, description, assigned_to, due_date, priority, status, estimated_hours, frequency, category, suggested_deadline, completed_at`
	teamColumns       = `id, name, email, role, skills, department`
	kpiColumns        = `id, entry_date, employee_name, department, kpi_name, target_value, actual_value, status, trend`
	delegationColumns = `id, task_delegated, person_responsible, deadline, status, feedback, workload_score`
)

// rowScanner is satisfied by *sql.Row, *sql.Rows and pgx rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (models.Task, error) {
	var (
		t         models.Task
		completed sql.NullString
	)
	if err := r.Scan(&t.ID, &t.Name, &t.Description, &t.AssignedTo, &t.DueDate, &t.Priority, &t.Status,
		&t.EstimatedHours, &t.Frequency, &t.Category, &t.SuggestedDeadline, &completed); err != nil {
		return models.Task{}, fmt.Errorf("scan task: %w", err)
	}
	if completed.Valid && completed.String != "" {
		if ts, err := time.Parse(time.RFC3339, completed.String); err == nil {
			t.CompletedAt = &ts
		}
	}
	return t, nil
}

func scanMember(r rowScanner) (models.TeamMember, error) {
	var m models.TeamMember
	if err := r.Scan(&m.ID, &m.Name, &m.Email, &m.Role, &m.Skills, &m.Department); err != nil {
		return models.TeamMember{}, fmt.Errorf("scan team member: %w", err)
	}
	return m, nil
}

func scanKPI(r rowScanner) (models.KPIEntry, error) {
	var k models.KPIEntry
	if err := r.Scan(&k.ID, &k.Date, &k.EmployeeName, &k.Department, &k.Name, &k.Target, &k.Actual, &k.Status, &k.Trend); err != nil {
		return models.KPIEntry{}, fmt.Errorf("scan kpi: %w", err)
	}
	return k, nil
}

func scanDelegation(r rowScanner) (models.Delegation, error) {
	var d models.Delegation
	if err := r.Scan(&d.ID, &d.TaskDelegated, &d.PersonResponsible, &d.Deadline, &d.Status, &d.Feedback, &d.WorkloadScore); err != nil {
		return models.Delegation{}, fmt.Errorf("scan delegation: %w", err)
	}
	return d, nil
}

// completedValue renders CompletedAt for a nullable TEXT column.
func completedValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func taskArgs(t models.Task) []any {
	return []any{t.ID, t.Name, t.Description, t.AssignedTo, t.DueDate, string(t.Priority), string(t.Status),
		t.EstimatedHours, t.Frequency, t.Category, t.SuggestedDeadline, completedValue(t.CompletedAt)}
}

func memberArgs(m models.TeamMember) []any {
	return []any{m.ID, m.Name, m.Email, m.Role, m.Skills, m.Department}
}

func kpiArgs(k models.KPIEntry) []any {
	return []any{k.ID, k.Date, k.EmployeeName, k.Department, k.Name, k.Target, k.Actual, string(k.Status), string(k.Trend)}
}

func delegationArgs(d models.Delegation) []any {
	return []any{d.ID, d.TaskDelegated, d.PersonResponsible, d.Deadline, string(d.Status), d.Feedback, d.WorkloadScore}
}
