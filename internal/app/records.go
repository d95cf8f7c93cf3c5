package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/josephgoksu/OpsWing/internal/analysis"
	"github.com/josephgoksu/OpsWing/internal/telemetry"
	"github.com/josephgoksu/OpsWing/models"
)

// ListTasks returns every task in sheet order.
func (s *Service) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.store.ListTasks(ctx)
}

// CreateTask fills in defaults and analysis fields, validates and appends
// the task. A missing priority is suggested from the text and due date; a
// missing category and suggested deadline come from the engine.
func (s *Service) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.AssignedTo = strings.TrimSpace(t.AssignedTo)
	t.DueDate = strings.TrimSpace(t.DueDate)

	if t.Priority == "" {
		t.Priority = s.analyzer.SuggestPriority(t.Name, t.Description, t.DueDate).Priority
	} else if p, ok := models.ParsePriority(string(t.Priority)); ok {
		t.Priority = p
	} else {
		return models.Task{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, t.Priority)
	}

	if t.Status == "" {
		t.Status = models.StatusTodo
	} else if st, ok := models.ParseTaskStatus(string(t.Status)); ok {
		t.Status = st
	} else {
		return models.Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, t.Status)
	}
	if t.Status == models.StatusDone && t.CompletedAt == nil {
		now := s.now().UTC()
		t.CompletedAt = &now
	}
	if t.Frequency == "" {
		t.Frequency = "One-time"
	}
	if err := validate(t); err != nil {
		return models.Task{}, err
	}

	if t.Category == "" {
		t.Category = s.analyzer.CategorizeTask(t.Name, t.Description).Label
	}
	if t.SuggestedDeadline == "" {
		var hours *int
		if t.EstimatedHours > 0 {
			hours = &t.EstimatedHours
		}
		d, err := s.analyzer.SuggestDeadline(t.Name, t.Description, string(t.Priority), hours)
		if err != nil {
			return models.Task{}, err
		}
		t.SuggestedDeadline = d.SuggestedDeadline
	}

	created, err := s.store.AppendTask(ctx, t)
	if err != nil {
		return models.Task{}, err
	}
	slog.Info("task created", "id", created.ID, "category", created.Category, "priority", created.Priority)
	s.telemetry.Track(telemetry.EventRecordCreated, telemetry.Properties{"sheet": "tasks"})
	return created, nil
}

// UpdateTaskStatus parses status case-insensitively and stores it.
func (s *Service) UpdateTaskStatus(ctx context.Context, id, status string) (models.Task, error) {
	st, ok := models.ParseTaskStatus(status)
	if !ok {
		return models.Task{}, fmt.Errorf("%w: invalid status %q. Must be one of: To Do, In Progress, Done, Blocked", ErrValidation, status)
	}
	return s.store.UpdateTaskStatus(ctx, id, st)
}

// OverdueTasks returns unfinished tasks whose due date has passed.
func (s *Service) OverdueTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Overdue(tasks), nil
}

// TasksByAssignee matches the assignee case-insensitively.
func (s *Service) TasksByAssignee(ctx context.Context, assignee string) ([]models.Task, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return filterTasks(tasks, func(t models.Task) bool {
		return strings.EqualFold(strings.TrimSpace(t.AssignedTo), strings.TrimSpace(assignee))
	}), nil
}

func filterTasks(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// TaskStats counts tasks by normalized status and priority.
type TaskStats struct {
	TotalTasks        int            `json:"total_tasks"`
	StatusBreakdown   map[string]int `json:"status_breakdown"`
	PriorityBreakdown map[string]int `json:"priority_breakdown"`
	OverdueTasks      int            `json:"overdue_tasks"`
}

// TaskStats aggregates the task sheet.
func (s *Service) TaskStats(ctx context.Context) (TaskStats, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return TaskStats{}, err
	}
	stats := TaskStats{
		TotalTasks:        len(tasks),
		StatusBreakdown:   map[string]int{},
		PriorityBreakdown: map[string]int{},
		OverdueTasks:      len(s.analyzer.Overdue(tasks)),
	}
	for _, t := range tasks {
		n := t.Normalized()
		stats.StatusBreakdown[string(n.Status)]++
		stats.PriorityBreakdown[string(n.Priority)]++
	}
	return stats, nil
}

// ListTeamMembers returns the team sheet.
func (s *Service) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.store.ListTeamMembers(ctx)
}

// AddTeamMember validates and appends a member. Names are the join key for
// assignees, so duplicates are rejected.
func (s *Service) AddTeamMember(ctx context.Context, m models.TeamMember) (models.TeamMember, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	if err := validate(m); err != nil {
		return models.TeamMember{}, err
	}
	team, err := s.store.ListTeamMembers(ctx)
	if err != nil {
		return models.TeamMember{}, err
	}
	if _, exists := models.FindMember(team, m.Name); exists {
		return models.TeamMember{}, fmt.Errorf("%w: team member %q already exists", ErrValidation, m.Name)
	}
	created, err := s.store.AppendTeamMember(ctx, m)
	if err != nil {
		return models.TeamMember{}, err
	}
	s.telemetry.Track(telemetry.EventRecordCreated, telemetry.Properties{"sheet": "team"})
	return created, nil
}

// ListKPIs returns the KPI sheet.
func (s *Service) ListKPIs(ctx context.Context) ([]models.KPIEntry, error) {
	return s.store.ListKPIs(ctx)
}

// AddKPI dates the entry today when undated and rates it when no status is given.
func (s *Service) AddKPI(ctx context.Context, k models.KPIEntry) (models.KPIEntry, error) {
	if strings.TrimSpace(k.Date) == "" {
		k.Date = s.today()
	}
	if k.Status == "" {
		k.Status = models.KPIStatusFor(k.Target, k.Actual)
	} else {
		k.Status = models.NormalizeKPIStatus(string(k.Status))
	}
	if k.Trend != "" {
		k.Trend = models.NormalizeKPITrend(string(k.Trend))
	}
	if err := validate(k); err != nil {
		return models.KPIEntry{}, err
	}
	created, err := s.store.AppendKPI(ctx, k)
	if err != nil {
		return models.KPIEntry{}, err
	}
	s.telemetry.Track(telemetry.EventRecordCreated, telemetry.Properties{"sheet": "kpis"})
	return created, nil
}

// KPIAlert is an entry rated Red.
type KPIAlert struct {
	models.KPIEntry
	Severity string `json:"severity"`
}

// KPIAlerts returns Red entries; a Declining trend raises severity to High.
func (s *Service) KPIAlerts(ctx context.Context) ([]KPIAlert, error) {
	kpis, err := s.store.ListKPIs(ctx)
	if err != nil {
		return nil, err
	}
	alerts := []KPIAlert{}
	for _, k := range kpis {
		if analysis.KPIStatus(k) != models.KPIRed {
			continue
		}
		severity := "Medium"
		if models.NormalizeKPITrend(string(k.Trend)) == models.TrendDeclining {
			severity = "High"
		}
		alerts = append(alerts, KPIAlert{KPIEntry: k, Severity: severity})
	}
	return alerts, nil
}

// GroupPerformance counts statuses within a department or employee.
type GroupPerformance struct {
	Green           int     `json:"Green"`
	Yellow          int     `json:"Yellow"`
	Red             int     `json:"Red"`
	Total           int     `json:"total"`
	GreenPercentage float64 `json:"green_percentage"`
}

func (g *GroupPerformance) add(st models.KPIStatus) {
	switch st {
	case models.KPIGreen:
		g.Green++
	case models.KPIYellow:
		g.Yellow++
	case models.KPIRed:
		g.Red++
	}
	g.Total++
	g.GreenPercentage = float64(int(float64(g.Green)/float64(g.Total)*1000+0.5)) / 10
}

// KPIDashboard summarizes the KPI sheet.
type KPIDashboard struct {
	TotalKPIs             int                          `json:"total_kpis"`
	StatusSummary         map[models.KPIStatus]int     `json:"status_summary"`
	DepartmentPerformance map[string]*GroupPerformance `json:"department_performance"`
	EmployeePerformance   map[string]*GroupPerformance `json:"employee_performance"`
	RecentKPIs            []models.KPIEntry            `json:"recent_kpis"`
}

const recentKPIs = 10

// KPIDashboard aggregates statuses overall, by department and by employee.
func (s *Service) KPIDashboard(ctx context.Context) (KPIDashboard, error) {
	kpis, err := s.store.ListKPIs(ctx)
	if err != nil {
		return KPIDashboard{}, err
	}
	d := KPIDashboard{
		TotalKPIs:             len(kpis),
		StatusSummary:         map[models.KPIStatus]int{models.KPIGreen: 0, models.KPIYellow: 0, models.KPIRed: 0},
		DepartmentPerformance: map[string]*GroupPerformance{},
		EmployeePerformance:   map[string]*GroupPerformance{},
		RecentKPIs:            kpis,
	}
	if len(kpis) > recentKPIs {
		d.RecentKPIs = kpis[len(kpis)-recentKPIs:]
	}
	for _, k := range kpis {
		st := analysis.KPIStatus(k)
		if _, ok := d.StatusSummary[st]; ok {
			d.StatusSummary[st]++
		}
		group(d.DepartmentPerformance, orUnknown(k.Department)).add(st)
		group(d.EmployeePerformance, orUnknown(k.EmployeeName)).add(st)
	}
	return d, nil
}

func group(m map[string]*GroupPerformance, key string) *GroupPerformance {
	g, ok := m[key]
	if !ok {
		g = &GroupPerformance{}
		m[key] = g
	}
	return g
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

// ListDelegations returns the delegation sheet.
func (s *Service) ListDelegations(ctx context.Context) ([]models.Delegation, error) {
	return s.store.ListDelegations(ctx)
}

// AddDelegation defaults status to Pending and a zero workload score to 5.
func (s *Service) AddDelegation(ctx context.Context, d models.Delegation) (models.Delegation, error) {
	if d.Status == "" {
		d.Status = models.DelegationPending
	} else if st, ok := models.ParseDelegationStatus(string(d.Status)); ok {
		d.Status = st
	} else {
		return models.Delegation{}, fmt.Errorf("%w: unknown delegation status %q", ErrValidation, d.Status)
	}
	if d.WorkloadScore == 0 {
		d.WorkloadScore = models.DefaultWorkloadScore
	}
	if err := validate(d); err != nil {
		return models.Delegation{}, err
	}
	created, err := s.store.AppendDelegation(ctx, d)
	if err != nil {
		return models.Delegation{}, err
	}
	s.telemetry.Track(telemetry.EventRecordCreated, telemetry.Properties{"sheet": "delegations"})
	return created, nil
}

// UpdateDelegationStatus parses status case-insensitively and stores it.
func (s *Service) UpdateDelegationStatus(ctx context.Context, id, status string) (models.Delegation, error) {
	st, ok := models.ParseDelegationStatus(status)
	if !ok {
		return models.Delegation{}, fmt.Errorf("%w: invalid status %q. Must be one of: Pending, In Progress, Complete", ErrValidation, status)
	}
	return s.store.UpdateDelegationStatus(ctx, id, st)
}

// OverdueDelegations returns open delegations past their deadline.
func (s *Service) OverdueDelegations(ctx context.Context) ([]models.Delegation, error) {
	all, err := s.store.ListDelegations(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := []models.Delegation{}
	for _, d := range all {
		if d.IsOverdue(now) {
			out = append(out, d)
		}
	}
	return out, nil
}

// DelegationLoad summarizes one member's delegations.
type DelegationLoad struct {
	Name               string  `json:"name"`
	Department         string  `json:"department,omitempty"`
	Role               string  `json:"role,omitempty"`
	TotalDelegations   int     `json:"total_delegations"`
	Pending            int     `json:"pending"`
	InProgress         int     `json:"in_progress"`
	Completed          int     `json:"completed"`
	TotalWorkloadScore float64 `json:"total_workload_score"`
}

// DelegationWorkload reports delegations per team member, in team order.
// Delegations to people outside the team are not counted.
func (s *Service) DelegationWorkload(ctx context.Context) ([]DelegationLoad, error) {
	team, err := s.store.ListTeamMembers(ctx)
	if err != nil {
		return nil, err
	}
	delegations, err := s.store.ListDelegations(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DelegationLoad, 0, len(team))
	index := make(map[string]int, len(team))
	for _, m := range team {
		if _, dup := index[m.Name]; dup {
			continue
		}
		index[m.Name] = len(out)
		out = append(out, DelegationLoad{Name: m.Name, Department: m.Department, Role: m.Role})
	}
	for _, d := range delegations {
		i, ok := index[d.PersonResponsible]
		if !ok {
			continue
		}
		load := &out[i]
		load.TotalDelegations++
		load.TotalWorkloadScore += d.WorkloadScore
		switch models.NormalizeDelegationStatus(string(d.Status)) {
		case models.DelegationPending:
			load.Pending++
		case models.DelegationInProgress:
			load.InProgress++
		case models.DelegationComplete:
			load.Completed++
		}
	}
	return out, nil
}

// KPIsByEmployee matches the employee name case-insensitively.
func (s *Service) KPIsByEmployee(ctx context.Context, employee string) ([]models.KPIEntry, error) {
	return s.filterKPIs(ctx, func(k models.KPIEntry) bool { return strings.EqualFold(k.EmployeeName, employee) })
}

// KPIsByDepartment matches the department case-insensitively.
func (s *Service) KPIsByDepartment(ctx context.Context, department string) ([]models.KPIEntry, error) {
	return s.filterKPIs(ctx, func(k models.KPIEntry) bool { return strings.EqualFold(k.Department, department) })
}

func (s *Service) filterKPIs(ctx context.Context, keep func(models.KPIEntry) bool) ([]models.KPIEntry, error) {
	kpis, err := s.store.ListKPIs(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.KPIEntry{}
	for _, k := range kpis {
		if keep(k) {
			out = append(out, k)
		}
	}
	return out, nil
}

// EmployeeKPITrends groups one employee's entries by KPI name, oldest first.
type EmployeeKPITrends struct {
	Employee string                       `json:"employee"`
	Trends   map[string][]models.KPIEntry `json:"kpi_trends"`
}

// KPITrends returns an employee's KPI history grouped by KPI name.
func (s *Service) KPITrends(ctx context.Context, employee string) (EmployeeKPITrends, error) {
	kpis, err := s.KPIsByEmployee(ctx, employee)
	if err != nil {
		return EmployeeKPITrends{}, err
	}
	out := EmployeeKPITrends{Employee: employee, Trends: map[string][]models.KPIEntry{}}
	for _, k := range kpis {
		out.Trends[k.Name] = append(out.Trends[k.Name], k)
	}
	for _, entries := range out.Trends {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	}
	return out, nil
}

// PerformerSummary is one employee's share of Green entries in a month.
type PerformerSummary struct {
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	GreenPercentage float64 `json:"green_percentage"`
	TotalKPIs       int     `json:"total_kpis"`
}

// MonthlyKPISummary covers the entries dated in one calendar month.
type MonthlyKPISummary struct {
	Month             string                       `json:"month"`
	TotalEntries      int                          `json:"total_entries"`
	StatusBreakdown   map[models.KPIStatus]int     `json:"status_breakdown"`
	DepartmentSummary map[string]*GroupPerformance `json:"department_summary"`
	TopPerformers     []PerformerSummary           `json:"top_performers"`
	ImprovementNeeded []PerformerSummary           `json:"improvement_needed"`
}

const (
	topPerformerPct      = 80
	improvementNeededPct = 50
)

// MonthlyKPISummary summarizes the current month. Employees at or above 80%
// Green are top performers; below 50% need improvement.
func (s *Service) MonthlyKPISummary(ctx context.Context) (MonthlyKPISummary, error) {
	month := s.now().Format("2006-01")
	kpis, err := s.filterKPIs(ctx, func(k models.KPIEntry) bool { return strings.HasPrefix(k.Date, month) })
	if err != nil {
		return MonthlyKPISummary{}, err
	}

	sum := MonthlyKPISummary{
		Month:             month,
		TotalEntries:      len(kpis),
		StatusBreakdown:   map[models.KPIStatus]int{models.KPIGreen: 0, models.KPIYellow: 0, models.KPIRed: 0},
		DepartmentSummary: map[string]*GroupPerformance{},
		TopPerformers:     []PerformerSummary{},
		ImprovementNeeded: []PerformerSummary{},
	}
	employees := map[string]*GroupPerformance{}
	var order []string
	departments := map[string]string{}
	for _, k := range kpis {
		st := analysis.KPIStatus(k)
		if _, ok := sum.StatusBreakdown[st]; ok {
			sum.StatusBreakdown[st]++
		}
		group(sum.DepartmentSummary, k.Department).add(st)
		if _, seen := employees[k.EmployeeName]; !seen {
			order = append(order, k.EmployeeName)
			departments[k.EmployeeName] = k.Department
		}
		group(employees, k.EmployeeName).add(st)
	}

	for _, name := range order {
		g := employees[name]
		p := PerformerSummary{Name: name, Department: departments[name], GreenPercentage: g.GreenPercentage, TotalKPIs: g.Total}
		switch {
		case g.GreenPercentage >= topPerformerPct:
			sum.TopPerformers = append(sum.TopPerformers, p)
		case g.GreenPercentage < improvementNeededPct:
			sum.ImprovementNeeded = append(sum.ImprovementNeeded, p)
		}
	}
	sort.SliceStable(sum.TopPerformers, func(i, j int) bool {
		return sum.TopPerformers[i].GreenPercentage > sum.TopPerformers[j].GreenPercentage
	})
	sort.SliceStable(sum.ImprovementNeeded, func(i, j int) bool {
		return sum.ImprovementNeeded[i].GreenPercentage < sum.ImprovementNeeded[j].GreenPercentage
	})
	return sum, nil
}

// DelegationsByPerson matches the person responsible case-insensitively.
func (s *Service) DelegationsByPerson(ctx context.Context, person string) ([]models.Delegation, error) {
	all, err := s.store.ListDelegations(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Delegation{}
	for _, d := range all {
		if strings.EqualFold(d.PersonResponsible, person) {
			out = append(out, d)
		}
	}
	return out, nil
}
