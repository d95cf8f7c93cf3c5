package server

import (
	"fmt"
	"net/http"

	"github.com/josephgoksu/OpsWing/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]string{"status": "healthy"}, "OpsWing API is running")
}

// Tasks

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.ListTasks(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve tasks")
		return
	}
	writeOK(w, tasks, fmt.Sprintf("Retrieved %d tasks", len(tasks)))
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var t models.Task
	if err := decode(r, &t, false); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	created, err := s.svc.CreateTask(r.Context(), t)
	if err != nil {
		writeError(w, r, err, "Failed to create task")
		return
	}
	writeCreated(w, created, "Task created successfully")
}

func (s *Server) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	task, err := s.svc.UpdateTaskStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, r, err, "Failed to update task status")
		return
	}
	writeOK(w, task, fmt.Sprintf("Task status updated to %s", task.Status))
}

func (s *Server) handleOverdueTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.OverdueTasks(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve overdue tasks")
		return
	}
	writeOK(w, tasks, fmt.Sprintf("Found %d overdue tasks", len(tasks)))
}

func (s *Server) handleTaskStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.TaskStats(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve task statistics")
		return
	}
	writeOK(w, stats, "Task statistics retrieved successfully")
}

func (s *Server) handleTasksByAssignee(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	tasks, err := s.svc.TasksByAssignee(r.Context(), name)
	if err != nil {
		writeError(w, r, err, "Failed to retrieve tasks")
		return
	}
	writeOK(w, tasks, fmt.Sprintf("Retrieved %d tasks for %s", len(tasks), name))
}

// Team

func (s *Server) handleListTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.svc.ListTeamMembers(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve team members")
		return
	}
	writeOK(w, team, fmt.Sprintf("Retrieved %d team members", len(team)))
}

func (s *Server) handleAddTeamMember(w http.ResponseWriter, r *http.Request) {
	var m models.TeamMember
	if err := decode(r, &m, false); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	created, err := s.svc.AddTeamMember(r.Context(), m)
	if err != nil {
		writeError(w, r, err, "Failed to add team member")
		return
	}
	writeCreated(w, created, "Team member added successfully")
}

// KPIs

func (s *Server) handleListKPIs(w http.ResponseWriter, r *http.Request) {
	kpis, err := s.svc.ListKPIs(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve KPIs")
		return
	}
	writeOK(w, kpis, fmt.Sprintf("Retrieved %d KPI entries", len(kpis)))
}

func (s *Server) handleAddKPI(w http.ResponseWriter, r *http.Request) {
	var k models.KPIEntry
	if err := decode(r, &k, false); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	created, err := s.svc.AddKPI(r.Context(), k)
	if err != nil {
		writeError(w, r, err, "Failed to create KPI entry")
		return
	}
	writeCreated(w, created, "KPI entry created successfully")
}

func (s *Server) handleKPIAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.svc.KPIAlerts(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve KPI alerts")
		return
	}
	writeOK(w, alerts, fmt.Sprintf("Found %d KPI alerts", len(alerts)))
}

func (s *Server) handleKPIDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.KPIDashboard(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve KPI dashboard")
		return
	}
	writeOK(w, d, "KPI dashboard data retrieved successfully")
}

func (s *Server) handleMonthlyKPISummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.MonthlyKPISummary(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve monthly KPI summary")
		return
	}
	writeOK(w, sum, "Monthly KPI summary retrieved successfully")
}

func (s *Server) handleKPIsByEmployee(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	kpis, err := s.svc.KPIsByEmployee(r.Context(), name)
	if err != nil {
		writeError(w, r, err, "Failed to retrieve KPIs")
		return
	}
	writeOK(w, kpis, fmt.Sprintf("Retrieved %d KPIs for %s", len(kpis), name))
}

func (s *Server) handleKPIsByDepartment(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	kpis, err := s.svc.KPIsByDepartment(r.Context(), name)
	if err != nil {
		writeError(w, r, err, "Failed to retrieve KPIs")
		return
	}
	writeOK(w, kpis, fmt.Sprintf("Retrieved %d KPIs for %s department", len(kpis), name))
}

func (s *Server) handleKPITrends(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	trends, err := s.svc.KPITrends(r.Context(), name)
	if err != nil {
		writeError(w, r, err, "Failed to retrieve KPI trends")
		return
	}
	writeOK(w, trends, fmt.Sprintf("KPI trends for %s retrieved successfully", name))
}

// Delegations

func (s *Server) handleListDelegations(w http.ResponseWriter, r *http.Request) {
	ds, err := s.svc.ListDelegations(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve delegations")
		return
	}
	writeOK(w, ds, fmt.Sprintf("Retrieved %d delegations", len(ds)))
}

func (s *Server) handleAddDelegation(w http.ResponseWriter, r *http.Request) {
	var d models.Delegation
	if err := decode(r, &d, false); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	created, err := s.svc.AddDelegation(r.Context(), d)
	if err != nil {
		writeError(w, r, err, "Failed to create delegation")
		return
	}
	writeCreated(w, created, "Delegation created successfully")
}

func (s *Server) handleUpdateDelegationStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	d, err := s.svc.UpdateDelegationStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, r, err, "Failed to update delegation status")
		return
	}
	writeOK(w, d, fmt.Sprintf("Delegation status updated to %s", d.Status))
}

func (s *Server) handleOverdueDelegations(w http.ResponseWriter, r *http.Request) {
	ds, err := s.svc.OverdueDelegations(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve overdue delegations")
		return
	}
	writeOK(w, ds, fmt.Sprintf("Found %d overdue delegations", len(ds)))
}

func (s *Server) handleDelegationWorkload(w http.ResponseWriter, r *http.Request) {
	loads, err := s.svc.DelegationWorkload(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to retrieve workload summary")
		return
	}
	writeOK(w, loads, "Workload summary retrieved successfully")
}

func (s *Server) handleDelegationsByPerson(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ds, err := s.svc.DelegationsByPerson(r.Context(), name)
	if err != nil {
		writeError(w, r, err, "Failed to retrieve delegations")
		return
	}
	writeOK(w, ds, fmt.Sprintf("Retrieved %d delegations for %s", len(ds), name))
}
