package server

import "net/http"

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	// Tasks
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("PUT /api/tasks/{id}/status", s.handleUpdateTaskStatus)
	mux.HandleFunc("GET /api/tasks/overdue", s.handleOverdueTasks)
	mux.HandleFunc("GET /api/tasks/stats", s.handleTaskStats)
	mux.HandleFunc("GET /api/tasks/by-assignee/{name}", s.handleTasksByAssignee)

	// Team
	mux.HandleFunc("GET /api/team", s.handleListTeam)
	mux.HandleFunc("POST /api/team", s.handleAddTeamMember)

	// KPIs
	mux.HandleFunc("GET /api/kpis", s.handleListKPIs)
	mux.HandleFunc("POST /api/kpis", s.handleAddKPI)
	mux.HandleFunc("GET /api/kpis/alerts", s.handleKPIAlerts)
	mux.HandleFunc("GET /api/kpis/dashboard", s.handleKPIDashboard)
	mux.HandleFunc("GET /api/kpis/monthly-summary", s.handleMonthlyKPISummary)
	mux.HandleFunc("GET /api/kpis/by-employee/{name}", s.handleKPIsByEmployee)
	mux.HandleFunc("GET /api/kpis/by-department/{name}", s.handleKPIsByDepartment)
	mux.HandleFunc("GET /api/kpis/trends/{name}", s.handleKPITrends)

	// Delegations
	mux.HandleFunc("GET /api/delegations", s.handleListDelegations)
	mux.HandleFunc("POST /api/delegations", s.handleAddDelegation)
	mux.HandleFunc("PUT /api/delegations/{id}/status", s.handleUpdateDelegationStatus)
	mux.HandleFunc("GET /api/delegations/overdue", s.handleOverdueDelegations)
	mux.HandleFunc("GET /api/delegations/workload-summary", s.handleDelegationWorkload)
	mux.HandleFunc("GET /api/delegations/by-person/{name}", s.handleDelegationsByPerson)

	// Analysis engine
	mux.HandleFunc("POST /api/ai/categorize-task", s.handleCategorizeTask)
	mux.HandleFunc("POST /api/ai/suggest-priority", s.handleSuggestPriority)
	mux.HandleFunc("POST /api/ai/suggest-deadline", s.handleSuggestDeadline)
	mux.HandleFunc("POST /api/ai/break-down-task", s.handleBreakDownTask)
	mux.HandleFunc("POST /api/ai/smart-task-assignment", s.handleSmartAssignment)
	mux.HandleFunc("POST /api/ai/optimize-schedule", s.handleOptimizeSchedule)
	mux.HandleFunc("GET /api/ai/analyze-workload", s.handleAnalyzeWorkload)
	mux.HandleFunc("GET /api/ai/generate-insights", s.handleGenerateInsights)
	mux.HandleFunc("GET /api/ai/predict-performance", s.handlePredictPerformance)

	// Notifications are served under both the short name and the send- name.
	for name, h := range map[string]http.HandlerFunc{
		"task-assignment":   s.handleNotifyTaskAssignment,
		"daily-summary":     s.handleNotifyDailySummary,
		"overdue-reminders": s.handleNotifyOverdue,
		"kpi-alerts":        s.handleNotifyKPIAlerts,
		"weekly-report":     s.handleNotifyWeeklyReport,
	} {
		mux.HandleFunc("POST /api/notifications/"+name, h)
		mux.HandleFunc("POST /api/notifications/send-"+name, h)
	}

	return s.corsMiddleware(logRequests(recoverMiddleware(mux)))
}
