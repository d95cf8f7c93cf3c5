package server

import (
	"net/http"

	"github.com/josephgoksu/OpsWing/internal/analysis"
)

func (s *Server) handleCategorizeTask(w http.ResponseWriter, r *http.Request) {
	var req TaskTextRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	writeOK(w, s.svc.CategorizeTask(req.TaskName, req.TaskDescription), "Task categorized successfully")
}

func (s *Server) handleSuggestPriority(w http.ResponseWriter, r *http.Request) {
	var req TaskTextRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	writeOK(w, s.svc.SuggestPriority(req.TaskName, req.TaskDescription, req.DueDate), "Priority suggested successfully")
}

func (s *Server) handleSuggestDeadline(w http.ResponseWriter, r *http.Request) {
	var req DeadlineRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	d, err := s.svc.SuggestDeadline(req.TaskName, req.TaskDescription, req.Priority, req.EstimatedHours)
	if err != nil {
		writeError(w, r, err, "Failed to suggest deadline")
		return
	}
	writeOK(w, d, "Deadline suggested successfully")
}

func (s *Server) handleBreakDownTask(w http.ResponseWriter, r *http.Request) {
	var req BreakdownRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	if req.TeamSize == 0 {
		req.TeamSize = 1
	}
	b, err := s.svc.BreakDownTask(req.TaskName, req.TaskDescription, *req.EstimatedHours, req.TeamSize)
	if err != nil {
		writeError(w, r, err, "Failed to break down task")
		return
	}
	writeOK(w, b, "Task breakdown completed successfully")
}

func (s *Server) handleSmartAssignment(w http.ResponseWriter, r *http.Request) {
	var req analysis.AssignmentRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	rec, err := s.svc.RecommendAssignment(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "Failed to generate smart assignment")
		return
	}
	writeOK(w, rec, "Smart task assignment completed successfully")
}

func (s *Server) handleOptimizeSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := decode(r, &req, true); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	opt, err := s.svc.OptimizeSchedule(r.Context(), req.Tasks)
	if err != nil {
		writeError(w, r, err, "Failed to optimize schedule")
		return
	}
	writeOK(w, opt, "Schedule optimization completed successfully")
}

func (s *Server) handleAnalyzeWorkload(w http.ResponseWriter, r *http.Request) {
	wl, err := s.svc.AnalyzeWorkload(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to analyze workload")
		return
	}
	writeOK(w, wl, "Workload analysis completed successfully")
}

func (s *Server) handleGenerateInsights(w http.ResponseWriter, r *http.Request) {
	in, err := s.svc.GenerateInsights(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to generate insights")
		return
	}
	writeOK(w, in, "AI insights generated successfully")
}

func (s *Server) handlePredictPerformance(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.PredictPerformance(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to predict performance")
		return
	}
	writeOK(w, p, "Performance prediction completed successfully")
}
