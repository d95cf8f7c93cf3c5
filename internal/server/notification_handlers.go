package server

import (
	"fmt"
	"net/http"

	"github.com/josephgoksu/OpsWing/internal/app"
)

func (s *Server) handleNotifyTaskAssignment(w http.ResponseWriter, r *http.Request) {
	var req app.TaskAssignmentRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	msg, err := s.svc.SendTaskAssignment(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "Failed to send task assignment notification")
		return
	}
	writeOK(w, msg, "Task assignment notification sent successfully")
}

func (s *Server) handleNotifyDailySummary(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.SendDailySummary(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to send daily summaries")
		return
	}
	writeOK(w, report, fmt.Sprintf("Daily summaries sent to %d employees", report.Sent))
}

func (s *Server) handleNotifyOverdue(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.SendOverdueReminders(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to send overdue reminders")
		return
	}
	writeOK(w, report, fmt.Sprintf("Overdue reminders sent to %d employees", report.Sent))
}

func (s *Server) handleNotifyKPIAlerts(w http.ResponseWriter, r *http.Request) {
	var req RecipientRequest
	if err := decode(r, &req, true); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	report, err := s.svc.SendKPIAlerts(r.Context(), app.Recipient{Email: req.ManagerEmail, Name: req.ManagerName})
	if err != nil {
		writeError(w, r, err, "Failed to send KPI alerts")
		return
	}
	if !report.Sent {
		writeOK(w, report, app.NoKPIAlertsMessage)
		return
	}
	writeOK(w, report, fmt.Sprintf("KPI alert sent with %d underperforming metrics", report.AlertCount))
}

func (s *Server) handleNotifyWeeklyReport(w http.ResponseWriter, r *http.Request) {
	var req RecipientRequest
	if err := decode(r, &req, true); err != nil {
		writeError(w, r, err, "Invalid request data")
		return
	}
	report, err := s.svc.SendWeeklyReport(r.Context(), app.Recipient{Email: req.RecipientEmail, Name: req.RecipientName})
	if err != nil {
		writeError(w, r, err, "Failed to send weekly report")
		return
	}
	writeOK(w, report, "Weekly report sent successfully")
}
