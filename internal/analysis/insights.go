package analysis

import (
	"fmt"
	"time"

	"github.com/josephgoksu/OpsWing/models"
)

// InsightMetrics are the figures behind an Insights report.
type InsightMetrics struct {
	TotalTasks          int                      `json:"total_tasks"`
	CompletedTasks      int                      `json:"completed_tasks"`
	CompletionRate      float64                  `json:"completion_rate"`
	OverdueTasks        int                      `json:"overdue_tasks"`
	UnderperformingKPIs int                      `json:"underperforming_kpis"`
	KPIStatusCounts     map[models.KPIStatus]int `json:"kpi_status_counts"`
}

// Insights is the aggregate report produced by Summarize.
type Insights struct {
	PerformanceInsights []string       `json:"performance_insights"`
	TrendAnalysis       []string       `json:"trend_analysis"`
	Recommendations     []string       `json:"recommendations"`
	Alerts              []string       `json:"alerts"`
	Metrics             InsightMetrics `json:"metrics"`
}

const lowCompletionThreshold = 70

var standingRecommendations = []string{
	"Regular team check-ins can help identify bottlenecks early",
	"Consider implementing automated task reminders for better deadline management",
	"Monthly KPI reviews can help maintain performance standards",
}

// IsOverdue reports whether an unfinished task's due date lies before now.
// Tasks without a parseable due date are never overdue.
func IsOverdue(t models.Task, now time.Time) bool {
	if t.IsDone() {
		return false
	}
	due, ok := t.Due()
	return ok && due.Before(now)
}

// Overdue returns the overdue tasks in input order.
func (a *Analyzer) Overdue(tasks []models.Task) []models.Task {
	now := a.now()
	out := make([]models.Task, 0)
	for _, t := range tasks {
		if IsOverdue(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// KPIStatus returns the recorded status, or rates the entry when none was recorded.
func KPIStatus(k models.KPIEntry) models.KPIStatus {
	if st := models.NormalizeKPIStatus(string(k.Status)); st != models.KPIUnknown {
		return st
	}
	if k.Target > 0 {
		return models.KPIStatusFor(k.Target, k.Actual)
	}
	return models.KPIUnknown
}

// Summarize derives threshold alerts from a task and KPI snapshot.
func (a *Analyzer) Summarize(tasks []models.Task, kpis []models.KPIEntry) Insights {
	m := InsightMetrics{
		TotalTasks:      len(tasks),
		KPIStatusCounts: make(map[models.KPIStatus]int),
	}
	for _, t := range tasks {
		if t.IsDone() {
			m.CompletedTasks++
		}
	}
	if m.TotalTasks > 0 {
		m.CompletionRate = round2(float64(m.CompletedTasks) / float64(m.TotalTasks) * 100)
	}
	m.OverdueTasks = len(a.Overdue(tasks))
	for _, k := range kpis {
		m.KPIStatusCounts[KPIStatus(k)]++
	}
	m.UnderperformingKPIs = m.KPIStatusCounts[models.KPIRed] + m.KPIStatusCounts[models.KPIYellow]

	out := Insights{
		PerformanceInsights: []string{},
		TrendAnalysis:       []string{},
		Recommendations:     []string{},
		Alerts:              []string{},
		Metrics:             m,
	}
	if m.CompletionRate < lowCompletionThreshold {
		out.PerformanceInsights = append(out.PerformanceInsights,
			fmt.Sprintf("Low task completion rate of %.1f%% needs attention", m.CompletionRate))
	}
	if m.OverdueTasks > 0 {
		out.Alerts = append(out.Alerts,
			fmt.Sprintf("%d tasks are overdue and require immediate action", m.OverdueTasks))
	}
	if m.UnderperformingKPIs > 0 {
		out.TrendAnalysis = append(out.TrendAnalysis,
			fmt.Sprintf("Performance concern: %d KPIs are underperforming", m.UnderperformingKPIs))
	}
	out.Recommendations = append(out.Recommendations, standingRecommendations...)
	return out
}
