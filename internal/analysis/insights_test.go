package analysis

import (
	"testing"

	"github.com/josephgoksu/OpsWing/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	tasks := []models.Task{
		{Name: "Done", Status: models.StatusDone, DueDate: "2025-05-01"},
		{Name: "Late", Status: models.StatusTodo, DueDate: "2025-06-01"},
		{Name: "Future", Status: models.StatusInProgress, DueDate: "2025-07-01"},
		{Name: "Undated", Status: models.StatusTodo, DueDate: "tbd"},
	}
	kpis := []models.KPIEntry{
		{Name: "Revenue", Status: models.KPIRed},
		{Name: "NPS", Status: "yellow"},
		{Name: "Uptime", Status: models.KPIGreen},
		{Name: "Leads", Target: 100, Actual: 50},
	}

	in := a.Summarize(tasks, kpis)

	assert.Equal(t, 4, in.Metrics.TotalTasks)
	assert.Equal(t, 1, in.Metrics.CompletedTasks)
	assert.InDelta(t, 25.0, in.Metrics.CompletionRate, 0.001)
	assert.Equal(t, 1, in.Metrics.OverdueTasks)
	assert.Equal(t, 3, in.Metrics.UnderperformingKPIs)
	assert.Equal(t, 2, in.Metrics.KPIStatusCounts[models.KPIRed])

	assert.Equal(t, []string{"Low task completion rate of 25.0% needs attention"}, in.PerformanceInsights)
	assert.Equal(t, []string{"1 tasks are overdue and require immediate action"}, in.Alerts)
	assert.Equal(t, []string{"Performance concern: 3 KPIs are underperforming"}, in.TrendAnalysis)
	require.Len(t, in.Recommendations, 3)
	assert.Equal(t, "Monthly KPI reviews can help maintain performance standards", in.Recommendations[2])
}

func TestSummarize_Empty(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	in := a.Summarize(nil, nil)
	assert.Zero(t, in.Metrics.CompletionRate)
	assert.Equal(t, []string{"Low task completion rate of 0.0% needs attention"}, in.PerformanceInsights)
	assert.Empty(t, in.Alerts)
	assert.NotNil(t, in.Alerts)
	assert.Empty(t, in.TrendAnalysis)
	assert.Len(t, in.Recommendations, 3)
}

func TestSummarize_AllDone(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	in := a.Summarize([]models.Task{
		{Name: "One", Status: "completed", DueDate: "2025-01-01"},
		{Name: "Two", Status: models.StatusDone},
	}, []models.KPIEntry{{Name: "Uptime", Target: 100, Actual: 99}})

	assert.InDelta(t, 100.0, in.Metrics.CompletionRate, 0.001)
	assert.Empty(t, in.PerformanceInsights)
	assert.Empty(t, in.Alerts)
	assert.Empty(t, in.TrendAnalysis)
}

func TestIsOverdue(t *testing.T) {
	assert.True(t, IsOverdue(models.Task{DueDate: "2025-06-09"}, fixedNow))
	assert.True(t, IsOverdue(models.Task{DueDate: "2025-06-10"}, fixedNow), "midnight of today is before now")
	assert.False(t, IsOverdue(models.Task{DueDate: "2025-06-11"}, fixedNow))
	assert.False(t, IsOverdue(models.Task{DueDate: "2025-06-09", Status: models.StatusDone}, fixedNow))
	assert.False(t, IsOverdue(models.Task{DueDate: "06/09/2025"}, fixedNow))
}

func TestPredictPerformanceTrend(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	kpis := []models.KPIEntry{
		{Name: "Revenue", Date: "2025-06-01", Target: 100, Actual: 90},
		{Name: "NPS", Date: "2025-06-01", Target: 50, Actual: 30, Trend: "declining"},
		{Name: "Revenue", Date: "2025-05-01", Target: 100, Actual: 80},
		{Name: "Churn", Date: "2025-05-01", Target: 100, Actual: 50},
		{Name: "Churn", Date: "2025-06-01", Target: 100, Actual: 49},
	}

	tr := a.PredictPerformanceTrend(kpis)
	require.Len(t, tr.Predictions, 3)

	rev := tr.Predictions[0]
	assert.Equal(t, "Revenue", rev.KPIName)
	assert.Equal(t, 2, rev.Entries)
	assert.Equal(t, models.TrendImproving, rev.Direction)
	assert.InDelta(t, 90.0, rev.LastAttainment, 0.001)
	assert.InDelta(t, 100.0, rev.ProjectedAttainment, 0.001)

	nps := tr.Predictions[1]
	assert.Equal(t, models.TrendDeclining, nps.Direction)
	assert.InDelta(t, 60.0, nps.ProjectedAttainment, 0.001)

	assert.Equal(t, models.TrendStable, tr.Predictions[2].Direction)

	assert.Equal(t, 1, tr.Improving)
	assert.Equal(t, 1, tr.Declining)
	assert.Equal(t, 1, tr.Stable)
	assert.Equal(t, "Stable", tr.OverallOutlook)
	assert.Equal(t, []string{"Review NPS: attainment fell to 60.0%"}, tr.Recommendations)
}

func TestPredictPerformanceTrend_ClampsProjection(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())

	tr := a.PredictPerformanceTrend([]models.KPIEntry{
		{Name: "Sales", Date: "2025-05-01", Target: 100, Actual: 30},
		{Name: "Sales", Date: "2025-06-01", Target: 100, Actual: 5},
	})
	require.Len(t, tr.Predictions, 1)
	assert.Zero(t, tr.Predictions[0].ProjectedAttainment)
	assert.Equal(t, "Declining", tr.OverallOutlook)
}

func TestPredictPerformanceTrend_Empty(t *testing.T) {
	a := newTestAnalyzer(t, DefaultConfig())
	tr := a.PredictPerformanceTrend(nil)
	assert.Equal(t, "Insufficient data", tr.OverallOutlook)
	assert.NotNil(t, tr.Predictions)
}
