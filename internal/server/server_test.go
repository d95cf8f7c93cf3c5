package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/josephgoksu/OpsWing/internal/app"
	"github.com/josephgoksu/OpsWing/internal/logger"
	"github.com/josephgoksu/OpsWing/internal/notify"
	"github.com/josephgoksu/OpsWing/models"
	"github.com/josephgoksu/OpsWing/store"
	"github.com/josephgoksu/OpsWing/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler http.Handler
	store   *store.FileStore
	sender  *notify.MemorySender
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	fs, err := store.NewFileStore(afero.NewMemMapFs(), "/ops/workbook.json", "")
	require.NoError(t, err)
	sender := notify.NewMemorySender()
	svc := app.New(app.Options{
		Store:    fs,
		Notifier: notify.NewNotifier(nil, sender, ""),
		Now:      func() time.Time { return time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC) },
	})
	srv := New(types.ServerConfig{Port: 5000, AllowedOrigins: []string{"http://localhost:3000"}}, svc)
	return testEnv{handler: srv.Handler(), store: fs, sender: sender}
}

func (e testEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var resp Response
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

// dataAs re-decodes the envelope's data field into v.
func dataAs(t *testing.T, resp Response, v any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec, resp := env.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
}

func TestTaskEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
		"task_name":   "Build REST API for customer data",
		"assigned_to": "Ada",
		"due_date":    "2025-06-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.Task
	dataAs(t, resp, &created)
	assert.Equal(t, "1", created.ID)
	assert.Equal(t, "Development", created.Category)
	assert.NotEmpty(t, created.SuggestedDeadline)

	rec, resp = env.do(t, http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var tasks []models.Task
	dataAs(t, resp, &tasks)
	assert.Len(t, tasks, 1)

	rec, resp = env.do(t, http.MethodGet, "/api/tasks/overdue", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Found 1 overdue tasks", resp.Message)

	rec, _ = env.do(t, http.MethodGet, "/api/tasks/by-assignee/ada", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = env.do(t, http.MethodGet, "/api/tasks/stats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var stats app.TaskStats
	dataAs(t, resp, &stats)
	assert.Equal(t, 1, stats.TotalTasks)

	rec, resp = env.do(t, http.MethodPut, "/api/tasks/1/status", map[string]string{"status": "Done"})
	assert.Equal(t, http.StatusOK, rec.Code)
	var updated models.Task
	dataAs(t, resp, &updated)
	assert.Equal(t, models.StatusDone, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestErrorMapping(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"bad json", http.MethodPost, "/api/tasks", "{not json", http.StatusBadRequest},
		{"missing task name", http.MethodPost, "/api/tasks", map[string]any{"assigned_to": "Ada"}, http.StatusBadRequest},
		{"unknown task", http.MethodPut, "/api/tasks/42/status", map[string]string{"status": "Done"}, http.StatusNotFound},
		{"invalid status", http.MethodPut, "/api/tasks/42/status", map[string]string{"status": "Paused"}, http.StatusBadRequest},
		{"missing status", http.MethodPut, "/api/tasks/42/status", map[string]string{}, http.StatusBadRequest},
		{"empty team", http.MethodPost, "/api/ai/smart-task-assignment", map[string]string{"task_name": "Ship"}, http.StatusBadRequest},
		{"breakdown without hours", http.MethodPost, "/api/ai/break-down-task", map[string]any{"task_name": "Ship"}, http.StatusBadRequest},
		{"negative hours", http.MethodPost, "/api/ai/break-down-task", map[string]any{"task_name": "Ship", "estimated_hours": -1}, http.StatusBadRequest},
		{"assignment without email", http.MethodPost, "/api/notifications/task-assignment", map[string]any{"assignee_name": "Ada"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := env.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestAIEndpoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.store.AppendTeamMember(ctx, models.TeamMember{Name: "A", Skills: "python"})
	require.NoError(t, err)
	_, err = env.store.AppendTeamMember(ctx, models.TeamMember{Name: "B"})
	require.NoError(t, err)

	rec, resp := env.do(t, http.MethodPost, "/api/ai/categorize-task", map[string]string{"task_name": "Build REST API for customer data"})
	require.Equal(t, http.StatusOK, rec.Code)
	var class struct {
		Label string `json:"label"`
	}
	dataAs(t, resp, &class)
	assert.Equal(t, "Development", class.Label)

	rec, resp = env.do(t, http.MethodPost, "/api/ai/suggest-deadline", map[string]any{"task_name": "Tidy wiki", "priority": "High"})
	require.Equal(t, http.StatusOK, rec.Code)
	var deadline struct {
		DaysFromNow int `json:"days_from_now"`
	}
	dataAs(t, resp, &deadline)
	assert.Equal(t, 2, deadline.DaysFromNow)

	rec, resp = env.do(t, http.MethodPost, "/api/ai/break-down-task", map[string]any{"task_name": "Build REST API for customer data", "estimated_hours": 40})
	require.Equal(t, http.StatusOK, rec.Code)
	var breakdown struct {
		TeamSize int `json:"team_size"`
		Subtasks []struct {
			EstimatedHours int `json:"estimated_hours"`
		} `json:"subtasks"`
	}
	dataAs(t, resp, &breakdown)
	assert.Equal(t, 1, breakdown.TeamSize)
	assert.Len(t, breakdown.Subtasks, 7)

	rec, resp = env.do(t, http.MethodPost, "/api/ai/smart-task-assignment", map[string]string{"task_name": "Data pipeline", "required_skills": "python"})
	require.Equal(t, http.StatusOK, rec.Code)
	var assign struct {
		Assignee string `json:"recommended_assignee"`
	}
	dataAs(t, resp, &assign)
	assert.Equal(t, "A", assign.Assignee)

	for _, path := range []string{"/api/ai/analyze-workload", "/api/ai/generate-insights", "/api/ai/predict-performance"} {
		rec, _ = env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec, _ = env.do(t, http.MethodPost, "/api/ai/optimize-schedule", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/notifications/kpi-alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, app.NoKPIAlertsMessage, resp.Message)
	assert.Empty(t, env.sender.Messages())

	_, err := env.store.AppendKPI(context.Background(), models.KPIEntry{EmployeeName: "Ada", Department: "Sales", Name: "Calls", Target: 100, Actual: 10})
	require.NoError(t, err)

	rec, resp = env.do(t, http.MethodPost, "/api/notifications/kpi-alerts", map[string]string{"manager_email": "lead@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "KPI alert sent with 1 underperforming metrics", resp.Message)

	rec, _ = env.do(t, http.MethodPost, "/api/notifications/weekly-report", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	sent := env.sender.Messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "lead@example.com", sent[0].To)
	assert.Equal(t, "manager@company.com", sent[1].To)
}

func TestNotificationEndpoints_SendPaths(t *testing.T) {
	env := newTestEnv(t)

	rec, resp := env.do(t, http.MethodPost, "/api/notifications/send-kpi-alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, app.NoKPIAlertsMessage, resp.Message)

	rec, _ = env.do(t, http.MethodPost, "/api/notifications/send-weekly-report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.sender.Messages(), 1)

	rec, _ = env.do(t, http.MethodPost, "/api/notifications/send-task-assignment", map[string]any{"assignee_name": "Ada"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/notifications/send-daily-summary", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecoverMiddleware(t *testing.T) {
	logger.SetBasePath(t.TempDir())
	t.Cleanup(func() { logger.SetBasePath("") })
	h := recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}
