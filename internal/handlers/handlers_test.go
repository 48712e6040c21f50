package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gaze-go/internal/analysis"
	"gaze-go/internal/models"
	"gaze-go/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubRenderer struct{}

func (stubRenderer) Render(xs, ys []float64, label string) (string, error) {
	return "data:image/png;base64,c3R1Yg==", nil
}

type brokenStore struct {
	repository.SessionStore
}

func (brokenStore) SaveTask(ctx context.Context, id string, info models.UserInfo, r models.TaskResult) error {
	return errors.New("disk full")
}

func (brokenStore) GetSession(ctx context.Context, id string) (*models.SessionRecord, error) {
	return nil, errors.New("disk full")
}

func (brokenStore) ListSessions(ctx context.Context) ([]models.SessionSummary, error) {
	return nil, errors.New("disk full")
}

func (brokenStore) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}

func newTestEngine(store repository.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	analyzer := analysis.NewAnalyzer(nil, stubRenderer{})

	tasks := NewTaskHandler(log, analyzer, store)
	reports := NewReportHandler(log, analyzer, store)
	sessions := NewSessionHandler(log, store)
	catalog := NewCatalogHandler(nil)

	r := gin.New()
	r.POST("/api/task", func(c *gin.Context) {
		c.Set(SessionIDContextKey, "cookie-session")
		tasks.SubmitTask(c)
	})
	r.GET("/api/report/:session_id", reports.GetReport)
	r.GET("/api/report/:session_id/html", reports.ShowReport)
	r.GET("/api/sessions", sessions.ListSessions)
	r.GET("/api/tasks", catalog.ListTasks)
	r.GET("/api/baselines", catalog.ListBaselines)
	return r
}

type envelope struct {
	Success  bool                    `json:"success"`
	Error    string                  `json:"error"`
	Result   models.TaskResult       `json:"result"`
	Report   models.SessionReport    `json:"report"`
	Sessions []models.SessionSummary `json:"sessions"`
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
		}
	}
	return w, env
}

func TestSubmitTask(t *testing.T) {
	store := repository.NewMemoryStore()
	r := newTestEngine(store)

	w, env := do(t, r, http.MethodPost, "/api/task",
		`{"task":"baseline","data":[[0,0],[10,0],[5,10]],"sessionId":"abc","age":"25","gender":"male"}`)

	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("expected success, got %d %s", w.Code, w.Body.String())
	}
	if env.Result.DataPoints != 3 || env.Result.Statistics == nil || env.Result.Statistics.XAvg != 5 {
		t.Errorf("unexpected result %+v", env.Result)
	}
	if env.Result.Visualization == "" {
		t.Error("expected visualization")
	}

	record, err := store.GetSession(context.Background(), "abc")
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if record.UserInfo.Age != "25" {
		t.Errorf("metadata not stored: %+v", record.UserInfo)
	}
}

func TestSubmitTaskResponseShape(t *testing.T) {
	r := newTestEngine(repository.NewMemoryStore())

	w, _ := do(t, r, http.MethodPost, "/api/task", `{"task":"image","data":[[1,2],[3,4]],"sessionId":"abc"}`)

	var raw struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"task", "sessionId", "statistics", "comparison", "visualization", "data_points"} {
		if _, ok := raw.Result[key]; !ok {
			t.Errorf("result missing %q", key)
		}
	}
	var stats map[string]float64
	json.Unmarshal(raw.Result["statistics"], &stats)
	for _, key := range []string{"x_avg", "y_avg", "x_std", "y_std"} {
		if _, ok := stats[key]; !ok {
			t.Errorf("statistics missing %q", key)
		}
	}
}

func TestSubmitTaskNoData(t *testing.T) {
	r := newTestEngine(repository.NewMemoryStore())

	w, env := do(t, r, http.MethodPost, "/api/task", `{"task":"baseline","data":[],"sessionId":"abc"}`)

	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("expected 200 envelope, got %d", w.Code)
	}
	if env.Result.Error != analysis.NoGazeDataError {
		t.Errorf("expected no-data marker, got %+v", env.Result)
	}
	if env.Result.Statistics != nil || env.Result.Visualization != "" {
		t.Errorf("expected no statistics or visualization")
	}
}

func TestSubmitTaskUnknownType(t *testing.T) {
	r := newTestEngine(repository.NewMemoryStore())

	_, env := do(t, r, http.MethodPost, "/api/task", `{"task":"unknown_type","data":[[1,1]],"sessionId":"abc"}`)

	if env.Result.Statistics == nil || *env.Result.Statistics != (models.AxisStatistics{XAvg: 1, YAvg: 1}) {
		t.Errorf("unexpected statistics %+v", env.Result.Statistics)
	}
	if env.Result.Comparison == nil || !strings.Contains(env.Result.Comparison.Error, "unknown_type") {
		t.Errorf("expected comparison error naming the task, got %+v", env.Result.Comparison)
	}
	if env.Result.Visualization == "" {
		t.Error("expected visualization")
	}
}

func TestSubmitTaskBadRequests(t *testing.T) {
	r := newTestEngine(repository.NewMemoryStore())

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "task=baseline"},
		{"non numeric sample", `{"task":"image","data":[["a","b"]],"sessionId":"abc"}`},
		{"wrong arity", `{"task":"image","data":[[1,2,3]],"sessionId":"abc"}`},
		{"bad session id", `{"task":"image","data":[[1,2]],"sessionId":"has\ttab"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/api/task", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if env.Success || env.Error == "" {
				t.Errorf("expected error envelope, got %+v", env)
			}
		})
	}
}

func TestSubmitTaskFallsBackToCookieSession(t *testing.T) {
	store := repository.NewMemoryStore()
	r := newTestEngine(store)

	_, env := do(t, r, http.MethodPost, "/api/task", `{"task":"video","data":[[1,2]]}`)
	if env.Result.SessionID != "cookie-session" {
		t.Fatalf("expected cookie session id, got %q", env.Result.SessionID)
	}
	if _, err := store.GetSession(context.Background(), "cookie-session"); err != nil {
		t.Errorf("result not stored under cookie session: %v", err)
	}
}

func TestSubmitTaskStoreFailure(t *testing.T) {
	r := newTestEngine(brokenStore{})

	w, env := do(t, r, http.MethodPost, "/api/task", `{"task":"text","data":[[1,2]],"sessionId":"abc"}`)
	if w.Code != http.StatusInternalServerError || env.Success {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(env.Error, "disk full") {
		t.Error("internal error leaked to client")
	}
}

func TestGetReportTwoTasks(t *testing.T) {
	r := newTestEngine(repository.NewMemoryStore())

	do(t, r, http.MethodPost, "/api/task", `{"task":"baseline","data":[[1,2]],"sessionId":"s4","age":"31","gender":"female"}`)
	do(t, r, http.MethodPost, "/api/task", `{"task":"image","data":[[3,4]],"sessionId":"s4"}`)

	w, env := do(t, r, http.MethodGet, "/api/report/s4", "")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("expected report, got %d %s", w.Code, w.Body.String())
	}
	if env.Report.TotalTasks != 2 {
		t.Errorf("expected 2 tasks, got %d", env.Report.TotalTasks)
	}
	if env.Report.Recommendation != analysis.Recommendation(2) {
		t.Errorf("unexpected recommendation %q", env.Report.Recommendation)
	}
	if env.Report.Summary != analysis.ReportTitle {
		t.Errorf("unexpected summary %q", env.Report.Summary)
	}
	if env.Report.UserInfo.Age != "31" || env.Report.UserInfo.Gender != "female" {
		t.Errorf("unexpected user info %+v", env.Report.UserInfo)
	}
}

func TestGetReportUnknownSession(t *testing.T) {
	r := newTestEngine(repository.NewMemoryStore())

	w, env := do(t, r, http.MethodGet, "/api/report/missing", "")
	if w.Code != http.StatusNotFound || env.Success {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w, _ = do(t, r, http.MethodGet, "/api/report/missing/html", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for html report, got %d", w.Code)
	}
}

func TestGetReportStoreFailure(t *testing.T) {
	r := newTestEngine(brokenStore{})

	w, _ := do(t, r, http.MethodGet, "/api/report/abc", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestShowReportHTML(t *testing.T) {
	r := newTestEngine(repository.NewMemoryStore())
	do(t, r, http.MethodPost, "/api/task", `{"task":"text","data":[[1,2],[2,3]],"sessionId":"page"}`)

	w, _ := do(t, r, http.MethodGet, "/api/report/page/html", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("unexpected content type %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "<h2>TEXT</h2>") {
		t.Errorf("expected task section in page")
	}
}

func TestListSessions(t *testing.T) {
	r := newTestEngine(repository.NewMemoryStore())
	do(t, r, http.MethodPost, "/api/task", `{"task":"baseline","data":[[1,2]],"sessionId":"one","age":"20"}`)
	do(t, r, http.MethodPost, "/api/task", `{"task":"image","data":[[1,2]],"sessionId":"one"}`)

	w, env := do(t, r, http.MethodGet, "/api/sessions", "")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(env.Sessions) != 1 || env.Sessions[0].TasksCompleted != 2 || env.Sessions[0].Age != "20" {
		t.Errorf("unexpected sessions %+v", env.Sessions)
	}

	w, _ = do(t, newTestEngine(brokenStore{}), http.MethodGet, "/api/sessions", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 from broken store, got %d", w.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	r := newTestEngine(repository.NewMemoryStore())

	w, _ := do(t, r, http.MethodGet, "/api/tasks", "")
	var tasks struct {
		Tasks []models.TaskDefinition `json:"tasks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tasks.Tasks) != 4 {
		t.Errorf("expected 4 task definitions, got %d", len(tasks.Tasks))
	}

	w, _ = do(t, r, http.MethodGet, "/api/baselines", "")
	var baselines struct {
		Baselines map[models.TaskType]models.AxisStatistics `json:"baselines"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &baselines); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(baselines.Baselines) != 4 || baselines.Baselines[models.TaskImage].XAvg == 0 {
		t.Errorf("unexpected baselines %+v", baselines.Baselines)
	}
}

func TestSubmitTaskRejectsOverflowingCoordinates(t *testing.T) {
	store := repository.NewMemoryStore()
	r := newTestEngine(store)

	w, env := do(t, r, http.MethodPost, "/api/task",
		`{"task":"baseline","sessionId":"huge","data":[[1e308,1e308],[1.7e308,-1e308]]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if env.Success || !strings.Contains(env.Error, "not finite") {
		t.Errorf("expected out of range error, got %+v", env)
	}

	// Nothing was stored, so the session stays unknown.
	w, _ = do(t, r, http.MethodGet, "/api/report/huge", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for rejected session, got %d", w.Code)
	}
}
