package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/agile/internal/config"
	"github.com/deppfellow/agile/internal/errs"
	"github.com/deppfellow/agile/internal/middleware"
	"github.com/deppfellow/agile/internal/model"
	"github.com/deppfellow/agile/internal/repository"
	"github.com/deppfellow/agile/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePriorities struct {
	rows    map[int64]*model.Priority
	nextID  int64
	deleted []int64
}

func newFakePriorities() *fakePriorities {
	return &fakePriorities{rows: map[int64]*model.Priority{}, nextID: 1}
}

func (f *fakePriorities) Create(_ context.Context, in *model.CreatePriority) (*model.Priority, error) {
	p := &model.Priority{ID: f.nextID, Name: in.Name}
	f.rows[p.ID] = p
	f.nextID++
	return p, nil
}

func (f *fakePriorities) GetByID(_ context.Context, id int64) (*model.Priority, error) {
	return f.rows[id], nil
}

func (f *fakePriorities) GetWithRelations(_ context.Context, id int64) (*model.PriorityWithRelations, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &model.PriorityWithRelations{Priority: *p, Projects: []model.Project{}, Tasks: []model.Task{}}, nil
}

func (f *fakePriorities) Update(_ context.Context, id int64, in *model.UpdatePriority) error {
	if p, ok := f.rows[id]; ok && in.Name != nil {
		p.Name = *in.Name
	}
	return nil
}

func (f *fakePriorities) Delete(_ context.Context, id int64) error {
	delete(f.rows, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePriorities) GetAll(context.Context) ([]model.Priority, error) {
	return nil, nil
}

func newTestEcho(t *testing.T) (*echo.Echo, Handler) {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{Config: &config.Config{}, Logger: &logger}

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	return e, NewHandler(s)
}

func newPriorityRoutes(t *testing.T, repo *fakePriorities) *echo.Echo {
	e, h := newTestEcho(t)
	r := NewResourceHandler[model.Priority, model.CreatePriority, *model.CreatePriority,
		model.UpdatePriority, *model.UpdatePriority, model.PriorityWithRelations](h, "priority", repo)

	e.POST("/priorities", r.Create())
	e.GET("/priorities", r.List())
	e.GET("/priorities/:id", r.Get())
	e.GET("/priorities/:id/relations", r.GetWithRelations())
	e.PATCH("/priorities/:id", r.Update())
	e.DELETE("/priorities/:id", r.Delete())
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestResourceCreateAndGet(t *testing.T) {
	repo := newFakePriorities()
	e := newPriorityRoutes(t, repo)

	rec := do(e, http.MethodPost, "/priorities", `{"name":"High"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.Priority](t, rec)
	assert.Equal(t, "High", created.Name)

	rec = do(e, http.MethodGet, "/priorities/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[model.Priority](t, rec))

	rec = do(e, http.MethodGet, "/priorities/1/relations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "High", decode[model.PriorityWithRelations](t, rec).Name)
}

func TestResourceCreateValidation(t *testing.T) {
	e := newPriorityRoutes(t, newFakePriorities())

	rec := do(e, http.MethodPost, "/priorities", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, body.Errors)
}

func TestResourceMissingRowIs404(t *testing.T) {
	e := newPriorityRoutes(t, newFakePriorities())

	for _, path := range []string{"/priorities/7", "/priorities/7/relations"} {
		rec := do(e, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}

	rec := do(e, http.MethodPatch, "/priorities/7", `{"name":"Low"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResourceBadID(t *testing.T) {
	e := newPriorityRoutes(t, newFakePriorities())

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/priorities/0", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/priorities/abc", "").Code)
}

func TestResourceListIsNeverNull(t *testing.T) {
	e := newPriorityRoutes(t, newFakePriorities())

	rec := do(e, http.MethodGet, "/priorities", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestResourceUpdateAndDelete(t *testing.T) {
	repo := newFakePriorities()
	e := newPriorityRoutes(t, repo)
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/priorities", `{"name":"High"}`).Code)

	rec := do(e, http.MethodPatch, "/priorities/1", `{"name":"Urgent"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Urgent", decode[model.Priority](t, rec).Name)

	rec = do(e, http.MethodDelete, "/priorities/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{1}, repo.deleted)

	// Deleting again is not an error.
	assert.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/priorities/1", "").Code)
}

func TestAccessSettingsForLevelNotImplemented(t *testing.T) {
	e, h := newTestEcho(t)
	e.GET("/access-levels/:id/access-settings", AccessSettingsForLevel(h, repository.NewAccessSettingRepository(nil)))

	for _, id := range []string{"1", "0", "-5", "999999", "abc"} {
		rec := do(e, http.MethodGet, "/access-levels/"+id+"/access-settings", "")
		assert.Equal(t, http.StatusNotImplemented, rec.Code, id)
	}
}

func TestCompositeCreateTakesKeyFromPath(t *testing.T) {
	e, h := newTestEcho(t)

	var project *model.CreateProjectAssigned
	e.POST("/projects/:project_id/assignees/:user_id",
		Handle(h, func(_ echo.Context, in *model.CreateProjectAssigned) (*model.CreateProjectAssigned, error) {
			project = in
			return in, nil
		}, http.StatusCreated))

	var task *model.CreateTaskAssigned
	e.POST("/tasks/:task_id/assignees/:user_id",
		Handle(h, func(_ echo.Context, in *model.CreateTaskAssigned) (*model.CreateTaskAssigned, error) {
			task = in
			return in, nil
		}, http.StatusCreated))

	var setting *model.CreateAccessLevelSetting
	e.POST("/access-levels/:access_level_id/settings/:access_setting_id",
		Handle(h, func(_ echo.Context, in *model.CreateAccessLevelSetting) (*model.CreateAccessLevelSetting, error) {
			setting = in
			return in, nil
		}, http.StatusCreated))

	rec := do(e, http.MethodPost, "/projects/1/assignees/2", `{"user_id":99,"project_id":77}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(1), project.ProjectID)
	assert.Equal(t, int64(2), project.UserID)

	rec = do(e, http.MethodPost, "/tasks/3/assignees/4", `{"user_id":99,"task_id":77}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(3), task.TaskID)
	assert.Equal(t, int64(4), task.UserID)

	rec = do(e, http.MethodPost, "/access-levels/5/settings/6", `{"access_level_id":99,"access_setting_id":77,"allowed":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(5), setting.AccessLevelID)
	assert.Equal(t, int64(6), setting.AccessSettingID)
	assert.True(t, setting.Allowed)
}

func TestCompositeKeyValidation(t *testing.T) {
	err := (&projectAssignmentKey{ProjectID: 0, UserID: 3}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation failed")

	assert.NoError(t, (&taskAssignmentKey{TaskID: 1, UserID: 2}).Validate())
	assert.Error(t, (&accessLevelSettingKey{AccessLevelID: 1}).Validate())
}

func TestHealthReportsFailingCheck(t *testing.T) {
	e, h := newTestEcho(t)
	health := &HealthHandler{
		Handler: h,
		checks: []dependencyCheck{
			{name: "database", ping: func(context.Context) error { return nil }},
			{name: "redis", ping: func(context.Context) error { return errors.New("connection refused") }},
		},
	}
	e.GET("/status", health.CheckHealth)

	rec := do(e, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "unhealthy", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"].(map[string]any)["status"])
	assert.Equal(t, "unhealthy", checks["redis"].(map[string]any)["status"])
}

func TestHealthOK(t *testing.T) {
	e, h := newTestEcho(t)
	health := &HealthHandler{
		Handler: h,
		checks:  []dependencyCheck{{name: "database", ping: func(context.Context) error { return nil }}},
	}
	e.GET("/status", health.CheckHealth)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/status", "").Code)
}
