package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockTasks struct {
	ListFunc    func(ctx context.Context, ownerID string) ([]models.Task, error)
	GetFunc     func(ctx context.Context, id string) (*models.Task, error)
	CreateFunc  func(ctx context.Context, in services.TaskInput) (*models.Task, error)
	UpdateFunc  func(ctx context.Context, id string, in services.TaskInput) (*models.Task, error)
	DeleteFunc  func(ctx context.Context, id string) error
	ReorderFunc func(ctx context.Context, pairs []models.TaskOrder) error
	ToggleFunc  func(ctx context.Context, id string, completed bool) (*models.Task, error)
}

func (m *mockTasks) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	return m.ListFunc(ctx, ownerID)
}
func (m *mockTasks) Get(ctx context.Context, id string) (*models.Task, error) {
	return m.GetFunc(ctx, id)
}
func (m *mockTasks) Create(ctx context.Context, in services.TaskInput) (*models.Task, error) {
	return m.CreateFunc(ctx, in)
}
func (m *mockTasks) Update(ctx context.Context, id string, in services.TaskInput) (*models.Task, error) {
	return m.UpdateFunc(ctx, id, in)
}
func (m *mockTasks) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockTasks) Reorder(ctx context.Context, pairs []models.TaskOrder) error {
	return m.ReorderFunc(ctx, pairs)
}
func (m *mockTasks) Toggle(ctx context.Context, id string, completed bool) (*models.Task, error) {
	return m.ToggleFunc(ctx, id, completed)
}

type mockUsers struct {
	ListFunc   func(ctx context.Context) ([]models.UserSummary, error)
	GetFunc    func(ctx context.Context, id string) (*models.UserSummary, error)
	CreateFunc func(ctx context.Context, in services.UserInput) (*models.UserSummary, error)
	UpdateFunc func(ctx context.Context, id string, in services.UserInput) error
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *mockUsers) List(ctx context.Context) ([]models.UserSummary, error) { return m.ListFunc(ctx) }
func (m *mockUsers) Get(ctx context.Context, id string) (*models.UserSummary, error) {
	return m.GetFunc(ctx, id)
}
func (m *mockUsers) Create(ctx context.Context, in services.UserInput) (*models.UserSummary, error) {
	return m.CreateFunc(ctx, in)
}
func (m *mockUsers) Update(ctx context.Context, id string, in services.UserInput) error {
	return m.UpdateFunc(ctx, id, in)
}
func (m *mockUsers) Delete(ctx context.Context, id string) error { return m.DeleteFunc(ctx, id) }

var stamp = time.Date(2025, 5, 5, 5, 5, 5, 0, time.UTC)

func newTestServer(ts *mockTasks, us *mockUsers) *Server {
	if ts == nil {
		ts = &mockTasks{}
	}
	if us == nil {
		us = &mockUsers{}
	}
	return NewServer(Options{AllowedOrigins: []string{"http://localhost:5173"}}, logging.Nop(), ts, us)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(nil, nil), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestListTasks_PassesOwnerFilter(t *testing.T) {
	var gotOwner string
	ts := &mockTasks{ListFunc: func(ctx context.Context, ownerID string) ([]models.Task, error) {
		gotOwner = ownerID
		return []models.Task{{ID: "t1", Title: "A", OwnerID: "u1", Order: 0, CreatedAt: stamp, UpdatedAt: stamp}}, nil
	}}

	w := do(t, newTestServer(ts, nil), http.MethodGet, "/api/tasks?ownerId=u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", gotOwner)
	assert.JSONEq(t, `[{"id":"t1","title":"A","description":"","isCompleted":false,"order":0,"ownerId":"u1",
		"createdAt":"2025-05-05T05:05:05Z","updatedAt":"2025-05-05T05:05:05Z"}]`, w.Body.String())
}

func TestListTasks_EmptyIsArray(t *testing.T) {
	ts := &mockTasks{ListFunc: func(context.Context, string) ([]models.Task, error) { return nil, nil }}

	w := do(t, newTestServer(ts, nil), http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateTask(t *testing.T) {
	var got services.TaskInput
	ts := &mockTasks{CreateFunc: func(ctx context.Context, in services.TaskInput) (*models.Task, error) {
		got = in
		return &models.Task{ID: "t9", Title: in.Title, OwnerID: in.OwnerID, Order: in.Order, CreatedAt: stamp, UpdatedAt: stamp}, nil
	}}

	w := do(t, newTestServer(ts, nil), http.MethodPost, "/api/tasks",
		`{"title":"Buy milk","description":"2l","isCompleted":false,"ownerId":"u1","order":4}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/tasks/t9", w.Header().Get("Location"))
	assert.Equal(t, services.TaskInput{Title: "Buy milk", Description: "2l", OwnerID: "u1", Order: 4}, got)

	body := decode[taskResponse](t, w)
	assert.Equal(t, "t9", body.ID)
	assert.Equal(t, 4, body.Order)
}

func TestCreateTask_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "malformed body", body: `{"title":`, wantCode: http.StatusBadRequest, wantMsg: "invalid request body"},
		{name: "validation", body: `{}`, err: common.Validationf("Invalid ownerId - user with id x does not exist."), wantCode: http.StatusBadRequest, wantMsg: "Invalid ownerId - user with id x does not exist."},
		{name: "internal", body: `{}`, err: errors.New("db down"), wantCode: http.StatusInternalServerError, wantMsg: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := &mockTasks{CreateFunc: func(context.Context, services.TaskInput) (*models.Task, error) {
				return nil, tt.err
			}}

			w := do(t, newTestServer(ts, nil), http.MethodPost, "/api/tasks", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantMsg, decode[messageResponse](t, w).Message)
		})
	}
}

func TestGetTask_NotFound(t *testing.T) {
	ts := &mockTasks{GetFunc: func(context.Context, string) (*models.Task, error) { return nil, common.ErrorNotFound }}

	w := do(t, newTestServer(ts, nil), http.MethodGet, "/api/tasks/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"not found"}`, w.Body.String())
}

func TestUpdateTask_ReturnsEntity(t *testing.T) {
	ts := &mockTasks{UpdateFunc: func(ctx context.Context, id string, in services.TaskInput) (*models.Task, error) {
		return &models.Task{ID: id, Title: in.Title, IsCompleted: in.IsCompleted, OwnerID: "u1"}, nil
	}}

	w := do(t, newTestServer(ts, nil), http.MethodPut, "/api/tasks/t1", `{"title":"new","isCompleted":true,"ownerId":"u1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[taskResponse](t, w)
	assert.Equal(t, "new", body.Title)
	assert.True(t, body.IsCompleted)
}

func TestDeleteTask(t *testing.T) {
	ts := &mockTasks{DeleteFunc: func(ctx context.Context, id string) error {
		if id == "t1" {
			return nil
		}
		return common.ErrorNotFound
	}}
	s := newTestServer(ts, nil)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/tasks/t1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodDelete, "/api/tasks/t2", "").Code)
}

func TestReorderTasks(t *testing.T) {
	var got []models.TaskOrder
	ts := &mockTasks{ReorderFunc: func(ctx context.Context, pairs []models.TaskOrder) error {
		got = pairs
		return nil
	}}

	w := do(t, newTestServer(ts, nil), http.MethodPatch, "/api/tasks/reorder", `[{"id":"c","order":0},{"id":"a","order":1}]`)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []models.TaskOrder{{ID: "c", Order: 0}, {ID: "a", Order: 1}}, got)

	w = do(t, newTestServer(ts, nil), http.MethodPatch, "/api/tasks/reorder", `{"id":"c"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleTask_RawBoolean(t *testing.T) {
	var gotID string
	var gotValue bool
	ts := &mockTasks{ToggleFunc: func(ctx context.Context, id string, completed bool) (*models.Task, error) {
		gotID, gotValue = id, completed
		return &models.Task{ID: id, IsCompleted: completed}, nil
	}}
	s := newTestServer(ts, nil)

	w := do(t, s, http.MethodPatch, "/api/tasks/t1/toggle", `true`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "t1", gotID)
	assert.True(t, gotValue)
	assert.True(t, decode[taskResponse](t, w).IsCompleted)

	w = do(t, s, http.MethodPatch, "/api/tasks/t1/toggle", `false`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, gotValue)

	w = do(t, s, http.MethodPatch, "/api/tasks/t1/toggle", `{"isCompleted":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPatch, "/api/tasks/t1/toggle", ``)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsers(t *testing.T) {
	us := &mockUsers{
		ListFunc: func(context.Context) ([]models.UserSummary, error) {
			return []models.UserSummary{{ID: "u1", Name: "Alice", Email: "a@example.com", TaskCount: 2}}, nil
		},
		CreateFunc: func(ctx context.Context, in services.UserInput) (*models.UserSummary, error) {
			if in.Email == "dup@example.com" {
				return nil, common.Validationf("Email %s is already registered.", in.Email)
			}
			return &models.UserSummary{ID: "u2", Name: in.Name, Email: in.Email}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, in services.UserInput) error { return nil },
		DeleteFunc: func(ctx context.Context, id string) error { return nil },
		GetFunc: func(ctx context.Context, id string) (*models.UserSummary, error) {
			return nil, common.ErrorNotFound
		},
	}
	s := newTestServer(nil, us)

	w := do(t, s, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":"u1","name":"Alice","email":"a@example.com","taskCount":2}]`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = do(t, s, http.MethodPost, "/api/users", `{"name":"Bob","email":"bob@example.com","password":"password1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/users/u2", w.Header().Get("Location"))
	assert.JSONEq(t, `{"id":"u2","name":"Bob","email":"bob@example.com","taskCount":0}`, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/users", `{"name":"Bob","email":"dup@example.com","password":"password1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email dup@example.com is already registered.", decode[messageResponse](t, w).Message)

	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodPut, "/api/users/u1", `{"name":"A","email":"a@example.com"}`).Code)
	assert.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/users/u1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/users/u9", "").Code)
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	s := newTestServer(nil, nil)

	r := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	r.Header.Set("Origin", "http://localhost:5173")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
