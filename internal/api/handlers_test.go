package api_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/limbo/tempo/internal/api"
	"github.com/limbo/tempo/internal/repository"
	"github.com/limbo/tempo/internal/service"
	"github.com/limbo/tempo/pkg/entity"
	jwtservice "github.com/limbo/tempo/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

type testEnv struct {
	handler     http.Handler
	userService *service.UserService
	collections *repository.Collections
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	collections := repository.NewCollections(repository.NewMemoryStore())
	userService := service.NewUserService(collections)
	server := api.New(&api.ServicesList{
		UserService:     userService,
		CategoryService: service.NewCategoryService(collections),
		ScheduleService: service.NewScheduleService(collections),
		TaskService:     service.NewTaskService(collections),
		PlanService:     service.NewPlanService(collections),
		ReviewService:   service.NewReviewService(collections),
		StatsService:    service.NewStatsService(collections),
		JwtService:      jwtservice.New("test-secret"),
	})
	return &testEnv{
		handler:     server.Handler(),
		userService: userService,
		collections: collections,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// Registers a user through the API and logs them in, returning uid and
// token.
func (e *testEnv) loginAs(t *testing.T, username, email, password string) (string, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	return body["uid"].(string), body["token"].(string)
}

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)
	t.Run("created", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"username": "kira", "email": "kira@example.com", "password": "123456",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotEmpty(t, decodeBody(t, rec)["uid"])
	})
	t.Run("duplicate username conflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"username": "kira", "email": "kira2@example.com", "password": "123456",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
	t.Run("weak password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"username": "shorty", "email": "shorty@example.com", "password": "12345",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("garbage body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		env.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.loginAs(t, "kira", "kira@example.com", "123456")
	t.Run("wrong password forbidden", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "kira", "password": "wrong1",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
	t.Run("logout is a no-op", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/auth/logout", "", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestGuestSession(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/auth/guest", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	// The guest is never stored, yet the token authorizes requests
	rec = env.do(t, http.MethodGet, "/api/v1/tasks", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	users, err := repository.Load[entity.User](context.Background(), env.collections, repository.CollectionUsers)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)
	t.Run("no token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/tasks", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
	t.Run("garbage token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/tasks", "not.a.jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
	t.Run("token signed with another secret", func(t *testing.T) {
		foreign, err := jwtservice.New("other-secret").GenerateToken(&entity.User{ID: "u1", Role: entity.RoleUser})
		require.NoError(t, err)
		rec := env.do(t, http.MethodGet, "/api/v1/tasks", foreign, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTaskEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.loginAs(t, "kira", "kira@example.com", "123456")
	taskBody := map[string]string{
		"title": "write report", "priority": "high", "category": "work",
		"due_date": "2026-08-28", "start_time": "09:00", "end_time": "10:00",
	}
	var taskID string
	t.Run("create", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/tasks", token, taskBody)
		require.Equal(t, http.StatusCreated, rec.Code)
		taskID = decodeBody(t, rec)["id"].(string)
		require.NotEmpty(t, taskID)
	})
	t.Run("slot conflict", func(t *testing.T) {
		conflicting := map[string]string{
			"title": "meeting", "priority": "low", "category": "work",
			"due_date": "2026-08-28", "start_time": "09:30", "end_time": "10:30",
		}
		rec := env.do(t, http.MethodPost, "/api/v1/tasks", token, conflicting)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
	t.Run("invalid fields", func(t *testing.T) {
		bad := map[string]string{
			"title": "odd", "priority": "urgent", "category": "work", "due_date": "2026-08-28",
		}
		rec := env.do(t, http.MethodPost, "/api/v1/tasks", token, bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("list with filter", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/tasks?filter=pending", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "pending", body["filter"])
		assert.Len(t, body["tasks"], 1)
	})
	t.Run("toggle", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/v1/tasks/"+taskID+"/toggle", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["completed"])
	})
	t.Run("update", func(t *testing.T) {
		updated := map[string]string{
			"title": "write final report", "priority": "high", "category": "work",
			"due_date": "2026-08-29",
		}
		rec := env.do(t, http.MethodPut, "/api/v1/tasks/"+taskID, token, updated)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "write final report", decodeBody(t, rec)["title"])
	})
	t.Run("update unknown id", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/v1/tasks/task_missing", token, taskBody)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
	t.Run("delete", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/v1/tasks/"+taskID, token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestStatsEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.loginAs(t, "kira", "kira@example.com", "123456")
	rec := env.do(t, http.MethodPost, "/api/v1/tasks", token, map[string]string{
		"title": "done today", "priority": "low", "category": "life", "due_date": "2026-08-28",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("weekly", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/stats/weekly", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.EqualValues(t, 1, body["total"])
		assert.EqualValues(t, 0, body["completed"])
	})
	t.Run("monthly", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/stats/monthly", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("summary", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/stats/summary", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 1, decodeBody(t, rec)["total_tasks"])
	})
	t.Run("recent", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/stats/recent?limit=5", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody(t, rec)["activities"], 1)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.loginAs(t, "kira", "kira@example.com", "123456")
	var createdID string
	t.Run("create", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/categories", token, map[string]string{
			"name": "Side project", "color": "#000000", "icon": "🛠",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		createdID = decodeBody(t, rec)["id"].(string)
	})
	t.Run("duplicate name conflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/categories", token, map[string]string{
			"name": "Side project", "color": "#ffffff", "icon": "🧰",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
	t.Run("list", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/categories", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody(t, rec)["categories"], 1)
	})
	t.Run("delete", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/v1/categories/"+createdID, token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestAdminEndpoints(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.userService.EnsureAdminAccount(ctx))
	userID, userToken := env.loginAs(t, "kira", "kira@example.com", "123456")

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	adminToken := decodeBody(t, rec)["token"].(string)

	t.Run("regular user forbidden", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/users", userToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
	t.Run("admin lists users", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/users", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeBody(t, rec)["users"], 2)
	})
	t.Run("admin changes role", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/v1/users/"+userID+"/role", adminToken, map[string]string{"role": "admin"})
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
	t.Run("unknown role rejected", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/v1/users/"+userID+"/role", adminToken, map[string]string{"role": "owner"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("admin deletes user", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/v1/users/"+userID, adminToken, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		rec = env.do(t, http.MethodDelete, "/api/v1/users/"+userID, adminToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
	t.Run("deleted user token stops working", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/v1/tasks", userToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
