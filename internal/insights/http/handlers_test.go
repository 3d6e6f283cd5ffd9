package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/constructerp/erp-backend/internal/auth/domain"
	authmw "github.com/constructerp/erp-backend/internal/auth/middleware"
	"github.com/constructerp/erp-backend/internal/auth/session"
	authservice "github.com/constructerp/erp-backend/internal/auth/service"
	"github.com/constructerp/erp-backend/internal/insights"
	"github.com/constructerp/erp-backend/internal/projects"
)

type countingSource struct {
	rows      []projects.Project
	listCalls int
	getCalls  int
}

func (f *countingSource) List(ctx context.Context) ([]projects.Project, error) {
	f.listCalls++
	return f.rows, nil
}

func (f *countingSource) Get(ctx context.Context, id int64) (*projects.Project, error) {
	f.getCalls++
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, projects.ErrNotFound
}

type memUsers struct {
	byName map[string]*domain.User
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if u, ok := m.byName[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) Create(ctx context.Context, username, passwordHash, role string) (*domain.User, error) {
	u := &domain.User{ID: int64(len(m.byName) + 1), Username: username, PasswordHash: passwordHash, Role: role}
	m.byName[username] = u
	return u, nil
}

// setupRouter builds a real session gate (miniredis-backed) in front of the
// insights routes, with a counting fake behind them.
func setupRouter(t *testing.T, src *countingSource) (*gin.Engine, *authservice.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewStore(client, time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("builder-pass-1"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &memUsers{byName: map[string]*domain.User{
		"foreman": {ID: 1, Username: "foreman", PasswordHash: string(hash), Role: "admin"},
	}}

	svc := authservice.NewService(users, sessions, "test-secret", time.Hour)
	gate := authmw.RequireSession(svc, "token")

	r := gin.New()
	authed := r.Group("/", gate)

	h := NewHandler(insights.NewService(src, nil))
	h.Register(authed.Group("/insights"), authed.Group("/risk"))
	return r, svc
}

func loginCookie(t *testing.T, svc *authservice.Service) *http.Cookie {
	t.Helper()
	_, token, err := svc.Login(context.Background(), "foreman", "builder-pass-1")
	require.NoError(t, err)
	return &http.Cookie{Name: "token", Value: token}
}

func TestInsightsRoutesRejectMissingCookie(t *testing.T) {
	src := &countingSource{}
	r, _ := setupRouter(t, src)

	for _, path := range []string{"/insights/project-health", "/insights/project-risks", "/insights/cashflow", "/risk/1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}

	// The gate must short-circuit before any repository read.
	assert.Equal(t, 0, src.listCalls)
	assert.Equal(t, 0, src.getCalls)
}

func TestInsightsRoutesRejectGarbageCookie(t *testing.T) {
	src := &countingSource{}
	r, _ := setupRouter(t, src)

	req := httptest.NewRequest(http.MethodGet, "/insights/project-health", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "not-a-jwt"})
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, 0, src.listCalls)
}

func TestProjectHealthAuthenticated(t *testing.T) {
	src := &countingSource{rows: []projects.Project{
		{ID: 1, Name: "Harbor Tower", Progress: 75, Budget: 100, Spent: 40},
		{ID: 2, Name: "Mill Rd Depot", Progress: 10, Budget: 100, Spent: 95},
	}}
	r, svc := setupRouter(t, src)

	req := httptest.NewRequest(http.MethodGet, "/insights/project-health", nil)
	req.AddCookie(loginCookie(t, svc))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var health insights.PortfolioHealth
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, 2, health.TotalProjects)
	assert.Equal(t, 1, health.Healthy)
	assert.Equal(t, 1, health.Critical)
	assert.Equal(t, 1, src.listCalls)
}

func TestSingleProjectRisk(t *testing.T) {
	src := &countingSource{rows: []projects.Project{
		{ID: 9, Name: "Quarry Access", Budget: 100, Spent: 121},
	}}
	r, svc := setupRouter(t, src)
	cookie := loginCookie(t, svc)

	t.Run("known project", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/risk/9", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Project           string  `json:"project"`
			BudgetUsedPercent float64 `json:"budgetUsedPercent"`
			Risk              string  `json:"risk"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Quarry Access", body.Project)
		assert.Equal(t, 121.0, body.BudgetUsedPercent)
		assert.Equal(t, "Critical", body.Risk)
	})

	t.Run("unknown project is a 404, not a fault", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/risk/404", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Project not found")
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/risk/abc", nil)
		req.AddCookie(cookie)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogoutInvalidatesSession(t *testing.T) {
	src := &countingSource{}
	r, svc := setupRouter(t, src)
	cookie := loginCookie(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/insights/cashflow", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, svc.Logout(context.Background(), cookie.Value))

	req = httptest.NewRequest(http.MethodGet, "/insights/cashflow", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
