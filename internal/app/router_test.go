package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/supplydesk/internal/auth"
	"github.com/odyssey-erp/supplydesk/internal/dashboard"
	"github.com/odyssey-erp/supplydesk/internal/observability"
	"github.com/odyssey-erp/supplydesk/internal/rbac"
	"github.com/odyssey-erp/supplydesk/internal/shared"
	"github.com/odyssey-erp/supplydesk/internal/supplyrequests"
	"github.com/odyssey-erp/supplydesk/internal/view"
)

var csrfMeta = regexp.MustCompile(`name="csrf-token" content="([^"]+)"`)

type fakeRepo struct {
	rows []supplyrequests.SupplyRequest
}

func (f *fakeRepo) List(ctx context.Context) ([]supplyrequests.SupplyRequest, error) {
	return f.rows, nil
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (supplyrequests.SupplyRequest, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return supplyrequests.SupplyRequest{}, shared.ErrNotFound
}

func (f *fakeRepo) Create(ctx context.Context, req supplyrequests.SupplyRequest) (int64, error) {
	req.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, req)
	return req.ID, nil
}

func (f *fakeRepo) Update(ctx context.Context, req supplyrequests.SupplyRequest) error {
	return shared.ErrNotFound
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	return shared.ErrNotFound
}

type testServer struct {
	router http.Handler
	cookie *http.Cookie
	token  string
	repo   *fakeRepo
}

func newTestServer(t *testing.T, checks map[string]HealthCheck) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	cfg := &Config{AppEnv: "development", AppRequestTimeout: 5 * time.Second, RateLimitPerMinute: 1000}
	sessions := shared.NewSessionManager(redisClient, "supplydesk_session", "secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrf-secret")
	templates, err := view.NewEngine()
	require.NoError(t, err)

	creds, err := auth.ParseCredentials([]string{"admin:admin123:admin", "staff:staff123:staff"})
	require.NoError(t, err)
	store, err := auth.NewStaticStore(creds)
	require.NoError(t, err)

	metrics := observability.NewMetrics()
	rbacService := rbac.NewService(rbac.DefaultGrants)
	repo := &fakeRepo{}
	requests := supplyrequests.NewService(repo)

	router := NewRouter(RouterParams{
		Config:                cfg,
		SessionManager:        sessions,
		CSRFManager:           csrf,
		AuthHandler:           auth.NewHandler(nil, auth.NewService(store), templates, sessions, csrf).WithLoginRecorder(metrics),
		DashboardHandler:      dashboard.NewHandler(nil, templates, csrf, requests, rbacService),
		SupplyRequestsHandler: supplyrequests.NewHandler(nil, requests, rbac.Middleware{Service: rbacService}, metrics),
		Metrics:               metrics,
		HealthChecks:          checks,
	})
	return &testServer{router: router, repo: repo}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	res := httptest.NewRecorder()
	s.router.ServeHTTP(res, req)
	for _, c := range res.Result().Cookies() {
		if c.Name == "supplydesk_session" && c.MaxAge >= 0 {
			s.cookie = c
		}
	}
	if m := csrfMeta.FindStringSubmatch(res.Body.String()); m != nil {
		s.token = m[1]
	}
	return res
}

func (s *testServer) login(t *testing.T, username, password string) {
	t.Helper()
	s.do(t, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	require.NotEmpty(t, s.token)

	form := url.Values{"username": {username}, "password": {password}, "csrf_token": {s.token}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := s.do(t, req)
	require.Equal(t, http.StatusSeeOther, res.Code)

	// The token rotates with the session id; pick up the fresh one.
	s.do(t, httptest.NewRequest(http.MethodGet, res.Header().Get("Location"), nil))
}

func (s *testServer) api(t *testing.T, method, path, body string, withToken bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if withToken {
		req.Header.Set(shared.CSRFHeader, s.token)
	}
	return s.do(t, req)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)
	res := s.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"status":"ok"}`, res.Body.String())
	assert.Equal(t, "DENY", res.Header().Get("X-Frame-Options"))
}

func TestReadyzReportsFailingDependency(t *testing.T) {
	s := newTestServer(t, map[string]HealthCheck{
		"postgres": func(ctx context.Context) error { return errors.New("refused") },
		"redis":    func(ctx context.Context) error { return nil },
	})
	res := s.do(t, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
	assert.JSONEq(t, `{"postgres":"unavailable","redis":"ok"}`, res.Body.String())
}

func TestAPIRequiresLogin(t *testing.T) {
	s := newTestServer(t, nil)
	res := s.api(t, http.MethodGet, "/api/supply-requests", "", false)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "unauthorized")
}

func TestAPIRejectsMissingCSRFToken(t *testing.T) {
	s := newTestServer(t, nil)
	s.login(t, "admin", "admin123")

	res := s.api(t, http.MethodPost, "/api/supply-requests", `{"itemName":"Gloves","quantityRequested":10,"priority":"high","requestedBy":"Ana"}`, false)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Empty(t, s.repo.rows)
}

func TestAPICreateAndListThroughFullStack(t *testing.T) {
	s := newTestServer(t, nil)
	s.login(t, "staff", "staff123")

	res := s.api(t, http.MethodPost, "/api/supply-requests", `{"itemName":"Gloves","quantityRequested":10,"priority":"high","requestedBy":"Ana"}`, true)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	assert.JSONEq(t, `{"message":"Supply request created","id":1}`, res.Body.String())

	res = s.api(t, http.MethodGet, "/api/supply-requests", "", false)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"id":"SR001"`)
	assert.Contains(t, res.Body.String(), `"status":"pending"`)

	res = s.api(t, http.MethodDelete, "/api/supply-requests/SR001", "", true)
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = s.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, res.Body.String(), `supplydesk_supply_request_mutations_total{op="create"} 1`)
	assert.Contains(t, res.Body.String(), `supplydesk_login_attempts_total{outcome="success"} 1`)
}

func TestStaticAssetsAreCached(t *testing.T) {
	s := newTestServer(t, nil)
	res := s.do(t, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "public, max-age=3600", res.Header().Get("Cache-Control"))
}
