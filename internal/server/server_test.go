package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/khatahq/khata/internal/auth/domain"
	clientdomain "github.com/khatahq/khata/internal/client/domain"
	"github.com/khatahq/khata/internal/config"
	gstreportdomain "github.com/khatahq/khata/internal/gstreport/domain"
	tenantdomain "github.com/khatahq/khata/internal/tenant/domain"
	"go.uber.org/zap"
)

type fakeAuthService struct {
	loginCalls int
	authCalls  int
	validToken string
}

func (f *fakeAuthService) Register(ctx context.Context, req authdomain.RegisterRequest) (authdomain.User, error) {
	_ = ctx
	return authdomain.User{ID: snowflake.ID(200), Name: req.Name, Email: req.Email}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (authdomain.LoginResult, error) {
	f.loginCalls++
	_ = ctx
	if req.Password != "correct-password" {
		return authdomain.LoginResult{}, authdomain.ErrInvalidCredentials
	}
	return authdomain.LoginResult{
		User:      authdomain.User{ID: snowflake.ID(200), Email: req.Email},
		RawToken:  "issued-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	_ = ctx
	_ = rawToken
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (authdomain.User, error) {
	f.authCalls++
	_ = ctx
	if rawToken != f.validToken {
		return authdomain.User{}, authdomain.ErrUnauthenticated
	}
	return authdomain.User{ID: snowflake.ID(200), Email: "alice@example.com"}, nil
}

type fakeTenantService struct {
	tenant *tenantdomain.Tenant
}

func (f *fakeTenantService) Resolve(ctx context.Context, slug string) (*tenantdomain.Tenant, error) {
	_ = ctx
	_ = slug
	return f.tenant, nil
}

type fakeClientService struct {
	createErr error
}

func (f *fakeClientService) Create(ctx context.Context, req clientdomain.CreateClientRequest) (clientdomain.Client, error) {
	_ = ctx
	if f.createErr != nil {
		return clientdomain.Client{}, f.createErr
	}
	return clientdomain.Client{ID: snowflake.ID(1), Name: req.Name}, nil
}

func (f *fakeClientService) List(ctx context.Context) ([]clientdomain.Client, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeClientService) GetByID(ctx context.Context, id string) (clientdomain.Client, error) {
	_ = ctx
	_ = id
	return clientdomain.Client{}, clientdomain.ErrNotFound
}

func (f *fakeClientService) Update(ctx context.Context, req clientdomain.UpdateClientRequest) (clientdomain.Client, error) {
	_ = ctx
	_ = req
	return clientdomain.Client{}, clientdomain.ErrNotFound
}

func (f *fakeClientService) Delete(ctx context.Context, id string) error {
	_ = ctx
	_ = id
	return clientdomain.ErrNotFound
}

type fakeGstReportService struct {
	lastQuery gstreportdomain.Query
}

func (f *fakeGstReportService) BuildReport(ctx context.Context, q gstreportdomain.Query) (gstreportdomain.Result, error) {
	_ = ctx
	f.lastQuery = q
	return gstreportdomain.Result{}, nil
}

type testServer struct {
	srv     *Server
	auth    *fakeAuthService
	clients *fakeClientService
	gst     *fakeGstReportService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	auth := &fakeAuthService{validToken: "issued-token"}
	clients := &fakeClientService{}
	gst := &fakeGstReportService{}

	srv := NewServer(ServerParams{
		Gin:          engine,
		Cfg:          config.Config{DefaultTenantSlug: "default"},
		Log:          zap.NewNop(),
		Authsvc:      auth,
		Tenantsvc:    &fakeTenantService{},
		ClientSvc:    clients,
		GstReportSvc: gst,
	})

	return &testServer{srv: srv, auth: auth, clients: clients, gst: gst}
}

func TestLoginHandler(t *testing.T) {
	ts := newTestServer(t)

	body := bytes.NewBufferString(`{"email":"alice@example.com","password":"correct-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ts.auth.loginCalls != 1 {
		t.Fatalf("expected one login call, got %d", ts.auth.loginCalls)
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Token != "issued-token" {
		t.Fatalf("expected issued token, got %q", resp.Data.Token)
	}
}

func TestLoginHandlerBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	body := bytes.NewBufferString(`{"email":"alice@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAPIRequiresBearerToken(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Type != "unauthorized" {
		t.Fatalf("expected unauthorized payload, got %q", resp.Error.Type)
	}
}

func TestCreateClientValidationMapsTo400(t *testing.T) {
	ts := newTestServer(t)
	ts.clients.createErr = clientdomain.ErrInvalidName

	body := bytes.NewBufferString(`{"name":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/clients", body)
	req.Header.Set("Authorization", "Bearer issued-token")
	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error.Type != "validation_error" {
		t.Fatalf("expected validation_error payload, got %q", resp.Error.Type)
	}
	if len(resp.Error.Errors) != 1 || resp.Error.Errors[0].Code != "invalid_name" {
		t.Fatalf("unexpected validation payload: %+v", resp.Error.Errors)
	}
}

func TestGSTReportPassesQuery(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/reports/gst?from=2026-08-01&to=2026-08-31&home_state=Karnataka&status=paid&rate=18&inclusive=false", nil)
	req.Header.Set("Authorization", "Bearer issued-token")
	w := httptest.NewRecorder()
	ts.srv.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	q := ts.gst.lastQuery
	if q.From != "2026-08-01" || q.To != "2026-08-31" {
		t.Fatalf("unexpected date window: %+v", q)
	}
	if q.HomeState != "Karnataka" || q.Status != "paid" || q.RatePercent != "18" {
		t.Fatalf("unexpected filters: %+v", q)
	}
	if q.Inclusive == nil || *q.Inclusive {
		t.Fatalf("expected inclusive=false, got %+v", q.Inclusive)
	}
}
