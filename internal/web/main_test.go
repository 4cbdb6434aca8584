package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emailcapture/emailcapture/internal/config"
	"github.com/emailcapture/emailcapture/internal/db/controller/setting"
	"github.com/emailcapture/emailcapture/internal/db/dbtest"
	"github.com/emailcapture/emailcapture/internal/db/models"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	db := dbtest.New(t)
	_, err := setting.Initialize(db)
	require.NoError(t, err)

	service, err := New(&config.Config{
		Title:     "emailcapture-test",
		DevMode:   true,
		Webserver: config.Webserver{Port: 3001},
	}, db)
	require.NoError(t, err)

	return service
}

func call(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestNew_NilArguments(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)
}

func TestCheckAlive(t *testing.T) {
	service := setupService(t)

	resp, _ := call(t, service.App, httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	service.alive.Store(true)
	assert.True(t, service.Alive())

	resp, body := call(t, service.App, httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
}

func TestMetrics(t *testing.T) {
	service := setupService(t)

	resp, body := call(t, service.App, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "go_goroutines")
}

func TestRoutes(t *testing.T) {
	service := setupService(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "seeded settings",
			method:     http.MethodGet,
			path:       "/api/settings",
			wantStatus: fiber.StatusOK,
			wantBody:   `"userEmail":"admin@gmail.com"`,
		},
		{
			name:       "update denied",
			method:     http.MethodPut,
			path:       "/api/settings",
			body:       `{"buttonText":"Join","userEmail":"me@gmail.com"}`,
			wantStatus: fiber.StatusForbidden,
			wantBody:   `"error"`,
		},
		{
			name:       "update by admin",
			method:     http.MethodPut,
			path:       "/api/settings",
			body:       `{"buttonText":"Join","userEmail":"admin@gmail.com"}`,
			wantStatus: fiber.StatusOK,
			wantBody:   `"buttonText":"Join"`,
		},
		{
			name:       "empty registry",
			method:     http.MethodGet,
			path:       "/api/emails",
			wantStatus: fiber.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "register",
			method:     http.MethodPost,
			path:       "/api/emails",
			body:       `{"email":"a@b.com"}`,
			wantStatus: fiber.StatusOK,
			wantBody:   `"email":"a@b.com"`,
		},
		{
			name:       "register again",
			method:     http.MethodPost,
			path:       "/api/emails",
			body:       `{"email":"a@b.com"}`,
			wantStatus: fiber.StatusBadRequest,
			wantBody:   `{"error":"Email already exists."}`,
		},
		{
			name:       "unknown route",
			method:     http.MethodDelete,
			path:       "/api/emails",
			wantStatus: fiber.StatusMethodNotAllowed,
		},
	}

	// cases share one database and run in order
	for _, tt := range tests {
		var reader io.Reader
		if tt.body != "" {
			reader = strings.NewReader(tt.body)
		}

		req := httptest.NewRequest(tt.method, tt.path, reader)
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderOrigin, "https://landing.example.com")

		resp, body := call(t, service.App, req)

		assert.Equal(t, tt.wantStatus, resp.StatusCode, tt.name)
		assert.Contains(t, body, tt.wantBody, tt.name)
		assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin), tt.name)
		assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID), tt.name)
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

func TestStartShutdown(t *testing.T) {
	service := setupService(t)
	addr := freeAddr(t)

	started := make(chan error, 1)

	go func() {
		started <- service.Start(addr)
	}()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}

		_ = conn.Close()

		return true
	}, 5*time.Second, 20*time.Millisecond)

	assert.True(t, service.Alive())
	require.NoError(t, service.Shutdown())
	assert.False(t, service.Alive())

	select {
	case err := <-started:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}

func TestWaitShutdownContextDone(t *testing.T) {
	service := setupService(t)
	service.alive.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, service.WaitShutdown(ctx))
	assert.True(t, service.Alive())
}

func TestNewKeepsHandlersPerApp(t *testing.T) {
	cfg := &config.Config{Webserver: config.Webserver{Port: 3001}}

	firstDB := dbtest.New(t)
	dbtest.Seed(t, firstDB, models.Email{Email: "first@b.com"})

	first, err := New(cfg, firstDB)
	require.NoError(t, err)

	_, err = New(cfg, dbtest.New(t))
	require.NoError(t, err)

	resp, body := call(t, first.App, httptest.NewRequest(http.MethodGet, "/api/emails", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "first@b.com")
}
