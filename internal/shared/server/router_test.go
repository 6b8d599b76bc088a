package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"research-backend/internal/shared/config"
	"research-backend/internal/shared/server/middleware"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/research/generate", func(c *gin.Context) { c.Status(http.StatusOK) })
	rg.GET("/research/current", func(c *gin.Context) { c.Status(http.StatusOK) })
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return NewRouter(RouterDeps{
		Config: config.Config{
			Env:             "dev",
			CORSAllowOrigin: []string{"http://localhost:3000"},
			RateLimitRPS:    1,
			RateLimitBurst:  2,
		},
		Handlers: []RouteRegistrar{pingHandler{}},
		Limiter:  middleware.NewRateLimiter(func() time.Time { return now }),
	})
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9090": ":9090", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	router := testRouter()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK || resp.Header().Get(middleware.SessionHeader) == "" {
		t.Fatalf("expected 200 with session header, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "research_generated_total") {
		t.Fatalf("unexpected metrics response %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGenerateIsRateLimitedPerSession(t *testing.T) {
	router := testRouter()

	send := func(method, path, session string) int {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set(middleware.SessionHeader, session)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp.Code
	}

	for i := 0; i < 2; i++ {
		if code := send(http.MethodPost, "/api/v1/research/generate", "a"); code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, code)
		}
	}
	if code := send(http.MethodPost, "/api/v1/research/generate", "a"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if code := send(http.MethodPost, "/api/v1/research/generate", "b"); code != http.StatusOK {
		t.Fatalf("other session expected 200, got %d", code)
	}
	if code := send(http.MethodGet, "/api/v1/research/current", "a"); code != http.StatusOK {
		t.Fatalf("reads expected 200, got %d", code)
	}
}

func TestGenerateWithoutSessionHeaderIsLimitedPerClient(t *testing.T) {
	router := testRouter()

	limited := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/research/generate", nil)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		switch {
		case i < 2 && resp.Code != http.StatusOK:
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		case resp.Code == http.StatusTooManyRequests:
			limited++
		}
	}
	if limited != 18 {
		t.Fatalf("expected 18 limited requests, got %d", limited)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/research/generate", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("other client expected 200, got %d", resp.Code)
	}
}

func TestRotatingSessionsShareClientAllowance(t *testing.T) {
	router := testRouter()

	// burst 2 per session, 10 sessions' worth per client IP.
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/research/generate", nil)
		req.Header.Set(middleware.SessionHeader, fmt.Sprintf("rotated-%d", i))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/research/generate", nil)
	req.Header.Set(middleware.SessionHeader, "rotated-new")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the client allowance is spent, got %d", resp.Code)
	}
}
