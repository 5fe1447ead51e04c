package http

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/trivia-grid-service/internal/app/daily"
	appgames "github.com/preston-bernstein/trivia-grid-service/internal/app/games"
	"github.com/preston-bernstein/trivia-grid-service/internal/catalog"
	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/http/handlers"
	"github.com/preston-bernstein/trivia-grid-service/internal/http/middleware"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
	"github.com/preston-bernstein/trivia-grid-service/internal/poller"
	"github.com/preston-bernstein/trivia-grid-service/internal/store"
	"github.com/preston-bernstein/trivia-grid-service/internal/teststubs"
	"github.com/preston-bernstein/trivia-grid-service/internal/testutil"
)

type noopReloader struct{}

func (noopReloader) Reload(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) nethttp.Handler {
	t.Helper()
	rec := metrics.NewRecorder()
	cat := catalog.New(grid.DefaultConfig(), nil, rec)
	if _, err := cat.Rebuild(context.Background(), testutil.SyntheticPool(50)); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	svc := appgames.NewService(store.NewMemoryStore(), cat, appgames.Config{}, nil, rec)
	dailySvc := daily.NewService(&teststubs.StubArchive{}, svc, nil)
	status := func() poller.Status { return poller.Status{LastSuccess: time.Now(), Entities: 50} }

	return NewRouter(RouterConfig{
		Handler:       handlers.NewHandler(cat, rec, nil, status),
		Grids:         handlers.NewGridHandler(svc, dailySvc, nil),
		Games:         handlers.NewGameHandler(svc, nil),
		Admin:         handlers.NewAdminHandler(noopReloader{}, cat, dailySvc, nil),
		AdminToken:    "secret",
		CreateLimiter: limiter,
		Metrics:       rec,
	})
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t, nil)
	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{nethttp.MethodGet, "/health", "", nethttp.StatusOK},
		{nethttp.MethodGet, "/ready", "", nethttp.StatusOK},
		{nethttp.MethodGet, "/stats", "", nethttp.StatusOK},
		{nethttp.MethodGet, "/grids/fresh", "", nethttp.StatusOK},
		{nethttp.MethodGet, "/grids/daily", "", nethttp.StatusOK},
		{nethttp.MethodPost, "/questions/validate", `{"questions":[]}`, nethttp.StatusOK},
		{nethttp.MethodPost, "/games", `{"playerId":"p1"}`, nethttp.StatusCreated},
		{nethttp.MethodGet, "/games/unknown", "", nethttp.StatusNotFound},
		{nethttp.MethodPost, "/games/unknown/end", "", nethttp.StatusNotFound},
		{nethttp.MethodGet, "/nope", "", nethttp.StatusNotFound},
		{nethttp.MethodPut, "/health", "", nethttp.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := testutil.Serve(router, tc.method, tc.path, strings.NewReader(tc.body))
			testutil.AssertStatus(t, rr, tc.want)
			if rr.Header().Get("X-Request-ID") == "" {
				t.Fatalf("expected request id header on every response")
			}
		})
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := testutil.Serve(router, nethttp.MethodPost, "/admin/reload", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusUnauthorized)

	req := httptest.NewRequest(nethttp.MethodPost, "/admin/reload", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), nethttp.StatusOK)

	req = httptest.NewRequest(nethttp.MethodPost, "/admin/daily/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), nethttp.StatusOK)
}

func TestRouterRateLimitsGameCreation(t *testing.T) {
	router := newTestRouter(t, middleware.NewRateLimiter(0.001, 1))

	create := func() int {
		req := httptest.NewRequest(nethttp.MethodPost, "/games", strings.NewReader(`{"playerId":"p1"}`))
		req.RemoteAddr = "10.0.0.1:4000"
		return testutil.ServeRequest(router, req).Code
	}
	if got := create(); got != nethttp.StatusCreated {
		t.Fatalf("expected first create to succeed, got %d", got)
	}
	if got := create(); got != nethttp.StatusTooManyRequests {
		t.Fatalf("expected second create to be limited, got %d", got)
	}

	rr := testutil.Serve(router, nethttp.MethodGet, "/grids/fresh", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
}

func TestRouterRecoversPanics(t *testing.T) {
	router := NewRouter(RouterConfig{
		Handler: handlers.NewHandler(panickingIndex{}, nil, nil, nil),
	})
	rr := testutil.Serve(router, nethttp.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusInternalServerError)
}

type panickingIndex struct{}

func (panickingIndex) Current() *grid.Index { panic("boom") }
