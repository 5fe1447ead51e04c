package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/testutil"
)

type stubReloader struct {
	calls int
	err   error
}

func (s *stubReloader) Reload(ctx context.Context) error {
	_ = ctx
	s.calls++
	return s.err
}

type fixedVersion uint64

func (v fixedVersion) Version() uint64 { return uint64(v) }

func TestAdminReload(t *testing.T) {
	reloader := &stubReloader{}
	h := NewAdminHandler(reloader, fixedVersion(4), nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Reload), http.MethodPost, "/admin/reload", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	if body["indexVersion"] != float64(4) || reloader.calls != 1 {
		t.Fatalf("unexpected reload response %v (calls %d)", body, reloader.calls)
	}
}

func TestAdminReloadFailure(t *testing.T) {
	h := NewAdminHandler(&stubReloader{err: errors.New("upstream down")}, nil, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Reload), http.MethodPost, "/admin/reload", nil)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)

	h = NewAdminHandler(nil, nil, nil, nil)
	rr = testutil.Serve(http.HandlerFunc(h.Reload), http.MethodPost, "/admin/reload", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestAdminRefreshDaily(t *testing.T) {
	e := newEnv(t, 50)
	today := e.daily.Today()
	e.archive.Grids = map[string]grid.Grid{today: {Signature: "stale"}}
	h := NewAdminHandler(nil, nil, e.daily, nil)

	rr := testutil.Serve(http.HandlerFunc(h.RefreshDaily), http.MethodPost, "/admin/daily/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp GridResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Grid.Signature == "stale" || e.archive.Grids[today].Signature != resp.Grid.Signature {
		t.Fatalf("expected refreshed grid archived, got %+v", e.archive.Grids[today])
	}
}

func TestAdminRefreshDailyErrors(t *testing.T) {
	h := NewAdminHandler(nil, nil, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.RefreshDaily), http.MethodPost, "/admin/daily/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	e := newEnv(t, 50)
	h = NewAdminHandler(nil, nil, e.daily, nil)
	rr = testutil.Serve(http.HandlerFunc(h.RefreshDaily), http.MethodPost, "/admin/daily/refresh?date=bad", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	e = newEnv(t, 0)
	h = NewAdminHandler(nil, nil, e.daily, nil)
	rr = testutil.Serve(http.HandlerFunc(h.RefreshDaily), http.MethodPost, "/admin/daily/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}
