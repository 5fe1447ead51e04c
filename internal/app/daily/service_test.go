package daily

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/teststubs"
	"github.com/preston-bernstein/trivia-grid-service/internal/testutil"
)

type stubGenerator struct {
	mu        sync.Mutex
	calls     int
	previous  []string
	err       error
	signature string
}

func (g *stubGenerator) Generate(ctx context.Context, previous string) (grid.Grid, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.previous = append(g.previous, previous)
	if g.err != nil {
		return grid.Grid{}, g.err
	}
	sig := g.signature
	if sig == "" {
		sig = "sig"
	}
	return grid.Grid{Signature: sig, ValidCells: 9}, nil
}

var today = testutil.DateAt("2024-05-10", 15)

func newTestService(archive *teststubs.StubArchive, gen *stubGenerator) *Service {
	svc := NewService(archive, gen, nil)
	svc.now = testutil.NowAt(today)
	return svc
}

func TestGetGeneratesAndArchivesToday(t *testing.T) {
	archive := &teststubs.StubArchive{}
	gen := &stubGenerator{signature: "today"}
	svc := newTestService(archive, gen)

	g, err := svc.Get(context.Background(), "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if g.Signature != "today" {
		t.Fatalf("expected generated grid, got %+v", g)
	}
	if archive.Writes != 1 || archive.Grids["2024-05-10"].Signature != "today" {
		t.Fatalf("expected grid archived under today, got %+v", archive.Grids)
	}

	if _, err := svc.Get(context.Background(), "2024-05-10"); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected archived grid to be reused, got %d generations", gen.calls)
	}
}

func TestGetAvoidsYesterdaysGrid(t *testing.T) {
	archive := &teststubs.StubArchive{Grids: map[string]grid.Grid{
		"2024-05-09": {Signature: "yesterday"},
	}}
	gen := &stubGenerator{}
	svc := newTestService(archive, gen)

	if _, err := svc.Get(context.Background(), "2024-05-10"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(gen.previous) != 1 || gen.previous[0] != "yesterday" {
		t.Fatalf("expected yesterday's signature as previous, got %v", gen.previous)
	}
}

func TestGetPastAndFutureDates(t *testing.T) {
	archive := &teststubs.StubArchive{Grids: map[string]grid.Grid{
		"2024-05-01": {Signature: "old"},
	}}
	gen := &stubGenerator{}
	svc := newTestService(archive, gen)

	g, err := svc.Get(context.Background(), "2024-05-01")
	if err != nil || g.Signature != "old" {
		t.Fatalf("expected archived grid, got %+v %v", g, err)
	}
	if _, err := svc.Get(context.Background(), "2024-05-02"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing past date, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "2024-05-11"); !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("expected no generation for past or future dates, got %d", gen.calls)
	}
}

func TestGetGenerationFailure(t *testing.T) {
	archive := &teststubs.StubArchive{}
	boom := errors.New("boom")
	svc := newTestService(archive, &stubGenerator{err: boom})

	_, err := svc.Get(context.Background(), "")
	if !errors.Is(err, boom) {
		t.Fatalf("expected generator error, got %v", err)
	}
	if archive.Writes != 0 {
		t.Fatalf("expected nothing archived")
	}
}

func TestGetArchiveLoadFailure(t *testing.T) {
	boom := errors.New("disk")
	archive := &teststubs.StubArchive{LoadErr: boom}
	gen := &stubGenerator{}
	svc := newTestService(archive, gen)

	if _, err := svc.Get(context.Background(), ""); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("expected no generation on load failure")
	}
}

func TestGetWriteFailureStillServes(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	archive := &teststubs.StubArchive{WriteErr: errors.New("read-only")}
	svc := NewService(archive, &stubGenerator{signature: "x"}, logger)
	svc.now = testutil.NowAt(today)

	g, err := svc.Get(context.Background(), "")
	if err != nil || g.Signature != "x" {
		t.Fatalf("expected grid despite write failure, got %+v %v", g, err)
	}
	if !strings.Contains(buf.String(), "daily grid write failed") {
		t.Fatalf("expected write failure to be logged, got %s", buf.String())
	}
}

func TestRefreshRegeneratesAwayFromCurrent(t *testing.T) {
	archive := &teststubs.StubArchive{Grids: map[string]grid.Grid{
		"2024-05-10": {Signature: "current"},
	}}
	gen := &stubGenerator{signature: "fresh"}
	svc := newTestService(archive, gen)

	g, err := svc.Refresh(context.Background(), "")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if g.Signature != "fresh" || archive.Grids["2024-05-10"].Signature != "fresh" {
		t.Fatalf("expected refreshed grid archived, got %+v", archive.Grids)
	}
	if gen.previous[0] != "current" {
		t.Fatalf("expected current signature as previous, got %v", gen.previous)
	}
}

func TestEnsureIsSerialized(t *testing.T) {
	archive := &teststubs.StubArchive{}
	gen := &stubGenerator{}
	svc := newTestService(archive, gen)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Ensure(context.Background(), "2024-05-10")
		}()
	}
	wg.Wait()
	if gen.calls != 1 {
		t.Fatalf("expected a single generation, got %d", gen.calls)
	}
}
