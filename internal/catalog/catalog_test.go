package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/preston-bernstein/trivia-grid-service/internal/domain/entities"
	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
	"github.com/preston-bernstein/trivia-grid-service/internal/testutil"
)

func TestRebuildPublishesVersionedIndex(t *testing.T) {
	rec := metrics.NewRecorder()
	logger, buf := testutil.NewBufferLogger()
	c := New(grid.DefaultConfig(), logger, rec)

	if c.Current() != nil || c.Version() != 0 {
		t.Fatalf("expected empty catalog before first build")
	}
	if _, err := c.Assembler(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}

	idx, err := c.Rebuild(context.Background(), testutil.SyntheticPool(50))
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if idx.Version() != 1 || c.Version() != 1 || c.Current() != idx {
		t.Fatalf("expected version 1 published, got %d", c.Version())
	}
	if idx.Len() == 0 {
		t.Fatalf("expected candidates in published index")
	}
	if got := rec.Grid().IndexBuilds; got != 1 {
		t.Fatalf("expected index build recorded, got %d", got)
	}
	if !strings.Contains(buf.String(), "index published") {
		t.Fatalf("expected publish log, got %q", buf.String())
	}

	if err := c.Load(context.Background(), testutil.SyntheticPool(30)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Version() != 2 {
		t.Fatalf("expected version 2 after second build, got %d", c.Version())
	}

	asm, err := c.Assembler(grid.WithSeed(1))
	if err != nil {
		t.Fatalf("assembler: %v", err)
	}
	g, err := asm.Assemble(context.Background())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if g.IndexVersion != 2 {
		t.Fatalf("expected grid stamped with index version 2, got %d", g.IndexVersion)
	}
}

func TestRebuildRejectsEmptyPool(t *testing.T) {
	c := New(grid.DefaultConfig(), nil, nil)
	if _, err := c.Rebuild(context.Background(), nil); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if c.Current() != nil {
		t.Fatalf("expected nothing published")
	}
}

func TestRebuildKeepsPreviousIndexWhenNewPoolIsUseless(t *testing.T) {
	c := New(grid.DefaultConfig(), nil, nil)
	first, err := c.Rebuild(context.Background(), testutil.SyntheticPool(50))
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	lonely := []entities.Entity{testutil.SampleEntity("Solo", "Turkey", "Galatasaray", "Forward")}
	if _, err := c.Rebuild(context.Background(), lonely); !errors.Is(err, grid.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if c.Current() != first {
		t.Fatalf("expected previous index to stay published")
	}
}

func TestRebuildPublishesEmptyIndexWhenNothingPublished(t *testing.T) {
	c := New(grid.DefaultConfig(), nil, nil)
	lonely := []entities.Entity{testutil.SampleEntity("Solo", "Turkey", "Galatasaray", "Forward")}

	idx, err := c.Rebuild(context.Background(), lonely)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if idx.Len() != 0 || c.Current().CanGenerate(1) {
		t.Fatalf("expected an empty index to be published")
	}
}

func TestRebuildHonorsCanceledContext(t *testing.T) {
	c := New(grid.DefaultConfig(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Rebuild(ctx, testutil.SyntheticPool(10)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestConcurrentReadersSeeWholeIndexes(t *testing.T) {
	c := New(grid.DefaultConfig(), nil, nil)
	if _, err := c.Rebuild(context.Background(), testutil.SyntheticPool(50)); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				idx := c.Current()
				if idx == nil || idx.Len() == 0 {
					t.Errorf("observed unpublished or empty index")
					return
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		if _, err := c.Rebuild(context.Background(), testutil.SyntheticPool(40+i)); err != nil {
			t.Fatalf("rebuild: %v", err)
		}
	}
	close(stop)
	wg.Wait()

	if c.Version() != 6 {
		t.Fatalf("expected 6 published versions, got %d", c.Version())
	}
}
