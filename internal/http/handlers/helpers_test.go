package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/trivia-grid-service/internal/app/daily"
	appgames "github.com/preston-bernstein/trivia-grid-service/internal/app/games"
	"github.com/preston-bernstein/trivia-grid-service/internal/catalog"
	"github.com/preston-bernstein/trivia-grid-service/internal/grid"
	"github.com/preston-bernstein/trivia-grid-service/internal/metrics"
	"github.com/preston-bernstein/trivia-grid-service/internal/store"
	"github.com/preston-bernstein/trivia-grid-service/internal/teststubs"
	"github.com/preston-bernstein/trivia-grid-service/internal/testutil"
)

type env struct {
	catalog *catalog.Catalog
	games   *appgames.Service
	daily   *daily.Service
	archive *teststubs.StubArchive
	metrics *metrics.Recorder
	router  chi.Router
}

// newEnv wires handlers over a real catalog built from the synthetic pool. A pool
// size of zero leaves the catalog unbuilt.
func newEnv(t *testing.T, poolSize int) *env {
	t.Helper()
	rec := metrics.NewRecorder()
	cat := catalog.New(grid.DefaultConfig(), nil, rec)
	if poolSize > 0 {
		if _, err := cat.Rebuild(context.Background(), testutil.SyntheticPool(poolSize)); err != nil {
			t.Fatalf("rebuild: %v", err)
		}
	}
	svc := appgames.NewService(store.NewMemoryStore(), cat, appgames.Config{}, nil, rec)
	archive := &teststubs.StubArchive{}
	dailySvc := daily.NewService(archive, svc, nil)

	e := &env{catalog: cat, games: svc, daily: dailySvc, archive: archive, metrics: rec}

	grids := NewGridHandler(svc, dailySvc, nil)
	games := NewGameHandler(svc, nil)
	r := chi.NewRouter()
	r.Get("/grids/fresh", grids.Fresh)
	r.Get("/grids/daily", grids.Daily)
	r.Post("/questions/validate", grids.ValidateQuestions)
	r.Post("/games", games.Create)
	r.Get("/games/{id}", games.Get)
	r.Delete("/games/{id}", games.Delete)
	r.Post("/games/{id}/answers", games.Answer)
	r.Post("/games/{id}/end", games.End)
	e.router = r
	return e
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return testutil.ServeRequest(e.router, req)
}

func sampleQuestions() []grid.Question {
	return []grid.Question{
		{
			RowFeature: "Galatasaray", RowFeatureType: grid.DimensionTeam,
			ColFeature: "Forward", ColFeatureType: grid.DimensionRole,
			CorrectAnswers: []string{"Hakan Şükür", "Mauro Icardi", "Didier Drogba"},
		},
		{
			RowFeature: "Galatasaray", RowFeatureType: grid.DimensionTeam,
			ColFeature: "Romania", ColFeatureType: grid.DimensionNationality,
			CorrectAnswers: []string{"Gheorghe Hagi", "Gheorghe Popescu", "Bogdan Stelea"},
		},
	}
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	msg, _ := body["error"].(string)
	return msg
}
