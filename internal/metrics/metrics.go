package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type gridStats struct {
	generations      int
	failures         int
	fallbacks        int
	lastAttempts     int
	lastValidCells   int
	validations      int
	invalidQuestions int
	indexBuilds      int
	lastCandidates   int
	lastBuildLatency time.Duration
	reloads          int
	reloadErrors     int
	gamesCreated     int
	answers          int
	correctAnswers   int
}

// Recorder keeps in-memory counters for entity providers and the grid engine, and
// forwards to OpenTelemetry instruments when configured. A nil Recorder is a no-op.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	grid  gridStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for an entity load and stores the last latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	r.otel.recordProviderAttempt(provider, duration, err)
}

// RecordRateLimit tracks that a remote source answered 429 and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	r.otel.recordRateLimit(provider, retryAfter)
}

// RecordIndexBuild tracks a precomputation run.
func (r *Recorder) RecordIndexBuild(candidates int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.grid.indexBuilds++
	r.grid.lastCandidates = candidates
	r.grid.lastBuildLatency = duration
	r.mu.Unlock()
	r.otel.recordIndexBuild(candidates, duration)
}

// RecordGeneration tracks one grid assembly. Outcome is one of the Outcome constants.
func (r *Recorder) RecordGeneration(outcome string, attempts, validCells int, fallback bool, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if outcome == OutcomeSuccess {
		r.grid.generations++
	} else {
		r.grid.failures++
	}
	if fallback {
		r.grid.fallbacks++
	}
	r.grid.lastAttempts = attempts
	r.grid.lastValidCells = validCells
	r.mu.Unlock()
	r.otel.recordGeneration(outcome, attempts, validCells, fallback, duration)
}

// RecordValidation tracks one validation gate run.
func (r *Recorder) RecordValidation(valid bool, invalidQuestions int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.grid.validations++
	r.grid.invalidQuestions += invalidQuestions
	r.mu.Unlock()
	r.otel.recordValidation(valid, invalidQuestions)
}

// RecordReload tracks an entity reload cycle.
func (r *Recorder) RecordReload(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.grid.reloads++
	if err != nil {
		r.grid.reloadErrors++
	}
	r.mu.Unlock()
	r.otel.recordReload(duration, err)
}

// RecordGameCreated counts a created game by mode.
func (r *Recorder) RecordGameCreated(mode string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.grid.gamesCreated++
	r.mu.Unlock()
	r.otel.recordGameCreated(mode)
}

// RecordAnswer counts a submitted guess.
func (r *Recorder) RecordAnswer(correct bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.grid.answers++
	if correct {
		r.grid.correctAnswers++
	}
	r.mu.Unlock()
	r.otel.recordAnswer(correct)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// Snapshot is a copy of the stats for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[provider]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// GridSnapshot is a copy of the engine counters.
type GridSnapshot struct {
	Generations      int   `json:"generations"`
	Failures         int   `json:"failures"`
	Fallbacks        int   `json:"fallbacks"`
	LastAttempts     int   `json:"lastAttempts"`
	LastValidCells   int   `json:"lastValidCells"`
	Validations      int   `json:"validations"`
	InvalidQuestions int   `json:"invalidQuestions"`
	IndexBuilds      int   `json:"indexBuilds"`
	LastCandidates   int   `json:"lastCandidates"`
	LastBuildMillis  int64 `json:"lastBuildMs"`
	Reloads          int   `json:"reloads"`
	ReloadErrors     int   `json:"reloadErrors"`
	GamesCreated     int   `json:"gamesCreated"`
	Answers          int   `json:"answers"`
	CorrectAnswers   int   `json:"correctAnswers"`
}

// Grid returns the engine counters.
func (r *Recorder) Grid() GridSnapshot {
	if r == nil {
		return GridSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	g := r.grid
	return GridSnapshot{
		Generations:      g.generations,
		Failures:         g.failures,
		Fallbacks:        g.fallbacks,
		LastAttempts:     g.lastAttempts,
		LastValidCells:   g.lastValidCells,
		Validations:      g.validations,
		InvalidQuestions: g.invalidQuestions,
		IndexBuilds:      g.indexBuilds,
		LastCandidates:   g.lastCandidates,
		LastBuildMillis:  g.lastBuildLatency.Milliseconds(),
		Reloads:          g.reloads,
		ReloadErrors:     g.reloadErrors,
		GamesCreated:     g.gamesCreated,
		Answers:          g.answers,
		CorrectAnswers:   g.correctAnswers,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
