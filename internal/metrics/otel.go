package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const defaultServiceName = "trivia-grid-service"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup wires OpenTelemetry metrics to a Prometheus registry and, when an endpoint is
// configured, an OTLP/HTTP exporter. It returns the Recorder, the /metrics handler and a
// shutdown function. When disabled the Recorder keeps only in-memory counters.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx               context.Context
	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	providerAttempts  metric.Int64Counter
	providerErrors    metric.Int64Counter
	providerLatencyMs metric.Float64Histogram
	rateLimitHits     metric.Int64Counter
	retryAfterMs      metric.Float64Histogram
	indexBuilds       metric.Int64Counter
	indexCandidates   metric.Int64Gauge
	indexBuildMs      metric.Float64Histogram
	generations       metric.Int64Counter
	genAttempts       metric.Int64Histogram
	genValidCells     metric.Int64Histogram
	genLatencyMs      metric.Float64Histogram
	validations       metric.Int64Counter
	invalidQuestions  metric.Int64Counter
	reloads           metric.Int64Counter
	reloadErrors      metric.Int64Counter
	reloadLatencyMs   metric.Float64Histogram
	gamesCreated      metric.Int64Counter
	answers           metric.Int64Counter
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

// instrumentBuilder creates instruments until the first error, which it keeps.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) counter(name, desc string) metric.Int64Counter {
	if b.err != nil {
		return nil
	}
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.err = err
	return c
}

func (b *instrumentBuilder) histogram(name, desc string) metric.Float64Histogram {
	if b.err != nil {
		return nil
	}
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("ms"))
	b.err = err
	return h
}

func (b *instrumentBuilder) intHistogram(name, desc string) metric.Int64Histogram {
	if b.err != nil {
		return nil
	}
	h, err := b.meter.Int64Histogram(name, metric.WithDescription(desc))
	b.err = err
	return h
}

func (b *instrumentBuilder) gauge(name, desc string) metric.Int64Gauge {
	if b.err != nil {
		return nil
	}
	g, err := b.meter.Int64Gauge(name, metric.WithDescription(desc))
	b.err = err
	return g
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	b := &instrumentBuilder{meter: provider.Meter(defaultServiceName)}
	inst := &otelInstruments{
		ctx:               context.Background(),
		requests:          b.counter("http_requests_total", "HTTP requests served"),
		requestLatencyMs:  b.histogram("http_request_duration_ms", "HTTP request latency"),
		providerAttempts:  b.counter("provider_attempts_total", "Entity provider load attempts"),
		providerErrors:    b.counter("provider_errors_total", "Failed entity provider loads"),
		providerLatencyMs: b.histogram("provider_duration_ms", "Entity provider load latency"),
		rateLimitHits:     b.counter("provider_rate_limit_hits_total", "Remote source 429 responses"),
		retryAfterMs:      b.histogram("provider_retry_after_ms", "Retry-After advertised by the remote source"),
		indexBuilds:       b.counter("grid_index_builds_total", "Combination index builds"),
		indexCandidates:   b.gauge("grid_index_candidates", "Candidates in the current index"),
		indexBuildMs:      b.histogram("grid_index_build_duration_ms", "Combination index build latency"),
		generations:       b.counter("grid_generations_total", "Grid assemblies by outcome"),
		genAttempts:       b.intHistogram("grid_generation_attempts", "Header selections per assembly"),
		genValidCells:     b.intHistogram("grid_generation_valid_cells", "Valid cells per returned grid"),
		genLatencyMs:      b.histogram("grid_generation_duration_ms", "Grid assembly latency"),
		validations:       b.counter("grid_validations_total", "Validation gate runs by outcome"),
		invalidQuestions:  b.counter("grid_invalid_questions_total", "Questions rejected by the validation gate"),
		reloads:           b.counter("entity_reloads_total", "Entity reload cycles"),
		reloadErrors:      b.counter("entity_reload_errors_total", "Failed entity reload cycles"),
		reloadLatencyMs:   b.histogram("entity_reload_duration_ms", "Entity reload latency"),
		gamesCreated:      b.counter("games_created_total", "Games created by mode"),
		answers:           b.counter("game_answers_total", "Submitted guesses by outcome"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	)
	o.requests.Add(o.ctx, 1, attrs)
	o.requestLatencyMs.Record(o.ctx, millis(duration), attrs)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.providerAttempts.Add(o.ctx, 1, attrs)
	o.providerLatencyMs.Record(o.ctx, millis(duration), attrs)
	if err != nil {
		o.providerErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(provider string, retryAfter time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrProvider, provider))
	o.rateLimitHits.Add(o.ctx, 1, attrs)
	if retryAfter > 0 {
		o.retryAfterMs.Record(o.ctx, millis(retryAfter), attrs)
	}
}

func (o *otelInstruments) recordIndexBuild(candidates int, duration time.Duration) {
	if o == nil {
		return
	}
	o.indexBuilds.Add(o.ctx, 1)
	o.indexCandidates.Record(o.ctx, int64(candidates))
	o.indexBuildMs.Record(o.ctx, millis(duration))
}

func (o *otelInstruments) recordGeneration(outcome string, attempts, validCells int, fallback bool, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrOutcome, outcome),
		attribute.Bool(AttrFallback, fallback),
	)
	o.generations.Add(o.ctx, 1, attrs)
	o.genAttempts.Record(o.ctx, int64(attempts), attrs)
	o.genLatencyMs.Record(o.ctx, millis(duration), attrs)
	if outcome == OutcomeSuccess {
		o.genValidCells.Record(o.ctx, int64(validCells))
	}
}

func (o *otelInstruments) recordValidation(valid bool, invalidQuestions int) {
	if o == nil {
		return
	}
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	o.validations.Add(o.ctx, 1, metric.WithAttributes(attribute.String(AttrOutcome, outcome)))
	if invalidQuestions > 0 {
		o.invalidQuestions.Add(o.ctx, int64(invalidQuestions))
	}
}

func (o *otelInstruments) recordReload(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.reloads.Add(o.ctx, 1)
	o.reloadLatencyMs.Record(o.ctx, millis(duration))
	if err != nil {
		o.reloadErrors.Add(o.ctx, 1)
	}
}

func (o *otelInstruments) recordGameCreated(mode string) {
	if o == nil {
		return
	}
	o.gamesCreated.Add(o.ctx, 1, metric.WithAttributes(attribute.String(AttrMode, mode)))
}

func (o *otelInstruments) recordAnswer(correct bool) {
	if o == nil {
		return
	}
	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	o.answers.Add(o.ctx, 1, metric.WithAttributes(attribute.String(AttrOutcome, outcome)))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
