package pack

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mercator-hq/ponyini/pkg/catalog"
	"mercator-hq/ponyini/pkg/config"
	"mercator-hq/ponyini/pkg/ponyini/parser"
	"mercator-hq/ponyini/pkg/ponyini/records"
	"mercator-hq/ponyini/pkg/telemetry/logging"
	"mercator-hq/ponyini/pkg/telemetry/metrics"
	"mercator-hq/ponyini/pkg/telemetry/tracing"
)

// File names inside a pony directory.
const (
	SourceName   = "pony.ini"
	RepairedName = "_pony.ini"
	ConfigName   = "config.json"
)

// Triggers passed to Run.
const (
	TriggerManual  = "manual"
	TriggerStartup = "startup"
	TriggerWatch   = "watch"
)

// Pack runs the repair and conversion pipeline over a directory of ponies.
// A Pack may be reused across runs; its cache carries over between them.
type Pack struct {
	root          string
	baseURLPrefix string
	workers       int
	repairNames   bool
	strictSyntax  bool
	jsonIndent    string

	parser    *parser.Parser
	transform []records.Option

	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	catalog catalog.Store
	cache   *Cache
	now     func() time.Time
}

// Option configures a Pack.
type Option func(*Pack)

// WithLogger sets the logger. Parse and transform diagnostics are logged
// through it as well.
func WithLogger(logger *logging.Logger) Option {
	return func(p *Pack) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(p *Pack) {
		p.metrics = collector
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(p *Pack) {
		p.tracer = tracer
	}
}

// WithCatalog records every conversion in store.
func WithCatalog(store catalog.Store) Option {
	return func(p *Pack) {
		p.catalog = store
	}
}

// WithClock overrides the time source used for catalog timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pack) {
		p.now = now
	}
}

// New creates a Pack for cfg.Pack.Root.
func New(cfg *config.Config, opts ...Option) (*Pack, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pack: config is nil")
	}
	if cfg.Pack.Root == "" {
		return nil, fmt.Errorf("pack: root is empty")
	}

	p := &Pack{
		root:          cfg.Pack.Root,
		baseURLPrefix: cfg.Pack.BaseURLPrefix,
		workers:       cfg.Pack.Workers,
		repairNames:   cfg.Pack.RepairNames,
		strictSyntax:  cfg.Conversion.StrictSyntax,
		jsonIndent:    cfg.Conversion.JSONIndent,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.workers <= 0 {
		p.workers = config.DefaultPackWorkers
	}
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	p.logger = p.logger.With("component", "pack")
	if p.metrics == nil {
		p.metrics = metrics.NewCollector(nil, nil)
	}
	if p.tracer == nil {
		p.tracer = tracing.Noop()
	}

	p.parser = NewParser(cfg, p.logger.Slog())
	p.transform = TransformOptions(cfg, p.logger.Slog())

	if cfg.Pack.CacheSize > 0 {
		cache, err := NewCache(cfg.Pack.CacheSize, p.metrics)
		if err != nil {
			return nil, fmt.Errorf("pack: create cache: %w", err)
		}
		p.cache = cache
	}

	return p, nil
}

// NewParser returns a parser configured from cfg. A nil logger keeps
// diagnostics out of the log.
func NewParser(cfg *config.Config, logger *slog.Logger) *parser.Parser {
	maxSize := cfg.Pack.MaxFileSize
	if maxSize <= 0 {
		maxSize = config.DefaultPackMaxFileSize
	}
	return parser.NewParser().
		WithMaxFileSize(maxSize).
		WithStrictMode(cfg.Conversion.StrictSyntax).
		WithLogger(logger)
}

// TransformOptions returns the record transform options selected by cfg.
func TransformOptions(cfg *config.Config, logger *slog.Logger) []records.Option {
	opts := []records.Option{
		records.WithLegacyAutoSelectImages(cfg.Conversion.LegacyAutoSelect()),
		records.WithStrictCoercion(cfg.Conversion.StrictCoercion),
	}
	if logger != nil {
		opts = append(opts, records.WithLogger(logger))
	}
	return opts
}

// Root returns the pack root directory.
func (p *Pack) Root() string {
	return p.root
}

// RunReport collects the reports of one full pipeline run.
type RunReport struct {
	RunID    string
	Trigger  string
	Renames  *RenameReport
	Repair   *Report
	Convert  *Report
	Duration time.Duration
}

// Failed returns every failed pony of the repair and convert stages.
func (r *RunReport) Failed() []PonyResult {
	var out []PonyResult
	if r.Repair != nil {
		out = append(out, r.Repair.Failed()...)
	}
	if r.Convert != nil {
		out = append(out, r.Convert.Failed()...)
	}
	return out
}

// Run renames unsafe entries (when enabled), repairs every pony.ini and
// converts every _pony.ini. Per-pony failures are reported, not returned;
// the error is non-nil only when a stage cannot run at all or ctx ends.
func (p *Pack) Run(ctx context.Context, trigger string) (*RunReport, error) {
	if trigger == "" {
		trigger = TriggerManual
	}
	ctx = ensureRunID(ctx)
	report := &RunReport{RunID: logging.GetRunID(ctx), Trigger: trigger}
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, tracing.SpanPack,
		tracing.NewAttributeBuilder().WithRun(report.RunID).Build())
	defer span.End()

	p.logger.InfoContext(ctx, "pack run started", "root", p.root, "trigger", trigger)

	var err error
	if p.repairNames {
		if report.Renames, err = p.RepairNames(ctx); err != nil {
			tracing.SetError(span, err)
			return report, err
		}
	}
	if report.Repair, err = p.RepairINI(ctx); err != nil {
		tracing.SetError(span, err)
		return report, err
	}
	if report.Convert, err = p.Convert(ctx); err != nil {
		tracing.SetError(span, err)
		return report, err
	}

	report.Duration = time.Since(start)
	p.metrics.RecordPackRun(trigger, report.Duration, len(report.Convert.Ponies))

	p.logger.InfoContext(ctx, "pack run finished",
		"ponies", len(report.Convert.Ponies),
		"failed", len(report.Failed()),
		"duration", report.Duration)
	return report, nil
}

func ensureRunID(ctx context.Context) context.Context {
	if logging.GetRunID(ctx) != "" {
		return ctx
	}
	return logging.WithRunID(ctx, uuid.NewString())
}

// Cache returns the pipeline cache, or nil when caching is disabled.
func (p *Pack) Cache() *Cache {
	return p.cache
}
