package watch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"mercator-hq/ponyini/pkg/catalog/retention"
	"mercator-hq/ponyini/pkg/pack"
	"mercator-hq/ponyini/pkg/telemetry/health"
	"mercator-hq/ponyini/pkg/telemetry/logging"
	"mercator-hq/ponyini/pkg/telemetry/metrics"
)

// ShutdownTimeout bounds the graceful shutdown of the HTTP endpoint.
const ShutdownTimeout = 5 * time.Second

// Service keeps a pack up to date: it runs the pipeline once at start, then
// again after every change the watcher reports. Optionally it prunes the
// catalog on a schedule and serves metrics and health endpoints over HTTP.
type Service struct {
	pack      *pack.Pack
	watcher   *Watcher
	scheduler *retention.Scheduler
	checker   *health.Checker
	metrics   *metrics.Collector
	logger    *logging.Logger

	address     string
	metricsPath string
	version     health.VersionInfo

	runMu   sync.Mutex
	mu      sync.RWMutex
	last    *pack.RunReport
	lastErr error

	listener net.Listener
	server   *http.Server
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithScheduler runs the retention scheduler alongside the watcher.
func WithScheduler(s *retention.Scheduler) ServiceOption {
	return func(svc *Service) {
		svc.scheduler = s
	}
}

// WithHealth serves the checker's endpoints and registers the watcher checks
// with it.
func WithHealth(checker *health.Checker, info health.VersionInfo) ServiceOption {
	return func(svc *Service) {
		svc.checker = checker
		svc.version = info
	}
}

// WithMetrics serves the collector's registry at path.
func WithMetrics(collector *metrics.Collector, path string) ServiceOption {
	return func(svc *Service) {
		svc.metrics = collector
		svc.metricsPath = path
	}
}

// WithAddress serves metrics and health on address. Without it no HTTP
// endpoint is started.
func WithAddress(address string) ServiceOption {
	return func(svc *Service) {
		svc.address = address
	}
}

// WithServiceLogger sets the logger.
func WithServiceLogger(logger *logging.Logger) ServiceOption {
	return func(svc *Service) {
		svc.logger = logger
	}
}

// NewService creates a service for p driven by w.
func NewService(p *pack.Pack, w *Watcher, opts ...ServiceOption) *Service {
	svc := &Service{pack: p, watcher: w}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = logging.Discard()
	}
	svc.logger = svc.logger.With("component", "watch")

	if svc.checker != nil {
		svc.checker.RegisterCheck("watcher", func(context.Context) error {
			if !svc.watcher.Running() {
				return errors.New("watcher is not running")
			}
			return nil
		})
		svc.checker.RegisterCheck("last_run", func(context.Context) error {
			_, err := svc.LastRun()
			return err
		})
	}
	return svc
}

// RunOnce runs the pack pipeline. Concurrent calls are serialized.
func (s *Service) RunOnce(ctx context.Context, trigger string) (*pack.RunReport, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	report, err := s.pack.Run(ctx, trigger)
	if err == nil {
		if failed := report.Failed(); len(failed) > 0 {
			err = fmt.Errorf("%d ponies failed, first: %s: %w", len(failed), failed[0].Input, failed[0].Err)
		}
	}

	s.mu.Lock()
	s.last, s.lastErr = report, err
	s.mu.Unlock()
	return report, err
}

// LastRun returns the report and error of the most recent run.
func (s *Service) LastRun() (*pack.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.lastErr
}

// Handler returns the HTTP handler serving metrics and health endpoints.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.metrics != nil {
		path := s.metricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, s.metrics.Handler())
	}
	if s.checker != nil {
		s.checker.Mount(mux, s.version)
	}
	return mux
}

// Addr returns the address the HTTP endpoint listens on, or "" when it is
// not running.
func (s *Service) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run blocks until ctx is cancelled or the watcher stops. The initial run's
// failure is logged, not returned, so a broken pony does not keep the
// watcher from starting.
func (s *Service) Run(ctx context.Context) error {
	if err := s.startServer(); err != nil {
		return err
	}
	defer s.shutdownServer()

	if s.scheduler != nil {
		if err := s.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start retention scheduler: %w", err)
		}
		defer s.scheduler.Stop()
	}

	if _, err := s.RunOnce(ctx, pack.TriggerStartup); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		s.logger.WarnContext(ctx, "initial pack run incomplete", "error", err)
	}

	defer func() {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Error("failed to stop watcher", "error", err)
		}
	}()

	return s.watcher.Watch(ctx, func(ctx context.Context) error {
		_, err := s.RunOnce(ctx, pack.TriggerWatch)
		return err
	})
}

func (s *Service) startServer() error {
	if s.address == "" {
		return nil
	}

	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.mu.Lock()
	s.listener, s.server = ln, srv
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics endpoint failed", "error", err)
		}
	}()
	s.logger.Info("serving metrics and health", "address", ln.Addr().String())
	return nil
}

func (s *Service) shutdownServer() {
	s.mu.Lock()
	srv := s.server
	s.server, s.listener = nil, nil
	s.mu.Unlock()
	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("error during server shutdown", "error", err)
	}
}
