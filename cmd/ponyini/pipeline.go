package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/catalog"
	"mercator-hq/ponyini/pkg/cli"
	"mercator-hq/ponyini/pkg/config"
	"mercator-hq/ponyini/pkg/pack"
	"mercator-hq/ponyini/pkg/telemetry"
)

const shutdownTimeout = 5 * time.Second

// pipeline is what the pack commands share: configuration, telemetry, the
// optional catalog and a Pack wired to all of them.
type pipeline struct {
	cfg   *config.Config
	tel   *telemetry.Telemetry
	store catalog.Store
	pack  *pack.Pack
}

func newPipeline(cmd *cobra.Command) (*pipeline, error) {
	cfg := config.MustGetConfig()

	tel, err := newTelemetry(cmd, cfg)
	if err != nil {
		return nil, err
	}
	pl := &pipeline{cfg: cfg, tel: tel}

	opts := []pack.Option{
		pack.WithLogger(tel.Logger()),
		pack.WithMetrics(tel.Metrics()),
		pack.WithTracer(tel.Tracer()),
	}
	if cfg.Catalog.Enabled {
		store, err := catalog.Open(&cfg.Catalog)
		if err != nil {
			_ = pl.Close()
			return nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		pl.store = store
		opts = append(opts, pack.WithCatalog(store))
		tel.Health().RegisterCheck("catalog", store.Ping)
	}

	pl.pack, err = pack.New(cfg, opts...)
	if err != nil {
		_ = pl.Close()
		return nil, err
	}
	return pl, nil
}

// Close closes the catalog and flushes pending spans.
func (pl *pipeline) Close() error {
	var errs []error
	if pl.store != nil {
		errs = append(errs, pl.store.Close())
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	errs = append(errs, pl.tel.Shutdown(ctx))
	return errors.Join(errs...)
}

// newTelemetry builds telemetry writing logs to the command's stderr and
// makes its logger the slog default.
func newTelemetry(cmd *cobra.Command, cfg *config.Config) (*telemetry.Telemetry, error) {
	tel, err := telemetry.New(&cfg.Telemetry, versionInfo(), cmd.ErrOrStderr())
	if err != nil {
		return nil, cli.NewConfigError("telemetry", err.Error())
	}
	slog.SetDefault(tel.Logger().Slog())
	return tel, nil
}
