package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/catalog/retention"
	"mercator-hq/ponyini/pkg/cli"
	"mercator-hq/ponyini/pkg/watch"
)

var watchFlags struct {
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reconvert the pack whenever a pony.ini changes",
	Long: `Run the pipeline once, then watch the pack root and run it again
whenever a pony.ini is created or changed. Changes are debounced
(watch.debounce) so a burst of saves triggers one run.

With a metrics address, Prometheus metrics are served on the metrics path
together with liveness (/healthz), readiness (/readyz) and version
(/version) endpoints. With the catalog enabled, old entries are pruned
on the catalog.retention.schedule cron schedule.

Stop with Ctrl-C or SIGTERM.

Examples:
  ponyini watch
  ponyini watch --metrics-addr :9090 --root /srv/ponies`,
	Args: cobra.NoArgs,
	RunE: watchPack,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve metrics and health endpoints on this address")
}

func watchPack(cmd *cobra.Command, args []string) error {
	pl, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	defer pl.Close()

	cfg := pl.cfg
	logger := pl.tel.Logger()

	wcfg := watch.DefaultConfig()
	wcfg.Path = cfg.Pack.Root
	wcfg.DebounceInterval = cfg.Watch.Debounce
	w, err := watch.NewWatcher(wcfg, logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	address := cfg.Watch.MetricsAddress
	if cmd.Flags().Changed("metrics-addr") {
		address = watchFlags.metricsAddr
	}

	opts := []watch.ServiceOption{
		watch.WithServiceLogger(logger),
		watch.WithMetrics(pl.tel.Metrics(), cfg.Telemetry.Metrics.Path),
		watch.WithHealth(pl.tel.Health(), pl.tel.Version()),
		watch.WithAddress(address),
	}
	if pl.store != nil && cfg.Catalog.Retention.Days > 0 {
		pruner := retention.NewPruner(pl.store, cfg.Catalog.Retention.Days,
			retention.WithLogger(logger.Slog().With("component", "catalog.retention")),
			retention.WithOnPrune(func(n int64) { pl.tel.Metrics().RecordPruned(int(n)) }))
		opts = append(opts, watch.WithScheduler(retention.NewScheduler(pruner, cfg.Catalog.Retention.Schedule)))
	}

	logger.Info("watching pony pack", "root", cfg.Pack.Root, "metrics_address", address)
	if err := watch.NewService(pl.pack, w, opts...).Run(cmd.Context()); err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}
