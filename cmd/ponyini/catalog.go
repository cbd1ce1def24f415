package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/catalog"
	"mercator-hq/ponyini/pkg/catalog/retention"
	"mercator-hq/ponyini/pkg/cli"
	"mercator-hq/ponyini/pkg/config"
)

var catalogFlags struct {
	backend string
	pony    string
	runID   string
	since   string
	limit   int
	format  string
	ini     bool
	days    int
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect recorded conversions",
	Long: `Inspect and prune the catalog of recorded conversions.

Every conversion "ponyini run", "convert" or "watch" performs is recorded
when catalog.enabled is set, with the configuration it produced and the
canonical text it was produced from.

Subcommands:
  list   - List recorded conversions, newest first
  show   - Print the latest configuration of a pony
  prune  - Delete entries older than the retention period

Examples:
  # Conversions of the last day
  ponyini catalog list --since 24h

  # Latest configuration of one pony
  ponyini catalog show "Big Mac"

  # Latest canonical pony.ini of one pony
  ponyini catalog show "Big Mac" --ini`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions",
	Args:  cobra.NoArgs,
	RunE:  listCatalog,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show PONY",
	Short: "Print the latest configuration of a pony",
	Args:  cobra.ExactArgs(1),
	RunE:  showCatalog,
}

var catalogPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old catalog entries",
	Long: `Delete catalog entries older than --days, or catalog.retention.days
when the flag is not given. Zero days keeps everything.`,
	Args: cobra.NoArgs,
	RunE: pruneCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd, catalogPruneCmd)

	catalogCmd.PersistentFlags().StringVar(&catalogFlags.backend, "backend", "", "backend: sqlite, memory (uses config if not specified)")

	catalogListCmd.Flags().StringVar(&catalogFlags.pony, "pony", "", "filter by pony name")
	catalogListCmd.Flags().StringVar(&catalogFlags.runID, "run", "", "filter by run ID")
	catalogListCmd.Flags().StringVar(&catalogFlags.since, "since", "", "only entries newer than this (duration like 24h, or RFC3339)")
	catalogListCmd.Flags().IntVar(&catalogFlags.limit, "limit", 100, "max results")
	catalogListCmd.Flags().StringVar(&catalogFlags.format, "format", "text", "output format: text, json, yaml")

	catalogShowCmd.Flags().BoolVar(&catalogFlags.ini, "ini", false, "print the canonical pony.ini instead of the configuration")

	catalogPruneCmd.Flags().IntVar(&catalogFlags.days, "days", 0, "retention period in days")
}

func openCatalog() (catalog.Store, error) {
	cfg := *config.MustGetConfig()
	if catalogFlags.backend != "" {
		cfg.Catalog.Backend = catalogFlags.backend
	}
	store, err := catalog.Open(&cfg.Catalog)
	if err != nil {
		return nil, cli.NewCommandError("catalog", err)
	}
	return store, nil
}

// parseSince accepts a duration before now or an RFC3339 instant.
func parseSince(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, cli.NewConfigError("since", fmt.Sprintf("%q is neither a duration nor an RFC3339 time", s))
	}
	return t, nil
}

type entryView struct {
	ID          string          `json:"id"`
	RunID       string          `json:"run_id"`
	Pony        string          `json:"pony"`
	Dir         string          `json:"dir"`
	SourceHash  string          `json:"source_hash"`
	Warnings    int             `json:"warnings"`
	Errors      int             `json:"errors"`
	ConvertedAt time.Time       `json:"converted_at"`
	Config      json.RawMessage `json:"config,omitempty"`
}

type entryList []entryView

func (l entryList) String() string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PONY\tDIR\tWARNINGS\tERRORS\tCONVERTED\tRUN")
	for _, e := range l {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			e.Pony, e.Dir, e.Warnings, e.Errors, e.ConvertedAt.Format(time.RFC3339), e.RunID)
	}
	_ = tw.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

func listCatalog(cmd *cobra.Command, args []string) error {
	f, err := cli.ParseOutputFormat(catalogFlags.format)
	if err != nil {
		return err
	}
	since, err := parseSince(catalogFlags.since, time.Now())
	if err != nil {
		return err
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), catalog.Query{
		Pony:  catalogFlags.pony,
		RunID: catalogFlags.runID,
		Since: since,
		Limit: catalogFlags.limit,
	})
	if err != nil {
		return cli.NewCommandError("catalog list", err)
	}

	views := make(entryList, 0, len(entries))
	for _, e := range entries {
		v := entryView{
			ID:          e.ID,
			RunID:       e.RunID,
			Pony:        e.Pony,
			Dir:         e.Dir,
			SourceHash:  e.SourceHash,
			Warnings:    e.Warnings,
			Errors:      e.Errors,
			ConvertedAt: e.ConvertedAt,
		}
		if f != cli.FormatText {
			v.Config = e.ConfigJSON
		}
		views = append(views, v)
	}
	return printResult(cmd, string(f), views)
}

func showCatalog(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(cmd.Context(), args[0])
	if errors.Is(err, catalog.ErrNotFound) {
		return cli.NewCommandError("catalog show", fmt.Errorf("no conversion recorded for %q", args[0]))
	}
	if err != nil {
		return cli.NewCommandError("catalog show", err)
	}

	out := string(entry.ConfigJSON)
	if catalogFlags.ini {
		out = entry.CanonicalINI
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out+"\n")
	return err
}

func pruneCatalog(cmd *cobra.Command, args []string) error {
	days := config.MustGetConfig().Catalog.Retention.Days
	if cmd.Flags().Changed("days") {
		days = catalogFlags.days
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := retention.NewPruner(store, days).Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("catalog prune", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d entries older than %d days\n", deleted, days)
	return nil
}
