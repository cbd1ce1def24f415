package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/cli"
	"mercator-hq/ponyini/pkg/pack"
)

var runFlags struct {
	format string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Repair and convert every pony once",
	Long: `Run the whole pipeline over the pack root once:

  1. rename files and directories to sanitized names (pack.repair_names)
  2. rewrite every pony.ini as a canonical _pony.ini and write the
     aggregate config.json at the root
  3. convert every _pony.ini into the config.json next to it

Ponies that fail are reported and the command exits non-zero; the other
ponies are still written.

Examples:
  # Convert ./ponies
  ponyini run

  # Convert another pack and print the report as JSON
  ponyini run --root /srv/ponies --format json`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.format, "format", "text", "output format: text, json, yaml")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseOutputFormat(runFlags.format); err != nil {
		return err
	}

	pl, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	defer pl.Close()

	report, err := pl.pack.Run(cmd.Context(), pack.TriggerManual)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	view := newRunView(report)
	if err := printResult(cmd, runFlags.format, view); err != nil {
		return err
	}
	if view.failed() {
		return cli.ErrProblemsFound
	}
	return nil
}
