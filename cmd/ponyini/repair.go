package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/cli"
)

var repairFlags struct {
	names  bool
	format string
}

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Rewrite every pony.ini as a canonical _pony.ini",
	Long: `Rewrite every pony.ini below the pack root as canonical text with its
file-name fields sanitized, writing _pony.ini next to it, and write the
aggregate config.json at the root.

With --names, files and directories are renamed to sanitized names first.

Examples:
  ponyini repair
  ponyini repair --names --root /srv/ponies`,
	Args: cobra.NoArgs,
	RunE: repairPack,
}

func init() {
	rootCmd.AddCommand(repairCmd)

	repairCmd.Flags().BoolVar(&repairFlags.names, "names", false, "rename unsafe file and directory names first")
	repairCmd.Flags().StringVar(&repairFlags.format, "format", "text", "output format: text, json, yaml")
}

func repairPack(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseOutputFormat(repairFlags.format); err != nil {
		return err
	}

	pl, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	defer pl.Close()

	ctx := cmd.Context()
	view := &runView{}
	if repairFlags.names || pl.cfg.Pack.RepairNames {
		renames, err := pl.pack.RepairNames(ctx)
		if err != nil {
			return cli.NewCommandError("repair", err)
		}
		view.addRenames(renames)
	}

	report, err := pl.pack.RepairINI(ctx)
	if err != nil {
		return cli.NewCommandError("repair", err)
	}
	view.RunID = report.RunID
	view.Repair = newStageView("repair", report)

	if err := printResult(cmd, repairFlags.format, view); err != nil {
		return err
	}
	if view.failed() {
		return cli.ErrProblemsFound
	}
	return nil
}
