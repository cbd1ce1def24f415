package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/cli"
	"mercator-hq/ponyini/pkg/config"
	"mercator-hq/ponyini/pkg/pack"
	"mercator-hq/ponyini/pkg/ponyini/serializer"
)

var fmtFlags struct {
	write bool
	check bool
}

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE...",
	Short: "Print pony.ini files in canonical form",
	Long: `Print pony.ini files in canonical form: one row per line, fields quoted
only where needed, comments and blank lines removed. File names are left
as they are; use "ponyini repair" to sanitize them.

Quoting depends only on content. Besides values with white space or commas,
values containing braces and an empty last field are quoted ("") so that
the text reads back as the same row; older tools wrote those rows bare.
A value containing a double quote cannot be written back at all: such rows
are reported, and -w leaves the file unchanged.

A FILE of "-" reads standard input.

Examples:
  # Print the canonical text
  ponyini fmt ponies/Pip/pony.ini

  # Rewrite files in place
  ponyini fmt -w ponies/*/pony.ini

  # List files that are not canonical (exits 1 if any)
  ponyini fmt --check ponies/*/pony.ini`,
	Args: cobra.MinimumNArgs(1),
	RunE: formatFiles,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtFlags.write, "write", "w", false, "write the result back to each file")
	fmtCmd.Flags().BoolVar(&fmtFlags.check, "check", false, "list files whose formatting differs")
}

func formatFiles(cmd *cobra.Command, args []string) error {
	if fmtFlags.write && fmtFlags.check {
		return cli.NewConfigError("flags", "--write and --check are mutually exclusive")
	}

	p := pack.NewParser(config.MustGetConfig(), nil)
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	problems := false

	for _, file := range args {
		data, err := readInput(cmd, file)
		if err != nil {
			return cli.NewCommandError("fmt", err)
		}

		res, err := p.ParseBytes(data, file)
		if err != nil {
			return cli.NewCommandError("fmt", err)
		}
		for _, d := range diagnosticViews(res.Diagnostics) {
			fmt.Fprintln(stderr, d)
		}
		if res.Err() != nil {
			problems = true
			continue
		}

		// Rows the dialect cannot express are reported; -w leaves such a
		// file untouched.
		check := serializer.Check(res.Document)
		for _, d := range diagnosticViews(check) {
			fmt.Fprintln(stderr, d)
		}
		if check.HasErrors() {
			problems = true
			if fmtFlags.write {
				fmt.Fprintf(stderr, "%s: not rewritten\n", file)
				continue
			}
		}

		out := serializer.File(res.Document)
		switch {
		case fmtFlags.check:
			if out != string(data) {
				fmt.Fprintln(stdout, file)
				problems = true
			}
		case fmtFlags.write:
			if file == "-" {
				return cli.NewConfigError("flags", "--write cannot be used with standard input")
			}
			if out == string(data) {
				continue
			}
			if err := os.WriteFile(file, []byte(out), 0o644); err != nil {
				return cli.NewCommandError("fmt", err)
			}
		default:
			if _, err := io.WriteString(stdout, out); err != nil {
				return err
			}
		}
	}

	if problems {
		return cli.ErrProblemsFound
	}
	return nil
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(file)
}
