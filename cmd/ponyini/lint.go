package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/cli"
	"mercator-hq/ponyini/pkg/config"
	"mercator-hq/ponyini/pkg/pack"
	"mercator-hq/ponyini/pkg/ponyini"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
	"mercator-hq/ponyini/pkg/ponyini/lint"
	"mercator-hq/ponyini/pkg/ponyini/parser"
	"mercator-hq/ponyini/pkg/ponyini/records"
)

var lintFlags struct {
	strict  bool
	noFiles bool
	format  string
}

var lintCmd = &cobra.Command{
	Use:   "lint FILE...",
	Short: "Check pony.ini files",
	Long: `Check pony.ini files for problems.

The lint command reports:
  - syntax problems found while parsing
  - rows the transform skips or coerces (bad booleans, points, numbers)
  - typos the transform accepts silently: unknown movements and
    locations, references to behaviors and speeches no row defines,
    duplicate definitions and a missing Name row
  - image and sound files missing from the pony's directory

Errors make the command exit 1; with --strict warnings do too.

Examples:
  # Lint one pony
  ponyini lint ponies/Pip/pony.ini

  # Lint every pony and fail on warnings
  ponyini lint --strict ponies/*/pony.ini

  # JSON output for CI/CD
  ponyini lint ponies/*/pony.ini --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: lintFiles,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().BoolVar(&lintFlags.noFiles, "no-files", false, "do not check that referenced files exist")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json, yaml")
}

type lintFileView struct {
	File        string           `json:"file"`
	Diagnostics []diagnosticView `json:"diagnostics"`
}

type lintView struct {
	Files    []lintFileView `json:"files"`
	Errors   int            `json:"errors"`
	Warnings int            `json:"warnings"`
}

func (v *lintView) String() string {
	var b strings.Builder
	for _, f := range v.Files {
		for _, d := range f.Diagnostics {
			fmt.Fprintln(&b, d)
		}
	}
	fmt.Fprintf(&b, "%d files checked: %d errors, %d warnings", len(v.Files), v.Errors, v.Warnings)
	return b.String()
}

func lintFiles(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseOutputFormat(lintFlags.format); err != nil {
		return err
	}

	cfg := config.MustGetConfig()
	p := pack.NewParser(cfg, nil)
	opts := pack.TransformOptions(cfg, nil)

	view := &lintView{Files: make([]lintFileView, 0, len(args))}
	for _, file := range args {
		diags, err := lintFile(p, file, opts)
		if err != nil {
			return cli.NewCommandError("lint", err)
		}
		view.Errors += len(diags.Failures())
		view.Warnings += len(diags.Warnings())
		view.Files = append(view.Files, lintFileView{File: file, Diagnostics: diagnosticViews(diags)})
	}

	if err := printResult(cmd, lintFlags.format, view); err != nil {
		return err
	}
	if view.Errors > 0 || (lintFlags.strict && view.Warnings > 0) {
		return cli.ErrProblemsFound
	}
	return nil
}

// lintFile returns the parse, transform and lint diagnostics of one file.
// Coercion failures are reported for every row, even with strict coercion.
func lintFile(p *parser.Parser, file string, opts []records.Option) (*ponyerrors.ErrorList, error) {
	res, err := p.Parse(file)
	if err != nil {
		return nil, err
	}

	opts = append(opts[:len(opts):len(opts)], records.WithStrictCoercion(false))
	conv, _ := ponyini.Transform(res, opts...)

	diags := ponyerrors.NewErrorList()
	diags.Append(conv.Diagnostics)

	var lintOpts []lint.Option
	if !lintFlags.noFiles {
		lintOpts = append(lintOpts, lint.WithDir(filepath.Dir(file)))
	}
	diags.Append(lint.New(lintOpts...).Lint(res.Document))
	return diags, nil
}
