package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/cli"
	"mercator-hq/ponyini/pkg/config"
	"mercator-hq/ponyini/pkg/pack"
	"mercator-hq/ponyini/pkg/ponyini"
	"mercator-hq/ponyini/pkg/ponyini/parser"
	"mercator-hq/ponyini/pkg/ponyini/records"
)

var convertFlags struct {
	format string
}

var convertCmd = &cobra.Command{
	Use:   "convert [FILE...]",
	Short: "Convert pony.ini files into configuration",
	Long: `Convert pony.ini files into the configuration a browser runtime loads.

Given files, each is parsed and transformed and its configuration printed
to stdout; diagnostics go to stderr. Several files print an object keyed by
file name.

Without arguments, every _pony.ini below the pack root is converted and
its config.json written next to it. Run "ponyini repair" first to create
the _pony.ini files.

Examples:
  # Print one pony's configuration as YAML
  ponyini convert ponies/Pip/pony.ini --format yaml

  # Write config.json for every repaired pony
  ponyini convert --root /srv/ponies`,
	RunE: convertFiles,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertFlags.format, "format", "", "output format: json, yaml (files) or text, json, yaml (pack)")
}

func convertFiles(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return convertPack(cmd)
	}

	format := convertFlags.format
	if format == "" {
		format = string(cli.FormatJSON)
	}
	f, err := cli.ParseOutputFormat(format)
	if err != nil {
		return err
	}
	if f == cli.FormatText {
		return cli.NewConfigError("format", "file conversion prints json or yaml")
	}

	cfg := config.MustGetConfig()
	tel, err := newTelemetry(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = tel.Shutdown(context.Background()) }()

	p := pack.NewParser(cfg, nil)
	opts := pack.TransformOptions(cfg, nil)

	configs := make(map[string]*records.Config, len(args))
	failed := false
	for _, file := range args {
		conv, err := convertFile(p, file, opts)
		if conv != nil {
			for _, d := range diagnosticViews(conv.Diagnostics) {
				fmt.Fprintln(cmd.ErrOrStderr(), d)
			}
		}
		if err != nil {
			tel.Logger().Error("conversion failed", "file", file, "error", err)
			failed = true
			continue
		}
		configs[file] = conv.Config()
	}

	var out any = configs
	if len(args) == 1 {
		c, ok := configs[args[0]]
		if !ok {
			return cli.ErrProblemsFound
		}
		out = c
	}
	if err := printResult(cmd, string(f), out); err != nil {
		return err
	}
	if failed {
		return cli.ErrProblemsFound
	}
	return nil
}

// convertFile parses and transforms one file. The conversion is returned
// alongside a strict-mode error so its diagnostics can still be shown.
func convertFile(p *parser.Parser, file string, opts []records.Option) (*ponyini.Conversion, error) {
	res, err := p.Parse(file)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return &ponyini.Conversion{Document: res.Document, Diagnostics: res.Diagnostics}, err
	}
	return ponyini.Transform(res, opts...)
}

func convertPack(cmd *cobra.Command) error {
	format := convertFlags.format
	if format == "" {
		format = string(cli.FormatText)
	}
	if _, err := cli.ParseOutputFormat(format); err != nil {
		return err
	}

	pl, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	defer pl.Close()

	report, err := pl.pack.Convert(cmd.Context())
	if err != nil {
		return cli.NewCommandError("convert", err)
	}

	view := &runView{RunID: report.RunID, Convert: newStageView("convert", report)}
	if err := printResult(cmd, format, view); err != nil {
		return err
	}
	if view.failed() {
		return cli.ErrProblemsFound
	}
	return nil
}
