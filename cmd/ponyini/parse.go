package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/cli"
	"mercator-hq/ponyini/pkg/config"
	"mercator-hq/ponyini/pkg/pack"
	"mercator-hq/ponyini/pkg/ponyini/ast"
)

var parseFlags struct {
	format string
}

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Show the rows and fields of pony.ini files",
	Long: `Parse pony.ini files without interpreting them and print every row with
its line number and fields. Scalars print as quoted strings and lists as
{...}; json and yaml print lists as nested arrays.

Examples:
  ponyini parse ponies/Pip/pony.ini
  ponyini parse ponies/Pip/pony.ini --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: parseFiles,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseFlags.format, "format", "text", "output format: text, json, yaml")
}

type rowView struct {
	Line   int   `json:"line"`
	Fields []any `json:"fields"`
}

type documentView struct {
	Source      string           `json:"source"`
	Rows        []rowView        `json:"rows"`
	Diagnostics []diagnosticView `json:"diagnostics,omitempty"`
}

// fieldValue returns a scalar as its text and a list as a slice of values.
func fieldValue(f ast.Field) any {
	if f.IsScalar() {
		return f.Text
	}
	items := make([]any, len(f.Items))
	for i, item := range f.Items {
		items[i] = fieldValue(item)
	}
	return items
}

func fieldString(f ast.Field) string {
	if f.IsScalar() {
		return strconv.Quote(f.Text)
	}
	items := make([]string, len(f.Items))
	for i, item := range f.Items {
		items[i] = fieldString(item)
	}
	return "{" + strings.Join(items, " ") + "}"
}

func newDocumentView(doc *ast.Document) documentView {
	v := documentView{Source: doc.Source, Rows: make([]rowView, 0, len(doc.Rows))}
	for _, row := range doc.Rows {
		rv := rowView{Line: row.Location.Line, Fields: make([]any, len(row.Fields))}
		for i, f := range row.Fields {
			rv.Fields[i] = fieldValue(f)
		}
		v.Rows = append(v.Rows, rv)
	}
	return v
}

// documentText renders doc for text output, one row per line.
func documentText(doc *ast.Document, diags []diagnosticView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d rows", doc.Source, doc.Len())
	for _, row := range doc.Rows {
		fields := make([]string, len(row.Fields))
		for i, f := range row.Fields {
			fields[i] = fieldString(f)
		}
		fmt.Fprintf(&b, "\n%4d  %s", row.Location.Line, strings.Join(fields, " "))
	}
	for _, d := range diags {
		fmt.Fprintf(&b, "\n  %s", d)
	}
	return b.String()
}

func parseFiles(cmd *cobra.Command, args []string) error {
	f, err := cli.ParseOutputFormat(parseFlags.format)
	if err != nil {
		return err
	}

	p := pack.NewParser(config.MustGetConfig(), nil)
	views := make([]documentView, 0, len(args))
	texts := make([]string, 0, len(args))
	problems := false

	for _, file := range args {
		res, err := p.Parse(file)
		if err != nil {
			return cli.NewCommandError("parse", err)
		}
		diags := diagnosticViews(res.Diagnostics)
		if len(diags) > 0 {
			problems = true
		}

		v := newDocumentView(res.Document)
		v.Diagnostics = diags
		views = append(views, v)
		texts = append(texts, documentText(res.Document, diags))
	}

	if f == cli.FormatText {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(texts, "\n\n"))
	} else if len(views) == 1 {
		err = printResult(cmd, string(f), views[0])
	} else {
		err = printResult(cmd, string(f), views)
	}
	if err != nil {
		return err
	}
	if problems {
		return cli.ErrProblemsFound
	}
	return nil
}
