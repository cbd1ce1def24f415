package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/cli"
	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
	"mercator-hq/ponyini/pkg/pack"
)

// printResult writes v to stdout in the format named by a --format flag.
// Text output uses v's String method.
func printResult(cmd *cobra.Command, format string, v any) error {
	f, err := cli.ParseOutputFormat(format)
	if err != nil {
		return err
	}
	return cli.NewFormatter(f).FormatTo(cmd.OutOrStdout(), v)
}

type diagnosticView struct {
	Severity   string `json:"severity"`
	Type       string `json:"type"`
	Code       string `json:"code"`
	Location   string `json:"location,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func diagnosticViews(list *ponyerrors.ErrorList) []diagnosticView {
	if list == nil {
		return nil
	}
	views := make([]diagnosticView, 0, len(list.Errors))
	for _, d := range list.Errors {
		v := diagnosticView{
			Severity:   string(d.Severity),
			Type:       string(d.Type),
			Code:       string(d.Code),
			Message:    d.Message,
			Suggestion: d.Suggestion,
		}
		if d.Location.IsValid() {
			v.Location = d.Location.String()
		}
		views = append(views, v)
	}
	return views
}

func (d diagnosticView) String() string {
	var b strings.Builder
	if d.Location != "" {
		b.WriteString(d.Location)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "%s: %s", d.Severity, d.Message)
	if d.Suggestion != "" {
		fmt.Fprintf(&b, " (%s)", d.Suggestion)
	}
	return b.String()
}

type ponyView struct {
	Dir      string `json:"dir"`
	Pony     string `json:"pony,omitempty"`
	Output   string `json:"output"`
	Warnings int    `json:"warnings"`
	Errors   int    `json:"errors"`
	Skipped  int    `json:"skipped"`
	Written  bool   `json:"written"`
	Cached   bool   `json:"cached"`
	Error    string `json:"error,omitempty"`
}

func (v ponyView) status() string {
	switch {
	case v.Error != "":
		return "failed"
	case v.Written:
		return "written"
	case v.Cached:
		return "cached"
	default:
		return "unchanged"
	}
}

type stageView struct {
	Stage  string     `json:"stage"`
	Ponies []ponyView `json:"ponies"`
	Index  string     `json:"index,omitempty"`
}

func newStageView(stage string, r *pack.Report) *stageView {
	if r == nil {
		return nil
	}
	v := &stageView{Stage: stage, Index: r.Index, Ponies: make([]ponyView, 0, len(r.Ponies))}
	for _, res := range r.Ponies {
		pv := ponyView{
			Dir:      res.Dir,
			Pony:     res.Pony,
			Output:   res.Output,
			Warnings: res.Warnings,
			Errors:   res.Errors,
			Skipped:  res.Skipped,
			Written:  res.Written,
			Cached:   res.Cached,
		}
		if res.Err != nil {
			pv.Error = res.Err.Error()
		}
		v.Ponies = append(v.Ponies, pv)
	}
	return v
}

func (v *stageView) failed() int {
	n := 0
	for _, p := range v.Ponies {
		if p.Error != "" {
			n++
		}
	}
	return n
}

func (v *stageView) String() string {
	var b strings.Builder
	written := 0
	for _, p := range v.Ponies {
		if p.Written {
			written++
		}
	}
	fmt.Fprintf(&b, "%s: %d ponies, %d written, %d failed", v.Stage, len(v.Ponies), written, v.failed())
	for _, p := range v.Ponies {
		fmt.Fprintf(&b, "\n  %-9s %s", p.status(), p.Dir)
		if p.Pony != "" && p.Pony != p.Dir {
			fmt.Fprintf(&b, " (%s)", p.Pony)
		}
		switch {
		case p.Error != "":
			fmt.Fprintf(&b, ": %s", p.Error)
		case p.Warnings+p.Errors+p.Skipped > 0:
			fmt.Fprintf(&b, ": %d warnings, %d errors, %d rows skipped", p.Warnings, p.Errors, p.Skipped)
		}
	}
	return b.String()
}

type renameView struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Error string `json:"error,omitempty"`
}

func renameViews(renames []pack.Rename) []renameView {
	views := make([]renameView, 0, len(renames))
	for _, r := range renames {
		v := renameView{From: r.From, To: r.To}
		if r.Err != nil {
			v.Error = r.Err.Error()
		}
		views = append(views, v)
	}
	return views
}

type runView struct {
	RunID   string       `json:"run_id"`
	Trigger string       `json:"trigger,omitempty"`
	Renamed []renameView `json:"renamed,omitempty"`
	Skipped []renameView `json:"rename_skipped,omitempty"`
	Repair  *stageView   `json:"repair,omitempty"`
	Convert *stageView   `json:"convert,omitempty"`
	// Duration is empty for single stages.
	Duration string `json:"duration,omitempty"`
}

func newRunView(r *pack.RunReport) *runView {
	v := &runView{
		RunID:    r.RunID,
		Trigger:  r.Trigger,
		Repair:   newStageView("repair", r.Repair),
		Convert:  newStageView("convert", r.Convert),
		Duration: r.Duration.Round(time.Millisecond).String(),
	}
	v.addRenames(r.Renames)
	return v
}

func (v *runView) addRenames(r *pack.RenameReport) {
	if r == nil {
		return
	}
	v.Renamed = renameViews(r.Renamed)
	v.Skipped = renameViews(r.Skipped)
}

func (v *runView) failed() bool {
	return (v.Repair != nil && v.Repair.failed() > 0) ||
		(v.Convert != nil && v.Convert.failed() > 0)
}

func (v *runView) String() string {
	var parts []string
	if len(v.Renamed)+len(v.Skipped) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "names: %d renamed, %d skipped", len(v.Renamed), len(v.Skipped))
		for _, r := range v.Renamed {
			fmt.Fprintf(&b, "\n  renamed   %s -> %s", r.From, r.To)
		}
		for _, r := range v.Skipped {
			fmt.Fprintf(&b, "\n  skipped   %s: %s", r.From, r.Error)
		}
		parts = append(parts, b.String())
	}
	if v.Repair != nil {
		parts = append(parts, v.Repair.String())
	}
	if v.Convert != nil {
		parts = append(parts, v.Convert.String())
	}
	if v.Duration != "" {
		parts = append(parts, fmt.Sprintf("run %s finished in %s", v.RunID, v.Duration))
	}
	return strings.Join(parts, "\n")
}
