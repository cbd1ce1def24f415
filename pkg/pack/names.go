package pack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mercator-hq/ponyini/pkg/ponyini/sanitize"
	"mercator-hq/ponyini/pkg/telemetry/metrics"
)

// ErrCollision is reported when the sanitized name of an entry is taken.
var ErrCollision = errors.New("sanitized name already exists")

// Rename is one entry RepairNames renamed or had to skip.
type Rename struct {
	From string
	To   string
	Err  error
}

// RenameReport lists the outcome of RepairNames.
type RenameReport struct {
	Renamed []Rename
	Skipped []Rename
}

// RepairNames walks the pack root depth first and renames every file or
// directory whose name sanitize.Name would change. A directory is renamed
// before its children are visited. Entries whose target already exists are
// skipped and reported.
func (p *Pack) RepairNames(ctx context.Context) (*RenameReport, error) {
	report := &RenameReport{}
	if err := p.renameDir(ctx, p.root, report); err != nil {
		return report, err
	}
	p.logger.InfoContext(ctx, "names repaired",
		"renamed", len(report.Renamed),
		"skipped", len(report.Skipped))
	return report, nil
}

func (p *Pack) renameDir(ctx context.Context, dir string, report *RenameReport) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, e.Name())
		if sanitize.Changed(e.Name()) {
			target := filepath.Join(dir, sanitize.Name(e.Name()))
			r := Rename{From: path, To: target}

			if _, err := os.Lstat(target); err == nil {
				r.Err = ErrCollision
			} else if err := os.Rename(path, target); err != nil {
				r.Err = err
			}

			if r.Err != nil {
				p.metrics.RecordFile(metrics.OpRename, metrics.StatusFailed)
				p.logger.WarnContext(ctx, "rename skipped", "from", path, "to", target, "error", r.Err)
				report.Skipped = append(report.Skipped, r)
			} else {
				p.metrics.RecordFile(metrics.OpRename, metrics.StatusOK)
				p.logger.DebugContext(ctx, "renamed", "from", path, "to", target)
				report.Renamed = append(report.Renamed, r)
				path = target
			}
		}

		if e.IsDir() {
			if err := p.renameDir(ctx, path, report); err != nil {
				return err
			}
		}
	}
	return nil
}
