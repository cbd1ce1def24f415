package pack

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PonyResult is the outcome of one pony in a repair or convert stage.
type PonyResult struct {
	// Dir is the name of the pony directory.
	Dir string
	// Input and Output are the file read and the file written.
	Input  string
	Output string
	// Pony is the name from the Name row, if any.
	Pony string

	Warnings int
	Errors   int
	Skipped  int

	// Written is false when Output already held identical content.
	Written bool
	Cached  bool
	Err     error

	ini string
}

// Report is the outcome of a repair or convert stage.
type Report struct {
	RunID  string
	Ponies []PonyResult

	// Index is the aggregate config.json written by RepairINI.
	Index string
}

// Failed returns the ponies that could not be processed.
func (r *Report) Failed() []PonyResult {
	var out []PonyResult
	for _, res := range r.Ponies {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Written returns how many output files were rewritten.
func (r *Report) Written() int {
	n := 0
	for _, res := range r.Ponies {
		if res.Written {
			n++
		}
	}
	return n
}

// each runs fn over files on at most p.workers goroutines. Results keep the
// order of files. Only ctx cancellation stops the stage early.
func (p *Pack) each(ctx context.Context, files []string, fn func(context.Context, string) PonyResult) ([]PonyResult, error) {
	results := make([]PonyResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = fn(gctx, file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
