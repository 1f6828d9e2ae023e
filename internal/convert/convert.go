package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/tuannm99/novacloud/internal/ply"
	"github.com/tuannm99/novacloud/internal/table"
	"github.com/tuannm99/novacloud/internal/textcloud"
)

var ErrNoJobs = errors.New("convert: no jobs")

// Job converts one file. Src and Dst formats are chosen by extension:
// ".ply" is PLY, anything else is delimited text. A Dst without an
// extension is written as PLY.
type Job struct {
	Src    string
	Dst    string
	Fields []string
}

// Options are shared, read-only settings for every job of a Run.
type Options struct {
	Workers       int
	IgnoreMissing bool
	PLY           ply.WriteOptions
	// TextNames names the columns of text sources.
	TextNames []string
	Text      textcloud.Options
}

type Result struct {
	Src     string
	Written []string
	Rows    int
	Bytes   int64
}

// Run executes jobs concurrently with at most opts.Workers in flight. The
// first failure cancels jobs that have not started yet.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := convertOne(job, opts)
			if err != nil {
				return fmt.Errorf("convert %s -> %s: %w", job.Src, job.Dst, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows int
	var size int64
	for _, r := range results {
		rows += r.Rows
		size += r.Bytes
	}
	slog.Info("convert: done",
		"jobs", len(jobs),
		"workers", workers,
		"rows", rows,
		"size", humanize.Bytes(uint64(size)),
	)
	return results, nil
}

func isPLY(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ply.Ext)
}

func convertOne(job Job, opts Options) (Result, error) {
	t, err := load(job, opts)
	if err != nil {
		return Result{}, err
	}

	var written []string
	if isPLY(job.Dst) || filepath.Ext(job.Dst) == "" {
		wopts := opts.PLY
		wopts.Comments = append([]string(nil), opts.PLY.Comments...)
		p, err := ply.WriteFile(job.Dst, t, wopts)
		if err != nil {
			return Result{}, err
		}
		written = []string{p}
	} else {
		written, err = textcloud.WriteText(job.Dst, t, nil, opts.Text)
		if err != nil {
			return Result{}, err
		}
	}

	res := Result{Src: job.Src, Written: written, Rows: t.Len()}
	for _, p := range written {
		if info, err := os.Stat(p); err == nil {
			res.Bytes += info.Size()
		}
	}
	slog.Debug("convert: job done",
		"src", job.Src,
		"dst", written,
		"rows", res.Rows,
		"size", humanize.Bytes(uint64(res.Bytes)),
	)
	return res, nil
}

func load(job Job, opts Options) (*table.Table, error) {
	if isPLY(job.Src) {
		cloud, err := ply.ReadFile(job.Src, ply.Selection{Fields: job.Fields, IgnoreMissing: opts.IgnoreMissing})
		if err != nil {
			return nil, err
		}
		return cloud.Points, nil
	}

	t, err := textcloud.ReadText(job.Src, opts.TextNames, opts.Text)
	if err != nil {
		return nil, err
	}
	if job.Fields == nil {
		return t, nil
	}
	fields := job.Fields
	if opts.IgnoreMissing {
		fields = fields[:0:0]
		for _, f := range job.Fields {
			if t.Has(f) {
				fields = append(fields, f)
			}
		}
	}
	return t.Select(fields...)
}
