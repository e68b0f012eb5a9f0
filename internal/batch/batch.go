// Package batch scores many résumés concurrently with a bounded worker count.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/atscritic/internal/logger"
	"github.com/dshills/atscritic/internal/report"
	"github.com/dshills/atscritic/internal/resume"
	"github.com/dshills/atscritic/internal/scorer"
)

// Job is one record to score. Name and Hash label the report input.
type Job struct {
	Name   string
	Hash   string
	Record resume.Record
}

// Options configures a batch run.
type Options struct {
	// Limit caps the number of concurrent evaluations. Zero or less uses
	// runtime.NumCPU().
	Limit  int
	Report report.Options
	Logger *zap.Logger
}

func limit(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Evaluate scores every record and returns the results in input order.
// It stops early only when ctx is cancelled.
func Evaluate(ctx context.Context, s *scorer.Scorer, recs []resume.Record, n int) ([]scorer.Result, error) {
	out := make([]scorer.Result, len(recs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit(n))

	for i := range recs {
		i := i
		if err := gCtx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out[i] = s.Evaluate(recs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch.Evaluate: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch.Evaluate: %w", err)
	}
	return out, nil
}

// Reports scores every job through Evaluate and wraps each result in a
// report, in input order.
func Reports(ctx context.Context, s *scorer.Scorer, jobs []Job, opts Options) ([]*report.Report, error) {
	log := logger.WithFields(opts.Logger, zap.String(logger.FieldCatalog, s.Catalog().Name))

	recs := make([]resume.Record, len(jobs))
	for i, j := range jobs {
		recs[i] = j.Record
	}
	results, err := Evaluate(ctx, s, recs, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("batch.Reports: %w", err)
	}

	out := make([]*report.Report, len(jobs))
	for i, j := range jobs {
		ro := opts.Report
		ro.File = j.Name
		ro.Hash = j.Hash
		r := report.FromResult(s, j.Record, results[i], ro)
		log.Debug("scored", append(logger.StringFields(logger.StringField{Key: logger.FieldFile, Value: j.Name}),
			logger.ScoreFields(r.Summary.Score, string(r.Summary.Verdict))...)...)
		out[i] = r
	}
	return out, nil
}

// LoadFiles loads every path concurrently. The first load error cancels the
// remaining loads and is returned.
func LoadFiles(ctx context.Context, paths []string, n int) ([]*resume.Document, error) {
	out := make([]*resume.Document, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit(n))

	for i, p := range paths {
		i, p := i, p
		if err := gCtx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			doc, err := resume.Load(p)
			if err != nil {
				return err
			}
			out[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch.LoadFiles: %w", err)
	}
	return out, nil
}

// JobsFromDocuments converts loaded documents into jobs labelled by file path.
func JobsFromDocuments(docs []*resume.Document) []Job {
	jobs := make([]Job, len(docs))
	for i, d := range docs {
		jobs[i] = Job{Name: d.FilePath, Hash: d.Hash, Record: d.Record}
	}
	return jobs
}
