// Package rewrite strips the /api/ prefix from route registrations in a
// JavaScript source file.
//
// Matching is plain substring replacement. The file is never parsed, so a
// pattern inside a comment or string is rewritten like any other.
package rewrite

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/okian/routefix/pkg/logger"
	"github.com/okian/routefix/pkg/metrics"
)

// Recorder receives metrics for a run. *metrics.Manager satisfies it.
type Recorder interface {
	RecordReplacements(rule string, count int)
	RecordRun(outcome string, duration time.Duration)
	RecordTargetSize(read, written int)
}

type nopRecorder struct{}

func (nopRecorder) RecordReplacements(string, int)  {}
func (nopRecorder) RecordRun(string, time.Duration) {}
func (nopRecorder) RecordTargetSize(int, int)       {}

// Report summarises one rewrite.
type Report struct {
	Path         string
	Outcomes     []Outcome
	Total        int
	BytesRead    int
	BytesWritten int
	Duration     time.Duration
}

// Changed reports whether any prefix was removed.
func (r *Report) Changed() bool { return r.Total > 0 }

// Fixer rewrites a target file in place.
type Fixer struct {
	log      logger.Logger
	rules    []Rule
	recorder Recorder
}

// New creates a Fixer with the route rules, a no-op logger and no metrics.
func New(opts ...Option) *Fixer {
	f := &Fixer{
		log:      logger.Nop(),
		rules:    RouteRules(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fix reads path, applies the rules and writes the result back over the
// same file, keeping its permission bits. The write happens even when no
// rule matched. Read and decode failures, and a ctx cancelled before the
// write, leave the file untouched.
//
// There is no lock between the read and the write; concurrent edits to the
// file in that window are lost.
func (f *Fixer) Fix(ctx context.Context, path string) (report *Report, err error) {
	start := time.Now()
	log := f.log.With(logger.String("path", path))

	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeFailure
			// The caller reports the error itself.
			log.Debug(ctx, "rewrite failed", logger.Error(err))
		}
		f.recorder.RecordRun(outcome, time.Since(start))
	}()

	content, mode, err := f.readTarget(ctx, path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s", ErrDecodeTarget, path)
	}

	out, outcomes := Apply(string(content), f.rules)

	report = &Report{
		Path:      path,
		Outcomes:  outcomes,
		BytesRead: len(content),
	}
	for _, o := range outcomes {
		report.Total += o.Count
		f.recorder.RecordReplacements(o.Rule.Name(), o.Count)
		log.Debug(ctx, "rule applied", logger.String("rule", o.Rule.Name()), logger.Int("count", o.Count))
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	if err := os.WriteFile(path, []byte(out), mode.Perm()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteTarget, err)
	}
	report.BytesWritten = len(out)
	report.Duration = time.Since(start)
	f.recorder.RecordTargetSize(report.BytesRead, report.BytesWritten)

	if !report.Changed() {
		log.Warn(ctx, "no route prefixes found; file written back unchanged")
	} else {
		log.Info(ctx, "route prefixes removed",
			logger.Int("replacements", report.Total),
			logger.Int("bytesRead", report.BytesRead),
			logger.Int("bytesWritten", report.BytesWritten),
			logger.Duration("duration", report.Duration))
	}
	return report, nil
}

// readTarget loads the whole file and its mode. The handle is closed before
// returning.
func (f *Fixer) readTarget(ctx context.Context, path string) ([]byte, os.FileMode, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrReadTarget, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			f.log.Warn(ctx, "failed to close target", logger.Error(err))
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrReadTarget, err)
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("%w: %s is a directory", ErrReadTarget, path)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrReadTarget, err)
	}
	return data, info.Mode(), nil
}
