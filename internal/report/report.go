package report

import (
	"context"

	"github.com/docsflow/docsflow/internal/logger"
)

// Entry is a single finding attributed to a file.
type Entry struct {
	// File is the path of the offending file, relative to the run root.
	File string
	// Message describes the finding in human-readable form.
	Message string
}

// Report accumulates findings for one process invocation. Entries keep the
// order in which they were recorded. Report is not safe for concurrent use;
// the toolchain is single-threaded by design.
type Report struct {
	errors   []Entry
	warnings []Entry
}

// New returns an empty report.
func New() *Report {
	return &Report{}
}

// AddError records an error finding. Errors fail the run.
func (r *Report) AddError(file, message string) {
	r.errors = append(r.errors, Entry{File: file, Message: message})
}

// AddWarning records a warning finding. Warnings never fail the run.
func (r *Report) AddWarning(file, message string) {
	r.warnings = append(r.warnings, Entry{File: file, Message: message})
}

// Errors returns recorded errors in insertion order.
func (r *Report) Errors() []Entry {
	return r.errors
}

// Warnings returns recorded warnings in insertion order.
func (r *Report) Warnings() []Entry {
	return r.warnings
}

// HasErrors reports whether at least one error was recorded.
func (r *Report) HasErrors() bool {
	return len(r.errors) > 0
}

// LogSummary writes the end-of-run summary. The report must not be mutated
// after the summary is written.
func (r *Report) LogSummary(ctx context.Context, title string) {
	logger.Infof(ctx, "%s: %d errors, %d warnings", title, len(r.errors), len(r.warnings))

	for _, e := range r.errors {
		logger.ErrorKV(ctx, e.Message, "file", e.File)
	}

	for _, w := range r.warnings {
		logger.WarnKV(ctx, w.Message, "file", w.File)
	}

	if len(r.errors) == 0 && len(r.warnings) == 0 {
		logger.Info(ctx, "All files passed")
	}
}
