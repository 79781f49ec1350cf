package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/docsflow/docsflow/internal/logger"
	"github.com/docsflow/docsflow/internal/report"
)

// Options contains inputs for the validator entry point.
type Options struct {
	// RootDir is the directory scanned for YAML files (defaults to ".").
	RootDir string
}

// DefaultRootDir is the conventional project root.
const DefaultRootDir = "."

var (
	// ErrIssuesFound is returned when at least one validation error was
	// recorded. Warnings alone never produce it.
	ErrIssuesFound = errors.New("validation issues found")

	// errNoYAMLFiles is returned when the tree holds nothing to validate.
	errNoYAMLFiles = errors.New("no YAML files found")
)

// Run validates every YAML file under the root against its per-file-type
// schema and logs the end-of-run summary. Findings in one file never stop
// processing of the next.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "docsflow-validate")

	rootDir := opts.RootDir
	if rootDir == "" {
		rootDir = DefaultRootDir
	}

	v := newValidator(rootDir)

	if err := v.ValidateAll(ctx); err != nil {
		return err
	}

	v.report.LogSummary(ctx, "YAML validation summary")

	if v.report.HasErrors() {
		return fmt.Errorf("%d errors: %w", len(v.report.Errors()), ErrIssuesFound)
	}

	return nil
}

// Report exposes the accumulated findings of a finished run, mainly for tests.
func (v *validator) Report() *report.Report {
	return v.report
}
