package linter

import (
	"context"
	"errors"
	"fmt"

	"github.com/docsflow/docsflow/internal/logger"
	"github.com/docsflow/docsflow/internal/report"
)

// Options contains inputs for the linter entry point.
type Options struct {
	// DocsDir is the documentation root to lint (defaults to "docs").
	DocsDir string
}

// DefaultDocsDir is the conventional documentation directory.
const DefaultDocsDir = "docs"

var (
	// ErrIssuesFound is returned when at least one lint error was recorded.
	// Warnings alone never produce it.
	ErrIssuesFound = errors.New("lint issues found")

	// errNoMarkdownFiles is returned when the docs tree holds nothing to lint.
	errNoMarkdownFiles = errors.New("no markdown files found")
)

// Run executes the linting workflow over every Markdown file in the docs
// tree and logs the end-of-run summary. Findings in one file never stop
// processing of the next.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "docsflow-lint")

	docsDir := opts.DocsDir
	if docsDir == "" {
		docsDir = DefaultDocsDir
	}

	l := newLinter(docsDir)

	if err := l.LintAll(ctx); err != nil {
		return err
	}

	l.report.LogSummary(ctx, "Lint summary")

	if l.report.HasErrors() {
		return fmt.Errorf("%d errors: %w", len(l.report.Errors()), ErrIssuesFound)
	}

	return nil
}

// Report exposes the accumulated findings of a finished run, mainly for tests.
func (l *linter) Report() *report.Report {
	return l.report
}
