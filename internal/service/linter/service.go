package linter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/docsflow/docsflow/internal/logger"
	"github.com/docsflow/docsflow/internal/report"
)

// linter walks a documentation tree and applies every rule to each file.
// It is unexported; callers should use Run, which encapsulates setup.
type linter struct {
	// docsDir is the documentation root; internal links resolve against it.
	docsDir string
	// report accumulates findings across all files of the run.
	report *report.Report
	// md is the shared Markdown engine used for AST-based rules.
	md goldmark.Markdown
}

// newLinter creates a linter rooted at the provided documentation directory.
func newLinter(docsDir string) *linter {
	return &linter{
		docsDir: docsDir,
		report:  report.New(),
		md:      goldmark.New(),
	}
}

// LintAll lints every Markdown file under the docs root.
func (l *linter) LintAll(ctx context.Context) error {
	files, err := l.findMarkdownFiles()
	if err != nil {
		return fmt.Errorf("discover markdown files: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("%s: %w", l.docsDir, errNoMarkdownFiles)
	}

	logger.InfoKV(ctx, "Linting documentation", "dir", l.docsDir, "files", len(files))

	for _, path := range files {
		l.lintFile(ctx, path)
	}

	return nil
}

// findMarkdownFiles returns every .md file under the docs root in walk order.
func (l *linter) findMarkdownFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(l.docsDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// lintFile applies every rule to a single file. A read failure is recorded
// as an error for that file and does not abort the run.
func (l *linter) lintFile(ctx context.Context, path string) {
	logger.DebugKV(ctx, "Linting file", "path", path)

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		l.report.AddError(path, fmt.Sprintf("failed to read file: %v", err))
		return
	}

	body, lineOffset := l.splitFrontMatter(path, content)

	l.checkHeadings(path, body, lineOffset)
	l.checkLinks(path, body)
	l.checkCodeFences(path, body, lineOffset)
	l.checkTrailingNewline(path, content)
	l.checkBulletMarkers(path, body, lineOffset)
}
