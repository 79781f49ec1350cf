package validator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/docsflow/docsflow/internal/logger"
	"github.com/docsflow/docsflow/internal/report"
)

// validator walks a project tree and applies per-file-type YAML schemas.
// It is unexported; callers should use Run, which encapsulates setup.
type validator struct {
	// rootDir is the scan root; referenced paths resolve against it.
	rootDir string
	// report accumulates findings across all files of the run.
	report *report.Report
}

// newValidator creates a validator rooted at the provided directory.
func newValidator(rootDir string) *validator {
	return &validator{
		rootDir: rootDir,
		report:  report.New(),
	}
}

// ValidateAll validates every .yml and .yaml file under the root.
func (v *validator) ValidateAll(ctx context.Context) error {
	files, err := v.findYAMLFiles()
	if err != nil {
		return fmt.Errorf("discover YAML files: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("%s: %w", v.rootDir, errNoYAMLFiles)
	}

	logger.InfoKV(ctx, "Validating YAML files", "dir", v.rootDir, "files", len(files))

	for _, path := range files {
		v.validateFile(ctx, path)
	}

	return nil
}

// findYAMLFiles returns every YAML file under the root in walk order.
// Hidden directories are included: CI workflows live under .github.
func (v *validator) findYAMLFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(v.rootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yml", ".yaml":
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// validateFile parses one file and dispatches to its schema. Parse failures
// are recorded as errors for that file and do not abort the run.
func (v *validator) validateFile(ctx context.Context, path string) {
	logger.DebugKV(ctx, "Validating file", "path", path)

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		v.report.AddError(path, fmt.Sprintf("failed to read file: %v", err))
		return
	}

	var doc any
	if err = yaml.Unmarshal(contents, &doc); err != nil {
		v.report.AddError(path, fmt.Sprintf("invalid YAML syntax: %v", err))
		return
	}

	if doc == nil {
		v.report.AddWarning(path, "empty YAML file")
		return
	}

	switch {
	case filepath.Base(path) == "mkdocs.yml":
		v.validateMkdocs(path, doc)
	case isWorkflowPath(path):
		v.validateWorkflow(path, doc)
	case filepath.Base(path) == "docker-compose.yml":
		v.validateCompose(path, doc)
	default:
		// Generic YAML: parse validity is the whole contract.
	}
}

// isWorkflowPath reports whether the file sits in a GitHub workflows directory.
func isWorkflowPath(path string) bool {
	dir := filepath.ToSlash(filepath.Dir(path))
	return dir == ".github/workflows" || strings.HasSuffix(dir, "/.github/workflows")
}
