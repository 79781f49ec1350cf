package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docsflow/docsflow/internal/service/linter"
	"github.com/docsflow/docsflow/internal/version"
)

var (
	// docsDir is the Markdown tree to lint.
	docsDir string

	// rootCmd represents the base command for linting documentation sources.
	rootCmd = &cobra.Command{
		Use:   "docsflow-lint",
		Short: "Lint Markdown documentation sources",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &linter.Options{
				DocsDir: docsDir,
			}

			return linter.Run(ctx, options)
		},
	}
)

// Execute runs the docsflow-lint CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&docsDir, "docs", "d", linter.DefaultDocsDir, "path to documentation directory")
}
