package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docsflow/docsflow/internal/service/validator"
	"github.com/docsflow/docsflow/internal/version"
)

var (
	// rootDir is the repository tree to scan for YAML configuration files.
	rootDir string

	// rootCmd represents the base command for validating YAML configuration.
	rootCmd = &cobra.Command{
		Use:   "docsflow-validate",
		Short: "Validate project YAML configuration files",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &validator.Options{
				RootDir: rootDir,
			}

			return validator.Run(ctx, options)
		},
	}
)

// Execute runs the docsflow-validate CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&rootDir, "root", "r", validator.DefaultRootDir, "path to repository root")
}
