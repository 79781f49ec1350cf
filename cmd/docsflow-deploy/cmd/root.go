package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docsflow/docsflow/internal/config"
	"github.com/docsflow/docsflow/internal/service/deployer"
	"github.com/docsflow/docsflow/internal/version"
)

var (
	// configPath to the optional settings YAML file.
	configPath string

	// sourceDir overrides the packaged documentation directory.
	sourceDir string

	// packageName overrides the archive filename.
	packageName string

	// rootCmd represents the base command for deploying documentation.
	rootCmd = &cobra.Command{
		Use:   "docsflow-deploy",
		Short: "Package and deploy documentation to the publishing portal",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &deployer.Options{
				ConfigPath:  configPath,
				SourceDir:   sourceDir,
				PackageName: packageName,
			}

			return deployer.Run(ctx, options)
		},
	}
)

// Execute runs the docsflow-deploy CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to settings file")
	rootCmd.Flags().StringVarP(&sourceDir, "source", "s", "", "directory to package (defaults to site, then docs)")
	rootCmd.Flags().StringVarP(&packageName, "package", "p", "", "archive filename")
}
