package deployer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/docsflow/docsflow/internal/archive"
	"github.com/docsflow/docsflow/internal/config"
	"github.com/docsflow/docsflow/internal/fluidtopics"
	"github.com/docsflow/docsflow/internal/logger"
	"github.com/docsflow/docsflow/internal/version"
)

// Options contains inputs for the deployer entry point.
type Options struct {
	// ConfigPath is an optional path to the YAML settings file.
	ConfigPath string
	// SourceDir overrides the packaged directory (defaults to the built
	// site when present, the raw docs otherwise).
	SourceDir string
	// PackageName overrides the archive filename.
	PackageName string
}

const (
	// defaultBuildDir is the rendered site output, preferred when present.
	defaultBuildDir = "site"
	// defaultDocsDir is the raw documentation tree fallback.
	defaultDocsDir = "docs"
)

var (
	// errDeployFailed marks a run that completed its stages but did not publish.
	errDeployFailed = errors.New("deployment failed")

	// errDeployInProgress indicates another deployment holds the marker.
	errDeployInProgress = errors.New("another deployment is already running")
)

// deployer holds the state of a single deployment execution.
// It is unexported; callers should use Run, which encapsulates setup,
// the marker guard and guaranteed cleanup.
type deployer struct {
	// cfg holds validated deployment settings.
	cfg *config.Config
	// client talks to the publishing portal.
	client *fluidtopics.Client
}

// Run executes the deployment workflow: package, upload, poll, cleanup.
// Cleanup runs exactly once on every exit path, including interruption, and
// its failures are downgraded to warnings.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "docsflow-deploy")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	if opts.SourceDir != "" {
		cfg.SourceDir = opts.SourceDir
	}

	if opts.PackageName != "" {
		cfg.PackageName = opts.PackageName
	}

	client, err := fluidtopics.NewClient(cfg)
	if err != nil {
		return err
	}

	if IsDeployRunningNow(ctx) {
		return errDeployInProgress
	}

	if err = writeMarker(); err != nil {
		return fmt.Errorf("write deploy marker: %w", err)
	}

	d := &deployer{
		cfg:    cfg,
		client: client,
	}

	// Cleanup is registered before the first stage so it runs whether the
	// stages succeed, fail, or the run is interrupted.
	defer d.cleanup(ctx)

	if err = d.run(ctx); err != nil {
		logger.ErrorKV(ctx, "Deployment failed", "error", err)
		return err
	}

	logger.Info(ctx, "Deployment completed successfully")

	return nil
}

// run drives the stages strictly in sequence.
func (d *deployer) run(ctx context.Context) error {
	sourceDir := d.resolveSourceDir()
	logger.InfoKV(ctx, "Creating documentation package", "source", sourceDir)

	artifact, err := archive.Create(ctx, sourceDir, d.cfg.PackageName)
	if err != nil {
		return fmt.Errorf("create package: %w", err)
	}

	outcome, err := d.client.Upload(ctx, artifact, version.BuildLabel(ctx))
	if err != nil {
		return fmt.Errorf("upload package: %w", err)
	}

	if !outcome.Succeeded() {
		return fmt.Errorf("%w: %s", errDeployFailed, outcome)
	}

	logger.InfoKV(ctx, "Upload accepted", "upload_id", outcome.UploadID, "status", outcome.Status)

	if outcome.UploadID == "" {
		logger.Warn(ctx, "Portal returned no upload id, skipping status monitoring")
		return nil
	}

	return d.awaitProcessing(ctx, outcome.UploadID)
}

// awaitProcessing polls until the portal reports a terminal processing state.
func (d *deployer) awaitProcessing(ctx context.Context, uploadID string) error {
	status, err := d.client.PollUntilTerminal(ctx, uploadID)
	if err != nil {
		return fmt.Errorf("monitor processing: %w", err)
	}

	if status.State == fluidtopics.StateFailed {
		if status.Error != "" {
			return fmt.Errorf("%w: processing failed: %s", errDeployFailed, status.Error)
		}

		return fmt.Errorf("%w: processing failed", errDeployFailed)
	}

	if status.PublicationURL != "" {
		logger.InfoKV(ctx, "Documentation published", "url", status.PublicationURL)
	} else {
		logger.Info(ctx, "Processing completed")
	}

	return nil
}

// resolveSourceDir picks the directory to package: an explicit setting wins,
// then the rendered site when present, then the raw docs tree.
func (d *deployer) resolveSourceDir() string {
	if d.cfg.SourceDir != "" {
		return d.cfg.SourceDir
	}

	if info, err := os.Stat(defaultBuildDir); err == nil && info.IsDir() {
		return defaultBuildDir
	}

	return defaultDocsDir
}

// cleanup removes the transient archive and the deploy marker. A missing
// archive is a no-op; removal failures are warnings, never fatal.
func (d *deployer) cleanup(ctx context.Context) {
	err := os.Remove(d.cfg.PackageName)

	switch {
	case err == nil:
		logger.InfoKV(ctx, "Removed package", "path", d.cfg.PackageName)
	case errors.Is(err, os.ErrNotExist):
		// Nothing was written; nothing to do.
	default:
		logger.WarnKV(ctx, "Could not remove package", "path", d.cfg.PackageName, "error", err)
	}

	removeMarker(ctx)
}
