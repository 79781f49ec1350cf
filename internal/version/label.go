package version

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/docsflow/docsflow/internal/logger"
)

// gitCommandTimeout bounds the revision lookup so a hung git never blocks an upload.
const gitCommandTimeout = 10 * time.Second

// BuildLabel returns the version label attached to uploaded packages.
// It prefers "git-<short-sha>-<unix>" and falls back to "build-<unix>" when
// the revision lookup fails or times out. It never returns an error.
func BuildLabel(ctx context.Context) string {
	now := time.Now().Unix()

	cmdCtx, cancel := context.WithTimeout(ctx, gitCommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, "git", "rev-parse", "--short", "HEAD")

	output, err := cmd.Output()
	if err != nil {
		logger.Warnf(ctx, "Could not resolve git revision, using timestamp label: %v", err)
		return fmt.Sprintf("build-%d", now)
	}

	commit := strings.TrimSpace(string(output))
	if commit == "" {
		return fmt.Sprintf("build-%d", now)
	}

	return fmt.Sprintf("git-%s-%d", commit, now)
}
