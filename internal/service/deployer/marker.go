package deployer

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/docsflow/docsflow/internal/logger"
)

const (
	// MarkerFilename marks that a deployment is running right now to avoid
	// parallel executions clobbering the shared archive.
	MarkerFilename = "docsflow-deploy-marker.bin"

	// deployExecutable is the process name a stale marker may belong to.
	deployExecutable = "docsflow-deploy"

	// markerLifetime is the period after which a leftover marker is
	// considered stale and reclaimed.
	markerLifetime = 30 * time.Second
)

// IsDeployRunningNow checks presence of a deploy marker and attempts
// recovery when it looks stale.
func IsDeployRunningNow(ctx context.Context) bool {
	fileInfo, err := os.Stat(MarkerFilename)
	if err == nil {
		if time.Since(fileInfo.ModTime()) <= markerLifetime {
			return true
		}

		logger.Info(ctx, "The deploy marker is stale, attempting cleanup")

		if err = terminateProcessByName(deployExecutable); err != nil {
			return true
		}

		if err = os.Remove(MarkerFilename); err != nil {
			return true
		}

		return false
	}

	if errors.Is(err, os.ErrNotExist) {
		return false
	}

	logger.Infof(ctx, "Unable to read deploy marker: %v", err)

	return false
}

// writeMarker creates the marker file claiming the deployment slot.
func writeMarker() error {
	marker, err := os.Create(MarkerFilename)
	if err != nil {
		return err
	}

	return marker.Close()
}

// removeMarker releases the deployment slot. Best effort.
func removeMarker(ctx context.Context) {
	if err := os.Remove(MarkerFilename); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Could not remove deploy marker", "error", err)
	}
}

// terminateProcessByName tries to kill leftover processes with the provided
// executable name, skipping the current process.
func terminateProcessByName(processName string) error {
	processList, err := ps.Processes()
	if err != nil {
		return err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != processName {
			continue
		}

		var runningProcess *os.Process

		runningProcess, err = os.FindProcess(process.Pid())
		if err != nil {
			return err
		}

		if err = runningProcess.Kill(); err != nil {
			return err
		}
	}

	return nil
}
