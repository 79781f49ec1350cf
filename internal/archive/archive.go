package archive

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsflow/docsflow/internal/logger"
)

// Artifact describes a finished documentation package on disk.
type Artifact struct {
	// Path is the location of the written archive.
	Path string
	// FileCount is the number of regular files added to the archive.
	FileCount int
	// Digest is the hex-encoded SHA-256 of the archive bytes, computed after
	// the archive is fully written and closed.
	Digest string
}

// ErrMissingSource is returned when the directory to package does not exist.
var ErrMissingSource = errors.New("source directory does not exist")

// checksumBufferSize is the fixed chunk size for digest reads.
const checksumBufferSize = 4096

// Create walks sourceDir, writes a compressed zip archive to outPath and
// returns the resulting artifact. Hidden entries (names starting with a dot)
// are excluded together with their descendants. An existing archive at
// outPath is replaced.
func Create(ctx context.Context, sourceDir, outPath string) (*Artifact, error) {
	info, err := os.Stat(sourceDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", sourceDir, ErrMissingSource)
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", sourceDir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", sourceDir, ErrMissingSource)
	}

	count, err := writeArchive(sourceDir, outPath)
	if err != nil {
		return nil, err
	}

	// The digest is only meaningful over the closed archive.
	digest, err := FileChecksum(outPath)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Package created", "path", outPath, "files", count, "sha256", digest)

	return &Artifact{
		Path:      outPath,
		FileCount: count,
		Digest:    digest,
	}, nil
}

// writeArchive produces the zip file and returns the number of files added.
func writeArchive(sourceDir, outPath string) (count int, err error) {
	out, err := os.Create(filepath.Clean(outPath))
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}

	zw := zip.NewWriter(out)

	defer func() {
		if cerr := zw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close archive: %w", cerr)
		}

		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close archive file: %w", cerr)
		}
	}()

	walkErr := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		// Prune hidden entries entirely, descendants included.
		if path != sourceDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			return nil
		}

		if err := addFile(zw, sourceDir, path); err != nil {
			return err
		}

		count++

		return nil
	})
	if walkErr != nil {
		return count, fmt.Errorf("package %s: %w", sourceDir, walkErr)
	}

	return count, nil
}

// addFile writes one file into the archive under its source-relative name.
func addFile(zw *zip.Writer, sourceDir, path string) error {
	rel, err := filepath.Rel(sourceDir, path)
	if err != nil {
		return err
	}

	entry, err := zw.Create(filepath.ToSlash(rel))
	if err != nil {
		return fmt.Errorf("add %s: %w", rel, err)
	}

	in, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	defer func() {
		_ = in.Close()
	}()

	if _, err = io.Copy(entry, in); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}

	return nil
}

// FileChecksum returns the hex-encoded SHA-256 of the file at path,
// read in fixed-size chunks.
func FileChecksum(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("open for checksum: %w", err)
	}

	defer func() {
		_ = f.Close()
	}()

	hasher := sha256.New()
	buf := make([]byte, checksumBufferSize)

	if _, err = io.CopyBuffer(hasher, f, buf); err != nil {
		return "", fmt.Errorf("calculate checksum: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
