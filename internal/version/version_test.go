package version

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFull includes all metadata fields in the rendered string.
func TestFull(t *testing.T) {
	t.Parallel()

	s := Full()
	require.Contains(t, s, "version: ")
	require.Contains(t, s, "commit: ")
	require.Contains(t, s, "built at: ")
}

// TestBuildLabel_NeverEmpty ensures a label is produced with or without git.
func TestBuildLabel_NeverEmpty(t *testing.T) {
	t.Parallel()

	label := BuildLabel(context.Background())
	require.NotEmpty(t, label)
	require.Regexp(t, `^(git-[0-9a-f]+-\d+|build-\d+)$`, label)
}
