package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscoursework/bfs/block"
)

func TestEnsureImageSized_CreatesFileAtPresetSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bfs")

	require.NoError(t, ensureImageSized(path, "tiny"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	geometry, err := block.GetPredefinedGeometry("tiny")
	require.NoError(t, err)
	assert.Equal(t, int64(geometry.TotalBlocks)*block.Size, info.Size())
}

func TestEnsureImageSized_LeavesNonEmptyImageAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bfs")
	require.NoError(t, os.WriteFile(path, make([]byte, block.Size*5), 0o600))

	require.NoError(t, ensureImageSized(path, "large"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(block.Size*5), info.Size())
}

func TestEnsureImageSized_RejectsUnknownPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bfs")
	assert.Error(t, ensureImageSized(path, "does-not-exist"))
}
