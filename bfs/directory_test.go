package bfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bfserrors "github.com/oscoursework/bfs/errors"
)

func TestCreateFile_RejectsDuplicateName(t *testing.T) {
	fs := newFormattedFS(t, 32)
	require.NoError(t, fs.CreateFile("dup.txt"))

	err := fs.CreateFile("dup.txt")
	assert.ErrorIs(t, err, bfserrors.ErrAlreadyExists)
}

func TestCreateFile_RejectsRootItself(t *testing.T) {
	fs := newFormattedFS(t, 32)
	err := fs.CreateFile("/")
	assert.ErrorIs(t, err, bfserrors.ErrAlreadyExists)
}

func TestCreateFile_RejectsOverlongFilename(t *testing.T) {
	fs := newFormattedFS(t, 32)
	longName := ""
	for i := 0; i < MaxFilename; i++ {
		longName += "a"
	}
	err := fs.CreateFile(longName)
	assert.ErrorIs(t, err, bfserrors.ErrIllegalFilename)
}

func TestCreateFile_Directory(t *testing.T) {
	fs := newFormattedFS(t, 32)
	require.NoError(t, fs.CreateFile("sub/"))

	stat, err := fs.StatFile("sub")
	require.NoError(t, err)
	assert.True(t, stat.Mode.IsDir())

	entries, err := fs.ListDirectory("sub")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ".", entries[0].Name)
	assert.Equal(t, "..", entries[1].Name)
}

func TestChangeDirectory_NestedAndDotDot(t *testing.T) {
	fs := newFormattedFS(t, 32)
	require.NoError(t, fs.CreateFile("sub/"))
	require.NoError(t, fs.CreateFile("sub/leaf.txt"))

	require.NoError(t, fs.ChangeDirectory("sub"))
	_, err := fs.StatFile("leaf.txt")
	require.NoError(t, err)

	require.NoError(t, fs.ChangeDirectory(".."))
	_, err = fs.StatFile("sub/leaf.txt")
	require.NoError(t, err)
}

func TestChangeDirectory_RejectsFile(t *testing.T) {
	fs := newFormattedFS(t, 32)
	require.NoError(t, fs.CreateFile("f.txt"))

	err := fs.ChangeDirectory("f.txt")
	assert.ErrorIs(t, err, bfserrors.ErrNotADirectory)
}

func TestRemoveFile_RootImmutable(t *testing.T) {
	fs := newFormattedFS(t, 32)
	err := fs.RemoveFile("/")
	assert.ErrorIs(t, err, bfserrors.ErrRootImmutable)
}

func TestRemoveFile_DeniedForNonOwner(t *testing.T) {
	fs := newFormattedFS(t, 32)
	require.NoError(t, fs.CreateFile("f.txt"))

	fs.SetUid(7)
	err := fs.RemoveFile("f.txt")
	assert.ErrorIs(t, err, bfserrors.ErrPermissionDenied)
}

func TestRemoveFile_RemovesFromParentListing(t *testing.T) {
	fs := newFormattedFS(t, 32)
	require.NoError(t, fs.CreateFile("f.txt"))
	require.NoError(t, fs.RemoveFile("f.txt"))

	_, err := fs.StatFile("f.txt")
	assert.ErrorIs(t, err, bfserrors.ErrDoesNotExist)

	entries, err := fs.ListDirectory("/")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRemoveFile_RecursivelyRemovesDirectory(t *testing.T) {
	fs := newFormattedFS(t, 32)
	require.NoError(t, fs.CreateFile("sub/"))
	require.NoError(t, fs.CreateFile("sub/inner/"))
	require.NoError(t, fs.CreateFile("sub/inner/leaf.txt"))

	require.NoError(t, fs.RemoveFile("sub"))

	_, err := fs.StatFile("sub")
	assert.ErrorIs(t, err, bfserrors.ErrDoesNotExist)
}

func TestLocateFile_DoesNotTruncateLongNameMatch(t *testing.T) {
	fs := newFormattedFS(t, 32)
	// full is exactly MaxFilename-1 characters, the longest name BFS can
	// store; a shorter query sharing the same prefix must not match it.
	full := ""
	for i := 0; i < MaxFilename-1; i++ {
		full += "a"
	}
	require.NoError(t, fs.CreateFile(full))

	_, err := fs.StatFile(full[:MaxFilename-2])
	assert.ErrorIs(t, err, bfserrors.ErrDoesNotExist)

	_, err = fs.StatFile(full)
	require.NoError(t, err)
}
