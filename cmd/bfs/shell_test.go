package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/oscoursework/bfs/bfs"
	"github.com/oscoursework/bfs/block"
)

func newTestShell(t *testing.T, script string) (*Shell, *bytes.Buffer) {
	t.Helper()
	buf := make([]byte, 64*block.Size)
	device := block.OpenStream(bytesextra.NewReadWriteSeeker(buf), 64)
	fs := bfs.New(device)

	var out bytes.Buffer
	shell := NewShell(fs, strings.NewReader(script), &out)
	return shell, &out
}

func TestShell_FormatTouchWriteCat(t *testing.T) {
	script := "format\ntouch /a\nwrite /a hello\ncat /a\nexit\n"
	shell, out := newTestShell(t, script)

	require.NoError(t, shell.Run())
	assert.Contains(t, out.String(), "hello")
}

func TestShell_StatShowsExpectedFields(t *testing.T) {
	script := "format\ntouch /a\nwrite /a hello\nstat /a\nexit\n"
	shell, out := newTestShell(t, script)

	require.NoError(t, shell.Run())
	assert.Contains(t, out.String(), "0644")
	assert.Contains(t, out.String(), "5B 0644 0 ")
}

func TestShell_WritePreservesInternalWhitespace(t *testing.T) {
	script := "format\ntouch /a\nwrite /a hello   world\ncat /a\nexit\n"
	shell, out := newTestShell(t, script)

	require.NoError(t, shell.Run())
	assert.Contains(t, out.String(), "hello   world")
}

func TestShell_UnknownCommandPrintsError(t *testing.T) {
	script := "bogus\nexit\n"
	shell, out := newTestShell(t, script)

	require.NoError(t, shell.Run())
	assert.Contains(t, out.String(), "unknown command")
}

func TestShell_SuThenWriteDeniedThenChmodAllows(t *testing.T) {
	script := "format\ntouch /a\nsu 7\nwrite /a data\nsu 0\nchmod 666 /a\nsu 7\nwrite /a data\nexit\n"
	shell, out := newTestShell(t, script)

	require.NoError(t, shell.Run())
	text := out.String()
	assert.Contains(t, text, "permission denied")
	assert.Equal(t, 1, strings.Count(text, "permission denied"), "the write after chmod 666 must succeed")
}
