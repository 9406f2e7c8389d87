package bfs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/oscoursework/bfs/block"
)

// newFormattedFS builds an in-memory device of the given block count,
// formats it as root, and returns the mounted FileSystem.
func newFormattedFS(t *testing.T, blocks uint32) *FileSystem {
	t.Helper()
	buf := make([]byte, int(blocks)*block.Size)
	stream := bytesextra.NewReadWriteSeeker(buf)
	device := block.OpenStream(stream, blocks)

	fs := New(device)
	require.NoError(t, fs.Format())
	return fs
}
