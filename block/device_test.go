package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

func newTestDevice(t *testing.T, blocks uint32) *Device {
	t.Helper()
	buf := make([]byte, int(blocks)*Size)
	stream := bytesextra.NewReadWriteSeeker(buf)
	return OpenStream(stream, blocks)
}

func TestDevice_SizeMatchesBlockCount(t *testing.T) {
	d := newTestDevice(t, 32)
	assert.Equal(t, uint32(32), d.Size())
}

func TestDevice_MountUnmountToggleFlag(t *testing.T) {
	d := newTestDevice(t, 16)
	require.False(t, d.Mounted())

	require.NoError(t, d.Mount())
	assert.True(t, d.Mounted())
	assert.Error(t, d.Mount(), "mounting twice must fail")

	require.NoError(t, d.Unmount())
	assert.False(t, d.Mounted())
	assert.Error(t, d.Unmount(), "unmounting twice must fail")
}

func TestDevice_WriteThenReadRoundTrips(t *testing.T) {
	d := newTestDevice(t, 16)

	block := bytes.Repeat([]byte{0x42}, Size)
	require.NoError(t, d.Write(3, block))

	readBack := make([]byte, Size)
	require.NoError(t, d.Read(3, readBack))
	assert.Equal(t, block, readBack)
}

func TestDevice_ReadWriteOutOfRangeFails(t *testing.T) {
	d := newTestDevice(t, 4)
	buf := make([]byte, Size)

	assert.Error(t, d.Read(4, buf))
	assert.Error(t, d.Write(10, buf))
}

func TestDevice_DoesNotTouchOtherBlocks(t *testing.T) {
	d := newTestDevice(t, 4)

	first := bytes.Repeat([]byte{0xAA}, Size)
	second := bytes.Repeat([]byte{0xBB}, Size)
	require.NoError(t, d.Write(0, first))
	require.NoError(t, d.Write(1, second))

	readBack := make([]byte, Size)
	require.NoError(t, d.Read(0, readBack))
	assert.Equal(t, first, readBack)
}
