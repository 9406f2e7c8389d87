// Package block implements the fixed-size block-addressable device BFS is
// built on top of: an ordinary host file treated as an array of 4096-byte
// blocks.
package block

import (
	"io"
	"os"

	bfserrors "github.com/oscoursework/bfs/errors"
)

// Size is the fixed size of a single block, in bytes.
const Size = 4096

// MinBlocks is the smallest disk image the bfs package will accept.
const MinBlocks = 16

// Device is a random-access, block-addressable view over a host file. It has
// no notion of what the blocks contain; that's the bfs package's job.
//
// A Device does not cache anything: every Read and Write goes straight to the
// underlying file, matching the single-writer, no-write-cache model in
// spec §5.
type Device struct {
	file         *os.File
	streamDevice devicePrivate
	mounted      bool
	blocks       uint32
}

// Open opens or creates the host file at path with read-write access and
// determines its block count from its size on disk. It does not create or
// validate any BFS structures; that happens in FileSystem.Format/Mount.
func Open(path string) (*Device, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	return &Device{
		file:   file,
		blocks: uint32(info.Size() / Size),
	}, nil
}

// OpenStream wraps an already-open stream (e.g. an in-memory image used in
// tests) as a Device with the given block count.
func OpenStream(stream io.ReadWriteSeeker, blocks uint32) *Device {
	return &Device{streamDevice: stream, blocks: blocks}
}

// Size returns the number of blocks in the device.
func (d *Device) Size() uint32 {
	return d.blocks
}

// Mounted reports whether Mount has been called without a matching Unmount.
func (d *Device) Mounted() bool {
	return d.mounted
}

// Mount marks the device as mounted. It is purely a bookkeeping flag; no
// host-level operation is performed. It fails if the device is already
// mounted.
func (d *Device) Mount() error {
	if d.mounted {
		return bfserrors.ErrAlreadyMounted
	}
	d.mounted = true
	return nil
}

// Unmount clears the mounted flag. It fails if the device isn't mounted.
func (d *Device) Unmount() error {
	if !d.mounted {
		return bfserrors.ErrNotMounted
	}
	d.mounted = false
	return nil
}

// Read transfers exactly one block's worth of data starting at block index i
// into buf, which must be at least Size bytes long.
func (d *Device) Read(i uint32, buf []byte) error {
	if i >= d.blocks {
		return bfserrors.ErrInvalidBlockIndex
	}

	seeker, reader := d.seekerAndReader()
	if _, err := seeker.Seek(int64(i)*Size, io.SeekStart); err != nil {
		return err
	}

	n, err := io.ReadFull(reader, buf[:Size])
	if err != nil {
		return err
	}
	if n != Size {
		return bfserrors.ErrShortIO
	}
	return nil
}

// Write transfers exactly Size bytes from buf to block index i.
func (d *Device) Write(i uint32, buf []byte) error {
	if i >= d.blocks {
		return bfserrors.ErrInvalidBlockIndex
	}
	if len(buf) < Size {
		return bfserrors.ErrShortIO
	}

	seeker, writer := d.seekerAndWriter()
	if _, err := seeker.Seek(int64(i)*Size, io.SeekStart); err != nil {
		return err
	}

	n, err := writer.Write(buf[:Size])
	if err != nil {
		return err
	}
	if n != Size {
		return bfserrors.ErrShortIO
	}
	return nil
}

// Close releases the underlying host file, if any. It is a no-op for devices
// opened with OpenStream.
func (d *Device) Close() error {
	if d.file == nil {
		return nil
	}
	return d.file.Close()
}

// -----------------------------------------------------------------------------
// stream plumbing: a Device is backed either by an *os.File or by an
// io.ReadWriteSeeker supplied directly (used by tests to avoid touching disk).

// streamDevice, when set, is used in place of file for all I/O.
type devicePrivate = io.ReadWriteSeeker

func (d *Device) seekerAndReader() (io.Seeker, io.Reader) {
	if d.streamDevice != nil {
		return d.streamDevice, d.streamDevice
	}
	return d.file, d.file
}

func (d *Device) seekerAndWriter() (io.Seeker, io.Writer) {
	if d.streamDevice != nil {
		return d.streamDevice, d.streamDevice
	}
	return d.file, d.file
}
