package bfs

import (
	"bytes"
	"encoding/binary"

	"github.com/noxer/bytewriter"

	"github.com/oscoursework/bfs/block"
)

// packBlock serializes v — a fixed-size struct whose encoded form must not
// exceed block.Size — into a freshly zeroed, block-sized buffer. It writes
// through a bytewriter so that a struct which would overflow a block fails
// loudly with an error instead of silently corrupting whatever followed it.
func packBlock(v any) ([]byte, error) {
	buf := make([]byte, block.Size)
	w := bytewriter.New(buf)
	if err := binary.Write(w, binary.LittleEndian, v); err != nil {
		return nil, err
	}
	return buf, nil
}

// unpackFixed decodes a little-endian fixed-size structure out of buf.
func unpackFixed(buf []byte, v any) error {
	return binary.Read(bytes.NewReader(buf), binary.LittleEndian, v)
}

// packEntries serializes a directory's entries back-to-back, with no
// padding; the result is handed to writeInode like any other file payload.
func packEntries(entries []DirectoryEntry) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Grow(len(entries) * DirectoryEntrySize)
	for i := range entries {
		if err := binary.Write(buf, binary.LittleEndian, &entries[i]); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// unpackEntries is packEntries' inverse, used on a directory inode's raw
// contents as returned by readInode.
func unpackEntries(data []byte) ([]DirectoryEntry, error) {
	count := len(data) / DirectoryEntrySize
	entries := make([]DirectoryEntry, count)
	r := bytes.NewReader(data)
	for i := 0; i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
