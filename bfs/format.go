// Package bfs implements the on-disk format and in-memory engine for BFS, a
// small block-structured filesystem hosted inside an ordinary host file.
//
// The on-disk layout, starting at block 0, is:
//
//  1. SuperBlock            (block 0)
//  2. InodeBitMap           (block 1)
//  3. BlockBitMap           (block 2)
//  4. inode table           (InodeBlocks blocks of 64 inodes each)
//  5. data region           (DataBlocks blocks)
package bfs

import "github.com/oscoursework/bfs/block"

// Magic identifies a formatted BFS image.
const Magic uint32 = 0xDEADBEEF

const (
	// InodeSize is the packed size of a single Inode record, in bytes.
	InodeSize = 64
	// DirectoryEntrySize is the packed size of a single DirectoryEntry, in bytes.
	DirectoryEntrySize = 32
	// InodesPerBlock is how many Inode records fit in one block.
	InodesPerBlock = block.Size / InodeSize
	// PointersPerBlock is how many block pointers fit in one indirect block.
	PointersPerBlock = block.Size / 4
	// EntriesPerBlock is how many DirectoryEntry records fit in one block.
	EntriesPerBlock = block.Size / DirectoryEntrySize
	// DirectPerInode is the number of direct block pointers stored in an Inode.
	DirectPerInode = 11
	// IndirectCap is the number of block pointers reachable through the single
	// indirect pointer.
	IndirectCap = PointersPerBlock
	// MaxFileBytes is the combined capacity of an inode's direct and indirect
	// blocks. Writes must be strictly shorter than this; a payload of
	// MaxFileBytes or more is rejected.
	MaxFileBytes = (DirectPerInode + IndirectCap) * block.Size
	// MaxFilename is the largest filename BFS can store, including any NUL
	// padding; filenames must be strictly shorter than this.
	MaxFilename = 28
)

// SuperBlock is the first block of a formatted image. All fields are
// little-endian uint32s, packed with no padding.
type SuperBlock struct {
	Magic       uint32
	DataBlocks  uint32
	InodeBlocks uint32
	InodeOffset uint32
	BlockOffset uint32
}

// Inode is the 64-byte on-disk inode record.
type Inode struct {
	Mode             Mode
	UID              uint16
	Size             uint32
	CreationTime     uint32
	ModificationTime uint32
	Direct           [DirectPerInode]uint32
	Indirect         uint32
}

// DirectoryEntry binds a NUL-padded filename to an inode number. A
// directory's contents are a dense array of these.
type DirectoryEntry struct {
	Inode    uint32
	Filename [MaxFilename]byte
}

// Stat is the metadata BFS reports for statFile/listDirectory, equivalent to
// an Inode stripped of its block pointers.
type Stat struct {
	Mode             Mode
	UID              uint16
	Size             uint32
	CreationTime     uint32
	ModificationTime uint32
}

func (inode Inode) stat() Stat {
	return Stat{
		Mode:             inode.Mode,
		UID:              inode.UID,
		Size:             inode.Size,
		CreationTime:     inode.CreationTime,
		ModificationTime: inode.ModificationTime,
	}
}

// DirectoryListing is one entry returned by FileSystem.ListDirectory.
type DirectoryListing struct {
	Name string
	Stat Stat
}
