package bfs

// Mode packs a permission bit pattern together with the directory flag, all
// in the low 10 bits of a uint16.
type Mode uint16

// Permission bits. Only the owner/other pairs are meaningful; BFS has no
// concept of groups, so the "group" bits exist only for parity with the
// familiar rwxrwxrwx layout and are never consulted.
const (
	OthExec  Mode = 0o0001
	OthWrite Mode = 0o0002
	OthRead  Mode = 0o0004
	GrpExec  Mode = 0o0010
	GrpWrite Mode = 0o0020
	GrpRead  Mode = 0o0040
	OwnExec  Mode = 0o0100
	OwnWrite Mode = 0o0200
	OwnRead  Mode = 0o0400

	// Dir marks an inode as a directory.
	Dir Mode = 0o1000

	// All is every rwxrwxrwx bit set.
	All Mode = 0o0777
	// AllDir is All plus the directory flag, the mode the root directory is
	// given by Format. Directories made by CreateFile get defaultDirMode.
	AllDir Mode = Dir | All

	defaultFileMode = OwnRead | OwnWrite | GrpRead | OthRead
	defaultDirMode  = Dir | defaultFileMode
)

// IsDir reports whether m has the directory flag set.
func (m Mode) IsDir() bool {
	return m&Dir != 0
}

// canRead reports whether a caller with currentUID may read an object owned
// by ownerUID with the given mode. Only the owner and other bits are
// consulted; there is no group concept.
func canRead(mode Mode, ownerUID, currentUID uint16) bool {
	if ownerUID == currentUID {
		return mode&OwnRead != 0
	}
	return mode&OthRead != 0
}

// canWrite is canRead's write-bit counterpart.
func canWrite(mode Mode, ownerUID, currentUID uint16) bool {
	if ownerUID == currentUID {
		return mode&OwnWrite != 0
	}
	return mode&OthWrite != 0
}
