package bfs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Check walks every inode currently marked used and verifies the basic
// consistency invariants a formatted image must hold: no file exceeds
// MaxFileBytes, and no data block is claimed by more than one inode. Unlike
// every other FileSystem method, Check does not stop at the first problem —
// it collects everything it finds and returns a single combined error, so a
// caller can see the full extent of corruption in one pass rather than
// fixing issues one at a time.
func (fs *FileSystem) Check() error {
	var result *multierror.Error
	owner := make(map[uint32]uint32)

	totalInodes := int(fs.super.InodeBlocks * InodesPerBlock)
	for i := 0; i < totalInodes; i++ {
		if fs.inodeMap.IsFree(i) {
			continue
		}

		inode, err := fs.getInode(uint32(i))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("inode %d: %w", i, err))
			continue
		}
		if inode.Size > MaxFileBytes {
			result = multierror.Append(result, fmt.Errorf("inode %d: size %d exceeds the maximum file size", i, inode.Size))
		}

		walk, err := fs.walkInodeBlocks(&inode)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("inode %d: %w", i, err))
			continue
		}

		all := append(append([]uint32{}, walk.direct...), walk.indirect...)
		if walk.hasIndirect {
			all = append(all, walk.indirectBlock)
		}
		for _, location := range all {
			if prior, claimed := owner[location]; claimed {
				result = multierror.Append(result, fmt.Errorf("data block %d is claimed by both inode %d and inode %d", location, prior, i))
				continue
			}
			owner[location] = uint32(i)
		}
	}

	return result.ErrorOrNil()
}
