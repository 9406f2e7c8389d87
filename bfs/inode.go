package bfs

import (
	"github.com/oscoursework/bfs/block"
	bfserrors "github.com/oscoursework/bfs/errors"
)

func (fs *FileSystem) flushInodeBitmap() error {
	return fs.device.Write(1, fs.inodeMap.blockBytes())
}

func (fs *FileSystem) flushBlockBitmap() error {
	return fs.device.Write(2, fs.blockMap.blockBytes())
}

func (fs *FileSystem) setInodeFree(i int, free bool) error {
	fs.inodeMap.SetFree(i, free)
	return fs.flushInodeBitmap()
}

func (fs *FileSystem) setBlockFree(i int, free bool) error {
	fs.blockMap.SetFree(i, free)
	return fs.flushBlockBitmap()
}

// blockLocation converts a data-bitmap index to an absolute block number.
func (fs *FileSystem) blockLocation(i int) uint32 {
	return uint32(i) + fs.super.BlockOffset
}

// blockMapIndex is blockLocation's inverse.
func (fs *FileSystem) blockMapIndex(location uint32) int {
	return int(location) - int(fs.super.BlockOffset)
}

// inodeLocation splits an inode index into the block holding its record and
// the record's slot within that block.
func (fs *FileSystem) inodeLocation(index uint32) (blockNum uint32, slot uint32) {
	return index/InodesPerBlock + fs.super.InodeOffset, index % InodesPerBlock
}

func (fs *FileSystem) getInode(index uint32) (Inode, error) {
	if !fs.device.Mounted() {
		return Inode{}, bfserrors.ErrNotMounted
	}
	if index >= fs.super.InodeBlocks*InodesPerBlock {
		return Inode{}, bfserrors.ErrInvalidBlockIndex.WithMessage("inode index out of range")
	}

	blockNum, slot := fs.inodeLocation(index)
	buf := make([]byte, block.Size)
	if err := fs.device.Read(blockNum, buf); err != nil {
		return Inode{}, err
	}
	var inodes [InodesPerBlock]Inode
	if err := unpackFixed(buf, &inodes); err != nil {
		return Inode{}, err
	}
	return inodes[slot], nil
}

func (fs *FileSystem) setInode(index uint32, inode Inode) error {
	if !fs.device.Mounted() {
		return bfserrors.ErrNotMounted
	}
	if index >= fs.super.InodeBlocks*InodesPerBlock {
		return bfserrors.ErrInvalidBlockIndex.WithMessage("inode index out of range")
	}

	blockNum, slot := fs.inodeLocation(index)
	buf := make([]byte, block.Size)
	if err := fs.device.Read(blockNum, buf); err != nil {
		return err
	}
	var inodes [InodesPerBlock]Inode
	if err := unpackFixed(buf, &inodes); err != nil {
		return err
	}
	inodes[slot] = inode
	packed, err := packBlock(&inodes)
	if err != nil {
		return err
	}
	return fs.device.Write(blockNum, packed)
}

// createInode allocates the lowest-numbered free inode, stamps it with mode
// and the current owner, and returns its index.
func (fs *FileSystem) createInode(mode Mode) (uint32, error) {
	slot, ok := fs.inodeMap.FirstFree()
	if !ok {
		return 0, bfserrors.ErrNoFreeInode
	}
	index := uint32(slot)

	stamp := now()
	inode := Inode{
		Mode:             mode,
		UID:              fs.currentUID,
		CreationTime:     stamp,
		ModificationTime: stamp,
	}
	if err := fs.setInode(index, inode); err != nil {
		return 0, err
	}
	if err := fs.setInodeFree(slot, false); err != nil {
		return 0, err
	}
	return index, nil
}

// blockWalk is the result of walking an inode's block pointers, split into
// the blocks reachable directly and the blocks reachable through the single
// indirect pointer.
type blockWalk struct {
	direct        []uint32
	indirect      []uint32
	indirectBlock uint32
	hasIndirect   bool
}

// walkInodeBlocks collects every data block currently attached to inode, in
// I/O order. Both the direct array and the indirect table are scanned with
// the same rule: scanning stops at the first pointer that is zero or that
// names a block the bitmap already considers free. The indirect table is
// visited at all only when every one of the eleven direct slots was filled —
// a sparse file can never "skip" to the indirect block. This mirrors the
// block-walk used by readInode and removeInode in the original coursework
// implementation, quirks included.
func (fs *FileSystem) walkInodeBlocks(inode *Inode) (blockWalk, error) {
	var w blockWalk

	directFilled := true
	for _, location := range inode.Direct {
		if location == 0 || fs.blockMap.IsFree(fs.blockMapIndex(location)) {
			directFilled = false
			break
		}
		w.direct = append(w.direct, location)
	}

	if directFilled && inode.Indirect != 0 {
		w.hasIndirect = true
		w.indirectBlock = inode.Indirect

		buf := make([]byte, block.Size)
		if err := fs.device.Read(inode.Indirect, buf); err != nil {
			return w, err
		}
		var pointers [PointersPerBlock]uint32
		if err := unpackFixed(buf, &pointers); err != nil {
			return w, err
		}
		for _, location := range pointers {
			if location == 0 || fs.blockMap.IsFree(fs.blockMapIndex(location)) {
				break
			}
			w.indirect = append(w.indirect, location)
		}
	}

	return w, nil
}

// readInode returns the full contents of the file inode, truncated to its
// recorded size.
func (fs *FileSystem) readInode(index uint32, inode Inode) ([]byte, error) {
	if !canRead(inode.Mode, inode.UID, fs.currentUID) {
		return nil, bfserrors.ErrPermissionDenied.WithMessage("read denied")
	}

	walk, err := fs.walkInodeBlocks(&inode)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, (len(walk.direct)+len(walk.indirect))*block.Size)
	buf := make([]byte, block.Size)
	for _, location := range append(append([]uint32{}, walk.direct...), walk.indirect...) {
		if err := fs.device.Read(location, buf); err != nil {
			return nil, err
		}
		data = append(data, buf...)
	}

	if uint32(len(data)) < inode.Size {
		return data, nil
	}
	return data[:inode.Size], nil
}

// writeBlocksInto fills pointers (a direct array or an indirect pointer
// table) with the bytes of src starting at offset, allocating a fresh data
// block for every zero pointer it encounters. It returns the offset reached,
// which advances by a full block per pointer visited regardless of how many
// source bytes that block actually held — callers use it purely as a cursor
// into src, not as a byte count.
//
// When reusing an already-allocated block, only the first len(src)-offset
// bytes (capped at one block) are overwritten; any trailing bytes in that
// block keep whatever they held before. A freshly allocated block starts
// zeroed, so its unwritten tail reads as zero.
func (fs *FileSystem) writeBlocksInto(pointers []uint32, src []byte, offset int) (int, error) {
	for i := 0; i < len(pointers) && offset < len(src); i, offset = i+1, offset+block.Size {
		length := len(src) - offset
		if length > block.Size {
			length = block.Size
		}

		buf := make([]byte, block.Size)
		if pointers[i] == 0 {
			slot, ok := fs.blockMap.FirstFree()
			if !ok {
				return offset, bfserrors.ErrNoFreeBlock
			}
			pointers[i] = fs.blockLocation(slot)
			if err := fs.setBlockFree(slot, false); err != nil {
				return offset, err
			}
		} else if err := fs.device.Read(pointers[i], buf); err != nil {
			return offset, err
		}

		copy(buf, src[offset:offset+length])
		if err := fs.device.Write(pointers[i], buf); err != nil {
			return offset, err
		}
	}
	return offset, nil
}

// writeInode replaces the contents of the file inode with src, growing the
// direct array and, if needed, the indirect table as it goes. It never frees
// blocks left over from a previous, larger write — shrinking a file reduces
// its reported Size without reclaiming the blocks beyond the new size, a
// quirk carried over unchanged from the original implementation.
func (fs *FileSystem) writeInode(index uint32, inode Inode, src []byte) error {
	if len(src) >= MaxFileBytes {
		return bfserrors.ErrFileTooLarge
	}
	if !canWrite(inode.Mode, inode.UID, fs.currentUID) {
		return bfserrors.ErrPermissionDenied.WithMessage("write denied")
	}

	offset, err := fs.writeBlocksInto(inode.Direct[:], src, 0)
	if err != nil {
		return err
	}

	if offset < len(src) {
		hadIndirect := inode.Indirect != 0
		pointerBuf := make([]byte, block.Size)
		if hadIndirect {
			if err := fs.device.Read(inode.Indirect, pointerBuf); err != nil {
				return err
			}
		} else {
			slot, ok := fs.blockMap.FirstFree()
			if !ok {
				return bfserrors.ErrNoFreeBlock
			}
			inode.Indirect = fs.blockLocation(slot)
			if err := fs.setBlockFree(slot, false); err != nil {
				return err
			}
		}

		var pointers [PointersPerBlock]uint32
		if err := unpackFixed(pointerBuf, &pointers); err != nil {
			return err
		}
		if _, err := fs.writeBlocksInto(pointers[:], src, offset); err != nil {
			return err
		}
		packed, err := packBlock(&pointers)
		if err != nil {
			return err
		}
		if err := fs.device.Write(inode.Indirect, packed); err != nil {
			return err
		}
	}

	inode.Size = uint32(len(src))
	inode.ModificationTime = now()
	return fs.setInode(index, inode)
}

// removeInode frees every data block attached to the inode, zeroes them,
// frees the inode's indirect pointer block too if it had one, and finally
// frees the inode slot itself.
func (fs *FileSystem) removeInode(index uint32) error {
	inode, err := fs.getInode(index)
	if err != nil {
		return err
	}
	walk, err := fs.walkInodeBlocks(&inode)
	if err != nil {
		return err
	}

	zero := make([]byte, block.Size)
	for _, location := range append(append([]uint32{}, walk.direct...), walk.indirect...) {
		if err := fs.setBlockFree(fs.blockMapIndex(location), true); err != nil {
			return err
		}
		if err := fs.device.Write(location, zero); err != nil {
			return err
		}
	}
	if walk.hasIndirect {
		if err := fs.setBlockFree(fs.blockMapIndex(walk.indirectBlock), true); err != nil {
			return err
		}
		if err := fs.device.Write(walk.indirectBlock, zero); err != nil {
			return err
		}
	}

	if err := fs.setInode(index, Inode{}); err != nil {
		return err
	}
	return fs.setInodeFree(int(index), true)
}
