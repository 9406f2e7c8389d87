package bfs

import (
	"strings"
	"time"

	"github.com/oscoursework/bfs/block"
	bfserrors "github.com/oscoursework/bfs/errors"
)

// FileSystem is a mounted (or not-yet-formatted) BFS image bound to a single
// block.Device. It is not safe for concurrent use from multiple goroutines;
// callers that need that should serialize access themselves, the same way
// the original single-user shell did.
type FileSystem struct {
	device *block.Device

	super    SuperBlock
	inodeMap freeBitmap
	blockMap freeBitmap

	currentInodeIndex uint32
	currentUID        uint16
}

// New binds a FileSystem to device. Call Format or Mount before doing
// anything else with it.
func New(device *block.Device) *FileSystem {
	return &FileSystem{device: device}
}

func now() uint32 {
	return uint32(time.Now().Unix())
}

// SetUid changes the effective user BFS checks permissions against. There is
// no authentication: any caller may become any uid, exactly as the
// coursework shell allows.
func (fs *FileSystem) SetUid(uid uint16) {
	fs.currentUID = uid
}

// CurrentUid returns the effective uid set by the most recent SetUid call.
func (fs *FileSystem) CurrentUid() uint16 {
	return fs.currentUID
}

// Format lays down a fresh BFS image on the bound device. The caller must be
// root (uid 0); the device's total block count determines the inode table
// size, at a fixed ratio of one inode block per sixteen blocks of image.
func (fs *FileSystem) Format() error {
	if fs.currentUID != 0 {
		return bfserrors.ErrPermissionDenied.WithMessage("format requires uid 0")
	}

	size := fs.device.Size()
	if size < block.MinBlocks {
		return bfserrors.ErrDiskTooSmall
	}

	inodeBlocks := size / 16
	if inodeBlocks == 0 {
		inodeBlocks = 1
	}
	dataBlocks := size - inodeBlocks - 3

	fs.super = SuperBlock{
		Magic:       Magic,
		DataBlocks:  dataBlocks,
		InodeBlocks: inodeBlocks,
		InodeOffset: 3,
		BlockOffset: 3 + inodeBlocks,
	}
	superBuf, err := packBlock(&fs.super)
	if err != nil {
		return err
	}
	if err := fs.device.Write(0, superBuf); err != nil {
		return err
	}

	fs.inodeMap = newFreeBitmap(int(inodeBlocks * InodesPerBlock))
	fs.inodeMap.MarkAllFree()
	fs.blockMap = newFreeBitmap(int(dataBlocks))
	fs.blockMap.MarkAllFree()
	if err := fs.flushInodeBitmap(); err != nil {
		return err
	}
	if err := fs.flushBlockBitmap(); err != nil {
		return err
	}

	zero := make([]byte, block.Size)
	for i := uint32(3); i < size; i++ {
		if err := fs.device.Write(i, zero); err != nil {
			return err
		}
	}

	if !fs.device.Mounted() {
		if err := fs.device.Mount(); err != nil {
			return err
		}
	}

	fs.currentInodeIndex = 0
	rootIndex, err := fs.createInode(AllDir)
	if err != nil {
		return err
	}
	if rootIndex != 0 {
		return bfserrors.ErrNoFreeInode.WithMessage("root inode did not land at index 0")
	}
	return fs.initDirectory(rootIndex, rootIndex)
}

// Mount reads the superblock and bitmaps off an already-formatted device and
// attaches them to fs. The root directory becomes the current directory.
func (fs *FileSystem) Mount() error {
	superBuf := make([]byte, block.Size)
	if err := fs.device.Read(0, superBuf); err != nil {
		return err
	}
	var super SuperBlock
	if err := unpackFixed(superBuf, &super); err != nil {
		return err
	}
	if super.Magic != Magic {
		return bfserrors.ErrBadMagic
	}

	if err := fs.device.Mount(); err != nil {
		return err
	}
	fs.super = super

	inodeBuf := make([]byte, block.Size)
	if err := fs.device.Read(1, inodeBuf); err != nil {
		return err
	}
	fs.inodeMap = freeBitmapFromBlock(inodeBuf, int(super.InodeBlocks*InodesPerBlock))

	blockBuf := make([]byte, block.Size)
	if err := fs.device.Read(2, blockBuf); err != nil {
		return err
	}
	fs.blockMap = freeBitmapFromBlock(blockBuf, int(super.DataBlocks))

	fs.currentInodeIndex = 0
	return nil
}

// ReadFile returns the full contents of the file at path.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	index, err := fs.locateFile(path)
	if err != nil {
		return nil, err
	}
	inode, err := fs.getInode(index)
	if err != nil {
		return nil, err
	}
	if inode.Mode.IsDir() {
		return nil, bfserrors.ErrIsADirectory.WithMessage(path)
	}
	return fs.readInode(index, inode)
}

// WriteFile overwrites the full contents of the file at path with src.
func (fs *FileSystem) WriteFile(path string, src []byte) error {
	index, err := fs.locateFile(path)
	if err != nil {
		return err
	}
	inode, err := fs.getInode(index)
	if err != nil {
		return err
	}
	if inode.Mode.IsDir() {
		return bfserrors.ErrIsADirectory.WithMessage(path)
	}
	return fs.writeInode(index, inode, src)
}

// CopyFile reads the file at from and creates a new file at to with the same
// contents. Neither path may name a directory.
func (fs *FileSystem) CopyFile(from, to string) error {
	if strings.HasSuffix(from, "/") || strings.HasSuffix(to, "/") {
		return bfserrors.ErrIsADirectory.WithMessage("copy applies to files only")
	}

	data, err := fs.ReadFile(from)
	if err != nil {
		return err
	}
	if err := fs.CreateFile(to); err != nil {
		return err
	}
	return fs.WriteFile(to, data)
}

// MoveFile copies the file at from to to and then removes from.
func (fs *FileSystem) MoveFile(from, to string) error {
	if strings.HasSuffix(from, "/") || strings.HasSuffix(to, "/") {
		return bfserrors.ErrIsADirectory.WithMessage("move applies to files only")
	}

	if err := fs.CopyFile(from, to); err != nil {
		return err
	}
	return fs.RemoveFile(from)
}

// StatFile returns the metadata for the file or directory at path.
func (fs *FileSystem) StatFile(path string) (Stat, error) {
	index, err := fs.locateFile(path)
	if err != nil {
		return Stat{}, err
	}
	inode, err := fs.getInode(index)
	if err != nil {
		return Stat{}, err
	}
	return inode.stat(), nil
}

// ChangeOwner reassigns the owner of the file or directory at path. Any
// caller may chown any file; the only restriction is that the root
// directory's owner cannot be changed.
func (fs *FileSystem) ChangeOwner(path string, uid uint16) error {
	index, err := fs.locateFile(path)
	if err != nil {
		return err
	}
	if index == 0 {
		return bfserrors.ErrRootImmutable
	}
	inode, err := fs.getInode(index)
	if err != nil {
		return err
	}
	inode.UID = uid
	return fs.setInode(index, inode)
}

// ChangeMode replaces the permission bits (not the directory flag) of the
// file or directory at path. Only the owner may do this.
func (fs *FileSystem) ChangeMode(path string, mode Mode) error {
	index, err := fs.locateFile(path)
	if err != nil {
		return err
	}
	if index == 0 {
		return bfserrors.ErrRootImmutable
	}
	inode, err := fs.getInode(index)
	if err != nil {
		return err
	}
	if inode.UID != fs.currentUID {
		return bfserrors.ErrPermissionDenied.WithMessage("only the owner may change mode")
	}
	inode.Mode = (inode.Mode & Dir) | (mode & All)
	return fs.setInode(index, inode)
}
