package bfs

import (
	"bytes"
	"strings"

	bfserrors "github.com/oscoursework/bfs/errors"
)

// splitPath breaks a slash-separated path into its non-empty components.
// Both "/a/b" and "a/b/" split the same way; leading and trailing slashes
// only ever matter to the caller, never to the walk itself.
func splitPath(path string) []string {
	raw := strings.Split(path, "/")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// entryName returns the filename stored in e, stopping at the first NUL
// byte (or the full 28 bytes, if the name fills the field exactly).
func entryName(e DirectoryEntry) string {
	n := bytes.IndexByte(e.Filename[:], 0)
	if n < 0 {
		n = len(e.Filename)
	}
	return string(e.Filename[:n])
}

// entryNameEquals compares e's stored filename against name as whole
// strings, not as NUL-terminated C strings. Comparing the decoded name
// directly (rather than truncating name itself at its own first NUL, which
// it never has, or comparing raw byte arrays) is what keeps a query like
// "abcdefghijklmnopqrstuvwxyz12" from spuriously matching an entry whose
// 28-byte field happens to share the same leading bytes.
func entryNameEquals(e DirectoryEntry, name string) bool {
	if len(name) >= MaxFilename {
		return false
	}
	return entryName(e) == name
}

// locateFile resolves path to an inode index, starting from the root if
// path begins with "/" and from the current directory otherwise.
func (fs *FileSystem) locateFile(path string) (uint32, error) {
	current := fs.currentInodeIndex
	if strings.HasPrefix(path, "/") {
		current = 0
	}

	for _, part := range splitPath(path) {
		inode, err := fs.getInode(current)
		if err != nil {
			return 0, err
		}
		data, err := fs.readInode(current, inode)
		if err != nil {
			return 0, err
		}
		entries, err := unpackEntries(data)
		if err != nil {
			return 0, err
		}

		found := false
		for _, e := range entries {
			if entryNameEquals(e, part) {
				current = e.Inode
				found = true
				break
			}
		}
		if !found {
			return 0, bfserrors.ErrDoesNotExist.WithMessage(part)
		}
	}
	return current, nil
}

// locateParent resolves the directory that would contain path, without
// requiring path's final component to exist yet.
func (fs *FileSystem) locateParent(path string) (uint32, error) {
	trimmed := strings.TrimSuffix(path, "/")
	lastSlash := strings.LastIndex(trimmed, "/")

	var parentIndex uint32
	if lastSlash < 0 {
		parentIndex = fs.currentInodeIndex
	} else {
		var err error
		parentIndex, err = fs.locateFile(trimmed[:lastSlash+1])
		if err != nil {
			return 0, err
		}
	}

	inode, err := fs.getInode(parentIndex)
	if err != nil {
		return 0, err
	}
	if !inode.Mode.IsDir() {
		return 0, bfserrors.ErrNotADirectory.WithMessage(path)
	}
	return parentIndex, nil
}

// initDirectory writes the "." and ".." entries that make index a valid,
// empty directory whose parent is parent (the root directory is its own
// parent).
func (fs *FileSystem) initDirectory(index, parent uint32) error {
	var dot, dotdot DirectoryEntry
	dot.Inode = index
	copy(dot.Filename[:], ".")
	dotdot.Inode = parent
	copy(dotdot.Filename[:], "..")

	data, err := packEntries([]DirectoryEntry{dot, dotdot})
	if err != nil {
		return err
	}
	inode, err := fs.getInode(index)
	if err != nil {
		return err
	}
	return fs.writeInode(index, inode, data)
}

// CreateFile creates a new, empty file or (if path ends in "/") directory at
// path. The parent directory must already exist.
func (fs *FileSystem) CreateFile(path string) error {
	if path == "/" {
		return bfserrors.ErrAlreadyExists.WithMessage("/")
	}

	isDir := strings.HasSuffix(path, "/")
	parts := splitPath(path)
	if len(parts) == 0 {
		return bfserrors.ErrIllegalFilename
	}
	filename := parts[len(parts)-1]
	if len(filename) == 0 || len(filename) >= MaxFilename {
		return bfserrors.ErrIllegalFilename
	}

	parentIndex, err := fs.locateParent(path)
	if err != nil {
		return err
	}
	parentInode, err := fs.getInode(parentIndex)
	if err != nil {
		return err
	}
	data, err := fs.readInode(parentIndex, parentInode)
	if err != nil {
		return err
	}
	entries, err := unpackEntries(data)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if entryNameEquals(e, filename) {
			return bfserrors.ErrAlreadyExists.WithMessage(filename)
		}
	}

	mode := defaultFileMode
	if isDir {
		mode = defaultDirMode
	}
	newIndex, err := fs.createInode(mode)
	if err != nil {
		return err
	}
	if isDir {
		if err := fs.initDirectory(newIndex, parentIndex); err != nil {
			return err
		}
	}

	var newEntry DirectoryEntry
	newEntry.Inode = newIndex
	copy(newEntry.Filename[:], filename)
	entries = append(entries, newEntry)

	newData, err := packEntries(entries)
	if err != nil {
		return err
	}
	parentInode, err = fs.getInode(parentIndex)
	if err != nil {
		return err
	}
	return fs.writeInode(parentIndex, parentInode, newData)
}

// RemoveFile unlinks the file or directory at path. Removing a directory
// recursively removes everything beneath it. Only the owner may remove a
// file, and the root directory can never be removed.
func (fs *FileSystem) RemoveFile(path string) error {
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
		return bfserrors.ErrPermissionDenied.WithMessage("only the owner may remove")
	}

	parentIndex, err := fs.locateParent(path)
	if err != nil {
		return err
	}
	parentInode, err := fs.getInode(parentIndex)
	if err != nil {
		return err
	}
	parentData, err := fs.readInode(parentIndex, parentInode)
	if err != nil {
		return err
	}
	entries, err := unpackEntries(parentData)
	if err != nil {
		return err
	}

	removeAt := -1
	for i, e := range entries {
		if e.Inode == index {
			removeAt = i
			break
		}
	}
	if removeAt >= 0 {
		entries = append(entries[:removeAt], entries[removeAt+1:]...)
	}
	newData, err := packEntries(entries)
	if err != nil {
		return err
	}
	if err := fs.writeInode(parentIndex, parentInode, newData); err != nil {
		return err
	}

	toRemove := []uint32{index}
	if inode.Mode.IsDir() {
		stack := []uint32{index}
		for len(stack) > 0 {
			n := len(stack) - 1
			dirIndex := stack[n]
			stack = stack[:n]

			dirInode, err := fs.getInode(dirIndex)
			if err != nil {
				return err
			}
			data, err := fs.readInode(dirIndex, dirInode)
			if err != nil {
				return err
			}
			childEntries, err := unpackEntries(data)
			if err != nil {
				return err
			}
			for _, e := range childEntries {
				name := entryName(e)
				if name == "." || name == ".." {
					continue
				}
				childInode, err := fs.getInode(e.Inode)
				if err != nil {
					return err
				}
				if childInode.Mode.IsDir() {
					stack = append(stack, e.Inode)
				}
				toRemove = append(toRemove, e.Inode)
			}
		}
	}

	for _, i := range toRemove {
		if err := fs.removeInode(i); err != nil {
			return err
		}
	}
	return nil
}

// ListDirectory returns the entries of the directory at path, or of the
// current directory when path is empty.
func (fs *FileSystem) ListDirectory(path string) ([]DirectoryListing, error) {
	index := fs.currentInodeIndex
	if path != "" {
		var err error
		index, err = fs.locateFile(path)
		if err != nil {
			return nil, err
		}
	}

	inode, err := fs.getInode(index)
	if err != nil {
		return nil, err
	}
	if !inode.Mode.IsDir() {
		return nil, bfserrors.ErrNotADirectory.WithMessage(path)
	}
	data, err := fs.readInode(index, inode)
	if err != nil {
		return nil, err
	}
	entries, err := unpackEntries(data)
	if err != nil {
		return nil, err
	}

	out := make([]DirectoryListing, 0, len(entries))
	for _, e := range entries {
		childInode, err := fs.getInode(e.Inode)
		if err != nil {
			return out, err
		}
		out = append(out, DirectoryListing{Name: entryName(e), Stat: childInode.stat()})
	}
	return out, nil
}

// ChangeDirectory sets the current directory to path.
func (fs *FileSystem) ChangeDirectory(path string) error {
	index, err := fs.locateFile(path)
	if err != nil {
		return err
	}
	inode, err := fs.getInode(index)
	if err != nil {
		return err
	}
	if !inode.Mode.IsDir() {
		return bfserrors.ErrNotADirectory.WithMessage(path)
	}
	fs.currentInodeIndex = index
	return nil
}
