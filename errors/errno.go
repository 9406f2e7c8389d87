// Package errors' error codes correspond to the categories in spec §7: device,
// format, allocation, path, permission, and bounds failures.
package errors

import "fmt"

// BFSError is a sentinel error, comparable with ==  and errors.Is.
type BFSError string

const ErrAlreadyMounted = BFSError("disk is already mounted")
const ErrNotMounted = BFSError("BFS is not mounted")
const ErrBadMagic = BFSError("unexpected magic number, format the disk first")
const ErrDiskTooSmall = BFSError("disk is too small for BFS")
const ErrShortIO = BFSError("short read or write on block device")
const ErrInvalidBlockIndex = BFSError("invalid block index")

const ErrNoFreeInode = BFSError("no free inode available")
const ErrNoFreeBlock = BFSError("no free data block available")

const ErrDoesNotExist = BFSError("path does not exist")
const ErrAlreadyExists = BFSError("path already exists")
const ErrIllegalFilename = BFSError("filename is empty or too long")
const ErrNotADirectory = BFSError("path is not a directory")
const ErrIsADirectory = BFSError("path is a directory")
const ErrRootImmutable = BFSError("root directory cannot be removed or modified")

const ErrPermissionDenied = BFSError("permission denied")

const ErrFileTooLarge = BFSError("write exceeds maximum BFS file size")

func (e BFSError) Error() string {
	return string(e)
}

func (e BFSError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.Error(), message),
		originalError: e,
	}
}

func (e BFSError) WrapError(err error) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: err,
	}
}
