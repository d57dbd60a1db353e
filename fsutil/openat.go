package fsutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// OpenAt performs the openat(2) system call, opening name relative to
// the given directory handle.  The returned *os.File owns the new
// descriptor.  Errors are returned as *os.PathError so the usual
// os.IsNotExist and os.IsExist predicates work on them.
func OpenAt(dir *os.File, name string, flags int, mode uint32) (fh *os.File, err error) {
	fd, err := unix.Openat(at(dir), name, flags, mode)
	if err != nil {
		return nil, &os.PathError{Op: "openat", Path: name, Err: err}
	}
	return os.NewFile(uintptr(fd), name), nil
}
