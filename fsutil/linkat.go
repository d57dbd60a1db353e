package fsutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// LinkAt performs the linkat(2) system call, creating a second
// directory entry for the file at oldname (relative to olddir) at
// newname (relative to newdir).  Both directory handles may be nil,
// meaning AT_FDCWD.  Pass unix.AT_SYMLINK_FOLLOW in flags to resolve
// a symlink on the source side; see linkat(2) for the /proc/self/fd
// trick that turns an open descriptor into a linkable path.
//
// If newname already exists the error satisfies os.IsExist.
func LinkAt(olddir *os.File, oldname string, newdir *os.File, newname string, flags int) (err error) {
	err = unix.Linkat(at(olddir), oldname, at(newdir), newname, flags)
	if err != nil {
		return &os.LinkError{Op: "linkat", Old: oldname, New: newname, Err: err}
	}
	return nil
}
