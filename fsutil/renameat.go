package fsutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// RenameAt performs the renameat(2) system call, atomically moving
// the entry oldname (relative to olddir) to newname (relative to
// newdir).  Platform rename semantics apply: an existing destination
// of a compatible type is silently replaced, so callers that must not
// overwrite have to check for existence themselves first.
func RenameAt(olddir *os.File, oldname string, newdir *os.File, newname string) (err error) {
	err = unix.Renameat(at(olddir), oldname, at(newdir), newname)
	if err != nil {
		return &os.LinkError{Op: "renameat", Old: oldname, New: newname, Err: err}
	}
	return nil
}
