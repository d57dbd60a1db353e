// Package fsutil provides file system operations that are not
// available through the standard os package: directory-relative
// open/link/rename, raw directory iteration, and fcntl flag access.
//
// The *at syscall family operates relative to an already-open
// directory descriptor instead of a path rooted at the process
// working directory, which is what makes race-free content stores
// possible.  All functions here take directory handles as *os.File;
// passing nil means "relative to the current working directory"
// (AT_FDCWD), the same escape hatch the syscalls themselves provide.
//
// Linux only.
package fsutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// at returns the raw descriptor for a directory handle, or AT_FDCWD
// if the handle is nil.
func at(dir *os.File) int {
	if dir == nil {
		return unix.AT_FDCWD
	}
	return int(dir.Fd())
}
