package fsutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// Mknod performs the mknod(2) system call.  Combine a file type such
// as unix.S_IFIFO or unix.S_IFSOCK with permission bits in mode; dev
// is only meaningful for device nodes.  Creating fifos and sockets
// this way needs no special privileges, which makes Mknod handy for
// tests that need exotic file types.
func Mknod(path string, mode uint32, dev int) (err error) {
	err = unix.Mknod(path, mode, dev)
	if err != nil {
		return &os.PathError{Op: "mknod", Path: path, Err: err}
	}
	return nil
}
