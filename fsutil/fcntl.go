package fsutil

import (
	"os"

	"golang.org/x/sys/unix"
)

// GetFl performs the fcntl(2) system call with command F_GETFL and
// returns the file status flags of the descriptor.
func GetFl(fh *os.File) (flags int, err error) {
	flags, err = unix.FcntlInt(fh.Fd(), unix.F_GETFL, 0)
	if err != nil {
		return 0, &os.PathError{Op: "fcntl", Path: fh.Name(), Err: err}
	}
	return flags, nil
}

// SetFl performs the fcntl(2) system call with command F_SETFL,
// replacing the file status flags of the descriptor.  The main use is
// clearing O_NONBLOCK after opening a file that might have been a
// fifo.
func SetFl(fh *os.File, flags int) (err error) {
	_, err = unix.FcntlInt(fh.Fd(), unix.F_SETFL, flags)
	if err != nil {
		return &os.PathError{Op: "fcntl", Path: fh.Name(), Err: err}
	}
	return nil
}
