package volbase

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
	"github.com/t7a/volbase/fsutil"
	"golang.org/x/sys/unix"
)

// NotRegularFileError is returned when an insertion source turns out
// to be a directory, fifo, socket, device, or symlink.  The volume is
// left untouched.
type NotRegularFileError struct {
	Name string
	Mode os.FileMode
}

func (e *NotRegularFileError) Error() string {
	return fmt.Sprintf("not a regular file: %s (%s)", e.Name, e.Mode)
}

// InsertFile inserts an object into the volume by hard linking the
// given open file into the objects dir.  This is the canonical
// insertion path; the other insert methods funnel into it.
//
// The file is read from the beginning to compute its hash (the
// caller's file offset is irrelevant), then linked at objects/<hash>
// via the descriptor itself, so it works even for files with no
// stable path: O_TMPFILE files, descriptors received over a unix
// socket, and so on.  If an equal-content object is already stored,
// the existing file is retained and the given one is simply not
// linked; that is success, not failure.  Either way the caller's file
// is made read-only afterwards to discourage tampering.
//
// Preconditions: the file must be a regular file, owned and readable
// by the caller.  The file must not be modified once InsertFile
// starts, including through other hard links; that would corrupt the
// volume.
func (v *Volume) InsertFile(fh *os.File) (hash Hash, err error) {
	defer Return(&err)

	info, err := fh.Stat()
	Ck(err)
	if !info.Mode().IsRegular() {
		return Hash{}, &NotRegularFileError{Name: fh.Name(), Mode: info.Mode()}
	}

	_, err = fh.Seek(0, io.SeekStart)
	Ck(err)
	hash, err = HashReader(v.algo, fh)
	Ck(err)

	// linkat needs a path-shaped reference to the descriptor.
	// AT_EMPTY_PATH would need CAP_DAC_READ_SEARCH, but the
	// /proc/self/fd trick from the linkat(2) man page does not.
	oldpath := fmt.Sprintf("/proc/self/fd/%d", fh.Fd())
	newpath := filepath.Join(objectsDir, hash.String())
	err = fsutil.LinkAt(nil, oldpath, v.dir, newpath, unix.AT_SYMLINK_FOLLOW)
	switch {
	case err == nil:
		log.Debugf("inserted %s", hash)
	case os.IsExist(err):
		// equal content is already stored; the existing object wins
		log.Debugf("already have %s", hash)
	default:
		return Hash{}, err
	}

	// tamper deterrence, not tamper proofing: the owner can chmod it
	// right back
	err = fh.Chmod(0400)
	Ck(err)

	return
}

// InsertReader drains rd into a temporary file and proceeds as in
// InsertFile.  The temp file is created with O_TMPFILE inside the
// volume's own root, which guarantees it lives on the same filesystem
// as the objects dir (a hard link cannot cross filesystems) and that
// it never has a path for anyone to race against.
func (v *Volume) InsertReader(rd io.Reader) (hash Hash, err error) {
	defer Return(&err)

	flags := unix.O_RDWR | unix.O_TMPFILE | unix.O_CLOEXEC
	tmp, err := fsutil.OpenAt(v.dir, ".", flags, 0600)
	Ck(err)
	defer tmp.Close()

	_, err = io.Copy(tmp, rd)
	Ck(err)

	return v.InsertFile(tmp)
}

// InsertPath opens the file at path and proceeds as in InsertFile.
//
// The open refuses to follow a symlink (O_NOFOLLOW), refuses to
// acquire a controlling terminal (O_NOCTTY), won't block waiting for
// a fifo writer (O_NONBLOCK), and won't leak across exec (O_CLOEXEC).
// A fifo therefore opens immediately and is then rejected by the
// regular-file check instead of hanging; symlinks and other exotic
// types fail with no volume mutation.
func (v *Volume) InsertPath(path string) (hash Hash, err error) {
	defer Return(&err)

	flags := unix.O_RDONLY | unix.O_NOCTTY | unix.O_NOFOLLOW | unix.O_CLOEXEC | unix.O_NONBLOCK
	fh, err := fsutil.OpenAt(nil, path, flags, 0)
	if err != nil {
		return Hash{}, err
	}
	defer fh.Close()

	// O_NONBLOCK was only needed at open time; reads should block
	// normally
	fl, err := fsutil.GetFl(fh)
	Ck(err)
	err = fsutil.SetFl(fh, fl&^unix.O_NONBLOCK)
	Ck(err)

	return v.InsertFile(fh)
}
