package volbase

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/t7a/volbase/fsutil"
	"golang.org/x/sys/unix"
)

// CorruptVolumeError is returned by Get when the objects dir holds an
// entry under an object's name that is not a regular file.  Volbase
// never wrote such a thing, so somebody else did; the error is
// reported rather than repaired.
type CorruptVolumeError struct {
	Hash Hash
	Mode os.FileMode
}

func (e *CorruptVolumeError) Error() string {
	return fmt.Sprintf("corrupt volume: object %s is not a regular file (%s)", e.Hash, e.Mode)
}

// Object is a read-only handle to a stored object's bytes.  It
// supports reading and seeking but deliberately exposes no way to
// write; objects are immutable.
type Object struct {
	fh   *os.File
	size int64
}

// Read supports the io.Reader interface.
func (obj *Object) Read(buf []byte) (n int, err error) {
	return obj.fh.Read(buf)
}

// ReadAt supports the io.ReaderAt interface.
func (obj *Object) ReadAt(buf []byte, off int64) (n int, err error) {
	return obj.fh.ReadAt(buf, off)
}

// Seek supports the io.Seeker interface.
func (obj *Object) Seek(offset int64, whence int) (int64, error) {
	return obj.fh.Seek(offset, whence)
}

// Size returns the object's length in bytes.
func (obj *Object) Size() int64 {
	return obj.size
}

// Close releases the object's descriptor.
func (obj *Object) Close() error {
	return obj.fh.Close()
}

// Get retrieves the object with the given hash.  Absence is not an
// error: a missing object returns (nil, nil).  The open refuses to
// follow symlinks or acquire a controlling terminal, and the entry is
// verified to be a regular file before it is handed out.
func (v *Volume) Get(hash Hash) (obj *Object, err error) {
	flags := unix.O_RDONLY | unix.O_CLOEXEC | unix.O_NOCTTY | unix.O_NOFOLLOW
	fh, err := fsutil.OpenAt(v.dir, filepath.Join(objectsDir, hash.String()), flags, 0)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	info, err := fh.Stat()
	if err != nil {
		fh.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		fh.Close()
		return nil, &CorruptVolumeError{Hash: hash, Mode: info.Mode()}
	}

	return &Object{fh: fh, size: info.Size()}, nil
}
