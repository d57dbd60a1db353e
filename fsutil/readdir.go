package fsutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// FileType classifies a directory entry.  It is decoded from the
// d_type byte that getdents64(2) reports; filesystems that do not
// fill d_type in yield TypeUnknown and callers must stat if they care.
type FileType uint8

const (
	TypeUnknown FileType = iota
	TypeFifo
	TypeChar
	TypeDir
	TypeBlock
	TypeRegular
	TypeSymlink
	TypeSocket
)

func typeOf(dtype uint8) FileType {
	switch dtype {
	case unix.DT_FIFO:
		return TypeFifo
	case unix.DT_CHR:
		return TypeChar
	case unix.DT_DIR:
		return TypeDir
	case unix.DT_BLK:
		return TypeBlock
	case unix.DT_REG:
		return TypeRegular
	case unix.DT_LNK:
		return TypeSymlink
	case unix.DT_SOCK:
		return TypeSocket
	}
	return TypeUnknown
}

// Dirent is one directory entry.  Name is an owned copy of the entry
// name; nothing here aliases the kernel buffer the entry was parsed
// from.  The "." and ".." entries are yielded like any other.
type Dirent struct {
	Name string
	Type FileType
}

// Dir is an open directory stream.  It is a single-pass, finite,
// non-restartable iterator over the entries of one directory.
type Dir struct {
	fh  *os.File
	buf []byte
	pos int
	end int
}

// linux_dirent64 fields are native-endian, not little-endian; s390x
// and big-endian ppc64 are still Linux.
var nativeEndian = func() binary.ByteOrder {
	x := uint16(1)
	if *(*byte)(unsafe.Pointer(&x)) == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}()

// OpenDir wraps an open directory handle in a Dir stream, taking
// ownership of the handle.  The handle must have been opened with
// O_DIRECTORY (for example via OpenAt).
func OpenDir(fh *os.File) *Dir {
	return &Dir{fh: fh, buf: make([]byte, 8192)}
}

// Read returns the next directory entry, or nil at the end of the
// directory.  End-of-directory and failure are distinct: a nil entry
// with a nil error always means the stream is exhausted.
func (d *Dir) Read() (ent *Dirent, err error) {
	for {
		if d.pos >= d.end {
			n, err := unix.ReadDirent(int(d.fh.Fd()), d.buf)
			if err != nil {
				return nil, &os.PathError{Op: "readdirent", Path: d.fh.Name(), Err: err}
			}
			if n == 0 {
				return nil, nil
			}
			d.pos, d.end = 0, n
		}

		// Each record is a struct linux_dirent64: ino (8 bytes),
		// offset (8), record length (2), type (1), then the
		// NUL-terminated name.
		rec := d.buf[d.pos:d.end]
		reclen := int(nativeEndian.Uint16(rec[16:18]))
		dtype := rec[18]
		name := rec[19:reclen]
		d.pos += reclen

		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		if len(name) == 0 {
			// deleted-but-not-yet-reaped slot
			continue
		}
		return &Dirent{Name: string(name), Type: typeOf(dtype)}, nil
	}
}

// Close releases the directory handle.  Read must not be called
// afterwards.
func (d *Dir) Close() error {
	return d.fh.Close()
}
