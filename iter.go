package volbase

import (
	"github.com/t7a/volbase/fsutil"
	"golang.org/x/sys/unix"
)

// HashIter iterates over the hashes of the objects in one volume, in
// bufio.Scanner style:
//
//	it, err := v.All()
//	...
//	defer it.Close()
//	for it.Next() {
//		use(it.Hash())
//	}
//	err = it.Err()
//
// The iteration is single-pass, finite, and not restartable.  Entries
// whose names do not parse as a hash (".", "..", and any foreign
// file) are skipped.  An iteration error stops Next and is reported
// by Err; reaching the end of the directory is not an error.
type HashIter struct {
	dir  *fsutil.Dir
	hash Hash
	err  error
	done bool
}

// All returns an iterator over the objects in the volume.  It does
// not open the objects, only their names.
func (v *Volume) All() (it *HashIter, err error) {
	flags := unix.O_RDONLY | unix.O_DIRECTORY | unix.O_CLOEXEC
	objfh, err := fsutil.OpenAt(v.dir, objectsDir, flags, 0)
	if err != nil {
		return nil, err
	}
	return &HashIter{dir: fsutil.OpenDir(objfh)}, nil
}

// Next advances to the next object hash.  It returns false at the end
// of the volume or on error; check Err to tell which.
func (it *HashIter) Next() bool {
	if it.done {
		return false
	}
	for {
		ent, err := it.dir.Read()
		if err != nil {
			it.err = err
			it.done = true
			return false
		}
		if ent == nil {
			it.done = true
			return false
		}
		hash, err := ParseHash(ent.Name)
		if err != nil {
			// not an object
			continue
		}
		it.hash = hash
		return true
	}
}

// Hash returns the hash most recently advanced to by Next.
func (it *HashIter) Hash() Hash {
	return it.hash
}

// Err returns the first error encountered during iteration, if any.
func (it *HashIter) Err() error {
	return it.err
}

// Close releases the iterator's directory stream.
func (it *HashIter) Close() error {
	return it.dir.Close()
}
