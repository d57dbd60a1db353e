/*

Volbase is a content-addressable object store backed by a plain
directory.  Every stored object is an immutable byte sequence named by
the cryptographic hash of its contents; equal content always maps to
the equal name and is stored at most once.

Vocabulary:

- object: immutable byte sequence stored under its content hash
- hash: 32-byte digest of an object's bytes; rendered as 64 lowercase
	hex digits whenever it needs to travel as text
- algo: name (string) describing the digest algorithm; fixed per
	volume at creation
- volume: a directory holding objects, with atomic dedup-safe
	insertion; backed by one open directory descriptor, so it keeps
	working even if the directory is renamed underneath it
- objects dir: the single reserved subdirectory of a volume root
	where object files live, each named by its hex hash and containing
	exactly the object's bytes, no header, no length prefix
- union: read-only aggregation over an ordered list of volumes,
	queried in priority order

Insertion hinges on one syscall being atomic: linkat(2) creating the
objects/<hash> entry.  The file is written (or supplied by the caller)
first, hashed, and only then linked into place, so readers never see a
partial object and at most one concurrent inserter wins for a given
hash; the losers observe "already exists" and treat it as success.
Objects are chmodded read-only after insertion as a tamper deterrent,
not as a security boundary.

Volbase is Linux-only: it relies on O_TMPFILE, /proc/self/fd, and
getdents64.

*/

package volbase
