package volbase

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"syscall"

	. "github.com/stevegt/goadapt"
	"github.com/zeebo/blake3"
)

// Hash is the 32-byte digest that identifies an object.  These are
// not the bytes the digest was computed from; those cannot be
// recovered from the hash alone.  Hashes are value types and compare
// with ==.
type Hash [32]byte

// String renders the hash in its canonical text form: exactly 64
// lowercase hexadecimal digits, most significant byte first.  This
// form doubles as the object's filename inside a volume.
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:])
}

// InvalidHashError is returned when a string does not parse as the
// canonical text form of a hash.
type InvalidHashError struct {
	Raw string
}

func (e *InvalidHashError) Error() string {
	return fmt.Sprintf("invalid hash: %q", e.Raw)
}

// ParseHash parses the canonical text form.  The input must be
// exactly 64 characters, all in [0-9a-f]; uppercase digits, stray
// characters, and any other length are rejected rather than
// normalized.
func ParseHash(s string) (hash Hash, err error) {
	if len(s) != 64 {
		return Hash{}, &InvalidHashError{Raw: s}
	}
	for i := 0; i < 32; i++ {
		hi, ok1 := hexval(s[2*i])
		lo, ok2 := hexval(s[2*i+1])
		if !ok1 || !ok2 {
			return Hash{}, &InvalidHashError{Raw: s}
		}
		hash[i] = hi<<4 | lo
	}
	return
}

func hexval(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// newDigest returns a fresh digest state for algo.  Every digest here
// must produce exactly 32 bytes; volume logic never cares which
// algorithm is behind the name.
func newDigest(algo string) (digest hash.Hash, err error) {
	switch algo {
	case "sha256":
		return sha256.New(), nil
	case "blake3":
		return blake3.New(), nil
	default:
		err := fmt.Errorf("%w: %s", syscall.ENOSYS, algo)
		return nil, err
	}
}

// HashReader feeds every byte of rd, in order, through the named
// digest and returns the resulting hash.
func HashReader(algo string, rd io.Reader) (hash Hash, err error) {
	defer Return(&err)
	digest, err := newDigest(algo)
	Ck(err)
	_, err = io.Copy(digest, rd)
	Ck(err)
	sum := digest.Sum(nil)
	Assert(len(sum) == len(hash), "digest %s returned %d bytes", algo, len(sum))
	copy(hash[:], sum)
	return
}

// HashBytes hashes an in-memory byte slice.
func HashBytes(algo string, buf []byte) (Hash, error) {
	return HashReader(algo, bytes.NewReader(buf))
}
