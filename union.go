package volbase

// UnionGet retrieves the object with the given hash from the first
// volume that has it, querying strictly in the given order.  It
// returns (nil, nil) only if every volume reports absence.  A hard
// error from any volume before a hit short-circuits the search; a
// later volume never papers over an earlier failure.
func UnionGet(volumes []*Volume, hash Hash) (obj *Object, err error) {
	for _, v := range volumes {
		obj, err = v.Get(hash)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			return obj, nil
		}
	}
	return nil, nil
}

// UnionIter iterates over the object hashes of several volumes in
// order, with the same Next/Hash/Err/Close surface as HashIter.
// Hashes present in more than one volume are yielded once per
// volume; deduplication is the caller's business.
type UnionIter struct {
	volumes []*Volume
	cur     *HashIter
	hash    Hash
	err     error
	done    bool
}

// UnionAll returns an iterator over the objects of all the given
// volumes, concatenated in order.  Each volume's enumeration starts
// lazily when the iteration reaches it, so an error in a later volume
// surfaces only after everything before it has been yielded.
func UnionAll(volumes []*Volume) *UnionIter {
	// copy so a caller mutating its slice can't skew the iteration
	vs := make([]*Volume, len(volumes))
	copy(vs, volumes)
	return &UnionIter{volumes: vs}
}

// Next advances to the next object hash across all volumes.
func (it *UnionIter) Next() bool {
	if it.done {
		return false
	}
	for {
		if it.cur == nil {
			if len(it.volumes) == 0 {
				it.done = true
				return false
			}
			cur, err := it.volumes[0].All()
			it.volumes = it.volumes[1:]
			if err != nil {
				it.err = err
				it.done = true
				return false
			}
			it.cur = cur
		}
		if it.cur.Next() {
			it.hash = it.cur.Hash()
			return true
		}
		err := it.cur.Err()
		closeErr := it.cur.Close()
		it.cur = nil
		if err == nil {
			err = closeErr
		}
		if err != nil {
			it.err = err
			it.done = true
			return false
		}
	}
}

// Hash returns the hash most recently advanced to by Next.
func (it *UnionIter) Hash() Hash {
	return it.hash
}

// Err returns the first error encountered during iteration, if any.
func (it *UnionIter) Err() error {
	return it.err
}

// Close releases the current volume's directory stream, if any.
func (it *UnionIter) Close() error {
	if it.cur == nil {
		return nil
	}
	cur := it.cur
	it.cur = nil
	it.done = true
	return cur.Close()
}
