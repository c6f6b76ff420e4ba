package setval

import "github.com/vpol/redis/internal/intconv"

// Elem is a single encoding-tagged element yielded by the borrowing
// iterator (spec §4.2): either an integer or a byte-string view.
type Elem struct {
	IsInt bool
	Int   int64
	Bytes []byte
}

// Iterator is the uniform iterator (UI) of spec §4.2: a finite, single-pass
// forward traversal that is stable for its own lifetime as long as the
// underlying PS is not mutated. Mutating ps while an Iterator over it is
// live is a contract violation (spec §5) the caller must not commit.
type Iterator struct {
	ps     *PS
	intIdx int

	hashKeys []string
	hashIdx  int
}

// Iter starts a borrowing iterator over ps. For HASH-encoded sets this
// snapshots the current key order once, up front, so iteration stays stable
// for the iterator's lifetime per spec §4.2 even though Go map iteration
// order is randomized per range.
func (ps *PS) Iter() *Iterator {
	it := &Iterator{ps: ps}
	if ps.encoding == EncodingHash {
		it.hashKeys = make([]string, 0, ps.hs.Len())
		ps.hs.Iter(func(k string) { it.hashKeys = append(it.hashKeys, k) })
	}
	return it
}

// Next yields the next element, or reports exhaustion.
func (it *Iterator) Next() (Elem, bool) {
	if it.ps.encoding == EncodingInt {
		if it.intIdx >= it.ps.is.Len() {
			return Elem{}, false
		}
		v := it.ps.is.Get(it.intIdx)
		it.intIdx++
		return Elem{IsInt: true, Int: v}, true
	}
	if it.hashIdx >= len(it.hashKeys) {
		return Elem{}, false
	}
	k := it.hashKeys[it.hashIdx]
	it.hashIdx++
	return Elem{Bytes: []byte(k)}, true
}

// MaterializingIterator wraps a borrowing Iterator and converts every
// element to an owned byte string, materializing integers via their
// canonical decimal form (spec §4.2, "materializing iterator").
type MaterializingIterator struct {
	it *Iterator
}

// MaterializingIter starts a materializing iterator over ps.
func (ps *PS) MaterializingIter() *MaterializingIterator {
	return &MaterializingIterator{it: ps.Iter()}
}

// Next returns the next owned element, or reports exhaustion.
func (mi *MaterializingIterator) Next() ([]byte, bool) {
	e, ok := mi.it.Next()
	if !ok {
		return nil, false
	}
	if e.IsInt {
		return intconv.FormatCanonical(e.Int), true
	}
	return e.Bytes, true
}

// Snapshot is a plain-data view of a PS's current contents, used for debug
// dumping where a live iterator isn't appropriate.
type Snapshot struct {
	Encoding Encoding
	Size     int
	Values   [][]byte
}

// Snapshot materializes ps's current state.
func (ps *PS) Snapshot() Snapshot {
	s := Snapshot{Encoding: ps.encoding, Size: ps.Size()}
	mi := ps.MaterializingIter()
	for {
		v, ok := mi.Next()
		if !ok {
			break
		}
		s.Values = append(s.Values, v)
	}
	return s
}
