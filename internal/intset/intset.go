// Package intset implements IS, the compact sorted integer-array store
// spec §6.2 treats as an external collaborator ("contract only; not
// specified here"). This is a from-scratch Go implementation of that
// contract: a sorted, deduplicated slice of signed 64-bit integers with
// binary-search membership, insertion, removal, uniform random pick, and
// index-based get.
package intset

import (
	"math/rand"
	"sort"
)

// Set is a sorted, deduplicated array of signed 64-bit integers.
// The zero value is an empty, usable set.
type Set struct {
	vals []int64
}

// New returns an empty IS, optionally presized to hint at capacity.
func New(capacityHint int) *Set {
	return &Set{vals: make([]int64, 0, capacityHint)}
}

// search returns the index where v is, or where it would be inserted.
func (s *Set) search(v int64) (idx int, found bool) {
	idx = sort.Search(len(s.vals), func(i int) bool { return s.vals[i] >= v })
	found = idx < len(s.vals) && s.vals[idx] == v
	return idx, found
}

// Find reports whether v is a member.
func (s *Set) Find(v int64) bool {
	_, found := s.search(v)
	return found
}

// Add inserts v, keeping the array sorted and deduplicated. Reports whether
// v was newly inserted.
func (s *Set) Add(v int64) bool {
	idx, found := s.search(v)
	if found {
		return false
	}
	s.vals = append(s.vals, 0)
	copy(s.vals[idx+1:], s.vals[idx:])
	s.vals[idx] = v
	return true
}

// Remove deletes v if present, reporting whether it was removed.
func (s *Set) Remove(v int64) bool {
	idx, found := s.search(v)
	if !found {
		return false
	}
	s.vals = append(s.vals[:idx], s.vals[idx+1:]...)
	return true
}

// Len returns the cardinality.
func (s *Set) Len() int { return len(s.vals) }

// Get returns the value at the given sorted index.
func (s *Set) Get(index int) int64 { return s.vals[index] }

// Random returns a uniformly chosen member. Panics on an empty set, mirroring
// spec §4.1's "undefined on empty" contract for random_one.
func (s *Set) Random() int64 {
	if len(s.vals) == 0 {
		panic("intset: Random called on empty set")
	}
	return s.vals[rand.Intn(len(s.vals))]
}

// Values returns the sorted backing slice. Callers must not mutate it.
func (s *Set) Values() []int64 { return s.vals }

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	cp := make([]int64, len(s.vals))
	copy(cp, s.vals)
	return &Set{vals: cp}
}
