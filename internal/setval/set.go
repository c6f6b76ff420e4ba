// Package setval implements PS, the polymorphic set of spec §4.1: a
// dual-encoding container that owns either an integer-array store (IS) or a
// hash-indexed store (HS), exposing one uniform API and handling the
// monotone INT -> HASH promotion transparently.
package setval

import (
	"github.com/vpol/redis/internal/config"
	"github.com/vpol/redis/internal/hashset"
	"github.com/vpol/redis/internal/intconv"
	"github.com/vpol/redis/internal/intset"
)

// Encoding is the PS's current representation.
type Encoding int

const (
	// EncodingInt is the compact sorted-integer representation.
	EncodingInt Encoding = iota
	// EncodingHash is the hash-indexed representation.
	EncodingHash
)

func (e Encoding) String() string {
	if e == EncodingInt {
		return "int"
	}
	return "hash"
}

// PS is the polymorphic set described by spec §3-§4.1. The zero value is
// not usable; construct with Create.
type PS struct {
	cfg      *config.Config
	encoding Encoding
	is       *intset.Set
	hs       *hashset.Set
}

// Create builds a fresh PS of size 1 holding v. Its initial encoding is INT
// iff v is integer-valued, else HASH (spec §3, Lifecycle).
func Create(cfg *config.Config, v []byte) *PS {
	ps := &PS{cfg: cfg}
	if iv, ok := intconv.ParseCanonical(v); ok {
		ps.encoding = EncodingInt
		ps.is = intset.New(1)
		ps.is.Add(iv)
	} else {
		ps.encoding = EncodingHash
		ps.hs = hashset.New(1)
		ps.hs.Add(string(v))
	}
	return ps
}

// NewEmpty returns a fresh, empty PS starting in INT encoding, so that a
// scratch set built up purely from small integers stays compact (spec
// §4.3, "Union").
func NewEmpty(cfg *config.Config) *PS {
	return &PS{cfg: cfg, encoding: EncodingInt, is: intset.New(0)}
}

// Encoding reports the set's current representation.
func (ps *PS) Encoding() Encoding { return ps.encoding }

// Add inserts v, returning true iff it was newly inserted. May promote the
// set from INT to HASH (spec §4.1, "Add algorithm").
func (ps *PS) Add(v []byte) bool {
	switch ps.encoding {
	case EncodingInt:
		iv, ok := intconv.ParseCanonical(v)
		if !ok {
			// Non-integer-valued insert into an INT set: promote first.
			ps.ConvertToHash()
			return ps.hs.Add(string(v))
		}
		if !ps.is.Add(iv) {
			return false
		}
		if ps.is.Len() > ps.cfg.IntMax {
			ps.ConvertToHash()
		}
		return true
	case EncodingHash:
		return ps.hs.Add(string(v))
	default:
		panic("setval: unknown encoding")
	}
}

// Remove deletes v, returning true iff it was present. Never demotes.
func (ps *PS) Remove(v []byte) bool {
	switch ps.encoding {
	case EncodingInt:
		iv, ok := intconv.ParseCanonical(v)
		if !ok {
			return false
		}
		return ps.is.Remove(iv)
	case EncodingHash:
		removed := ps.hs.Remove(string(v))
		if removed {
			ps.hs.ResizeIfSparse()
		}
		return removed
	default:
		panic("setval: unknown encoding")
	}
}

// Contains reports whether v is a member. On an INT-encoded set, a
// non-integer-valued v returns false without scanning (spec §4.1).
func (ps *PS) Contains(v []byte) bool {
	switch ps.encoding {
	case EncodingInt:
		iv, ok := intconv.ParseCanonical(v)
		if !ok {
			return false
		}
		return ps.is.Find(iv)
	case EncodingHash:
		return ps.hs.Find(string(v))
	default:
		panic("setval: unknown encoding")
	}
}

// Size returns the cardinality.
func (ps *PS) Size() int {
	if ps.encoding == EncodingInt {
		return ps.is.Len()
	}
	return ps.hs.Len()
}

// RandomOne returns one uniformly sampled element (spec §4.1, "Uniform
// random pick"). Undefined (panics) on an empty set; callers must check
// Size() first.
func (ps *PS) RandomOne() []byte {
	if ps.encoding == EncodingInt {
		return intconv.FormatCanonical(ps.is.Random())
	}
	return []byte(ps.hs.RandomKey())
}

// ConvertToHash promotes the set to HASH encoding. Idempotent; never
// reverses (spec §4.1, §3 "Promotion rule").
func (ps *PS) ConvertToHash() {
	if ps.encoding == EncodingHash {
		return
	}
	hs := hashset.New(ps.is.Len())
	for _, v := range ps.is.Values() {
		hs.Add(intconv.FormatCanonicalString(v))
	}
	ps.encoding = EncodingHash
	ps.hs = hs
	ps.is = nil
}

// ContainsInt is a fast-path membership test used by the intersection
// algorithm (spec §4.3, "Fast path") when the caller already holds a
// parsed int64 and wants to avoid re-parsing its byte form.
func (ps *PS) ContainsInt(v int64) bool {
	if ps.encoding == EncodingInt {
		return ps.is.Find(v)
	}
	return ps.hs.Find(intconv.FormatCanonicalString(v))
}

// Config returns the tuning handle the set was built with, so algorithms
// composing multiple PS values (SAE, SE) can build scratch sets that share
// configuration.
func (ps *PS) Config() *config.Config { return ps.cfg }
