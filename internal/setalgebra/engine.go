// Package setalgebra implements SAE, the multi-set algebra engine of spec
// §4.3: union, intersection, and difference over N input sets, picking the
// right algorithm for difference based on input cardinalities.
//
// A nil entry in an inputs slice represents a name that resolved to nothing
// (spec §4.3: "a name that resolves to nothing is treated as the empty
// set"). Every function here returns a freshly materialized *setval.PS;
// callers decide whether to stream its members (reply mode) or bind it under
// a destination name (store mode, spec §4.3 "Store-mode semantics").
package setalgebra

import (
	"sort"

	"github.com/vpol/redis/internal/config"
	"github.com/vpol/redis/internal/intconv"
	"github.com/vpol/redis/internal/setval"
)

func addElem(dst *setval.PS, e setval.Elem) {
	if e.IsInt {
		dst.Add(intconv.FormatCanonical(e.Int))
	} else {
		dst.Add(e.Bytes)
	}
}

func removeElem(dst *setval.PS, e setval.Elem) {
	if e.IsInt {
		dst.Remove(intconv.FormatCanonical(e.Int))
	} else {
		dst.Remove(e.Bytes)
	}
}

func containsElem(s *setval.PS, e setval.Elem) bool {
	if e.IsInt {
		return s.ContainsInt(e.Int)
	}
	return s.Contains(e.Bytes)
}

// Union inserts every element of every input into a scratch result set
// starting empty with INT encoding (spec §4.3, "Union").
func Union(cfg *config.Config, inputs []*setval.PS) *setval.PS {
	result := setval.NewEmpty(cfg)
	for _, in := range inputs {
		if in == nil {
			continue
		}
		it := in.Iter()
		for {
			e, ok := it.Next()
			if !ok {
				break
			}
			addElem(result, e)
		}
	}
	return result
}

// Intersection implements spec §4.3's intersection algorithm: sort inputs
// ascending by cardinality, iterate the smallest, test every candidate
// against the rest, short-circuiting on the first miss. Any empty or
// missing input makes the whole result empty.
func Intersection(cfg *config.Config, inputs []*setval.PS) *setval.PS {
	result := setval.NewEmpty(cfg)
	if len(inputs) == 0 {
		return result
	}
	for _, in := range inputs {
		if in == nil || in.Size() == 0 {
			return result
		}
	}

	ordered := make([]*setval.PS, len(inputs))
	copy(ordered, inputs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Size() < ordered[j].Size()
	})

	smallest := ordered[0]
	rest := ordered[1:]

	it := smallest.Iter()
candidate:
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		for _, other := range rest {
			if other == smallest {
				// Duplicate input: the same underlying PS appearing twice
				// in K. Skip the self-test (spec §4.3, note 5).
				continue
			}
			if !containsElem(other, e) {
				continue candidate
			}
		}
		addElem(result, e)
	}
	return result
}

// Difference computes K[0] \ (K[1] ∪ K[2] ∪ ...), choosing between the
// per-element-probe algorithm and the accumulate-then-subtract algorithm by
// comparing their cost models (spec §4.3, "Difference").
func Difference(cfg *config.Config, inputs []*setval.PS) *setval.PS {
	result := setval.NewEmpty(cfg)
	if len(inputs) == 0 {
		return result
	}
	a := inputs[0]
	if a == nil {
		return result
	}
	subtrahends := inputs[1:]

	var n, w2 int64
	for _, s := range subtrahends {
		if s == nil {
			continue
		}
		n++
		w2 += int64(s.Size())
	}
	// Algorithm 1 gets a 0.5x constant-factor credit because hits
	// short-circuit (spec §4.3).
	w1 := (int64(a.Size()) * n) / 2

	if w1 <= w2 {
		differenceAlgo1(result, a, subtrahends)
	} else {
		differenceAlgo2(result, a, subtrahends)
	}
	return result
}

// differenceAlgo1 is the per-element probe: iterate A, test membership in
// each subtrahend in order, short-circuit on first hit. Subtrahends are
// sorted by decreasing cardinality first so common elements are eliminated
// sooner (spec §4.3).
func differenceAlgo1(result, a *setval.PS, subtrahends []*setval.PS) {
	ordered := make([]*setval.PS, len(subtrahends))
	copy(ordered, subtrahends)
	sort.SliceStable(ordered, func(i, j int) bool {
		var si, sj int
		if ordered[i] != nil {
			si = ordered[i].Size()
		}
		if ordered[j] != nil {
			sj = ordered[j].Size()
		}
		return si > sj
	})

	it := a.Iter()
candidate:
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		for _, s := range ordered {
			if s == nil {
				continue
			}
			if containsElem(s, e) {
				continue candidate
			}
		}
		addElem(result, e)
	}
}

// differenceAlgo2 accumulates all of A into scratch, then removes each
// subtrahend's elements, exiting early once scratch is empty (spec §4.3).
func differenceAlgo2(result, a *setval.PS, subtrahends []*setval.PS) {
	it := a.Iter()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		addElem(result, e)
	}

	for _, s := range subtrahends {
		if s == nil {
			continue
		}
		if result.Size() == 0 {
			break
		}
		it := s.Iter()
		for {
			e, ok := it.Next()
			if !ok {
				break
			}
			removeElem(result, e)
		}
	}
}
