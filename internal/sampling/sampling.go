// Package sampling implements SE, the sampling engine of spec §4.4:
// POP-COUNT (destructive) and RAND-COUNT (non-destructive), each switching
// between two strategies based on the ratio of requested to resident
// elements.
package sampling

import (
	"errors"

	"github.com/vpol/redis/internal/config"
	"github.com/vpol/redis/internal/setval"
)

// ErrRange is returned for a negative POP-COUNT count (spec §7, "Range").
var ErrRange = errors.New("sampling: negative count")

// EmitFunc receives one emitted element per call. Callers use it to stream
// a reply and/or drive the propagation sink (spec §6.2).
type EmitFunc func(elem []byte)

// PopOutcome tells the caller how to update the keyspace binding for S
// after a POP-COUNT call.
type PopOutcome struct {
	// Emptied is true when S must be unbound entirely (k >= |S|).
	Emptied bool
	// Replaced is non-nil when S's binding must be swapped for this new
	// set (Strategy B, "keep survivors").
	Replaced *setval.PS
}

// PopCount destructively samples k elements from s, emitting each one and
// mutating s (or signaling its replacement/removal via the returned
// PopOutcome). k < 0 is a range error; k == 0 is a no-op.
func PopCount(cfg *config.Config, s *setval.PS, k int, emit EmitFunc) (PopOutcome, error) {
	if k < 0 {
		return PopOutcome{}, ErrRange
	}
	if k == 0 {
		return PopOutcome{}, nil
	}

	size := s.Size()
	if k >= size {
		emitAll(s, emit)
		return PopOutcome{Emptied: true}, nil
	}

	remaining := size - k
	if cfg.PopStrategyRatio*remaining > k {
		// Strategy A: pick-and-remove. The remainder is large relative to
		// the pick, so picking k elements directly is cheap.
		for i := 0; i < k; i++ {
			v := s.RandomOne()
			emit(v)
			s.Remove(v)
		}
		return PopOutcome{}, nil
	}

	// Strategy B: keep survivors. Sample the (small) remainder into a new
	// set, swap it in, and emit whatever is left behind in s — exactly the
	// k elements being popped — avoiding the quadratic cost of picking many
	// unique elements from an already-shrunk set.
	survivors := setval.NewEmpty(cfg)
	for i := 0; i < remaining; i++ {
		v := s.RandomOne()
		survivors.Add(v)
		s.Remove(v)
	}
	emitAll(s, emit)
	return PopOutcome{Replaced: survivors}, nil
}

// RandCount non-destructively samples from s. A negative requested count
// means "unique forced false, magnitude is the count" per spec §7.
func RandCount(cfg *config.Config, s *setval.PS, requested int, emit EmitFunc) {
	k := requested
	unique := true
	if requested < 0 {
		k = -requested
		unique = false
	}
	if k == 0 {
		return
	}

	if !unique {
		for i := 0; i < k; i++ {
			emit(s.RandomOne())
		}
		return
	}

	size := s.Size()
	if k >= size {
		emitAll(s, emit)
		return
	}

	if cfg.RandStrategyRatio*k > size {
		randCountDownSample(cfg, s, k, emit)
		return
	}
	randCountUpSample(cfg, s, k, emit)
}

// randCountDownSample is Strategy C: copy everything into scratch, then
// uniformly remove members until exactly k remain.
func randCountDownSample(cfg *config.Config, s *setval.PS, k int, emit EmitFunc) {
	scratch := setval.NewEmpty(cfg)
	emitAll(s, func(v []byte) { scratch.Add(v) })

	for scratch.Size() > k {
		v := scratch.RandomOne()
		scratch.Remove(v)
	}
	emitAll(scratch, emit)
}

// randCountUpSample is Strategy D: repeatedly sample from s into a scratch
// set that tracks inclusion, counting only first insertions until k
// distinct members are collected.
func randCountUpSample(cfg *config.Config, s *setval.PS, k int, emit EmitFunc) {
	scratch := setval.NewEmpty(cfg)
	for scratch.Size() < k {
		scratch.Add(s.RandomOne())
	}
	emitAll(scratch, emit)
}

func emitAll(s *setval.PS, emit EmitFunc) {
	mi := s.MaterializingIter()
	for {
		v, ok := mi.Next()
		if !ok {
			return
		}
		emit(v)
	}
}
