// Package command is the command surface of spec §6: ADD, REMOVE, MOVE,
// ISMEMBER, CARDINALITY, POP, RAND, UNION, INTERSECTION, DIFFERENCE and
// their STORE variants, plus a best-effort SCAN. Each function resolves its
// operands through a keyspace.Keyspace, runs the relevant engine (setval,
// setalgebra, sampling), and reports changes through an events.Sink.
//
// Nothing here is safe for concurrent use on the same names without an
// executor.Executor serializing calls (spec §5) — these functions assume
// they already run on that single cooperative thread.
package command

import (
	"sort"

	"github.com/vpol/redis/internal/config"
	"github.com/vpol/redis/internal/events"
	"github.com/vpol/redis/internal/keyspace"
	"github.com/vpol/redis/internal/sampling"
	"github.com/vpol/redis/internal/setalgebra"
	"github.com/vpol/redis/internal/setval"
)

// Add inserts values into the set bound to name, creating it if absent.
// It returns how many values were new.
func Add(ks *keyspace.Keyspace, cfg *config.Config, sink events.Sink, name string, values [][]byte) (int, error) {
	if len(values) == 0 {
		return 0, ErrSyntax
	}
	ps, err := ks.LookupSet(name)
	if err != nil {
		return 0, err
	}

	added := 0
	if ps == nil {
		ps = setval.Create(cfg, values[0])
		added = 1
		for _, v := range values[1:] {
			if ps.Add(v) {
				added++
			}
		}
		ks.BindSet(name, ps)
	} else {
		for _, v := range values {
			if ps.Add(v) {
				added++
			}
		}
	}

	if added > 0 {
		ks.MarkModified(name)
		sink.Notify(events.KindAdd, name)
	}
	return added, nil
}

// Remove deletes values from the set bound to name, unbinding name
// entirely once it empties (spec invariant: a set is never observable as
// empty). It returns how many values were actually present.
func Remove(ks *keyspace.Keyspace, sink events.Sink, name string, values [][]byte) (int, error) {
	if len(values) == 0 {
		return 0, ErrSyntax
	}
	ps, err := ks.LookupSet(name)
	if err != nil {
		return 0, err
	}
	if ps == nil {
		return 0, nil
	}

	removed := 0
	for _, v := range values {
		if ps.Remove(v) {
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}

	sink.Notify(events.KindRemove, name)
	if ps.Size() == 0 {
		ks.Unbind(name)
		sink.Notify(events.KindDel, name)
	}
	ks.MarkModified(name)
	return removed, nil
}

// Move relocates a single value from src to dst, creating dst if needed and
// unbinding src if it empties. Moving a value onto its own set is a no-op
// that reports whether the value was a member.
func Move(ks *keyspace.Keyspace, cfg *config.Config, sink events.Sink, src, dst string, v []byte) (int, error) {
	srcPS, err := ks.LookupSet(src)
	if err != nil {
		return 0, err
	}
	if srcPS == nil {
		return 0, nil
	}
	if _, err := ks.LookupSet(dst); err != nil {
		return 0, err
	}

	if src == dst {
		if srcPS.Contains(v) {
			return 1, nil
		}
		return 0, nil
	}

	if !srcPS.Remove(v) {
		return 0, nil
	}
	sink.Notify(events.KindRemove, src)
	if srcPS.Size() == 0 {
		ks.Unbind(src)
		sink.Notify(events.KindDel, src)
	}
	ks.MarkModified(src)

	dstPS, err := ks.LookupSet(dst)
	if err != nil {
		return 0, err
	}
	if dstPS == nil {
		dstPS = setval.Create(cfg, v)
		ks.BindSet(dst, dstPS)
	} else {
		dstPS.Add(v)
	}
	sink.Notify(events.KindAdd, dst)
	ks.MarkModified(dst)
	return 1, nil
}

// IsMember reports whether v belongs to the set bound to name.
func IsMember(ks *keyspace.Keyspace, name string, v []byte) (bool, error) {
	ps, err := ks.LookupSet(name)
	if err != nil {
		return false, err
	}
	if ps == nil {
		return false, nil
	}
	return ps.Contains(v), nil
}

// Cardinality reports the size of the set bound to name, or 0 if absent.
func Cardinality(ks *keyspace.Keyspace, name string) (int, error) {
	ps, err := ks.LookupSet(name)
	if err != nil {
		return 0, err
	}
	if ps == nil {
		return 0, nil
	}
	return ps.Size(), nil
}

// Pop removes and returns up to k elements chosen uniformly at random from
// name (spec §4.4, POP-COUNT). hasCount distinguishes POP name (single
// element, k forced to 1) from POP name k.
func Pop(ks *keyspace.Keyspace, cfg *config.Config, sink events.Sink, name string, hasCount bool, k int) ([][]byte, error) {
	if hasCount && k < 0 {
		return nil, ErrRange
	}
	ps, err := ks.LookupSet(name)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		return nil, nil
	}
	if !hasCount {
		k = 1
	}

	var emitted [][]byte
	outcome, err := sampling.PopCount(cfg, ps, k, func(v []byte) {
		emitted = append(emitted, v)
		sink.Propagate(name, v)
	})
	if err != nil {
		return nil, err
	}

	if len(emitted) > 0 {
		sink.Notify(events.KindPop, name)
		ks.MarkModified(name)
	}
	switch {
	case outcome.Emptied:
		ks.Unbind(name)
		sink.Notify(events.KindDel, name)
	case outcome.Replaced != nil:
		ks.Replace(name, outcome.Replaced)
	}
	return emitted, nil
}

// Rand samples up to k elements from name without mutating it (spec §4.4,
// RAND-COUNT). hasCount distinguishes RAND name (single element) from
// RAND name k.
func Rand(ks *keyspace.Keyspace, cfg *config.Config, name string, hasCount bool, k int) ([][]byte, error) {
	ps, err := ks.LookupSet(name)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		return nil, nil
	}
	if !hasCount {
		return [][]byte{ps.RandomOne()}, nil
	}

	var emitted [][]byte
	sampling.RandCount(cfg, ps, k, func(v []byte) { emitted = append(emitted, v) })
	return emitted, nil
}

func resolveInputs(ks *keyspace.Keyspace, names []string) ([]*setval.PS, error) {
	out := make([]*setval.PS, len(names))
	for i, n := range names {
		ps, err := ks.LookupSet(n)
		if err != nil {
			return nil, err
		}
		out[i] = ps
	}
	return out, nil
}

func materialize(ps *setval.PS) [][]byte {
	var out [][]byte
	mi := ps.MaterializingIter()
	for {
		v, ok := mi.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Union returns the members of the union of the sets bound to names.
func Union(ks *keyspace.Keyspace, cfg *config.Config, names []string) ([][]byte, error) {
	inputs, err := resolveInputs(ks, names)
	if err != nil {
		return nil, err
	}
	return materialize(setalgebra.Union(cfg, inputs)), nil
}

// Intersection returns the members of the intersection of the sets bound
// to names.
func Intersection(ks *keyspace.Keyspace, cfg *config.Config, names []string) ([][]byte, error) {
	inputs, err := resolveInputs(ks, names)
	if err != nil {
		return nil, err
	}
	return materialize(setalgebra.Intersection(cfg, inputs)), nil
}

// Difference returns the members of names[0] minus the union of the rest.
func Difference(ks *keyspace.Keyspace, cfg *config.Config, names []string) ([][]byte, error) {
	inputs, err := resolveInputs(ks, names)
	if err != nil {
		return nil, err
	}
	return materialize(setalgebra.Difference(cfg, inputs)), nil
}

// storeResult atomically replaces dst's binding with result (spec §4.3,
// "Store-mode semantics"): an empty result unbinds dst instead of leaving
// an empty set bound.
func storeResult(ks *keyspace.Keyspace, sink events.Sink, kind events.Kind, dst string, result *setval.PS) (int, error) {
	existed := ks.Unbind(dst)
	if result.Size() == 0 {
		if existed {
			sink.Notify(events.KindDel, dst)
		}
		ks.MarkModified(dst)
		return 0, nil
	}
	ks.BindSet(dst, result)
	sink.Notify(kind, dst)
	ks.MarkModified(dst)
	return result.Size(), nil
}

// UnionStore computes the union of the sets bound to names and binds it to
// dst, replacing any prior value there.
func UnionStore(ks *keyspace.Keyspace, cfg *config.Config, sink events.Sink, dst string, names []string) (int, error) {
	inputs, err := resolveInputs(ks, names)
	if err != nil {
		return 0, err
	}
	return storeResult(ks, sink, events.KindUnionStore, dst, setalgebra.Union(cfg, inputs))
}

// InterStore computes the intersection of the sets bound to names and
// binds it to dst, replacing any prior value there.
func InterStore(ks *keyspace.Keyspace, cfg *config.Config, sink events.Sink, dst string, names []string) (int, error) {
	inputs, err := resolveInputs(ks, names)
	if err != nil {
		return 0, err
	}
	return storeResult(ks, sink, events.KindInterStore, dst, setalgebra.Intersection(cfg, inputs))
}

// DiffStore computes names[0] minus the union of the rest and binds the
// result to dst, replacing any prior value there.
func DiffStore(ks *keyspace.Keyspace, cfg *config.Config, sink events.Sink, dst string, names []string) (int, error) {
	inputs, err := resolveInputs(ks, names)
	if err != nil {
		return 0, err
	}
	return storeResult(ks, sink, events.KindDiffStore, dst, setalgebra.Difference(cfg, inputs))
}

// RandStore materializes a unique random sample of k elements from name
// into dst. The original implementation's store variant of this command
// also accepted a negative count meaning "with replacement", but its
// result in that case depended on map iteration order and was never
// well-defined; this surface only implements the unique-sampling case.
func RandStore(ks *keyspace.Keyspace, cfg *config.Config, sink events.Sink, dst, name string, k int) (int, error) {
	if k < 0 {
		return 0, ErrRange
	}
	ps, err := ks.LookupSet(name)
	if err != nil {
		return 0, err
	}

	result := setval.NewEmpty(cfg)
	if ps != nil {
		sampling.RandCount(cfg, ps, k, func(v []byte) { result.Add(v) })
	}
	return storeResult(ks, sink, events.KindRandStore, dst, result)
}

const scanBatchSize = 10

// Scan returns a batch of up to scanBatchSize members of name starting at
// cursor, and the cursor to resume from (0 once exhausted). It is a
// best-effort cursor: a concurrent ADD/REMOVE between calls may cause
// elements to be skipped or repeated, since each call re-materializes the
// set rather than holding a stable snapshot across the whole scan.
func Scan(ks *keyspace.Keyspace, name string, cursor int) (int, [][]byte, error) {
	ps, err := ks.LookupSet(name)
	if err != nil {
		return 0, nil, err
	}
	if ps == nil {
		return 0, nil, nil
	}
	all := materialize(ps)
	sort.Slice(all, func(i, j int) bool { return string(all[i]) < string(all[j]) })

	if cursor < 0 || cursor > len(all) {
		return 0, nil, ErrSyntax
	}
	end := cursor + scanBatchSize
	if end > len(all) {
		end = len(all)
	}
	batch := all[cursor:end]
	next := end
	if next >= len(all) {
		next = 0
	}
	return next, batch, nil
}
