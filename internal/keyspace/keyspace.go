// Package keyspace is the external collaborator of spec §6.2: a name ->
// value map that ADD/REMOVE/MOVE/etc resolve through. Out of scope per
// spec §1 ("the top-level key-space map that binds names to set values");
// this is a minimal concrete implementation of its contract so the rest of
// the engine has somewhere real to bind to.
//
// Values are stored as `any` rather than `*setval.PS` so that LookupSet can
// surface the "wrong kind" error of spec §7 when a name is bound to
// something that isn't a set — the same way a real key-space would hold
// strings, lists, and other types alongside sets.
package keyspace

import (
	"errors"
	"sync"

	"github.com/vpol/redis/internal/setval"
	"go.uber.org/zap"
)

// ErrWrongKind is returned when a name resolves to a value that is not a
// set (spec §7, "Wrong kind").
var ErrWrongKind = errors.New("keyspace: value is not a set")

// Keyspace is a concrete, in-process implementation of the §6.2 contract.
type Keyspace struct {
	log *zap.Logger

	mu     sync.RWMutex
	values map[string]any
}

// New builds an empty Keyspace.
func New(log *zap.Logger) *Keyspace {
	return &Keyspace{
		log:    log.Named("keyspace"),
		values: make(map[string]any),
	}
}

// LookupSet resolves name to a PS. A name that resolves to nothing returns
// (nil, nil) — treated as the empty set by callers per spec §4.3. A name
// bound to a non-set value returns ErrWrongKind.
func (k *Keyspace) LookupSet(name string) (*setval.PS, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	v, ok := k.values[name]
	if !ok {
		return nil, nil
	}
	ps, ok := v.(*setval.PS)
	if !ok {
		return nil, ErrWrongKind
	}
	return ps, nil
}

// BindSet creates or overwrites name's binding with ps.
func (k *Keyspace) BindSet(name string, ps *setval.PS) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[name] = ps
}

// BindOpaque binds name to a non-set value; used by tests to exercise
// ErrWrongKind, and available to any future command that stores other
// value types alongside sets in the same keyspace.
func (k *Keyspace) BindOpaque(name string, v any) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.values[name] = v
}

// Unbind removes name's binding, reporting whether it existed.
func (k *Keyspace) Unbind(name string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.values[name]; !ok {
		return false
	}
	delete(k.values, name)
	return true
}

// Replace atomically swaps name's binding for ps, the single logical step
// store-mode finalization requires (spec §4.3, "Store-mode semantics").
func (k *Keyspace) Replace(name string, ps *setval.PS) {
	k.BindSet(name, ps)
}

// MarkModified signals that name's value changed. In a full server this
// would feed replication/AOF (out of scope per spec §1); here it is a
// logging hook other subsystems (diagnostics, tests) can observe through
// logs.
func (k *Keyspace) MarkModified(name string) {
	k.log.Debug("key modified", zap.String("name", name))
}
