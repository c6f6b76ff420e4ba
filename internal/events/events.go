// Package events is the notification and propagation sink of spec §6.2: a
// typed stand-in for keyspace-event notifications and command rewriting,
// backed by structured logging instead of a pub/sub bus (out of scope per
// spec §1).
package events

import "go.uber.org/zap"

// Kind identifies what kind of change happened to a set, replacing the
// original implementation's string event names with a closed, typed set.
type Kind int

const (
	KindAdd Kind = iota
	KindRemove
	KindMove
	KindPop
	KindUnionStore
	KindInterStore
	KindDiffStore
	KindRandStore
	KindDel
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindMove:
		return "move"
	case KindPop:
		return "pop"
	case KindUnionStore:
		return "unionstore"
	case KindInterStore:
		return "interstore"
	case KindDiffStore:
		return "diffstore"
	case KindRandStore:
		return "randstore"
	case KindDel:
		return "del"
	default:
		return "unknown"
	}
}

// Sink receives change notifications and element-level propagation calls.
// Notify fires for each command that changed name's value, plus a second
// KindDel notification when that command emptied and unbound name. Propagate fires
// once per element a destructive sampling operation removed, mirroring the
// original implementation's command rewriting for replication.
type Sink interface {
	Notify(kind Kind, name string)
	Propagate(name string, elem []byte)
}

// ZapSink logs notifications and propagation at debug level. It is the
// default Sink for this engine; a real deployment would fan these out to
// a pub/sub bus or replication stream instead.
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink builds a Sink backed by log.
func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log.Named("events")}
}

func (s *ZapSink) Notify(kind Kind, name string) {
	s.log.Debug("notify", zap.String("kind", kind.String()), zap.String("name", name))
}

func (s *ZapSink) Propagate(name string, elem []byte) {
	s.log.Debug("propagate", zap.String("name", name), zap.ByteString("elem", elem))
}
