package command

import (
	"errors"

	"github.com/vpol/redis/internal/keyspace"
)

// ErrWrongKind re-exports keyspace's sentinel so callers of this package
// never need to import keyspace directly to classify errors (spec §7).
var ErrWrongKind = keyspace.ErrWrongKind

// ErrRange reports a negative count argument where the operation requires
// one (spec §7, "Range").
var ErrRange = errors.New("command: range error")

// ErrSyntax reports a malformed argument list, such as ADD with no
// elements (spec §7, "Syntax").
var ErrSyntax = errors.New("command: syntax error")
