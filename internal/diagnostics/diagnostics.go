// Package diagnostics dumps the internal state of a set value for
// debugging, in the style of the teacher's pkg/fmtt error-chain printer.
package diagnostics

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/vpol/redis/internal/setval"
)

// Dump writes ps's encoding and materialized contents to stdout via spew,
// the way PrintErrChainDebug dumps an error chain's fields.
func Dump(name string, ps *setval.PS) {
	if ps == nil {
		fmt.Printf("%s: <missing>\n", name)
		return
	}
	snap := ps.Snapshot()
	fmt.Printf("%s: encoding=%s size=%d\n", name, snap.Encoding, snap.Size)
	spew.Dump(snap.Values)
}

// Sdump is Dump's string-returning counterpart, for embedding in an HTTP
// debug endpoint instead of printing directly.
func Sdump(name string, ps *setval.PS) string {
	if ps == nil {
		return fmt.Sprintf("%s: <missing>\n", name)
	}
	snap := ps.Snapshot()
	header := fmt.Sprintf("%s: encoding=%s size=%d\n", name, snap.Encoding, snap.Size)
	return header + spew.Sdump(snap.Values)
}
