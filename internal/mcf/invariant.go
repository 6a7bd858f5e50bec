package mcf

import "fmt"

// Assertf panics with a formatted message if cond is false. The core
// algorithm reports no recoverable errors — invariant violations (a missing
// path for a reachable destination, a structural path-tree inconsistency)
// are programmer errors and abort immediately, per the failure semantics
// the pass drivers are built against.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
