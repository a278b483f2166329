//go:build !bitsydebug

package bitsy

// assertf is a no-op without the bitsydebug build tag, so precondition
// checks compile out of the fast path entirely, as required by spec.md §7.
func assertf(cond bool, format string, args ...any) {}
