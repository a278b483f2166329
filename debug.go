//go:build bitsydebug

package bitsy

import "fmt"

// assertf panics with a formatted message when cond is false. It is only
// compiled in with the bitsydebug build tag; the hot paths described in
// spec.md §4 never call it unconditionally in release builds, matching
// "implementations MAY insert debug assertions but must not alter the
// fast path."
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
