package bitsy

import (
	"math/bits"

	"github.com/klauspost/cpuid/v2"
)

const wordWidth = 64

// WordSelectStrategy picks the algorithm wordSelect1 uses to find the
// position of the r-th set bit within a single 64-bit word. The original
// C++ source selects between these at compile time via template
// parameters; Go has no equivalent of a non-type template parameter, so
// this is a runtime policy instead, carried on SelectConfig.
type WordSelectStrategy int

const (
	// WordSelectAuto dispatches to WordSelectPDEP when the CPU advertises
	// BMI2 support and to WordSelectBinarySearch otherwise, mirroring the
	// compile-time USE_PDEP guard in word_select.hpp.
	WordSelectAuto WordSelectStrategy = iota
	// WordSelectPDEP is the bit-deposit fast path. Go's standard library
	// does not expose a parallel-bit-deposit intrinsic (there is no PDEP
	// in math/bits and no such instruction wrapper anywhere in the
	// dependency pack this repo draws on), so this strategy is realized
	// as the binary-search strategy gated behind a positive BMI2 probe:
	// it documents the intent of the fast path without fabricating an
	// assembly stub for an instruction the toolchain can't emit.
	WordSelectPDEP
	// WordSelectBinarySearch narrows the position by repeatedly testing
	// the popcount of the bits below the midpoint of the remaining
	// candidate range.
	WordSelectBinarySearch
	// WordSelectLinear scans from the least-significant bit, decrementing
	// r once per set bit.
	WordSelectLinear
)

// hasBMI2 records whether the running CPU advertises the BMI2 instruction
// set, which is what a real PDEP-based word_select1 fast path would
// require. Probed once at package initialization, the same point at which
// the original C++ source's USE_PDEP macro is resolved at compile time.
var hasBMI2 = cpuid.CPU.Supports(cpuid.BMI2)

// popcount returns the number of set bits in w. math/bits.OnesCount64 is
// recognized by the Go compiler on every supported architecture and
// lowered directly to the hardware POPCNT instruction where available;
// no package in the dependency pack offers a faster or more portable
// popcount, so the standard library is used directly here instead of the
// bit-trick AlexWan0-rsdic-mmap/util.go hand-rolls.
func popcount(w uint64) int {
	return bits.OnesCount64(w)
}

// setbits returns a word with numSetBits consecutive one-bits starting at
// bit position start (the least-significant bit is position 0). It panics
// in debug builds (see debug.go) if numSetBits+start would overflow a
// 64-bit word.
func setbits(numSetBits, start int) uint64 {
	assertf(numSetBits >= 0 && start >= 0 && numSetBits+start <= wordWidth,
		"setbits: invalid arguments numSetBits=%d start=%d", numSetBits, start)

	if numSetBits == 0 {
		return 0
	}

	const allOnes = ^uint64(0)
	return (allOnes >> uint(wordWidth-numSetBits)) << uint(start)
}

// wordSelect1 returns the 0-indexed position of the r-th set bit in w
// (r >= 1), using the given strategy. The result is undefined if w has
// fewer than r set bits.
func wordSelect1(w uint64, r int, strategy WordSelectStrategy) int {
	switch strategy {
	case WordSelectAuto:
		if hasBMI2 {
			return wordSelect1PDEP(w, r)
		}
		return wordSelect1BinarySearch(w, r)
	case WordSelectPDEP:
		return wordSelect1PDEP(w, r)
	case WordSelectLinear:
		return wordSelect1Linear(w, r)
	default:
		return wordSelect1BinarySearch(w, r)
	}
}

// wordSelect1PDEP is the Go analogue of the C++ fast path in
// word_select.hpp, which deposits the bit 1<<(r-1) into the set-bit
// positions of w via a hardware PDEP instruction and returns the number of
// trailing zeros of the result. Go exposes no such intrinsic, so this
// falls back to the binary-search strategy; it is kept as a distinct,
// named strategy so that callers, benchmarks, and the equivalence tests in
// spec.md §8.5 can still select it explicitly and so the dispatch point
// documents what a PDEP implementation would replace.
func wordSelect1PDEP(w uint64, r int) int {
	return wordSelect1BinarySearch(w, r)
}

// wordSelect1BinarySearch narrows the candidate bit position by comparing
// the popcount of all bits below the midpoint of the remaining range
// against r at each step, moving the position up to the midpoint while
// that count is still below r, as word_select.hpp's kUseBinarySearch
// branch does. The
// update is a conditional multiply rather than an if, the same
// branch-free formulation the source uses because the branch direction is
// data-dependent and mispredicts badly.
func wordSelect1BinarySearch(w uint64, r int) int {
	pos := 0
	length := wordWidth
	for length > 1 {
		half := length / 2
		length -= half
		pos += b2i(popcount(w<<uint(wordWidth-(pos+half))) < r) * half
	}
	return pos
}

// b2i converts a boolean to 0 or 1 without a branch.
func b2i(b bool) int {
	var i int
	if b {
		i = 1
	}
	return i
}

// wordSelect1Linear scans from the least-significant bit, matching the
// else-branch of word_select.hpp.
func wordSelect1Linear(w uint64, r int) int {
	pos := 0
	for r > 0 {
		r -= int(w & 1)
		w >>= 1
		pos++
	}
	return pos - 1
}
