// Package oracle provides a slow, obviously-correct rank/select
// implementation used by the test suite to cross-check the package
// bitsy's constant-time structures.
//
// Grounded on original_source/bitsy/rank/naive_rank.hpp and
// original_source/bitsy/select/naive_select.hpp, which store a rank (or
// position) for every single bit at the cost of 64x space overhead. This
// package keeps that spirit but mirrors the payload itself in a
// github.com/bits-and-blooms/bitset.BitSet (pulled into the retrieved
// dependency pack via hupe1980-vecgo) rather than a hand-rolled word
// table, so the oracle exercises a second, independent bit-storage
// implementation instead of reusing bitsy's own.
package oracle

import "github.com/bits-and-blooms/bitset"

// Oracle answers rank/select queries by brute force over a bitset.BitSet
// mirror of a source's bits. It is only ever constructed from test code.
type Oracle struct {
	bits *bitset.BitSet

	rank         []uint64
	onePositions []uint64
	zeroPositions []uint64
}

// Source is the minimal interface an Oracle needs from whatever bit
// sequence it mirrors, matching bitsy.BitVector's read surface.
type Source interface {
	Length() uint64
	IsSet(i uint64) bool
}

// New builds an Oracle mirroring src's current contents. Later mutations
// to src are not observed; build a new Oracle instead, matching
// naive_rank.hpp/naive_select.hpp's "call update() to observe changes"
// contract minus the mutability.
func New(src Source) *Oracle {
	length := src.Length()

	o := &Oracle{
		bits: bitset.New(uint(length)),
		rank: make([]uint64, length+1),
	}

	var numOnes uint64
	for pos := uint64(0); pos < length; pos++ {
		o.rank[pos] = numOnes
		if src.IsSet(pos) {
			o.bits.Set(uint(pos))
			numOnes++
		}
	}
	o.rank[length] = numOnes

	o.onePositions = make([]uint64, 0, numOnes)
	o.zeroPositions = make([]uint64, 0, length-numOnes)
	for pos := uint64(0); pos < length; pos++ {
		if o.bits.Test(uint(pos)) {
			o.onePositions = append(o.onePositions, pos)
		} else {
			o.zeroPositions = append(o.zeroPositions, pos)
		}
	}

	return o
}

// Length returns the number of bits the oracle was built from.
func (o *Oracle) Length() uint64 { return uint64(len(o.rank) - 1) }

// IsSet returns whether the bit at position i is set.
func (o *Oracle) IsSet(i uint64) bool { return o.bits.Test(uint(i)) }

// Rank1 returns the number of bits equal to one in [0, p).
func (o *Oracle) Rank1(p uint64) uint64 { return o.rank[p] }

// Rank0 returns the number of bits equal to zero in [0, p).
func (o *Oracle) Rank0(p uint64) uint64 { return p - o.rank[p] }

// Select1 returns the 0-indexed position of the rank-th (1-indexed) one.
func (o *Oracle) Select1(rank uint64) uint64 { return o.onePositions[rank-1] }

// Select0 returns the 0-indexed position of the rank-th (1-indexed) zero.
func (o *Oracle) Select0(rank uint64) uint64 { return o.zeroPositions[rank-1] }

// NumOnes returns the total number of one bits the oracle observed.
func (o *Oracle) NumOnes() uint64 { return uint64(len(o.onePositions)) }

// NumZeros returns the total number of zero bits the oracle observed.
func (o *Oracle) NumZeros() uint64 { return uint64(len(o.zeroPositions)) }
