// Package bitsy provides a succinct bit vector with constant-time rank and
// near-constant-time select queries over sequences of up to 2^64 bits.
//
// A BitVector groups its bits into blocks and superblocks and interleaves
// per-block rank prefixes with the bit payload so that a rank query costs at
// most two cache-line loads. Select is answered by a separate, sampled
// Select structure that narrows a k-th occurrence down to a superblock, then
// a block, then a word, before delegating to an intra-word select.
//
// Construction/mutation (Set, Unset, Update) is single-threaded; once
// Update has been called, BitVector and Select are safe for any number of
// concurrent readers.
package bitsy
