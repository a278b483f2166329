package bitsy

// Select answers select queries against a BitVector: the position of the
// rank-th (1-indexed) zero or one bit. It samples a superblock hint every
// Stride occurrences, then narrows a query down through the superblock's
// blocks and finally a single word before delegating to wordSelect1.
//
// Grounded on original_source/bitsy/select/two_layer_select.hpp.
//
// Select holds a non-owning reference to its BitVector. It must be
// rebuilt (via Update) after the BitVector's own Update runs following
// any mutation, mirroring the two-phase rank-then-select construction the
// original source requires.
type Select struct {
	bv  *BitVector
	cfg SelectConfig

	numOnesHint uint64

	oneSamples  []uint64
	zeroSamples []uint64
}

// NewSelect builds a Select structure over bv using the default
// SelectConfig, mirroring TwoLayerSelect's constructor signature
// (bitvector, num_ones). numOnes is a hint that is checked only in debug
// builds; Update always recomputes the true one/zero counts from bv
// itself. In release builds a stale hint is ignored; in debug builds
// Update panics if a non-zero hint differs from bv's count of ones. bv
// must already have had Update called on it.
func NewSelect(bv *BitVector, numOnes uint64) *Select {
	s, err := NewSelectWithConfig(bv, numOnes, DefaultSelectConfig())
	if err != nil {
		panic(err)
	}
	return s
}

// NewSelectWithConfig is NewSelect parameterized over a runtime
// SelectConfig, the configurable counterpart spec.md §9 DESIGN NOTES
// allows in place of compile-time template parameters.
func NewSelectWithConfig(bv *BitVector, numOnes uint64, cfg SelectConfig) (*Select, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Select{bv: bv, cfg: cfg, numOnesHint: numOnes}
	s.Update()
	return s, nil
}

// MemorySpaceBits returns the heap-dependent memory usage of this Select
// structure, in bits: the one-sample and zero-sample arrays.
func (s *Select) MemorySpaceBits() uint64 {
	return uint64(len(s.oneSamples))*wordWidth + uint64(len(s.zeroSamples))*wordWidth
}

// Update recomputes the sample arrays from bv's current rank structure.
// Call it whenever the underlying BitVector has been mutated and its own
// Update has been re-run. Grounded on two_layer_select.hpp's update().
func (s *Select) Update() {
	bv := s.bv
	length := bv.Length()

	if length == 0 {
		s.oneSamples = s.oneSamples[:0]
		s.zeroSamples = s.zeroSamples[:0]
		return
	}

	numOnes := bv.Rank1(length)
	assertf(s.numOnesHint == 0 || s.numOnesHint == numOnes,
		"bitsy: Select: stale numOnes hint %d, bitvector has %d", s.numOnesHint, numOnes)
	numZeros := length - numOnes
	stride := uint64(s.cfg.Stride)

	oneSamples := make([]uint64, numOnes/stride+2)
	zeroSamples := make([]uint64, numZeros/stride+2)

	blockDataWidth := uint64(bv.blockDataWidth)
	superblockDataWidth := bv.superblockDataWidth

	var totalOnes, totalZeros, thresholdOne, thresholdZero uint64
	var curOne, curZero int

	handleBlock := func(numBlock, onesInBlock, zerosInBlock uint64) {
		totalOnes += onesInBlock
		totalZeros += zerosInBlock

		for totalOnes >= thresholdOne {
			oneSamples[curOne] = (numBlock * blockDataWidth) / superblockDataWidth
			curOne++
			thresholdOne += stride
		}
		for totalZeros >= thresholdZero {
			zeroSamples[curZero] = (numBlock * blockDataWidth) / superblockDataWidth
			curZero++
			thresholdZero += stride
		}
	}

	numBlocks := bv.NumBlocks()
	for numBlock := uint64(0); numBlock+1 < numBlocks; numBlock++ {
		onesInBlock := uint64(bv.BlockPopcount(numBlock))
		zerosInBlock := blockDataWidth - onesInBlock
		handleBlock(numBlock, onesInBlock, zerosInBlock)
	}
	if numBlocks > 0 {
		last := numBlocks - 1
		onesInBlock := uint64(bv.BlockPopcount(last))
		wrongZeros := numBlocks*blockDataWidth - length
		zerosInBlock := blockDataWidth - onesInBlock - wrongZeros
		handleBlock(last, onesInBlock, zerosInBlock)
	}

	sentinel := bv.NumSuperblocks() - 1
	oneSamples[curOne] = sentinel
	curOne++
	zeroSamples[curZero] = sentinel
	curZero++

	s.oneSamples = oneSamples[:curOne]
	s.zeroSamples = zeroSamples[:curZero]
}

// binarySearchLowerBound narrows a candidate range of count indices
// starting at lo, returning the largest index i such that at(i) < rank
// for all indices up to and including the result, using the same
// conditional-multiply halving word_select.hpp's binary-search branch
// uses, rather than an if, since the branch direction is data-dependent.
func binarySearchLowerBound(lo uint64, count int, rank uint64, at func(i uint64) uint64) uint64 {
	pos := lo
	length := count
	for length > 1 {
		half := length / 2
		length -= half
		pos += uint64(b2i(at(pos+uint64(half)) < rank) * half)
	}
	return pos
}

// linearScanLowerBound is the non-binary-search alternative to
// binarySearchLowerBound, scanning forward one candidate at a time.
func linearScanLowerBound(lo, hi uint64, rank uint64, at func(i uint64) uint64) uint64 {
	pos := lo
	for pos < hi && at(pos+1) < rank {
		pos++
	}
	return pos
}

func (s *Select) narrow(lo uint64, count int, hi, rank uint64, at func(i uint64) uint64) uint64 {
	if s.cfg.UseBinarySearch {
		return binarySearchLowerBound(lo, count, rank, at)
	}
	return linearScanLowerBound(lo, hi, rank, at)
}

// Select1 returns the 0-indexed position of the rank-th set bit
// (rank >= 1). The result is undefined if bv has fewer than rank set
// bits. Grounded on two_layer_select.hpp's select1().
func (s *Select) Select1(rank uint64) uint64 {
	bv := s.bv
	stride := uint64(s.cfg.Stride)

	i := (rank - 1) / stride
	numSuperblock := s.oneSamples[i]
	numLastSuperblock := s.oneSamples[i+1]

	superblockRank := bv.SuperblockRanks()
	numSuperblock = s.narrow(numSuperblock, int(numLastSuperblock-numSuperblock)+1, numLastSuperblock, rank,
		func(idx uint64) uint64 { return superblockRank[idx] })
	rank -= superblockRank[numSuperblock]

	blocksPerSuperblock := uint64(bv.blocksPerSuperblock)
	numBlocks := bv.NumBlocks()
	lo := numSuperblock * blocksPerSuperblock
	hi := lo + blocksPerSuperblock - 1
	if numBlocks-1 < hi {
		hi = numBlocks - 1
	}

	words := bv.Words()
	wordsPerBlock := uint64(bv.wordsPerBlock)
	headerWidth := bv.headerWidth
	headerMask := setbits(headerWidth, 0)

	blockRankAt := func(numBlock uint64) uint64 {
		return words[numBlock*wordsPerBlock] & headerMask
	}

	numBlock := s.narrow(lo, int(hi-lo)+1, hi, rank, blockRankAt)
	rank -= blockRankAt(numBlock)

	base := numBlock * wordsPerBlock

	numWord := uint64(0)
	wordRankAt := func(w uint64) uint64 {
		if w == 0 {
			return uint64(popcount(words[base] >> uint(headerWidth)))
		}
		return uint64(popcount(words[base+w]))
	}
	wr := wordRankAt(numWord)
	for wr < rank {
		rank -= wr
		numWord++
		wr = wordRankAt(numWord)
	}

	var word uint64
	if numWord == 0 {
		word = words[base] &^ headerMask
	} else {
		word = words[base+numWord]
	}

	pos := wordSelect1(word, int(rank), s.cfg.WordSelect)
	return numBlock*uint64(bv.blockDataWidth) + numWord*wordWidth + uint64(pos) - uint64(headerWidth)
}

// Select0 returns the 0-indexed position of the rank-th unset bit
// (rank >= 1). The result is undefined if bv has fewer than rank unset
// bits. Mirrors Select1 with ones/zeros swapped throughout, grounded on
// two_layer_select.hpp's select0().
func (s *Select) Select0(rank uint64) uint64 {
	bv := s.bv
	stride := uint64(s.cfg.Stride)

	i := (rank - 1) / stride
	numSuperblock := s.zeroSamples[i]
	numLastSuperblock := s.zeroSamples[i+1]

	superblockRank := bv.SuperblockRanks()
	superblockDataWidth := bv.superblockDataWidth
	superblockZeroRankAt := func(idx uint64) uint64 {
		return idx*superblockDataWidth - superblockRank[idx]
	}

	numSuperblock = s.narrow(numSuperblock, int(numLastSuperblock-numSuperblock)+1, numLastSuperblock, rank,
		superblockZeroRankAt)
	rank -= superblockZeroRankAt(numSuperblock)

	blocksPerSuperblock := uint64(bv.blocksPerSuperblock)
	numBlocks := bv.NumBlocks()
	lo := numSuperblock * blocksPerSuperblock
	hi := lo + blocksPerSuperblock - 1
	if numBlocks-1 < hi {
		hi = numBlocks - 1
	}

	words := bv.Words()
	wordsPerBlock := uint64(bv.wordsPerBlock)
	headerWidth := bv.headerWidth
	headerMask := setbits(headerWidth, 0)
	blockDataWidth := uint64(bv.blockDataWidth)

	blockZeroRankAt := func(numBlock uint64) uint64 {
		local := numBlock % blocksPerSuperblock
		headerRank := words[numBlock*wordsPerBlock] & headerMask
		return local*blockDataWidth - headerRank
	}

	numBlock := s.narrow(lo, int(hi-lo)+1, hi, rank, blockZeroRankAt)
	rank -= blockZeroRankAt(numBlock)

	base := numBlock * wordsPerBlock

	// Word 0's header bits are forced to one before complementing, so
	// that they read as zero ones (never selected) rather than phantom
	// zero bits preceding the real payload.
	numWord := uint64(0)
	wordZeroRankAt := func(w uint64) uint64 {
		if w == 0 {
			return uint64(popcount(^(words[base] | headerMask)))
		}
		return uint64(popcount(^words[base+w]))
	}
	wr := wordZeroRankAt(numWord)
	for wr < rank {
		rank -= wr
		numWord++
		wr = wordZeroRankAt(numWord)
	}

	var word uint64
	if numWord == 0 {
		word = ^(words[base] | headerMask)
	} else {
		word = ^words[base+numWord]
	}

	pos := wordSelect1(word, int(rank), s.cfg.WordSelect)
	return numBlock*blockDataWidth + numWord*wordWidth + uint64(pos) - uint64(headerWidth)
}
