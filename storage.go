package bitsy

// wordStorage owns a fixed-size buffer of 64-bit words. It never resizes
// after construction, mirroring original_source/bitsy/util/static_vector.hpp
// and the fixed two-word capacity AlexWan0-rsdic-mmap/rsdic.go's
// BufferedBits manages by hand before flushing to disk.
//
// When hugePages is requested, newWordStorage attempts an anonymous
// mapping via mmapHugeWords (huge-page backed where the platform allows)
// and falls back transparently to an ordinary heap-allocated slice on any
// failure, per
// spec.md §5/§7 ("best-effort resource acquisition with guaranteed release
// on destruction... must fall back transparently to ordinary allocation on
// failure").
type wordStorage struct {
	words   []uint64
	release func() error
}

func newWordStorage(numWords int, hugePages bool) (*wordStorage, error) {
	if numWords < 0 {
		numWords = 0
	}

	if hugePages {
		if words, release, err := mmapHugeWords(numWords); err == nil {
			return &wordStorage{words: words, release: release}, nil
		}
	}

	return &wordStorage{words: make([]uint64, numWords)}, nil
}

// Close releases the underlying memory, unmapping it if it was acquired
// via mmapHugeWords. It is safe to call more than once.
func (s *wordStorage) Close() error {
	if s == nil || s.release == nil {
		return nil
	}
	release := s.release
	s.release = nil
	return release()
}
