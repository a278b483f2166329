//go:build !linux

package bitsy

import "errors"

// mmapHugeWords is only implemented on Linux, where MAP_HUGETLB is
// available; everywhere else huge-page allocation always falls back to the
// ordinary heap, per spec.md §5's "transparent fallback" contract.
func mmapHugeWords(numWords int) ([]uint64, func() error, error) {
	return nil, nil, errors.New("bitsy: huge pages not supported on this platform")
}
