//go:build linux

package bitsy

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmapHugeWords maps numWords*8 bytes of anonymous memory, first trying to
// back it with huge pages (MAP_HUGETLB) and retrying without that flag if
// the first mapping fails for any reason. The returned slice
// aliases the mapping directly; release must be called exactly once to
// unmap it.
func mmapHugeWords(numWords int) ([]uint64, func() error, error) {
	length := numWords * 8
	if length == 0 {
		length = 8
	}

	data, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_HUGETLB)
	if err != nil {
		data, err = unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("bitsy: mmap huge pages: %w", err)
	}

	words := unsafe.Slice((*uint64)(unsafe.Pointer(&data[0])), length/8)
	release := func() error {
		return unix.Munmap(data)
	}
	return words[:numWords], release, nil
}
