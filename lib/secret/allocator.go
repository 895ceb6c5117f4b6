// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Allocator supplies and reclaims the backing memory of a Buffer.
// Buffer zeroes a region before passing it to Release, so an Allocator
// never sees live secret content on release.
type Allocator interface {
	// Allocate returns a zero-filled region of exactly size bytes.
	Allocate(size int) ([]byte, error)

	// Release returns a region previously obtained from Allocate.
	Release(region []byte) error
}

// lockedAllocator maps anonymous memory that is locked into RAM and
// excluded from core dumps.
type lockedAllocator struct{}

// LockedAllocator returns the default allocator: anonymous mmap regions
// that are mlock'd against swap and marked MADV_DONTDUMP.
func LockedAllocator() Allocator {
	return lockedAllocator{}
}

func (lockedAllocator) Allocate(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}

	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: mlock failed: %w", err)
	}

	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP) failed: %w", err)
	}

	return data, nil
}

func (lockedAllocator) Release(region []byte) error {
	var firstError error
	if err := unix.Munlock(region); err != nil {
		firstError = fmt.Errorf("secret: munlock failed: %w", err)
	}
	if err := unix.Munmap(region); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap failed: %w", err)
	}
	return firstError
}
