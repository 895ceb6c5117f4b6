// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"unsafe"
)

// ErrAllocationRefused is returned by a HeapAllocator with Fail set.
var ErrAllocationRefused = errors.New("allocation refused")

// HeapAllocator hands out heap memory and records every allocation
// and release. The zero value is ready to use. Not safe for concurrent
// use.
type HeapAllocator struct {
	// Sizes holds the requested size of each allocation, in order.
	Sizes []int

	// Released holds a copy of each region taken at the moment it was
	// released.
	Released [][]byte

	// Fail makes Allocate return ErrAllocationRefused.
	Fail bool
}

func (a *HeapAllocator) Allocate(size int) ([]byte, error) {
	if a.Fail {
		return nil, ErrAllocationRefused
	}
	a.Sizes = append(a.Sizes, size)
	words := make([]uint64, (size+7)/8)
	if len(words) == 0 {
		return []byte{}, nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size), nil
}

func (a *HeapAllocator) Release(region []byte) error {
	a.Released = append(a.Released, append([]byte(nil), region...))
	return nil
}

// Allocations returns how many regions have been allocated.
func (a *HeapAllocator) Allocations() int {
	return len(a.Sizes)
}

// AllZero reports whether every byte of data is zero.
func AllZero(data []byte) bool {
	for _, value := range data {
		if value != 0 {
			return false
		}
	}
	return true
}
