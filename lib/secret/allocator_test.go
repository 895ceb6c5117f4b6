// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"unsafe"
)

// recordingAllocator hands out ordinary heap memory and remembers every
// region, so tests can inspect memory after the Buffer released it.
type recordingAllocator struct {
	allocated [][]byte
	released  [][]byte

	// releasedSnapshot holds a copy of each region taken at the moment
	// Release was called.
	releasedSnapshot [][]byte

	failAllocate bool
}

var errAllocationRefused = errors.New("allocation refused")

func (a *recordingAllocator) Allocate(size int) ([]byte, error) {
	if a.failAllocate {
		return nil, errAllocationRefused
	}
	// Back with uint64 words so typed views are aligned.
	words := make([]uint64, (size+7)/8)
	region := unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
	a.allocated = append(a.allocated, region)
	return region, nil
}

func (a *recordingAllocator) Release(region []byte) error {
	a.released = append(a.released, region)
	a.releasedSnapshot = append(a.releasedSnapshot, append([]byte(nil), region...))
	return nil
}

func allZero(data []byte) bool {
	for _, value := range data {
		if value != 0 {
			return false
		}
	}
	return true
}
