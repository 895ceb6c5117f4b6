// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"crypto/subtle"
	"fmt"
	"io"
	"sync"
)

// Buffer holds sensitive data in memory obtained from an Allocator and
// zeroed on close. With the default allocator the memory is locked
// against swapping and excluded from core dumps.
//
// A Buffer has a fixed capacity and a logical length. New buffers start
// with length equal to capacity; fillers that wrote less call SetLen.
//
// A Buffer must not be copied after creation. After Close, any access
// to the buffer's contents will panic.
type Buffer struct {
	mu        sync.Mutex
	data      []byte
	length    int
	closed    bool
	allocator Allocator
}

// New allocates a secret buffer of the given size from the locked
// allocator. A size of zero yields an empty buffer that owns no memory.
//
// The caller must call Close when the secret is no longer needed.
func New(size int) (*Buffer, error) {
	return NewWithAllocator(size, LockedAllocator())
}

// NewWithAllocator allocates a secret buffer of the given size from
// allocator. Tests use this to observe the released memory.
func NewWithAllocator(size int, allocator Allocator) (*Buffer, error) {
	if size < 0 {
		return nil, fmt.Errorf("secret: buffer size must not be negative, got %d", size)
	}
	if allocator == nil {
		allocator = LockedAllocator()
	}
	if size == 0 {
		return &Buffer{allocator: allocator}, nil
	}

	data, err := allocator.Allocate(size)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		allocator.Release(data)
		return nil, fmt.Errorf("secret: allocator returned %d bytes, requested %d", len(data), size)
	}

	return &Buffer{
		data:      data,
		length:    size,
		allocator: allocator,
	}, nil
}

// NewFromBytes creates a secret buffer from existing data. The source
// bytes are copied into the protected region and then zeroed in place,
// so the caller's original slice no longer holds the secret.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}

	buffer, err := New(len(source))
	if err != nil {
		Zero(source)
		return nil, err
	}

	copy(buffer.data, source)
	Zero(source)

	return buffer, nil
}

// Bytes returns the logical content. The returned slice points directly
// into the protected region; do not hold references to it beyond the
// lifetime of the Buffer. Panics if the buffer has been closed.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mustBeOpen("read from")
	return b.data[:b.length]
}

// Raw returns the full capacity of the buffer for filling, regardless
// of the logical length. Panics if the buffer has been closed.
func (b *Buffer) Raw() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mustBeOpen("write to")
	return b.data
}

// String returns the logical content as a string. The string is a heap
// copy that cannot be wiped, so use it only at API boundaries that
// require one. Panics if the buffer has been closed.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mustBeOpen("read from")
	return string(b.data[:b.length])
}

// Len returns the logical length of the secret data.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.length
}

// Cap returns the capacity fixed at construction.
func (b *Buffer) Cap() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.data)
}

// SetLen assigns the logical length once the true content size is
// known. Bytes past the new length are zeroed so a shrink never leaves
// stale secret bytes in the tail. Panics if n is outside [0, Cap] or
// the buffer has been closed.
func (b *Buffer) SetLen(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mustBeOpen("resize")
	if n < 0 || n > len(b.data) {
		panic(fmt.Sprintf("secret: length %d out of range [0, %d]", n, len(b.data)))
	}
	Zero(b.data[n:])
	b.length = n
}

// Clone copies the logical content into a new buffer from the same
// allocator. The copy is itself secret memory and must be closed.
func (b *Buffer) Clone() (*Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mustBeOpen("clone")
	clone, err := NewWithAllocator(b.length, b.allocator)
	if err != nil {
		return nil, err
	}
	copy(clone.data, b.data[:b.length])
	return clone, nil
}

// Equal reports whether two buffers hold the same content, in time
// independent of where they differ.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == other {
		return true
	}
	return subtle.ConstantTimeCompare(b.Bytes(), other.Bytes()) == 1
}

// WriteTo writes the logical content to w without an intermediate heap
// copy.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mustBeOpen("read from")
	n, err := w.Write(b.data[:b.length])
	return int64(n), err
}

// Close zeros the whole region and hands it back to the allocator.
// After Close, any access will panic. Close is idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	if b.data == nil {
		return nil
	}

	Zero(b.data)
	err := b.allocator.Release(b.data)
	b.data = nil
	b.length = 0
	return err
}

func (b *Buffer) mustBeOpen(action string) {
	if b.closed {
		panic("secret: " + action + " closed buffer")
	}
}
