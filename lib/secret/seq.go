// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"
	"unsafe"
)

// Unit is an element type a Seq can hold: bytes, UTF-16 code units, or
// 32-bit code points.
type Unit interface {
	~uint8 | ~uint16 | ~int32 | ~uint32
}

// Seq is a sequence of text units stored in a Buffer. It carries the
// same guarantees as the Buffer: fixed capacity, explicit length, wiped
// on Close, never copied implicitly.
type Seq[T Unit] struct {
	buffer *Buffer
}

func unitSize[T Unit]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// NewSeq allocates a sequence of n units from the locked allocator.
func NewSeq[T Unit](n int) (*Seq[T], error) {
	return NewSeqWithAllocator[T](n, LockedAllocator())
}

// NewSeqWithAllocator allocates a sequence of n units from allocator.
// The sequence starts with length n.
func NewSeqWithAllocator[T Unit](n int, allocator Allocator) (*Seq[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("secret: sequence length must not be negative, got %d", n)
	}
	buffer, err := NewWithAllocator(n*unitSize[T](), allocator)
	if err != nil {
		return nil, err
	}
	return &Seq[T]{buffer: buffer}, nil
}

// view reinterprets a region of the buffer as units. Allocator regions
// are at least word-aligned (mmap regions are page-aligned).
func (s *Seq[T]) view(region []byte) []T {
	if len(region) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&region[0])), len(region)/unitSize[T]())
}

// Elements returns the logical content. The slice aliases secret memory.
// Panics if the sequence has been closed.
func (s *Seq[T]) Elements() []T {
	return s.view(s.buffer.Bytes())
}

// Raw returns the full capacity for filling. Panics if the sequence has
// been closed.
func (s *Seq[T]) Raw() []T {
	return s.view(s.buffer.Raw())
}

// Len returns the logical length in units.
func (s *Seq[T]) Len() int {
	return s.buffer.Len() / unitSize[T]()
}

// Cap returns the capacity in units.
func (s *Seq[T]) Cap() int {
	return s.buffer.Cap() / unitSize[T]()
}

// SetLen assigns the logical length in units, zeroing the tail.
func (s *Seq[T]) SetLen(n int) {
	if n < 0 {
		panic(fmt.Sprintf("secret: length %d out of range", n))
	}
	s.buffer.SetLen(n * unitSize[T]())
}

// Buffer returns the underlying byte buffer, e.g. for fingerprinting or
// constant-time comparison. Closing either closes both.
func (s *Seq[T]) Buffer() *Buffer {
	return s.buffer
}

// Clone copies the logical content into a new protected sequence.
func (s *Seq[T]) Clone() (*Seq[T], error) {
	buffer, err := s.buffer.Clone()
	if err != nil {
		return nil, err
	}
	return &Seq[T]{buffer: buffer}, nil
}

// Equal reports whether both sequences hold the same units, in constant
// time with respect to content.
func (s *Seq[T]) Equal(other *Seq[T]) bool {
	return s.buffer.Equal(other.buffer)
}

// Close wipes and releases the backing memory. Idempotent.
func (s *Seq[T]) Close() error {
	return s.buffer.Close()
}
