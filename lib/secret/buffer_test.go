// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"errors"
	"testing"
)

func TestNew_ValidSize(t *testing.T) {
	buffer, err := New(64)
	if err != nil {
		t.Fatalf("New(64) failed: %v", err)
	}
	defer buffer.Close()

	if buffer.Len() != 64 {
		t.Errorf("expected length 64, got %d", buffer.Len())
	}
	if buffer.Cap() != 64 {
		t.Errorf("expected capacity 64, got %d", buffer.Cap())
	}

	data := buffer.Bytes()
	if len(data) != 64 {
		t.Errorf("expected Bytes() length 64, got %d", len(data))
	}

	// Memory should be zero-initialized by mmap.
	for index, value := range data {
		if value != 0 {
			t.Fatalf("expected zero at index %d, got %d", index, value)
		}
	}
}

func TestNew_ZeroSize(t *testing.T) {
	buffer, err := New(0)
	if err != nil {
		t.Fatalf("New(0) failed: %v", err)
	}
	if buffer.Len() != 0 || buffer.Cap() != 0 {
		t.Errorf("expected empty buffer, got len %d cap %d", buffer.Len(), buffer.Cap())
	}
	if len(buffer.Bytes()) != 0 {
		t.Error("expected empty Bytes()")
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("Close of empty buffer failed: %v", err)
	}
}

func TestNew_NegativeSize(t *testing.T) {
	_, err := New(-1)
	if err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestNewWithAllocator_AllocationFailure(t *testing.T) {
	allocator := &recordingAllocator{failAllocate: true}
	_, err := NewWithAllocator(16, allocator)
	if !errors.Is(err, errAllocationRefused) {
		t.Fatalf("expected allocation error, got %v", err)
	}
}

func TestNewFromBytes(t *testing.T) {
	source := []byte("super-secret-password")
	originalContent := string(source)

	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes failed: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != originalContent {
		t.Errorf("expected %q, got %q", originalContent, got)
	}

	// The source slice should have been zeroed.
	for index, value := range source {
		if value != 0 {
			t.Fatalf("source byte %d was not zeroed: got %d", index, value)
		}
	}
}

func TestNewFromBytes_Empty(t *testing.T) {
	_, err := NewFromBytes([]byte{})
	if err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestBuffer_WriteAndRead(t *testing.T) {
	buffer, err := New(16)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer buffer.Close()

	copy(buffer.Raw(), []byte("hello, secrets!"))

	if got := buffer.String(); got != "hello, secrets!\x00" {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestBuffer_SetLen(t *testing.T) {
	allocator := &recordingAllocator{}
	buffer, err := NewWithAllocator(16, allocator)
	if err != nil {
		t.Fatalf("NewWithAllocator failed: %v", err)
	}
	defer buffer.Close()

	copy(buffer.Raw(), []byte("passphrase-12345"))
	buffer.SetLen(10)

	if got := buffer.String(); got != "passphrase" {
		t.Errorf("String() after SetLen(10) = %q, want %q", got, "passphrase")
	}
	if buffer.Cap() != 16 {
		t.Errorf("Cap() after SetLen = %d, want 16", buffer.Cap())
	}
	if tail := buffer.Raw()[10:]; !allZero(tail) {
		t.Errorf("tail after shrink not zeroed: %q", tail)
	}
}

func TestBuffer_SetLen_OutOfRangePanics(t *testing.T) {
	buffer, err := NewWithAllocator(4, &recordingAllocator{})
	if err != nil {
		t.Fatalf("NewWithAllocator failed: %v", err)
	}
	defer buffer.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on SetLen beyond capacity")
		}
	}()
	buffer.SetLen(5)
}

func TestBuffer_Close_ZerosReleasedMemory(t *testing.T) {
	allocator := &recordingAllocator{}
	buffer, err := NewWithAllocator(32, allocator)
	if err != nil {
		t.Fatalf("NewWithAllocator failed: %v", err)
	}

	copy(buffer.Raw(), []byte("this should be zeroed"))
	buffer.SetLen(21)

	if err := buffer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if len(allocator.released) != 1 {
		t.Fatalf("expected 1 released region, got %d", len(allocator.released))
	}
	if !allZero(allocator.releasedSnapshot[0]) {
		t.Errorf("region held non-zero bytes when released: %q", allocator.releasedSnapshot[0])
	}
	if len(allocator.released[0]) != 32 {
		t.Errorf("released region length %d, want the full capacity 32", len(allocator.released[0]))
	}
	if buffer.data != nil {
		t.Error("expected data to be nil after Close")
	}
}

func TestBuffer_Close_Idempotent(t *testing.T) {
	allocator := &recordingAllocator{}
	buffer, err := NewWithAllocator(16, allocator)
	if err != nil {
		t.Fatalf("NewWithAllocator failed: %v", err)
	}

	if err := buffer.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if len(allocator.released) != 1 {
		t.Errorf("region released %d times, want 1", len(allocator.released))
	}
}

func TestBuffer_Clone(t *testing.T) {
	allocator := &recordingAllocator{}
	buffer, err := NewWithAllocator(8, allocator)
	if err != nil {
		t.Fatalf("NewWithAllocator failed: %v", err)
	}
	defer buffer.Close()
	copy(buffer.Raw(), []byte("hunter2!"))
	buffer.SetLen(7)

	clone, err := buffer.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}
	defer clone.Close()

	if clone.String() != "hunter2" {
		t.Errorf("clone content = %q, want %q", clone.String(), "hunter2")
	}
	if len(allocator.allocated) != 2 {
		t.Errorf("Clone did not allocate a new secret region (allocations: %d)", len(allocator.allocated))
	}
	if &clone.Bytes()[0] == &buffer.Bytes()[0] {
		t.Error("clone shares memory with the original")
	}
	if !buffer.Equal(clone) {
		t.Error("Equal(clone) = false, want true")
	}
}

func TestBuffer_Equal(t *testing.T) {
	first, _ := NewWithAllocator(3, &recordingAllocator{})
	second, _ := NewWithAllocator(3, &recordingAllocator{})
	defer first.Close()
	defer second.Close()

	copy(first.Raw(), "abc")
	copy(second.Raw(), "abd")
	if first.Equal(second) {
		t.Error("Equal reported different content as equal")
	}
	second.Raw()[2] = 'c'
	if !first.Equal(second) {
		t.Error("Equal reported identical content as different")
	}
}

func TestBuffer_WriteTo(t *testing.T) {
	buffer, _ := NewWithAllocator(5, &recordingAllocator{})
	defer buffer.Close()
	copy(buffer.Raw(), "token")

	var output bytes.Buffer
	written, err := buffer.WriteTo(&output)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if written != 5 || output.String() != "token" {
		t.Errorf("WriteTo wrote %d bytes %q, want 5 bytes %q", written, output.String(), "token")
	}
}

func TestBuffer_Bytes_PanicsAfterClose(t *testing.T) {
	buffer, err := New(16)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	buffer.Close()

	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("expected panic on Bytes() after Close")
		}
	}()

	buffer.Bytes()
}

func TestBuffer_String_PanicsAfterClose(t *testing.T) {
	buffer, err := New(16)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	buffer.Close()

	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatal("expected panic on String() after Close")
		}
	}()

	_ = buffer.String()
}
