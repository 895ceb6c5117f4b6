// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides wipe-on-release buffers for sensitive text
// such as passwords and passphrases.
//
// [Buffer] obtains its backing memory from an [Allocator]. The default
// allocator ([LockedAllocator]) maps anonymous memory outside the Go
// heap via mmap(MAP_ANONYMOUS), locks it into physical RAM via mlock
// (preventing swap), and marks it excluded from core dumps via
// madvise(MADV_DONTDUMP). On Close, every byte of the region is zeroed
// before the region is handed back to the allocator, whichever path led
// to the Close. Because the memory lives outside the Go heap, the
// garbage collector cannot copy or relocate it.
//
// A Buffer has a fixed capacity chosen at construction and a logical
// length that the filler assigns with [Buffer.SetLen] once the real
// content size is known. Two-call transcoders size a buffer from a
// measurement, fill it through [Buffer.Raw], and then trim it.
//
// Constructors:
//
//   - [New] -- allocates a zero-filled buffer of a given size
//   - [NewWithAllocator] -- same, with an explicit allocator
//   - [NewFromBytes] -- copies into protected memory, zeros the source
//   - [ReadFromPath] -- reads from a file or stdin, trimmed
//
// [Seq] is a typed view over a Buffer for 16- and 32-bit text units,
// so UTF-16 and code-point sequences get the same guarantees as bytes.
//
// Buffers are never copied implicitly. [Buffer.Clone] and [Seq.Clone]
// are the only copy operations and each allocates a new protected
// region. [Buffer.Equal] uses constant-time comparison.
// [Buffer.WriteTo] implements io.WriterTo. After Close, any access
// panics. Close is idempotent.
//
// Depends on golang.org/x/sys/unix. No unitext-internal dependencies.
package secret
