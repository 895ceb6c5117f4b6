// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for unitext packages.
//
// [HeapAllocator] satisfies lib/secret's Allocator with ordinary heap
// memory and keeps a copy of every region as it was released, so tests
// can assert that secure buffers were wiped before release without
// mlock privileges. Regions are backed by uint64 words, so typed
// UTF-16 and code point views over them are aligned just as they are
// over page-aligned mmap regions.
//
// [AllZero] reports whether a released region was wiped.
//
// This package has no unitext-internal dependencies.
package testutil
