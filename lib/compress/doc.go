// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress wraps transcoded text in a zstd or LZ4 frame, and
// recognizes those frames on input by their magic numbers.
//
// Both formats are self-delimiting frames (not raw blocks), so a
// compressed file produced here can be read back by the standard zstd
// and lz4 command-line tools.
package compress
