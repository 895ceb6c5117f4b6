// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codepoint converts between UTF-16 code-unit sequences and
// flat code-point sequences, and counts code points independently of
// storage width.
//
// The counters presize output buffers:
//
//   - [CountCodePoints] -- code points in a UTF-16 sequence (no
//     validation; a high surrogate always consumes the next unit)
//   - [CountUnits] -- UTF-16 units needed for a code-point sequence
//
// The codec writes into caller-provided buffers ([Decode], [Encode],
// [WidenASCII]) or allocates ([DecodeUnits], [EncodePoints]), and every
// conversion has a secure form ([DecodeSecure], [EncodeSecure],
// [WidenASCIISecure]) whose output lives in a [secret.Seq].
//
// Decoding rejects a high surrogate that is not immediately followed by
// a low surrogate. A lone low surrogate is passed through as its own
// code point; [Validate] is the strict check that rejects both.
//
// Code points are stored as Unicode scalar values, so U+1F600 decodes
// to 0x1F600 and encodes back to the pair 0xD83D 0xDE00.
package codepoint
