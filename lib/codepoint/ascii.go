// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codepoint

import (
	"fmt"

	"github.com/bureau-foundation/unitext/lib/secret"
)

// WidenASCII widens each byte of src to one code point in dst and
// returns len(src). dst must hold len(src) elements. There is no
// multi-byte logic: use it only when src is known to be single-byte.
func WidenASCII(dst []rune, src []byte) int {
	for index, value := range src {
		dst[index] = rune(value)
	}
	return len(src)
}

// WidenASCIIString is the allocating form of WidenASCII for strings.
func WidenASCIIString(s string) []rune {
	if s == "" {
		return nil
	}
	points := make([]rune, len(s))
	for index := 0; index < len(s); index++ {
		points[index] = rune(s[index])
	}
	return points
}

// WidenASCIISecure widens src into a secret code-point sequence.
func WidenASCIISecure(src []byte, allocator secret.Allocator) (*secret.Seq[rune], error) {
	points, err := secret.NewSeqWithAllocator[rune](len(src), allocator)
	if err != nil {
		return nil, fmt.Errorf("allocating secure code points: %w", err)
	}
	WidenASCII(points.Raw(), src)
	return points, nil
}
