// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codepoint

// FromString returns the UTF-16 code units of s. Invalid UTF-8 in s
// becomes U+FFFD, as with a range loop over the string.
func FromString(s string) []uint16 {
	if s == "" {
		return nil
	}
	points := []rune(s)
	units := make([]uint16, CountUnits(points))
	// Points from a range over a string are always in range.
	written, _ := Encode(units, points)
	return units[:written]
}

// ToString decodes units into a Go string. It fails on the same input
// Decode rejects. A lone low surrogate, which has no UTF-8 form, comes
// out as U+FFFD.
func ToString(units []uint16) (string, error) {
	points, err := DecodeUnits(units)
	if err != nil {
		return "", err
	}
	return string(points), nil
}
