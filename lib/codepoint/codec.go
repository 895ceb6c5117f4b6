// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codepoint

import (
	"fmt"

	"github.com/bureau-foundation/unitext/lib/secret"
	"github.com/bureau-foundation/unitext/lib/texterror"
)

// Decode writes the code points of units into dst and returns how many
// it wrote. dst must hold at least CountCodePoints(units) elements.
//
// A high surrogate must be immediately followed by a low surrogate;
// otherwise Decode fails with an InvalidEncoding error naming the offset
// of the high surrogate. A lone low surrogate is copied through as its
// own code point.
func Decode(dst []rune, units []uint16) (int, error) {
	written := 0
	for index := 0; index < len(units); index++ {
		unit := units[index]
		if isHighSurrogate(unit) {
			if index+1 >= len(units) || !isLowSurrogate(units[index+1]) {
				return written, texterror.Invalid("codepoint.Decode", index,
					"high surrogate 0x%04X not followed by a low surrogate", unit)
			}
			dst[written] = combine(unit, units[index+1])
			index++
		} else {
			dst[written] = rune(unit)
		}
		written++
	}
	return written, nil
}

// DecodeUnits returns the code points of units in a new slice. Empty
// input yields a nil slice.
func DecodeUnits(units []uint16) ([]rune, error) {
	if len(units) == 0 {
		return nil, nil
	}
	points := make([]rune, CountCodePoints(units))
	written, err := Decode(points, units)
	if err != nil {
		return nil, err
	}
	return points[:written], nil
}

// DecodeSecure decodes units into a secret sequence from allocator (nil
// selects the locked allocator). On failure the partially filled
// sequence is wiped before the error is returned.
func DecodeSecure(units []uint16, allocator secret.Allocator) (*secret.Seq[rune], error) {
	points, err := secret.NewSeqWithAllocator[rune](CountCodePoints(units), allocator)
	if err != nil {
		return nil, fmt.Errorf("allocating secure code points: %w", err)
	}
	written, err := Decode(points.Raw(), units)
	if err != nil {
		points.Close()
		return nil, err
	}
	points.SetLen(written)
	return points, nil
}

// Encode writes the UTF-16 form of points into dst and returns how many
// units it wrote. dst must hold at least CountUnits(points) elements.
// Points above 0xFFFF become a high/low surrogate pair, high first.
// Points outside [0, MaxCodePoint] fail with InvalidEncoding.
func Encode(dst []uint16, points []rune) (int, error) {
	written := 0
	for index, point := range points {
		switch {
		case point < 0 || point > MaxCodePoint:
			return written, texterror.Invalid("codepoint.Encode", index,
				"code point 0x%X outside the Unicode range", point)
		case point < supplementaryBase:
			dst[written] = uint16(point)
			written++
		default:
			high, low := split(point)
			dst[written] = high
			dst[written+1] = low
			written += 2
		}
	}
	return written, nil
}

// EncodePoints returns the UTF-16 form of points in a new slice. Empty
// input yields a nil slice.
func EncodePoints(points []rune) ([]uint16, error) {
	if len(points) == 0 {
		return nil, nil
	}
	units := make([]uint16, CountUnits(points))
	written, err := Encode(units, points)
	if err != nil {
		return nil, err
	}
	return units[:written], nil
}

// EncodeSecure encodes points into a secret UTF-16 sequence from
// allocator (nil selects the locked allocator).
func EncodeSecure(points []rune, allocator secret.Allocator) (*secret.Seq[uint16], error) {
	units, err := secret.NewSeqWithAllocator[uint16](CountUnits(points), allocator)
	if err != nil {
		return nil, fmt.Errorf("allocating secure code units: %w", err)
	}
	written, err := Encode(units.Raw(), points)
	if err != nil {
		units.Close()
		return nil, err
	}
	units.SetLen(written)
	return units, nil
}

// combine joins a surrogate pair into its code point.
func combine(high, low uint16) rune {
	return (rune(high)-surrogateMin)<<10 | (rune(low) - lowSurrogateMin) + supplementaryBase
}

// split is the inverse of combine for points in the supplementary planes.
func split(point rune) (high, low uint16) {
	offset := point - supplementaryBase
	return uint16(surrogateMin + (offset>>10)&0x3FF), uint16(lowSurrogateMin + offset&0x3FF)
}
