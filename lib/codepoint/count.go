// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codepoint

const (
	surrogateMin     = 0xD800
	highSurrogateMax = 0xDBFF
	lowSurrogateMin  = 0xDC00
	surrogateMax     = 0xDFFF

	// supplementaryBase is the first code point that needs a pair.
	supplementaryBase = 0x10000

	// MaxCodePoint is the largest Unicode scalar value.
	MaxCodePoint = 0x10FFFF
)

func isHighSurrogate(unit uint16) bool {
	return unit >= surrogateMin && unit <= highSurrogateMax
}

func isLowSurrogate(unit uint16) bool {
	return unit >= lowSurrogateMin && unit <= surrogateMax
}

// CountCodePoints returns the number of code points units represents.
// Each high surrogate consumes itself and the unit after it; every
// other unit counts as one. This is a presizing pass, not a validator:
// the unit after a high surrogate is not inspected.
func CountCodePoints(units []uint16) int {
	count := 0
	for index := 0; index < len(units); index++ {
		if isHighSurrogate(units[index]) {
			index++
		}
		count++
	}
	return count
}

// CountUnits returns the number of UTF-16 code units needed to encode
// points: one per code point, plus one more for each point above 0xFFFF.
func CountUnits(points []rune) int {
	count := len(points)
	for _, point := range points {
		if point > 0xFFFF {
			count++
		}
	}
	return count
}
