// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codepoint

import "github.com/bureau-foundation/unitext/lib/texterror"

// Validate reports the first ill-formed surrogate in units: a high
// surrogate without a following low surrogate, or a low surrogate
// without a preceding high surrogate. It returns nil for well-formed
// UTF-16.
func Validate(units []uint16) error {
	for index := 0; index < len(units); index++ {
		unit := units[index]
		switch {
		case isHighSurrogate(unit):
			if index+1 >= len(units) || !isLowSurrogate(units[index+1]) {
				return texterror.Invalid("codepoint.Validate", index,
					"high surrogate 0x%04X not followed by a low surrogate", unit)
			}
			index++
		case isLowSurrogate(unit):
			return texterror.Invalid("codepoint.Validate", index,
				"low surrogate 0x%04X without a preceding high surrogate", unit)
		}
	}
	return nil
}

// Supplementary returns how many code points in units are encoded as
// surrogate pairs.
func Supplementary(units []uint16) int {
	return len(units) - CountCodePoints(units)
}
