// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

// Zero overwrites every byte of data with zero.
func Zero(data []byte) {
	clear(data)
}

// ZeroUnits overwrites every element of units with zero.
func ZeroUnits[T Unit](units []T) {
	clear(units)
}
