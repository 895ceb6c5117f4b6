// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codepoint

import (
	"errors"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/bureau-foundation/unitext/lib/testutil"
	"github.com/bureau-foundation/unitext/lib/texterror"
)

// scalarValue draws a Unicode scalar value: any code point except the
// surrogate range.
func scalarValue() *rapid.Generator[rune] {
	return rapid.OneOf(
		rapid.Int32Range(0, 0x7F),
		rapid.Int32Range(0x80, 0xD7FF),
		rapid.Int32Range(0xE000, 0xFFFF),
		rapid.Int32Range(0x10000, MaxCodePoint),
	)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		units    []uint16
		expected []rune
	}{
		{name: "empty", units: nil, expected: nil},
		{name: "ascii", units: []uint16{'a', 'b', 'c'}, expected: []rune{'a', 'b', 'c'}},
		{name: "bmp", units: []uint16{0x00E9, 0x4E2D}, expected: []rune{0x00E9, 0x4E2D}},
		{name: "emoji", units: []uint16{0xD83D, 0xDE00}, expected: []rune{0x1F600}},
		{name: "max code point", units: []uint16{0xDBFF, 0xDFFF}, expected: []rune{0x10FFFF}},
		{name: "mixed", units: []uint16{'x', 0xD83D, 0xDE00, 'y'}, expected: []rune{'x', 0x1F600, 'y'}},
		{name: "lone low surrogate passes through", units: []uint16{'a', 0xDC00, 'b'}, expected: []rune{'a', 0xDC00, 'b'}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := DecodeUnits(test.units)
			if err != nil {
				t.Fatalf("DecodeUnits(%#v) error: %v", test.units, err)
			}
			if !slices.Equal(got, test.expected) {
				t.Errorf("DecodeUnits(%#v) = %#v, want %#v", test.units, got, test.expected)
			}
		})
	}
}

func TestDecode_UnpairedHighSurrogate(t *testing.T) {
	tests := []struct {
		name   string
		units  []uint16
		offset int
	}{
		{name: "followed by ascii", units: []uint16{0xD800, 'A'}, offset: 0},
		{name: "at end", units: []uint16{'A', 0xD800}, offset: 1},
		{name: "followed by high", units: []uint16{'A', 'B', 0xD800, 0xD800, 0xDC00}, offset: 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeUnits(test.units)
			if !errors.Is(err, texterror.ErrInvalidEncoding) {
				t.Fatalf("DecodeUnits(%#v) error = %v, want InvalidEncoding", test.units, err)
			}
			var textError *texterror.Error
			if !errors.As(err, &textError) || textError.Offset != test.offset {
				t.Errorf("error offset = %v, want %d", err, test.offset)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		points   []rune
		expected []uint16
	}{
		{name: "empty", points: nil, expected: nil},
		{name: "ascii", points: []rune("hi"), expected: []uint16{'h', 'i'}},
		{name: "emoji", points: []rune{0x1F600}, expected: []uint16{0xD83D, 0xDE00}},
		{name: "first supplementary", points: []rune{0x10000}, expected: []uint16{0xD800, 0xDC00}},
		{name: "last bmp", points: []rune{0xFFFF}, expected: []uint16{0xFFFF}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := EncodePoints(test.points)
			if err != nil {
				t.Fatalf("EncodePoints(%#v) error: %v", test.points, err)
			}
			if !slices.Equal(got, test.expected) {
				t.Errorf("EncodePoints(%#v) = %#04x, want %#04x", test.points, got, test.expected)
			}
		})
	}
}

func TestEncode_OutOfRange(t *testing.T) {
	for _, point := range []rune{-1, MaxCodePoint + 1, 0x7FFFFFFF} {
		_, err := EncodePoints([]rune{'a', point})
		if !errors.Is(err, texterror.ErrInvalidEncoding) {
			t.Errorf("EncodePoints(0x%X) error = %v, want InvalidEncoding", point, err)
		}
	}
}

func TestRoundTrip_CodePoints(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		points := rapid.SliceOf(scalarValue()).Draw(t, "points")
		points = append(points, rapid.Int32Range(0x10000, MaxCodePoint).Draw(t, "supplementary"))

		units, err := EncodePoints(points)
		if err != nil {
			t.Fatalf("EncodePoints: %v", err)
		}
		if len(units) != CountUnits(points) {
			t.Fatalf("encoded %d units, CountUnits says %d", len(units), CountUnits(points))
		}

		decoded, err := DecodeUnits(units)
		if err != nil {
			t.Fatalf("DecodeUnits: %v", err)
		}
		if !slices.Equal(decoded, points) {
			t.Fatalf("round trip changed %#v into %#v", points, decoded)
		}
	})
}

func TestRoundTrip_Units(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		points := rapid.SliceOf(scalarValue()).Draw(t, "points")
		units, err := EncodePoints(points)
		if err != nil {
			t.Fatalf("EncodePoints: %v", err)
		}

		decoded, err := DecodeUnits(units)
		if err != nil {
			t.Fatalf("DecodeUnits(%#v): %v", units, err)
		}
		if CountCodePoints(units) != len(decoded) {
			t.Fatalf("CountCodePoints = %d, decoded %d code points", CountCodePoints(units), len(decoded))
		}
		if CountCodePoints(units) > len(units) {
			t.Fatalf("CountCodePoints %d exceeds unit count %d", CountCodePoints(units), len(units))
		}

		reencoded, err := EncodePoints(decoded)
		if err != nil {
			t.Fatalf("EncodePoints: %v", err)
		}
		if !slices.Equal(reencoded, units) {
			t.Fatalf("round trip changed %#04x into %#04x", units, reencoded)
		}
	})
}

func TestRoundTrip_LoneLowSurrogatesPreserved(t *testing.T) {
	units := []uint16{0xDC00, 'a', 0xDFFF}
	decoded, err := DecodeUnits(units)
	if err != nil {
		t.Fatalf("DecodeUnits: %v", err)
	}
	reencoded, err := EncodePoints(decoded)
	if err != nil {
		t.Fatalf("EncodePoints: %v", err)
	}
	if !slices.Equal(reencoded, units) {
		t.Errorf("round trip changed %#04x into %#04x", units, reencoded)
	}
}

func TestDecodeSecure(t *testing.T) {
	allocator := &testutil.HeapAllocator{}
	points, err := DecodeSecure([]uint16{'p', 0xD83D, 0xDE00, 'w'}, allocator)
	if err != nil {
		t.Fatalf("DecodeSecure: %v", err)
	}
	if !slices.Equal(points.Elements(), []rune{'p', 0x1F600, 'w'}) {
		t.Errorf("DecodeSecure elements = %#v", points.Elements())
	}
	if err := points.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(allocator.Released) != 1 || !testutil.AllZero(allocator.Released[0]) {
		t.Errorf("secure code points not wiped on release: %v", allocator.Released)
	}
}

func TestDecodeSecure_FailureWipes(t *testing.T) {
	allocator := &testutil.HeapAllocator{}
	_, err := DecodeSecure([]uint16{'s', 'e', 0xD800, 'x'}, allocator)
	if !errors.Is(err, texterror.ErrInvalidEncoding) {
		t.Fatalf("DecodeSecure error = %v, want InvalidEncoding", err)
	}
	if len(allocator.Released) != 1 {
		t.Fatalf("partially filled sequence was not released (releases: %d)", len(allocator.Released))
	}
	if !testutil.AllZero(allocator.Released[0]) {
		t.Errorf("partially filled sequence not wiped: %v", allocator.Released[0])
	}
}

func TestEncodeSecure(t *testing.T) {
	allocator := &testutil.HeapAllocator{}
	units, err := EncodeSecure([]rune{0x1F600, 'k'}, allocator)
	if err != nil {
		t.Fatalf("EncodeSecure: %v", err)
	}
	defer units.Close()
	if !slices.Equal(units.Elements(), []uint16{0xD83D, 0xDE00, 'k'}) {
		t.Errorf("EncodeSecure elements = %#04x", units.Elements())
	}
}

func TestSecure_EmptyInput(t *testing.T) {
	allocator := &testutil.HeapAllocator{}
	points, err := DecodeSecure(nil, allocator)
	if err != nil {
		t.Fatalf("DecodeSecure(nil): %v", err)
	}
	defer points.Close()
	if points.Len() != 0 {
		t.Errorf("DecodeSecure(nil) length = %d, want 0", points.Len())
	}

	units, err := EncodeSecure(nil, allocator)
	if err != nil {
		t.Fatalf("EncodeSecure(nil): %v", err)
	}
	defer units.Close()
	if units.Len() != 0 {
		t.Errorf("EncodeSecure(nil) length = %d, want 0", units.Len())
	}
}
