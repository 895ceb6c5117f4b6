// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/bureau-foundation/unitext/lib/codepoint"
	"github.com/bureau-foundation/unitext/lib/config"
	"github.com/bureau-foundation/unitext/lib/texterror"
	"github.com/bureau-foundation/unitext/lib/utf8bridge"
)

// textEncoding names a byte serialization of text.
type textEncoding string

const (
	encodingUTF8    textEncoding = "utf8"
	encodingUTF16LE textEncoding = "utf16le"
	encodingUTF16BE textEncoding = "utf16be"
	encodingUTF32LE textEncoding = "utf32le"
	encodingUTF32BE textEncoding = "utf32be"
)

func parseEncoding(name string) (textEncoding, error) {
	if !slices.Contains(config.Encodings, name) {
		return "", fmt.Errorf("unknown encoding %q (want one of %v)", name, config.Encodings)
	}
	return textEncoding(name), nil
}

func (e textEncoding) byteOrder() interface {
	binary.ByteOrder
	binary.AppendByteOrder
} {
	switch e {
	case encodingUTF16BE, encodingUTF32BE:
		return binary.BigEndian
	default:
		return binary.LittleEndian
	}
}

// transcoder moves text between byte encodings through UTF-16 code
// units. In strict mode unpaired surrogates and invalid UTF-8 are
// errors; otherwise lone surrogates pass through where the target
// encoding can carry them and are replaced with U+FFFD in UTF-8.
type transcoder struct {
	strict bool
	bridge *utf8bridge.Bridge
}

func newTranscoder(strict bool) *transcoder {
	return &transcoder{
		strict: strict,
		bridge: utf8bridge.New(utf8bridge.Config{
			Codec: utf8bridge.TextCodec{Strict: strict},
		}),
	}
}

// decode converts data in encoding to UTF-16 code units.
func (t *transcoder) decode(encoding textEncoding, data []byte) ([]uint16, error) {
	var units []uint16
	switch encoding {
	case encodingUTF8:
		decoded, err := t.bridge.Decode(data)
		if err != nil {
			return nil, err
		}
		units = decoded
	case encodingUTF16LE, encodingUTF16BE:
		if len(data)%2 != 0 {
			return nil, texterror.Invalid("decode "+string(encoding), len(data)-1, "odd byte count %d", len(data))
		}
		order := encoding.byteOrder()
		units = make([]uint16, len(data)/2)
		for i := range units {
			units[i] = order.Uint16(data[2*i:])
		}
	case encodingUTF32LE, encodingUTF32BE:
		if len(data)%4 != 0 {
			return nil, texterror.Invalid("decode "+string(encoding), len(data)-len(data)%4, "byte count %d is not a multiple of 4", len(data))
		}
		order := encoding.byteOrder()
		points := make([]rune, len(data)/4)
		for i := range points {
			points[i] = rune(order.Uint32(data[4*i:]))
			if t.strict && points[i] >= 0xD800 && points[i] <= 0xDFFF {
				return nil, texterror.Invalid("decode "+string(encoding), 4*i, "surrogate code point U+%04X", points[i])
			}
		}
		encoded, err := codepoint.EncodePoints(points)
		if err != nil {
			return nil, err
		}
		units = encoded
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}

	if t.strict {
		if err := codepoint.Validate(units); err != nil {
			return nil, err
		}
	}
	return units, nil
}

// encode serializes UTF-16 code units in encoding.
func (t *transcoder) encode(encoding textEncoding, units []uint16) ([]byte, error) {
	if t.strict {
		if err := codepoint.Validate(units); err != nil {
			return nil, err
		}
	}

	switch encoding {
	case encodingUTF8:
		return t.bridge.Encode(units)
	case encodingUTF16LE, encodingUTF16BE:
		order := encoding.byteOrder()
		data := make([]byte, 0, 2*len(units))
		for _, unit := range units {
			data = order.AppendUint16(data, unit)
		}
		return data, nil
	case encodingUTF32LE, encodingUTF32BE:
		points, err := codepoint.DecodeUnits(units)
		if err != nil {
			return nil, err
		}
		order := encoding.byteOrder()
		data := make([]byte, 0, 4*len(points))
		for _, point := range points {
			data = order.AppendUint32(data, uint32(point))
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}
