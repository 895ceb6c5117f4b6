// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package utf8bridge

import (
	"encoding/binary"
	"unicode/utf8"
	"unsafe"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/bureau-foundation/unitext/lib/codepoint"
	"github.com/bureau-foundation/unitext/lib/secret"
)

// Codec is the platform transcoding capability. Each direction has a
// measurement call and a fill call. A measurement of zero for
// non-empty input means the conversion cannot be performed. Fill
// writes at most len(dst) elements and returns how many it wrote.
type Codec interface {
	MeasureUTF8(src []uint16) int
	FillUTF8(dst []byte, src []uint16) int
	MeasureUTF16(src []byte) int
	FillUTF16(dst []uint16, src []byte) int
}

// TextCodec implements Codec with golang.org/x/text. Code units are
// viewed as native-endian UTF-16 bytes in place, so no intermediate
// copy of the text is made.
type TextCodec struct {
	// Strict makes measurement fail on ill-formed input (unpaired
	// surrogates, invalid UTF-8) instead of substituting U+FFFD.
	Strict bool
}

// measureChunk is the scratch size used while counting output bytes.
const measureChunk = 256

func nativeUTF16() encoding.Encoding {
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	}
	return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
}

func (c TextCodec) MeasureUTF8(src []uint16) int {
	if c.Strict && codepoint.Validate(src) != nil {
		return 0
	}
	return measure(nativeUTF16().NewDecoder(), unitBytes(src))
}

func (c TextCodec) FillUTF8(dst []byte, src []uint16) int {
	return fill(nativeUTF16().NewDecoder(), dst, unitBytes(src))
}

func (c TextCodec) MeasureUTF16(src []byte) int {
	if c.Strict && !utf8.Valid(src) {
		return 0
	}
	return measure(nativeUTF16().NewEncoder(), src) / 2
}

func (c TextCodec) FillUTF16(dst []uint16, src []byte) int {
	return fill(nativeUTF16().NewEncoder(), unitBytes(dst), src) / 2
}

// measure runs transformer over src into a reused scratch chunk and
// returns the total output length, or 0 if the transformer fails. The
// scratch held fragments of the converted text and is wiped.
func measure(transformer transform.Transformer, src []byte) int {
	scratch := make([]byte, measureChunk)
	defer secret.Zero(scratch)

	total := 0
	for {
		nDst, nSrc, err := transformer.Transform(scratch, src, true)
		total += nDst
		src = src[nSrc:]
		switch {
		case err == nil:
			return total
		case err == transform.ErrShortDst && (nDst > 0 || nSrc > 0):
			continue
		default:
			return 0
		}
	}
}

// fill runs transformer over src into dst in one call.
func fill(transformer transform.Transformer, dst, src []byte) int {
	nDst, _, err := transformer.Transform(dst, src, true)
	if err != nil {
		return 0
	}
	return nDst
}

// unitBytes views code units as their in-memory bytes.
func unitBytes(units []uint16) []byte {
	if len(units) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&units[0])), len(units)*2)
}
