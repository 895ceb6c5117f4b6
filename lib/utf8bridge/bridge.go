// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package utf8bridge

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/unitext/lib/secret"
	"github.com/bureau-foundation/unitext/lib/texterror"
)

// Config configures a Bridge. Zero fields take defaults.
type Config struct {
	// Codec performs the byte-level transcoding. Default: TextCodec{}.
	Codec Codec

	// Allocator backs the secure variants. Default: the locked mmap
	// allocator from lib/secret.
	Allocator secret.Allocator

	// Logger receives debug records about sizing. Default: discard.
	Logger *slog.Logger
}

// Bridge converts between UTF-16 and UTF-8 using the measure-then-fill
// protocol. A Bridge holds no mutable state and is safe for concurrent
// use if its Codec is.
type Bridge struct {
	codec     Codec
	allocator secret.Allocator
	logger    *slog.Logger
}

// New creates a Bridge from config.
func New(config Config) *Bridge {
	bridge := &Bridge{
		codec:     config.Codec,
		allocator: config.Allocator,
		logger:    config.Logger,
	}
	if bridge.codec == nil {
		bridge.codec = TextCodec{}
	}
	if bridge.allocator == nil {
		bridge.allocator = secret.LockedAllocator()
	}
	if bridge.logger == nil {
		bridge.logger = slog.New(slog.DiscardHandler)
	}
	return bridge
}

// Encode converts UTF-16 code units to UTF-8. Empty input yields nil.
func (b *Bridge) Encode(units []uint16) ([]byte, error) {
	if len(units) == 0 {
		return nil, nil
	}

	const op = "utf8bridge.Encode"
	length, err := b.measureUTF8(op, units)
	if err != nil {
		return nil, err
	}

	output := make([]byte, length)
	written := b.codec.FillUTF8(output, units)
	if err := b.checkFill(op, texterror.EncodingError, written, length); err != nil {
		return nil, err
	}
	return output[:written], nil
}

// EncodeSecure converts UTF-16 code units to UTF-8 in a secret buffer.
// The buffer is wiped and released on every failure after allocation.
func (b *Bridge) EncodeSecure(units []uint16) (*secret.Buffer, error) {
	if len(units) == 0 {
		return secret.NewWithAllocator(0, b.allocator)
	}

	const op = "utf8bridge.EncodeSecure"
	length, err := b.measureUTF8(op, units)
	if err != nil {
		return nil, err
	}

	output, err := secret.NewWithAllocator(length, b.allocator)
	if err != nil {
		return nil, fmt.Errorf("allocating secure UTF-8 buffer: %w", err)
	}
	written := b.codec.FillUTF8(output.Raw(), units)
	if err := b.checkFill(op, texterror.EncodingError, written, length); err != nil {
		output.Close()
		return nil, err
	}
	output.SetLen(written)
	return output, nil
}

// Decode converts UTF-8 bytes to UTF-16 code units. Empty input yields
// nil.
func (b *Bridge) Decode(data []byte) ([]uint16, error) {
	if len(data) == 0 {
		return nil, nil
	}

	const op = "utf8bridge.Decode"
	length, err := b.measureUTF16(op, data)
	if err != nil {
		return nil, err
	}

	output := make([]uint16, length)
	written := b.codec.FillUTF16(output, data)
	if err := b.checkFill(op, texterror.DecodingError, written, length); err != nil {
		return nil, err
	}
	return output[:written], nil
}

// DecodeSecure converts UTF-8 bytes to UTF-16 code units in a secret
// sequence. The sequence is wiped and released on every failure after
// allocation.
func (b *Bridge) DecodeSecure(data []byte) (*secret.Seq[uint16], error) {
	if len(data) == 0 {
		return secret.NewSeqWithAllocator[uint16](0, b.allocator)
	}

	const op = "utf8bridge.DecodeSecure"
	length, err := b.measureUTF16(op, data)
	if err != nil {
		return nil, err
	}

	output, err := secret.NewSeqWithAllocator[uint16](length, b.allocator)
	if err != nil {
		return nil, fmt.Errorf("allocating secure UTF-16 sequence: %w", err)
	}
	written := b.codec.FillUTF16(output.Raw(), data)
	if err := b.checkFill(op, texterror.DecodingError, written, length); err != nil {
		output.Close()
		return nil, err
	}
	output.SetLen(written)
	return output, nil
}

func (b *Bridge) measureUTF8(op string, units []uint16) (int, error) {
	length := b.codec.MeasureUTF8(units)
	if length <= 0 {
		b.logger.Debug("UTF-8 sizing query failed", "op", op, "units", len(units), "measured", length)
		return 0, texterror.Encoding(op, "sizing query returned %d for %d code units", length, len(units))
	}
	return length, nil
}

func (b *Bridge) measureUTF16(op string, data []byte) (int, error) {
	length := b.codec.MeasureUTF16(data)
	if length <= 0 {
		b.logger.Debug("UTF-16 sizing query failed", "op", op, "bytes", len(data), "measured", length)
		return 0, texterror.Decoding(op, "sizing query returned %d for %d bytes", length, len(data))
	}
	return length, nil
}

// checkFill rejects a fill that wrote nothing or more than it measured.
// A short fill is accepted and trimmed.
func (b *Bridge) checkFill(op string, kind texterror.Kind, written, measured int) error {
	if written > 0 && written <= measured {
		if written < measured {
			b.logger.Debug("fill wrote less than measured", "op", op, "measured", measured, "written", written)
		}
		return nil
	}
	return &texterror.Error{
		Kind:   kind,
		Op:     op,
		Offset: -1,
		Detail: fmt.Sprintf("fill wrote %d elements, measured %d", written, measured),
	}
}

var defaultBridge = New(Config{})

// Encode converts UTF-16 to UTF-8 with the default Bridge.
func Encode(units []uint16) ([]byte, error) { return defaultBridge.Encode(units) }

// EncodeSecure converts UTF-16 to UTF-8 in locked memory with the
// default Bridge.
func EncodeSecure(units []uint16) (*secret.Buffer, error) { return defaultBridge.EncodeSecure(units) }

// Decode converts UTF-8 to UTF-16 with the default Bridge.
func Decode(data []byte) ([]uint16, error) { return defaultBridge.Decode(data) }

// DecodeSecure converts UTF-8 to UTF-16 in locked memory with the
// default Bridge.
func DecodeSecure(data []byte) (*secret.Seq[uint16], error) { return defaultBridge.DecodeSecure(data) }
