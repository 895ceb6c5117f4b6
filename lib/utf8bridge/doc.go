// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package utf8bridge converts between UTF-16 code-unit sequences and
// UTF-8 bytes through a two-call platform capability.
//
// The byte-level transcoding belongs to a [Codec]: a measurement call
// reports the exact destination length (zero meaning failure), and a
// fill call performs the conversion into a buffer of that length. The
// destination length of a variable-width encoding cannot be derived
// from the source length alone, so asking the same capability that
// fills keeps sizing and filling consistent.
//
// [Bridge] owns everything around the capability: buffer sizing, error
// mapping, and the secure variants. [Bridge.Encode] and
// [Bridge.EncodeSecure] go UTF-16 to UTF-8; [Bridge.Decode] and
// [Bridge.DecodeSecure] go UTF-8 to UTF-16. Empty input always yields
// empty output. A zero measurement fails with an EncodingError or
// DecodingError from lib/texterror.
//
// [TextCodec] is the default capability, backed by
// golang.org/x/text/encoding/unicode. It substitutes U+FFFD for
// ill-formed input unless Strict is set.
package utf8bridge
