// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration for unitext's
// machine-readable output, such as the inspection reports written by
// bureau-textconv.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same report always produces identical bytes, so reports can be
// compared or hashed directly.
//
//	data, err := codec.Marshal(report)
//	err = codec.Unmarshal(data, &report)
//
// [Diagnose] renders CBOR in diagnostic notation for debugging.
//
// Depends on github.com/fxamacker/cbor/v2.
package codec
