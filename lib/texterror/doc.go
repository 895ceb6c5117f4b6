// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package texterror defines the error taxonomy shared by the unitext
// transcoding packages.
//
// Every fallible conversion returns an [*Error] carrying one of four
// [Kind] values:
//
//   - [InvalidEncoding] -- malformed UTF-16 (unpaired surrogate) or an
//     out-of-range code point
//   - [EncodingError] -- the UTF-8 encode path's sizing query failed
//   - [DecodingError] -- the UTF-8 decode path's sizing query failed
//   - [FormatError] -- the formatter's rendering primitive failed
//
// Callers match kinds with errors.Is against the sentinels
// [ErrInvalidEncoding], [ErrEncoding], [ErrDecoding], and [ErrFormat].
// The wrapped cause, if any, stays reachable through errors.Unwrap.
//
// This package has no unitext-internal dependencies.
package texterror
