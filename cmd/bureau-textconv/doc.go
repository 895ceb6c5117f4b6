// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bureau-textconv converts, counts, and fingerprints text across UTF-8,
// UTF-16, and UTF-32, and renders format templates through the growable
// formatter.
//
// Subcommands:
//
//   - convert: transcode a file or stdin between encodings
//   - count: print code unit and code point counts
//   - inspect: the same counts as a text, JSON, or CBOR report
//   - secret: read a secret into locked memory, round-trip it through
//     UTF-16 and code points, and print its fingerprint or seal it
//     with age
//   - format: render a template with integer and string arguments
//   - version: print build information
//
// Configuration is read from --config or BUREAU_TEXTCONV_CONFIG. Flags
// override the file.
package main
