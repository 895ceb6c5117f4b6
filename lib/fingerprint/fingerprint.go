// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package fingerprint computes BLAKE3 keyed digests of text so that two
// secrets can be compared, or a secret identified in logs, without
// revealing the text itself.
//
// Digests are domain-separated per encoding: the same code points give
// the same [Digest] only when hashed in the same [Domain]. Secure
// inputs are hashed in place, without a heap copy.
package fingerprint

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/unitext/lib/secret"
)

// Digest is a 32-byte BLAKE3 keyed digest.
type Digest [32]byte

// String returns the lowercase hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 8 bytes in hex, for log lines and terminal
// output where the full digest is noise.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:8])
}

// Domain is a 32-byte BLAKE3 key naming what the hashed bytes are. The
// byte values are ASCII, zero-padded, so they read cleanly in hex dumps.
type Domain [32]byte

var (
	// UTF8 keys digests of UTF-8 byte sequences.
	UTF8 = Domain{
		'b', 'u', 'r', 'e', 'a', 'u', '.', 'u', 'n', 'i', 't', 'e', 'x', 't', '.',
		'u', 't', 'f', '8', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	// UTF16 keys digests of native-endian UTF-16 code units.
	UTF16 = Domain{
		'b', 'u', 'r', 'e', 'a', 'u', '.', 'u', 'n', 'i', 't', 'e', 'x', 't', '.',
		'u', 't', 'f', '1', '6', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Sum computes the keyed digest of data in domain.
func Sum(domain Domain, data []byte) Digest {
	// NewKeyed only fails for a key that is not 32 bytes long.
	hasher, err := blake3.NewKeyed(domain[:])
	if err != nil {
		panic("fingerprint: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// Buffer computes the UTF-8-domain digest of a secret buffer's content.
func Buffer(buffer *secret.Buffer) Digest {
	return Sum(UTF8, buffer.Bytes())
}

// Units computes the UTF-16-domain digest of a secret UTF-16 sequence.
func Units(units *secret.Seq[uint16]) Digest {
	return Sum(UTF16, units.Buffer().Bytes())
}
