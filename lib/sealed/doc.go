// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts secret text to age recipients.
//
// [Seal] takes UTF-8 text held in a [secret.Buffer] and returns base64
// age ciphertext addressed to one or more X25519 recipients. [Open]
// reverses it with a private key held in a secret.Buffer and returns
// the plaintext in a new secret.Buffer. [GenerateKeypair] creates a
// keypair whose private half is protected the same way.
//
// Plaintext and private keys never live in ordinary heap slices longer
// than the age API requires; heap copies made at that boundary are
// zeroed before returning.
package sealed
