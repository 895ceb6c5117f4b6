// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// asciiSpace is trimmed from secrets read from files and streams.
// Non-ASCII spaces (U+00A0, U+3000, ...) are part of the secret.
const asciiSpace = " \t\r\n\v\f"

// ReadFromPath reads a secret from a file, or the first line of stdin
// if path is "-". Surrounding ASCII whitespace is trimmed. The file
// contents are zeroed on the heap once copied into the returned
// locked buffer, which the caller must close.
func ReadFromPath(path string) (*Buffer, error) {
	if path == "-" {
		return ReadLine(os.Stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defer Zero(data)
	return fromTrimmed(data)
}

// ReadLine reads r to the end and keeps only its first line, with
// surrounding ASCII whitespace trimmed. Everything read is zeroed on
// the heap before ReadLine returns.
func ReadLine(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	defer Zero(data)
	if err != nil {
		return nil, fmt.Errorf("reading secret: %w", err)
	}
	if newline := bytes.IndexByte(data, '\n'); newline >= 0 {
		data = data[:newline]
	}
	return fromTrimmed(data)
}

func fromTrimmed(data []byte) (*Buffer, error) {
	trimmed := bytes.Trim(data, asciiSpace)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("secret is empty")
	}
	return NewFromBytes(trimmed)
}
