// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package texterror

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a transcoding failure. Callers branch on the kind
// rather than parsing message text.
type Kind string

const (
	// InvalidEncoding indicates malformed input to the surrogate codec:
	// a high surrogate not followed by a low surrogate, a lone low
	// surrogate under strict validation, or a code point outside the
	// Unicode range.
	InvalidEncoding Kind = "invalid_encoding"

	// EncodingError indicates the UTF-8 encode path could not size or
	// fill its output.
	EncodingError Kind = "encoding_error"

	// DecodingError indicates the UTF-8 decode path could not size or
	// fill its output.
	DecodingError Kind = "decoding_error"

	// FormatError indicates the formatter's rendering primitive
	// reported an unrecoverable failure.
	FormatError Kind = "format_error"
)

// Error is the error type returned by every unitext conversion.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Op names the operation that failed, e.g. "codepoint.Decode".
	Op string

	// Offset is the index of the offending element in the input, or -1
	// when the failure is not tied to a position.
	Offset int

	// Detail is a human-readable description of what went wrong.
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

// Error formats as "op: kind at offset N: detail (cause)".
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))
	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(" (")
		b.WriteString(e.Err.Error())
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind. This lets
// errors.Is(err, ErrInvalidEncoding) match any InvalidEncoding error
// regardless of operation or offset.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidEncoding = &Error{Kind: InvalidEncoding, Offset: -1}
	ErrEncoding        = &Error{Kind: EncodingError, Offset: -1}
	ErrDecoding        = &Error{Kind: DecodingError, Offset: -1}
	ErrFormat          = &Error{Kind: FormatError, Offset: -1}
)

// Invalid creates an InvalidEncoding error at the given input offset.
func Invalid(op string, offset int, format string, args ...any) *Error {
	return &Error{Kind: InvalidEncoding, Op: op, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}

// Encoding creates an EncodingError.
func Encoding(op string, format string, args ...any) *Error {
	return &Error{Kind: EncodingError, Op: op, Offset: -1, Detail: fmt.Sprintf(format, args...)}
}

// Decoding creates a DecodingError.
func Decoding(op string, format string, args ...any) *Error {
	return &Error{Kind: DecodingError, Op: op, Offset: -1, Detail: fmt.Sprintf(format, args...)}
}

// Format creates a FormatError wrapping cause, which may be nil.
func Format(op string, cause error, format string, args ...any) *Error {
	return &Error{Kind: FormatError, Op: op, Offset: -1, Detail: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the Kind of the first *Error in err's tree, as found
// by errors.As, or the empty Kind if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
