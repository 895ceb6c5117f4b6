// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"fmt"

	"github.com/bureau-foundation/unitext/lib/secret"
	"github.com/bureau-foundation/unitext/lib/texterror"
)

// initialMargin is added to twice the template length for the first
// capacity guess.
const initialMargin = 50

// Formatter renders templates with the two-attempt sizing protocol.
// The zero value uses FmtRenderer and the locked allocator.
type Formatter struct {
	// Renderer performs the rendering. Default: FmtRenderer().
	Renderer Renderer

	// Allocator backs SprintfSecure. Default: the locked allocator.
	Allocator secret.Allocator
}

func (f *Formatter) renderer() Renderer {
	if f.Renderer == nil {
		return FmtRenderer()
	}
	return f.Renderer
}

func (f *Formatter) allocator() secret.Allocator {
	if f.Allocator == nil {
		return secret.LockedAllocator()
	}
	return f.Allocator
}

// Sprintf renders template with args. An empty template yields "".
func (f *Formatter) Sprintf(template string, args ...any) (string, error) {
	return f.sprintf("format.Sprintf", template, args)
}

// SprintfArgs renders template with an argument list the caller
// already holds.
func (f *Formatter) SprintfArgs(template string, args []any) (string, error) {
	return f.sprintf("format.SprintfArgs", template, args)
}

func (f *Formatter) sprintf(op, template string, args []any) (string, error) {
	if template == "" {
		return "", nil
	}

	renderer := f.renderer()
	capacity := initialCapacity(template)
	for attempt := 0; attempt < 2; attempt++ {
		buffer := make([]byte, capacity)
		length, err := renderer.Render(buffer, template, args)
		if err != nil {
			return "", texterror.Format(op, err, "rendering %q", template)
		}
		if length < 0 {
			return "", texterror.Format(op, nil, "renderer reported length %d", length)
		}
		if length < capacity {
			return string(buffer[:length]), nil
		}
		capacity = length + 1
	}
	return "", texterror.Format(op, nil, "output still truncated at %d bytes after regrowing", capacity-1)
}

// SprintfSecure renders template with args into a secret buffer. An
// undersized first-attempt buffer is wiped before the retry, and every
// buffer is wiped on failure. An empty template yields an empty buffer.
func (f *Formatter) SprintfSecure(template string, args ...any) (*secret.Buffer, error) {
	const op = "format.SprintfSecure"
	allocator := f.allocator()
	if template == "" {
		return secret.NewWithAllocator(0, allocator)
	}

	renderer := f.renderer()
	capacity := initialCapacity(template)
	for attempt := 0; attempt < 2; attempt++ {
		buffer, err := secret.NewWithAllocator(capacity, allocator)
		if err != nil {
			return nil, fmt.Errorf("allocating secure format buffer: %w", err)
		}

		length, err := renderer.Render(buffer.Raw(), template, args)
		if err != nil {
			buffer.Close()
			return nil, texterror.Format(op, err, "rendering template")
		}
		if length < 0 {
			buffer.Close()
			return nil, texterror.Format(op, nil, "renderer reported length %d", length)
		}
		if length < capacity {
			buffer.SetLen(length)
			return buffer, nil
		}

		buffer.Close()
		capacity = length + 1
	}
	return nil, texterror.Format(op, nil, "output still truncated at %d bytes after regrowing", capacity-1)
}

func initialCapacity(template string) int {
	return len(template)*2 + initialMargin
}

var defaultFormatter = &Formatter{}

// Sprintf renders template with args using the default Formatter.
func Sprintf(template string, args ...any) (string, error) {
	return defaultFormatter.Sprintf(template, args...)
}

// SprintfArgs renders template with an argument list using the default
// Formatter.
func SprintfArgs(template string, args []any) (string, error) {
	return defaultFormatter.SprintfArgs(template, args)
}

// SprintfSecure renders template with args into locked memory using the
// default Formatter.
func SprintfSecure(template string, args ...any) (*secret.Buffer, error) {
	return defaultFormatter.SprintfSecure(template, args...)
}
