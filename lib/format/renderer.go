// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package format

import "fmt"

// Renderer renders template with args into dst. It writes at most
// len(dst) bytes and returns the total length the complete rendering
// needs, which exceeds len(dst) when the output was truncated. An error
// means the template cannot be rendered with these arguments at all.
type Renderer interface {
	Render(dst []byte, template string, args []any) (int, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(dst []byte, template string, args []any) (int, error)

// Render calls f.
func (f RendererFunc) Render(dst []byte, template string, args []any) (int, error) {
	return f(dst, template, args)
}

// BadDirectiveError reports a template directive that fmt could not
// satisfy: a wrong verb for the argument type, a missing or extra
// argument, or a bad width, precision, or index.
type BadDirectiveError struct {
	// Directive is the marker fmt would print, with argument types
	// but not values, e.g. "%!d(string)" or "%!(EXTRA int)".
	Directive string
	// Offset is the byte offset of the directive in the template, or
	// the template length for extra arguments.
	Offset int
}

func (e *BadDirectiveError) Error() string {
	return fmt.Sprintf("bad format directive %s at offset %d", e.Directive, e.Offset)
}

// fmtRenderer is the default Renderer, built on fmt.Fprintf.
type fmtRenderer struct{}

// FmtRenderer returns a Renderer backed by the fmt package. Templates
// use fmt verbs. Directives fmt cannot satisfy are reported as a
// *BadDirectiveError instead of appearing in the output.
func FmtRenderer() Renderer {
	return fmtRenderer{}
}

func (fmtRenderer) Render(dst []byte, template string, args []any) (int, error) {
	if err := checkDirectives(template, args); err != nil {
		return 0, err
	}
	writer := &boundedWriter{dst: dst}
	if _, err := fmt.Fprintf(writer, template, args...); err != nil {
		return 0, err
	}
	return writer.total, nil
}

// boundedWriter copies at most len(dst) bytes and counts everything it
// is given, the way snprintf reports the untruncated length.
type boundedWriter struct {
	dst   []byte
	total int
}

func (w *boundedWriter) Write(p []byte) (int, error) {
	if w.total < len(w.dst) {
		copy(w.dst[w.total:], p)
	}
	w.total += len(p)
	return len(p), nil
}
