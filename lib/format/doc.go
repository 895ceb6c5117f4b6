// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package format renders printf-style templates into buffers sized by
// trial rendering.
//
// A [Renderer] has snprintf semantics: it writes at most len(dst) bytes
// and reports the full length the rendering needs. [Formatter] starts
// from a capacity guess of twice the template length plus 50 bytes,
// renders once, and if the output did not fit, grows the buffer to the
// reported length plus one and renders exactly once more. There is no
// third attempt: a second truncation is a FormatError.
//
// [Formatter.SprintfSecure] runs the same loop over secret buffers and
// wipes the undersized first-attempt buffer before retrying.
// [Formatter.SprintfArgs] forwards an argument list a caller already
// holds.
package format
