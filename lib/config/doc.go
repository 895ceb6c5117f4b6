// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for bureau-textconv.
//
// Configuration is loaded from a single file specified by either the
// BUREAU_TEXTCONV_CONFIG environment variable (via [Load]) or a
// --config flag (via [LoadFile]). There is no automatic file search.
// Without either, the command runs on [Default].
//
// The file may contain environment-specific sections (development,
// production) that override base values when [Config].Environment
// matches. Production defaults are stricter: ill-formed surrogates and
// invalid UTF-8 are rejected instead of replaced.
//
// ${HOME} and ${VAR:-default} patterns are expanded in path fields
// after loading.
//
// This package depends on no other unitext packages.
package config
