// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "textconv.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if cfg.Convert.From != "utf8" || cfg.Convert.To != "utf16le" {
		t.Errorf("expected utf8 -> utf16le, got %s -> %s", cfg.Convert.From, cfg.Convert.To)
	}
	if cfg.IsStrict() {
		t.Error("expected lenient conversion by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestLoad_WithoutEnvironmentVariable(t *testing.T) {
	t.Setenv("BUREAU_TEXTCONV_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Convert.To != "utf16le" {
		t.Errorf("expected default config, got convert.to=%s", cfg.Convert.To)
	}
}

func TestLoad_WithEnvironmentVariable(t *testing.T) {
	path := writeConfig(t, `
convert:
  from: utf16be
  to: utf8
log:
  level: debug
`)
	t.Setenv("BUREAU_TEXTCONV_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Convert.From != "utf16be" || cfg.Convert.To != "utf8" {
		t.Errorf("expected utf16be -> utf8, got %s -> %s", cfg.Convert.From, cfg.Convert.To)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log.level=debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFile_ProductionIsStrict(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "environment: production\n"))
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if !cfg.IsStrict() {
		t.Error("expected production to enable strict conversion")
	}
}

func TestLoadFile_ProductionExplicitLenient(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
environment: production
convert:
  strict: false
`))
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.IsStrict() {
		t.Error("explicit strict: false was overridden by production defaults")
	}
}

func TestLoadFile_EnvironmentOverrides(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
environment: development
convert:
  to: utf32le
development:
  convert:
    to: utf16be
  log:
    level: warn
`))
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Convert.To != "utf16be" {
		t.Errorf("expected development override utf16be, got %s", cfg.Convert.To)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected development override log.level=warn, got %s", cfg.Log.Level)
	}
}

func TestLoadFile_ExpandsRecipientsFile(t *testing.T) {
	t.Setenv("TEXTCONV_KEYS", "/keys")
	cfg, err := LoadFile(writeConfig(t, `
secret:
  recipients_file: ${TEXTCONV_KEYS}/recipients.txt
`))
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Secret.RecipientsFile != "/keys/recipients.txt" {
		t.Errorf("expected expanded path, got %s", cfg.Secret.RecipientsFile)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textconv.jsonc")
	content := `{
  // Big-endian by default for this host.
  "convert": {"from": "utf16be", "to": "utf8",},
  "log": {"level": "debug"},
}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Convert.From != "utf16be" || cfg.Convert.To != "utf8" {
		t.Errorf("convert = %+v, want utf16be -> utf8", cfg.Convert)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExpandVars(t *testing.T) {
	vars := map[string]string{"HOME": "/home/op"}
	tests := []struct {
		input    string
		expected string
	}{
		{input: "${HOME}/keys", expected: "/home/op/keys"},
		{input: "${UNITEXT_UNSET_VARIABLE:-/fallback}", expected: "/fallback"},
		{input: "plain", expected: "plain"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, vars); got != test.expected {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Environment = "staging"
	cfg.Convert.From = "latin1"
	cfg.Secret.Recipients = []string{"ssh-ed25519 AAAA"}
	cfg.Log.Level = "trace"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, fragment := range []string{"invalid environment", "convert.from", "secret.recipients", "log.level"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("validation error missing %q: %v", fragment, err)
		}
	}
}

func TestRecipientKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipients.txt")
	content := "# operators\nage1first\n\nage1second\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write recipients: %v", err)
	}

	cfg := Default()
	cfg.Secret.Recipients = []string{"age1inline"}
	cfg.Secret.RecipientsFile = path

	keys, err := cfg.RecipientKeys()
	if err != nil {
		t.Fatalf("RecipientKeys() failed: %v", err)
	}
	if !slices.Equal(keys, []string{"age1inline", "age1first", "age1second"}) {
		t.Errorf("RecipientKeys() = %v", keys)
	}
}
