// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

type sampleReport struct {
	Encoding   string   `cbor:"encoding"`
	CodeUnits  int      `cbor:"code_units"`
	CodePoints int      `cbor:"code_points"`
	Units      []uint16 `cbor:"units,omitempty"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleReport{
		Encoding:   "utf16le",
		CodeUnits:  3,
		CodePoints: 2,
		Units:      []uint16{'a', 0xD83D, 0xDE00},
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleReport
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Encoding != original.Encoding || decoded.CodeUnits != original.CodeUnits ||
		decoded.CodePoints != original.CodePoints || !slices.Equal(decoded.Units, original.Units) {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	first, err := Marshal(map[string]int{"zeta": 1, "alpha": 2, "mid": 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(map[string]int{"mid": 3, "alpha": 2, "zeta": 1})
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("same map produced different CBOR bytes")
		}
	}
}

func TestUnmarshal_AnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(sampleReport{Encoding: "utf8", CodeUnits: 1, CodePoints: 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	fields, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded type = %T, want map[string]any", decoded)
	}
	if fields["encoding"] != "utf8" {
		t.Errorf("encoding field = %v, want utf8", fields["encoding"])
	}
}

func TestEncoderAndDiagnose(t *testing.T) {
	var output bytes.Buffer
	if err := NewEncoder(&output).Encode(sampleReport{Encoding: "utf32be", CodeUnits: 2, CodePoints: 2}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	notation, err := Diagnose(output.Bytes())
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"encoding": "utf32be"`) {
		t.Errorf("Diagnose = %s, want it to contain the encoding field", notation)
	}
}
