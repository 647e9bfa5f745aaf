// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bureau-foundation/massreplace/lib/binhash"
)

func unmarshal(t *testing.T, data []byte, v any) error {
	t.Helper()
	return NewDecoder(bytes.NewReader(data)).Decode(v)
}

type sampleFile struct {
	Path    string `json:"path"`
	Matches int    `json:"matches"`
	Kind    string `json:"kind,omitempty"`
}

type sampleRun struct {
	RunID  uuid.UUID      `json:"run_id"`
	Digest binhash.Digest `json:"digest"`
	Files  []sampleFile   `json:"files"`
}

func TestMarshalDecodeRoundtrip(t *testing.T) {
	original := sampleFile{Path: "region/r.0.0.mca", Matches: 42, Kind: "corrupt-chunk"}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded sampleFile
	if err := unmarshal(t, data, &decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]int{"zeta": 1, "alpha": 2, "mid": 3}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}
}

func TestTextMarshalerFields(t *testing.T) {
	original := sampleRun{
		RunID:  uuid.MustParse("0b7a4f3e-8c1d-4a5e-9f20-1234567890ab"),
		Digest: binhash.HashBytes([]byte("region")),
		Files:  []sampleFile{{Path: "a.mca", Matches: 1}},
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"`+original.Digest.String()+`"`) {
		t.Errorf("digest not encoded as text: %s", notation)
	}

	var decoded sampleRun
	if err := unmarshal(t, data, &decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.RunID != original.RunID || decoded.Digest != original.Digest {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestDecodeIntoAny(t *testing.T) {
	data, err := Marshal(sampleFile{Path: "a.mca", Matches: 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := unmarshal(t, data, &decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	fields, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if fields["path"] != "a.mca" {
		t.Errorf("path = %v", fields["path"])
	}
	if _, present := fields["kind"]; present {
		t.Errorf("omitempty field present: %v", fields)
	}
}

func TestEncoderDecoderStream(t *testing.T) {
	files := []sampleFile{
		{Path: "r.0.0.mca", Matches: 1},
		{Path: "r.-1.0.mca", Matches: 0, Kind: "unreadable-container"},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, file := range files {
		if err := encoder.Encode(file); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	decoder := NewDecoder(&buffer)
	for i, want := range files {
		var got sampleFile
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode %d: %v", i, err)
		}
		if got != want {
			t.Errorf("file %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestDecodeInvalidCBOR(t *testing.T) {
	var file sampleFile
	if err := unmarshal(t, []byte{0xFF, 0xFE, 0xFD}, &file); err == nil {
		t.Error("Decode should reject invalid CBOR")
	}
}
