// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package region

import "testing"

func TestParseFileName(t *testing.T) {
	tests := []struct {
		name     string
		x, z     int
		wantFail bool
	}{
		{name: "r.0.0.mca", x: 0, z: 0},
		{name: "r.-1.2.mca", x: -1, z: 2},
		{name: "r.12.-30.mca", x: 12, z: -30},
		{name: "r.0.0.mcr", wantFail: true},
		{name: "c.0.0.mca", wantFail: true},
		{name: "r.a.0.mca", wantFail: true},
		{name: "r.0.mca", wantFail: true},
		{name: "r.0.0.0.mca", wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, z, err := ParseFileName(tt.name)
			if tt.wantFail {
				if err == nil {
					t.Errorf("ParseFileName(%q) should fail", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFileName(%q) failed: %v", tt.name, err)
			}
			if x != tt.x || z != tt.z {
				t.Errorf("ParseFileName(%q) = %d,%d, want %d,%d", tt.name, x, z, tt.x, tt.z)
			}
			if FileName(x, z) != tt.name {
				t.Errorf("FileName(%d, %d) = %q, want %q", x, z, FileName(x, z), tt.name)
			}
		})
	}
}

func TestSlotMapping(t *testing.T) {
	if got := SlotIndex(3, 2); got != 67 {
		t.Errorf("SlotIndex(3, 2) = %d, want 67", got)
	}
	if x, z := SlotCoords(67); x != 3 || z != 2 {
		t.Errorf("SlotCoords(67) = %d,%d, want 3,2", x, z)
	}
	if x, z := ChunkPos(-1, 2, 5, 7); x != -27 || z != 71 {
		t.Errorf("ChunkPos(-1, 2, 5, 7) = %d,%d, want -27,71", x, z)
	}
	if got := ExternalFileName(-27, 71); got != "c.-27.71.mcc" {
		t.Errorf("ExternalFileName = %q", got)
	}
}

func TestClassify(t *testing.T) {
	if Classify(nil) != KindNone {
		t.Error("Classify(nil) should be KindNone")
	}
	if !KindCorruptChunk.ChunkLevel() || KindUnreadableContainer.ChunkLevel() {
		t.Error("ChunkLevel misclassifies kinds")
	}
	wrapped := &ChunkError{Err: ErrUnwritableContainer}
	if Classify(wrapped) != KindUnwritableContainer {
		t.Errorf("Classify(%v) = %q", wrapped, Classify(wrapped))
	}
}
