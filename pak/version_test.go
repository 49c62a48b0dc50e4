// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-gameid.
//
// go-gameid is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-gameid is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-gameid.  If not, see <https://www.gnu.org/licenses/>.

package pak

import "testing"

func TestVersionMajor(t *testing.T) {
	tests := []struct {
		v    Version
		want uint32
	}{
		{Initial, 1},
		{NoTimestamps, 2},
		{CompressionEncryption, 3},
		{IndexEncryption, 4},
		{RelativeChunkOffsets, 5},
		{DeleteRecords, 6},
		{EncryptionKeyGuid, 7},
		{V8A, 8},
		{V8B, 8},
		{FrozenIndex, 9},
		{PathHashIndex, 10},
		{Fnv64BugFix, 11},
	}
	for _, tt := range tests {
		if got := tt.v.Major(); got != tt.want {
			t.Errorf("%s.Major() = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestVersionString(t *testing.T) {
	if got := Initial.String(); got == "" {
		t.Error("Initial.String() is empty")
	}
	if got := Version(9999).String(); got == "" {
		t.Error("unknown version String() is empty, want a fallback label")
	}
}

func TestCompressionNameSlots(t *testing.T) {
	tests := []struct {
		v    Version
		want int
	}{
		{Initial, 0},
		{EncryptionKeyGuid, 0},
		{V8A, 4},
		{V8B, 5},
		{FrozenIndex, 5},
		{Fnv64BugFix, 5},
	}
	for _, tt := range tests {
		if got := compressionNameSlots(tt.v); got != tt.want {
			t.Errorf("compressionNameSlots(%s) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

// TestFooterSize checks the footer size of every known shape. Sizes grow
// with the version except at FrozenIndex, the only shape that carries the
// frozen byte, which is one byte larger than the shapes after it.
func TestFooterSize(t *testing.T) {
	tests := []struct {
		v    Version
		want int
	}{
		{Initial, 44},
		{NoTimestamps, 44},
		{CompressionEncryption, 44},
		{IndexEncryption, 45},
		{RelativeChunkOffsets, 45},
		{DeleteRecords, 45},
		{EncryptionKeyGuid, 61},
		{V8A, 189},
		{V8B, 221},
		{FrozenIndex, 222},
		{PathHashIndex, 221},
		{Fnv64BugFix, 221},
	}
	for _, tt := range tests {
		if got := footerSize(tt.v); got != tt.want {
			t.Errorf("footerSize(%s) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestVersionPredicates(t *testing.T) {
	if hasEncryptionGUID(DeleteRecords) {
		t.Error("DeleteRecords should not carry an encryption GUID")
	}
	if !hasEncryptionGUID(EncryptionKeyGuid) {
		t.Error("EncryptionKeyGuid should carry an encryption GUID")
	}
	if !hasEncryptionGUID(Fnv64BugFix) {
		t.Error("newer versions should still carry an encryption GUID")
	}

	if hasFrozenByte(PathHashIndex) {
		t.Error("hasFrozenByte should be exact-match, not a floor, on FrozenIndex")
	}
	if !hasFrozenByte(FrozenIndex) {
		t.Error("FrozenIndex should have a frozen byte")
	}

	if !hasEntryTimestamp(Initial) {
		t.Error("Initial should have a per-entry timestamp")
	}
	if hasEntryTimestamp(NoTimestamps) {
		t.Error("NoTimestamps should not have a per-entry timestamp")
	}

	if !usesSingleByteCompressionSlot(V8A) {
		t.Error("V8A should use a single-byte compression slot")
	}
	if usesSingleByteCompressionSlot(V8B) {
		t.Error("V8B should use a full compression slot")
	}

	if usesPathHashIndex(FrozenIndex) {
		t.Error("FrozenIndex should still use the legacy flat index")
	}
	if !usesPathHashIndex(PathHashIndex) {
		t.Error("PathHashIndex should use the path-hash index")
	}
}
