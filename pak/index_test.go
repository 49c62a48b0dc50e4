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

import (
	"testing"

	"github.com/paktoc/paktoc/internal/wire"
)

func TestDecodeIndexLegacyFlat(t *testing.T) {
	b := newArchiveBuilder()
	b.asciiString("../../../") // mount point
	b.u32(2)                   // entry count

	b.asciiString("readme.txt")
	b.u64(0).u64(10).u64(10).u32(0).u64(0).raw(hash20(1)) // Initial-style: offset,cs,us,slot,timestamp,hash

	b.asciiString("data/level1.bin")
	b.u64(10).u64(20).u64(20).u32(0).u64(0).raw(hash20(2))

	f := &Footer{Version: Initial, IndexSize: uint64(len(b.bytes()))}
	ix, err := decodeIndex(b.bytes(), f)
	if err != nil {
		t.Fatalf("decodeIndex: %v", err)
	}
	if ix.mountPoint != "../../../" {
		t.Errorf("mountPoint = %q", ix.mountPoint)
	}
	if len(ix.order) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(ix.order), ix.order)
	}
	if ix.order[0] != "readme.txt" || ix.order[1] != "data/level1.bin" {
		t.Errorf("unexpected order: %v", ix.order)
	}
	if e := ix.entries["data/level1.bin"]; e.Offset != 10 {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestDecodeIndexEncrypted(t *testing.T) {
	f := &Footer{Version: Fnv64BugFix, EncryptedIndex: true}
	_, err := decodeIndex(nil, f)
	if err != ErrEncryptedIndex {
		t.Errorf("expected ErrEncryptedIndex, got %v", err)
	}
}

func TestDecodeFullDirectoryIndex(t *testing.T) {
	fdi := newArchiveBuilder()
	fdi.u32(2) // directory count

	fdi.asciiString("data/")
	fdi.u32(2) // file count
	fdi.asciiString("a.bin")
	fdi.u32(100)
	fdi.asciiString("b.bin")
	fdi.u32(invalidFullDirectoryOffset) // skipped slot

	fdi.asciiString("") // root directory, empty path
	fdi.u32(1)
	fdi.asciiString("root.bin")
	fdi.u32(200)

	ix := newIndex("../../../")
	c := wire.NewCursor(fdi.bytes())
	if err := decodeFullDirectoryIndex(c, ix); err != nil {
		t.Fatalf("decodeFullDirectoryIndex: %v", err)
	}

	if len(ix.order) != 2 {
		t.Fatalf("expected 2 files (one skipped), got %d: %v", len(ix.order), ix.order)
	}
	a, ok := ix.entries["data/a.bin"]
	if !ok || a.FullDirectoryEncodedOffset != 100 || !a.FromFullDirectoryIndex {
		t.Errorf("unexpected entry for data/a.bin: %+v ok=%v", a, ok)
	}
	if _, ok := ix.entries["data/b.bin"]; ok {
		t.Error("data/b.bin should have been skipped (invalid offset sentinel)")
	}
	if root, ok := ix.entries["root.bin"]; !ok || root.FullDirectoryEncodedOffset != 200 {
		t.Errorf("unexpected entry for root.bin: %+v ok=%v", root, ok)
	}
}

func TestJoinDirFile(t *testing.T) {
	tests := []struct {
		dir, file, want string
	}{
		{"data/", "a.bin", "data/a.bin"},
		{"data", "a.bin", "data/a.bin"},
		{"", "a.bin", "/a.bin"},
	}
	for _, tt := range tests {
		if got := joinDirFile(tt.dir, tt.file); got != tt.want {
			t.Errorf("joinDirFile(%q, %q) = %q, want %q", tt.dir, tt.file, got, tt.want)
		}
	}
}
