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
	"errors"
	"testing"

	"github.com/paktoc/paktoc/internal/wire"
)

func TestDecodeEntryUncompressedInitial(t *testing.T) {
	b := newArchiveBuilder()
	b.u64(100).u64(50).u64(50) // offset, compressed, uncompressed
	b.u32(0)                   // no compression slot
	b.u64(1_700_000_000)       // timestamp (Initial only)
	b.raw(hash20(1))

	c := wire.NewCursor(b.bytes())
	e, err := decodeEntry(c, Initial, 0)
	if err != nil {
		t.Fatalf("decodeEntry: %v", err)
	}
	if e.Offset != 100 || e.CompressedSize != 50 || e.UncompressedSize != 50 {
		t.Errorf("unexpected sizes: %+v", e)
	}
	if e.CompressionSlot.Valid {
		t.Error("expected no compression slot")
	}
	if !e.HasTimestamp || e.Timestamp != 1_700_000_000 {
		t.Errorf("unexpected timestamp: %+v", e)
	}
	if len(e.Blocks) != 0 {
		t.Error("Initial entries never carry blocks")
	}
}

func TestDecodeEntryCompressedWithBlocks(t *testing.T) {
	b := newArchiveBuilder()
	b.u64(0).u64(30).u64(60)
	b.u32(1) // slot raw 1 -> slot 0
	b.raw(hash20(2))
	b.u32(2) // block count
	b.u64(0).u64(15)
	b.u64(15).u64(30)
	b.u8(0)     // flags
	b.u32(1024) // block size

	c := wire.NewCursor(b.bytes())
	e, err := decodeEntry(c, CompressionEncryption, 3)
	if err != nil {
		t.Fatalf("decodeEntry: %v", err)
	}
	if !e.CompressionSlot.Valid || e.CompressionSlot.Value != 0 {
		t.Errorf("unexpected compression slot: %+v", e.CompressionSlot)
	}
	if len(e.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(e.Blocks))
	}
	if e.Blocks[1].Start != 15 || e.Blocks[1].End != 30 {
		t.Errorf("unexpected block[1]: %+v", e.Blocks[1])
	}
	if e.CompressionBlockSize != 1024 {
		t.Errorf("CompressionBlockSize = %d, want 1024", e.CompressionBlockSize)
	}
}

func TestDecodeEntryInvalidCompressionSlot(t *testing.T) {
	b := newArchiveBuilder()
	b.u64(0).u64(0).u64(0)
	b.u32(5) // slot raw 5 -> slot 4, out of range for a 2-entry table
	b.raw(hash20(3))

	c := wire.NewCursor(b.bytes())
	_, err := decodeEntry(c, IndexEncryption, 2)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestDecodeEntryInvalidBlockRange(t *testing.T) {
	b := newArchiveBuilder()
	b.u64(0).u64(10).u64(10)
	b.u32(1)
	b.raw(hash20(4))
	b.u32(1)
	b.u64(20).u64(10) // end < start

	c := wire.NewCursor(b.bytes())
	_, err := decodeEntry(c, CompressionEncryption, 1)
	if !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestDecodeEntrySingleByteSlotV8A(t *testing.T) {
	b := newArchiveBuilder()
	b.u64(0).u64(0).u64(0)
	b.u8(0) // single-byte slot, absent
	b.raw(hash20(5))
	// No compression slot means no block table, but flags/blockSize are
	// still gated on the version alone and so still follow.
	b.u8(0)
	b.u32(0)

	c := wire.NewCursor(b.bytes())
	e, err := decodeEntry(c, V8A, 4)
	if err != nil {
		t.Fatalf("decodeEntry: %v", err)
	}
	if e.CompressionSlot.Valid {
		t.Error("expected absent compression slot")
	}
}
