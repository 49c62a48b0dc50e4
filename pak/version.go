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

// Version enumerates the known PAK footer layouts in increasing recency
// order. It deliberately does not equal the raw integer written to the
// file: versions 8A and 8B both declare the same on-wire major number (8)
// but have structurally different footers (four vs five compression-method
// slots), so Version carries one ordinal per known *shape* while Major
// reports the on-wire number a shape declares.
type Version int

// Known PAK footer shapes, oldest first. Comparisons with >= follow this
// declaration order; predicate functions below centralize the per-field
// gating instead of scattering inline version checks.
const (
	Initial                Version = iota + 1 // 1: original footer, carries a per-entry timestamp
	NoTimestamps                              // 2: drops the per-entry timestamp
	CompressionEncryption                     // 3: adds per-entry compression blocks + flags
	IndexEncryption                           // 4: adds the footer's encrypted-index flag byte
	RelativeChunkOffsets                      // 5
	DeleteRecords                             // 6
	EncryptionKeyGuid                         // 7: adds the footer's 128-bit encryption UUID
	V8A                                       // 8 (wire major 8): adds a 4-slot compression-method table
	V8B                                       // 8 (wire major 8): widens the table to 5 slots
	FrozenIndex                               // 9: adds the footer's frozen-index byte
	PathHashIndex                             // 10: splits the index into path-hash + full-directory sections
	Fnv64BugFix                               // 11: latest known footer shape
)

// Latest is the newest known PAK version, the first candidate the probe
// tries.
const Latest = Fnv64BugFix

// Major returns the integer version number this Version shape declares on
// the wire. V8A and V8B both declare 8.
func (v Version) Major() uint32 {
	switch {
	case v <= EncryptionKeyGuid:
		return uint32(v)
	case v == V8A || v == V8B:
		return 8
	default:
		return uint32(v) - 1
	}
}

// String implements fmt.Stringer for diagnostics and test failure messages.
func (v Version) String() string {
	switch v {
	case Initial:
		return "Initial"
	case NoTimestamps:
		return "NoTimestamps"
	case CompressionEncryption:
		return "CompressionEncryption"
	case IndexEncryption:
		return "IndexEncryption"
	case RelativeChunkOffsets:
		return "RelativeChunkOffsets"
	case DeleteRecords:
		return "DeleteRecords"
	case EncryptionKeyGuid:
		return "EncryptionKeyGuid"
	case V8A:
		return "V8A"
	case V8B:
		return "V8B"
	case FrozenIndex:
		return "FrozenIndex"
	case PathHashIndex:
		return "PathHashIndex"
	case Fnv64BugFix:
		return "Fnv64BugFix"
	default:
		return "Unknown"
	}
}

// hasEncryptionGUID reports whether the footer carries a 128-bit
// encryption UUID before the magic.
func hasEncryptionGUID(v Version) bool { return v >= EncryptionKeyGuid }

// hasEncryptedFlagByte reports whether the footer carries the
// encrypted-index flag byte.
func hasEncryptedFlagByte(v Version) bool { return v >= IndexEncryption }

// hasFrozenByte reports whether the footer carries the frozen-index byte.
// Unlike the other gates this is an equality, not a floor: only
// FrozenIndex itself wrote this byte.
func hasFrozenByte(v Version) bool { return v == FrozenIndex }

// compressionNameSlots returns how many fixed 32-byte compression-method
// name slots the footer declares for v.
func compressionNameSlots(v Version) int {
	switch {
	case v < V8A:
		return 0
	case v == V8A:
		return 4
	default:
		return 5
	}
}

// hasCompressionBlocks reports whether PakEntry records for v carry a
// block table when a compression slot is present.
func hasCompressionBlocks(v Version) bool { return v >= CompressionEncryption }

// hasEntryTimestamp reports whether PakEntry records for v carry a
// 64-bit timestamp field.
func hasEntryTimestamp(v Version) bool { return v == Initial }

// usesSingleByteCompressionSlot reports whether the PakEntry compression
// slot field is a single byte (true only for V8A) rather than 32 bits.
func usesSingleByteCompressionSlot(v Version) bool { return v == V8A }

// usesPathHashIndex reports whether the index is split into a path-hash
// section and a full-directory-index section, rather than a flat list.
func usesPathHashIndex(v Version) bool { return v >= PathHashIndex }
