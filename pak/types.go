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

// Package pak decodes the footer, index, and per-file entry metadata of
// the legacy PAK archive format. It never reads file content, decompresses
// anything, or decrypts an encrypted index.
package pak

import "github.com/paktoc/paktoc/internal/wire"

// Magic is the constant every PAK footer must declare.
const Magic uint32 = 0x5A6F12E1

// CompressionMethod names a PAK compression codec as recorded in the
// footer's case-sensitive compression-name table. The decoder never
// invokes any of these codecs; it only reports which one a chunk is
// tagged with.
type CompressionMethod string

// Known compression method names. An empty or unrecognized 32-byte slot
// resolves to absent, never to one of these.
const (
	CompressionZlib CompressionMethod = "Zlib"
	CompressionGzip CompressionMethod = "Gzip"
	CompressionOodle CompressionMethod = "Oodle"
	CompressionZstd CompressionMethod = "Zstd"
	CompressionLZ4  CompressionMethod = "LZ4"
)

// Footer holds the decoded trailing metadata block of a PAK file.
type Footer struct {
	// EncryptionGUID is the optional 128-bit encryption key UUID, present
	// for versions >= EncryptionKeyGuid.
	EncryptionGUID [16]byte
	HasEncryptionGUID bool

	// EncryptedIndex reports whether the index body is encrypted. If true,
	// the index is never decoded (ErrEncryptedIndex).
	EncryptedIndex bool

	Magic   uint32
	Version Version

	IndexOffset uint64
	IndexSize   uint64
	IndexHash   [20]byte

	// Frozen is set only for the FrozenIndex version.
	Frozen bool

	// Compression is the footer's compression-method table. Slot indices
	// referenced by PakEntry.CompressionSlot are 0-based into this slice.
	// Absent/unrecognized slots are the zero value "".
	Compression []CompressionMethod
}

// Block describes one compressed region of a PakEntry's data, as an
// offset range relative to the start of the entry's data block.
type Block struct {
	Start uint64
	End   uint64
}

// Entry is the decoded physical descriptor for one file inside a PAK
// archive.
type Entry struct {
	Offset           uint64
	CompressedSize   uint64
	UncompressedSize uint64

	// CompressionSlot is the already zero-based, sentinel-normalized
	// index into the footer's Compression table, or absent if the entry
	// is stored uncompressed.
	CompressionSlot wire.OptionalUint32

	// Timestamp is only populated for the Initial version.
	Timestamp      uint64
	HasTimestamp   bool

	Hash [20]byte

	// Blocks is present iff CompressionSlot is present and the archive
	// version is >= CompressionEncryption.
	Blocks []Block

	Flags               uint8
	CompressionBlockSize uint32

	// FullDirectoryEncodedOffset carries the opaque packed descriptor read
	// after a filename in a PathHashIndex archive's full-directory-index
	// section. Its bit layout is undocumented upstream and is kept raw
	// rather than guessed at; it is only meaningful when
	// FromFullDirectoryIndex is true.
	FullDirectoryEncodedOffset uint32
	FromFullDirectoryIndex     bool
}

// IsEncrypted reports whether this entry's data is encrypted (flag bit 0).
func (e Entry) IsEncrypted() bool { return e.Flags&0x01 != 0 }

// IsDeleted reports whether this entry marks a deleted file (flag bit 1).
func (e Entry) IsDeleted() bool { return e.Flags&0x02 != 0 }
