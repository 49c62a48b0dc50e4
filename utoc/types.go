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

// Package utoc decodes the header, chunk tables, and directory index of
// an IoStore table-of-contents file. It never reads chunk content out of
// the companion data file, decompresses anything, or decrypts an
// encrypted container.
package utoc

import "github.com/paktoc/paktoc/internal/wire"

// HeaderSize is the fixed on-disk size of TocHeader.
const HeaderSize = 144

// Magic is the 16-byte ASCII literal every table-of-contents file opens
// with.
var Magic = [16]byte{'-', '=', '=', '-', '-', '=', '=', '-', '-', '=', '=', '-', '-', '=', '=', '-'}

// Container flag bits. The format guarantees only these four carry
// meaning.
const (
	FlagCompressed uint8 = 1 << 0
	FlagEncrypted  uint8 = 1 << 1
	FlagSigned     uint8 = 1 << 2
	FlagIndexed    uint8 = 1 << 3
)

// TocHeader is the fixed 144-byte leading struct of a table-of-contents
// file.
type TocHeader struct {
	Version Version

	EntryCount                    uint32
	CompressedBlockEntryCount     uint32
	CompressionMethodNameCount    uint32
	CompressionMethodNameLength   uint32
	CompressionBlockSize          uint32
	DirectoryIndexSize            uint32
	PartitionCount                uint32
	ContainerID                   uint64
	EncryptionKeyGUID             [16]byte
	ContainerFlags                uint8
	PerfectHashSeedsCount         uint32
	ChunksWithoutPerfectHashCount uint32
	PartitionSize                 uint64
}

// HasFlag reports whether flag is set in the header's container flags.
func (h TocHeader) HasFlag(flag uint8) bool { return h.ContainerFlags&flag != 0 }

// ChunkId is the 12-byte raw identifier of one chunk, kept verbatim so
// its accessors can derive sub-fields on demand.
type ChunkId [12]byte

// Id returns the 8-byte opaque identifier portion.
func (c ChunkId) Id() [8]byte {
	var id [8]byte
	copy(id[:], c[0:8])
	return id
}

// Index returns the 16-bit little-endian index portion.
func (c ChunkId) Index() uint16 {
	return uint16(c[8]) | uint16(c[9])<<8
}

// ChunkType returns the 6-bit chunk-type tag packed into the low bits of
// byte 10.
func (c ChunkId) ChunkType() (uint8, error) {
	return wire.BitsFromByte(c[10], 2, 6)
}

// HasVersionInfo reports the 1-bit version-info flag packed into bit 6
// of byte 11.
func (c ChunkId) HasVersionInfo() (bool, error) {
	bit, err := wire.BitsFromByte(c[11], 1, 1)
	if err != nil {
		return false, err
	}
	return bit != 0, nil
}

// Known chunk type tags. Unrecognized values are preserved raw by
// ChunkType rather than rejected.
const (
	ChunkTypeInstallManifest      uint8 = 0
	ChunkTypeExportBundleData     uint8 = 1
	ChunkTypeBulkData             uint8 = 2
	ChunkTypeOptionalBulkData     uint8 = 3
	ChunkTypeMemoryMappedBulkData uint8 = 4
	ChunkTypeLoaderGlobalMeta     uint8 = 5
	ChunkTypeLoaderInitialLoadMeta uint8 = 6
	ChunkTypeLoaderGlobalNames    uint8 = 7
	ChunkTypeLoaderGlobalNameHashes uint8 = 8
	ChunkTypeContainerHeader      uint8 = 9
	ChunkTypeExternalFile         uint8 = 10
	ChunkTypeShaderCodeLibrary    uint8 = 11
	ChunkTypeShaderCode           uint8 = 12
	ChunkTypePackageStoreEntry    uint8 = 13
)

// OffsetAndLength packs a 40-bit offset and a 40-bit length into a
// 10-byte raw record.
type OffsetAndLength [10]byte

// Offset returns the 40-bit little-endian offset.
func (o OffsetAndLength) Offset() uint64 {
	return decodeUint40(o[0:5])
}

// Length returns the 40-bit little-endian length.
func (o OffsetAndLength) Length() uint64 {
	return decodeUint40(o[5:10])
}

// CompressedBlockEntry is a 12-byte raw record describing one
// compressed block: a 40-bit offset, a 24-bit compressed size, a 24-bit
// uncompressed size, and an 8-bit compression-method index.
type CompressedBlockEntry [12]byte

func (e CompressedBlockEntry) Offset() uint64 {
	return decodeUint40(e[0:5])
}

func (e CompressedBlockEntry) CompressedSize() uint32 {
	return uint32(decodeUint24(e[5:8]))
}

func (e CompressedBlockEntry) UncompressedSize() uint32 {
	return uint32(decodeUint24(e[8:11]))
}

func (e CompressedBlockEntry) CompressionMethodIndex() uint8 {
	return e[11]
}

// ChunkMeta describes one chunk's content hash and flags. Hash holds
// either the older 32-byte digest or the newer 20-byte digest
// left-aligned and zero-padded, per usesReplacedChunkHash.
type ChunkMeta struct {
	Hash  [32]byte
	Flags uint8
}

const (
	ChunkMetaFlagCompressed   uint8 = 1 << 0
	ChunkMetaFlagMemoryMapped uint8 = 1 << 1
)

// decodeUint40 reads a 5-byte little-endian sub-field through the same
// bitio-backed cursor primitive used for every other wire field, rather
// than shifting bytes by hand.
func decodeUint40(b []byte) uint64 {
	v, _ := wire.NewCursor(b).ReadPacked(5)
	return v
}

// decodeUint24 reads a 3-byte little-endian sub-field the same way.
func decodeUint24(b []byte) uint32 {
	v, _ := wire.NewCursor(b).ReadPacked(3)
	return uint32(v)
}

// DirectoryEntry is one node in the directory tree: an optional name
// string-table index, and optional sibling/child/file indices. All
// indices use the 0xFFFFFFFF absent sentinel.
type DirectoryEntry struct {
	Name            wire.OptionalUint32
	FirstChildEntry wire.OptionalUint32
	NextSiblingEntry wire.OptionalUint32
	FirstFileEntry  wire.OptionalUint32
}

// FileEntry is one file node: a required name string-table index, an
// optional next-file-in-directory index, and the chunk index it refers
// to.
type FileEntry struct {
	Name          uint32
	NextFileEntry wire.OptionalUint32
	UserData      uint32
}

// DirectoryIndex is the decoded directory tree plus its shared string
// table.
type DirectoryIndex struct {
	MountPoint  string
	Directories []DirectoryEntry
	Files       []FileEntry
	Strings     []string
}

// TocModel is the complete decoded table-of-contents.
type TocModel struct {
	Header TocHeader

	ChunkIds              []ChunkId
	OffsetsAndLengths      []OffsetAndLength
	PerfectHashSeeds       []uint32
	ChunksWithoutPerfectHash []uint32
	CompressedBlockEntries []CompressedBlockEntry
	CompressionMethods     []string
	ChunkMetas             []ChunkMeta
	DirectoryIndex         DirectoryIndex
}
