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

package utoc

import "encoding/binary"

// tocBuilder assembles a synthetic table-of-contents image byte by byte
// so tests exercise decodeHeader/decodeBody/decodeDirectoryIndex without
// needing real container fixtures on disk.
type tocBuilder struct {
	buf []byte
}

func newTocBuilder() *tocBuilder { return &tocBuilder{} }

func (b *tocBuilder) bytes() []byte { return b.buf }

func (b *tocBuilder) raw(p []byte) *tocBuilder {
	b.buf = append(b.buf, p...)
	return b
}

func (b *tocBuilder) u8(v uint8) *tocBuilder { return b.raw([]byte{v}) }

func (b *tocBuilder) u32(v uint32) *tocBuilder {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], v)
	return b.raw(p[:])
}

func (b *tocBuilder) i32(v int32) *tocBuilder { return b.u32(uint32(v)) }

func (b *tocBuilder) u64(v uint64) *tocBuilder {
	var p [8]byte
	binary.LittleEndian.PutUint64(p[:], v)
	return b.raw(p[:])
}

func (b *tocBuilder) fixedBytes(data []byte, n int) *tocBuilder {
	p := make([]byte, n)
	copy(p, data)
	return b.raw(p)
}

// engineString writes a string in its positive-length ASCII form, NUL
// terminator included in the declared length.
func (b *tocBuilder) engineString(s string) *tocBuilder {
	b.i32(int32(len(s) + 1))
	b.raw([]byte(s))
	return b.u8(0)
}

// optionalIndex writes a present 32-bit index.
func (b *tocBuilder) optionalIndex(v uint32) *tocBuilder { return b.u32(v) }

// absentIndex writes the 0xFFFFFFFF absent-index sentinel.
func (b *tocBuilder) absentIndex() *tocBuilder { return b.u32(0xFFFFFFFF) }

// chunkId writes a 12-byte chunk identifier with the given 16-bit index
// and 6-bit chunk-type tag packed into byte 10.
func (b *tocBuilder) chunkId(id [8]byte, index uint16, chunkType uint8) *tocBuilder {
	b.raw(id[:])
	var idxBytes [2]byte
	binary.LittleEndian.PutUint16(idxBytes[:], index)
	b.raw(idxBytes[:])
	b.u8(chunkType & 0x3F)
	return b.u8(0)
}

// offsetAndLength writes a 10-byte record: a 40-bit little-endian offset
// followed by a 40-bit little-endian length.
func (b *tocBuilder) offsetAndLength(offset, length uint64) *tocBuilder {
	b.raw(uint40(offset))
	return b.raw(uint40(length))
}

// compressedBlockEntry writes a 12-byte record: 40-bit offset, 24-bit
// compressed size, 24-bit uncompressed size, 8-bit method index.
func (b *tocBuilder) compressedBlockEntry(offset uint64, compressedSize, uncompressedSize uint32, methodIndex uint8) *tocBuilder {
	b.raw(uint40(offset))
	b.raw(uint24(compressedSize))
	b.raw(uint24(uncompressedSize))
	return b.u8(methodIndex)
}

// compressionMethodName writes a NUL-padded compression method name slot
// of exactly n bytes.
func (b *tocBuilder) compressionMethodName(name string, n int) *tocBuilder {
	return b.fixedBytes([]byte(name), n)
}

func uint40(v uint64) []byte {
	out := make([]byte, 5)
	for i := 0; i < 5; i++ {
		out[i] = byte(v >> (8 * i))
	}
	return out
}

func uint24(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

// headerFields bundles every TocHeader field a test wants to control. Zero
// value fields default to the form most tests want.
type headerFields struct {
	version                       Version
	entryCount                    uint32
	compressedBlockEntryCount     uint32
	compressionMethodNameCount    uint32
	compressionMethodNameLength   uint32
	compressionBlockSize          uint32
	directoryIndexSize            uint32
	partitionCount                uint32
	containerID                   uint64
	encryptionKeyGUID             [16]byte
	containerFlags                uint8
	perfectHashSeedsCount         uint32
	chunksWithoutPerfectHashCount uint32
	partitionSize                 uint64
}

// buildHeader writes the fixed 144-byte header in decodeHeader's exact
// field order.
func buildHeader(b *tocBuilder, f headerFields) *tocBuilder {
	b.raw(Magic[:])
	b.u32(uint32(f.version))
	b.u32(HeaderSize)
	b.u32(f.entryCount)
	b.u32(f.compressedBlockEntryCount)
	b.u32(f.compressionMethodNameCount)
	b.u32(f.compressionMethodNameLength)
	b.u32(f.compressionBlockSize)
	b.u32(f.directoryIndexSize)
	b.u32(f.partitionCount)
	b.u64(f.containerID)
	b.raw(f.encryptionKeyGUID[:])
	b.u8(f.containerFlags)
	b.u32(f.perfectHashSeedsCount)
	b.u32(f.chunksWithoutPerfectHashCount)
	b.u64(f.partitionSize)
	return b.fixedBytes(nil, headerReservedSize)
}
