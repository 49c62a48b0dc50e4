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

import "encoding/binary"

// archiveBuilder assembles a synthetic PAK image byte by byte so tests
// exercise decodeFooter/decodeIndex/decodeEntry without needing real
// archive fixtures on disk.
type archiveBuilder struct {
	buf []byte
}

func newArchiveBuilder() *archiveBuilder {
	return &archiveBuilder{}
}

func (b *archiveBuilder) bytes() []byte { return b.buf }

func (b *archiveBuilder) raw(p []byte) *archiveBuilder {
	b.buf = append(b.buf, p...)
	return b
}

func (b *archiveBuilder) u8(v uint8) *archiveBuilder {
	return b.raw([]byte{v})
}

func (b *archiveBuilder) u32(v uint32) *archiveBuilder {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], v)
	return b.raw(p[:])
}

func (b *archiveBuilder) i32(v int32) *archiveBuilder {
	return b.u32(uint32(v))
}

func (b *archiveBuilder) u64(v uint64) *archiveBuilder {
	var p [8]byte
	binary.LittleEndian.PutUint64(p[:], v)
	return b.raw(p[:])
}

// asciiString writes an engine string in its positive-length ASCII form,
// NUL terminator included in the declared length.
func (b *archiveBuilder) asciiString(s string) *archiveBuilder {
	b.i32(int32(len(s) + 1))
	b.raw([]byte(s))
	b.u8(0)
	return b
}

// fixedBytes writes exactly n bytes, zero-padded or truncated.
func (b *archiveBuilder) fixedBytes(data []byte, n int) *archiveBuilder {
	p := make([]byte, n)
	copy(p, data)
	return b.raw(p)
}

// compressionNameSlot writes a 32-byte NUL-padded compression method
// name slot.
func (b *archiveBuilder) compressionNameSlot(name string) *archiveBuilder {
	return b.fixedBytes([]byte(name), 32)
}

// hash20 returns a deterministic, non-zero 20-byte placeholder hash.
func hash20(seed byte) []byte {
	h := make([]byte, 20)
	for i := range h {
		h[i] = seed + byte(i)
	}
	return h
}
