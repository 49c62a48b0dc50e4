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

// Package wire provides the positioned byte cursor and primitive field
// readers shared by the pak and utoc decoders.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/icza/bitio"
)

// ErrTruncated indicates a read ran past the end of the buffer.
var ErrTruncated = errors.New("wire: truncated read")

// Cursor tracks a read position into an owned byte buffer. All multi-byte
// integers are little-endian, matching the container formats' on-disk
// layout.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a Cursor positioned at the start of data. The Cursor
// takes ownership of data; callers should not mutate it afterward.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Seek moves the cursor to an absolute offset. It fails if offset falls
// outside the buffer.
func (c *Cursor) Seek(offset int) error {
	if offset < 0 || offset > len(c.data) {
		return fmt.Errorf("%w: seek to %d (len %d)", ErrTruncated, offset, len(c.data))
	}
	c.pos = offset
	return nil
}

// Skip advances the cursor by n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	return c.Seek(c.pos + n)
}

// ReadBytes reads and returns the next n bytes, advancing the cursor.
// The returned slice aliases the cursor's buffer; callers that need to
// retain it across further reads should copy it.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrTruncated, n, c.Remaining())
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadInto reads exactly len(dst) bytes into dst, advancing the cursor.
func (c *Cursor) ReadInto(dst []byte) error {
	b, err := c.ReadBytes(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt8 reads a signed 8-bit integer.
func (c *Cursor) ReadInt8() (int8, error) {
	v, err := c.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads a little-endian unsigned 16-bit integer.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadInt16 reads a little-endian signed 16-bit integer.
func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a little-endian unsigned 32-bit integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt32 reads a little-endian signed 32-bit integer.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a little-endian unsigned 64-bit integer.
func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt64 reads a little-endian signed 64-bit integer.
func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

// ReadPacked reads n (n <= 8) raw little-endian bytes into a zero-extended
// 64-bit integer. Used for the 40-bit and 24-bit sub-fields of
// OffsetAndLength and CompressedBlockEntry.
//
// The byte stream is consumed through a bitio.Reader rather than manual
// shifting, one byte at a time, so the same low-level bit-position-
// tracking primitive backs both this and the true sub-byte bit-field
// reads in ChunkId.
func (c *Cursor) ReadPacked(n int) (uint64, error) {
	if n < 0 || n > 8 {
		return 0, fmt.Errorf("wire: invalid packed width %d", n)
	}
	buf, err := c.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	br := bitio.NewReader(bytes.NewReader(buf))
	var v uint64
	for i := 0; i < n; i++ {
		b, rErr := br.ReadByte()
		if rErr != nil {
			return 0, fmt.Errorf("%w: packed read: %v", ErrTruncated, rErr)
		}
		v |= uint64(b) << (8 * i)
	}
	return v, nil
}

// OptionalUint32 is a 32-bit index that may be absent, represented on the
// wire by the sentinel value 0xFFFFFFFF.
type OptionalUint32 struct {
	Value uint32
	Valid bool
}

// NoneUint32 returns an absent OptionalUint32.
func NoneUint32() OptionalUint32 { return OptionalUint32{} }

// SomeUint32 returns a present OptionalUint32 wrapping v.
func SomeUint32(v uint32) OptionalUint32 { return OptionalUint32{Value: v, Valid: true} }

// AbsentIndex is the wire sentinel for "no value" in an optional 32-bit index.
const AbsentIndex uint32 = 0xFFFFFFFF

// ReadOptionalIndex reads a 32-bit unsigned value and normalizes the
// 0xFFFFFFFF sentinel into an absent OptionalUint32.
func (c *Cursor) ReadOptionalIndex() (OptionalUint32, error) {
	v, err := c.ReadUint32()
	if err != nil {
		return OptionalUint32{}, err
	}
	if v == AbsentIndex {
		return NoneUint32(), nil
	}
	return SomeUint32(v), nil
}

// BitsFromByte extracts numBits bits starting at the high end of the
// remaining unread bits of b, after skipping skipBits from the top. It is
// used by ChunkId's accessors to pull sub-byte fields out of a single raw
// byte, e.g. "low 6 bits of byte 10" is BitsFromByte(b, 2, 6).
func BitsFromByte(b byte, skipBits, numBits int) (uint8, error) {
	if skipBits+numBits > 8 || skipBits < 0 || numBits < 0 {
		return 0, fmt.Errorf("wire: invalid bit range skip=%d n=%d", skipBits, numBits)
	}
	br := bitio.NewReader(bytes.NewReader([]byte{b}))
	if skipBits > 0 {
		if _, err := br.ReadBits(uint8(skipBits)); err != nil { //nolint:gosec // skipBits bounded above by 8
			return 0, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
	}
	v, err := br.ReadBits(uint8(numBits)) //nolint:gosec // numBits bounded above by 8
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return uint8(v), nil
}
