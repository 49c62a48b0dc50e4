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
	"fmt"

	"github.com/paktoc/paktoc/internal/wire"
)

// decodeEntry reads one PakEntry record version-gated
// field order.
func decodeEntry(c *wire.Cursor, v Version, compressionCount int) (Entry, error) {
	var e Entry

	var err error
	if e.Offset, err = c.ReadUint64(); err != nil {
		return Entry{}, fmt.Errorf("read offset: %w", errTruncated(err))
	}
	if e.CompressedSize, err = c.ReadUint64(); err != nil {
		return Entry{}, fmt.Errorf("read compressed size: %w", errTruncated(err))
	}
	if e.UncompressedSize, err = c.ReadUint64(); err != nil {
		return Entry{}, fmt.Errorf("read uncompressed size: %w", errTruncated(err))
	}

	var slotRaw uint32
	if usesSingleByteCompressionSlot(v) {
		b, sErr := c.ReadUint8()
		if sErr != nil {
			return Entry{}, fmt.Errorf("read compression slot byte: %w", errTruncated(sErr))
		}
		slotRaw = uint32(b)
	} else {
		slotRaw, err = c.ReadUint32()
		if err != nil {
			return Entry{}, fmt.Errorf("read compression slot: %w", errTruncated(err))
		}
	}
	if slotRaw == 0 {
		e.CompressionSlot = wire.NoneUint32()
	} else {
		slot := slotRaw - 1
		if int(slot) >= compressionCount {
			return Entry{}, fmt.Errorf("%w: compression slot %d >= table length %d", ErrInvalidRecord, slot, compressionCount)
		}
		e.CompressionSlot = wire.SomeUint32(slot)
	}

	if hasEntryTimestamp(v) {
		if e.Timestamp, err = c.ReadUint64(); err != nil {
			return Entry{}, fmt.Errorf("read timestamp: %w", errTruncated(err))
		}
		e.HasTimestamp = true
	}

	if err := c.ReadInto(e.Hash[:]); err != nil {
		return Entry{}, fmt.Errorf("read hash: %w", errTruncated(err))
	}

	if hasCompressionBlocks(v) && e.CompressionSlot.Valid {
		count, cErr := c.ReadUint32()
		if cErr != nil {
			return Entry{}, fmt.Errorf("read block count: %w", errTruncated(cErr))
		}
		e.Blocks = make([]Block, count)
		for i := range e.Blocks {
			start, sErr := c.ReadUint64()
			if sErr != nil {
				return Entry{}, fmt.Errorf("read block %d start: %w", i, errTruncated(sErr))
			}
			end, eErr := c.ReadUint64()
			if eErr != nil {
				return Entry{}, fmt.Errorf("read block %d end: %w", i, errTruncated(eErr))
			}
			if end < start {
				return Entry{}, fmt.Errorf("%w: block %d end %d < start %d", ErrInvalidRecord, i, end, start)
			}
			e.Blocks[i] = Block{Start: start, End: end}
		}
	}

	if hasCompressionBlocks(v) {
		if e.Flags, err = c.ReadUint8(); err != nil {
			return Entry{}, fmt.Errorf("read flags: %w", errTruncated(err))
		}
		if e.CompressionBlockSize, err = c.ReadUint32(); err != nil {
			return Entry{}, fmt.Errorf("read compression block size: %w", errTruncated(err))
		}
	}

	return e, nil
}
