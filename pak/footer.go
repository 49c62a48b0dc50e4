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
	"fmt"

	"github.com/paktoc/paktoc/internal/wire"
)

// footerBaseSize is magic(4) + version(4) + indexOffset(8) + indexSize(8)
// + indexHash(20), the fields every PAK footer shape carries.
const footerBaseSize = 4 + 4 + 8 + 8 + 20

// footerSize computes the version-dependent footer size
func footerSize(v Version) int {
	size := footerBaseSize
	if hasEncryptionGUID(v) {
		size += 16
	}
	if hasEncryptedFlagByte(v) {
		size++
	}
	if hasFrozenByte(v) {
		size++
	}
	size += compressionNameSlots(v) * 32
	return size
}

// decodeFooter reads the trailing footer for a candidate version out of
// the full archive bytes field order.
func decodeFooter(data []byte, candidate Version) (*Footer, error) {
	size := footerSize(candidate)
	if size > len(data) {
		return nil, fmt.Errorf("%w: footer size %d exceeds file size %d", ErrTruncated, size, len(data))
	}
	c := wire.NewCursor(data[len(data)-size:])

	f := &Footer{Version: candidate}

	if hasEncryptionGUID(candidate) {
		if err := c.ReadInto(f.EncryptionGUID[:]); err != nil {
			return nil, fmt.Errorf("read encryption guid: %w", errTruncated(err))
		}
		f.HasEncryptionGUID = true
	}

	if hasEncryptedFlagByte(candidate) {
		b, err := c.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("read encrypted flag: %w", errTruncated(err))
		}
		if b > 1 {
			return nil, fmt.Errorf("%w: encrypted flag byte %d is not 0 or 1", ErrInvalidRecord, b)
		}
		f.EncryptedIndex = b == 1
	}

	magic, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("read magic: %w", errTruncated(err))
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: got %#x, want %#x", ErrBadMagic, magic, Magic)
	}
	f.Magic = magic

	declared, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("read version: %w", errTruncated(err))
	}
	if declared != candidate.Major() {
		return nil, fmt.Errorf("%w: declared version %d does not match probed %s (major %d)",
			ErrUnsupportedVersion, declared, candidate, candidate.Major())
	}

	if f.IndexOffset, err = c.ReadUint64(); err != nil {
		return nil, fmt.Errorf("read index offset: %w", errTruncated(err))
	}
	if f.IndexSize, err = c.ReadUint64(); err != nil {
		return nil, fmt.Errorf("read index size: %w", errTruncated(err))
	}
	if err := c.ReadInto(f.IndexHash[:]); err != nil {
		return nil, fmt.Errorf("read index hash: %w", errTruncated(err))
	}

	if hasFrozenByte(candidate) {
		b, fErr := c.ReadUint8()
		if fErr != nil {
			return nil, fmt.Errorf("read frozen flag: %w", errTruncated(fErr))
		}
		if b > 1 {
			return nil, fmt.Errorf("%w: frozen flag byte %d is not 0 or 1", ErrInvalidRecord, b)
		}
		f.Frozen = b == 1
	}

	slots := compressionNameSlots(candidate)
	if slots == 0 {
		f.Compression = []CompressionMethod{CompressionZlib, CompressionGzip, CompressionOodle}
	} else {
		f.Compression = make([]CompressionMethod, slots)
		for i := 0; i < slots; i++ {
			raw, nErr := c.ReadBytes(32)
			if nErr != nil {
				return nil, fmt.Errorf("read compression name %d: %w", i, errTruncated(nErr))
			}
			f.Compression[i] = parseCompressionName(raw)
		}
	}

	return f, nil
}

// parseCompressionName decodes a 32-byte NUL-padded ASCII compression
// method name, resolving to absent ("") on empty or unknown names.
func parseCompressionName(raw []byte) CompressionMethod {
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	name := string(raw[:end])
	switch CompressionMethod(name) {
	case CompressionZlib, CompressionGzip, CompressionOodle, CompressionZstd, CompressionLZ4:
		return CompressionMethod(name)
	default:
		return ""
	}
}

// errTruncated normalizes a wire.ErrTruncated into this package's
// ErrTruncated so callers only need to match one sentinel.
func errTruncated(err error) error {
	if errors.Is(err, wire.ErrTruncated) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return err
}
