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

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/paktoc/paktoc/internal/wire"
)

// headerReservedSize pads the explicit fields out to the fixed 144-byte
// on-disk header size: magic(16) + version(4) + headerSize(4) +
// entryCount(4) + compressedBlockEntryCount(4) +
// compressionMethodNameCount(4) + compressionMethodNameLength(4) +
// compressionBlockSize(4) + directoryIndexSize(4) + partitionCount(4) +
// containerID(8) + encryptionKeyGUID(16) + containerFlags(1) +
// perfectHashSeedsCount(4) + chunksWithoutPerfectHashCount(4) +
// partitionSize(8) = 93 bytes of explicit fields.
const headerReservedSize = HeaderSize - 93

// decodeHeader reads the fixed 144-byte header from the start of data.
func decodeHeader(c *wire.Cursor) (*TocHeader, error) {
	magic, err := c.ReadBytes(16)
	if err != nil {
		return nil, fmt.Errorf("read magic: %w", errTruncated(err))
	}
	if !bytes.Equal(magic, Magic[:]) {
		return nil, fmt.Errorf("%w: got %x, want %x", ErrBadMagic, magic, Magic)
	}

	versionRaw, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("read version: %w", errTruncated(err))
	}
	version := Version(versionRaw)
	if !isKnown(version) {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, versionRaw)
	}

	headerSize, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("read header size: %w", errTruncated(err))
	}
	if headerSize != HeaderSize {
		return nil, fmt.Errorf("%w: declared header size %d, want %d", ErrUnsupportedVersion, headerSize, HeaderSize)
	}

	h := &TocHeader{Version: version}

	if h.EntryCount, err = c.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read entry count: %w", errTruncated(err))
	}
	if h.CompressedBlockEntryCount, err = c.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read compressed block entry count: %w", errTruncated(err))
	}
	if h.CompressionMethodNameCount, err = c.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read compression method name count: %w", errTruncated(err))
	}
	if h.CompressionMethodNameLength, err = c.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read compression method name length: %w", errTruncated(err))
	}
	if h.CompressionBlockSize, err = c.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read compression block size: %w", errTruncated(err))
	}
	if h.DirectoryIndexSize, err = c.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read directory index size: %w", errTruncated(err))
	}
	if h.PartitionCount, err = c.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read partition count: %w", errTruncated(err))
	}
	if h.ContainerID, err = c.ReadUint64(); err != nil {
		return nil, fmt.Errorf("read container id: %w", errTruncated(err))
	}
	if err := c.ReadInto(h.EncryptionKeyGUID[:]); err != nil {
		return nil, fmt.Errorf("read encryption key guid: %w", errTruncated(err))
	}
	if h.ContainerFlags, err = c.ReadUint8(); err != nil {
		return nil, fmt.Errorf("read container flags: %w", errTruncated(err))
	}
	const knownFlagBits = FlagCompressed | FlagEncrypted | FlagSigned | FlagIndexed
	if h.ContainerFlags&^knownFlagBits != 0 {
		return nil, fmt.Errorf("%w: container flags %#x set bits outside the known set", ErrInvalidRecord, h.ContainerFlags)
	}
	if h.PerfectHashSeedsCount, err = c.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read perfect hash seeds count: %w", errTruncated(err))
	}
	if h.ChunksWithoutPerfectHashCount, err = c.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read chunks without perfect hash count: %w", errTruncated(err))
	}
	if h.PartitionSize, err = c.ReadUint64(); err != nil {
		return nil, fmt.Errorf("read partition size: %w", errTruncated(err))
	}

	if _, err := c.ReadBytes(headerReservedSize); err != nil {
		return nil, fmt.Errorf("read header padding: %w", errTruncated(err))
	}

	return h, nil
}

// errTruncated normalizes a wire.ErrTruncated into this package's
// ErrTruncated so callers only need to match one sentinel.
func errTruncated(err error) error {
	if errors.Is(err, wire.ErrTruncated) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return err
}
