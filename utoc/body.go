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
	"fmt"

	"github.com/paktoc/paktoc/internal/wire"
)

// decodeBody consumes the fixed sequence of body sections that follow the
// header, in the order the header's counts describe them.
func decodeBody(c *wire.Cursor, h *TocHeader) (*TocModel, error) {
	m := &TocModel{Header: *h}

	var err error
	if m.ChunkIds, err = decodeChunkIds(c, h.EntryCount); err != nil {
		return nil, err
	}
	if m.OffsetsAndLengths, err = decodeOffsetsAndLengths(c, h.EntryCount); err != nil {
		return nil, err
	}
	if m.PerfectHashSeeds, m.ChunksWithoutPerfectHash, err = decodeHashMap(c, h); err != nil {
		return nil, err
	}
	if m.CompressedBlockEntries, err = decodeCompressedBlockEntries(c, h.CompressedBlockEntryCount); err != nil {
		return nil, err
	}
	if m.CompressionMethods, err = decodeCompressionMethods(c, h); err != nil {
		return nil, err
	}

	if h.HasFlag(FlagEncrypted) {
		return nil, ErrEncryptedContainer
	}

	if h.HasFlag(FlagSigned) {
		if err = skipSignatures(c, h.CompressedBlockEntryCount); err != nil {
			return nil, err
		}
	}

	if h.HasFlag(FlagIndexed) && h.DirectoryIndexSize > 0 {
		dirIndexBytes, rErr := c.ReadBytes(int(h.DirectoryIndexSize))
		if rErr != nil {
			return nil, fmt.Errorf("read directory index section: %w", errTruncated(rErr))
		}
		di, dErr := decodeDirectoryIndex(wire.NewCursor(bytes.Clone(dirIndexBytes)))
		if dErr != nil {
			return nil, dErr
		}
		m.DirectoryIndex = *di
	}

	if m.ChunkMetas, err = decodeChunkMetas(c, h); err != nil {
		return nil, err
	}

	return m, nil
}

func decodeChunkIds(c *wire.Cursor, count uint32) ([]ChunkId, error) {
	ids := make([]ChunkId, count)
	for i := range ids {
		if err := c.ReadInto(ids[i][:]); err != nil {
			return nil, fmt.Errorf("read chunk id %d: %w", i, errTruncated(err))
		}
	}
	return ids, nil
}

func decodeOffsetsAndLengths(c *wire.Cursor, count uint32) ([]OffsetAndLength, error) {
	out := make([]OffsetAndLength, count)
	for i := range out {
		if err := c.ReadInto(out[i][:]); err != nil {
			return nil, fmt.Errorf("read offset/length %d: %w", i, errTruncated(err))
		}
	}
	return out, nil
}

func decodeHashMap(c *wire.Cursor, h *TocHeader) (seeds, overflow []uint32, err error) {
	shape := hashMapShapeFor(h.Version)
	if shape == hashMapAbsent {
		return nil, nil, nil
	}

	seeds, err = readUint32Vector(c, h.PerfectHashSeedsCount, "perfect hash seed")
	if err != nil {
		return nil, nil, err
	}
	if shape == hashMapSeedsOnly {
		return seeds, nil, nil
	}

	overflow, err = readUint32Vector(c, h.ChunksWithoutPerfectHashCount, "chunk without perfect hash")
	if err != nil {
		return nil, nil, err
	}
	return seeds, overflow, nil
}

func readUint32Vector(c *wire.Cursor, count uint32, label string) ([]uint32, error) {
	out := make([]uint32, count)
	for i := range out {
		v, err := c.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("read %s %d: %w", label, i, errTruncated(err))
		}
		out[i] = v
	}
	return out, nil
}

func decodeCompressedBlockEntries(c *wire.Cursor, count uint32) ([]CompressedBlockEntry, error) {
	out := make([]CompressedBlockEntry, count)
	for i := range out {
		if err := c.ReadInto(out[i][:]); err != nil {
			return nil, fmt.Errorf("read compressed block entry %d: %w", i, errTruncated(err))
		}
	}
	return out, nil
}

func decodeCompressionMethods(c *wire.Cursor, h *TocHeader) ([]string, error) {
	out := make([]string, h.CompressionMethodNameCount)
	for i := range out {
		raw, err := c.ReadBytes(int(h.CompressionMethodNameLength))
		if err != nil {
			return nil, fmt.Errorf("read compression method name %d: %w", i, errTruncated(err))
		}
		if nul := bytes.IndexByte(raw, 0); nul >= 0 {
			raw = raw[:nul]
		}
		out[i] = string(raw)
	}
	return out, nil
}

// skipSignatures discards the signature section without validating any
// signature: the TOC signature and block signature blobs (each sized by the
// leading 32-bit S), a trailing size field, and the per-block SHA1 table.
func skipSignatures(c *wire.Cursor, compressedBlockEntryCount uint32) error {
	sigSize, err := c.ReadUint32()
	if err != nil {
		return fmt.Errorf("read signature size: %w", errTruncated(err))
	}
	if err := c.Skip(2*int(sigSize) + 4); err != nil {
		return fmt.Errorf("skip signature blobs: %w", errTruncated(err))
	}
	if err := c.Skip(int(compressedBlockEntryCount) * 20); err != nil {
		return fmt.Errorf("skip per-block sha1 table: %w", errTruncated(err))
	}
	return nil
}

func decodeChunkMetas(c *wire.Cursor, h *TocHeader) ([]ChunkMeta, error) {
	out := make([]ChunkMeta, h.EntryCount)
	replaced := usesReplacedChunkHash(h.Version)
	for i := range out {
		var meta ChunkMeta
		if replaced {
			if err := c.ReadInto(meta.Hash[:20]); err != nil {
				return nil, fmt.Errorf("read chunk meta hash %d: %w", i, errTruncated(err))
			}
			flags, err := c.ReadUint8()
			if err != nil {
				return nil, fmt.Errorf("read chunk meta flags %d: %w", i, errTruncated(err))
			}
			meta.Flags = flags
			if err := c.Skip(3); err != nil {
				return nil, fmt.Errorf("skip chunk meta padding %d: %w", i, errTruncated(err))
			}
		} else {
			if err := c.ReadInto(meta.Hash[:]); err != nil {
				return nil, fmt.Errorf("read chunk meta hash %d: %w", i, errTruncated(err))
			}
			flags, err := c.ReadUint8()
			if err != nil {
				return nil, fmt.Errorf("read chunk meta flags %d: %w", i, errTruncated(err))
			}
			meta.Flags = flags
		}
		out[i] = meta
	}
	return out, nil
}
