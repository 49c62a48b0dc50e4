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
	"strings"

	"github.com/paktoc/paktoc/internal/wire"
)

// invalidFullDirectoryOffset is the sentinel marking a skipped file slot
// in the full-directory-index section.
const invalidFullDirectoryOffset uint32 = 0x80000000

// index holds the decoded PAK index: the mount point plus an
// insertion-ordered file list ("ordered map" is represented
// here as parallel order+lookup structures, since a Go map alone cannot
// preserve insertion order).
type index struct {
	mountPoint string
	order      []string
	entries    map[string]Entry
}

func newIndex(mountPoint string) *index {
	return &index{mountPoint: mountPoint, entries: make(map[string]Entry)}
}

// put inserts or overwrites a path's entry. Later writers win on
// collisions; first-seen ordering is kept for files().
func (ix *index) put(path string, e Entry) {
	if _, exists := ix.entries[path]; !exists {
		ix.order = append(ix.order, path)
	}
	ix.entries[path] = e
}

// decodeIndex reads the PAK index body starting at footer.IndexOffset.
func decodeIndex(data []byte, f *Footer) (*index, error) {
	if f.EncryptedIndex {
		return nil, ErrEncryptedIndex
	}
	if f.IndexOffset > uint64(len(data)) {
		return nil, fmt.Errorf("%w: index offset %d beyond file size %d", ErrTruncated, f.IndexOffset, len(data))
	}

	c := wire.NewCursor(data[f.IndexOffset:])

	mountPoint, err := c.ReadEngineString()
	if err != nil {
		return nil, fmt.Errorf("read mount point: %w", errTruncated(err))
	}

	count, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("read entry count: %w", errTruncated(err))
	}

	ix := newIndex(mountPoint)
	compressionCount := len(f.Compression)

	if !usesPathHashIndex(f.Version) {
		for i := uint32(0); i < count; i++ {
			path, pErr := c.ReadEngineString()
			if pErr != nil {
				return nil, fmt.Errorf("read entry %d path: %w", i, errTruncated(pErr))
			}
			entry, eErr := decodeEntry(c, f.Version, compressionCount)
			if eErr != nil {
				return nil, fmt.Errorf("decode entry %d (%q): %w", i, path, eErr)
			}
			ix.put(normalizePath(path), entry)
		}
		if c.Pos() > int(f.IndexSize) {
			return nil, fmt.Errorf("%w: index body overran declared size %d", ErrTruncated, f.IndexSize)
		}
		return ix, nil
	}

	if err := decodePathHashIndex(c, ix); err != nil {
		return nil, err
	}
	if c.Pos() > int(f.IndexSize) {
		return nil, fmt.Errorf("%w: index body overran declared size %d", ErrTruncated, f.IndexSize)
	}
	return ix, nil
}

// decodePathHashIndex reads the PathHashIndex-era index shape: a path-hash
// seed, an optional path-hash-index section (skipped, not needed for
// listing), and an optional full-directory-index section that is fully
// decoded.
func decodePathHashIndex(c *wire.Cursor, ix *index) error {
	if _, err := c.ReadUint64(); err != nil { // path-hash seed
		return fmt.Errorf("read path-hash seed: %w", errTruncated(err))
	}

	hasPathHashSection, err := c.ReadUint32()
	if err != nil {
		return fmt.Errorf("read path-hash-index flag: %w", errTruncated(err))
	}
	if hasPathHashSection != 0 {
		if _, err := c.ReadUint64(); err != nil { // offset
			return fmt.Errorf("read path-hash-index offset: %w", errTruncated(err))
		}
		if _, err := c.ReadUint64(); err != nil { // size
			return fmt.Errorf("read path-hash-index size: %w", errTruncated(err))
		}
		if _, err := c.ReadBytes(20); err != nil { // hash
			return fmt.Errorf("read path-hash-index hash: %w", errTruncated(err))
		}
		// The path-hash-index body lives elsewhere in the file and is not
		// needed for building a path listing, so it is skipped entirely.
	}

	hasFullDirSection, err := c.ReadUint32()
	if err != nil {
		return fmt.Errorf("read full-directory-index flag: %w", errTruncated(err))
	}
	if hasFullDirSection == 0 {
		return nil
	}

	fullDirOffset, err := c.ReadUint64()
	if err != nil {
		return fmt.Errorf("read full-directory-index offset: %w", errTruncated(err))
	}
	if _, err := c.ReadUint64(); err != nil { // size
		return fmt.Errorf("read full-directory-index size: %w", errTruncated(err))
	}
	if _, err := c.ReadBytes(20); err != nil { // hash
		return fmt.Errorf("read full-directory-index hash: %w", errTruncated(err))
	}

	resume := c.Pos()
	if err := c.Seek(int(fullDirOffset)); err != nil {
		return fmt.Errorf("seek to full-directory-index: %w", errTruncated(err))
	}
	if err := decodeFullDirectoryIndex(c, ix); err != nil {
		return fmt.Errorf("decode full-directory-index: %w", err)
	}
	return c.Seek(resume)
}

// decodeFullDirectoryIndex reads the directory-path/file-name tree body
// of the full-directory-index section.
func decodeFullDirectoryIndex(c *wire.Cursor, ix *index) error {
	dirCount, err := c.ReadUint32()
	if err != nil {
		return fmt.Errorf("read directory count: %w", errTruncated(err))
	}

	for d := uint32(0); d < dirCount; d++ {
		dirPath, dErr := c.ReadEngineString()
		if dErr != nil {
			return fmt.Errorf("read directory %d path: %w", d, errTruncated(dErr))
		}
		fileCount, fErr := c.ReadUint32()
		if fErr != nil {
			return fmt.Errorf("read directory %d file count: %w", d, errTruncated(fErr))
		}
		for i := uint32(0); i < fileCount; i++ {
			name, nErr := c.ReadEngineString()
			if nErr != nil {
				return fmt.Errorf("read directory %d file %d name: %w", d, i, errTruncated(nErr))
			}
			encodedOffset, oErr := c.ReadUint32()
			if oErr != nil {
				return fmt.Errorf("read directory %d file %d offset: %w", d, i, errTruncated(oErr))
			}
			if encodedOffset == invalidFullDirectoryOffset {
				continue
			}
			path := normalizePath(joinDirFile(dirPath, name))
			ix.put(path, Entry{
				FullDirectoryEncodedOffset: encodedOffset,
				FromFullDirectoryIndex:     true,
			})
		}
	}
	return nil
}

// joinDirFile builds "dir/file" from a directory path and file name,
// trimming a trailing slash from dir first.
func joinDirFile(dir, file string) string {
	return strings.TrimRight(dir, "/") + "/" + file
}

// normalizePath strips a leading "/" so PakModel paths never start with
// one PakModel invariant.
func normalizePath(path string) string {
	return strings.TrimPrefix(path, "/")
}
