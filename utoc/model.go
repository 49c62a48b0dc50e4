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
	"fmt"
	"io"
	"sync"

	"github.com/spf13/afero"

	"github.com/paktoc/paktoc/internal/wire"
)

// Reader is a parsed table-of-contents file: a frozen snapshot of its
// header, chunk tables, and directory index, with the full file-path
// listing derived lazily on first use.
type Reader struct {
	model *TocModel

	pathsOnce sync.Once
	paths     []string
}

// Open opens a table-of-contents file at path on the local filesystem.
func Open(path string) (*Reader, error) {
	return OpenFs(afero.NewOsFs(), path)
}

// OpenFs opens a table-of-contents file at path on fsys. Tests typically
// pass an afero.NewMemMapFs() built in memory instead of touching disk.
func OpenFs(fsys afero.Fs, path string) (*Reader, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read utoc file: %w", err)
	}
	return openData(data)
}

// OpenReader opens a table-of-contents file from an io.ReaderAt of known
// size. The caller remains responsible for closing the underlying reader.
func OpenReader(r io.ReaderAt, size int64) (*Reader, error) {
	return OpenReaderWithCloser(r, size, nil)
}

// OpenReaderWithCloser opens a table-of-contents file from an
// io.ReaderAt, closing closer (if non-nil) once the bytes have been
// pulled into memory or on any decode failure.
func OpenReaderWithCloser(r io.ReaderAt, size int64, closer io.Closer) (*Reader, error) {
	data := make([]byte, size)
	if _, err := r.ReadAt(data, 0); err != nil && err != io.EOF {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("read utoc data: %w", err)
	}
	if closer != nil {
		_ = closer.Close()
	}
	return openData(data)
}

// openData decodes a complete table-of-contents image already resident in
// memory. Unlike PAK, whose footer lives at the end of the file, a
// table-of-contents file is read front to back in one pass, so the entire
// buffer is consumed up front and the underlying handle is never needed
// again.
func openData(data []byte) (*Reader, error) {
	c := wire.NewCursor(data)
	h, err := decodeHeader(c)
	if err != nil {
		return nil, err
	}
	m, err := decodeBody(c, h)
	if err != nil {
		return nil, err
	}
	return &Reader{model: m}, nil
}

// Header returns the decoded 144-byte header.
func (r *Reader) Header() TocHeader { return r.model.Header }

// DirectoryIndex returns the decoded directory tree and string table. It
// is the zero value if the container was not Indexed or carried no
// directory-index bytes.
func (r *Reader) DirectoryIndex() DirectoryIndex { return r.model.DirectoryIndex }

// AllFilePaths returns every file path in the table-of-contents, fully
// concatenated with the mount point and slash-normalized, in depth-first
// traversal order. Computed once and cached.
func (r *Reader) AllFilePaths() []string {
	r.pathsOnce.Do(func() {
		r.paths = r.model.DirectoryIndex.allFilePaths()
	})
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// ChunkIds returns the raw 12-byte chunk identifiers, in file order.
func (r *Reader) ChunkIds() []ChunkId {
	out := make([]ChunkId, len(r.model.ChunkIds))
	copy(out, r.model.ChunkIds)
	return out
}

// OffsetsAndLengths returns the per-chunk offset/length records, parallel
// to ChunkIds.
func (r *Reader) OffsetsAndLengths() []OffsetAndLength {
	out := make([]OffsetAndLength, len(r.model.OffsetsAndLengths))
	copy(out, r.model.OffsetsAndLengths)
	return out
}

// CompressedBlockEntries returns the decoded compressed-block table.
func (r *Reader) CompressedBlockEntries() []CompressedBlockEntry {
	out := make([]CompressedBlockEntry, len(r.model.CompressedBlockEntries))
	copy(out, r.model.CompressedBlockEntries)
	return out
}

// CompressionMethods returns the declared compression-method name table.
func (r *Reader) CompressionMethods() []string {
	out := make([]string, len(r.model.CompressionMethods))
	copy(out, r.model.CompressionMethods)
	return out
}

// ChunkMetas returns the per-chunk hash and flag metadata, parallel to
// ChunkIds.
func (r *Reader) ChunkMetas() []ChunkMeta {
	out := make([]ChunkMeta, len(r.model.ChunkMetas))
	copy(out, r.model.ChunkMetas)
	return out
}
