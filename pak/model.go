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
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Reader is a parsed PAK archive: a frozen snapshot of its footer and
// index, with directory listings derived lazily on first use.
type Reader struct {
	footer *Footer
	idx    *index

	dirsOnce sync.Once
	dirs     []string
}

// Open opens a PAK archive at path on the local filesystem.
func Open(path string) (*Reader, error) {
	return OpenFs(afero.NewOsFs(), path)
}

// OpenFs opens a PAK archive at path on fsys. Tests typically pass an
// afero.NewMemMapFs() built in memory instead of touching disk.
func OpenFs(fsys afero.Fs, path string) (*Reader, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read pak file: %w", err)
	}
	return openData(data)
}

// OpenReader opens a PAK archive from an io.ReaderAt of known size. The
// caller remains responsible for closing the underlying reader.
func OpenReader(r io.ReaderAt, size int64) (*Reader, error) {
	return OpenReaderWithCloser(r, size, nil)
}

// OpenReaderWithCloser opens a PAK archive from an io.ReaderAt, closing
// closer (if non-nil) once the bytes have been pulled into memory or on
// any decode failure.
func OpenReaderWithCloser(r io.ReaderAt, size int64, closer io.Closer) (*Reader, error) {
	data := make([]byte, size)
	if _, err := r.ReadAt(data, 0); err != nil && err != io.EOF {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("read pak data: %w", err)
	}
	if closer != nil {
		_ = closer.Close()
	}
	return openData(data)
}

// openData probes and decodes a complete archive image already resident
// in memory. The underlying file is never held open past this call: a
// footer lives at the end of the buffer and an index can sit anywhere
// before it, so nothing is gained by keeping a seekable handle around.
func openData(data []byte) (*Reader, error) {
	result, err := probe(data)
	if err != nil {
		return nil, err
	}
	return &Reader{footer: result.footer, idx: result.index}, nil
}

// Version reports the archive's decoded footer version.
func (r *Reader) Version() Version { return r.footer.Version }

// MountPoint returns the index's declared mount-point string.
func (r *Reader) MountPoint() string { return r.idx.mountPoint }

// EncryptedIndex reports whether the footer declared its index
// encrypted. A Reader is never successfully constructed over such an
// archive; this exists for completeness on a footer read in isolation.
func (r *Reader) EncryptedIndex() bool { return r.footer.EncryptedIndex }

// EncryptionGUID returns the footer's encryption-key GUID, if the
// version carries one.
func (r *Reader) EncryptionGUID() ([16]byte, bool) {
	return r.footer.EncryptionGUID, r.footer.HasEncryptionGUID
}

// Compression returns the footer's compression-method table.
func (r *Reader) Compression() []CompressionMethod {
	out := make([]CompressionMethod, len(r.footer.Compression))
	copy(out, r.footer.Compression)
	return out
}

// Files returns every file path in the archive, as stored (no
// mount-point concatenation), in first-seen order.
func (r *Reader) Files() []string {
	out := make([]string, len(r.idx.order))
	copy(out, r.idx.order)
	return out
}

// Entry looks up the decoded physical descriptor for path. It returns
// false if path is not present. A path that was only ever seen through
// the full-directory-index branch is returned with FromFullDirectoryIndex
// set and carries no physical descriptor besides its encoded offset.
func (r *Reader) Entry(path string) (Entry, bool) {
	e, ok := r.idx.entries[path]
	return e, ok
}

// Directories returns a sorted, de-duplicated list of every proper
// ancestor directory of every file path, with "/" as the separator.
// Computed once and cached.
func (r *Reader) Directories() []string {
	r.dirsOnce.Do(func() {
		seen := make(map[string]struct{})
		for _, path := range r.idx.order {
			for _, dir := range ancestorsOf(path) {
				seen[dir] = struct{}{}
			}
		}
		dirs := make([]string, 0, len(seen))
		for dir := range seen {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		r.dirs = dirs
	})
	out := make([]string, len(r.dirs))
	copy(out, r.dirs)
	return out
}

// ancestorsOf returns every proper ancestor directory of path, e.g.
// "a/b/c.txt" yields ["a", "a/b"].
func ancestorsOf(path string) []string {
	var out []string
	idx := strings.IndexByte(path, '/')
	for idx >= 0 {
		out = append(out, path[:idx])
		next := strings.IndexByte(path[idx+1:], '/')
		if next < 0 {
			break
		}
		idx += 1 + next
	}
	return out
}
