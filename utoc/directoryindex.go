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
	"strings"

	"github.com/paktoc/paktoc/internal/wire"
)

// decodeDirectoryIndex parses the directory-index sub-buffer extracted by
// the body decoder: mount point, directory-entry vector, file-entry
// vector, and shared string table.
func decodeDirectoryIndex(c *wire.Cursor) (*DirectoryIndex, error) {
	di := &DirectoryIndex{}

	mount, err := c.ReadEngineString()
	if err != nil {
		return nil, fmt.Errorf("read mount point: %w", errTruncated(err))
	}
	di.MountPoint = mount

	dirCount, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("read directory entry count: %w", errTruncated(err))
	}
	di.Directories = make([]DirectoryEntry, dirCount)
	for i := range di.Directories {
		var d DirectoryEntry
		if d.Name, err = c.ReadOptionalIndex(); err != nil {
			return nil, fmt.Errorf("read directory %d name: %w", i, errTruncated(err))
		}
		if d.FirstChildEntry, err = c.ReadOptionalIndex(); err != nil {
			return nil, fmt.Errorf("read directory %d first child: %w", i, errTruncated(err))
		}
		if d.NextSiblingEntry, err = c.ReadOptionalIndex(); err != nil {
			return nil, fmt.Errorf("read directory %d next sibling: %w", i, errTruncated(err))
		}
		if d.FirstFileEntry, err = c.ReadOptionalIndex(); err != nil {
			return nil, fmt.Errorf("read directory %d first file: %w", i, errTruncated(err))
		}
		di.Directories[i] = d
	}

	fileCount, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("read file entry count: %w", errTruncated(err))
	}
	di.Files = make([]FileEntry, fileCount)
	for i := range di.Files {
		var f FileEntry
		if f.Name, err = c.ReadUint32(); err != nil {
			return nil, fmt.Errorf("read file %d name: %w", i, errTruncated(err))
		}
		if f.NextFileEntry, err = c.ReadOptionalIndex(); err != nil {
			return nil, fmt.Errorf("read file %d next file: %w", i, errTruncated(err))
		}
		if f.UserData, err = c.ReadUint32(); err != nil {
			return nil, fmt.Errorf("read file %d user data: %w", i, errTruncated(err))
		}
		di.Files[i] = f
	}

	stringCount, err := c.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("read string count: %w", errTruncated(err))
	}
	di.Strings = make([]string, stringCount)
	for i := range di.Strings {
		s, sErr := c.ReadEngineString()
		if sErr != nil {
			return nil, fmt.Errorf("read string %d: %w", i, errTruncated(sErr))
		}
		di.Strings[i] = s
	}

	return di, nil
}

// stringAt returns the string-table entry at idx, or "" if idx is out of
// range; directory and file names are supposed to always index validly,
// but a malformed file should not panic the walk.
func (di *DirectoryIndex) stringAt(idx uint32) string {
	if int(idx) >= len(di.Strings) {
		return ""
	}
	return di.Strings[idx]
}

// allFilePaths walks the directory tree depth-first from directory 0,
// collecting every file's full path with the mount point and path stack
// joined by "/", with repeated slashes collapsed. The walk guards against
// a cycle with a visited set even though the format guarantees the tree is
// acyclic, rather than trust that invariant and risk an infinite loop on a
// malformed file.
func (di *DirectoryIndex) allFilePaths() []string {
	if len(di.Directories) == 0 {
		return nil
	}

	var paths []string
	visited := make(map[uint32]bool, len(di.Directories))
	var stack []string

	var walk func(dirIdx uint32)
	walk = func(dirIdx uint32) {
		if visited[dirIdx] || int(dirIdx) >= len(di.Directories) {
			return
		}
		visited[dirIdx] = true
		dir := di.Directories[dirIdx]

		pushed := false
		if dir.Name.Valid {
			stack = append(stack, di.stringAt(dir.Name.Value))
			pushed = true
		}

		if dir.FirstFileEntry.Valid {
			fileIdx := dir.FirstFileEntry
			seenFiles := make(map[uint32]bool)
			for fileIdx.Valid && int(fileIdx.Value) < len(di.Files) && !seenFiles[fileIdx.Value] {
				seenFiles[fileIdx.Value] = true
				file := di.Files[fileIdx.Value]
				paths = append(paths, collapseSlashes(joinPath(di.MountPoint, stack, di.stringAt(file.Name))))
				fileIdx = file.NextFileEntry
			}
		}

		if dir.FirstChildEntry.Valid {
			childIdx := dir.FirstChildEntry
			for childIdx.Valid && int(childIdx.Value) < len(di.Directories) && !visited[childIdx.Value] {
				child := di.Directories[childIdx.Value]
				walk(childIdx.Value)
				childIdx = child.NextSiblingEntry
			}
		}

		if pushed {
			stack = stack[:len(stack)-1]
		}
	}

	walk(0)
	return paths
}

func joinPath(mountPoint string, stack []string, fileName string) string {
	parts := append([]string{mountPoint}, stack...)
	parts = append(parts, fileName)
	return strings.Join(parts, "/")
}

func collapseSlashes(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	prevSlash := false
	for _, r := range path {
		if r == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
