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

import "errors"

// Sentinel errors. Wrap with fmt.Errorf("...: %w", err) at each call site
// so callers can still match with errors.Is while getting a useful
// message.
var (
	// ErrBadMagic indicates the header's 16-byte magic literal did not
	// match.
	ErrBadMagic = errors.New("utoc: bad magic")

	// ErrUnsupportedVersion indicates a version value outside the known
	// enumeration, or a declared header size other than 144.
	ErrUnsupportedVersion = errors.New("utoc: unsupported version")

	// ErrEncryptedContainer indicates the Encrypted container flag was
	// set; this package never attempts to decrypt the body.
	ErrEncryptedContainer = errors.New("utoc: encrypted container")

	// ErrTruncated indicates a read ran past the end of the buffer.
	ErrTruncated = errors.New("utoc: truncated")

	// ErrInvalidRecord indicates a field failed a structural invariant,
	// such as a container-flags bit outside the known set. Out-of-range
	// directory-tree and string-table indices are not reported with it:
	// the path walk skips them.
	ErrInvalidRecord = errors.New("utoc: invalid record")
)
