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

import "errors"

// Sentinel errors. Wrap with fmt.Errorf("...: %w", err) at each call site
// so callers can still match with errors.Is while getting a useful
// message.
var (
	// ErrBadMagic indicates the footer magic did not match 0x5A6F12E1.
	ErrBadMagic = errors.New("pak: bad magic")

	// ErrUnsupportedVersion indicates a version value outside the known
	// set, or a declared version inconsistent with the probed candidate.
	ErrUnsupportedVersion = errors.New("pak: unsupported version")

	// ErrEncryptedIndex indicates the index is encrypted; this package
	// never attempts to decrypt it.
	ErrEncryptedIndex = errors.New("pak: encrypted index")

	// ErrTruncated indicates a read ran past the end of the file.
	ErrTruncated = errors.New("pak: truncated")

	// ErrInvalidRecord indicates a field failed a structural invariant.
	ErrInvalidRecord = errors.New("pak: invalid record")

	// ErrNotRecognized indicates no known version could open the file.
	ErrNotRecognized = errors.New("pak: not a recognized PAK archive")
)

// EncryptedIndexError reports that a footer declared its index encrypted.
// The encryption GUID, when the footer carries one, was already read
// before the refusal point and is still available so a caller can go
// looking for a key.
type EncryptedIndexError struct {
	GUID    [16]byte
	HasGUID bool
}

func (e *EncryptedIndexError) Error() string {
	return "pak: encrypted index"
}

func (e *EncryptedIndexError) Unwrap() error {
	return ErrEncryptedIndex
}

// newEncryptedIndexError builds an EncryptedIndexError carrying whatever
// encryption GUID the footer already decoded.
func newEncryptedIndexError(f *Footer) error {
	return &EncryptedIndexError{GUID: f.EncryptionGUID, HasGUID: f.HasEncryptionGUID}
}
