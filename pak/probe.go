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

// probeOrder lists candidate versions newest-first. V8A/V8B share an
// on-wire major (8) but differ in footer shape, so both are tried before
// falling back to the strictly older EncryptionKeyGuid shape.
var probeOrder = []Version{
	Fnv64BugFix,
	PathHashIndex,
	FrozenIndex,
	V8B,
	V8A,
	EncryptionKeyGuid,
	DeleteRecords,
	RelativeChunkOffsets,
	IndexEncryption,
	CompressionEncryption,
	NoTimestamps,
	Initial,
}

// isRetryable reports whether a probe failure should move on to the next
// candidate version rather than aborting the whole probe immediately.
func isRetryable(err error) bool {
	return errors.Is(err, ErrBadMagic) ||
		errors.Is(err, ErrUnsupportedVersion) ||
		errors.Is(err, ErrTruncated) ||
		errors.Is(err, ErrInvalidRecord)
}

// probeResult bundles the decoded pieces produced by a single successful
// candidate attempt.
type probeResult struct {
	footer *Footer
	index  *index
}

// probe tries each known PAK version against data, newest first, and
// returns the first candidate whose footer and index both decode
// successfully. If every candidate fails, it surfaces the failure with the
// highest progress score: the candidate's footer size, plus the footer's
// index offset when the footer decoded and the index did not. The score
// does not count the bytes an attempt actually read, so a candidate whose
// footer is larger than the whole file still scores its full footer size.
func probe(data []byte) (*probeResult, error) {
	var bestErr error
	var bestProgress int

	for _, v := range probeOrder {
		f, err := decodeFooter(data, v)
		if err != nil {
			if !isRetryable(err) {
				return nil, err
			}
			if footerSize(v) > bestProgress {
				bestProgress = footerSize(v)
				bestErr = err
			}
			continue
		}

		ix, err := decodeIndex(data, f)
		if err != nil {
			if errors.Is(err, ErrEncryptedIndex) {
				// The footer decoded cleanly and declares an encrypted
				// index; this is the archive's actual shape, not a probe
				// miss, so it wins immediately.
				return nil, newEncryptedIndexError(f)
			}
			if !isRetryable(err) {
				return nil, err
			}
			progress := footerSize(v) + int(f.IndexOffset)
			if progress > bestProgress {
				bestProgress = progress
				bestErr = err
			}
			continue
		}

		return &probeResult{footer: f, index: ix}, nil
	}

	if bestErr != nil {
		return nil, errors.Join(ErrNotRecognized, bestErr)
	}
	return nil, ErrNotRecognized
}
