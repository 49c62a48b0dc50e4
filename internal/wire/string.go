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

package wire

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// utf16Decoder transcodes little-endian UTF-16 (including surrogate
// pairs) to UTF-8. Shared across reads since it is stateless per call.
var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// ReadEngineString reads the container formats' length-prefixed string
// encoding: a signed 32-bit length L, followed by
//
//	L == 0: empty string, no payload.
//	L >  0: L single bytes, truncated at the first NUL, read as UTF-8.
//	L <  0: |L| 16-bit code units, truncated at the first zero code unit,
//	        transcoded from UTF-16LE to UTF-8 (including surrogate pairs).
func (c *Cursor) ReadEngineString() (string, error) {
	length, err := c.ReadInt32()
	if err != nil {
		return "", fmt.Errorf("read string length: %w", err)
	}

	switch {
	case length == 0:
		return "", nil
	case length > 0:
		raw, rErr := c.ReadBytes(int(length))
		if rErr != nil {
			return "", fmt.Errorf("read ascii string body: %w", rErr)
		}
		if nul := bytes.IndexByte(raw, 0); nul >= 0 {
			raw = raw[:nul]
		}
		return string(raw), nil
	default:
		units := int(-length)
		raw, rErr := c.ReadBytes(units * 2)
		if rErr != nil {
			return "", fmt.Errorf("read utf16 string body: %w", rErr)
		}
		raw = truncateAtZeroCodeUnit(raw)
		out, dErr := utf16Decoder.Bytes(raw)
		if dErr != nil {
			return "", fmt.Errorf("transcode utf16 string: %w", dErr)
		}
		return string(out), nil
	}
}

// truncateAtZeroCodeUnit returns the prefix of a little-endian UTF-16 byte
// sequence up to (not including) the first zero code unit.
func truncateAtZeroCodeUnit(raw []byte) []byte {
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			return raw[:i]
		}
	}
	return raw
}
