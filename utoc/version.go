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

// Version enumerates the known table-of-contents header/body layouts, in
// increasing recency order. The raw on-wire value is this ordinal
// directly; there is no shape-sharing ambiguity like PAK's V8A/V8B.
type Version uint32

const (
	Invalid Version = iota
	Initial
	DirectoryIndex
	PartitionSize
	PerfectHash
	PerfectHashWithOverflow
	OnDemandMetaData
	RemovedOnDemandMetaData
	ReplaceIoChunkHashWithIoHash
)

// Latest is the newest version this package understands.
const Latest = ReplaceIoChunkHashWithIoHash

func (v Version) String() string {
	switch v {
	case Invalid:
		return "Invalid"
	case Initial:
		return "Initial"
	case DirectoryIndex:
		return "DirectoryIndex"
	case PartitionSize:
		return "PartitionSize"
	case PerfectHash:
		return "PerfectHash"
	case PerfectHashWithOverflow:
		return "PerfectHashWithOverflow"
	case OnDemandMetaData:
		return "OnDemandMetaData"
	case RemovedOnDemandMetaData:
		return "RemovedOnDemandMetaData"
	case ReplaceIoChunkHashWithIoHash:
		return "ReplaceIoChunkHashWithIoHash"
	default:
		return "Unknown"
	}
}

// isKnown reports whether v falls within the enumerated range this
// package can decode.
func isKnown(v Version) bool { return v >= Initial && v <= Latest }

// hashMapShape describes which parts of the hash-map body section are
// present for a given version.
type hashMapShape int

const (
	hashMapAbsent hashMapShape = iota
	hashMapSeedsOnly
	hashMapSeedsAndOverflow
)

func hashMapShapeFor(v Version) hashMapShape {
	switch {
	case v >= PerfectHashWithOverflow:
		return hashMapSeedsAndOverflow
	case v == PerfectHash:
		return hashMapSeedsOnly
	default:
		return hashMapAbsent
	}
}

// usesReplacedChunkHash reports whether ChunkMeta records use the
// shorter 20-byte-hash-plus-padding shape instead of the older 32-byte
// hash shape.
func usesReplacedChunkHash(v Version) bool { return v >= ReplaceIoChunkHashWithIoHash }
