// Copyright (C) 2026 The Shoal Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package extsort implements the external (chunked-sort, k-way-merge)
// line sorter (C8): bounded-memory sorting of arbitrarily large
// line-oriented input via sorted spill chunks merged through a min-heap.
package extsort

import "github.com/shoaldata/shoal/charset"

// defaultChunkSizeBytes is the chunk size NewOptions sets unless
// WithChunkSize overrides it, matching spec.md's own default (100 MB).
const defaultChunkSizeBytes int64 = 100 * 1024 * 1024

// Comparator orders two lines, negative if a sorts before b, zero if
// equal, positive otherwise. It must be deterministic: ties are broken
// by chunk index, not by the comparator, to keep the merge stable.
type Comparator func(a, b string) int

// Options configures one Sort call. Build one with NewOptions and the
// With* methods, the same builder shape as delim.Dialect.
type Options struct {
	chunkSizeBytes int64
	comparator     Comparator
	skipHeader     bool
	charset        charset.Charset
	compress       bool
	tempLabel      string
}

// NewOptions returns an Options with spec defaults: a 100 MB chunk size,
// plain UTF-8, no header line, no compression.
func NewOptions() Options {
	return Options{
		chunkSizeBytes: defaultChunkSizeBytes,
		charset:        charset.UTF8,
		tempLabel:      "extsort",
	}
}

// WithChunkSize sets the in-memory accumulation threshold, in bytes,
// before a chunk is sorted and spilled.
func (o Options) WithChunkSize(bytes int64) Options {
	o.chunkSizeBytes = bytes
	return o
}

// WithComparator sets the line ordering. Required: Sort returns an error
// if no comparator has been set.
func (o Options) WithComparator(cmp Comparator) Options {
	o.comparator = cmp
	return o
}

// WithSkipHeader, when true, consumes the input's first line verbatim
// and re-emits it before the sorted output rather than sorting it.
func (o Options) WithSkipHeader(skip bool) Options {
	o.skipHeader = skip
	return o
}

// WithCharset sets the charset the input is decoded from and the
// output is encoded to.
func (o Options) WithCharset(cs charset.Charset) Options {
	o.charset = cs
	return o
}

// WithCompression, when true, compresses each spill chunk with zstd,
// trading CPU for temp-disk footprint on large sorts.
func (o Options) WithCompression(enabled bool) Options {
	o.compress = enabled
	return o
}

// WithTempLabel overrides the label used in the scratch directory's
// name (see temp.New); mainly useful for diagnostics when a process
// runs more than one sort concurrently.
func (o Options) WithTempLabel(label string) Options {
	o.tempLabel = label
	return o
}
