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

package extsort

import (
	"bufio"
	"errors"
	"io"
	"sort"

	"github.com/shoaldata/shoal/charset"
	"github.com/shoaldata/shoal/temp"
)

// ErrNoComparator is returned by Sort when Options has no comparator set.
var ErrNoComparator = errors.New("extsort: a comparator is required")

// mergeItem is one chunk reader's current line, tracked on the merge
// heap. Ties in comparator order are broken by chunk index, the
// smaller index winning, per spec §4.8 step 4.
type mergeItem struct {
	chunk int
	line  string
}

// Sort implements C8: bounded-memory external sort of input's lines
// into output, via chunked in-memory sort and a k-way merge.
//
// Empty lines are dropped, matching spec.md's ordering property that
// the output is a permutation of the input minus empty lines.
func Sort(input io.Reader, output io.Writer, opts Options) error {
	if opts.comparator == nil {
		return ErrNoComparator
	}

	dir, err := temp.New(opts.tempLabel)
	if err != nil {
		return err
	}
	defer dir.Close()

	dec, err := charset.NewReader(input, opts.charset)
	if err != nil {
		return err
	}
	br := bufio.NewReaderSize(dec, 64*1024)

	var header string
	haveHeader := false
	if opts.skipHeader {
		line, rerr := readRawLine(br)
		if rerr != nil && rerr != io.EOF {
			return rerr
		}
		if rerr != io.EOF {
			header, haveHeader = line, true
		}
	}

	numChunks := 0
	var chunk []string
	var chunkBytes int64

	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		sort.SliceStable(chunk, func(i, j int) bool {
			return opts.comparator(chunk[i], chunk[j]) < 0
		})
		cw, cerr := newChunkWriter(dir, numChunks, opts.compress)
		if cerr != nil {
			return cerr
		}
		for _, line := range chunk {
			if werr := cw.writeLine(line); werr != nil {
				cw.close()
				return werr
			}
		}
		if cerr := cw.close(); cerr != nil {
			return cerr
		}
		numChunks++
		chunk = chunk[:0]
		chunkBytes = 0
		return nil
	}

	for {
		line, rerr := readRawLine(br)
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
		if line == "" {
			continue
		}
		lineBytes := int64(len(line)) + 1
		if chunkBytes+lineBytes > opts.chunkSizeBytes && len(chunk) > 0 {
			if ferr := flush(); ferr != nil {
				return ferr
			}
		}
		chunk = append(chunk, line)
		chunkBytes += lineBytes
	}
	if err := flush(); err != nil {
		return err
	}

	enc, err := charset.NewWriter(output, opts.charset)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)

	if haveHeader {
		if _, werr := bw.WriteString(header); werr != nil {
			return werr
		}
		if werr := bw.WriteByte('\n'); werr != nil {
			return werr
		}
	}

	if err := mergeChunks(dir, numChunks, opts, bw); err != nil {
		return err
	}

	return bw.Flush()
}

// mergeChunks performs step 4 of §4.8: a k-way merge of the numChunks
// sorted spill files into out, via a min-heap of one pending line per
// chunk.
func mergeChunks(dir *temp.Dir, numChunks int, opts Options, out *bufio.Writer) error {
	if numChunks == 0 {
		return nil
	}

	readers := make([]*chunkReader, numChunks)
	defer func() {
		for _, cr := range readers {
			if cr != nil {
				cr.close()
			}
		}
	}()
	for i := 0; i < numChunks; i++ {
		cr, err := openChunkReader(dir.Join(chunkFileName(i)), opts.compress)
		if err != nil {
			return err
		}
		readers[i] = cr
	}

	less := func(a, b mergeItem) bool {
		if c := opts.comparator(a.line, b.line); c != 0 {
			return c < 0
		}
		return a.chunk < b.chunk
	}

	var heap []mergeItem
	for i, cr := range readers {
		line, err := cr.readLine()
		if err == io.EOF {
			continue
		}
		if err != nil {
			return err
		}
		heap = append(heap, mergeItem{chunk: i, line: line})
	}
	orderHeap(heap, less)

	for len(heap) > 0 {
		top := popHeap(&heap, less)
		if _, err := out.WriteString(top.line); err != nil {
			return err
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
		line, err := readers[top.chunk].readLine()
		if err == io.EOF {
			continue
		}
		if err != nil {
			return err
		}
		pushHeap(&heap, mergeItem{chunk: top.chunk, line: line}, less)
	}
	return nil
}
