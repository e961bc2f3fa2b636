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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/shoaldata/shoal/temp"
)

func chunkFileName(index int) string {
	return "chunk_" + strconv.Itoa(index) + ".tmp"
}

// chunkWriter spills one sorted chunk to a temp file, optionally through
// a zstd encoder (Options.WithCompression).
type chunkWriter struct {
	f  *os.File
	zw *zstd.Encoder
	bw *bufio.Writer
}

func newChunkWriter(dir *temp.Dir, index int, compress bool) (*chunkWriter, error) {
	f, err := os.Create(dir.Join(chunkFileName(index)))
	if err != nil {
		return nil, err
	}
	cw := &chunkWriter{f: f}
	var w io.Writer = f
	if compress {
		zw, err := zstd.NewWriter(f,
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
			zstd.WithEncoderConcurrency(1))
		if err != nil {
			f.Close()
			return nil, err
		}
		cw.zw = zw
		w = zw
	}
	cw.bw = bufio.NewWriter(w)
	return cw, nil
}

func (c *chunkWriter) writeLine(line string) error {
	if _, err := c.bw.WriteString(line); err != nil {
		return err
	}
	return c.bw.WriteByte('\n')
}

func (c *chunkWriter) close() error {
	if err := c.bw.Flush(); err != nil {
		return err
	}
	if c.zw != nil {
		if err := c.zw.Close(); err != nil {
			c.f.Close()
			return err
		}
	}
	return c.f.Close()
}

// chunkReader reads one spilled chunk back line by line during the
// k-way merge, through a zstd decoder if the chunk was compressed.
type chunkReader struct {
	f  *os.File
	zr *zstd.Decoder
	br *bufio.Reader
}

func openChunkReader(path string, compress bool) (*chunkReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	cr := &chunkReader{f: f}
	var r io.Reader = f
	if compress {
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		cr.zr = zr
		r = zr
	}
	cr.br = bufio.NewReaderSize(r, 64*1024)
	return cr, nil
}

// readLine returns the next line with its terminator stripped, io.EOF
// once exhausted.
func (c *chunkReader) readLine() (string, error) {
	return readRawLine(c.br)
}

func (c *chunkReader) close() error {
	if c.zr != nil {
		c.zr.Close()
	}
	return c.f.Close()
}

// readRawLine reads one '\n'-terminated line from br, stripping the
// terminator and a preceding '\r'. The final line of a stream lacking a
// trailing newline is still returned in full before io.EOF is reported
// on the following call.
func readRawLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if line == "" {
				return "", io.EOF
			}
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimSuffix(line[:len(line)-1], "\r"), nil
}
