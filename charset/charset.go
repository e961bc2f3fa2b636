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

// Package charset detects and transcodes the character sets shoal
// understands, and strips/emits the UTF-8 byte-order mark.
package charset

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Charset names a supported character set.
type Charset int

const (
	// UTF8 is plain UTF-8 with no byte-order mark.
	UTF8 Charset = iota
	// UTF8BOM is UTF-8 with a leading byte-order mark policy on write.
	UTF8BOM
	// ShiftJIS is the Shift_JIS charset.
	ShiftJIS
	// EUCJP is the EUC-JP charset.
	EUCJP
	// Windows31J is the Windows code-page 932 superset of Shift_JIS.
	Windows31J
)

// String returns the canonical name of the charset.
func (c Charset) String() string {
	switch c {
	case UTF8:
		return "UTF-8"
	case UTF8BOM:
		return "UTF-8-with-BOM"
	case ShiftJIS:
		return "Shift_JIS"
	case EUCJP:
		return "EUC-JP"
	case Windows31J:
		return "Windows-31J"
	default:
		return "unknown"
	}
}

// bom is the three-byte UTF-8 byte-order mark.
var bom = []byte{0xEF, 0xBB, 0xBF}

// probeSize bounds how many leading bytes Detect inspects.
const probeSize = 4096

// Detect inspects up to a 4 KiB probe of r and reports the charset, along
// with a reader that replays the probed bytes followed by the remainder of
// r. On any I/O failure while probing, Detect returns UTF8 together with
// the error, so the caller can apply its own configured default.
func Detect(r io.Reader) (cs Charset, out io.Reader, err error) {
	br := bufio.NewReaderSize(r, probeSize)
	probe, peekErr := br.Peek(probeSize)
	if peekErr != nil && peekErr != io.EOF && peekErr != bufio.ErrBufferFull {
		return UTF8, br, peekErr
	}

	switch {
	case bytes.HasPrefix(probe, bom):
		cs = UTF8BOM
	case looksShiftJIS(probe):
		cs = ShiftJIS
	default:
		cs = UTF8
	}
	return cs, br, nil
}

// HasBOM reports whether the first three bytes available from r are the
// UTF-8 byte-order mark, without consuming input the caller still needs:
// it expects r to be a peekable reader such as *bufio.Reader.
func HasBOM(r *bufio.Reader) (bool, error) {
	probe, err := r.Peek(len(bom))
	if err != nil && err != io.EOF {
		return false, err
	}
	return bytes.Equal(probe, bom), nil
}

// StripBOM consumes a leading UTF-8 BOM from r if present, otherwise
// leaves r untouched. It returns a reader positioned after any stripped BOM.
func StripBOM(r io.Reader) (io.Reader, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	has, err := HasBOM(br)
	if err != nil {
		return br, err
	}
	if has {
		if _, err := br.Discard(len(bom)); err != nil {
			return br, err
		}
	}
	return br, nil
}

// EmitBOM writes the UTF-8 byte-order mark to w only when cs is UTF8BOM.
func EmitBOM(w io.Writer, cs Charset) error {
	if cs != UTF8BOM {
		return nil
	}
	_, err := w.Write(bom)
	return err
}

// looksShiftJIS applies a coarse heuristic distinguishing Shift_JIS-family
// byte distributions from plain UTF-8: a lead byte in the Shift_JIS
// double-byte ranges that is never followed by a valid UTF-8 continuation
// byte pattern is treated as a signal the stream is not UTF-8.
func looksShiftJIS(probe []byte) bool {
	for i := 0; i < len(probe); i++ {
		b := probe[i]
		isSJISLead := (b >= 0x81 && b <= 0x9F) || (b >= 0xE0 && b <= 0xFC)
		if !isSJISLead {
			continue
		}
		if i+1 >= len(probe) {
			continue
		}
		next := probe[i+1]
		validUTF8Cont := next >= 0x80 && next <= 0xBF
		if !validUTF8Cont {
			return true
		}
		i++
	}
	return false
}

// Decoder returns a transform.Transformer that decodes bytes in cs into
// UTF-8, or nil for charsets that are already UTF-8 (UTF8, UTF8BOM).
func Decoder(cs Charset) transform.Transformer {
	switch cs {
	case ShiftJIS, Windows31J:
		return japanese.ShiftJIS.NewDecoder()
	case EUCJP:
		return japanese.EUCJP.NewDecoder()
	default:
		return nil
	}
}

// Encoder returns a transform.Transformer that encodes UTF-8 bytes into
// cs, or nil for charsets that are already UTF-8 (UTF8, UTF8BOM).
func Encoder(cs Charset) transform.Transformer {
	switch cs {
	case ShiftJIS, Windows31J:
		return japanese.ShiftJIS.NewEncoder()
	case EUCJP:
		return japanese.EUCJP.NewEncoder()
	default:
		return nil
	}
}

// NewReader wraps r so reads are transcoded from cs into UTF-8. A leading
// UTF-8 BOM (for UTF8/UTF8BOM) is stripped automatically.
func NewReader(r io.Reader, cs Charset) (io.Reader, error) {
	stripped, err := StripBOM(r)
	if err != nil {
		return nil, err
	}
	if dec := Decoder(cs); dec != nil {
		return transform.NewReader(stripped, dec), nil
	}
	return stripped, nil
}

// NewWriter wraps w so writes are transcoded from UTF-8 into cs, emitting
// a leading BOM first when cs is UTF8BOM.
func NewWriter(w io.Writer, cs Charset) (io.Writer, error) {
	if err := EmitBOM(w, cs); err != nil {
		return nil, err
	}
	if enc := Encoder(cs); enc != nil {
		return transformWriter{transform.NewWriter(w, enc)}, nil
	}
	return w, nil
}

// transformWriter adapts *transform.Writer to the plain io.Writer
// interface shoal's callers expect (transform.Writer already satisfies
// it, this type exists purely so call sites do not need to import
// golang.org/x/text/transform themselves).
type transformWriter struct {
	*transform.Writer
}
