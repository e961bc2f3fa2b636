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

// Package delim implements RFC-4180-style delimited record reading and
// writing: CSV and TSV dialects, doubled-quote escaping, embedded
// newlines, and configurable line terminators on write.
package delim

// Terminator is a line terminator used when writing delimited records.
// Any of CRLF, LF, or CR is accepted when reading, regardless of the
// configured Terminator.
type Terminator int

const (
	// CRLF terminates written lines with "\r\n". This is the default.
	CRLF Terminator = iota
	// LF terminates written lines with "\n".
	LF
	// CR terminates written lines with "\r".
	CR
)

// Bytes returns the literal byte sequence for the terminator.
func (t Terminator) Bytes() []byte {
	switch t {
	case LF:
		return []byte{'\n'}
	case CR:
		return []byte{'\r'}
	default:
		return []byte{'\r', '\n'}
	}
}

// Dialect describes the delimiter, quote character, and write-time line
// terminator of a delimited file. The zero value is not usable directly;
// build one with NewDialect.
type Dialect struct {
	Comma      byte
	Quote      byte
	Terminator Terminator
}

// NewDialect returns the default CSV dialect: comma-separated,
// double-quote quoting, CRLF line terminator on write.
func NewDialect() Dialect {
	return Dialect{Comma: ',', Quote: '"', Terminator: CRLF}
}

// NewTSVDialect returns the default TSV dialect: tab-separated,
// double-quote quoting, CRLF line terminator on write.
func NewTSVDialect() Dialect {
	return Dialect{Comma: '\t', Quote: '"', Terminator: CRLF}
}

// WithComma returns a copy of d with its field delimiter set to c.
func (d Dialect) WithComma(c byte) Dialect {
	d.Comma = c
	return d
}

// WithQuote returns a copy of d with its quote character set to q.
func (d Dialect) WithQuote(q byte) Dialect {
	d.Quote = q
	return d
}

// WithTerminator returns a copy of d with its write-time line terminator
// set to t.
func (d Dialect) WithTerminator(t Terminator) Dialect {
	d.Terminator = t
	return d
}
