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

// Package shoal is the module's convenience surface: thin, non-streaming
// wrappers over the core pipeline (charset, delim, validate, record) for
// callers that just want "read this delimited file into a slice" or
// "write this slice out" without assembling the pieces themselves.
//
// These wrappers add no core semantics of their own; streaming callers
// should use the record/delim/sheet/validate packages directly.
package shoal

import (
	"bytes"
	"io"

	"github.com/shoaldata/shoal/charset"
	"github.com/shoaldata/shoal/delim"
	"github.com/shoaldata/shoal/record"
	"github.com/shoaldata/shoal/validate"
)

// Options configures ReadAll/WriteAll. Build one with NewOptions and the
// With* methods.
type Options struct {
	charset           charset.Charset
	dialect           delim.Dialect
	skipLines         int
	collectMismatches bool
}

// NewOptions returns Options with the package defaults: plain UTF-8, the
// standard comma dialect, no skipped lines, strict (fail-fast) column
// validation.
func NewOptions() Options {
	return Options{charset: charset.UTF8, dialect: delim.NewDialect()}
}

// WithCharset sets the input/output charset.
func (o Options) WithCharset(cs charset.Charset) Options {
	o.charset = cs
	return o
}

// WithDialect sets the delimited dialect (comma, quote, terminator).
func (o Options) WithDialect(d delim.Dialect) Options {
	o.dialect = d
	return o
}

// WithSkipLines skips the first n data records after header discovery.
func (o Options) WithSkipLines(n int) Options {
	o.skipLines = n
	return o
}

// WithCollectMismatches switches ReadAll from strict validation (abort on
// the first column-count mismatch) to collecting mode: mismatched lines
// are elided from the result and returned alongside it instead of
// aborting the read.
func (o Options) WithCollectMismatches(enabled bool) Options {
	o.collectMismatches = enabled
	return o
}

func resolveOptions(opts []Options) Options {
	if len(opts) == 0 {
		return NewOptions()
	}
	return opts[0]
}

// ReadAll reads every record of type T out of r's entire delimited
// content and returns them as a slice, per spec §4.13. Because it
// materializes the whole input, it pre-scans column counts and binds
// records in two independent passes over the buffered input rather than
// a single stream. The schema for T must already be registered via
// schema.Register or schema.MustRegister.
//
// In strict mode (the default) a column-count mismatch aborts with the
// validator's error and a nil slice. In collecting mode
// (WithCollectMismatches(true)) mismatched lines are dropped from the
// result and reported in the returned []validate.Mismatch instead.
func ReadAll[T any](r io.Reader, opts ...Options) ([]*T, []validate.Mismatch, error) {
	o := resolveOptions(opts)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	scanDec, err := charset.NewReader(bytes.NewReader(data), o.charset)
	if err != nil {
		return nil, nil, err
	}
	scanReader := delim.NewReader(scanDec, o.dialect)

	var mismatches []validate.Mismatch
	if o.collectMismatches {
		mismatches, err = validate.ValidateAndCollect(scanReader)
		if err != nil {
			return nil, nil, err
		}
	} else if err := validate.Validate(scanReader); err != nil {
		return nil, nil, err
	}

	mapDec, err := charset.NewReader(bytes.NewReader(data), o.charset)
	if err != nil {
		return nil, nil, err
	}
	mapReader := delim.NewReader(mapDec, o.dialect)

	var src record.RowSource = record.NewDelimitedSource(mapReader)
	if o.collectMismatches && len(mismatches) > 0 {
		src = validate.NewFilteredSource(src, mismatches)
	}

	mp, err := record.NewMapper[T](src, record.WithSkipLines(o.skipLines))
	if err != nil {
		return nil, nil, err
	}
	defer mp.Close()

	var out []*T
	for {
		rec, err := mp.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, mismatches, err
		}
		out = append(out, rec)
	}
	return out, mismatches, nil
}

// WriteAll writes recs to w as delimited rows of type T, per spec §4.13.
// The schema for T must already be registered.
func WriteAll[T any](w io.Writer, recs []*T, opts ...Options) error {
	o := resolveOptions(opts)
	rw, err := record.NewWriter[T](w, o.dialect, o.charset)
	if err != nil {
		return err
	}
	if err := rw.WriteAll(recs); err != nil {
		return err
	}
	return rw.Flush()
}
