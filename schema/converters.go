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

package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// builtin returns the built-in converter for kind. Kinds are resolved the
// way the teacher's field-hint dispatch table resolves ingestion
// functions: one converter per primitive type, looked up once per field
// and reused for every row.
func builtin(kind Kind) *Converter {
	switch kind {
	case KindString:
		return &stringConverter
	case KindInt32:
		return &int32Converter
	case KindInt64:
		return &int64Converter
	case KindDouble:
		return &doubleConverter
	case KindBool:
		return &boolConverter
	case KindDate:
		return &dateConverter
	case KindDateTime:
		return &dateTimeConverter
	default:
		return nil
	}
}

var stringConverter = Converter{
	Decode: func(raw string) (any, error) { return raw, nil },
	Encode: func(v any) (string, error) { return fmt.Sprint(v), nil },
}

var int32Converter = Converter{
	Decode: func(raw string) (any, error) {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	},
	Encode: func(v any) (string, error) {
		return fmt.Sprintf("%d", v), nil
	},
}

var int64Converter = Converter{
	Decode: func(raw string) (any, error) {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, err
		}
		return n, nil
	},
	Encode: func(v any) (string, error) {
		return fmt.Sprintf("%d", v), nil
	},
}

var doubleConverter = Converter{
	Decode: func(raw string) (any, error) {
		return strconv.ParseFloat(strings.TrimSpace(raw), 64)
	},
	Encode: func(v any) (string, error) {
		f, ok := v.(float64)
		if !ok {
			return fmt.Sprint(v), nil
		}
		return FormatNumber(f), nil
	},
}

var boolConverter = Converter{
	Decode: func(raw string) (any, error) {
		s := strings.TrimSpace(strings.ToLower(raw))
		switch s {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return strconv.ParseBool(s)
	},
	Encode: func(v any) (string, error) {
		b, _ := v.(bool)
		if b {
			return "true", nil
		}
		return "false", nil
	},
}

var dateConverter = Converter{
	Decode: func(raw string) (any, error) {
		return parseDate(raw, "2006-01-02")
	},
	Encode: func(v any) (string, error) {
		t, ok := v.(time.Time)
		if !ok {
			return "", fmt.Errorf("schema: expected time.Time, got %T", v)
		}
		return t.Format("2006-01-02"), nil
	},
}

var dateTimeConverter = Converter{
	Decode: func(raw string) (any, error) {
		return parseDate(raw, time.RFC3339)
	},
	Encode: func(v any) (string, error) {
		t, ok := v.(time.Time)
		if !ok {
			return "", fmt.Errorf("schema: expected time.Time, got %T", v)
		}
		return t.Format("2006-01-02 15:04:05"), nil
	},
}

// parseDate accepts ISO-8601 in the given layout, falling back to a few
// common variants, per the spec's "ISO-8601 or spreadsheet date-serial"
// contract (the date-serial half is handled upstream in package sheet,
// which hands this converter an already-formatted ISO string).
func parseDate(raw string, layout string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{layout, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}
	var lastErr error
	for _, l := range layouts {
		t, err := time.Parse(l, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatNumber renders f without a trailing fractional part when f is
// integral, and in decimal form otherwise, implementing the spec's fixed
// rule for numeric cell/field stringification.
func FormatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ResolveConverter returns f's custom converter if set, otherwise the
// built-in converter for f.Kind.
func ResolveConverter(f FieldSpec) (*Converter, error) {
	if f.Converter != nil {
		return f.Converter, nil
	}
	c := builtin(f.Kind)
	if c == nil {
		return nil, fmt.Errorf("schema: no built-in converter for kind %d; supply WithConverter", f.Kind)
	}
	return c, nil
}
