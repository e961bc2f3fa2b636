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

package multifile

import (
	"errors"
	"strings"
	"testing"

	"github.com/shoaldata/shoal/delim"
	"github.com/shoaldata/shoal/record"
	"github.com/shoaldata/shoal/schema"
)

type multiRec struct {
	Name string
}

func init() {
	schema.MustRegister[multiRec](schema.NameField("Name", "name", schema.KindString))
}

func openerFor(t *testing.T, csv string) Opener[multiRec] {
	return func() (*record.Mapper[multiRec], error) {
		dr := delim.NewReader(strings.NewReader(csv), delim.NewDialect())
		return record.NewMapper[multiRec](record.NewDelimitedSource(dr))
	}
}

func names(recs []*multiRec) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}

func TestReadAllPreservesInputOrderRegardlessOfParallelism(t *testing.T) {
	openers := []Opener[multiRec]{
		openerFor(t, "name\na1\na2\na3\n"),
		openerFor(t, "name\nb1\n"),
		openerFor(t, "name\nc1\nc2\n"),
	}
	want := "a1,a2,a3,b1,c1,c2"

	for _, p := range []int{1, 2, 3, 8} {
		recs, err := ReadAll[multiRec](openers, p)
		if err != nil {
			t.Fatalf("parallelism=%d: ReadAll: %v", p, err)
		}
		got := strings.Join(names(recs), ",")
		if got != want {
			t.Fatalf("parallelism=%d: got %q, want %q", p, got, want)
		}
	}
}

func TestReadAllPropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	openers := []Opener[multiRec]{
		openerFor(t, "name\na1\n"),
		func() (*record.Mapper[multiRec], error) { return nil, boom },
	}
	_, err := ReadAll[multiRec](openers, 2)
	if err == nil || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom error, got %v", err)
	}
}

func TestReadAllEmptyInput(t *testing.T) {
	recs, err := ReadAll[multiRec](nil, 4)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}
