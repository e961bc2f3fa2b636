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

package groupsort

import (
	"io"
	"strings"
	"testing"

	"github.com/shoaldata/shoal/delim"
	"github.com/shoaldata/shoal/record"
	"github.com/shoaldata/shoal/schema"
)

type scoreRec struct {
	Team  string
	Score int64
}

func init() {
	schema.MustRegister[scoreRec](
		schema.NameField("Team", "team", schema.KindString),
		schema.NameField("Score", "score", schema.KindInt64),
	)
}

func newScoreMapper(t *testing.T, csv string) *record.Mapper[scoreRec] {
	t.Helper()
	dr := delim.NewReader(strings.NewReader(csv), delim.NewDialect())
	src := record.NewDelimitedSource(dr)
	mp, err := record.NewMapper[scoreRec](src)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	return mp
}

func TestProcessGroupsInFirstAppearanceOrderAndSortsWithinGroup(t *testing.T) {
	mp := newScoreMapper(t, "team,score\nteamB,30\nteamA,10\nteamB,5\nteamA,2\n")

	var order []string
	groups := map[string][]int64{}

	opts := NewOptions[scoreRec]().WithComparator(func(a, b *scoreRec) int {
		return int(a.Score - b.Score)
	})

	err := Process[scoreRec](mp, func(r *scoreRec) string { return r.Team }, opts,
		func(key string, stream *Stream[scoreRec]) error {
			order = append(order, key)
			for {
				rec, err := stream.Next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				groups[key] = append(groups[key], rec.Score)
			}
		})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if strings.Join(order, ",") != "teamB,teamA" {
		t.Fatalf("unexpected group order: %v", order)
	}
	if got := groups["teamB"]; len(got) != 2 || got[0] != 5 || got[1] != 30 {
		t.Fatalf("teamB not sorted: %v", got)
	}
	if got := groups["teamA"]; len(got) != 2 || got[0] != 2 || got[1] != 10 {
		t.Fatalf("teamA not sorted: %v", got)
	}
}

func TestProcessPreservesTotalRecordCount(t *testing.T) {
	mp := newScoreMapper(t, "team,score\na,1\nb,2\na,3\nc,4\nb,5\n")
	opts := NewOptions[scoreRec]().WithComparator(func(a, b *scoreRec) int { return int(a.Score - b.Score) })

	total := 0
	err := Process[scoreRec](mp, func(r *scoreRec) string { return r.Team }, opts,
		func(key string, stream *Stream[scoreRec]) error {
			for {
				_, err := stream.Next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				total++
			}
		})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected 5 records total, got %d", total)
	}
}

func TestProcessRequiresComparatorWhenNotComparable(t *testing.T) {
	mp := newScoreMapper(t, "team,score\na,1\na,2\n")
	opts := NewOptions[scoreRec]()

	err := Process[scoreRec](mp, func(r *scoreRec) string { return r.Team }, opts,
		func(key string, stream *Stream[scoreRec]) error { return nil })
	if err != ErrComparatorRequired {
		t.Fatalf("expected ErrComparatorRequired, got %v", err)
	}
}

func TestSanitizeFilenameDisambiguatesCollisions(t *testing.T) {
	used := map[string]bool{}
	a := sanitizeFilename("team/A", used)
	used[a] = true
	b := sanitizeFilename("team:A", used)
	used[b] = true
	if a == b {
		t.Fatalf("expected distinct sanitized names, got %q twice", a)
	}
	if a != "team_A.grp" {
		t.Fatalf("unexpected sanitized name: %q", a)
	}
}
