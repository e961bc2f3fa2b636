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

// Package groupsort implements the group-partition-and-sort operation
// (C9): records are spilled to one file per group key, each group is
// sorted in memory once fully spilled, and groups are handed to a
// caller-supplied handler in first-appearance order.
package groupsort

// KeyFunc computes a group key from a record.
type KeyFunc[T any] func(rec *T) string

// Comparator orders two records of the same group, negative if a sorts
// before b. When Options has none set, T must implement Comparable[T]
// instead (see sortGroup).
type Comparator[T any] func(a, b *T) int

// Comparable is the fallback ordering a record type can implement so
// Process does not require an explicit Comparator, per spec §4.9 step 4
// ("if absent, require the record type to be comparable").
type Comparable[T any] interface {
	CompareTo(other *T) int
}

// Options configures one Process call.
type Options[T any] struct {
	comparator Comparator[T]
	tempLabel  string
}

// NewOptions returns an Options with no comparator (falls back to
// Comparable[T] at sort time) and the default temp-directory label.
func NewOptions[T any]() Options[T] {
	return Options[T]{tempLabel: "groupsort"}
}

// WithComparator sets the in-group ordering.
func (o Options[T]) WithComparator(cmp Comparator[T]) Options[T] {
	o.comparator = cmp
	return o
}

// WithTempLabel overrides the label used in the scratch directory's name.
func (o Options[T]) WithTempLabel(label string) Options[T] {
	o.tempLabel = label
	return o
}
