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

// mergeLess orders two mergeItems during the k-way merge: comparator
// order first, chunk index breaking ties (step 4 of §4.8).
type mergeLess func(a, b mergeItem) bool

// orderHeap arranges items into min-heap order in place. If len(items) >
// 0, the smallest item is always items[0].
func orderHeap(items []mergeItem, less mergeLess) {
	for i := len(items) - 1; i >= 0; i-- {
		siftDown(items, i, less)
		siftUp(items, i, less)
	}
}

// popHeap removes and returns the smallest item, restoring the heap
// invariant over the remainder of *items.
func popHeap(items *[]mergeItem, less mergeLess) mergeItem {
	top := (*items)[0]
	(*items)[0], *items = (*items)[len(*items)-1], (*items)[:len(*items)-1]
	if len(*items) > 0 {
		siftDown(*items, 0, less)
	}
	return top
}

// pushHeap adds item to *items, restoring the heap invariant.
func pushHeap(items *[]mergeItem, item mergeItem, less mergeLess) {
	*items = append(*items, item)
	siftUp(*items, len(*items)-1, less)
}

func siftUp(items []mergeItem, index int, less mergeLess) {
	for index > 0 {
		parent := (index - 1) / 2
		if less(items[parent], items[index]) {
			break
		}
		items[parent], items[index] = items[index], items[parent]
		index = parent
	}
}

func siftDown(items []mergeItem, index int, less mergeLess) {
	for {
		left := index*2 + 1
		right := left + 1
		if left >= len(items) {
			break
		}
		c := left
		if len(items) > right && less(items[right], items[left]) {
			c = right
		}
		if less(items[index], items[c]) {
			break
		}
		items[c], items[index] = items[index], items[c]
		index = c
	}
}
