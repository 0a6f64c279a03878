// Copyright (C) 2024 Big Lehmer Authors.
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

// Package selecttree implements the decode-side inverse of the Lehmer
// transform: given a rank among the currently-unselected values, pick out
// and retire that value in O(log N), using the same implicit flat-array
// tree shape as ranktree.
package selecttree

import "math/bits"

// Tree selects and retires the d-th smallest remaining value, in O(log N)
// per call. The zero value is not usable; construct with New.
type Tree struct {
	// node[k] holds the number of remaining (unselected) values in the
	// left subtree rooted at k.
	node      []uint32
	leaves    uint32
	remaining uint32
}

func ceilPow2(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	return uint32(1) << bits.Len32(n-1)
}

// New builds a selection tree over the values [0, n).
func New(n uint32) *Tree {
	leaves := ceilPow2(n)
	node := make([]uint32, leaves)
	for k := uint32(1); k < leaves; k++ {
		node[k] = uint32(1) << bits.TrailingZeros32(k)
	}
	if leaves > 0 {
		node[0] = 1
	}
	return &Tree{
		node:      node,
		leaves:    leaves,
		remaining: n,
	}
}

// Remove returns the d-th smallest currently-unselected value in [0, N)
// and retires it so it can never be returned again. ok is false when d is
// out of range for the current number of remaining values, which the
// caller should treat as a decode failure.
func (t *Tree) Remove(d uint32) (v uint32, ok bool) {
	if d >= t.remaining {
		return 0, false
	}

	node := t.leaves / 2
	jump := t.leaves / 4
	leftCount := uint32(0)
	wentLeft := false

	for {
		if d >= t.node[node]+leftCount {
			leftCount += t.node[node]
			node += jump
			wentLeft = false
		} else {
			t.node[node]--
			node -= jump
			wentLeft = true
		}
		if jump == 0 {
			break
		}
		jump /= 2
	}

	t.remaining--
	// A single-leaf tree ends its walk at node 0, which is the value itself.
	if wentLeft && node > 0 {
		return node - 1, true
	}
	return node, true
}

// Remaining reports how many values have not yet been selected.
func (t *Tree) Remaining() uint32 {
	return t.remaining
}
