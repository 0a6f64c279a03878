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

// Package encodepipe assembles the final big integer from a sequence of
// machine-word chunks produced by the running accumulator, via an
// order-preserving tree fold over the combine monoid.
package encodepipe

import (
	"math/big"

	"github.com/Hengoo/big-lehmer/internal/fanout"
	"github.com/Hengoo/big-lehmer/internal/radix"
)

// sequentialThreshold is the chunk-count below which a tree fold's
// parallelism overhead outweighs its benefit; below it Reduce just walks
// the chunks left to right.
const sequentialThreshold = 256

// Reduce folds chunks, in order, into the final mixed-radix value. pool
// may be nil, in which case the fold always runs sequentially.
func Reduce(pool *fanout.Pool, chunks []radix.Chunk) *big.Int {
	if len(chunks) == 0 {
		return big.NewInt(0)
	}
	return reduceRange(pool, chunks).Add
}

func reduceRange(pool *fanout.Pool, chunks []radix.Chunk) radix.Big {
	if pool == nil || len(chunks) <= sequentialThreshold {
		acc := radix.Identity()
		for _, c := range chunks {
			acc = radix.Combine(acc, radix.ToBig(c))
		}
		return acc
	}

	mid := len(chunks) / 2
	var left, right radix.Big
	pool.Join(
		func() { left = reduceRange(pool, chunks[:mid]) },
		func() { right = reduceRange(pool, chunks[mid:]) },
	)
	return radix.Combine(left, right)
}
