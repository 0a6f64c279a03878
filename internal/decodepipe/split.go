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

// Package decodepipe implements the decoder's recursive split-divide: it
// turns one big dividend into the sequence of factorial-base remainders
// for divisors start, start+1, ..., start+len(remainders)-1, splitting the
// dividend by a partial factorial so that neither half's bit length
// dominates the other's, recursing until each piece fits a machine word.
package decodepipe

import (
	"math/big"

	"github.com/Hengoo/big-lehmer/internal/bigfactorial"
	"github.com/Hengoo/big-lehmer/internal/fanout"
)

// parallelThreshold is the output-length above which the two halves of a
// split are run as a fork-join pair instead of sequentially.
const parallelThreshold = 1000

// Split writes remainders[i] = (appropriately reduced dividend) mod
// (start+i) for i in [0, len(remainders)), and sets failed[i] = true on
// the single cell where a decode inconsistency was detected. remainders
// and failed must have the same length. pool may be nil, in which case
// recursion always runs sequentially.
func Split(pool *fanout.Pool, dividend *big.Int, start uint32, remainders []uint32, failed []bool) {
	l := len(remainders)
	if l == 0 {
		return
	}

	bitLen := dividend.BitLen()
	if bitLen <= 64 {
		splitBase(dividend, start, remainders, failed)
		return
	}

	w := bitLen / 4
	if bitLen >= 20000 {
		w = bitLen / 16
	}

	k, factor := bigfactorial.SmallestWidth(uint64(start), w)
	if k > uint64(l) {
		k = uint64(l)
		factor = bigfactorial.PartialProduct(uint64(start), k)
	}

	quotient, remainder := new(big.Int), new(big.Int)
	quotient.DivMod(dividend, factor, remainder)

	leftRem, rightRem := remainders[:k], remainders[k:]
	leftFail, rightFail := failed[:k], failed[k:]

	if len(rightRem) == 0 {
		// k was clamped to l: the remaining divisor range is exhausted on
		// this side, so there is no further division to recurse into and
		// quotient is the terminal value splitBase would otherwise have
		// checked against zero. Recursing with empty slices would just
		// hit the l == 0 return and drop it.
		Split(pool, remainder, start, leftRem, leftFail)
		if quotient.Sign() != 0 {
			failed[len(failed)-1] = true
		}
		return
	}

	doLeft := func() { Split(pool, remainder, start, leftRem, leftFail) }
	doRight := func() { Split(pool, quotient, start+uint32(k), rightRem, rightFail) }

	if pool != nil && l > parallelThreshold {
		pool.Join(doLeft, doRight)
	} else {
		doLeft()
		doRight()
	}
}

// splitBase performs the successive word-sized divisions directly once
// the dividend fits in 64 bits.
func splitBase(dividend *big.Int, start uint32, remainders []uint32, failed []bool) {
	v := dividend.Uint64()
	for i := range remainders {
		divisor := uint64(start) + uint64(i)
		q, r := v/divisor, v%divisor
		remainders[i] = uint32(r)
		v = q
	}
	if v != 0 {
		failed[len(failed)-1] = true
	}
}
