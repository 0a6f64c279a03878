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

// Package bigfactorial computes partial factorials as arbitrary-precision
// integers, shared by the decoder's recursive split and by the byte-size
// estimator, which takes its raw width from the exact N!.
package bigfactorial

import "math/big"

// PartialProduct computes s * (s+1) * ... * (s+k-1) as a *big.Int, using a
// product-tree (divide and conquer) multiplication rather than a
// straight-line loop so that no single multiplication is wildly
// mismatched in operand size once k grows large.
func PartialProduct(s uint64, k uint64) *big.Int {
	if k == 0 {
		return big.NewInt(1)
	}
	if k == 1 {
		return new(big.Int).SetUint64(s)
	}
	left := k / 2
	l := PartialProduct(s, left)
	r := PartialProduct(s+left, k-left)
	return l.Mul(l, r)
}

// SmallestWidth returns the smallest k >= 1 such that the bit length of
// PartialProduct(s, k) is at least w, along with that product. It finds an
// upper bound by doubling, then binary-searches down to the exact minimal
// k rather than returning the first power-of-two overshoot.
func SmallestWidth(s uint64, w int) (k uint64, product *big.Int) {
	if w <= 0 {
		return 1, new(big.Int).SetUint64(s)
	}

	lo, hi := uint64(0), uint64(1)
	for PartialProduct(s, hi).BitLen() < w {
		lo = hi
		hi *= 2
	}
	for lo+1 < hi {
		mid := lo + (hi-lo)/2
		if PartialProduct(s, mid).BitLen() >= w {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, PartialProduct(s, hi)
}

// Factorial returns n! as a *big.Int. Factorial(0) == Factorial(1) == 1.
func Factorial(n uint32) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return PartialProduct(2, uint64(n-1))
}

// ExactByteLength returns the exact number of bytes needed to represent
// every value in [0, n!), i.e. ceil(log2(n!) / 8), computed from the exact
// arbitrary-precision factorial rather than a floating point
// approximation. The largest representable value is n!-1, not n!, so this
// measures the bit length of n!-1 (BitLen(0) == 0, matching that no bytes
// are needed when n! == 1).
func ExactByteLength(n uint32) int {
	f := Factorial(n)
	largest := new(big.Int).Sub(f, big.NewInt(1))
	bits := largest.BitLen()
	return (bits + 7) / 8
}
