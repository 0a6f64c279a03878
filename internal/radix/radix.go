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

// Package radix implements the mixed-radix accumulator monoid: batching
// many (digit, weight) pairs into machine-word arithmetic before a single
// big-integer multiply touches the result.
//
// A Chunk represents an affine transform x -> x*Mul + Add. Folding a
// sequence of (digit, weight) pairs left to right composes their
// transforms; applying the composed transform to the zero seed yields the
// accumulated mixed-radix value. Composition is associative but not
// commutative, which is why chunk order must be preserved wherever chunks
// are combined.
package radix

import (
	"math/big"
	"math/bits"
)

// Chunk is a machine-word-range monoid element, the unit produced by an
// Accumulator flush.
type Chunk struct {
	Add uint64
	Mul uint64
}

// Big is a Chunk promoted to arbitrary precision, used once composing
// chunks can exceed 64 bits.
type Big struct {
	Add *big.Int
	Mul *big.Int
}

// Identity returns the neutral element of the combine monoid.
func Identity() Big {
	return Big{Add: big.NewInt(0), Mul: big.NewInt(1)}
}

// ToBig promotes a machine-word chunk to arbitrary precision.
func ToBig(c Chunk) Big {
	return Big{Add: new(big.Int).SetUint64(c.Add), Mul: new(big.Int).SetUint64(c.Mul)}
}

// Combine composes l followed by r: applying the result to seed x is
// equivalent to applying l to x, then applying r to that. Combine is
// associative but not commutative, matching function composition.
func Combine(l, r Big) Big {
	add := new(big.Int).Mul(l.Add, r.Mul)
	add.Add(add, r.Add)
	mul := new(big.Int).Mul(l.Mul, r.Mul)
	return Big{Add: add, Mul: mul}
}

// Accumulator batches (digit, weight) pushes into a single Chunk using
// only 64-bit arithmetic, flushing to a fresh chunk whenever the next push
// would overflow a uint64.
type Accumulator struct {
	add uint64
	mul uint64
}

// NewAccumulator returns an accumulator at the monoid identity.
func NewAccumulator() *Accumulator {
	return &Accumulator{add: 0, mul: 1}
}

// Push folds in one (digit, weight) pair. On success it returns the zero
// Chunk and flushed=false. If folding this pair would overflow uint64 in
// any of the three intermediate products, the accumulator's prior state is
// returned as flushed=true and the accumulator is reset to represent just
// this pair (add = digit*weight, mul = weight), matching Combine(identity,
// elementary(digit, weight)).
func (acc *Accumulator) Push(digit, weight uint64) (flushed Chunk, didFlush bool) {
	sum, carry := bits.Add64(acc.add, digit, 0)
	if carry != 0 {
		return acc.flushAndSeed(digit, weight)
	}

	hi, newAdd := bits.Mul64(sum, weight)
	if hi != 0 {
		return acc.flushAndSeed(digit, weight)
	}

	mulHi, newMul := bits.Mul64(acc.mul, weight)
	if mulHi != 0 {
		return acc.flushAndSeed(digit, weight)
	}

	acc.add = newAdd
	acc.mul = newMul
	return Chunk{}, false
}

func (acc *Accumulator) flushAndSeed(digit, weight uint64) (Chunk, bool) {
	flushed := Chunk{Add: acc.add, Mul: acc.mul}
	// digit < weight <= N < 2^32 for any legal caller, so this product
	// always fits in a uint64.
	acc.add = digit * weight
	acc.mul = weight
	return flushed, true
}

// Flush returns the accumulator's current state as a Chunk and resets the
// accumulator to the identity.
func (acc *Accumulator) Flush() Chunk {
	c := Chunk{Add: acc.add, Mul: acc.mul}
	acc.add = 0
	acc.mul = 1
	return c
}
