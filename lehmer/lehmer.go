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

// Package lehmer encodes and decodes permutations of [0, N) as big
// integers via their Lehmer code, the mixed-radix (factorial-base) digit
// sequence that ranks a permutation among all N! permutations of that
// size. Encode and Decode are the two public entry points; EncodeSize
// reports the exact byte width Encode will produce for a given N.
package lehmer

import (
	"math/big"

	"github.com/Hengoo/big-lehmer/internal/bigfactorial"
	"github.com/Hengoo/big-lehmer/internal/decodepipe"
	"github.com/Hengoo/big-lehmer/internal/encodepipe"
	"github.com/Hengoo/big-lehmer/internal/fanout"
	"github.com/Hengoo/big-lehmer/internal/radix"
	"github.com/Hengoo/big-lehmer/internal/ranktree"
	"github.com/Hengoo/big-lehmer/internal/selecttree"
)

// maxN is the largest permutation length the codec will accept; beyond it
// the tree index types and the selection-tree's remaining-leaf counter can
// no longer address every position.
const maxN = 1<<32 - 1

// EncodeSize returns the number of bytes Encode produces for a
// permutation of n elements. It is exact: Encode(p) for len(p) == n
// always returns exactly EncodeSize(n) bytes, never fewer.
//
// The raw width is ceil(log2(n!) / 8), computed from the exact
// arbitrary-precision factorial rather than a floating point
// approximation of log2(n!) so the result never undershoots near a power
// of two. A fixed padding is added on top of the raw width: none for
// n < 4000, 2 bytes for n < 1000000, and 32 bytes from there on.
func EncodeSize(n uint32) int {
	if n == 0 {
		return 0
	}
	raw := bigfactorial.ExactByteLength(n)

	switch {
	case n < 4000:
		return raw
	case n < 1000000:
		return raw + 2
	default:
		return raw + 32
	}
}

// seenSet is a fixed-size bitset used to detect duplicate values while
// validating an input permutation.
type seenSet []uint64

func newSeenSet(n int) seenSet {
	return make(seenSet, (n+63)/64)
}

func (s seenSet) test(x uint32) bool {
	return s[x/64]&(1<<(x%64)) != 0
}

func (s seenSet) set(x uint32) {
	s[x/64] |= 1 << (x % 64)
}

// Encode computes the Lehmer code of permutation and serializes it as a
// little-endian, zero-padded byte slice of length EncodeSize(len(permutation)).
//
// Only positions [0, N-1) are validated against duplicates and range: the
// final element's digit is always zero and carries no information, so its
// value is never read. permutation is not modified.
func Encode(permutation []uint32) ([]byte, error) {
	n := len(permutation)
	if n == 0 {
		return []byte{}, nil
	}
	if uint64(n) > maxN {
		return nil, ErrSequenceTooLong
	}

	seen := newSeenSet(n)
	rt := ranktree.New(uint32(n))
	acc := radix.NewAccumulator()
	chunks := make([]radix.Chunk, 0, n/64+1)

	for i := 0; i < n-1; i++ {
		x := permutation[i]
		if x >= uint32(n) {
			return nil, &Error{Code: CodeValidationOutOfRange, Index: i, Value: x}
		}
		if seen.test(x) {
			return nil, &Error{Code: CodeValidationDuplicateNumber, Index: i, Value: x}
		}
		seen.set(x)

		d := rt.Insert(x)
		weight := uint64(n - 1 - i)
		if flushed, did := acc.Push(uint64(d), weight); did {
			chunks = append(chunks, flushed)
		}
	}
	chunks = append(chunks, acc.Flush())

	pool := fanout.NewDefault()
	value := encodepipe.Reduce(pool, chunks)
	pool.Close()

	return serializeLE(value, EncodeSize(uint32(n))), nil
}

// Decode recovers the permutation encoded by code into output, whose
// length fixes N. code may be longer than EncodeSize(len(output)); any
// extra trailing bytes must be zero, or Decode returns ErrDecode. code
// may also be shorter, in which case the missing high-order bytes are
// treated as zero.
func Decode(code []byte, output []uint32) error {
	n := len(output)
	if n == 0 {
		return checkZeroTail(code, 0)
	}

	size := EncodeSize(uint32(n))
	if err := checkZeroTail(code, size); err != nil {
		return err
	}

	value := parseLE(code, size)

	l := n - 1
	remainders := make([]uint32, l)
	failed := make([]bool, l)
	pool := fanout.NewDefault()
	decodepipe.Split(pool, value, 2, remainders, failed)
	pool.Close()

	for _, f := range failed {
		if f {
			return ErrDecode
		}
	}

	st := selecttree.New(uint32(n))
	for i := l - 1; i >= 0; i-- {
		v, ok := st.Remove(remainders[i])
		if !ok {
			return ErrDecode
		}
		output[l-1-i] = v
	}

	last, ok := st.Remove(0)
	if !ok {
		return ErrDecode
	}
	output[n-1] = last
	return nil
}

// checkZeroTail verifies that any bytes of code beyond the first size
// bytes are zero.
func checkZeroTail(code []byte, size int) error {
	if len(code) <= size {
		return nil
	}
	for _, b := range code[size:] {
		if b != 0 {
			return ErrDecode
		}
	}
	return nil
}

// serializeLE renders v as a little-endian byte slice of exactly size
// bytes, zero-padded on the high-order end.
func serializeLE(v *big.Int, size int) []byte {
	be := make([]byte, size)
	v.FillBytes(be)
	out := make([]byte, size)
	for i := 0; i < size; i++ {
		out[i] = be[size-1-i]
	}
	return out
}

// parseLE interprets code as a little-endian integer, truncating to size
// bytes (code may be longer; the caller has already verified the tail
// beyond size is zero) and treating any shortfall as leading zero bytes.
func parseLE(code []byte, size int) *big.Int {
	n := len(code)
	if n > size {
		n = size
	}
	be := make([]byte, size)
	for i := 0; i < n; i++ {
		be[size-1-i] = code[i]
	}
	return new(big.Int).SetBytes(be)
}
