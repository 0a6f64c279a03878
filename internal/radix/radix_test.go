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

package radix

import (
	"math/big"
	"math/rand"
	"testing"
)

// reference folds (digit, weight) pairs the slow way, in arbitrary
// precision, for comparison against the accumulator's batched folding.
func referenceFold(pairs [][2]uint64) *big.Int {
	v := big.NewInt(0)
	for _, p := range pairs {
		v.Add(v, new(big.Int).SetUint64(p[0]))
		v.Mul(v, new(big.Int).SetUint64(p[1]))
	}
	return v
}

func TestAccumulatorMatchesReferenceFold(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(5000) + 1
		pairs := make([][2]uint64, n)
		for i := range pairs {
			weight := uint64(rng.Intn(1<<20) + 1)
			digit := uint64(rng.Int63n(int64(weight)))
			pairs[i] = [2]uint64{digit, weight}
		}

		want := referenceFold(pairs)

		acc := NewAccumulator()
		result := Identity()
		for _, p := range pairs {
			flushed, did := acc.Push(p[0], p[1])
			if did {
				result = Combine(result, ToBig(flushed))
			}
		}
		result = Combine(result, ToBig(acc.Flush()))

		if result.Add.Cmp(want) != 0 {
			t.Fatalf("trial %d: got %s, want %s", trial, result.Add, want)
		}
	}
}

func TestPushOverflowFlushes(t *testing.T) {
	acc := NewAccumulator()
	// Push a pair that alone saturates the mul field close to the u64
	// ceiling, then push another that must overflow and force a flush.
	_, did := acc.Push(0, ^uint64(0))
	if did {
		t.Fatalf("first push from identity should never overflow")
	}
	_, did = acc.Push(1, 2)
	if !did {
		t.Fatalf("expected overflow flush when multiplying mul=%d by 2", ^uint64(0))
	}
}

func TestCombineAssociativity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	randBig := func() Big {
		return Big{
			Add: big.NewInt(rng.Int63n(1 << 40)),
			Mul: big.NewInt(rng.Int63n(1<<40) + 1),
		}
	}

	for trial := 0; trial < 200; trial++ {
		x, y, z := randBig(), randBig(), randBig()

		left := Combine(Combine(x, y), z)
		right := Combine(x, Combine(y, z))

		if left.Add.Cmp(right.Add) != 0 || left.Mul.Cmp(right.Mul) != 0 {
			t.Fatalf("trial %d: combine not associative:\n(x∘y)∘z = %+v\nx∘(y∘z) = %+v", trial, left, right)
		}
	}
}

func BenchmarkAccumulatorPush(b *testing.B) {
	acc := NewAccumulator()
	rng := rand.New(rand.NewSource(5))
	weights := make([]uint64, 1024)
	digits := make([]uint64, 1024)
	for i := range weights {
		weights[i] = uint64(rng.Intn(1<<20) + 1)
		digits[i] = uint64(rng.Int63n(int64(weights[i])))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		acc.Push(digits[i%len(digits)], weights[i%len(weights)])
	}
}

func TestIdentityIsNeutral(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 100; trial++ {
		x := Big{Add: big.NewInt(rng.Int63n(1 << 40)), Mul: big.NewInt(rng.Int63n(1<<40) + 1)}
		id := Identity()

		left := Combine(id, x)
		right := Combine(x, id)

		if left.Add.Cmp(x.Add) != 0 || left.Mul.Cmp(x.Mul) != 0 {
			t.Fatalf("identity∘x != x: %+v vs %+v", left, x)
		}
		if right.Add.Cmp(x.Add) != 0 || right.Mul.Cmp(x.Mul) != 0 {
			t.Fatalf("x∘identity != x: %+v vs %+v", right, x)
		}
	}
}
