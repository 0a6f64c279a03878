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

package ranktree

import (
	"math/rand"
	"testing"
)

func naiveDigits(p []uint32) []uint32 {
	n := len(p)
	d := make([]uint32, n)
	for i := 0; i < n; i++ {
		count := uint32(0)
		for j := i + 1; j < n; j++ {
			if p[j] < p[i] {
				count++
			}
		}
		d[i] = count
	}
	return d
}

func TestInsertMatchesReferenceScenarios(t *testing.T) {
	cases := []struct {
		perm []uint32
		want []uint32
	}{
		{
			perm: []uint32{7, 2, 0, 6, 5, 1, 4, 3},
			want: []uint32{7, 2, 0, 4, 3, 0, 1, 0},
		},
		{
			perm: []uint32{0, 1, 2, 3, 4, 5, 6, 7},
			want: []uint32{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			perm: []uint32{7, 6, 5, 4, 3, 2, 1, 0},
			want: []uint32{7, 6, 5, 4, 3, 2, 1, 0},
		},
		{
			perm: []uint32{3, 2, 15, 5, 23, 6, 16, 31, 19, 29, 21, 13, 17, 0, 27, 8, 24, 18, 12, 1, 9, 4, 14, 20, 28, 30, 7, 11, 25, 22, 26, 10},
			want: []uint32{3, 2, 13, 3, 19, 3, 11, 24, 13, 21, 14, 9, 10, 0, 15, 3, 11, 8, 6, 0, 2, 0, 3, 3, 6, 6, 0, 1, 2, 1, 1, 0},
		},
	}

	for _, c := range cases {
		tr := New(uint32(len(c.perm)))
		got := make([]uint32, len(c.perm))
		for i, x := range c.perm {
			got[i] = tr.Insert(x)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("perm %v: digit[%d] = %d, want %d (full got=%v)", c.perm, i, got[i], c.want[i], got)
			}
		}
	}
}

func TestInsertMatchesNaiveReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(200) + 1
		perm := rng.Perm(n)
		p32 := make([]uint32, n)
		for i, v := range perm {
			p32[i] = uint32(v)
		}

		want := naiveDigits(p32)

		tr := New(uint32(n))
		for i, x := range p32 {
			got := tr.Insert(x)
			if got != want[i] {
				t.Fatalf("trial %d n=%d: digit[%d]=%d, want %d", trial, n, i, got, want[i])
			}
		}
	}
}

func BenchmarkInsert(b *testing.B) {
	for _, n := range []int{1000, 100000, 1000000} {
		b.Run(benchName(n), func(b *testing.B) {
			rng := rand.New(rand.NewSource(7))
			perm := rng.Perm(n)
			p32 := make([]uint32, n)
			for i, v := range perm {
				p32[i] = uint32(v)
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tr := New(uint32(n))
				for _, x := range p32 {
					tr.Insert(x)
				}
			}
		})
	}
}

func benchName(n int) string {
	switch {
	case n >= 1000000:
		return "N=1e6"
	case n >= 100000:
		return "N=1e5"
	default:
		return "N=1e3"
	}
}
