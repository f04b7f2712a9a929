package sweep

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartitionMultisetPreserved(t *testing.T) {
	for _, tc := range []struct{ l, n int }{
		{10, 3}, {7, 7}, {100, 8}, {5, 1}, {41, 6},
	} {
		qs := make([]float64, tc.l)
		for i := range qs {
			qs[i] = float64(i) * 0.01
		}

		chunks := Partition(qs, tc.n, rand.New(rand.NewSource(1)))

		counts := make(map[float64]int)
		total := 0
		for _, c := range chunks {
			total += len(c)
			for _, q := range c {
				counts[q]++
			}
		}
		require.Equal(t, tc.l, total, "no loss, no duplication (l=%d n=%d)", tc.l, tc.n)
		for _, q := range qs {
			require.Equal(t, 1, counts[q], "q=%g must appear exactly once", q)
		}
	}
}

func TestPartitionBalanced(t *testing.T) {
	qs := make([]float64, 41)
	for i := range qs {
		qs[i] = float64(i)
	}

	chunks := Partition(qs, 6, rand.New(rand.NewSource(2)))
	require.Len(t, chunks, 6)

	min, max := len(chunks[0]), len(chunks[0])
	for _, c := range chunks {
		if len(c) < min {
			min = len(c)
		}
		if len(c) > max {
			max = len(c)
		}
	}
	require.LessOrEqual(t, max-min, 1, "chunk sizes differ by at most one")
}

func TestPartitionMoreWorkersThanValues(t *testing.T) {
	chunks := Partition([]float64{0.1, 0.2}, 8, rand.New(rand.NewSource(3)))
	require.Len(t, chunks, 2, "no empty chunks when workers exceed values")
	for _, c := range chunks {
		require.Len(t, c, 1)
	}
}

func TestPartitionShuffleDeterministic(t *testing.T) {
	qs := []float64{0, 0.05, 0.1, 0.15, 0.2}

	a := Partition(qs, 2, rand.New(rand.NewSource(9)))
	b := Partition(qs, 2, rand.New(rand.NewSource(9)))
	require.Equal(t, a, b, "same seed, same partition")
}

func TestPartitionDoesNotMutateInput(t *testing.T) {
	qs := []float64{0.1, 0.2, 0.3, 0.4}
	orig := []float64{0.1, 0.2, 0.3, 0.4}

	Partition(qs, 2, rand.New(rand.NewSource(4)))
	require.Equal(t, orig, qs)
}
