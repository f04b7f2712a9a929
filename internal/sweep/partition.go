package sweep

import "math/rand"

// Partition shuffles a copy of qs and splits it into at most n
// contiguous chunks whose sizes differ by no more than one element. The
// union of the chunks is a permutation of qs; no value crosses a chunk
// boundary, which is the entire concurrency-safety argument of the
// sweep. Shuffling first spreads expensive q-values across workers.
func Partition(qs []float64, n int, rng *rand.Rand) [][]float64 {
	shuffled := make([]float64, len(qs))
	copy(shuffled, qs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if n > len(shuffled) {
		n = len(shuffled)
	}
	if n < 1 {
		n = 1
	}

	chunks := make([][]float64, 0, n)
	base := len(shuffled) / n
	rem := len(shuffled) % n

	lo := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		chunks = append(chunks, shuffled[lo:lo+size])
		lo += size
	}

	return chunks
}
