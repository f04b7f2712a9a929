package analysis

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ecosim/trophic/internal/dynamo"
)

// Extrema scans a series and returns the local minima and maxima found
// strictly inside it. Endpoints are never considered; they are
// integration-window artifacts, not topological extrema.
//
// A flat series (max == min) represents a fixed point and yields the
// single value mean(x). Otherwise a series needs at least 3 samples.
//
// The detector uses a three-point comparison: position i is a minimum
// when x[i-2] > x[i-1] and x[i-1] < x[i], symmetrically for maxima.
// Ties never count as extrema. Downstream figures were generated against
// this exact rule; do not replace it with a derivative-sign test.
func Extrema(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("empty series: %w", dynamo.ErrShortSeries)
	}

	min, max := x[0], x[0]
	sum := 0.0
	for _, v := range x {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	if min == max {
		return []float64{sum / float64(len(x))}, nil
	}

	if len(x) < 3 {
		return nil, fmt.Errorf("%d samples with non-trivial variance: %w", len(x), dynamo.ErrShortSeries)
	}

	var out []float64
	for i := 2; i < len(x); i++ {
		if x[i-2] > x[i-1] && x[i-1] < x[i] {
			out = append(out, x[i-1]) // local minimum
		}
		if x[i-2] < x[i-1] && x[i-1] > x[i] {
			out = append(out, x[i-1]) // local maximum
		}
	}
	return out, nil
}

// Reduce optionally deduplicates extrema to unique values and, when
// maxOut > 0 and the set is larger, uniformly subsamples without
// replacement down to maxOut. Subsampling bounds output size only;
// callers must not assume it preserves distributional shape.
func Reduce(vals []float64, unique bool, maxOut int, rng *rand.Rand) []float64 {
	out := vals
	if unique {
		seen := make(map[float64]bool, len(vals))
		out = make([]float64, 0, len(vals))
		for _, v := range vals {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}

	if maxOut > 0 && len(out) > maxOut {
		idx := rng.Perm(len(out))[:maxOut]
		sort.Ints(idx)
		sub := make([]float64, maxOut)
		for i, j := range idx {
			sub[i] = out[j]
		}
		out = sub
	}

	return out
}
