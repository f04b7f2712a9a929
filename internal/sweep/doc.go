// Package sweep partitions a q-range across parallel workers and merges
// their results into the final datasets.
//
// The q-range is shuffled, split into near-equal chunks, and each chunk
// runs on its own goroutine with a self-contained model, integrator
// driver, and rng. Workers never share a q-value; the only
// synchronization point is the end-of-sweep barrier before merging.
// Failures are fail-fast: the first worker error cancels the sweep and
// reports the failing chunk index and q-value.
package sweep
