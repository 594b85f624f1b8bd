// Package transcript implements the Fiat-Shamir index sampler: deriving a
// deterministic set of spot-check indices from a committed Merkle root, with
// no dependence on wall-clock time, goroutine scheduling, or map iteration
// order.
package transcript

import (
	"errors"
	"sort"

	"github.com/zkmimc/proofengine/pkg/field"
	"github.com/zkmimc/proofengine/pkg/mimc"
)

// NumQueries is the fixed number of spot-check indices sampled per proof.
const NumQueries = 5

// maxIterations bounds the sampler's counter so that pathological inputs
// fail fast with ErrTranscriptStuck instead of looping forever.
const maxIterations = 1_000_000

// ErrTranscriptStuck is returned when the sampler exceeds maxIterations
// without collecting n distinct indices.
var ErrTranscriptStuck = errors.New("transcript: exceeded iteration cap sampling indices")

// SampleIndices derives n distinct indices in [0, domain) deterministically
// from root, the canonical-decimal Merkle root string. It seeds a counter-mode
// MiMC PRF with the root and draws r = mimc_hash(seed, key=counter) for
// counter = 0, 1, 2, ..., inserting r mod domain until n distinct values have
// been collected, then returns them sorted ascending.
func SampleIndices(root string, n, domain int) ([]int, error) {
	seed, err := field.Parse(root)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, n)
	indices := make([]int, 0, n)

	for counter := 0; len(indices) < n; counter++ {
		if counter >= maxIterations {
			return nil, ErrTranscriptStuck
		}
		r := mimc.Hash(seed, field.FromInt64(int64(counter)))
		idx := int(r.Uint64() % uint64(domain))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		indices = append(indices, idx)
	}

	sort.Ints(indices)
	return indices, nil
}

// SampleNonZeroIndices is SampleIndices with index 0 excluded from the
// result, resampling from the same counter-mode transcript until n non-zero
// distinct indices have been collected. Used by the knowledge-of-preimage
// prover, which must never reveal index 0 (it would leak the witness).
func SampleNonZeroIndices(root string, n, domain int) ([]int, error) {
	seed, err := field.Parse(root)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, n)
	indices := make([]int, 0, n)

	for counter := 0; len(indices) < n; counter++ {
		if counter >= maxIterations {
			return nil, ErrTranscriptStuck
		}
		r := mimc.Hash(seed, field.FromInt64(int64(counter)))
		idx := int(r.Uint64() % uint64(domain))
		if idx == 0 {
			continue
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		indices = append(indices, idx)
	}

	sort.Ints(indices)
	return indices, nil
}
