// Package mimc implements the fixed-round keyed MiMC permutation that
// underlies the trace the prover commits to, the Merkle node combiner, and
// the Fiat-Shamir transcript sampler.
//
// Two related but distinct conventions are both required by the surrounding
// system and MUST NOT be unified: Hash applies a closing key-add and is used
// as a PRF by the Merkle combiner and the transcript; BuildTrace omits the
// closing key-add because the prover/verifier's transition constraint is the
// bare per-round cube relation.
package mimc

import "github.com/zkmimc/proofengine/pkg/field"

// Rounds is the fixed MiMC round count.
const Rounds = 64

// roundConstants holds c_i = i * 123456789 mod p for i in [0, Rounds),
// precomputed once at package init the way a static lookup table would be.
var roundConstants [Rounds]field.Value

func init() {
	for i := 0; i < Rounds; i++ {
		roundConstants[i] = field.FromInt64(int64(i) * 123456789)
	}
}

// RoundConstant returns c_i for round index i. It panics for i outside
// [0, Rounds); callers only ever index it with values already validated
// against Rounds or the trace length.
func RoundConstant(i int) field.Value {
	return roundConstants[i]
}

// transition computes one round step: ((t + key + c_i) mod p)^3 mod p.
func transition(t, key field.Value, i int) field.Value {
	return t.Add(key).Add(roundConstants[i]).Cube()
}

// Transition is the exported per-round cube relation, used by the verifier
// to re-evaluate a spot-checked transition without rebuilding a whole trace.
func Transition(t, key field.Value, roundIndex int) field.Value {
	return transition(t, key, roundIndex)
}

// BuildTrace runs all Rounds of the MiMC permutation starting from x under
// key, and returns the full sequence (t_0, ..., t_Rounds) of Rounds+1 field
// elements with NO closing key-add. This is the execution trace the prover
// commits to and the verifier's boundary/transition constraints are checked
// against.
func BuildTrace(x, key field.Value) []field.Value {
	trace := make([]field.Value, Rounds+1)
	trace[0] = x
	for i := 0; i < Rounds; i++ {
		trace[i+1] = transition(trace[i], key, i)
	}
	return trace
}

// Hash runs the full trace and folds in one closing key-add:
// mimc_hash(x, key) = (t_Rounds + key) mod p. This is the PRF-like primitive
// used by the Merkle node combiner and the Fiat-Shamir sampler; it is never
// used for the prover/verifier's trace itself.
func Hash(x, key field.Value) field.Value {
	trace := BuildTrace(x, key)
	return trace[Rounds].Add(key)
}
