package proof

import (
	"fmt"

	"github.com/zkmimc/proofengine/pkg/field"
	"github.com/zkmimc/proofengine/pkg/kdf"
	"github.com/zkmimc/proofengine/pkg/merkle"
	"github.com/zkmimc/proofengine/pkg/mimc"
	"github.com/zkmimc/proofengine/pkg/transcript"
)

// ProveHashIntegrity builds a hash-integrity proof: the prover ran a MiMC
// permutation whose round key is bound to a claimed password-hash artifact,
// terminating at a declared field output.
//
// For every algorithm except native-mimc, artifact must be the byte string
// already produced by the named KDF (see pkg/kdf); the caller is responsible
// for calling the KDF before invoking Prove, since KDF failure is fatal to
// the proof per the failure-semantics contract and has nothing to do with
// the trace itself. For native-mimc, artifact is ignored: the key is 0 and
// the output_artifact public input is set equal to the declared mimc_output.
func ProveHashIntegrity(password []byte, algorithm Algorithm, artifact []byte) (*Proof, error) {
	var mimcKey field.Value
	switch algorithm {
	case AlgorithmNativeMiMC:
		mimcKey = field.Zero
	case AlgorithmArgon2id, AlgorithmBcrypt:
		if len(artifact) == 0 {
			return nil, fmt.Errorf("proof: %s requires a non-empty KDF artifact", algorithm)
		}
		mimcKey = kdf.StringToField(artifact)
	default:
		return nil, fmt.Errorf("proof: unrecognized algorithm tag %q", algorithm)
	}

	t0 := kdf.StringToField(password)
	trace := mimc.BuildTrace(t0, mimcKey)
	mimcOutput := trace[mimc.Rounds]

	tree, err := merkle.Build(trace)
	if err != nil {
		return nil, err
	}
	root := tree.Root()

	queries, err := buildQueries(tree, trace, root)
	if err != nil {
		return nil, err
	}

	outputArtifact := string(artifact)
	if algorithm == AlgorithmNativeMiMC {
		outputArtifact = mimcOutput.String()
	}

	return &Proof{
		ProofType: TypeHashIntegrity,
		PublicInputs: PublicInputs{
			Algorithm:      algorithm,
			OutputArtifact: outputArtifact,
			MimcOutput:     mimcOutput.String(),
			TraceRoot:      root,
		},
		TraceQueries: queries,
	}, nil
}

// ProveKnowledgeOfPreimage builds a knowledge-of-preimage proof: the prover
// knows secret H such that a MiMC permutation keyed by the public nonce maps
// H to the public output, without revealing H. Index 0 of the trace is
// never sampled into trace_queries: it would reveal H itself.
func ProveKnowledgeOfPreimage(secret field.Value, nonce []byte) (*Proof, error) {
	nonceVal := kdf.StringToField(nonce)
	trace := mimc.BuildTrace(secret, nonceVal)
	publicOutput := trace[mimc.Rounds]

	tree, err := merkle.Build(trace)
	if err != nil {
		return nil, err
	}
	root := tree.Root()

	indices, err := transcript.SampleNonZeroIndices(root, transcript.NumQueries, mimc.Rounds)
	if err != nil {
		return nil, err
	}

	queries := make([]TraceQuery, 0, len(indices)+1)
	for _, idx := range indices {
		q, err := buildTraceQuery(tree, trace, idx)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	boundary, err := buildTraceQuery(tree, trace, mimc.Rounds)
	if err != nil {
		return nil, err
	}
	queries = append(queries, boundary)

	return &Proof{
		ProofType: TypeKnowledgeOfPreimage,
		PublicInputs: PublicInputs{
			Nonce:        string(nonce),
			PublicOutput: publicOutput.String(),
			TraceRoot:    root,
		},
		TraceQueries: queries,
	}, nil
}

// buildQueries samples transcript.NumQueries indices from root and builds a
// TraceQuery for each, plus the mandatory boundary query at mimc.Rounds.
func buildQueries(tree *merkle.Tree, trace []field.Value, root string) ([]TraceQuery, error) {
	indices, err := transcript.SampleIndices(root, transcript.NumQueries, mimc.Rounds)
	if err != nil {
		return nil, err
	}

	queries := make([]TraceQuery, 0, len(indices)+1)
	for _, idx := range indices {
		q, err := buildTraceQuery(tree, trace, idx)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	boundary, err := buildTraceQuery(tree, trace, mimc.Rounds)
	if err != nil {
		return nil, err
	}
	queries = append(queries, boundary)
	return queries, nil
}

// buildTraceQuery extracts the authentication path (and, for non-boundary
// indices, the next state and its path) for trace position idx.
func buildTraceQuery(tree *merkle.Tree, trace []field.Value, idx int) (TraceQuery, error) {
	path, err := tree.GetPath(idx)
	if err != nil {
		return TraceQuery{}, err
	}

	q := TraceQuery{
		Index: idx,
		Value: trace[idx].String(),
		Path:  path,
	}

	if idx < mimc.Rounds {
		nextPath, err := tree.GetPath(idx + 1)
		if err != nil {
			return TraceQuery{}, err
		}
		nextValue := trace[idx+1].String()
		q.NextValue = &nextValue
		q.NextPath = nextPath
	}

	return q, nil
}
