package proof

import (
	"github.com/zkmimc/proofengine/pkg/field"
	"github.com/zkmimc/proofengine/pkg/kdf"
	"github.com/zkmimc/proofengine/pkg/merkle"
	"github.com/zkmimc/proofengine/pkg/mimc"
)

// Result is the outcome of a Verify call. A non-nil Err is always one of the
// nine Kind values; Accepted is true iff Err is nil.
type Result struct {
	Accepted bool
	Err      *Error
}

func accept() *Result { return &Result{Accepted: true} }

func reject(err *Error) *Result { return &Result{Accepted: false, Err: err} }

// Verify checks a Proof against its own public inputs and trace queries. It
// never consults anything outside p: the Merkle root, declared output, and
// KDF-derived key are all recomputed from fields the proof itself carries,
// then checked for mutual consistency. Verify does not re-run the KDF; a
// hash-integrity proof's output_artifact is trusted as the KDF's output and
// only its binding into the trace is checked.
//
// Checks run in a fixed order and stop at the first failure: structural
// shape, key derivation and declared-output parsing, then one pass over the
// trace queries. All failures are terminal; Verify never retries.
func Verify(p *Proof) *Result {
	if err := checkShape(p); err != nil {
		return reject(err)
	}

	mimcKey, declaredOutput, err := deriveKey(p)
	if err != nil {
		return reject(err)
	}

	for _, q := range p.TraceQueries {
		if p.ProofType == TypeKnowledgeOfPreimage && q.Index == 0 {
			return reject(newIndexedErr(KindWitnessLeak, q.Index, "index 0 would reveal the secret preimage"))
		}

		value, verr := field.Parse(q.Value)
		if verr != nil {
			return reject(newIndexedErr(KindEncodingMismatch, q.Index, "trace value is not a canonical field element"))
		}
		ok, perr := merkle.VerifyPath(p.PublicInputs.TraceRoot, q.Index, value, q.Path)
		if perr != nil {
			return reject(newIndexedErr(KindEncodingMismatch, q.Index, "authentication path contains a malformed node"))
		}
		if !ok {
			return reject(newIndexedErr(KindMerkleMismatch, q.Index, "authentication path does not reach trace_root"))
		}

		if q.IsBoundary() {
			if !value.Equal(declaredOutput) {
				return reject(newIndexedErr(KindBoundaryMismatch, q.Index, "boundary value does not equal the declared output"))
			}
			continue
		}

		next, nerr := field.Parse(*q.NextValue)
		if nerr != nil {
			return reject(newIndexedErr(KindEncodingMismatch, q.Index, "next_value is not a canonical field element"))
		}
		if got := mimc.Transition(value, mimcKey, q.Index); !got.Equal(next) {
			return reject(newIndexedErr(KindTransitionMismatch, q.Index, "mimc transition does not match next_value"))
		}
		nok, nperr := merkle.VerifyPath(p.PublicInputs.TraceRoot, q.Index+1, next, q.NextPath)
		if nperr != nil {
			return reject(newIndexedErr(KindEncodingMismatch, q.Index+1, "next_path contains a malformed node"))
		}
		if !nok {
			return reject(newIndexedErr(KindMerkleMismatch, q.Index+1, "next_path does not reach trace_root"))
		}
	}

	return accept()
}

// checkShape validates everything about p that must hold before any field
// arithmetic or Merkle check is meaningful: a recognized proof type, a
// present trace_root, and exactly one well-formed boundary query.
func checkShape(p *Proof) *Error {
	if p == nil {
		return newErr(KindInvalidProofShape, "proof is nil")
	}
	switch p.ProofType {
	case TypeHashIntegrity, TypeKnowledgeOfPreimage:
	case "":
		return newErr(KindInvalidProofShape, "proof_type is empty")
	default:
		return newErr(KindUnknownProofType, string(p.ProofType))
	}
	if p.PublicInputs.TraceRoot == "" {
		return newErr(KindInvalidProofShape, "trace_root is empty")
	}
	if len(p.TraceQueries) == 0 {
		return newErr(KindInvalidProofShape, "trace_queries is empty")
	}

	boundaryCount := 0
	for _, q := range p.TraceQueries {
		if q.Index < 0 || q.Index > mimc.Rounds {
			return newIndexedErr(KindInvalidProofShape, q.Index, "index out of trace range")
		}
		isLastIndex := q.Index == mimc.Rounds
		if q.IsBoundary() != isLastIndex {
			return newIndexedErr(KindInvalidProofShape, q.Index, "next-fields presence does not match trace position")
		}
		if q.IsBoundary() {
			boundaryCount++
		} else if q.NextPath == nil {
			return newIndexedErr(KindInvalidProofShape, q.Index, "non-boundary query missing next_path")
		}
	}
	if boundaryCount != 1 {
		return newErr(KindInvalidProofShape, "proof must carry exactly one boundary query")
	}
	return nil
}

// deriveKey recomputes the MiMC round key and parses the declared output
// field from p's public inputs, dispatching on claim type the same way the
// corresponding Prove function built them.
func deriveKey(p *Proof) (field.Value, field.Value, *Error) {
	switch p.ProofType {
	case TypeHashIntegrity:
		return deriveHashIntegrityKey(p)
	case TypeKnowledgeOfPreimage:
		nonce := p.PublicInputs.Nonce
		output, err := field.Parse(p.PublicInputs.PublicOutput)
		if err != nil {
			return 0, 0, newErr(KindEncodingMismatch, "public_output is not a canonical field element")
		}
		return kdf.StringToField([]byte(nonce)), output, nil
	default:
		return 0, 0, newErr(KindUnknownProofType, string(p.ProofType))
	}
}

func deriveHashIntegrityKey(p *Proof) (field.Value, field.Value, *Error) {
	mimcOutput, err := field.Parse(p.PublicInputs.MimcOutput)
	if err != nil {
		return 0, 0, newErr(KindEncodingMismatch, "mimc_output is not a canonical field element")
	}

	if p.PublicInputs.Algorithm == AlgorithmNativeMiMC {
		if p.PublicInputs.OutputArtifact != p.PublicInputs.MimcOutput {
			return 0, 0, newErr(KindEncodingMismatch, "native-mimc output_artifact must equal mimc_output")
		}
		return field.Zero, mimcOutput, nil
	}

	if p.PublicInputs.OutputArtifact == "" {
		return 0, 0, newErr(KindInvalidProofShape, "output_artifact is empty")
	}
	key := kdf.StringToField([]byte(p.PublicInputs.OutputArtifact))
	return key, mimcOutput, nil
}
