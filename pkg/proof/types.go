// Package proof builds and checks execution-trace proofs for the two claims
// this system supports: that a MiMC permutation's round key is bound to a
// claimed password-hash artifact (hash-integrity), or that the prover knows
// a secret preimage of a publicly keyed MiMC output (knowledge-of-preimage).
package proof

// Type tags which of the two claims a Proof makes.
type Type string

const (
	TypeHashIntegrity       Type = "hash-integrity"
	TypeKnowledgeOfPreimage Type = "knowledge-of-preimage"
)

// Algorithm is the closed set of password-hashing tags a hash-integrity
// proof may declare.
type Algorithm string

const (
	AlgorithmArgon2id   Algorithm = "argon2id"
	AlgorithmBcrypt     Algorithm = "bcrypt"
	AlgorithmNativeMiMC Algorithm = "native-mimc"
)

// PublicInputs carries the claim-specific public data plus the common
// trace_root. Only the fields relevant to Proof.Type are populated; the
// zero value of the others is the empty string.
type PublicInputs struct {
	// Hash-integrity fields.
	Algorithm      Algorithm `json:"algorithm,omitempty"`
	OutputArtifact string    `json:"output_artifact,omitempty"`
	MimcOutput     string    `json:"mimc_output,omitempty"`

	// Knowledge-of-preimage fields.
	Nonce        string `json:"nonce,omitempty"`
	PublicOutput string `json:"public_output,omitempty"`

	// Common to both claims: the Merkle root of the committed trace.
	TraceRoot string `json:"trace_root"`
}

// TraceQuery is one spot-checked position in the trace. NextValue/NextPath
// are present iff Index is not the boundary position (mimc.Rounds); at the
// boundary they are omitted and Value is constrained to equal the declared
// output.
type TraceQuery struct {
	Index     int      `json:"index"`
	Value     string   `json:"value"`
	Path      []string `json:"path"`
	NextValue *string  `json:"next_value,omitempty"`
	NextPath  []string `json:"next_path,omitempty"`
}

// Proof is the tagged record a prover emits and a verifier checks.
type Proof struct {
	ProofType    Type         `json:"proof_type"`
	PublicInputs PublicInputs `json:"public_inputs"`
	TraceQueries []TraceQuery `json:"trace_queries"`
}

// IsBoundary reports whether q is the boundary query (no next-fields).
func (q TraceQuery) IsBoundary() bool {
	return q.NextValue == nil
}
