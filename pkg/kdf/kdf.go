// Package kdf wraps the memory-hard password-hashing collaborators the core
// treats as opaque artifact producers: Argon2id and bcrypt. Neither
// algorithm's soundness is part of what this module verifies; the core only
// needs a deterministic way to fold an arbitrary-length artifact into a
// field element (StringToField).
package kdf

import (
	"encoding/base64"
	"fmt"
	"math/big"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/zkmimc/proofengine/pkg/field"
)

// Argon2idParams bundles the cost parameters for Argon2id. Threads is fixed
// at 1 so two runs with identical params always produce identical output.
type Argon2idParams struct {
	TimeCost   uint32
	MemoryKiB  uint32
	HashLength uint32
}

// DefaultArgon2idParams returns interactive-strength parameters suitable for
// this module's demo/test use, not a production security recommendation.
func DefaultArgon2idParams() Argon2idParams {
	return Argon2idParams{TimeCost: 1, MemoryKiB: 64 * 1024, HashLength: 32}
}

// Argon2id derives a PHC-style artifact string from password and salt:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=1$<salt>$<hash>
//
// encoded with unpadded standard base64, the same way the reference argon2id
// implementations format their output. The artifact carries its own
// parameters so a verifier can be handed just the artifact bytes.
func Argon2id(password, salt []byte, params Argon2idParams) ([]byte, error) {
	if len(salt) == 0 {
		return nil, fmt.Errorf("kdf: argon2id requires a non-empty salt")
	}
	hash := argon2.IDKey(password, salt, params.TimeCost, params.MemoryKiB, 1, params.HashLength)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=1$%s$%s",
		argon2.Version,
		params.MemoryKiB,
		params.TimeCost,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return []byte(encoded), nil
}

// Bcrypt derives a bcrypt artifact string at the given cost factor.
func Bcrypt(password []byte, cost int) ([]byte, error) {
	artifact, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		return nil, fmt.Errorf("kdf: bcrypt failed: %w", err)
	}
	return artifact, nil
}

// StringToField interprets an arbitrary-length byte string as a big-endian
// base-256 integer and reduces it modulo p. This is the single shared
// boundary between arbitrary-length artifacts/passwords/nonces and the
// fixed-width field arithmetic; it is many-to-one for inputs longer than a
// few bytes and MUST NOT be assumed collision-resistant.
func StringToField(b []byte) field.Value {
	n := new(big.Int).SetBytes(b)
	m := new(big.Int).SetUint64(field.Modulus)
	n.Mod(n, m)
	return field.FromUint64(n.Uint64())
}
