package main

import (
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/zkmimc/proofengine/pkg/config"
	"github.com/zkmimc/proofengine/pkg/field"
	"github.com/zkmimc/proofengine/pkg/kdf"
	"github.com/zkmimc/proofengine/pkg/proof"
)

func main() {
	var (
		claim      = flag.String("claim", "hash-integrity", "claim to prove: hash-integrity or knowledge-of-preimage")
		algorithm  = flag.String("algorithm", "native-mimc", "hash-integrity only: argon2id, bcrypt, or native-mimc")
		password   = flag.String("password", "", "password to prove hash integrity for")
		nonce      = flag.String("nonce", "", "knowledge-of-preimage only: the public keying nonce")
		secretSeed = flag.Int64("secret", 0, "knowledge-of-preimage only: the secret preimage, as an integer")
		configPath = flag.String("config", "", "path to a YAML config file (optional)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var p *proof.Proof
	switch *claim {
	case string(proof.TypeHashIntegrity):
		p, err = proveHashIntegrity(cfg, proof.Algorithm(*algorithm), *password)
	case string(proof.TypeKnowledgeOfPreimage):
		p, err = proveKnowledgeOfPreimage(*secretSeed, *nonce)
	default:
		log.Fatalf("unrecognized claim %q", *claim)
	}
	if err != nil {
		log.Fatalf("failed to build proof: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(p); err != nil {
		log.Fatalf("failed to encode proof: %v", err)
	}
}

func proveHashIntegrity(cfg *config.Config, algorithm proof.Algorithm, password string) (*proof.Proof, error) {
	if password == "" {
		return nil, fmt.Errorf("-password is required for the hash-integrity claim")
	}

	var artifact []byte
	switch algorithm {
	case proof.AlgorithmArgon2id:
		salt := make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("generating salt: %w", err)
		}
		out, err := kdf.Argon2id([]byte(password), salt, cfg.Argon2.ToParams())
		if err != nil {
			return nil, err
		}
		artifact = out
	case proof.AlgorithmBcrypt:
		out, err := kdf.Bcrypt([]byte(password), cfg.Bcrypt.Cost)
		if err != nil {
			return nil, err
		}
		artifact = out
	case proof.AlgorithmNativeMiMC:
		artifact = nil
	default:
		return nil, fmt.Errorf("unrecognized algorithm %q", algorithm)
	}

	return proof.ProveHashIntegrity([]byte(password), algorithm, artifact)
}

func proveKnowledgeOfPreimage(secretSeed int64, nonce string) (*proof.Proof, error) {
	if nonce == "" {
		return nil, fmt.Errorf("-nonce is required for the knowledge-of-preimage claim")
	}
	secret := field.FromInt64(secretSeed)
	return proof.ProveKnowledgeOfPreimage(secret, []byte(nonce))
}
