package kdf

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/zkmimc/proofengine/pkg/field"
)

func TestArgon2idDeterministic(t *testing.T) {
	salt := []byte("fixed-test-salt-")
	params := DefaultArgon2idParams()
	a, err := Argon2id([]byte("hunter2"), salt, params)
	if err != nil {
		t.Fatalf("Argon2id failed: %v", err)
	}
	b, err := Argon2id([]byte("hunter2"), salt, params)
	if err != nil {
		t.Fatalf("Argon2id failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("Argon2id not deterministic for identical inputs")
	}
	if !strings.HasPrefix(string(a), "$argon2id$") {
		t.Fatalf("artifact missing argon2id PHC prefix: %s", a)
	}
}

func TestArgon2idRejectsEmptySalt(t *testing.T) {
	if _, err := Argon2id([]byte("x"), nil, DefaultArgon2idParams()); err == nil {
		t.Fatalf("expected error for empty salt")
	}
}

func TestBcryptVerifiable(t *testing.T) {
	artifact, err := Bcrypt([]byte("hunter2"), 4)
	if err != nil {
		t.Fatalf("Bcrypt failed: %v", err)
	}
	if len(artifact) == 0 {
		t.Fatalf("empty bcrypt artifact")
	}
	if err := bcrypt.CompareHashAndPassword(artifact, []byte("hunter2")); err != nil {
		t.Fatalf("bcrypt artifact does not verify against its password: %v", err)
	}
}

func TestStringToFieldIsCanonical(t *testing.T) {
	v := StringToField([]byte("abc"))
	if v.Uint64() >= field.Modulus {
		t.Fatalf("StringToField produced non-canonical value %d", v.Uint64())
	}
}

func TestStringToFieldDiffersOnOneByte(t *testing.T) {
	a := StringToField([]byte("artifact-aaaa"))
	b := StringToField([]byte("artifact-aaab"))
	if a.Equal(b) {
		t.Fatalf("one-byte-different artifacts hashed to the same field element")
	}
}
