package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestGenerateCodeVerifier_LengthAndAlphabet(t *testing.T) {
	v := GenerateCodeVerifier()

	// 32 bytes in unpadded base64url is always 43 characters.
	if len(v) != 43 {
		t.Fatalf("expected 43 characters, got %d", len(v))
	}
	if _, err := base64.RawURLEncoding.DecodeString(v); err != nil {
		t.Fatalf("verifier is not valid base64url: %v", err)
	}
}

func TestGenerateCodeVerifier_EntropyHint(t *testing.T) {
	a := GenerateCodeVerifier()
	b := GenerateCodeVerifier()
	if a == b {
		t.Logf("warning: two verifiers are identical; extremely unlikely")
	}
}

func TestCodeChallengeS256_KnownValue(t *testing.T) {
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

	hash := sha256.Sum256([]byte(verifier))
	want := base64.RawURLEncoding.EncodeToString(hash[:])

	if got := CodeChallengeS256(verifier); got != want {
		t.Fatalf("challenge = %q, want %q", got, want)
	}
}

func TestCodeChallengeS256_Deterministic(t *testing.T) {
	v := GenerateCodeVerifier()
	if CodeChallengeS256(v) != CodeChallengeS256(v) {
		t.Fatalf("challenge must be deterministic for the same verifier")
	}
}
