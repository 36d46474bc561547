// Package cryptox holds the crypto pieces of the OAuth sign-in flow:
// PKCE code verifier generation and the S256 challenge derived from it.
package cryptox

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/respirex/respirex-client/internal/common"
)

// GenerateCodeVerifier returns a PKCE code verifier: 32 random bytes in
// base64 URL encoding without padding (43 characters, per RFC 7636).
func GenerateCodeVerifier() string {
	return base64.RawURLEncoding.EncodeToString(common.GenerateRandByteArray(32))
}

// CodeChallengeS256 derives the S256 code challenge for a verifier.
func CodeChallengeS256(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
