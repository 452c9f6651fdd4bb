package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashToken implements domain.TokenService. Refresh tokens and reset codes
// are stored only as SHA-256 hex digests; a stolen session table cannot be
// replayed without the raw values.
func (j *JWTServiceImpl) HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// VerifyTokenHash implements domain.TokenService. The comparison is constant
// time over the digest.
func (j *JWTServiceImpl) VerifyTokenHash(raw, storedHash string) bool {
	computed := j.HashToken(raw)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
