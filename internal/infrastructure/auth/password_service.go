package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"github.com/membercms/authsvc/domain"
)

// PasswordServiceImpl implements domain.PasswordService. The configured
// pepper is mixed into the plaintext with HMAC-SHA256 before bcrypt, so a
// leaked password table cannot be brute-forced without the process secret.
type PasswordServiceImpl struct {
	pepper []byte
	cost   int
}

// NewPasswordService creates a new password service
func NewPasswordService(pepper string) domain.PasswordService {
	return &PasswordServiceImpl{
		pepper: []byte(pepper),
		cost:   bcrypt.DefaultCost,
	}
}

// pepperize keys the plaintext with the pepper. Hex encoding keeps the input
// under bcrypt's 72-byte limit regardless of password length.
func (p *PasswordServiceImpl) pepperize(password string) []byte {
	mac := hmac.New(sha256.New, p.pepper)
	mac.Write([]byte(password))
	return []byte(hex.EncodeToString(mac.Sum(nil)))
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword(p.pepperize(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), p.pepperize(password))
	return err == nil
}
