package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/membercms/authsvc/domain"
)

// accessClaims are the claims carried by access tokens.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// refreshClaims are the claims carried by refresh tokens. SessionID binds the
// token to its server-side session row.
type refreshClaims struct {
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService. Access and refresh tokens
// are signed with independent secrets and TTLs.
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func (j *JWTServiceImpl) registered(userID uint, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        j.generateJTI(),
	}
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(userID uint, role string) (string, error) {
	claims := accessClaims{
		Role:             role,
		RegisteredClaims: j.registered(userID, j.accessTTL),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.accessSecret)
}

// GenerateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateRefreshToken(userID uint, role string, sessionID string) (string, error) {
	claims := refreshClaims{
		Role:             role,
		SessionID:        sessionID,
		RegisteredClaims: j.registered(userID, j.refreshTTL),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.refreshSecret)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	var claims accessClaims
	if err := j.parse(tokenString, &claims, j.accessSecret); err != nil {
		return nil, err
	}
	return j.toDomain(claims.RegisteredClaims, claims.Role, "")
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	var claims refreshClaims
	if err := j.parse(tokenString, &claims, j.refreshSecret); err != nil {
		return nil, err
	}
	if claims.SessionID == "" {
		return nil, domain.ErrTokenMalformed
	}
	return j.toDomain(claims.RegisteredClaims, claims.Role, claims.SessionID)
}

func (j *JWTServiceImpl) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return domain.ErrTokenMalformed
		}
		return domain.ErrTokenInvalid
	}
	if !token.Valid {
		return domain.ErrTokenInvalid
	}
	return nil
}

func (j *JWTServiceImpl) toDomain(reg jwt.RegisteredClaims, role, sessionID string) (*domain.TokenClaims, error) {
	userID, err := strconv.ParseUint(reg.Subject, 10, 32)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}
	if role == "" {
		return nil, domain.ErrTokenMalformed
	}

	claims := &domain.TokenClaims{
		UserID:    uint(userID),
		Role:      role,
		SessionID: sessionID,
	}
	if reg.IssuedAt != nil {
		claims.IssuedAt = reg.IssuedAt.Unix()
	}
	if reg.ExpiresAt != nil {
		claims.ExpiresAt = reg.ExpiresAt.Unix()
	}
	return claims, nil
}

// AccessTTL implements domain.TokenService
func (j *JWTServiceImpl) AccessTTL() time.Duration { return j.accessTTL }

// RefreshTTL implements domain.TokenService
func (j *JWTServiceImpl) RefreshTTL() time.Duration { return j.refreshTTL }
