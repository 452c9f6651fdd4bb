package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers unknown email, inactive account and wrong
	// password alike so a caller cannot probe for account existence.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
	// ErrInvalidRefreshToken means the presented token did not match the
	// session's stored hash; the session is destroyed as a side effect.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// Password reset errors
var (
	ErrResetTokenNotFound = errors.New("reset token not found")
	ErrResetCodeExpired   = errors.New("reset code has expired")
	ErrResetCodeInvalid   = errors.New("invalid reset code")
	ErrResetThrottled     = errors.New("reset requested too recently")
)
