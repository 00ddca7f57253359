package auth

import "lorekeeper/internal/domain/models"

// JWTVerifier validates bearer tokens. The middleware depends on this
// interface so tests can supply their own keys.
type JWTVerifier interface {
	// VerifyToken returns the token's claims, or domain.ErrUnauthorized if the
	// token is malformed, expired, badly signed or not an authenticated user.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	Close() error
}
