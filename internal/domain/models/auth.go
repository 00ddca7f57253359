package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims are the claims Supabase Auth puts in its access tokens.
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
	Role         string         `json:"role"` // "authenticated" or "anon"
	AAL          string         `json:"aal"`
	SessionID    string         `json:"session_id"`
	IsAnonymous  bool           `json:"is_anonymous"`
}

// GetUserID returns the subject claim.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// DisplayName returns a human-readable name for the user, falling back to
// the email address.
func (c *SupabaseClaims) DisplayName() string {
	for _, key := range []string{"display_name", "full_name", "name"} {
		if v, ok := c.UserMetadata[key].(string); ok && v != "" {
			return v
		}
	}
	return c.Email
}
