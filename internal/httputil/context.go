package httputil

import (
	"context"
	"net/http"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userNameKey
)

// WithUserID adds the authenticated caller to the request context.
func WithUserID(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// WithUserName records the caller's display name.
func WithUserName(r *http.Request, name string) *http.Request {
	ctx := context.WithValue(r.Context(), userNameKey, name)
	return r.WithContext(ctx)
}

func GetUserName(r *http.Request) string {
	name, _ := r.Context().Value(userNameKey).(string)
	return name
}
