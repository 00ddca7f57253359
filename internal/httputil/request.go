package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"lorekeeper/internal/config"
)

// ErrEmptyBody is returned by ParseJSON for a request without a body.
var ErrEmptyBody = errors.New("request body is empty")

// ParseJSON decodes the request body into dest. The body is capped at
// config.MaxRequestBodyBytes; trailing data after the first value is rejected.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if decoder.More() {
		return errors.New("invalid JSON: unexpected data after body")
	}
	return nil
}

// IsBodyTooLarge reports whether err came from the body size limit.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
