package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// apiTokenBytes is the entropy of a generated API token.
const apiTokenBytes = 32

// GenerateAPIToken creates an opaque bearer token for the open ingestion
// endpoint. This is NOT a PASETO token: it's random bytes stored verbatim on
// the user row and compared exactly on each request.
func GenerateAPIToken() (string, error) {
	b := make([]byte, apiTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate api token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// APITokenFromRequest extracts an API token from the Authorization header
// (Bearer scheme) or the X-Api-Token header. Returns "" when neither is set.
func APITokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimSpace(authHeader[len("Bearer "):]); token != "" {
			return token
		}
	}

	if token := strings.TrimSpace(r.Header.Get("X-Api-Token")); token != "" {
		return token
	}

	return ""
}
