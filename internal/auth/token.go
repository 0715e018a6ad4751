package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// UserKeyFromToken extracts the user identifier from the session JWT.
// The device holds no signing key, so claims are read unverified; the token
// only partitions local caches, the server re-validates it on every call.
func UserKeyFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err == nil && strings.TrimSpace(sub) != "" {
		return sub, nil
	}

	if userID, ok := claims["userId"].(string); ok && strings.TrimSpace(userID) != "" {
		return userID, nil
	}

	return "", fmt.Errorf("session token carries no user identifier")
}
