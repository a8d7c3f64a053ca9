package auth

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the HTTP-only cookie carrying the session token.
	CookieName = "auth_token"

	// TokenTTL bounds how long a login stays valid.
	TokenTTL = 6 * time.Hour
)

type JWT struct {
	Secret string
}

// CreateToken signs an HS256 token whose "id" claim is the user's public
// identificator.
func (j *JWT) CreateToken(userIdentificator string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userIdentificator,
		"exp": time.Now().Add(TokenTTL).Unix(),
	})

	return token.SignedString([]byte(j.Secret))
}

// VerifyToken parses and validates tokenString and returns the user
// identificator from the "id" claim.
func (j *JWT) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(j.Secret), nil
	})

	if err != nil {
		slog.Error("Error verifying token", "error", err)
		return "", err
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid access token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("token is missing the id claim")
	}

	return id, nil
}
