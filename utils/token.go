package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateToken signs a seller token with HS256. The previous incarnation of
// this platform shipped a reversible base64 "token" that anyone could forge;
// the signature here is what makes the seller identity verifiable.
func GenerateToken(ttl time.Duration, sellerID string, secret string) (string, error) {
	now := time.Now().UTC()

	claims := jwt.MapClaims{
		"sub": sellerID,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("generating JWT token failed: %w", err)
	}

	return token, nil
}

// ValidateToken returns the seller id carried in a signed token.
func ValidateToken(token string, secret string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("invalid token subject")
	}

	return sub, nil
}
