package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"healbot/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSecretEmpty = errors.New("jwt secret is empty")
	ErrTokenEmpty  = errors.New("token is empty")
)

// Verifier implementa auth.AuthVerifier para los tokens HS256 que emite el
// servicio de cuentas. El user id viaja en el claim "userId".
type Verifier struct {
	secret []byte
}

func New(secret string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrSecretEmpty
	}
	return &Verifier{secret: []byte(secret)}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("verify token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, errors.New("unexpected claims type")
	}

	userID := stringClaim(claims["userId"])
	if userID == "" {
		return auth.Claims{}, errors.New("token missing userId claim")
	}

	return auth.Claims{UserID: userID}, nil
}

// stringClaim tolera user ids numéricos (el emisor histórico usaba seriales).
func stringClaim(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatInt(int64(x), 10)
	default:
		return ""
	}
}
