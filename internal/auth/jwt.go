package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Phase-Platform/phase/internal/apperr"
)

const issuer = "phase"

// JWT issues and verifies HS256 tokens whose subject is a user id.
type JWT struct {
	secret []byte
	now    func() time.Time
}

// NewJWT returns a JWT signer/verifier for secret.
func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for userID valid for ttl.
func (j *JWT) Issue(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("auth: issue: user id is required")
	}
	now := j.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign: %w", err)
	}
	return signed, nil
}

// Verify implements Verifier. Tokens that are not JWTs are left to the next
// verifier in a Chain.
func (j *JWT) Verify(_ context.Context, token string) (Actor, error) {
	if strings.Count(token, ".") != 2 {
		return Actor{}, ErrUnrecognized
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		reason := "invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			reason = "token expired"
		}
		return Actor{}, &apperr.AuthenticationError{Reason: reason}
	}
	if claims.Subject == "" {
		return Actor{}, &apperr.AuthenticationError{Reason: "token has no subject"}
	}
	return Actor{UserID: claims.Subject, Method: "jwt"}, nil
}
