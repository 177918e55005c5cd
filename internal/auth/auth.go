// Package auth resolves bearer credentials into an Actor and carries the
// actor through a request context.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Phase-Platform/phase/internal/apperr"
)

// Actor is the authenticated principal of a request.
type Actor struct {
	UserID string
	Method string
}

// System is the actor used by the seed generator and CLI maintenance.
var System = Actor{UserID: "system", Method: "system"}

// IsSystem reports whether a is the built-in system actor.
func (a Actor) IsSystem() bool {
	return a.Method == System.Method
}

type actorKey struct{}

// WithActor returns a context carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored in ctx.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok && a.UserID != ""
}

// Require returns the actor in ctx or an AuthenticationError.
func Require(ctx context.Context) (Actor, error) {
	a, ok := ActorFrom(ctx)
	if !ok {
		return Actor{}, &apperr.AuthenticationError{Reason: "no session"}
	}
	return a, nil
}

// Verifier turns a bearer token into an actor.
type Verifier interface {
	Verify(ctx context.Context, token string) (Actor, error)
}

// ErrUnrecognized is returned by a verifier that does not understand a token,
// so a Chain can try the next one.
var ErrUnrecognized = errors.New("auth: unrecognized token")

// Chain tries each verifier in order. The first verifier that recognizes the
// token decides.
type Chain []Verifier

// Verify implements Verifier.
func (c Chain) Verify(ctx context.Context, token string) (Actor, error) {
	for _, v := range c {
		a, err := v.Verify(ctx, token)
		if errors.Is(err, ErrUnrecognized) {
			continue
		}
		return a, err
	}
	return Actor{}, &apperr.AuthenticationError{Reason: "invalid token"}
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
