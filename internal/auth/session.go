package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/apperr"
	"github.com/Phase-Platform/phase/internal/db"
	"github.com/Phase-Platform/phase/internal/models"
)

// Sessions verifies opaque tokens against the sessions table.
type Sessions struct {
	gdb *gorm.DB
	now func() time.Time
}

// NewSessions returns a verifier backed by gdb.
func NewSessions(gdb *gorm.DB) *Sessions {
	return &Sessions{gdb: gdb, now: time.Now}
}

// NewSessionToken returns a fresh random session token.
func NewSessionToken() string {
	return "sess_" + uuid.NewString()
}

// Verify implements Verifier. The session must exist, be unexpired and
// belong to an active user.
func (s *Sessions) Verify(ctx context.Context, token string) (Actor, error) {
	var sess models.Session
	err := s.gdb.WithContext(ctx).Where("session_token = ?", token).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Actor{}, &apperr.AuthenticationError{Reason: "unknown session"}
	}
	if err != nil {
		if db.Unavailable(err) {
			return Actor{}, &apperr.StoreUnavailableError{Op: "session lookup", Err: err}
		}
		return Actor{}, fmt.Errorf("auth: session lookup: %w", err)
	}
	if !sess.Expires.After(s.now()) {
		return Actor{}, &apperr.AuthenticationError{Reason: "session expired"}
	}

	var user models.User
	err = s.gdb.WithContext(ctx).Where("id = ?", sess.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Actor{}, &apperr.AuthenticationError{Reason: "session user no longer exists"}
	}
	if err != nil {
		return Actor{}, fmt.Errorf("auth: load session user %s: %w", sess.UserID, err)
	}
	if !user.IsActive {
		return Actor{}, &apperr.AuthenticationError{Reason: "user is inactive"}
	}
	return Actor{UserID: user.ID, Method: "session"}, nil
}
