package rpc

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Phase-Platform/phase/internal/apperr"
	"github.com/Phase-Platform/phase/internal/auth"
)

const authErrKey = "phase.authErr"

// withTimeout bounds the request context.
func (s *Server) withTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// authenticate resolves the bearer token, when one is sent, into the request
// actor. A failed verification is kept for requireActor so that public
// queries still succeed with a stale token.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}
		if s.verifier == nil {
			c.Set(authErrKey, &apperr.AuthenticationError{Reason: "token authentication is disabled"})
			c.Next()
			return
		}
		actor, err := s.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.Set(authErrKey, err)
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(auth.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// requireActor returns the reason the request has no actor, if any.
func (s *Server) requireActor(c *gin.Context) error {
	if _, err := auth.Require(c.Request.Context()); err == nil {
		return nil
	}
	if v, ok := c.Get(authErrKey); ok {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return &apperr.AuthenticationError{Reason: "missing bearer token"}
}

// requestLog writes one line per request.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ev := s.log.Info()
		if c.Writer.Status() >= 500 {
			ev = s.log.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
