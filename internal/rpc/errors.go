package rpc

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Phase-Platform/phase/internal/apperr"
)

const (
	codeBadRequest         = "BAD_REQUEST"
	codeMethodNotSupported = "METHOD_NOT_SUPPORTED"
)

var statusByCode = map[apperr.Code]int{
	apperr.CodeValidation:        http.StatusBadRequest,
	apperr.CodeReferenceNotFound: http.StatusUnprocessableEntity,
	apperr.CodeNotFound:          http.StatusNotFound,
	apperr.CodeConflict:          http.StatusConflict,
	apperr.CodeAuthRequired:      http.StatusUnauthorized,
	apperr.CodeStoreUnavailable:  http.StatusServiceUnavailable,
}

// fail writes the error envelope for err and returns the code it used.
func (s *Server) fail(c *gin.Context, procedure string, err error) string {
	var bad *inputError
	if errors.As(err, &bad) {
		writeError(c, http.StatusBadRequest, codeBadRequest, bad.Error(), nil)
		return codeBadRequest
	}

	code := apperr.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		s.log.Error().Err(err).Str("procedure", procedure).Msg("rpc: internal error")
		writeError(c, http.StatusInternalServerError, string(apperr.CodeInternal), "internal error", nil)
		return string(apperr.CodeInternal)
	}

	if code == apperr.CodeStoreUnavailable {
		s.log.Warn().Err(err).Str("procedure", procedure).Msg("rpc: store unavailable")
		writeError(c, status, string(code), "store unavailable, retry later", nil)
		return string(code)
	}

	var coded apperr.Coded
	errors.As(err, &coded)
	writeError(c, status, string(code), err.Error(), coded)
	return string(code)
}

func writeError(c *gin.Context, status int, code, message string, details any) {
	body := gin.H{"code": code, "message": message}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, gin.H{"error": body})
}
