package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxBody = 1 << 20

// inputError is a malformed procedure input.
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return "bad input: " + e.msg }

func badInput(format string, args ...any) error {
	return &inputError{msg: fmt.Sprintf(format, args...)}
}

// readInput returns the raw JSON input of a call: the "input" query parameter
// for GET, the body for POST. Empty input is nil.
func readInput(c *gin.Context) ([]byte, error) {
	if c.Request.Method == http.MethodGet {
		if raw := c.Query("input"); raw != "" {
			return []byte(raw), nil
		}
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBody+1))
	if err != nil {
		return nil, badInput("read body: %v", err)
	}
	if len(body) > maxBody {
		return nil, badInput("body exceeds %d bytes", maxBody)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	return body, nil
}

func decodeJSON(input []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return badInput("%v", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return badInput("trailing data after JSON value")
	}
	return nil
}

// decodeID accepts either a bare JSON string or {"id": "..."}.
func decodeID(input []byte) (string, error) {
	if len(input) == 0 {
		return "", badInput("id is required")
	}
	if input[0] == '"' {
		var id string
		if err := decodeJSON(input, &id); err != nil {
			return "", err
		}
		if id == "" {
			return "", badInput("id is required")
		}
		return id, nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(input, &obj); err != nil {
		return "", err
	}
	if obj.ID == "" {
		return "", badInput("id is required")
	}
	return obj.ID, nil
}

func decodeObject(input []byte) (map[string]any, error) {
	if len(input) == 0 || input[0] != '{' {
		return nil, badInput("input must be a JSON object")
	}
	var obj map[string]any
	if err := decodeJSON(input, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

type updateInput struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// decodeUpdate reads {"id": "...", "data": {...}}.
func decodeUpdate(input []byte) (updateInput, error) {
	var in updateInput
	if len(input) == 0 || input[0] != '{' {
		return in, badInput("input must be {\"id\": ..., \"data\": {...}}")
	}
	if err := decodeJSON(input, &in); err != nil {
		return in, err
	}
	if in.ID == "" {
		return in, badInput("id is required")
	}
	if in.Data == nil {
		return in, badInput("data is required")
	}
	return in, nil
}
