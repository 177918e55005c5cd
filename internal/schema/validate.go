package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Phase-Platform/phase/internal/apperr"
)

// Values is a validated, normalized record keyed by wire name. Values hold
// string, int64, float64, bool, time.Time, []string, json.RawMessage or nil.
type Values map[string]any

// String returns the string value of name, or "" when absent or null.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

var formats = validator.New()

const maxIDLength = 64

// ValidateCreate checks a create input against the entity, applies declared
// defaults and returns the normalized values. Every violation is reported.
func (e *Entity) ValidateCreate(input map[string]any) (Values, error) {
	out := make(Values, len(input))
	var violations []apperr.Violation

	if raw, ok := input[FieldID]; ok {
		id, isStr := raw.(string)
		switch {
		case !isStr:
			violations = append(violations, violation(FieldID, "type", "must be a string"))
		case strings.TrimSpace(id) == "" || len(id) > maxIDLength:
			violations = append(violations, violation(FieldID, "format", fmt.Sprintf("must be 1-%d characters", maxIDLength)))
		default:
			out[FieldID] = id
		}
	}

	for _, f := range e.Fields {
		raw, present := input[f.Name]
		if !present {
			switch {
			case f.Required:
				violations = append(violations, violation(f.Name, "required", "is required"))
			case f.Default != nil:
				val, _ := normalize(f, f.Default)
				out[f.Name] = val
			}
			continue
		}
		if raw == nil {
			switch {
			case f.Required:
				violations = append(violations, violation(f.Name, "required", "is required"))
			case f.Default != nil:
				violations = append(violations, violation(f.Name, "type", "must not be null"))
			default:
				out[f.Name] = nil
			}
			continue
		}
		val, v := normalize(f, raw)
		if v != nil {
			violations = append(violations, *v)
			continue
		}
		if f.Required && isBlank(val) {
			violations = append(violations, violation(f.Name, "required", "must not be empty"))
			continue
		}
		out[f.Name] = val
	}

	violations = append(violations, e.unknown(input, true)...)
	violations = append(violations, e.checkPoly(input)...)

	if len(violations) > 0 {
		return nil, &apperr.ValidationError{Entity: e.Name, Violations: violations}
	}
	return out, nil
}

// ValidatePatch checks a partial update. Only supplied fields are checked and
// returned; defaults are never applied.
func (e *Entity) ValidatePatch(patch map[string]any) (Values, error) {
	out := make(Values, len(patch))
	var violations []apperr.Violation

	for _, f := range e.Fields {
		raw, present := patch[f.Name]
		if !present {
			continue
		}
		if f.Immutable {
			violations = append(violations, violation(f.Name, "immutable", "cannot be changed after creation"))
			continue
		}
		if raw == nil {
			if f.Nullable() {
				out[f.Name] = nil
			} else {
				violations = append(violations, violation(f.Name, "required", "must not be null"))
			}
			continue
		}
		val, v := normalize(f, raw)
		if v != nil {
			violations = append(violations, *v)
			continue
		}
		if f.Required && isBlank(val) {
			violations = append(violations, violation(f.Name, "required", "must not be empty"))
			continue
		}
		out[f.Name] = val
	}

	violations = append(violations, e.unknown(patch, false)...)

	if len(violations) > 0 {
		return nil, &apperr.ValidationError{Entity: e.Name, Violations: violations}
	}
	return out, nil
}

// unknown reports keys that are not declared fields, sorted for stable output.
func (e *Entity) unknown(input map[string]any, allowID bool) []apperr.Violation {
	var keys []string
	for k := range input {
		if k == FieldID && allowID {
			continue
		}
		if _, ok := e.Field(k); !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var out []apperr.Violation
	for _, k := range keys {
		switch k {
		case FieldID, FieldCreatedAt, FieldUpdatedAt:
			out = append(out, violation(k, "read-only", "is assigned by the server"))
		default:
			out = append(out, violation(k, "unknown", "is not a field of "+e.Name))
		}
	}
	return out
}

// checkPoly enforces that an optional polymorphic pair is set together.
func (e *Entity) checkPoly(input map[string]any) []apperr.Violation {
	if e.Poly == nil || e.Poly.Required {
		return nil
	}
	hasType := input[e.Poly.TypeField] != nil
	hasID := input[e.Poly.IDField] != nil
	if hasType != hasID {
		return []apperr.Violation{violation(e.Poly.IDField, "pair",
			fmt.Sprintf("%s and %s must be set together", e.Poly.TypeField, e.Poly.IDField))}
	}
	return nil
}

func violation(field, constraint, msg string) apperr.Violation {
	return apperr.Violation{Field: field, Constraint: constraint, Message: msg}
}

func isBlank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// normalize converts raw into the field's canonical Go representation.
func normalize(f Field, raw any) (any, *apperr.Violation) {
	bad := func(constraint, msg string) (any, *apperr.Violation) {
		v := violation(f.Name, constraint, msg)
		return nil, &v
	}

	switch f.Kind {
	case KindString, KindText, KindRef:
		s, ok := raw.(string)
		if !ok {
			return bad("type", "must be a string")
		}
		if f.Format != "" && s != "" {
			if err := formats.Var(s, f.Format); err != nil {
				return bad("format", "must be a valid "+f.Format)
			}
		}
		return s, nil

	case KindEnum:
		s, ok := raw.(string)
		if !ok {
			return bad("type", "must be a string")
		}
		if !f.Enum.Contains(s) {
			return bad("enum", "must be one of "+strings.Join(f.Enum.Values, ", "))
		}
		return s, nil

	case KindInt:
		n, ok := toInt(raw)
		if !ok {
			return bad("type", "must be an integer")
		}
		return n, nil

	case KindFloat:
		x, ok := toFloat(raw)
		if !ok {
			return bad("type", "must be a number")
		}
		return x, nil

	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return bad("type", "must be a boolean")
		}
		return b, nil

	case KindTime:
		t, ok := toTime(raw)
		if !ok {
			return bad("type", "must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		return t, nil

	case KindStringList:
		list, ok := toStrings(raw)
		if !ok {
			return bad("type", "must be a list of strings")
		}
		return list, nil

	case KindJSON:
		if rm, ok := raw.(json.RawMessage); ok {
			if !json.Valid(rm) {
				return bad("type", "must be valid JSON")
			}
			return rm, nil
		}
		data, err := json.Marshal(raw)
		if err != nil {
			return bad("type", "must be JSON-encodable")
		}
		return json.RawMessage(data), nil
	}
	return bad("type", "has unsupported kind "+f.Kind.String())
}

func toInt(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float32:
		return toInt(float64(n))
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return toFloat(float64(n))
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	if i, ok := toInt(raw); ok {
		return float64(i), true
	}
	return 0, false
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func toTime(raw any) (time.Time, bool) {
	switch t := raw.(type) {
	case time.Time:
		return t.UTC(), true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

func toStrings(raw any) ([]string, bool) {
	switch l := raw.(type) {
	case []string:
		out := make([]string, len(l))
		copy(out, l)
		return out, true
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
