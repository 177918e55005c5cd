package crud

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/apperr"
	"github.com/Phase-Platform/phase/internal/models"
	"github.com/Phase-Platform/phase/internal/schema"
)

// Hook adds entity-specific validation. It runs after field validation and
// reference checks, before the write, and sees the record as it will be
// stored.
type Hook func(ctx context.Context, tx *gorm.DB, merged schema.Values) error

func defaultHooks() map[string]Hook {
	return map[string]Hook{
		schema.CustomField.Name:      checkCustomField,
		schema.CustomFieldValue.Name: checkCustomFieldValue,
		schema.Project.Name:          checkDateRange(schema.Project.Name),
		schema.Phase.Name:            checkDateRange(schema.Phase.Name),
		schema.Sprint.Name:           checkDateRange(schema.Sprint.Name),
	}
}

func checkCustomField(_ context.Context, _ *gorm.DB, v schema.Values) error {
	var violations []apperr.Violation
	switch v.String("type") {
	case "SELECT", "MULTI_SELECT":
		opts, err := stringList(v["options"])
		if err != nil || len(opts) == 0 {
			violations = append(violations, apperr.Violation{
				Field: "options", Constraint: "required",
				Message: "select fields need at least one option",
			})
		}
	}
	lo, okLo := asFloat(v["minValue"])
	hi, okHi := asFloat(v["maxValue"])
	if okLo && okHi && lo > hi {
		violations = append(violations, apperr.Violation{
			Field: "minValue", Constraint: "range",
			Message: "minValue must not exceed maxValue",
		})
	}
	if len(violations) > 0 {
		return &apperr.ValidationError{Entity: schema.CustomField.Name, Violations: violations}
	}
	return nil
}

// checkCustomFieldValue requires the value to fit its field's type, options
// and bounds, and the target to be of the field's entity type.
func checkCustomFieldValue(ctx context.Context, tx *gorm.DB, v schema.Values) error {
	var field models.CustomField
	if err := tx.WithContext(ctx).Where("id = ?", v.String("customFieldId")).First(&field).Error; err != nil {
		return fmt.Errorf("crud: load custom field: %w", err)
	}

	fail := func(name, constraint, msg string) error {
		return &apperr.ValidationError{
			Entity:     schema.CustomFieldValue.Name,
			Violations: []apperr.Violation{{Field: name, Constraint: constraint, Message: msg}},
		}
	}
	if v.String("entityType") != field.EntityType {
		return fail("entityType", "mismatch",
			fmt.Sprintf("field %s applies to %s, not %s", field.ID, field.EntityType, v.String("entityType")))
	}

	var value any
	if raw, ok := v["value"].(json.RawMessage); ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &value); err != nil {
			return fail("value", "type", "value is not valid JSON")
		}
	}
	if value == nil {
		if field.IsRequired {
			return fail("value", "required", "field "+field.ID+" requires a value")
		}
		return nil
	}

	options, _ := stringList(json.RawMessage(field.Options))
	switch field.Type {
	case "TEXT":
		if _, ok := value.(string); !ok {
			return fail("value", "type", "expected a string")
		}
	case "NUMBER":
		n, ok := value.(float64)
		if !ok {
			return fail("value", "type", "expected a number")
		}
		if field.MinValue != nil && n < *field.MinValue {
			return fail("value", "min", fmt.Sprintf("must be at least %g", *field.MinValue))
		}
		if field.MaxValue != nil && n > *field.MaxValue {
			return fail("value", "max", fmt.Sprintf("must be at most %g", *field.MaxValue))
		}
	case "BOOLEAN":
		if _, ok := value.(bool); !ok {
			return fail("value", "type", "expected a boolean")
		}
	case "DATE":
		s, ok := value.(string)
		if !ok || !isDate(s) {
			return fail("value", "type", "expected an RFC 3339 date")
		}
	case "SELECT":
		s, ok := value.(string)
		if !ok {
			return fail("value", "type", "expected one option")
		}
		if !slices.Contains(options, s) {
			return fail("value", "option", fmt.Sprintf("%q is not an option", s))
		}
	case "MULTI_SELECT":
		items, ok := value.([]any)
		if !ok {
			return fail("value", "type", "expected a list of options")
		}
		for _, it := range items {
			s, ok := it.(string)
			if !ok || !slices.Contains(options, s) {
				return fail("value", "option", fmt.Sprintf("%v is not an option", it))
			}
		}
	}
	return nil
}

// checkDateRange rejects an endDate before the startDate.
func checkDateRange(entity string) Hook {
	return func(_ context.Context, _ *gorm.DB, v schema.Values) error {
		start, okS := asTime(v["startDate"])
		end, okE := asTime(v["endDate"])
		if okS && okE && end.Before(start) {
			return &apperr.ValidationError{Entity: entity, Violations: []apperr.Violation{{
				Field: "endDate", Constraint: "range",
				Message: "endDate must not be before startDate",
			}}}
		}
		return nil
	}
}

func stringList(v any) ([]string, error) {
	switch x := v.(type) {
	case []string:
		return x, nil
	case json.RawMessage:
		if len(x) == 0 {
			return nil, nil
		}
		var out []string
		err := json.Unmarshal(x, &out)
		return out, err
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("not a string list: %T", v)
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}
	return 0, false
}

var storedTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func asTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case []byte:
		return asTime(string(x))
	case string:
		for _, layout := range storedTimeLayouts {
			if t, err := time.Parse(layout, x); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func isDate(s string) bool {
	_, ok := asTime(s)
	return ok
}
