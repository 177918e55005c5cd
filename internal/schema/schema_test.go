package schema

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Phase-Platform/phase/internal/apperr"
)

func validationErr(t *testing.T, err error) *apperr.ValidationError {
	t.Helper()
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *apperr.ValidationError", err)
	}
	return ve
}

func TestRegistry_Check(t *testing.T) {
	if err := Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}
	if got := len(All()); got != 32 {
		t.Errorf("len(All()) = %d, want 32", got)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	e, ok := Lookup("project")
	if !ok {
		t.Fatal("project not registered")
	}
	if e.Table != "projects" || e.Prefix != "proj" {
		t.Errorf("project = %s/%s, want projects/proj", e.Table, e.Prefix)
	}
	if _, ok := Lookup("spaceship"); ok {
		t.Error("Lookup(spaceship) succeeded")
	}
}

func TestSelfReferencesAreNullable(t *testing.T) {
	for _, e := range All() {
		for _, f := range e.Refs() {
			if f.Ref == e.Name && f.Required {
				t.Errorf("%s.%s is a required self-reference", e.Name, f.Name)
			}
		}
	}
}

func TestPolyTargetsRoundTrip(t *testing.T) {
	for _, v := range EntityType.Values {
		name, ok := TargetOf(v)
		if !ok {
			t.Errorf("TargetOf(%s) missing", v)
			continue
		}
		back, ok := TypeOf(name)
		if !ok || back != v {
			t.Errorf("TypeOf(%s) = %q, want %q", name, back, v)
		}
	}
}

func TestValidateCreate_BugDefaults(t *testing.T) {
	vals, err := Bug.ValidateCreate(map[string]any{
		"title":     "Login fails",
		"projectId": "proj_1",
	})
	if err != nil {
		t.Fatalf("ValidateCreate: %v", err)
	}
	tests := map[string]string{"status": "OPEN", "severity": "MEDIUM", "priority": "MEDIUM"}
	for field, want := range tests {
		if got := vals.String(field); got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}
	if _, ok := vals["resolvedAt"]; ok {
		t.Error("resolvedAt should be absent, not defaulted")
	}
}

func TestValidateCreate_ReportsEveryMissingField(t *testing.T) {
	_, err := Project.ValidateCreate(map[string]any{})
	ve := validationErr(t, err)
	for _, f := range []string{"name", "slug", "ownerId", "organizationId"} {
		if !ve.Has(f, "required") {
			t.Errorf("missing required violation for %s in %v", f, ve.Violations)
		}
	}
	if ve.Has("status", "required") {
		t.Error("status has a default and must not be reported")
	}
}

func TestValidateCreate_EnumOutOfDomain(t *testing.T) {
	_, err := Bug.ValidateCreate(map[string]any{
		"title":     "x",
		"projectId": "proj_1",
		"status":    "open",
	})
	ve := validationErr(t, err)
	if !ve.Has("status", "enum") {
		t.Errorf("violations = %v, want status enum", ve.Violations)
	}
}

func TestValidateCreate_UnknownAndReadOnly(t *testing.T) {
	_, err := Sprint.ValidateCreate(map[string]any{
		"name":      "S1",
		"projectId": "proj_1",
		"velocity":  12,
		"createdAt": "2024-01-01",
	})
	ve := validationErr(t, err)
	if !ve.Has("velocity", "unknown") {
		t.Errorf("violations = %v, want velocity unknown", ve.Violations)
	}
	if !ve.Has("createdAt", "read-only") {
		t.Errorf("violations = %v, want createdAt read-only", ve.Violations)
	}
}

func TestValidateCreate_Formats(t *testing.T) {
	_, err := User.ValidateCreate(map[string]any{"email": "not-an-email"})
	ve := validationErr(t, err)
	if !ve.Has("email", "format") {
		t.Errorf("violations = %v, want email format", ve.Violations)
	}

	_, err = Organization.ValidateCreate(map[string]any{
		"name": "Acme", "slug": "acme", "website": "acme dot com",
	})
	ve = validationErr(t, err)
	if !ve.Has("website", "format") {
		t.Errorf("violations = %v, want website format", ve.Violations)
	}
}

func TestValidateCreate_Kinds(t *testing.T) {
	vals, err := Feature.ValidateCreate(map[string]any{
		"title":       "Checkout",
		"projectId":   "proj_1",
		"storyPoints": float64(8),
		"labels":      []any{"ui", "payments"},
		"tags":        map[string]any{"epic": true},
		"completedAt": "2024-03-01",
	})
	if err != nil {
		t.Fatalf("ValidateCreate: %v", err)
	}
	if got := vals["storyPoints"]; got != int64(8) {
		t.Errorf("storyPoints = %#v, want int64(8)", got)
	}
	labels, _ := vals["labels"].([]string)
	if len(labels) != 2 || labels[1] != "payments" {
		t.Errorf("labels = %v", vals["labels"])
	}
	raw, _ := vals["tags"].(json.RawMessage)
	if string(raw) != `{"epic":true}` {
		t.Errorf("tags = %s", raw)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got, _ := vals["completedAt"].(time.Time); !got.Equal(want) {
		t.Errorf("completedAt = %v, want %v", got, want)
	}

	_, err = Feature.ValidateCreate(map[string]any{
		"title": "x", "projectId": "p", "storyPoints": 2.5, "labels": []any{1},
	})
	ve := validationErr(t, err)
	if !ve.Has("storyPoints", "type") || !ve.Has("labels", "type") {
		t.Errorf("violations = %v, want storyPoints and labels type", ve.Violations)
	}
}

func TestValidateCreate_ExplicitID(t *testing.T) {
	vals, err := Organization.ValidateCreate(map[string]any{"id": "org_1", "name": "A", "slug": "a"})
	if err != nil {
		t.Fatalf("ValidateCreate: %v", err)
	}
	if vals.String("id") != "org_1" {
		t.Errorf("id = %q, want org_1", vals.String("id"))
	}
	_, err = Organization.ValidateCreate(map[string]any{"id": "", "name": "A", "slug": "a"})
	if !validationErr(t, err).Has("id", "format") {
		t.Error("empty id accepted")
	}
}

func TestValidateCreate_NullHandling(t *testing.T) {
	vals, err := Feature.ValidateCreate(map[string]any{
		"title": "x", "projectId": "p", "sprintId": nil,
	})
	if err != nil {
		t.Fatalf("ValidateCreate: %v", err)
	}
	if v, ok := vals["sprintId"]; !ok || v != nil {
		t.Errorf("sprintId = %v (present %v), want explicit nil", v, ok)
	}

	_, err = Feature.ValidateCreate(map[string]any{
		"title": "x", "projectId": "p", "status": nil,
	})
	if !validationErr(t, err).Has("status", "type") {
		t.Error("null status accepted for a defaulted field")
	}
}

func TestValidateCreate_PolyPair(t *testing.T) {
	base := map[string]any{
		"type": "TASK_ASSIGNED", "title": "t", "message": "m", "userId": "user_1",
	}
	if _, err := Notification.ValidateCreate(base); err != nil {
		t.Fatalf("notification without target: %v", err)
	}
	base["entityType"] = "TASK"
	_, err := Notification.ValidateCreate(base)
	if !validationErr(t, err).Has("entityId", "pair") {
		t.Error("half a polymorphic pair accepted")
	}
	base["entityType"] = "INVOICE"
	base["entityId"] = "x"
	_, err = Notification.ValidateCreate(base)
	if !validationErr(t, err).Has("entityType", "enum") {
		t.Error("unknown entity type accepted")
	}
}

func TestValidatePatch(t *testing.T) {
	vals, err := Project.ValidatePatch(map[string]any{"name": "Renamed", "budget": 10})
	if err != nil {
		t.Fatalf("ValidatePatch: %v", err)
	}
	if len(vals) != 2 {
		t.Errorf("len(vals) = %d, want 2 (no defaults on patch)", len(vals))
	}
	if vals["budget"] != float64(10) {
		t.Errorf("budget = %#v, want float64(10)", vals["budget"])
	}

	tests := []struct {
		name       string
		patch      map[string]any
		field      string
		constraint string
	}{
		{"immutable slug", map[string]any{"slug": "new"}, "slug", "immutable"},
		{"null required", map[string]any{"name": nil}, "name", "required"},
		{"empty required", map[string]any{"name": "  "}, "name", "required"},
		{"null defaulted", map[string]any{"status": nil}, "status", "required"},
		{"bad enum", map[string]any{"priority": "URGENT"}, "priority", "enum"},
		{"id", map[string]any{"id": "proj_2"}, "id", "read-only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Project.ValidatePatch(tt.patch)
			if !validationErr(t, err).Has(tt.field, tt.constraint) {
				t.Errorf("want %s %s violation, got %v", tt.field, tt.constraint, err)
			}
		})
	}

	vals, err = Project.ValidatePatch(map[string]any{"endDate": nil})
	if err != nil {
		t.Fatalf("null on nullable field: %v", err)
	}
	if v, ok := vals["endDate"]; !ok || v != nil {
		t.Errorf("endDate = %v, want explicit nil", v)
	}
}

func TestColumnName(t *testing.T) {
	tests := []struct {
		entity *Entity
		field  string
		want   string
	}{
		{Project, "organizationId", "organization_id"},
		{Phase, "order", "sort_order"},
		{Notification, "read", "is_read"},
		{Bug, "stepsToReproduce", "steps_to_reproduce"},
		{Session, "sessionToken", "session_token"},
	}
	for _, tt := range tests {
		f, ok := tt.entity.Field(tt.field)
		if !ok {
			t.Fatalf("%s.%s not declared", tt.entity.Name, tt.field)
		}
		if got := f.ColumnName(); got != tt.want {
			t.Errorf("%s.%s column = %q, want %q", tt.entity.Name, tt.field, got, tt.want)
		}
	}
}
