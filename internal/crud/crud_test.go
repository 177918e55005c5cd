package crud

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/apperr"
	"github.com/Phase-Platform/phase/internal/auth"
	"github.com/Phase-Platform/phase/internal/db"
	"github.com/Phase-Platform/phase/internal/models"
	"github.com/Phase-Platform/phase/internal/schema"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// testRegistry opens an in-memory database with every table and returns a
// registry over it plus an authenticated context.
func testRegistry(t *testing.T) (*Registry, *fakeClock, context.Context) {
	t.Helper()
	gdb, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	reg := NewRegistry(gdb, WithClock(clock.now))
	ctx := auth.WithActor(context.Background(), auth.Actor{UserID: "user_1", Method: "jwt"})
	return reg, clock, ctx
}

func mustCreate(t *testing.T, reg *Registry, ctx context.Context, entity string, input map[string]any) any {
	t.Helper()
	res, err := reg.Resource(entity)
	if err != nil {
		t.Fatalf("Resource(%s): %v", entity, err)
	}
	row, err := res.Create(ctx, input)
	if err != nil {
		t.Fatalf("create %s: %v", entity, err)
	}
	return row
}

func seedBase(t *testing.T, reg *Registry, ctx context.Context) {
	t.Helper()
	mustCreate(t, reg, ctx, "organization", map[string]any{"id": "org_1", "name": "TechCorp Solutions", "slug": "techcorp-solutions"})
	mustCreate(t, reg, ctx, "user", map[string]any{"id": "user_1", "email": "john@techcorp.com", "name": "John", "organizationId": "org_1"})
	mustCreate(t, reg, ctx, "project", map[string]any{
		"id": "proj_1", "name": "E-Commerce Platform", "slug": "e-commerce-platform",
		"ownerId": "user_1", "organizationId": "org_1",
	})
	mustCreate(t, reg, ctx, "feature", map[string]any{"id": "feat_1", "title": "Checkout", "projectId": "proj_1"})
}

func TestModelsMatchSchema(t *testing.T) {
	reg, _, _ := testRegistry(t)
	for _, e := range schema.All() {
		res, err := reg.Resource(e.Name)
		if err != nil {
			t.Fatalf("Resource(%s): %v", e.Name, err)
		}
		if res.Entity() != e {
			t.Errorf("%s: resource bound to %s", e.Name, res.Entity().Name)
		}
	}
	for _, m := range db.AllModels() {
		stmt := &gorm.Statement{DB: reg.DB()}
		if err := stmt.Parse(m); err != nil {
			t.Fatalf("parse %T: %v", m, err)
		}
		var e *schema.Entity
		for _, cand := range schema.All() {
			if cand.Table == stmt.Schema.Table {
				e = cand
			}
		}
		if e == nil {
			t.Errorf("%T: table %s has no entity", m, stmt.Schema.Table)
			continue
		}
		typ := reflect.TypeOf(m).Elem()
		tags := map[string]bool{}
		for i := 0; i < typ.NumField(); i++ {
			tags[strings.Split(typ.Field(i).Tag.Get("json"), ",")[0]] = true
		}
		for _, f := range e.Fields {
			if !tags[f.Name] {
				t.Errorf("%s: model %s has no json field %q", e.Name, typ.Name(), f.Name)
			}
			if stmt.Schema.LookUpField(f.ColumnName()) == nil {
				t.Errorf("%s: model %s has no column %q", e.Name, typ.Name(), f.ColumnName())
			}
		}
	}
}

func TestCreateGet_RoundTrip(t *testing.T) {
	reg, clock, ctx := testRegistry(t)
	seedBase(t, reg, ctx)

	orgs := Repository[models.Organization](reg, schema.Organization)
	org, err := orgs.Get(ctx, "org_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if org.Name != "TechCorp Solutions" || org.Slug != "techcorp-solutions" {
		t.Errorf("org = %+v", org)
	}
	if !org.IsActive {
		t.Error("isActive default not applied")
	}
	if !org.CreatedAt.Equal(clock.t) || !org.UpdatedAt.Equal(clock.t) {
		t.Errorf("timestamps = %v/%v, want %v", org.CreatedAt, org.UpdatedAt, clock.t)
	}
}

// wireMap renders v the way the RPC layer does and decodes it generically.
func wireMap(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %T: %v", v, err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return out
}

func TestCreateGet_RoundTripEveryKind(t *testing.T) {
	reg, clock, ctx := testRegistry(t)
	seedBase(t, reg, ctx)
	mustCreate(t, reg, ctx, "phase", map[string]any{
		"id": "phase_1", "name": "Development", "projectId": "proj_1", "type": "DEVELOPMENT", "order": 1,
	})
	mustCreate(t, reg, ctx, "customField", map[string]any{
		"id": "cf_points", "name": "Story Points", "type": "NUMBER", "entityType": "FEATURE",
		"projectId": "proj_1", "minValue": 1, "maxValue": 13.5, "defaultValue": 3,
	})

	tests := []struct {
		name   string
		entity string
		input  map[string]any
	}{
		{"json object, float, time, nullable refs", "task", map[string]any{
			"id": "task_rt", "title": "Payment form", "projectId": "proj_1", "phaseId": "phase_1",
			"featureId": "feat_1", "assignedToId": nil, "estimatedHours": 2.5,
			"dueDate":  "2024-04-01T17:30:00Z",
			"metadata": map[string]any{"sprint": map[string]any{"goal": "pay"}, "points": []any{1, 2}},
		}},
		{"string list, json array, self ref", "feature", map[string]any{
			"id": "feat_rt", "title": "Guest checkout", "projectId": "proj_1", "parentFeatureId": "feat_1",
			"labels": []any{"frontend", "checkout"}, "tags": []any{"q2"}, "storyPoints": 5,
		}},
		{"json number scalar", "customField", map[string]any{
			"id": "cf_rt", "name": "Effort", "type": "NUMBER", "entityType": "TASK",
			"projectId": "proj_1", "defaultValue": 3, "minValue": 0.5,
		}},
		{"json string scalar", "customField", map[string]any{
			"id": "cf_text", "name": "Note", "type": "TEXT", "entityType": "TASK",
			"projectId": "proj_1", "defaultValue": "n/a",
		}},
		{"json scalar value", "customFieldValue", map[string]any{
			"id": "cfv_rt", "customFieldId": "cf_points", "entityType": "FEATURE", "entityId": "feat_1", "value": 8,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := reg.Resource(tt.entity)
			if err != nil {
				t.Fatalf("Resource: %v", err)
			}
			created, err := res.Create(ctx, tt.input)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			got, err := res.Get(ctx, tt.input["id"].(string))
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			want := wireMap(t, tt.input)
			for _, row := range []map[string]any{wireMap(t, created), wireMap(t, got)} {
				for k, v := range want {
					if !reflect.DeepEqual(row[k], v) {
						t.Errorf("%s = %#v, want %#v", k, row[k], v)
					}
				}
				stamp := clock.t.Format(time.RFC3339)
				if row["createdAt"] != stamp || row["updatedAt"] != stamp {
					t.Errorf("timestamps = %v/%v, want %s", row["createdAt"], row["updatedAt"], stamp)
				}
			}
			if _, err := res.List(ctx); err != nil {
				t.Errorf("List after create: %v", err)
			}
		})
	}
}

// failReadBacks makes every query after a write fail while on is set.
type failReadBacks struct {
	on    bool
	wrote bool
	err   error
}

func (f *failReadBacks) install(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	arm := func(*gorm.DB) {
		if f.on {
			f.wrote = true
		}
	}
	cb := gdb.Callback()
	if err := cb.Create().After("gorm:create").Register("phase_test:arm_create", arm); err != nil {
		t.Fatal(err)
	}
	if err := cb.Update().After("gorm:update").Register("phase_test:arm_update", arm); err != nil {
		t.Fatal(err)
	}
	if err := cb.Query().Before("gorm:query").Register("phase_test:fail_query", func(tx *gorm.DB) {
		if f.wrote {
			tx.AddError(f.err)
		}
	}); err != nil {
		t.Fatal(err)
	}
}

func (f *failReadBacks) set(on bool) { f.on, f.wrote = on, false }

func TestWrite_FailedReadBackRollsBack(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	f := &failReadBacks{err: errors.New("read back failed")}
	f.install(t, reg.DB())

	orgs := Repository[models.Organization](reg, schema.Organization)
	if _, err := orgs.Create(ctx, map[string]any{"id": "org_1", "name": "TechCorp", "slug": "techcorp"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.set(true)
	_, err := orgs.Create(ctx, map[string]any{"id": "org_2", "name": "Acme", "slug": "acme"})
	f.set(false)
	if !errors.Is(err, f.err) {
		t.Fatalf("Create = %v, want read-back failure", err)
	}
	if _, err := orgs.Get(ctx, "org_2"); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("Get(org_2) after failed create = %v, want NotFound", err)
	}
	rows, err := orgs.List(ctx)
	if err != nil || len(rows) != 1 {
		t.Errorf("List = %d rows, %v; want 1 row", len(rows), err)
	}

	f.set(true)
	_, err = orgs.Update(ctx, "org_1", map[string]any{"name": "Renamed"})
	f.set(false)
	if !errors.Is(err, f.err) {
		t.Fatalf("Update = %v, want read-back failure", err)
	}
	org, err := orgs.Get(ctx, "org_1")
	if err != nil {
		t.Fatalf("Get(org_1): %v", err)
	}
	if org.Name != "TechCorp" {
		t.Errorf("name after failed update = %q, want TechCorp", org.Name)
	}
}

func TestCreate_GeneratesPrefixedID(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	row := mustCreate(t, reg, ctx, "organization", map[string]any{"name": "Acme", "slug": "acme"})
	org := row.(*models.Organization)
	if !strings.HasPrefix(org.ID, "org_") || len(org.ID) != len("org_")+12 {
		t.Errorf("generated id = %q, want org_<12 hex>", org.ID)
	}
}

func TestCreate_Defaults(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	seedBase(t, reg, ctx)
	row := mustCreate(t, reg, ctx, "bug", map[string]any{"title": "Crash on login", "projectId": "proj_1"})
	bug := row.(*models.Bug)
	if bug.Status != "OPEN" || bug.Severity != "MEDIUM" || bug.Priority != "MEDIUM" {
		t.Errorf("defaults = %s/%s/%s, want OPEN/MEDIUM/MEDIUM", bug.Status, bug.Severity, bug.Priority)
	}
}

func TestCreate_ReferenceNotFound(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	seedBase(t, reg, ctx)
	bugs, _ := reg.Resource("bug")
	_, err := bugs.Create(ctx, map[string]any{"title": "x", "projectId": "proj_1", "sprintId": "sprint_404"})
	var rnf *apperr.ReferenceNotFoundError
	if !errors.As(err, &rnf) || rnf.Field != "sprintId" {
		t.Fatalf("Create = %v, want ReferenceNotFound on sprintId", err)
	}
	list, _ := bugs.List(ctx)
	if n := len(list.([]models.Bug)); n != 0 {
		t.Errorf("failed create left %d rows", n)
	}
}

func TestCreate_Validation(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	seedBase(t, reg, ctx)
	bugs, _ := reg.Resource("bug")
	_, err := bugs.Create(ctx, map[string]any{"projectId": "proj_1", "status": "NOPE"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Create = %v, want ValidationError", err)
	}
	if !ve.Has("title", "required") || !ve.Has("status", "enum") {
		t.Errorf("violations = %+v", ve.Violations)
	}
}

func TestCreate_Conflicts(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	seedBase(t, reg, ctx)

	tests := []struct {
		name   string
		entity string
		input  map[string]any
	}{
		{"duplicate email", "user", map[string]any{"email": "john@techcorp.com"}},
		{"duplicate slug", "organization", map[string]any{"name": "Other", "slug": "techcorp-solutions"}},
		{"duplicate id", "feature", map[string]any{"id": "feat_1", "title": "Again", "projectId": "proj_1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := reg.Resource(tt.entity)
			_, err := res.Create(ctx, tt.input)
			if !apperr.Is(err, apperr.CodeConflict) {
				t.Errorf("Create = %v, want Conflict", err)
			}
		})
	}
}

func TestCreate_RequiresActor(t *testing.T) {
	reg, _, _ := testRegistry(t)
	orgs, _ := reg.Resource("organization")
	_, err := orgs.Create(context.Background(), map[string]any{"name": "Acme", "slug": "acme"})
	if !apperr.Is(err, apperr.CodeAuthRequired) {
		t.Errorf("Create without actor = %v, want AuthenticationRequired", err)
	}
	ctx := auth.WithActor(context.Background(), auth.System)
	if _, err := orgs.Create(ctx, map[string]any{"name": "Acme", "slug": "acme"}); err != nil {
		t.Errorf("Create as system = %v", err)
	}
}

func TestUpdate_ChangesOnlyGivenFields(t *testing.T) {
	reg, clock, ctx := testRegistry(t)
	seedBase(t, reg, ctx)
	created := mustCreate(t, reg, ctx, "bug", map[string]any{
		"id": "bug_1", "title": "Crash", "projectId": "proj_1", "labels": []any{"ui"},
	}).(*models.Bug)

	clock.advance(time.Hour)
	bugs := Repository[models.Bug](reg, schema.Bug)
	got, err := bugs.Update(ctx, "bug_1", map[string]any{"status": "RESOLVED"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != "RESOLVED" {
		t.Errorf("status = %s, want RESOLVED", got.Status)
	}
	if got.Title != created.Title || string(got.Labels) != string(created.Labels) {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, created.CreatedAt)
	}
	if !got.UpdatedAt.Equal(clock.t) {
		t.Errorf("updatedAt = %v, want %v", got.UpdatedAt, clock.t)
	}

	got, err = bugs.Update(ctx, "bug_1", map[string]any{"labels": []any{"ui", "auth"}, "featureId": "feat_1"})
	if err != nil {
		t.Fatalf("Update list: %v", err)
	}
	var labels []string
	if err := json.Unmarshal(got.Labels, &labels); err != nil || len(labels) != 2 {
		t.Errorf("labels = %s", got.Labels)
	}
	if got.FeatureID == nil || *got.FeatureID != "feat_1" {
		t.Errorf("featureId = %v", got.FeatureID)
	}

	got, err = bugs.Update(ctx, "bug_1", map[string]any{"featureId": nil})
	if err != nil {
		t.Fatalf("Update clear ref: %v", err)
	}
	if got.FeatureID != nil {
		t.Errorf("featureId = %v, want nil", *got.FeatureID)
	}
}

func TestUpdate_Errors(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	seedBase(t, reg, ctx)
	mustCreate(t, reg, ctx, "user", map[string]any{"id": "user_2", "email": "jane@techcorp.com"})
	users, _ := reg.Resource("user")
	projects, _ := reg.Resource("project")

	if _, err := users.Update(ctx, "user_404", map[string]any{"name": "x"}); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("Update(missing) = %v, want NotFound", err)
	}
	if _, err := users.Update(ctx, "user_2", map[string]any{"email": "john@techcorp.com"}); !apperr.Is(err, apperr.CodeConflict) {
		t.Errorf("Update(duplicate email) = %v, want Conflict", err)
	}
	if _, err := users.Update(ctx, "user_2", map[string]any{"email": "jane@techcorp.com"}); err != nil {
		t.Errorf("Update(own email) = %v", err)
	}
	if _, err := projects.Update(ctx, "proj_1", map[string]any{"slug": "new"}); !apperr.Is(err, apperr.CodeValidation) {
		t.Errorf("Update(immutable slug) = %v, want Validation", err)
	}
	if _, err := projects.Update(ctx, "proj_1", map[string]any{"ownerId": "user_404"}); !apperr.Is(err, apperr.CodeReferenceNotFound) {
		t.Errorf("Update(missing owner) = %v, want ReferenceNotFound", err)
	}
	_, err := projects.Update(ctx, "proj_1", map[string]any{
		"startDate": "2024-06-01", "endDate": "2024-05-01",
	})
	if !apperr.Is(err, apperr.CodeValidation) {
		t.Errorf("Update(end before start) = %v, want Validation", err)
	}
}

func TestDelete(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	seedBase(t, reg, ctx)
	features, _ := reg.Resource("feature")
	projects, _ := reg.Resource("project")

	err := projects.Delete(ctx, "proj_1")
	var conflict *apperr.ConflictError
	if !errors.As(err, &conflict) || !strings.Contains(conflict.Reason, "feature") {
		t.Fatalf("Delete(referenced) = %v, want Conflict naming feature", err)
	}

	if err := features.Delete(ctx, "feat_1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := features.Get(ctx, "feat_1"); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("Get after delete = %v, want NotFound", err)
	}
	if err := features.Delete(ctx, "feat_1"); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("Delete twice = %v, want NotFound", err)
	}
}

func TestDelete_PolymorphicDependents(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	seedBase(t, reg, ctx)
	mustCreate(t, reg, ctx, "comment", map[string]any{
		"content": "LGTM", "userId": "user_1", "entityType": "FEATURE", "entityId": "feat_1",
	})
	features, _ := reg.Resource("feature")
	if err := features.Delete(ctx, "feat_1"); !apperr.Is(err, apperr.CodeConflict) {
		t.Errorf("Delete(commented feature) = %v, want Conflict", err)
	}
}

func TestCreate_PolymorphicTarget(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	seedBase(t, reg, ctx)
	comments, _ := reg.Resource("comment")

	_, err := comments.Create(ctx, map[string]any{
		"content": "hi", "userId": "user_1", "entityType": "BUG", "entityId": "feat_1",
	})
	if !apperr.Is(err, apperr.CodeReferenceNotFound) {
		t.Errorf("Create(wrong target type) = %v, want ReferenceNotFound", err)
	}
	if _, err := comments.Create(ctx, map[string]any{
		"content": "hi", "userId": "user_1", "entityType": "FEATURE", "entityId": "feat_1",
	}); err != nil {
		t.Errorf("Create(valid target) = %v", err)
	}
}

func TestCustomFieldValues(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	seedBase(t, reg, ctx)
	mustCreate(t, reg, ctx, "customField", map[string]any{
		"id": "cf_points", "name": "Story Points", "type": "NUMBER", "entityType": "FEATURE",
		"projectId": "proj_1", "minValue": 1, "maxValue": 13,
	})
	mustCreate(t, reg, ctx, "customField", map[string]any{
		"id": "cf_env", "name": "Env", "type": "SELECT", "entityType": "FEATURE",
		"projectId": "proj_1", "options": []any{"web", "mobile"},
	})
	mustCreate(t, reg, ctx, "feature", map[string]any{"id": "feat_2", "title": "Search", "projectId": "proj_1"})
	values, _ := reg.Resource("customFieldValue")

	tests := []struct {
		name  string
		input map[string]any
		code  apperr.Code
	}{
		{"number in range", map[string]any{"customFieldId": "cf_points", "entityType": "FEATURE", "entityId": "feat_1", "value": 8}, ""},
		{"number above max", map[string]any{"customFieldId": "cf_points", "entityType": "FEATURE", "entityId": "feat_2", "value": 21}, apperr.CodeValidation},
		{"wrong type", map[string]any{"customFieldId": "cf_points", "entityType": "FEATURE", "entityId": "feat_2", "value": "eight"}, apperr.CodeValidation},
		{"valid option", map[string]any{"customFieldId": "cf_env", "entityType": "FEATURE", "entityId": "feat_1", "value": "web"}, ""},
		{"entity type mismatch", map[string]any{"customFieldId": "cf_env", "entityType": "PROJECT", "entityId": "proj_1", "value": "web"}, apperr.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := values.Create(ctx, tt.input)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Create = %v", err)
				}
				return
			}
			if !apperr.Is(err, tt.code) {
				t.Errorf("Create = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := values.Create(ctx, map[string]any{
		"customFieldId": "cf_env", "entityType": "FEATURE", "entityId": "feat_1", "value": "mobile",
	}); !apperr.Is(err, apperr.CodeConflict) {
		t.Errorf("second value for same target = %v, want Conflict", err)
	}

	fields, _ := reg.Resource("customField")
	if _, err := fields.Create(ctx, map[string]any{
		"name": "Bad", "type": "SELECT", "entityType": "BUG", "projectId": "proj_1",
	}); !apperr.Is(err, apperr.CodeValidation) {
		t.Errorf("select without options = %v, want Validation", err)
	}
}

func TestTransaction_RollsBack(t *testing.T) {
	reg, _, ctx := testRegistry(t)
	boom := errors.New("boom")
	err := reg.Transaction(ctx, func(tx *Registry) error {
		orgs, _ := tx.Resource("organization")
		if _, err := orgs.Create(ctx, map[string]any{"id": "org_tx", "name": "Tx", "slug": "tx"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction = %v, want boom", err)
	}
	orgs, _ := reg.Resource("organization")
	if _, err := orgs.Get(ctx, "org_tx"); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("Get after rollback = %v, want NotFound", err)
	}
}

func TestList_Order(t *testing.T) {
	reg, clock, ctx := testRegistry(t)
	for _, slug := range []string{"b", "a", "c"} {
		mustCreate(t, reg, ctx, "organization", map[string]any{"id": "org_" + slug, "name": slug, "slug": slug})
		clock.advance(time.Second)
	}
	rows, err := Repository[models.Organization](reg, schema.Organization).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []string
	for _, r := range rows {
		got = append(got, r.ID)
	}
	if strings.Join(got, ",") != "org_b,org_a,org_c" {
		t.Errorf("List order = %v", got)
	}
}

func TestRegistry_UnknownEntity(t *testing.T) {
	reg, _, _ := testRegistry(t)
	if _, err := reg.Resource("spaceship"); err == nil {
		t.Error("Resource(spaceship) succeeded")
	}
	if reg.Has("spaceship") || !reg.Has("bug") {
		t.Error("Has mismatch")
	}
}
