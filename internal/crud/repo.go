// Package crud implements the five uniform operations (list, get, create,
// update, delete) for every entity with one generic, schema-driven
// repository.
package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/apperr"
	"github.com/Phase-Platform/phase/internal/auth"
	"github.com/Phase-Platform/phase/internal/db"
	"github.com/Phase-Platform/phase/internal/models"
	"github.com/Phase-Platform/phase/internal/schema"
)

// Repo is the typed repository of one entity. T is the entity's gorm model.
type Repo[T any] struct {
	store  *Store
	entity *schema.Entity
}

// Entity returns the schema the repository validates against.
func (r *Repo[T]) Entity() *schema.Entity { return r.entity }

// List returns every row, oldest first.
func (r *Repo[T]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := r.store.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, r.storeErr("list", "", err)
	}
	return rows, nil
}

// Get returns the row with id or a NotFoundError.
func (r *Repo[T]) Get(ctx context.Context, id string) (*T, error) {
	return r.first(r.store.db.WithContext(ctx), id)
}

func (r *Repo[T]) first(q *gorm.DB, id string) (*T, error) {
	row := new(T)
	if err := q.Where("id = ?", id).First(row).Error; err != nil {
		return nil, r.storeErr("get", id, err)
	}
	return row, nil
}

// write runs fn and reads the row back in one transaction, so a failed
// read-back leaves nothing behind.
func (r *Repo[T]) write(ctx context.Context, id string, fn func(tx *gorm.DB) error) (*T, error) {
	var out *T
	err := r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(tx); err != nil {
			return err
		}
		row, err := r.first(tx, id)
		if err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create validates input, resolves its references and inserts a row with
// server-stamped createdAt and updatedAt. An id may be supplied; otherwise
// one is generated.
func (r *Repo[T]) Create(ctx context.Context, input map[string]any) (*T, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}
	vals, err := r.entity.ValidateCreate(input)
	if err != nil {
		return nil, err
	}

	id := vals.String(schema.FieldID)
	if id == "" {
		if id, err = r.generateUniqueID(ctx); err != nil {
			return nil, err
		}
		vals[schema.FieldID] = id
	} else if err := r.checkFreeID(ctx, id); err != nil {
		return nil, err
	}

	if err := r.checkUnique(ctx, vals, nil, ""); err != nil {
		return nil, err
	}
	if err := r.store.checker().CheckRefs(ctx, r.entity, vals); err != nil {
		return nil, r.storeErr("create", id, err)
	}
	if err := r.runHook(ctx, vals); err != nil {
		return nil, err
	}

	now := r.store.now().UTC()
	vals[schema.FieldCreatedAt] = now
	vals[schema.FieldUpdatedAt] = now

	row, err := decode[T](vals)
	if err != nil {
		return nil, fmt.Errorf("crud: %s: decode: %w", r.entity.Name, err)
	}
	return r.write(ctx, id, func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return r.storeErr("create", id, err)
		}
		return nil
	})
}

// Update applies a partial update. Only the supplied fields and updatedAt
// change.
func (r *Repo[T]) Update(ctx context.Context, id string, patch map[string]any) (*T, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}
	existing, err := r.loadColumns(ctx, id)
	if err != nil {
		return nil, err
	}
	vals, err := r.entity.ValidatePatch(patch)
	if err != nil {
		return nil, err
	}

	if err := r.checkUnique(ctx, vals, existing, id); err != nil {
		return nil, err
	}
	merged := fromColumns(r.entity, existing)
	for k, v := range vals {
		merged[k] = v
	}
	refs := make(schema.Values, len(vals)+2)
	for k, v := range vals {
		refs[k] = v
	}
	if p := r.entity.Poly; p != nil {
		if _, ok := vals[p.TypeField]; ok {
			refs[p.IDField] = merged[p.IDField]
		}
		if _, ok := vals[p.IDField]; ok {
			refs[p.TypeField] = merged[p.TypeField]
		}
	}
	if err := r.store.checker().CheckRefs(ctx, r.entity, refs); err != nil {
		return nil, r.storeErr("update", id, err)
	}
	if err := r.runHook(ctx, merged); err != nil {
		return nil, err
	}

	cols, err := columns(r.entity, vals)
	if err != nil {
		return nil, fmt.Errorf("crud: %s: encode: %w", r.entity.Name, err)
	}
	cols["updated_at"] = r.store.now().UTC()
	return r.write(ctx, id, func(tx *gorm.DB) error {
		if err := tx.Model(new(T)).Where("id = ?", id).Updates(cols).Error; err != nil {
			return r.storeErr("update", id, err)
		}
		return nil
	})
}

// Delete removes the row with id. Rows that are still referenced are not
// deleted; the ConflictError names the referencing entities.
func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	if _, err := auth.Require(ctx); err != nil {
		return err
	}
	if _, err := r.loadColumns(ctx, id); err != nil {
		return err
	}
	deps, err := r.store.checker().Dependents(ctx, r.entity, id)
	if err != nil {
		return r.storeErr("delete", id, err)
	}
	if len(deps) > 0 {
		parts := make([]string, 0, len(deps))
		for _, d := range deps {
			parts = append(parts, fmt.Sprintf("%d %s via %s", d.Count, d.Entity, d.Field))
		}
		return &apperr.ConflictError{
			Entity: r.entity.Name,
			Reason: fmt.Sprintf("%s is still referenced by %s", id, strings.Join(parts, ", ")),
		}
	}
	result := r.store.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return r.storeErr("delete", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Entity: r.entity.Name, ID: id}
	}
	return nil
}

// loadColumns reads the raw stored row keyed by column name.
func (r *Repo[T]) loadColumns(ctx context.Context, id string) (map[string]any, error) {
	row := map[string]any{}
	err := r.store.db.WithContext(ctx).Table(r.entity.Table).Where("id = ?", id).Take(&row).Error
	if err != nil {
		return nil, r.storeErr("get", id, err)
	}
	return row, nil
}

// checkUnique rejects values that collide with another row on any unique
// key the write touches. existing supplies untouched key parts on update.
func (r *Repo[T]) checkUnique(ctx context.Context, vals schema.Values, existing map[string]any, selfID string) error {
	for _, group := range r.entity.Unique {
		conds := make(map[string]any, len(group))
		touched := false
		for _, name := range group {
			f, _ := r.entity.Field(name)
			col := f.ColumnName()
			if v, ok := vals[name]; ok {
				touched = true
				conds[col] = v
			} else {
				conds[col] = existing[col]
			}
		}
		if !touched {
			continue
		}
		q := r.store.db.WithContext(ctx).Table(r.entity.Table).Where(conds)
		if selfID != "" {
			q = q.Where("id <> ?", selfID)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return r.storeErr("unique check", selfID, err)
		}
		if n > 0 {
			return &apperr.ConflictError{Entity: r.entity.Name, Fields: group, Reason: "value already taken"}
		}
	}
	return nil
}

func (r *Repo[T]) checkFreeID(ctx context.Context, id string) error {
	var n int64
	if err := r.store.db.WithContext(ctx).Table(r.entity.Table).Where("id = ?", id).Count(&n).Error; err != nil {
		return r.storeErr("id check", id, err)
	}
	if n > 0 {
		return &apperr.ConflictError{Entity: r.entity.Name, Fields: []string{schema.FieldID}, Reason: id + " already exists"}
	}
	return nil
}

// GenerateID returns a new id of the form <prefix>_<12 hex>.
func GenerateID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// generateUniqueID generates an ID and retries once on collision.
func (r *Repo[T]) generateUniqueID(ctx context.Context) (string, error) {
	for range 2 {
		id := GenerateID(r.entity.Prefix)
		var n int64
		if err := r.store.db.WithContext(ctx).Table(r.entity.Table).Where("id = ?", id).Count(&n).Error; err != nil {
			return "", r.storeErr("id check", id, err)
		}
		if n == 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("crud: %s: failed to generate unique ID after retries", r.entity.Name)
}

func (r *Repo[T]) runHook(ctx context.Context, merged schema.Values) error {
	hook, ok := r.store.hooks[r.entity.Name]
	if !ok {
		return nil
	}
	if err := hook(ctx, r.store.db.WithContext(ctx), merged); err != nil {
		return r.storeErr("validate", merged.String(schema.FieldID), err)
	}
	return nil
}

// storeErr maps storage failures onto the typed taxonomy. Errors that are
// already typed pass through.
func (r *Repo[T]) storeErr(op, id string, err error) error {
	var coded apperr.Coded
	switch {
	case errors.As(err, &coded):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &apperr.NotFoundError{Entity: r.entity.Name, ID: id}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &apperr.ConflictError{Entity: r.entity.Name, Reason: "duplicate key"}
	case db.Unavailable(err):
		return &apperr.StoreUnavailableError{Op: r.entity.Name + "." + op, Err: err}
	}
	return fmt.Errorf("crud: %s %s: %w", r.entity.Name, op, err)
}

// decode builds a model from normalized values through its json tags.
func decode[T any](vals schema.Values) (*T, error) {
	data, err := json.Marshal(vals)
	if err != nil {
		return nil, err
	}
	row := new(T)
	if err := json.Unmarshal(data, row); err != nil {
		return nil, err
	}
	return row, nil
}

// columns converts normalized values to an update map keyed by column.
func columns(e *schema.Entity, vals schema.Values) (map[string]any, error) {
	out := make(map[string]any, len(vals)+1)
	for name, v := range vals {
		f, ok := e.Field(name)
		if !ok {
			continue
		}
		switch x := v.(type) {
		case json.RawMessage:
			out[f.ColumnName()] = models.JSON(x)
		case []string:
			data, err := json.Marshal(x)
			if err != nil {
				return nil, err
			}
			out[f.ColumnName()] = models.JSON(data)
		default:
			out[f.ColumnName()] = v
		}
	}
	return out, nil
}

// fromColumns maps a raw stored row back to wire names. JSON columns become
// json.RawMessage.
func fromColumns(e *schema.Entity, cols map[string]any) schema.Values {
	out := make(schema.Values, len(e.Fields)+1)
	if id, ok := cols["id"]; ok {
		out[schema.FieldID] = asString(id)
	}
	for _, f := range e.Fields {
		v, ok := cols[f.ColumnName()]
		if !ok || v == nil {
			out[f.Name] = nil
			continue
		}
		switch f.Kind {
		case schema.KindJSON, schema.KindStringList:
			out[f.Name] = json.RawMessage(asString(v))
		case schema.KindString, schema.KindText, schema.KindEnum, schema.KindRef:
			out[f.Name] = asString(v)
		default:
			out[f.Name] = v
		}
	}
	return out
}

func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
