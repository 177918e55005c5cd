package integrity

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/apperr"
	"github.com/Phase-Platform/phase/internal/schema"
)

// Checker resolves references against storage.
type Checker struct {
	db *gorm.DB
}

// NewChecker returns a Checker that queries db.
func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

// Exists reports whether a row with id exists in entity's table.
func (c *Checker) Exists(ctx context.Context, entity, id string) (bool, error) {
	e, ok := schema.Lookup(entity)
	if !ok {
		return false, fmt.Errorf("integrity: unknown entity %q", entity)
	}
	var n int64
	if err := c.db.WithContext(ctx).Table(e.Table).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("integrity: lookup %s %s: %w", entity, id, err)
	}
	return n > 0, nil
}

// CheckRefs verifies that every non-empty reference in vals resolves,
// including the polymorphic target when the entity declares one. The first
// unresolved reference is reported as *apperr.ReferenceNotFoundError.
func (c *Checker) CheckRefs(ctx context.Context, e *schema.Entity, vals schema.Values) error {
	for _, f := range e.Refs() {
		id, _ := vals[f.Name].(string)
		if id == "" {
			continue
		}
		ok, err := c.Exists(ctx, f.Ref, id)
		if err != nil {
			return err
		}
		if !ok {
			return &apperr.ReferenceNotFoundError{Entity: e.Name, Field: f.Name, Target: f.Ref, ID: id}
		}
	}

	if e.Poly == nil {
		return nil
	}
	typ, _ := vals[e.Poly.TypeField].(string)
	id, _ := vals[e.Poly.IDField].(string)
	if typ == "" || id == "" {
		return nil
	}
	target, ok := schema.TargetOf(typ)
	if !ok {
		return &apperr.ValidationError{Entity: e.Name, Violations: []apperr.Violation{{
			Field: e.Poly.TypeField, Constraint: "enum", Message: "is not a known entity type",
		}}}
	}
	found, err := c.Exists(ctx, target, id)
	if err != nil {
		return err
	}
	if !found {
		return &apperr.ReferenceNotFoundError{Entity: e.Name, Field: e.Poly.IDField, Target: target, ID: id}
	}
	return nil
}

// Dependent counts rows of Entity that reference a target through Field.
type Dependent struct {
	Entity string `json:"entity"`
	Field  string `json:"field"`
	Count  int64  `json:"count"`
}

// Dependents returns every entity/field holding a reference to id, including
// polymorphic pairs. Self-references of the row itself are ignored.
func (c *Checker) Dependents(ctx context.Context, e *schema.Entity, id string) ([]Dependent, error) {
	db := c.db.WithContext(ctx)
	var out []Dependent

	for _, child := range schema.All() {
		for _, f := range child.Refs() {
			if f.Ref != e.Name {
				continue
			}
			q := db.Table(child.Table).Where(f.ColumnName()+" = ?", id)
			if child.Name == e.Name {
				q = q.Where("id <> ?", id)
			}
			var n int64
			if err := q.Count(&n).Error; err != nil {
				return nil, fmt.Errorf("integrity: count %s.%s: %w", child.Name, f.Name, err)
			}
			if n > 0 {
				out = append(out, Dependent{Entity: child.Name, Field: f.Name, Count: n})
			}
		}
	}

	typ, ok := schema.TypeOf(e.Name)
	if !ok {
		return out, nil
	}
	for _, child := range schema.All() {
		if child.Poly == nil {
			continue
		}
		tf, _ := child.Field(child.Poly.TypeField)
		idf, _ := child.Field(child.Poly.IDField)
		var n int64
		err := db.Table(child.Table).
			Where(tf.ColumnName()+" = ? AND "+idf.ColumnName()+" = ?", typ, id).
			Count(&n).Error
		if err != nil {
			return nil, fmt.Errorf("integrity: count %s targets: %w", child.Name, err)
		}
		if n > 0 {
			out = append(out, Dependent{Entity: child.Name, Field: child.Poly.IDField, Count: n})
		}
	}
	return out, nil
}

// Dangling is a stored reference whose target row does not exist.
type Dangling struct {
	Entity   string `json:"entity"`
	ID       string `json:"id"`
	Field    string `json:"field"`
	Target   string `json:"target"`
	TargetID string `json:"targetId"`
}

func (d Dangling) String() string {
	return fmt.Sprintf("%s %s: %s -> %s %s", d.Entity, d.ID, d.Field, d.Target, d.TargetID)
}

type danglingRow struct {
	ID  string
	Ref string
}

// Verify scans every table for references that do not resolve.
func (c *Checker) Verify(ctx context.Context) ([]Dangling, error) {
	db := c.db.WithContext(ctx)
	var out []Dangling

	for _, e := range schema.All() {
		for _, f := range e.Refs() {
			target, _ := schema.Lookup(f.Ref)
			col := f.ColumnName()
			var rows []danglingRow
			err := db.Table(e.Table).
				Select("id, "+col+" AS ref").
				Where(col+" IS NOT NULL AND "+col+" <> ''").
				Where(col+" NOT IN (?)", db.Table(target.Table).Select("id")).
				Order("id").
				Scan(&rows).Error
			if err != nil {
				return nil, fmt.Errorf("integrity: verify %s.%s: %w", e.Name, f.Name, err)
			}
			for _, r := range rows {
				out = append(out, Dangling{Entity: e.Name, ID: r.ID, Field: f.Name, Target: f.Ref, TargetID: r.Ref})
			}
		}

		if e.Poly == nil {
			continue
		}
		tf, _ := e.Field(e.Poly.TypeField)
		idf, _ := e.Field(e.Poly.IDField)
		for _, typ := range schema.EntityType.Values {
			name, _ := schema.TargetOf(typ)
			target, _ := schema.Lookup(name)
			var rows []danglingRow
			err := db.Table(e.Table).
				Select("id, "+idf.ColumnName()+" AS ref").
				Where(tf.ColumnName()+" = ?", typ).
				Where(idf.ColumnName()+" NOT IN (?)", db.Table(target.Table).Select("id")).
				Order("id").
				Scan(&rows).Error
			if err != nil {
				return nil, fmt.Errorf("integrity: verify %s targets: %w", e.Name, err)
			}
			for _, r := range rows {
				out = append(out, Dangling{Entity: e.Name, ID: r.ID, Field: e.Poly.IDField, Target: name, TargetID: r.Ref})
			}
		}
	}
	return out, nil
}
