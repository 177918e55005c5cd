// Package schema declares every entity type: its fields, field kinds,
// required and immutable flags, defaults, enum domains, references and
// unique keys. The CRUD layer and the seed generator validate against it.
package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind is the value kind of a field.
type Kind int

const (
	KindString Kind = iota
	KindText
	KindInt
	KindFloat
	KindBool
	KindTime
	KindEnum
	KindRef
	KindJSON
	KindStringList
)

var kindNames = map[Kind]string{
	KindString:     "string",
	KindText:       "text",
	KindInt:        "int",
	KindFloat:      "float",
	KindBool:       "bool",
	KindTime:       "time",
	KindEnum:       "enum",
	KindRef:        "ref",
	KindJSON:       "json",
	KindStringList: "string[]",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field describes one attribute of an entity. Name is the wire name.
type Field struct {
	Name      string
	Column    string
	Kind      Kind
	Required  bool
	Immutable bool
	Enum      *Enum
	Ref       string
	Format    string
	Default   any
}

// ColumnName returns the storage column backing the field.
func (f Field) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return snake(f.Name)
}

// Nullable reports whether the field may be stored as null.
func (f Field) Nullable() bool {
	return !f.Required && f.Default == nil
}

// Poly declares a polymorphic (entityType, entityId) target pair.
type Poly struct {
	TypeField string
	IDField   string
	Required  bool
}

// Entity is the declarative definition of one record type.
type Entity struct {
	Name   string
	Table  string
	Prefix string
	Fields []Field
	Unique [][]string
	Poly   *Poly
}

// Field looks up a field by wire name.
func (e *Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Refs returns the reference fields in declaration order.
func (e *Entity) Refs() []Field {
	var out []Field
	for _, f := range e.Fields {
		if f.Kind == KindRef {
			out = append(out, f)
		}
	}
	return out
}

// Reserved wire names that callers may not set through create or update,
// except id on create.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

var registry []*Entity

func register(e *Entity) *Entity {
	registry = append(registry, e)
	return e
}

// All returns every entity in declaration order.
func All() []*Entity {
	out := make([]*Entity, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds an entity by name.
func Lookup(name string) (*Entity, bool) {
	for _, e := range registry {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Names returns every entity name in declaration order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.Name)
	}
	return out
}

// Check verifies the registry is self-consistent: references name known
// entities, self-references are nullable, unique keys and polymorphic pairs
// name declared fields, and every default is itself valid.
func Check() error {
	var errs []string
	seen := make(map[string]bool)
	for _, e := range registry {
		if seen[e.Name] {
			errs = append(errs, fmt.Sprintf("%s: declared twice", e.Name))
		}
		seen[e.Name] = true
	}
	for _, e := range registry {
		for _, f := range e.Fields {
			switch f.Kind {
			case KindRef:
				if _, ok := Lookup(f.Ref); !ok {
					errs = append(errs, fmt.Sprintf("%s.%s: unknown reference target %q", e.Name, f.Name, f.Ref))
				}
				if f.Ref == e.Name && f.Required {
					errs = append(errs, fmt.Sprintf("%s.%s: self-reference must be nullable", e.Name, f.Name))
				}
			case KindEnum:
				if f.Enum == nil {
					errs = append(errs, fmt.Sprintf("%s.%s: enum field without domain", e.Name, f.Name))
				}
			}
			if f.Default != nil {
				if _, v := normalize(f, f.Default); v != nil {
					errs = append(errs, fmt.Sprintf("%s.%s: invalid default: %s", e.Name, f.Name, v.Message))
				}
			}
		}
		for _, group := range e.Unique {
			for _, name := range group {
				if _, ok := e.Field(name); !ok {
					errs = append(errs, fmt.Sprintf("%s: unique key names unknown field %q", e.Name, name))
				}
			}
		}
		if e.Poly != nil {
			tf, ok := e.Field(e.Poly.TypeField)
			if !ok || tf.Enum != EntityType {
				errs = append(errs, fmt.Sprintf("%s: polymorphic type field %q must be an EntityType enum", e.Name, e.Poly.TypeField))
			}
			if _, ok := e.Field(e.Poly.IDField); !ok {
				errs = append(errs, fmt.Sprintf("%s: polymorphic id field %q not declared", e.Name, e.Poly.IDField))
			}
		}
	}
	for _, target := range polyTargets {
		if _, ok := Lookup(target); !ok {
			errs = append(errs, fmt.Sprintf("EntityType maps to unknown entity %q", target))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("schema: %s", strings.Join(errs, "; "))
	}
	return nil
}

// snake converts a camelCase wire name into a snake_case column name,
// matching gorm's default naming for the corresponding Go field.
func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
