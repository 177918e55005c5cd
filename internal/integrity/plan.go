package integrity

import (
	"fmt"
	"sort"
)

// Record is one proposed row in a batch. Refs maps reference field names to
// the ids they point at.
type Record struct {
	Entity string
	ID     string
	Refs   map[string]string
}

func (r Record) key() string {
	return r.Entity + "/" + r.ID
}

// Deferred is a nullable reference that must be written after both rows
// exist: insert the row with Field null, then set it to ID.
type Deferred struct {
	Index int
	Field string
	ID    string
}

// Plan is a creation order for a batch.
type Plan struct {
	Order    []int
	Deferred []Deferred
}

type recordEdge struct {
	from, to int
	field    string
	required bool
}

// Plan orders a batch so that every record follows the in-batch records it
// references. References to rows outside the batch do not constrain the
// order. A cycle of required references fails with CycleError; a cycle that
// passes through a nullable reference is broken by deferring that reference.
func (g *Graph) Plan(batch []Record) (*Plan, error) {
	index := make(map[string]int, len(batch))
	nodes := make([]string, len(batch))
	for i, r := range batch {
		if _, ok := g.entities[r.Entity]; !ok {
			return nil, fmt.Errorf("integrity: plan: unknown entity %q", r.Entity)
		}
		if r.ID == "" {
			return nil, fmt.Errorf("integrity: plan: %s record %d has no id", r.Entity, i)
		}
		if _, dup := index[r.key()]; dup {
			return nil, fmt.Errorf("integrity: plan: duplicate record %s", r.key())
		}
		index[r.key()] = i
		nodes[i] = r.key()
	}

	var edges []recordEdge
	for i, r := range batch {
		e := g.entities[r.Entity]
		fields := make([]string, 0, len(r.Refs))
		for f := range r.Refs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, name := range fields {
			f, ok := e.Field(name)
			if !ok || f.Ref == "" {
				return nil, fmt.Errorf("integrity: plan: %s.%s is not a reference", r.Entity, name)
			}
			id := r.Refs[name]
			if id == "" {
				continue
			}
			j, ok := index[f.Ref+"/"+id]
			if !ok {
				continue
			}
			edges = append(edges, recordEdge{from: i, to: j, field: name, required: f.Required})
		}
	}

	build := func(requiredOnly bool) map[string][]string {
		deps := make(map[string][]string)
		for _, e := range edges {
			if requiredOnly && !e.required {
				continue
			}
			deps[nodes[e.from]] = append(deps[nodes[e.from]], nodes[e.to])
		}
		return deps
	}

	toIndexes := func(keys []string) []int {
		out := make([]int, len(keys))
		for i, k := range keys {
			out[i] = index[k]
		}
		return out
	}

	if order, cycle := toposort(nodes, build(false)); cycle == nil {
		return &Plan{Order: toIndexes(order)}, nil
	}

	order, cycle := toposort(nodes, build(true))
	if cycle != nil {
		return nil, &CycleError{Path: cycle}
	}
	plan := &Plan{Order: toIndexes(order)}
	at := make(map[int]int, len(plan.Order))
	for pos, i := range plan.Order {
		at[i] = pos
	}
	for _, e := range edges {
		if !e.required && at[e.to] >= at[e.from] {
			plan.Deferred = append(plan.Deferred, Deferred{Index: e.from, Field: e.field, ID: batch[e.to].ID})
		}
	}
	return plan, nil
}
