// Package integrity derives the reference graph from the entity schema and
// enforces referential rules: creation order, reference resolution,
// dependents on delete, and dangling-reference scans.
package integrity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Phase-Platform/phase/internal/schema"
)

// Edge is a reference from entity From to entity To through Field.
type Edge struct {
	From     string
	To       string
	Field    string
	Required bool
}

// Graph is the entity-level reference graph.
type Graph struct {
	names    []string
	entities map[string]*schema.Entity
	edges    []Edge
}

// NewGraph builds the reference graph for the given entities.
func NewGraph(entities []*schema.Entity) *Graph {
	g := &Graph{entities: make(map[string]*schema.Entity, len(entities))}
	for _, e := range entities {
		g.names = append(g.names, e.Name)
		g.entities[e.Name] = e
		for _, f := range e.Refs() {
			g.edges = append(g.edges, Edge{From: e.Name, To: f.Ref, Field: f.Name, Required: f.Required})
		}
	}
	return g
}

// Default returns the graph of every registered entity.
func Default() *Graph {
	return NewGraph(schema.All())
}

// Parents returns the edges leaving name.
func (g *Graph) Parents(name string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.From == name {
			out = append(out, e)
		}
	}
	return out
}

// Children returns the edges pointing at name.
func (g *Graph) Children(name string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.To == name {
			out = append(out, e)
		}
	}
	return out
}

// CycleError reports a reference cycle that no ordering can satisfy.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "integrity: cycle through required references: " + strings.Join(e.Path, " -> ")
}

// Order returns every entity with parents before children. Nullable
// references are honored when possible; when they form a cycle only required
// references are. Self-references never constrain the order.
func (g *Graph) Order() ([]string, error) {
	build := func(requiredOnly bool) map[string][]string {
		deps := make(map[string][]string)
		for _, e := range g.edges {
			if e.From == e.To || (requiredOnly && !e.Required) {
				continue
			}
			if _, ok := g.entities[e.To]; !ok {
				continue
			}
			deps[e.From] = append(deps[e.From], e.To)
		}
		return deps
	}

	if order, cycle := toposort(g.names, build(false)); cycle == nil {
		return order, nil
	}
	order, cycle := toposort(g.names, build(true))
	if cycle != nil {
		return nil, &CycleError{Path: cycle}
	}
	return order, nil
}

// OrderSets orders named sets of entities so that each set follows every
// other set holding an entity it references. References within one set do
// not constrain the order. Ties keep the order of names.
func (g *Graph) OrderSets(names []string, members map[string][]string) ([]string, error) {
	holders := make(map[string][]string)
	for _, n := range names {
		for _, ent := range members[n] {
			if _, ok := g.entities[ent]; !ok {
				return nil, fmt.Errorf("integrity: set %s: unknown entity %q", n, ent)
			}
			holders[ent] = append(holders[ent], n)
		}
	}

	build := func(requiredOnly bool) map[string][]string {
		deps := make(map[string][]string)
		for _, n := range names {
			for _, ent := range members[n] {
				for _, e := range g.Parents(ent) {
					if e.From == e.To || (requiredOnly && !e.Required) {
						continue
					}
					for _, h := range holders[e.To] {
						if h != n {
							deps[n] = append(deps[n], h)
						}
					}
				}
			}
		}
		return deps
	}

	if order, cycle := toposort(names, build(false)); cycle == nil {
		return order, nil
	}
	order, cycle := toposort(names, build(true))
	if cycle != nil {
		return nil, &CycleError{Path: cycle}
	}
	return order, nil
}

// Check validates the graph: no required self-references and no cycle made of
// required references.
func (g *Graph) Check() error {
	var errs []string
	for _, e := range g.edges {
		if e.From == e.To && e.Required {
			errs = append(errs, fmt.Sprintf("%s.%s is a required self-reference", e.From, e.Field))
		}
		if _, ok := g.entities[e.To]; !ok {
			errs = append(errs, fmt.Sprintf("%s.%s references unknown entity %s", e.From, e.Field, e.To))
		}
	}
	if _, err := g.Order(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("integrity: %s", strings.Join(errs, "; "))
	}
	return nil
}

// toposort orders nodes so that every node follows its deps. Ties resolve to
// the input order. When no order exists it returns one cycle instead.
func toposort(nodes []string, deps map[string][]string) ([]string, []string) {
	pos := make(map[string]int, len(nodes))
	for i, n := range nodes {
		pos[n] = i
	}

	pending := make(map[string]int, len(nodes))
	dependents := make(map[string][]string)
	for _, n := range nodes {
		for _, d := range deps[n] {
			if _, ok := pos[d]; !ok {
				continue
			}
			pending[n]++
			dependents[d] = append(dependents[d], n)
		}
	}

	var ready []string
	for _, n := range nodes {
		if pending[n] == 0 {
			ready = append(ready, n)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return pos[ready[i]] < pos[ready[j]] })
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		for _, m := range dependents[n] {
			pending[m]--
			if pending[m] == 0 {
				ready = append(ready, m)
			}
		}
	}

	if len(order) == len(nodes) {
		return order, nil
	}

	done := make(map[string]bool, len(order))
	for _, n := range order {
		done[n] = true
	}
	for _, n := range nodes {
		if done[n] {
			continue
		}
		if path := findCycle(n, deps, done); path != nil {
			return nil, path
		}
	}
	return nil, []string{"unknown"}
}

// findCycle walks deps depth-first from start, skipping nodes already
// ordered, and returns the first cycle it closes.
func findCycle(start string, deps map[string][]string, done map[string]bool) []string {
	var stack []string
	onStack := make(map[string]bool)
	visited := make(map[string]bool)

	var walk func(n string) []string
	walk = func(n string) []string {
		if onStack[n] {
			for i, s := range stack {
				if s == n {
					cycle := append([]string{}, stack[i:]...)
					return append(cycle, n)
				}
			}
		}
		if visited[n] || done[n] {
			return nil
		}
		visited[n] = true
		onStack[n] = true
		stack = append(stack, n)
		for _, d := range deps[n] {
			if c := walk(d); c != nil {
				return c
			}
		}
		stack = stack[:len(stack)-1]
		onStack[n] = false
		return nil
	}
	return walk(start)
}
