// Package seed populates a store with the interlinked sample data set.
//
// Fixtures are declared as named groups of records. Run orders the groups by
// the entity reference graph, orders the records of each group with
// integrity.Plan, and writes every row through the crud registry so that
// fixtures are validated exactly like client input. The whole run is one
// transaction: the first failure rolls everything back.
package seed

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/apperr"
	"github.com/Phase-Platform/phase/internal/auth"
	"github.com/Phase-Platform/phase/internal/crud"
	"github.com/Phase-Platform/phase/internal/db"
	"github.com/Phase-Platform/phase/internal/integrity"
	"github.com/Phase-Platform/phase/internal/schema"
)

// Record is one fixture row. Children are created right after it, in order.
type Record struct {
	Entity   string
	Values   map[string]any
	Children []Record
}

// ID returns the record's fixture id.
func (r Record) ID() string {
	id, _ := r.Values[schema.FieldID].(string)
	return id
}

// Group is a named batch of records inserted as a unit.
type Group struct {
	Name    string
	Records []Record
}

// Entities returns every entity the group writes, children included.
func (g Group) Entities() []string {
	seen := make(map[string]bool)
	var out []string
	var walk func([]Record)
	walk = func(rs []Record) {
		for _, r := range rs {
			if !seen[r.Entity] {
				seen[r.Entity] = true
				out = append(out, r.Entity)
			}
			walk(r.Children)
		}
	}
	walk(g.Records)
	return out
}

// Options configures Run.
type Options struct {
	// Append seeds without dropping existing tables first. It fails with a
	// ConflictError when the store already holds rows.
	Append bool
	// Now anchors every relative fixture time. Zero means time.Now().
	Now time.Time
	// Groups replaces the built-in fixtures.
	Groups []Group
	Logger *zerolog.Logger
}

// GroupResult is the number of rows written for one group.
type GroupResult struct {
	Name string
	Rows int
}

// Result summarizes a successful run.
type Result struct {
	Groups   []GroupResult
	Rows     int
	Duration time.Duration
}

// Run seeds gdb. The store is reset first unless opts.Append is set.
func Run(ctx context.Context, gdb *gorm.DB, opts Options) (*Result, error) {
	start := time.Now()
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	groups := opts.Groups
	if groups == nil {
		groups = Fixtures(now)
	}
	ordered, err := Order(groups)
	if err != nil {
		return nil, err
	}

	if opts.Append {
		if err := requireEmpty(ctx, gdb); err != nil {
			return nil, err
		}
	} else {
		log.Info().Msg("resetting store")
		if err := db.Reset(gdb.WithContext(ctx)); err != nil {
			return nil, fmt.Errorf("seed: reset: %w", err)
		}
	}

	reg := crud.NewRegistry(gdb, crud.WithClock(func() time.Time { return now }))
	ctx = auth.WithActor(ctx, auth.System)
	res := &Result{}

	err = reg.Transaction(ctx, func(tx *crud.Registry) error {
		for _, g := range ordered {
			n, err := insertGroup(ctx, tx, g)
			if err != nil {
				return fmt.Errorf("seed: group %s: %w", g.Name, err)
			}
			log.Info().Str("group", g.Name).Int("rows", n).Msg("seeded group")
			res.Groups = append(res.Groups, GroupResult{Name: g.Name, Rows: n})
			res.Rows += n
		}

		dangling, err := integrity.NewChecker(tx.DB()).Verify(ctx)
		if err != nil {
			return fmt.Errorf("seed: verify: %w", err)
		}
		if len(dangling) > 0 {
			lines := make([]string, len(dangling))
			for i, d := range dangling {
				lines[i] = d.String()
			}
			return fmt.Errorf("seed: %d dangling references: %s", len(dangling), strings.Join(lines, "; "))
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("seed failed, rolled back")
		return nil, err
	}

	res.Duration = time.Since(start)
	log.Info().Int("groups", len(res.Groups)).Int("rows", res.Rows).Dur("took", res.Duration).Msg("seed complete")
	return res, nil
}

// Order sorts groups so that every group follows the groups holding the
// entities it references. Declaration order breaks ties.
func Order(groups []Group) ([]Group, error) {
	byName := make(map[string]Group, len(groups))
	names := make([]string, 0, len(groups))
	members := make(map[string][]string, len(groups))
	for _, g := range groups {
		if _, dup := byName[g.Name]; dup {
			return nil, fmt.Errorf("seed: duplicate group %q", g.Name)
		}
		byName[g.Name] = g
		names = append(names, g.Name)
		members[g.Name] = g.Entities()
	}
	order, err := integrity.Default().OrderSets(names, members)
	if err != nil {
		return nil, fmt.Errorf("seed: order groups: %w", err)
	}
	out := make([]Group, len(order))
	for i, n := range order {
		out[i] = byName[n]
	}
	return out, nil
}

func requireEmpty(ctx context.Context, gdb *gorm.DB) error {
	counts, err := db.Counts(ctx, gdb)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	for _, c := range counts {
		if c.Rows > 0 {
			return &apperr.ConflictError{
				Entity: "seed",
				Reason: fmt.Sprintf("store is not empty (%s has %d rows); seed with reset instead", c.Table, c.Rows),
			}
		}
	}
	return nil
}

// insertGroup writes one group in planned order, then fills in the nullable
// references the plan deferred.
func insertGroup(ctx context.Context, reg *crud.Registry, g Group) (int, error) {
	graph := integrity.Default()
	batch := make([]integrity.Record, len(g.Records))
	for i, r := range g.Records {
		refs, err := refsOf(r)
		if err != nil {
			return 0, err
		}
		batch[i] = integrity.Record{Entity: r.Entity, ID: r.ID(), Refs: refs}
	}
	plan, err := graph.Plan(batch)
	if err != nil {
		return 0, err
	}

	deferred := make(map[int][]string)
	for _, d := range plan.Deferred {
		deferred[d.Index] = append(deferred[d.Index], d.Field)
	}

	rows := 0
	for _, i := range plan.Order {
		r := g.Records[i]
		if fields := deferred[i]; len(fields) > 0 {
			r.Values = maps.Clone(r.Values)
			for _, f := range fields {
				delete(r.Values, f)
			}
		}
		n, err := create(ctx, reg, r)
		rows += n
		if err != nil {
			return rows, err
		}
	}

	for _, d := range plan.Deferred {
		r := g.Records[d.Index]
		res, err := reg.Resource(r.Entity)
		if err != nil {
			return rows, err
		}
		if _, err := res.Update(ctx, r.ID(), map[string]any{d.Field: d.ID}); err != nil {
			return rows, fmt.Errorf("set deferred %s.%s on %s: %w", r.Entity, d.Field, r.ID(), err)
		}
	}
	return rows, nil
}

// create writes r and then its children, depth first.
func create(ctx context.Context, reg *crud.Registry, r Record) (int, error) {
	res, err := reg.Resource(r.Entity)
	if err != nil {
		return 0, err
	}
	if _, err := res.Create(ctx, r.Values); err != nil {
		return 0, fmt.Errorf("create %s %s: %w", r.Entity, r.ID(), err)
	}
	n := 1
	for _, c := range r.Children {
		m, err := create(ctx, reg, c)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func refsOf(r Record) (map[string]string, error) {
	e, ok := schema.Lookup(r.Entity)
	if !ok {
		return nil, fmt.Errorf("seed: unknown entity %q", r.Entity)
	}
	refs := make(map[string]string)
	for _, f := range e.Refs() {
		if id, ok := r.Values[f.Name].(string); ok && id != "" {
			refs[f.Name] = id
		}
	}
	return refs, nil
}
