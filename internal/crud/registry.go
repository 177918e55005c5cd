package crud

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/integrity"
	"github.com/Phase-Platform/phase/internal/models"
	"github.com/Phase-Platform/phase/internal/schema"
)

// Store is the state every repository of one Registry shares.
type Store struct {
	db    *gorm.DB
	now   func() time.Time
	hooks map[string]Hook
}

func (s *Store) checker() *integrity.Checker { return integrity.NewChecker(s.db) }

// Option configures a Registry.
type Option func(*Store)

// WithClock sets the clock used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Resource is the untyped view of a repository, used where the entity is
// only known by name.
type Resource interface {
	Entity() *schema.Entity
	List(ctx context.Context) (any, error)
	Get(ctx context.Context, id string) (any, error)
	Create(ctx context.Context, input map[string]any) (any, error)
	Update(ctx context.Context, id string, patch map[string]any) (any, error)
	Delete(ctx context.Context, id string) error
}

type resource[T any] struct{ repo *Repo[T] }

func (r resource[T]) Entity() *schema.Entity { return r.repo.entity }

func (r resource[T]) List(ctx context.Context) (any, error) { return r.repo.List(ctx) }

func (r resource[T]) Get(ctx context.Context, id string) (any, error) { return r.repo.Get(ctx, id) }

func (r resource[T]) Create(ctx context.Context, input map[string]any) (any, error) {
	return r.repo.Create(ctx, input)
}

func (r resource[T]) Update(ctx context.Context, id string, patch map[string]any) (any, error) {
	return r.repo.Update(ctx, id, patch)
}

func (r resource[T]) Delete(ctx context.Context, id string) error { return r.repo.Delete(ctx, id) }

// Registry exposes a repository for every entity of the schema.
type Registry struct {
	store  *Store
	makers map[string]func(*Store) Resource
}

// NewRegistry builds a registry over gdb.
func NewRegistry(gdb *gorm.DB, opts ...Option) *Registry {
	s := &Store{db: gdb, now: time.Now, hooks: defaultHooks()}
	for _, opt := range opts {
		opt(s)
	}
	r := &Registry{store: s, makers: make(map[string]func(*Store) Resource)}

	bind[models.Organization](r, schema.Organization)
	bind[models.User](r, schema.User)
	bind[models.Session](r, schema.Session)
	bind[models.Team](r, schema.Team)
	bind[models.TeamMember](r, schema.TeamMember)
	bind[models.Project](r, schema.Project)
	bind[models.ProjectMember](r, schema.ProjectMember)
	bind[models.Phase](r, schema.Phase)
	bind[models.Sprint](r, schema.Sprint)
	bind[models.Feature](r, schema.Feature)
	bind[models.Task](r, schema.Task)
	bind[models.TimeEntry](r, schema.TimeEntry)
	bind[models.Bug](r, schema.Bug)
	bind[models.TestSuite](r, schema.TestSuite)
	bind[models.TestCase](r, schema.TestCase)
	bind[models.TestExecution](r, schema.TestExecution)
	bind[models.Document](r, schema.Document)
	bind[models.Comment](r, schema.Comment)
	bind[models.Attachment](r, schema.Attachment)
	bind[models.Notification](r, schema.Notification)
	bind[models.Release](r, schema.Release)
	bind[models.Environment](r, schema.Environment)
	bind[models.Deployment](r, schema.Deployment)
	bind[models.Metric](r, schema.Metric)
	bind[models.Integration](r, schema.Integration)
	bind[models.IntegrationLog](r, schema.IntegrationLog)
	bind[models.Webhook](r, schema.Webhook)
	bind[models.CustomField](r, schema.CustomField)
	bind[models.CustomFieldValue](r, schema.CustomFieldValue)
	bind[models.AutomationRule](r, schema.AutomationRule)
	bind[models.ActivityLog](r, schema.ActivityLog)
	bind[models.WorkflowTemplate](r, schema.WorkflowTemplate)
	return r
}

func bind[T any](r *Registry, e *schema.Entity) {
	r.makers[e.Name] = func(s *Store) Resource {
		return resource[T]{repo: &Repo[T]{store: s, entity: e}}
	}
}

// Resource returns the repository of the named entity.
func (r *Registry) Resource(name string) (Resource, error) {
	mk, ok := r.makers[name]
	if !ok {
		return nil, fmt.Errorf("crud: unknown entity %q", name)
	}
	return mk(r.store), nil
}

// Has reports whether name is a registered entity.
func (r *Registry) Has(name string) bool {
	_, ok := r.makers[name]
	return ok
}

// DB returns the handle the registry writes through.
func (r *Registry) DB() *gorm.DB { return r.store.db }

// WithDB returns a registry sharing this one's configuration but writing
// through gdb.
func (r *Registry) WithDB(gdb *gorm.DB) *Registry {
	s := *r.store
	s.db = gdb
	return &Registry{store: &s, makers: r.makers}
}

// Transaction runs fn with a registry bound to one transaction. Every write
// fn makes through that registry commits or rolls back together.
func (r *Registry) Transaction(ctx context.Context, fn func(tx *Registry) error) error {
	return r.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithDB(tx))
	})
}

// Repository returns the typed repository of e. T must be e's model.
func Repository[T any](r *Registry, e *schema.Entity) *Repo[T] {
	return &Repo[T]{store: r.store, entity: e}
}
