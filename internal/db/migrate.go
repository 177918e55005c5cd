package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Phase-Platform/phase/internal/models"
)

// AllModels returns every gorm model in parent-before-child order.
func AllModels() []interface{} {
	return []interface{}{
		&models.Organization{},
		&models.User{},
		&models.Session{},
		&models.Team{},
		&models.TeamMember{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Phase{},
		&models.Sprint{},
		&models.Feature{},
		&models.Task{},
		&models.TimeEntry{},
		&models.Bug{},
		&models.TestSuite{},
		&models.TestCase{},
		&models.TestExecution{},
		&models.Document{},
		&models.Comment{},
		&models.Attachment{},
		&models.Notification{},
		&models.Release{},
		&models.Environment{},
		&models.Deployment{},
		&models.Metric{},
		&models.Integration{},
		&models.IntegrationLog{},
		&models.Webhook{},
		&models.CustomField{},
		&models.CustomFieldValue{},
		&models.AutomationRule{},
		&models.ActivityLog{},
		&models.WorkflowTemplate{},
	}
}

// AutoMigrate creates or updates every table.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table, children first, and migrates again.
func Reset(gdb *gorm.DB) error {
	all := AllModels()
	for i := len(all) - 1; i >= 0; i-- {
		if err := gdb.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("db: drop %T: %w", all[i], err)
		}
	}
	return AutoMigrate(gdb)
}

// TableCount is the row count of one table.
type TableCount struct {
	Table string
	Rows  int64
}

// Counts returns the row count of every table in migration order.
func Counts(ctx context.Context, gdb *gorm.DB) ([]TableCount, error) {
	var out []TableCount
	for _, m := range AllModels() {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("db: parse %T: %w", m, err)
		}
		var n int64
		if err := gdb.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("db: count %s: %w", stmt.Schema.Table, err)
		}
		out = append(out, TableCount{Table: stmt.Schema.Table, Rows: n})
	}
	return out, nil
}
