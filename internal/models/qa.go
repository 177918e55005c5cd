package models

import "time"

// TestSuite groups test cases of a project.
type TestSuite struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ProjectID   string    `gorm:"size:64;not null;index" json:"projectId"`
	Metadata    JSON      `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TestCase is a scripted check with ordered steps.
type TestCase struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:16;default:FUNCTIONAL" json:"type"`
	Priority    string    `gorm:"size:16;default:MEDIUM" json:"priority"`
	Status      string    `gorm:"size:16;default:DRAFT" json:"status"`
	ProjectID   string    `gorm:"size:64;not null;index" json:"projectId"`
	SuiteID     string    `gorm:"size:64;not null;index" json:"suiteId"`
	FeatureID   *string   `gorm:"size:64" json:"featureId"`
	CreatedByID *string   `gorm:"size:64" json:"createdById"`
	Expected    string    `gorm:"type:text" json:"expected"`
	Steps       JSON      `json:"steps"`
	Metadata    JSON      `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TestExecution is one run of a test case.
type TestExecution struct {
	ID           string     `gorm:"primaryKey;size:64" json:"id"`
	TestCaseID   string     `gorm:"size:64;not null;index" json:"testCaseId"`
	Status       string     `gorm:"size:16;default:NOT_EXECUTED" json:"status"`
	ExecutedByID *string    `gorm:"size:64" json:"executedById"`
	Environment  string     `json:"environment"`
	StartedAt    *time.Time `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt"`
	Notes        string     `gorm:"type:text" json:"notes"`
	Defects      JSON       `json:"defects"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
