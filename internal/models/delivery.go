package models

import "time"

// Release is a versioned delivery of a project.
type Release struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Version     string     `gorm:"size:64;not null;uniqueIndex:idx_release_version" json:"version"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:16;default:DRAFT" json:"status"`
	ProjectID   string     `gorm:"size:64;not null;uniqueIndex:idx_release_version" json:"projectId"`
	CreatedByID *string    `gorm:"size:64" json:"createdById"`
	ReleaseDate *time.Time `json:"releaseDate"`
	Notes       string     `gorm:"type:text" json:"notes"`
	Metadata    JSON       `json:"metadata"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Environment is a named deployment target.
type Environment struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	URL         string    `gorm:"size:512" json:"url"`
	ProjectID   string    `gorm:"size:64;not null;index" json:"projectId"`
	Config      JSON      `json:"config"`
	Variables   JSON      `json:"variables"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Deployment records a rollout to an environment.
type Deployment struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	Version       string     `gorm:"size:64;not null" json:"version"`
	Status        string     `gorm:"size:16;default:PENDING" json:"status"`
	ProjectID     string     `gorm:"size:64;not null;index" json:"projectId"`
	EnvironmentID string     `gorm:"size:64;not null;index" json:"environmentId"`
	ReleaseID     *string    `gorm:"size:64" json:"releaseId"`
	StartTime     *time.Time `json:"startTime"`
	EndTime       *time.Time `json:"endTime"`
	Logs          string     `gorm:"type:text" json:"logs"`
	Metadata      JSON       `json:"metadata"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Metric is a measured project value with an optional target.
type Metric struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Value       float64   `gorm:"not null" json:"value"`
	Target      *float64  `json:"target"`
	Unit        string    `gorm:"size:32" json:"unit"`
	ProjectID   string    `gorm:"size:64;not null;index" json:"projectId"`
	Metadata    JSON      `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
