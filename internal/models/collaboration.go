package models

import "time"

// Document is project documentation, optionally tied to a phase.
type Document struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Content     string     `gorm:"type:text" json:"content"`
	Type        string     `gorm:"size:16;default:OTHER" json:"type"`
	Status      string     `gorm:"size:16;default:DRAFT" json:"status"`
	Version     string     `gorm:"size:32" json:"version"`
	ProjectID   string     `gorm:"size:64;not null;index" json:"projectId"`
	PhaseID     *string    `gorm:"size:64" json:"phaseId"`
	CreatedByID string     `gorm:"size:64;not null" json:"createdById"`
	Tags        JSON       `json:"tags"`
	Metadata    JSON       `json:"metadata"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Comment is free text attached to an entity of EntityType.
type Comment struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	UserID     string    `gorm:"size:64;not null" json:"userId"`
	ProjectID  *string   `gorm:"size:64" json:"projectId"`
	EntityType string    `gorm:"size:32;not null;index:idx_comment_target" json:"entityType"`
	EntityID   string    `gorm:"size:64;not null;index:idx_comment_target" json:"entityId"`
	Metadata   JSON      `json:"metadata"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Attachment is a file reference attached to an entity of EntityType.
type Attachment struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Type       string    `gorm:"size:64;not null" json:"type"`
	URL        string    `gorm:"size:1024;not null" json:"url"`
	Size       *int      `json:"size"`
	UserID     string    `gorm:"size:64;not null" json:"userId"`
	EntityType string    `gorm:"size:32;not null;index:idx_attachment_target" json:"entityType"`
	EntityID   string    `gorm:"size:64;not null;index:idx_attachment_target" json:"entityId"`
	Metadata   JSON      `json:"metadata"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Notification is a message for a user, optionally about an entity.
type Notification struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	Type       string    `gorm:"size:32;not null" json:"type"`
	Title      string    `gorm:"not null" json:"title"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Read       bool      `gorm:"column:is_read" json:"read"`
	UserID     string    `gorm:"size:64;not null;index" json:"userId"`
	ProjectID  *string   `gorm:"size:64" json:"projectId"`
	EntityType *string   `gorm:"size:32" json:"entityType"`
	EntityID   *string   `gorm:"size:64" json:"entityId"`
	Metadata   JSON      `json:"metadata"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ActivityLog is an audit row.
type ActivityLog struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Type        string    `gorm:"size:16;default:SYSTEM" json:"type"`
	Description string    `gorm:"type:text;not null" json:"description"`
	UserID      *string   `gorm:"size:64" json:"userId"`
	ProjectID   *string   `gorm:"size:64;index" json:"projectId"`
	EntityType  *string   `gorm:"size:32" json:"entityType"`
	EntityID    *string   `gorm:"size:64" json:"entityId"`
	Metadata    JSON      `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
