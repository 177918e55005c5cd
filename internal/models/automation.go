package models

import "time"

// Integration configures an external system for a project.
type Integration struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Status      string    `gorm:"size:16;default:ACTIVE" json:"status"`
	ProjectID   string    `gorm:"size:64;not null;index" json:"projectId"`
	CreatedByID *string   `gorm:"size:64" json:"createdById"`
	Config      JSON      `json:"config"`
	Metadata    JSON      `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IntegrationLog is one entry of an integration's log trail.
type IntegrationLog struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	IntegrationID string    `gorm:"size:64;not null;index" json:"integrationId"`
	Level         string    `gorm:"size:8;default:INFO" json:"level"`
	Message       string    `gorm:"type:text;not null" json:"message"`
	Metadata      JSON      `json:"metadata"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Webhook is an outbound event subscription.
type Webhook struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	URL         string    `gorm:"size:1024;not null" json:"url"`
	Events      JSON      `json:"events"`
	Secret      string    `gorm:"size:255" json:"secret"`
	Status      string    `gorm:"size:16;default:ACTIVE" json:"status"`
	ProjectID   string    `gorm:"size:64;not null;index" json:"projectId"`
	CreatedByID *string   `gorm:"size:64" json:"createdById"`
	Metadata    JSON      `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CustomField is a user-defined typed field for one entity type.
type CustomField struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Type         string    `gorm:"size:16;not null" json:"type"`
	EntityType   string    `gorm:"size:32;not null" json:"entityType"`
	ProjectID    string    `gorm:"size:64;not null;index" json:"projectId"`
	CreatedByID  *string   `gorm:"size:64" json:"createdById"`
	Options      JSON      `json:"options"`
	DefaultValue JSON      `json:"defaultValue"`
	MinValue     *float64  `json:"minValue"`
	MaxValue     *float64  `json:"maxValue"`
	IsRequired   bool      `json:"isRequired"`
	Order        int       `gorm:"column:sort_order" json:"order"`
	Metadata     JSON      `json:"metadata"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CustomFieldValue holds a custom field's value for one entity instance.
type CustomFieldValue struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	CustomFieldID string    `gorm:"size:64;not null;uniqueIndex:idx_custom_field_target" json:"customFieldId"`
	EntityType    string    `gorm:"size:32;not null;uniqueIndex:idx_custom_field_target" json:"entityType"`
	EntityID      string    `gorm:"size:64;not null;uniqueIndex:idx_custom_field_target" json:"entityId"`
	Value         JSON      `json:"value"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AutomationRule fires actions when its trigger matches.
type AutomationRule struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Trigger     JSON      `gorm:"column:trigger_def;not null" json:"trigger"`
	Actions     JSON      `gorm:"not null" json:"actions"`
	IsActive    bool      `json:"isActive"`
	ProjectID   string    `gorm:"size:64;not null;index" json:"projectId"`
	CreatedByID *string   `gorm:"size:64" json:"createdById"`
	Metadata    JSON      `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WorkflowTemplate is a reusable phase layout.
type WorkflowTemplate struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:128;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:64" json:"category"`
	Methodology string    `gorm:"size:16" json:"methodology"`
	Status      string    `gorm:"size:16;default:ACTIVE" json:"status"`
	Phases      JSON      `json:"phases"`
	Metadata    JSON      `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
