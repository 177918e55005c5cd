package models

import "time"

// Project is the unit of delivery work.
type Project struct {
	ID             string     `gorm:"primaryKey;size:64" json:"id"`
	Name           string     `gorm:"not null" json:"name"`
	Slug           string     `gorm:"size:128;not null;uniqueIndex" json:"slug"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         string     `gorm:"size:16;default:PLANNING;index" json:"status"`
	Priority       string     `gorm:"size:16;default:MEDIUM" json:"priority"`
	OwnerID        string     `gorm:"size:64;not null;index" json:"ownerId"`
	OrganizationID string     `gorm:"size:64;not null;index" json:"organizationId"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Budget         *float64   `json:"budget"`
	Repository     string     `gorm:"size:512" json:"repository"`
	Settings       JSON       `json:"settings"`
	Metadata       JSON       `json:"metadata"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ProjectMember binds a user to a project with a role.
type ProjectMember struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	ProjectID   string    `gorm:"size:64;not null;uniqueIndex:idx_project_user" json:"projectId"`
	UserID      string    `gorm:"size:64;not null;uniqueIndex:idx_project_user" json:"userId"`
	Role        string    `gorm:"size:16;not null" json:"role"`
	Permissions JSON      `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Phase is an ordered SDLC stage of a project.
type Phase struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	ProjectID   string     `gorm:"size:64;not null;uniqueIndex:idx_phase_order" json:"projectId"`
	Type        string     `gorm:"size:16;not null" json:"type"`
	Order       int        `gorm:"column:sort_order;not null;uniqueIndex:idx_phase_order" json:"order"`
	Status      string     `gorm:"size:16;default:NOT_STARTED" json:"status"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	DependsOnID *string    `gorm:"size:64" json:"dependsOnId"`
	Metadata    JSON       `json:"metadata"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Sprint is a time-boxed iteration of a project.
type Sprint struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:16;default:PLANNED" json:"status"`
	Goal        string     `gorm:"type:text" json:"goal"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Capacity    *int       `json:"capacity"`
	Commitment  *int       `json:"commitment"`
	ProjectID   string     `gorm:"size:64;not null;index" json:"projectId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
