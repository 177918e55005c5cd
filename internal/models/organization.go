package models

import "time"

// Organization is the tenant root. Organizations are deactivated through
// IsActive rather than deleted.
type Organization struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"size:128;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Logo        string    `gorm:"size:512" json:"logo"`
	Website     string    `gorm:"size:512" json:"website"`
	IsActive    bool      `json:"isActive"`
	Settings    JSON      `json:"settings"`
	Metadata    JSON      `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// User is an actor of the system.
type User struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name           string    `json:"name"`
	Role           string    `gorm:"size:16;default:DEVELOPER;index" json:"role"`
	IsActive       bool      `json:"isActive"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	OrganizationID *string   `gorm:"size:64;index" json:"organizationId"`
	Preferences    JSON      `json:"preferences"`
	Metadata       JSON      `json:"metadata"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Session is a bearer session issued to a user.
type Session struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	SessionToken string    `gorm:"size:128;not null;uniqueIndex" json:"sessionToken"`
	UserID       string    `gorm:"size:64;not null;index" json:"userId"`
	Expires      time.Time `gorm:"not null" json:"expires"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Team groups users inside an organization.
type Team struct {
	ID             string    `gorm:"primaryKey;size:64" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	Status         string    `gorm:"size:16;default:ACTIVE" json:"status"`
	OrganizationID string    `gorm:"size:64;not null;index" json:"organizationId"`
	ProjectID      *string   `gorm:"size:64;index" json:"projectId"`
	LeadID         *string   `gorm:"size:64" json:"leadId"`
	Metadata       JSON      `json:"metadata"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TeamMember binds a user to a team.
type TeamMember struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	TeamID    string     `gorm:"size:64;not null;uniqueIndex:idx_team_member" json:"teamId"`
	UserID    string     `gorm:"size:64;not null;uniqueIndex:idx_team_member" json:"userId"`
	Role      string     `gorm:"size:16;default:MEMBER" json:"role"`
	JoinedAt  *time.Time `json:"joinedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
