package models

import "time"

// Feature is a backlog item. ParentFeatureID nests sub-features.
type Feature struct {
	ID                 string     `gorm:"primaryKey;size:64" json:"id"`
	Title              string     `gorm:"not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	Status             string     `gorm:"size:16;default:BACKLOG;index" json:"status"`
	Priority           string     `gorm:"size:16;default:MEDIUM" json:"priority"`
	StoryPoints        *int       `json:"storyPoints"`
	BusinessValue      *int       `json:"businessValue"`
	AcceptanceCriteria string     `gorm:"type:text" json:"acceptanceCriteria"`
	AssignedUserID     *string    `gorm:"size:64" json:"assignedUserId"`
	ProjectID          string     `gorm:"size:64;not null;index" json:"projectId"`
	SprintID           *string    `gorm:"size:64;index" json:"sprintId"`
	ParentFeatureID    *string    `gorm:"size:64" json:"parentFeatureId"`
	Labels             JSON       `json:"labels"`
	Tags               JSON       `json:"tags"`
	CompletedAt        *time.Time `json:"completedAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Bug is a defect record.
type Bug struct {
	ID               string     `gorm:"primaryKey;size:64" json:"id"`
	Title            string     `gorm:"not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	Status           string     `gorm:"size:16;default:OPEN;index" json:"status"`
	Severity         string     `gorm:"size:16;default:MEDIUM" json:"severity"`
	Priority         string     `gorm:"size:16;default:MEDIUM" json:"priority"`
	StepsToReproduce string     `gorm:"type:text" json:"stepsToReproduce"`
	ExpectedBehavior string     `gorm:"type:text" json:"expectedBehavior"`
	ActualBehavior   string     `gorm:"type:text" json:"actualBehavior"`
	Environment      string     `json:"environment"`
	Resolution       string     `gorm:"type:text" json:"resolution"`
	AssignedUserID   *string    `gorm:"size:64" json:"assignedUserId"`
	ReportedUserID   *string    `gorm:"size:64" json:"reportedUserId"`
	ProjectID        string     `gorm:"size:64;not null;index" json:"projectId"`
	SprintID         *string    `gorm:"size:64" json:"sprintId"`
	FeatureID        *string    `gorm:"size:64" json:"featureId"`
	Labels           JSON       `json:"labels"`
	Tags             JSON       `json:"tags"`
	ResolvedAt       *time.Time `json:"resolvedAt"`
	ClosedAt         *time.Time `json:"closedAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Task is a unit of execution work inside a phase.
type Task struct {
	ID             string     `gorm:"primaryKey;size:64" json:"id"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         string     `gorm:"size:16;default:TODO;index" json:"status"`
	Priority       string     `gorm:"size:16;default:MEDIUM" json:"priority"`
	ProjectID      string     `gorm:"size:64;not null;index" json:"projectId"`
	PhaseID        string     `gorm:"size:64;not null;index" json:"phaseId"`
	FeatureID      *string    `gorm:"size:64" json:"featureId"`
	AssignedToID   *string    `gorm:"size:64" json:"assignedToId"`
	CreatorID      *string    `gorm:"size:64" json:"creatorId"`
	EstimatedHours *float64   `json:"estimatedHours"`
	DueDate        *time.Time `json:"dueDate"`
	CompletedAt    *time.Time `json:"completedAt"`
	Metadata       JSON       `json:"metadata"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TimeEntry records minutes a user spent on a task.
type TimeEntry struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	UserID      string    `gorm:"size:64;not null;index" json:"userId"`
	ProjectID   string    `gorm:"size:64;not null" json:"projectId"`
	TaskID      string    `gorm:"size:64;not null;index" json:"taskId"`
	Duration    int       `gorm:"not null" json:"duration"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
