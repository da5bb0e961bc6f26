package models

import "time"

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "planned"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// MaxProjectDepth bounds ancestry walks over the project tree. The
// persistence layer keeps the parent chain acyclic at write time; a walk
// that exceeds this depth indicates corrupted data, not a deep tree.
const MaxProjectDepth = 64

// Project represents a project or folder. Folders group projects and may
// carry role-rate overrides that child projects inherit.
type Project struct {
	ID              string        `json:"id" db:"id"`
	Name            string        `json:"name" db:"name"`
	ParentProjectID *string       `json:"parent_project_id,omitempty" db:"parent_project_id"`
	IsFolder        bool          `json:"is_folder" db:"is_folder"`
	Status          ProjectStatus `json:"status" db:"status"`
	StartDate       *time.Time    `json:"start_date,omitempty" db:"start_date"`
	EndDate         *time.Time    `json:"end_date,omitempty" db:"end_date"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" db:"updated_at"`
}
