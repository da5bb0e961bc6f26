package models

import "time"

// GhostState is the lifecycle state of a ghost staff placeholder.
// Transitions are one-way: Active -> Replaced and Active -> Deleted are both
// terminal.
type GhostState string

const (
	GhostStateActive   GhostState = "active"
	GhostStateReplaced GhostState = "replaced"
	GhostStateDeleted  GhostState = "deleted"
)

// GhostStaff is a placeholder for a not-yet-hired or not-yet-assigned role
// requirement, created when a template is applied to a new project.
type GhostStaff struct {
	ID                     string     `json:"id" db:"id"`
	RoleID                 string     `json:"role_id" db:"role_id"`
	ProjectID              string     `json:"project_id" db:"project_id"`
	HoursPerWeek           float64    `json:"hours_per_week" db:"hours_per_week"`
	StartDate              time.Time  `json:"start_date" db:"start_date"`
	EndDate                time.Time  `json:"end_date" db:"end_date"`
	State                  GhostState `json:"state" db:"state"`
	ReplacedByAssignmentID *string    `json:"replaced_by_assignment_id,omitempty" db:"replaced_by_assignment_id"`
	CreatedAt              time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at" db:"updated_at"`
}

// ReplaceGhostRequest is the request body for replacing a ghost with a real
// staff member. The created assignment mirrors the ghost; allocation_type
// defaults to full unless the caller specifies otherwise.
type ReplaceGhostRequest struct {
	StaffID              string   `json:"staff_id" binding:"required"`
	AllocationType       *string  `json:"allocation_type,omitempty"`
	AllocationPercentage *float64 `json:"allocation_percentage,omitempty"`
}

// ApplyTemplateRequest is the request body for applying a staffing template
// to a project.
type ApplyTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
}
