package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AllocationType declares how an assignment consumes a staff member's
// capacity. The set is closed: unknown declarations are rejected at input
// validation, never silently defaulted.
type AllocationType string

const (
	AllocationFull              AllocationType = "full"
	AllocationSplitByProjects   AllocationType = "split_by_projects"
	AllocationPercentageTotal   AllocationType = "percentage_total"
	AllocationPercentageMonthly AllocationType = "percentage_monthly"
)

// ParseAllocationType validates an allocation type declaration.
func ParseAllocationType(s string) (AllocationType, error) {
	switch t := AllocationType(s); t {
	case AllocationFull, AllocationSplitByProjects, AllocationPercentageTotal, AllocationPercentageMonthly:
		return t, nil
	}
	return "", NewValidationError("unknown allocation_type %q: must be full, split_by_projects, percentage_total, or percentage_monthly", s)
}

// MonthlyAllocation pins an explicit percentage to one calendar month.
// Only percentage_monthly assignments carry these.
type MonthlyAllocation struct {
	Month      Month   `json:"month"`
	Percentage float64 `json:"percentage"`
}

// MonthlyAllocationList is stored as JSONB.
type MonthlyAllocationList []MonthlyAllocation

// Value implements the driver.Valuer interface
func (l MonthlyAllocationList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *MonthlyAllocationList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported source type %T for monthly allocations", src)
}

// Assignment places a staff member on a project in a role for a date range.
type Assignment struct {
	ID                   string                `json:"id" db:"id"`
	StaffID              string                `json:"staff_id" db:"staff_id"`
	ProjectID            string                `json:"project_id" db:"project_id"`
	RoleID               string                `json:"role_id" db:"role_id"`
	StartDate            time.Time             `json:"start_date" db:"start_date"`
	EndDate              time.Time             `json:"end_date" db:"end_date"`
	HoursPerWeek         float64               `json:"hours_per_week" db:"hours_per_week"`
	AllocationType       AllocationType        `json:"allocation_type" db:"allocation_type"`
	AllocationPercentage float64               `json:"allocation_percentage" db:"allocation_percentage"`
	MonthlyAllocations   MonthlyAllocationList `json:"monthly_allocations,omitempty" db:"monthly_allocations"`
	AllowOverAllocation  bool                  `json:"allow_over_allocation" db:"allow_over_allocation"`
	CreatedAt            time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at" db:"updated_at"`
}

// ActiveInMonth reports whether the assignment's window touches month m.
func (a *Assignment) ActiveInMonth(m Month) bool {
	return !m.Before(MonthOf(a.StartDate)) && !m.After(MonthOf(a.EndDate))
}

// Overlaps reports whether the assignment window intersects [from, to].
func (a *Assignment) Overlaps(from, to time.Time) bool {
	return !a.StartDate.After(to) && !a.EndDate.Before(from)
}

// Months returns every calendar month the assignment touches.
func (a *Assignment) Months() []Month {
	return MonthsTouched(a.StartDate, a.EndDate)
}

// Validate enforces the engine's input invariants on an assignment.
func (a *Assignment) Validate() error {
	if a.EndDate.Before(a.StartDate) {
		return NewValidationError("start_date must not be after end_date")
	}
	if _, err := ParseAllocationType(string(a.AllocationType)); err != nil {
		return err
	}
	if a.AllocationPercentage < 0 || a.AllocationPercentage > 100 {
		return NewValidationError("allocation_percentage must be within [0,100], got %v", a.AllocationPercentage)
	}
	if a.HoursPerWeek < 0 {
		return NewValidationError("hours_per_week must not be negative")
	}
	for _, ma := range a.MonthlyAllocations {
		if ma.Percentage < 0 || ma.Percentage > 100 {
			return NewValidationError("monthly allocation for %s must be within [0,100], got %v", ma.Month, ma.Percentage)
		}
	}
	return nil
}

// MonthlyAllocationRequest is the wire form of one explicit monthly entry.
type MonthlyAllocationRequest struct {
	Month      string  `json:"month" binding:"required"` // Format: YYYY-MM
	Percentage float64 `json:"percentage"`
}

// AssignmentRequest is the request body for creating or replacing an
// assignment, and for dry-run conflict validation.
type AssignmentRequest struct {
	StaffID              string                     `json:"staff_id" binding:"required"`
	ProjectID            string                     `json:"project_id" binding:"required"`
	RoleID               string                     `json:"role_id" binding:"required"`
	StartDate            string                     `json:"start_date" binding:"required"` // Format: YYYY-MM-DD
	EndDate              string                     `json:"end_date" binding:"required"`   // Format: YYYY-MM-DD
	HoursPerWeek         float64                    `json:"hours_per_week"`
	AllocationType       string                     `json:"allocation_type" binding:"required"`
	AllocationPercentage float64                    `json:"allocation_percentage"`
	MonthlyAllocations   []MonthlyAllocationRequest `json:"monthly_allocations,omitempty"`
	AllowOverAllocation  bool                       `json:"allow_over_allocation"`
}

// ToAssignment validates the request and builds the assignment it describes.
// The caller supplies the id: a fresh uuid on create, the existing id on
// update or dry-run validation of an edit in progress.
func (req *AssignmentRequest) ToAssignment(id string) (*Assignment, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, NewValidationError("invalid start_date %q: use YYYY-MM-DD", req.StartDate)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, NewValidationError("invalid end_date %q: use YYYY-MM-DD", req.EndDate)
	}
	allocType, err := ParseAllocationType(req.AllocationType)
	if err != nil {
		return nil, err
	}

	var monthly MonthlyAllocationList
	for _, entry := range req.MonthlyAllocations {
		month, err := ParseMonth(entry.Month)
		if err != nil {
			return nil, err
		}
		monthly = append(monthly, MonthlyAllocation{Month: month, Percentage: entry.Percentage})
	}

	assignment := &Assignment{
		ID:                   id,
		StaffID:              req.StaffID,
		ProjectID:            req.ProjectID,
		RoleID:               req.RoleID,
		StartDate:            start,
		EndDate:              end,
		HoursPerWeek:         req.HoursPerWeek,
		AllocationType:       allocType,
		AllocationPercentage: req.AllocationPercentage,
		MonthlyAllocations:   monthly,
		AllowOverAllocation:  req.AllowOverAllocation,
	}

	if err := assignment.Validate(); err != nil {
		return nil, err
	}

	return assignment, nil
}
