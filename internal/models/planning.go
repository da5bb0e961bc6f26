package models

import "time"

// OverlapMode is the staff-sharing policy a capacity plan assumes.
type OverlapMode string

const (
	// OverlapModeEfficient assumes staff can be shared and re-assigned
	// across projects as long as no month exceeds capacity.
	OverlapModeEfficient OverlapMode = "efficient"
	// OverlapModeConservative assumes staff are dedicated per project.
	OverlapModeConservative OverlapMode = "conservative"
)

// ParseOverlapMode validates an overlap mode declaration.
func ParseOverlapMode(s string) (OverlapMode, error) {
	switch m := OverlapMode(s); m {
	case OverlapModeEfficient, OverlapModeConservative:
		return m, nil
	}
	return "", NewValidationError("unknown overlap mode %q: must be efficient or conservative", s)
}

// PlanningExercise is a what-if scenario over a set of planned projects.
type PlanningExercise struct {
	ID        string            `json:"id" db:"id"`
	Name      string            `json:"name" db:"name"`
	Status    string            `json:"status" db:"status"`
	Projects  []PlanningProject `json:"projects"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// PlanningProject is one planned project inside an exercise.
type PlanningProject struct {
	ID             string         `json:"id" db:"id"`
	ExerciseID     string         `json:"exercise_id" db:"exercise_id"`
	Name           string         `json:"name" db:"name"`
	StartDate      time.Time      `json:"start_date" db:"start_date"`
	DurationMonths int            `json:"duration_months" db:"duration_months"`
	Roles          []PlanningRole `json:"roles"`
}

// PlanningRole is a role requirement on a planned project.
type PlanningRole struct {
	ID                   string  `json:"id" db:"id"`
	PlanningProjectID    string  `json:"planning_project_id" db:"planning_project_id"`
	RoleID               string  `json:"role_id" db:"role_id"`
	Count                int     `json:"count" db:"count"`
	StartMonthOffset     int     `json:"start_month_offset" db:"start_month_offset"`
	EndMonthOffset       int     `json:"end_month_offset" db:"end_month_offset"`
	AllocationPercentage float64 `json:"allocation_percentage" db:"allocation_percentage"`
	HoursPerWeek         float64 `json:"hours_per_week" db:"hours_per_week"`
}

// DemandMonths returns the calendar months in which this role requirement
// demands capacity. The window runs from the project start shifted by the
// start offset up to (but not including) the project start shifted by
// duration plus the end offset, so a role with zero offsets spans exactly
// the project's duration.
func (pr *PlanningRole) DemandMonths(projectStart time.Time, durationMonths int) []Month {
	base := MonthOf(projectStart)
	first := base.AddMonths(pr.StartMonthOffset)
	last := base.AddMonths(durationMonths + pr.EndMonthOffset - 1)
	if last.Before(first) {
		return nil
	}
	var months []Month
	for m := first; !m.After(last); m = m.Next() {
		months = append(months, m)
	}
	return months
}

// StaffRequirement is the per-role outcome of a capacity plan.
type StaffRequirement struct {
	RoleID                string  `json:"role_id"`
	MinimumStaffNeeded    int     `json:"minimum_staff_needed"`
	PeakMonth             *Month  `json:"peak_month,omitempty"`
	PeakAllocationPercent float64 `json:"peak_allocation_percent"`
	AvailableStaffCount   int     `json:"available_staff_count"`
	NewHiresNeeded        int     `json:"new_hires_needed"`
}

// StaffRequirementReport is the result of planning a whole exercise.
type StaffRequirementReport struct {
	ExerciseID string             `json:"exercise_id"`
	Mode       OverlapMode        `json:"mode"`
	PerRole    []StaffRequirement `json:"per_role"`
}
