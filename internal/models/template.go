package models

import "time"

// Template is a reusable staffing shape applied to new projects.
type Template struct {
	ID        string         `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Roles     []TemplateRole `json:"roles"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// TemplateRole describes one role requirement in a template. Month offsets
// are relative to the start of the project the template is applied to.
type TemplateRole struct {
	ID                   string  `json:"id" db:"id"`
	TemplateID           string  `json:"template_id" db:"template_id"`
	RoleID               string  `json:"role_id" db:"role_id"`
	Count                int     `json:"count" db:"count"`
	StartMonthOffset     int     `json:"start_month_offset" db:"start_month_offset"`
	EndMonthOffset       int     `json:"end_month_offset" db:"end_month_offset"`
	HoursPerWeek         float64 `json:"hours_per_week" db:"hours_per_week"`
	AllocationPercentage float64 `json:"allocation_percentage" db:"allocation_percentage"`
}
