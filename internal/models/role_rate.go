package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoleRate is a billable-rate override for a role on a specific project or
// folder. Children of that project inherit the override unless they define
// their own.
type RoleRate struct {
	ProjectID    string          `json:"project_id" db:"project_id"`
	RoleID       string          `json:"role_id" db:"role_id"`
	BillableRate decimal.Decimal `json:"billable_rate" db:"billable_rate"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// RateSource names the level of the hierarchy that supplied a resolved rate.
type RateSource string

const (
	RateSourceProjectRoleRate          RateSource = "project_role_rate"
	RateSourceInheritedProjectRoleRate RateSource = "inherited_project_role_rate"
	RateSourceRoleDefaultBillableRate  RateSource = "role_default_billable_rate"
	RateSourceNone                     RateSource = "none"
)

// RateResolution is the result of resolving a role's billable rate for a
// project through the folder inheritance chain.
type RateResolution struct {
	ProjectID       string           `json:"project_id"`
	RoleID          string           `json:"role_id"`
	Rate            *decimal.Decimal `json:"rate"`
	Source          RateSource       `json:"source"`
	SourceProjectID *string          `json:"source_project_id,omitempty"`
}
