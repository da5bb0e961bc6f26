package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents a billable role (e.g. "Senior Engineer").
type Role struct {
	ID                  string           `json:"id" db:"id"`
	Name                string           `json:"name" db:"name"`
	HourlyCost          decimal.Decimal  `json:"hourly_cost" db:"hourly_cost"`
	DefaultBillableRate *decimal.Decimal `json:"default_billable_rate,omitempty" db:"default_billable_rate"`
	CreatedAt           time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at" db:"updated_at"`
}
