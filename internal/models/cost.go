package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignmentCostReport prices an assignment over a reporting window:
// billable = rate * hours_per_week * weeks_in_overlap * allocation/100,
// internal computed identically from the staff member's internal hourly
// cost, margin = billable - internal. Billable cost and margin are omitted
// when no rate resolves for the project/role pair.
type AssignmentCostReport struct {
	AssignmentID        string           `json:"assignment_id"`
	WindowStart         time.Time        `json:"window_start"`
	WindowEnd           time.Time        `json:"window_end"`
	WeeksInOverlap      decimal.Decimal  `json:"weeks_in_overlap"`
	EffectiveAllocation float64          `json:"effective_allocation"`
	BillableRate        *decimal.Decimal `json:"billable_rate,omitempty"`
	RateSource          RateSource       `json:"rate_source"`
	BillableCost        *decimal.Decimal `json:"billable_cost,omitempty"`
	InternalCost        decimal.Decimal  `json:"internal_cost"`
	Margin              *decimal.Decimal `json:"margin,omitempty"`
}
