package models

// ConflictSeverity classifies how far a month's summed allocation exceeds
// a staff member's capacity.
type ConflictSeverity string

const (
	// SeverityModerate covers totals in (100, 110].
	SeverityModerate ConflictSeverity = "moderate"
	// SeverityHigh covers totals in (110, 130].
	SeverityHigh ConflictSeverity = "high"
	// SeverityCritical covers totals above 130.
	SeverityCritical ConflictSeverity = "critical"
)

// SeverityForTotal classifies a summed monthly allocation. ok is false when
// the total is within capacity and no conflict exists.
func SeverityForTotal(total float64) (severity ConflictSeverity, ok bool) {
	switch {
	case total <= 100:
		return "", false
	case total <= 110:
		return SeverityModerate, true
	case total <= 130:
		return SeverityHigh, true
	default:
		return SeverityCritical, true
	}
}

// AssignmentContribution is one assignment's share of a month's total,
// listed for diagnostic display.
type AssignmentContribution struct {
	AssignmentID string  `json:"assignment_id"`
	ProjectID    string  `json:"project_id"`
	Percentage   float64 `json:"percentage"`
}

// MonthConflict summarizes one month's aggregated allocation for a staff
// member. Severity is set only when the month is actually in conflict.
type MonthConflict struct {
	Total                   float64                  `json:"total"`
	OverAllocationAmount    float64                  `json:"over_allocation_amount"`
	Conflict                bool                     `json:"conflict"`
	Severity                ConflictSeverity         `json:"severity,omitempty"`
	ContributingAssignments []AssignmentContribution `json:"contributing_assignments"`
}

// ConflictReport aggregates allocation across all of a staff member's
// assignments in a date range. Over-allocation is a data result, not an
// error: callers interpret the report and decide whether to proceed.
type ConflictReport struct {
	StaffID      string                  `json:"staff_id"`
	ByMonth      map[Month]MonthConflict `json:"by_month"`
	HasConflicts bool                    `json:"has_conflicts"`
}

// TotalFor returns the summed allocation for month m, 0 if the month does
// not appear in the report.
func (r *ConflictReport) TotalFor(m Month) float64 {
	return r.ByMonth[m].Total
}

// MaxTotal returns the highest monthly total in the report.
func (r *ConflictReport) MaxTotal() float64 {
	max := 0.0
	for _, mc := range r.ByMonth {
		if mc.Total > max {
			max = mc.Total
		}
	}
	return max
}
