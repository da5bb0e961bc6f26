package services

import (
	"time"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
)

// AllocationService converts heterogeneous allocation declarations into
// per-calendar-month percentage series. split_by_projects percentages are
// mutually dependent, so normalization always runs over a staff member's
// whole assignment batch rather than one assignment in isolation.
type AllocationService struct {
	assignmentRepo *database.AssignmentRepository
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(assignmentRepo *database.AssignmentRepository) *AllocationService {
	return &AllocationService{assignmentRepo: assignmentRepo}
}

// fixedPercentage returns the assignment's percentage in month m for the
// three self-contained allocation types. split_by_projects has no fixed
// value and is handled by the batch pass.
func fixedPercentage(a *models.Assignment, m models.Month) float64 {
	switch a.AllocationType {
	case models.AllocationFull:
		return 100
	case models.AllocationPercentageTotal:
		return a.AllocationPercentage
	case models.AllocationPercentageMonthly:
		for _, entry := range a.MonthlyAllocations {
			if entry.Month == m {
				return clampPercentage(entry.Percentage)
			}
		}
		// Months inside the window without an explicit entry count as
		// fully allocated.
		return 100
	}
	return 0
}

func clampPercentage(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// NormalizeBatch normalizes every assignment in a staff member's batch,
// keyed by assignment id. All assignments must belong to the same staff
// member; the split_by_projects pool math is meaningless otherwise.
func NormalizeBatch(assignments []models.Assignment) map[string]models.MonthlySeries {
	result := make(map[string]models.MonthlySeries, len(assignments))

	var splits []*models.Assignment
	for i := range assignments {
		a := &assignments[i]
		series := make(models.MonthlySeries)
		if a.AllocationType == models.AllocationSplitByProjects {
			splits = append(splits, a)
		} else {
			for _, m := range a.Months() {
				series[m] = fixedPercentage(a, m)
			}
		}
		result[a.ID] = series
	}

	for _, a := range splits {
		series := result[a.ID]
		for _, m := range a.Months() {
			fixedSum := 0.0
			k := 0
			for i := range assignments {
				other := &assignments[i]
				if !other.ActiveInMonth(m) {
					continue
				}
				if other.AllocationType == models.AllocationSplitByProjects {
					k++
				} else {
					fixedSum += fixedPercentage(other, m)
				}
			}
			pool := 100 - fixedSum
			if pool < 0 {
				pool = 0
			}
			series[m] = pool / float64(k)
		}
	}

	return result
}

// NormalizeAssignment normalizes a single assignment in the context of the
// same staff member's other assignments. The candidate may be a prospective
// record that is not yet persisted.
func NormalizeAssignment(a *models.Assignment, others []models.Assignment) models.MonthlySeries {
	batch := make([]models.Assignment, 0, len(others)+1)
	batch = append(batch, others...)
	batch = append(batch, *a)
	return NormalizeBatch(batch)[a.ID]
}

// StaffAllocations loads a staff member's assignments overlapping
// [from, to] and returns the normalized series for each.
func (s *AllocationService) StaffAllocations(staffID string, from, to time.Time) (map[string]models.MonthlySeries, error) {
	assignments, err := s.assignmentRepo.GetByStaffOverlapping(staffID, from, to)
	if err != nil {
		return nil, err
	}
	return NormalizeBatch(assignments), nil
}
