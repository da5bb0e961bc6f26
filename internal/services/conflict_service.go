package services

import (
	"sort"
	"time"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
)

// ConflictService aggregates normalized allocation across a staff member's
// assignments and classifies over-allocation. It only reports: whether a
// conflict blocks a write is the caller's decision.
type ConflictService struct {
	assignmentRepo *database.AssignmentRepository
}

// NewConflictService creates a new ConflictService
func NewConflictService(assignmentRepo *database.AssignmentRepository) *ConflictService {
	return &ConflictService{assignmentRepo: assignmentRepo}
}

// DetectInAssignments builds a conflict report for the given batch of one
// staff member's assignments, restricted to months inside [from, to].
func DetectInAssignments(staffID string, assignments []models.Assignment, from, to time.Time) *models.ConflictReport {
	report := &models.ConflictReport{
		StaffID: staffID,
		ByMonth: make(map[models.Month]models.MonthConflict),
	}

	first := models.MonthOf(from)
	last := models.MonthOf(to)
	series := NormalizeBatch(assignments)

	byID := make(map[string]*models.Assignment, len(assignments))
	for i := range assignments {
		byID[assignments[i].ID] = &assignments[i]
	}

	contributions := make(map[models.Month][]models.AssignmentContribution)
	ids := make([]string, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		for m, pct := range series[id] {
			if m.Before(first) || m.After(last) {
				continue
			}
			contributions[m] = append(contributions[m], models.AssignmentContribution{
				AssignmentID: id,
				ProjectID:    byID[id].ProjectID,
				Percentage:   pct,
			})
		}
	}

	for m, contribs := range contributions {
		total := 0.0
		for _, c := range contribs {
			total += c.Percentage
		}
		mc := models.MonthConflict{
			Total:                   total,
			ContributingAssignments: contribs,
		}
		if severity, conflict := models.SeverityForTotal(total); conflict {
			mc.Conflict = true
			mc.Severity = severity
			mc.OverAllocationAmount = total - 100
			report.HasConflicts = true
		}
		report.ByMonth[m] = mc
	}

	return report
}

// DetectConflicts loads the staff member's assignments overlapping
// [from, to] and reports per-month totals. excludeAssignmentID, when
// non-empty, drops that assignment from the batch so an edit in progress
// can be validated against everything except its own persisted version.
func (s *ConflictService) DetectConflicts(staffID string, from, to time.Time, excludeAssignmentID string) (*models.ConflictReport, error) {
	assignments, err := s.assignmentRepo.GetByStaffOverlapping(staffID, from, to)
	if err != nil {
		return nil, err
	}
	return DetectInAssignments(staffID, filterAssignment(assignments, excludeAssignmentID), from, to), nil
}

// ValidateCandidate injects a prospective assignment into the batch and
// reports the conflicts the combined schedule would have over the
// candidate's window.
func ValidateCandidate(candidate *models.Assignment, existing []models.Assignment) *models.ConflictReport {
	batch := filterAssignment(existing, candidate.ID)
	batch = append(batch, *candidate)
	return DetectInAssignments(candidate.StaffID, batch, candidate.StartDate, candidate.EndDate)
}

func filterAssignment(assignments []models.Assignment, excludeID string) []models.Assignment {
	if excludeID == "" {
		return assignments
	}
	kept := make([]models.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.ID != excludeID {
			kept = append(kept, a)
		}
	}
	return kept
}
