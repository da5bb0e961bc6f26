package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
)

// RateService resolves billable rates through the project hierarchy and
// prices assignments against resolved rates.
type RateService struct {
	projectRepo    *database.ProjectRepository
	roleRepo       *database.RoleRepository
	roleRateRepo   *database.RoleRateRepository
	staffRepo      *database.StaffRepository
	assignmentRepo *database.AssignmentRepository
}

// NewRateService creates a new RateService
func NewRateService(
	projectRepo *database.ProjectRepository,
	roleRepo *database.RoleRepository,
	roleRateRepo *database.RoleRateRepository,
	staffRepo *database.StaffRepository,
	assignmentRepo *database.AssignmentRepository,
) *RateService {
	return &RateService{
		projectRepo:    projectRepo,
		roleRepo:       roleRepo,
		roleRateRepo:   roleRateRepo,
		staffRepo:      staffRepo,
		assignmentRepo: assignmentRepo,
	}
}

// ResolveRate finds the billable rate for a role on a project. A rate
// defined directly on the project wins; otherwise the first ancestor with
// one; otherwise the role's default billable rate; otherwise no rate. A
// cyclic parent chain is corrupted external data and resolves to a
// ConfigurationFault, never an endless walk.
func (s *RateService) ResolveRate(projectID, roleID string) (*models.RateResolution, error) {
	resolution := &models.RateResolution{
		ProjectID: projectID,
		RoleID:    roleID,
		Source:    models.RateSourceNone,
	}

	visited := make(map[string]bool)
	currentID := projectID
	for depth := 0; ; depth++ {
		if visited[currentID] || depth > models.MaxProjectDepth {
			return nil, models.NewConfigurationFault("project %s has a cyclic or over-deep ancestry", projectID)
		}
		visited[currentID] = true

		rate, err := s.roleRateRepo.GetByProjectAndRole(currentID, roleID)
		if err != nil {
			return nil, err
		}
		if rate != nil {
			resolution.Rate = &rate.BillableRate
			if currentID == projectID {
				resolution.Source = models.RateSourceProjectRoleRate
			} else {
				resolution.Source = models.RateSourceInheritedProjectRoleRate
				sourceID := currentID
				resolution.SourceProjectID = &sourceID
			}
			return resolution, nil
		}

		project, err := s.projectRepo.GetByID(currentID)
		if err != nil {
			return nil, err
		}
		if project.ParentProjectID == nil {
			break
		}
		currentID = *project.ParentProjectID
	}

	role, err := s.roleRepo.GetByID(roleID)
	if err != nil {
		return nil, err
	}
	if role.DefaultBillableRate != nil {
		resolution.Rate = role.DefaultBillableRate
		resolution.Source = models.RateSourceRoleDefaultBillableRate
	}
	return resolution, nil
}

// AssignmentCost prices an assignment over a reporting window. The window
// defaults to the assignment's own range when the caller passes zero times.
func (s *RateService) AssignmentCost(assignmentID string, windowStart, windowEnd time.Time) (*models.AssignmentCostReport, error) {
	assignment, err := s.assignmentRepo.GetByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if windowStart.IsZero() {
		windowStart = assignment.StartDate
	}
	if windowEnd.IsZero() {
		windowEnd = assignment.EndDate
	}
	if windowEnd.Before(windowStart) {
		return nil, models.NewValidationError("window start must not be after window end")
	}

	overlapStart := maxTime(windowStart, assignment.StartDate)
	overlapEnd := minTime(windowEnd, assignment.EndDate)

	report := &models.AssignmentCostReport{
		AssignmentID: assignmentID,
		WindowStart:  windowStart,
		WindowEnd:    windowEnd,
		RateSource:   models.RateSourceNone,
	}
	if overlapEnd.Before(overlapStart) {
		report.WeeksInOverlap = decimal.Zero
		report.InternalCost = decimal.Zero
		return report, nil
	}

	// Inclusive day count over the overlap, expressed in weeks.
	days := int(overlapEnd.Sub(overlapStart).Hours()/24) + 1
	report.WeeksInOverlap = decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(7))

	report.EffectiveAllocation, err = s.effectiveAllocation(assignment, overlapStart, overlapEnd)
	if err != nil {
		return nil, err
	}

	staff, err := s.staffRepo.GetByID(assignment.StaffID)
	if err != nil {
		return nil, err
	}
	resolution, err := s.ResolveRate(assignment.ProjectID, assignment.RoleID)
	if err != nil {
		return nil, err
	}
	report.RateSource = resolution.Source
	report.BillableRate = resolution.Rate

	factor := report.WeeksInOverlap.
		Mul(decimal.NewFromFloat(assignment.HoursPerWeek)).
		Mul(decimal.NewFromFloat(report.EffectiveAllocation)).
		Div(decimal.NewFromInt(100))

	report.InternalCost = staff.InternalHourlyCost.Mul(factor)
	if resolution.Rate != nil {
		billable := resolution.Rate.Mul(factor)
		margin := billable.Sub(report.InternalCost)
		report.BillableCost = &billable
		report.Margin = &margin
	}
	return report, nil
}

// effectiveAllocation averages the assignment's normalized percentage over
// the months the overlap touches. The batch includes the staff member's
// other assignments so split_by_projects shares are priced correctly.
func (s *RateService) effectiveAllocation(assignment *models.Assignment, from, to time.Time) (float64, error) {
	batch, err := s.assignmentRepo.GetByStaffOverlapping(assignment.StaffID, assignment.StartDate, assignment.EndDate)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		batch = []models.Assignment{*assignment}
	}
	series := NormalizeBatch(batch)[assignment.ID]

	months := models.MonthsTouched(from, to)
	if len(months) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, m := range months {
		sum += series[m]
	}
	return sum / float64(len(months)), nil
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
