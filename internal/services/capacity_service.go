package services

import (
	"math"
	"sort"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
)

// CapacityService computes minimum-headcount and new-hire requirements for
// a planning exercise under the efficient and conservative sharing policies.
type CapacityService struct {
	exerciseRepo   *database.PlanningExerciseRepository
	staffRepo      *database.StaffRepository
	assignmentRepo *database.AssignmentRepository
}

// NewCapacityService creates a new CapacityService
func NewCapacityService(
	exerciseRepo *database.PlanningExerciseRepository,
	staffRepo *database.StaffRepository,
	assignmentRepo *database.AssignmentRepository,
) *CapacityService {
	return &CapacityService{
		exerciseRepo:   exerciseRepo,
		staffRepo:      staffRepo,
		assignmentRepo: assignmentRepo,
	}
}

// AvailableStaffFunc counts real staff of a role free to take work in the
// given month. Injected so the pure planning math stays testable without a
// database.
type AvailableStaffFunc func(roleID string, month models.Month) (int, error)

// ExpandDemand aggregates each role's required allocation per month across
// every project in the exercise.
func ExpandDemand(exercise *models.PlanningExercise) map[string]models.MonthlySeries {
	demand := make(map[string]models.MonthlySeries)
	for _, project := range exercise.Projects {
		for _, role := range project.Roles {
			series, ok := demand[role.RoleID]
			if !ok {
				series = make(models.MonthlySeries)
				demand[role.RoleID] = series
			}
			for _, m := range role.DemandMonths(project.StartDate, project.DurationMonths) {
				series[m] += float64(role.Count) * role.AllocationPercentage
			}
		}
	}
	return demand
}

// PlanExercise runs the capacity algorithm over an exercise. An exercise
// with no projects or no roles yields an empty report.
func PlanExercise(exercise *models.PlanningExercise, mode models.OverlapMode, available AvailableStaffFunc) (*models.StaffRequirementReport, error) {
	report := &models.StaffRequirementReport{
		ExerciseID: exercise.ID,
		Mode:       mode,
		PerRole:    []models.StaffRequirement{},
	}

	demand := ExpandDemand(exercise)
	if len(demand) == 0 {
		return report, nil
	}

	dedicatedCounts := make(map[string]int)
	for _, project := range exercise.Projects {
		for _, role := range project.Roles {
			dedicatedCounts[role.RoleID] += role.Count
		}
	}

	roleIDs := make([]string, 0, len(demand))
	for roleID := range demand {
		roleIDs = append(roleIDs, roleID)
	}
	sort.Strings(roleIDs)

	for _, roleID := range roleIDs {
		series := demand[roleID]
		req := models.StaffRequirement{RoleID: roleID}

		var peak *models.Month
		for _, m := range series.Months() {
			if peak == nil || series[m] > req.PeakAllocationPercent {
				month := m
				peak = &month
				req.PeakAllocationPercent = series[m]
			}
		}
		req.PeakMonth = peak

		switch mode {
		case models.OverlapModeConservative:
			req.MinimumStaffNeeded = dedicatedCounts[roleID]
		default:
			req.MinimumStaffNeeded = int(math.Ceil(req.PeakAllocationPercent / 100))
		}

		if peak != nil {
			count, err := available(roleID, *peak)
			if err != nil {
				return nil, err
			}
			req.AvailableStaffCount = count
		}
		if hires := req.MinimumStaffNeeded - req.AvailableStaffCount; hires > 0 {
			req.NewHiresNeeded = hires
		}

		report.PerRole = append(report.PerRole, req)
	}
	return report, nil
}

// Plan loads the exercise and runs the capacity algorithm against current
// real staffing data. A staff member counts as available in the peak month
// when their availability window covers it and they carry no allocation in
// it.
func (s *CapacityService) Plan(exerciseID string, mode models.OverlapMode) (*models.StaffRequirementReport, error) {
	exercise, err := s.exerciseRepo.GetByID(exerciseID)
	if err != nil {
		return nil, err
	}
	return PlanExercise(exercise, mode, s.availableStaffIn)
}

func (s *CapacityService) availableStaffIn(roleID string, month models.Month) (int, error) {
	staff, err := s.staffRepo.GetByRoleID(roleID)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range staff {
		if !staff[i].AvailableInMonth(month) {
			continue
		}
		assignments, err := s.assignmentRepo.GetByStaffOverlapping(staff[i].ID, month.Start(), month.End())
		if err != nil {
			return 0, err
		}
		report := DetectInAssignments(staff[i].ID, assignments, month.Start(), month.End())
		if report.TotalFor(month) == 0 {
			count++
		}
	}
	return count, nil
}
