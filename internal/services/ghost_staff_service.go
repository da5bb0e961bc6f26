package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
)

// GhostStaffService drives the placeholder lifecycle: bulk creation from a
// template, replacement with a real assignment, and deletion. Replaced and
// Deleted are terminal.
type GhostStaffService struct {
	db             database.DB
	ghostRepo      *database.GhostStaffRepository
	assignmentRepo *database.AssignmentRepository
	projectRepo    *database.ProjectRepository
	templateRepo   *database.TemplateRepository
	logger         *logrus.Logger
}

// NewGhostStaffService creates a new GhostStaffService
func NewGhostStaffService(
	db database.DB,
	ghostRepo *database.GhostStaffRepository,
	assignmentRepo *database.AssignmentRepository,
	projectRepo *database.ProjectRepository,
	templateRepo *database.TemplateRepository,
	logger *logrus.Logger,
) *GhostStaffService {
	return &GhostStaffService{
		db:             db,
		ghostRepo:      ghostRepo,
		assignmentRepo: assignmentRepo,
		projectRepo:    projectRepo,
		templateRepo:   templateRepo,
		logger:         logger,
	}
}

// Replace turns an active ghost into a real assignment mirroring the
// ghost's role, project, dates and hours. The assignment insert and the
// state flip commit in one transaction; a ghost that left the active state
// between read and update rolls the whole thing back.
func (s *GhostStaffService) Replace(ghostID string, req *models.ReplaceGhostRequest) (*models.Assignment, error) {
	ghost, err := s.ghostRepo.GetByID(ghostID)
	if err != nil {
		return nil, err
	}
	if ghost.State != models.GhostStateActive {
		return nil, models.NewInvalidStateError("ghost staff", ghostID, string(ghost.State))
	}

	assignment := &models.Assignment{
		ID:                   uuid.New().String(),
		StaffID:              req.StaffID,
		ProjectID:            ghost.ProjectID,
		RoleID:               ghost.RoleID,
		StartDate:            ghost.StartDate,
		EndDate:              ghost.EndDate,
		HoursPerWeek:         ghost.HoursPerWeek,
		AllocationType:       models.AllocationFull,
		AllocationPercentage: 100,
	}
	if req.AllocationType != nil {
		allocType, err := models.ParseAllocationType(*req.AllocationType)
		if err != nil {
			return nil, err
		}
		assignment.AllocationType = allocType
	}
	if req.AllocationPercentage != nil {
		assignment.AllocationPercentage = *req.AllocationPercentage
	}
	if err := assignment.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.assignmentRepo.CreateTx(tx, assignment); err != nil {
		return nil, err
	}
	rows, err := s.ghostRepo.MarkReplacedTx(tx, ghostID, assignment.ID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.NewInvalidStateError("ghost staff", ghostID, "no longer active")
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"ghost_id":      ghostID,
		"assignment_id": assignment.ID,
		"staff_id":      req.StaffID,
	}).Info("Ghost staff replaced with assignment")

	return assignment, nil
}

// Delete terminally removes an active ghost.
func (s *GhostStaffService) Delete(ghostID string) error {
	ghost, err := s.ghostRepo.GetByID(ghostID)
	if err != nil {
		return err
	}
	if ghost.State != models.GhostStateActive {
		return models.NewInvalidStateError("ghost staff", ghostID, string(ghost.State))
	}

	rows, err := s.ghostRepo.MarkDeleted(ghostID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewInvalidStateError("ghost staff", ghostID, "no longer active")
	}
	return nil
}

// ApplyTemplate creates one active ghost per unit of count on each template
// role, dated from the project's start by the role's month offsets. All
// ghosts commit together or not at all.
func (s *GhostStaffService) ApplyTemplate(projectID, templateID string) ([]models.GhostStaff, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project.StartDate == nil {
		return nil, models.NewValidationError("project %s has no start date to anchor template offsets", projectID)
	}
	template, err := s.templateRepo.GetByID(templateID)
	if err != nil {
		return nil, err
	}

	var ghosts []*models.GhostStaff
	for _, role := range template.Roles {
		if role.EndMonthOffset <= role.StartMonthOffset {
			return nil, models.NewValidationError(
				"template role %s: end_month_offset must be greater than start_month_offset", role.ID)
		}
		start := project.StartDate.AddDate(0, role.StartMonthOffset, 0)
		end := project.StartDate.AddDate(0, role.EndMonthOffset, -1)
		for i := 0; i < role.Count; i++ {
			ghosts = append(ghosts, &models.GhostStaff{
				ID:           uuid.New().String(),
				RoleID:       role.RoleID,
				ProjectID:    projectID,
				HoursPerWeek: role.HoursPerWeek,
				StartDate:    start,
				EndDate:      end,
				State:        models.GhostStateActive,
			})
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.ghostRepo.CreateBatchTx(tx, ghosts); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"project_id":  projectID,
		"template_id": templateID,
		"ghosts":      len(ghosts),
	}).Info("Template applied to project")

	created := make([]models.GhostStaff, len(ghosts))
	for i, g := range ghosts {
		created[i] = *g
	}
	return created, nil
}
