package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
)

// ErrOverAllocationBlocked signals that a write was refused because the
// resulting schedule would over-allocate the staff member and the caller
// did not set allow_over_allocation. The accompanying conflict report
// carries the detail.
var ErrOverAllocationBlocked = errors.New("assignment would over-allocate staff member")

// AssignmentService persists assignments. Conflict validation runs inside
// the same transaction that commits the write, against a fresh read of the
// staff member's current assignments, so two concurrent writes cannot both
// slip past validation.
type AssignmentService struct {
	db             database.DB
	assignmentRepo *database.AssignmentRepository
	logger         *logrus.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(db database.DB, assignmentRepo *database.AssignmentRepository, logger *logrus.Logger) *AssignmentService {
	return &AssignmentService{db: db, assignmentRepo: assignmentRepo, logger: logger}
}

// Create validates and inserts a new assignment. The conflict report is
// returned even on success so callers can warn about permitted
// over-allocation.
func (s *AssignmentService) Create(req *models.AssignmentRequest) (*models.Assignment, *models.ConflictReport, error) {
	assignment, err := req.ToAssignment(uuid.New().String())
	if err != nil {
		return nil, nil, err
	}
	report, err := s.commit(assignment, func(tx *sql.Tx) error {
		return s.assignmentRepo.CreateTx(tx, assignment)
	})
	if err != nil {
		return nil, report, err
	}

	s.logger.WithFields(logrus.Fields{
		"assignment_id": assignment.ID,
		"staff_id":      assignment.StaffID,
		"project_id":    assignment.ProjectID,
		"conflicts":     report.HasConflicts,
	}).Info("Assignment created")
	return assignment, report, nil
}

// Update validates and replaces an existing assignment. The persisted
// version of the assignment is excluded from the validation batch so the
// edit is judged on its own merits.
func (s *AssignmentService) Update(assignmentID string, req *models.AssignmentRequest) (*models.Assignment, *models.ConflictReport, error) {
	if _, err := s.assignmentRepo.GetByID(assignmentID); err != nil {
		return nil, nil, err
	}
	assignment, err := req.ToAssignment(assignmentID)
	if err != nil {
		return nil, nil, err
	}
	report, err := s.commit(assignment, func(tx *sql.Tx) error {
		return s.assignmentRepo.UpdateTx(tx, assignment)
	})
	if err != nil {
		return nil, report, err
	}
	return assignment, report, nil
}

// Validate dry-runs an assignment request against a staff member's current
// schedule without writing anything. A non-empty assignmentID treats the
// request as an edit of that record.
func (s *AssignmentService) Validate(req *models.AssignmentRequest, assignmentID string) (*models.ConflictReport, error) {
	assignment, err := req.ToAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	existing, err := s.assignmentRepo.GetByStaffOverlapping(assignment.StaffID, assignment.StartDate, assignment.EndDate)
	if err != nil {
		return nil, err
	}
	return ValidateCandidate(assignment, existing), nil
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(assignmentID string) error {
	return s.assignmentRepo.Delete(assignmentID)
}

func (s *AssignmentService) commit(assignment *models.Assignment, write func(*sql.Tx) error) (*models.ConflictReport, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.assignmentRepo.GetByStaffOverlappingTx(tx, assignment.StaffID, assignment.StartDate, assignment.EndDate)
	if err != nil {
		return nil, err
	}
	report := ValidateCandidate(assignment, existing)
	if report.HasConflicts && !assignment.AllowOverAllocation {
		return report, ErrOverAllocationBlocked
	}

	if err := write(tx); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return report, nil
}

// Get fetches an assignment by id.
func (s *AssignmentService) Get(assignmentID string) (*models.Assignment, error) {
	return s.assignmentRepo.GetByID(assignmentID)
}
