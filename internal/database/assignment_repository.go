package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/planwise/staffing-backend/internal/models"
)

const assignmentColumns = `
	id, staff_id, project_id, role_id, start_date, end_date,
	hours_per_week, allocation_type, allocation_percentage,
	monthly_allocations, allow_over_allocation, created_at, updated_at
`

// AssignmentRepository handles database operations for assignments
type AssignmentRepository struct {
	db DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssignment(row rowScanner) (*models.Assignment, error) {
	a := &models.Assignment{}
	err := row.Scan(
		&a.ID, &a.StaffID, &a.ProjectID, &a.RoleID, &a.StartDate, &a.EndDate,
		&a.HoursPerWeek, &a.AllocationType, &a.AllocationPercentage,
		&a.MonthlyAllocations, &a.AllowOverAllocation, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(assignmentID string) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`

	a, err := scanAssignment(r.db.QueryRow(query, assignmentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("assignment", assignmentID)
		}
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}

	return a, nil
}

// GetByStaffOverlapping retrieves all of a staff member's assignments whose
// window intersects [from, to].
func (r *AssignmentRepository) GetByStaffOverlapping(staffID string, from, to time.Time) ([]models.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE staff_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date, id
	`

	rows, err := r.db.Query(query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

// GetByStaffOverlappingTx is GetByStaffOverlapping inside a transaction,
// used to re-validate conflicts in the same transaction that commits a
// write.
func (r *AssignmentRepository) GetByStaffOverlappingTx(tx *sql.Tx, staffID string, from, to time.Time) ([]models.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE staff_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date, id
	`

	rows, err := tx.Query(query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

func collectAssignments(rows *sql.Rows) ([]models.Assignment, error) {
	assignments := []models.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments = append(assignments, *a)
	}
	return assignments, nil
}

// CreateTx inserts an assignment inside a transaction
func (r *AssignmentRepository) CreateTx(tx *sql.Tx, a *models.Assignment) error {
	query := `
		INSERT INTO assignments (
			id, staff_id, project_id, role_id, start_date, end_date,
			hours_per_week, allocation_type, allocation_percentage,
			monthly_allocations, allow_over_allocation
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(
		query,
		a.ID, a.StaffID, a.ProjectID, a.RoleID, a.StartDate, a.EndDate,
		a.HoursPerWeek, a.AllocationType, a.AllocationPercentage,
		a.MonthlyAllocations, a.AllowOverAllocation,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

// UpdateTx replaces an assignment's fields inside a transaction
func (r *AssignmentRepository) UpdateTx(tx *sql.Tx, a *models.Assignment) error {
	query := `
		UPDATE assignments
		SET staff_id = $2, project_id = $3, role_id = $4, start_date = $5,
			end_date = $6, hours_per_week = $7, allocation_type = $8,
			allocation_percentage = $9, monthly_allocations = $10,
			allow_over_allocation = $11, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(
		query,
		a.ID, a.StaffID, a.ProjectID, a.RoleID, a.StartDate, a.EndDate,
		a.HoursPerWeek, a.AllocationType, a.AllocationPercentage,
		a.MonthlyAllocations, a.AllowOverAllocation,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.NewNotFoundError("assignment", a.ID)
	}

	return nil
}

// Delete removes an assignment
func (r *AssignmentRepository) Delete(assignmentID string) error {
	query := `DELETE FROM assignments WHERE id = $1`

	result, err := r.db.Exec(query, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.NewNotFoundError("assignment", assignmentID)
	}

	return nil
}
