package database

import (
	"database/sql"
	"fmt"

	"github.com/planwise/staffing-backend/internal/models"
)

// StaffRepository handles database operations for staff members
type StaffRepository struct {
	db DB
}

// NewStaffRepository creates a new StaffRepository
func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// GetByID retrieves a staff member by ID
func (r *StaffRepository) GetByID(staffID string) (*models.Staff, error) {
	query := `
		SELECT
			id, name, role_id, internal_hourly_cost,
			available_from, available_until, skills, created_at, updated_at
		FROM staff
		WHERE id = $1
	`

	staff := &models.Staff{}
	var availableFrom sql.NullTime
	var availableUntil sql.NullTime

	err := r.db.QueryRow(query, staffID).Scan(
		&staff.ID, &staff.Name, &staff.RoleID, &staff.InternalHourlyCost,
		&availableFrom, &availableUntil, &staff.Skills, &staff.CreatedAt, &staff.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("staff", staffID)
		}
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	if availableFrom.Valid {
		staff.AvailableFrom = &availableFrom.Time
	}
	if availableUntil.Valid {
		staff.AvailableUntil = &availableUntil.Time
	}

	return staff, nil
}

// GetByRoleID retrieves all staff members holding a role
func (r *StaffRepository) GetByRoleID(roleID string) ([]models.Staff, error) {
	query := `
		SELECT
			id, name, role_id, internal_hourly_cost,
			available_from, available_until, skills, created_at, updated_at
		FROM staff
		WHERE role_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(query, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff by role: %w", err)
	}
	defer rows.Close()

	staffList := []models.Staff{}
	for rows.Next() {
		var staff models.Staff
		var availableFrom sql.NullTime
		var availableUntil sql.NullTime

		err := rows.Scan(
			&staff.ID, &staff.Name, &staff.RoleID, &staff.InternalHourlyCost,
			&availableFrom, &availableUntil, &staff.Skills, &staff.CreatedAt, &staff.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff row: %w", err)
		}

		if availableFrom.Valid {
			staff.AvailableFrom = &availableFrom.Time
		}
		if availableUntil.Valid {
			staff.AvailableUntil = &availableUntil.Time
		}

		staffList = append(staffList, staff)
	}

	return staffList, nil
}
