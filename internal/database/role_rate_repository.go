package database

import (
	"database/sql"
	"fmt"

	"github.com/planwise/staffing-backend/internal/models"
)

// RoleRateRepository handles database operations for role-rate overrides
type RoleRateRepository struct {
	db DB
}

// NewRoleRateRepository creates a new RoleRateRepository
func NewRoleRateRepository(db DB) *RoleRateRepository {
	return &RoleRateRepository{db: db}
}

// GetByProjectAndRole retrieves the rate override for a (project, role)
// pair. Returns nil without error when no override exists at that level;
// rate resolution then walks up the project ancestry.
func (r *RoleRateRepository) GetByProjectAndRole(projectID, roleID string) (*models.RoleRate, error) {
	query := `
		SELECT project_id, role_id, billable_rate, created_at
		FROM role_rates
		WHERE project_id = $1 AND role_id = $2
	`

	rate := &models.RoleRate{}
	err := r.db.QueryRow(query, projectID, roleID).Scan(
		&rate.ProjectID, &rate.RoleID, &rate.BillableRate, &rate.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch role rate: %w", err)
	}

	return rate, nil
}
