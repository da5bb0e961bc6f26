package database

import (
	"database/sql"
	"fmt"

	"github.com/planwise/staffing-backend/internal/models"
	"github.com/shopspring/decimal"
)

// RoleRepository handles database operations for roles
type RoleRepository struct {
	db DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetByID retrieves a role by ID
func (r *RoleRepository) GetByID(roleID string) (*models.Role, error) {
	query := `
		SELECT id, name, hourly_cost, default_billable_rate, created_at, updated_at
		FROM roles
		WHERE id = $1
	`

	role := &models.Role{}
	var defaultBillableRate decimal.NullDecimal

	err := r.db.QueryRow(query, roleID).Scan(
		&role.ID, &role.Name, &role.HourlyCost, &defaultBillableRate,
		&role.CreatedAt, &role.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("role", roleID)
		}
		return nil, fmt.Errorf("failed to fetch role: %w", err)
	}

	if defaultBillableRate.Valid {
		role.DefaultBillableRate = &defaultBillableRate.Decimal
	}

	return role, nil
}
