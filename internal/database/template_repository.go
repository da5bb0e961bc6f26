package database

import (
	"database/sql"
	"fmt"

	"github.com/planwise/staffing-backend/internal/models"
)

// TemplateRepository handles database operations for staffing templates
type TemplateRepository struct {
	db DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetByID retrieves a template with its role requirements loaded.
func (r *TemplateRepository) GetByID(templateID string) (*models.Template, error) {
	query := `SELECT id, name, created_at, updated_at FROM templates WHERE id = $1`

	t := &models.Template{}
	err := r.db.QueryRow(query, templateID).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("template", templateID)
		}
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}

	rolesQuery := `SELECT id, template_id, role_id, count,
			start_month_offset, end_month_offset, hours_per_week, allocation_percentage
		FROM template_roles
		WHERE template_id = $1
		ORDER BY id`

	rows, err := r.db.Query(rolesQuery, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template roles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role models.TemplateRole
		err := rows.Scan(
			&role.ID, &role.TemplateID, &role.RoleID, &role.Count,
			&role.StartMonthOffset, &role.EndMonthOffset,
			&role.HoursPerWeek, &role.AllocationPercentage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template role: %w", err)
		}
		t.Roles = append(t.Roles, role)
	}
	return t, rows.Err()
}
