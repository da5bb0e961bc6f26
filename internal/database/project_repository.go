package database

import (
	"database/sql"
	"fmt"

	"github.com/planwise/staffing-backend/internal/models"
)

// ProjectRepository handles database operations for projects and folders
type ProjectRepository struct {
	db DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(projectID string) (*models.Project, error) {
	query := `
		SELECT id, name, parent_project_id, is_folder, status, start_date, end_date, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	project := &models.Project{}
	var parentProjectID sql.NullString
	var startDate sql.NullTime
	var endDate sql.NullTime

	err := r.db.QueryRow(query, projectID).Scan(
		&project.ID, &project.Name, &parentProjectID, &project.IsFolder,
		&project.Status, &startDate, &endDate, &project.CreatedAt, &project.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("project", projectID)
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	if parentProjectID.Valid {
		project.ParentProjectID = &parentProjectID.String
	}
	if startDate.Valid {
		project.StartDate = &startDate.Time
	}
	if endDate.Valid {
		project.EndDate = &endDate.Time
	}

	return project, nil
}
