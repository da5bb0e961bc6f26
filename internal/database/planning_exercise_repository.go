package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/planwise/staffing-backend/internal/models"
)

// PlanningExerciseRepository handles database operations for planning
// exercises and their nested projects and role requirements.
type PlanningExerciseRepository struct {
	db DB
}

// NewPlanningExerciseRepository creates a new PlanningExerciseRepository
func NewPlanningExerciseRepository(db DB) *PlanningExerciseRepository {
	return &PlanningExerciseRepository{db: db}
}

// GetByID retrieves a planning exercise with its projects and roles loaded.
func (r *PlanningExerciseRepository) GetByID(exerciseID string) (*models.PlanningExercise, error) {
	query := `SELECT id, name, status, created_at, updated_at
		FROM planning_exercises WHERE id = $1`

	ex := &models.PlanningExercise{}
	err := r.db.QueryRow(query, exerciseID).Scan(
		&ex.ID, &ex.Name, &ex.Status, &ex.CreatedAt, &ex.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("planning exercise", exerciseID)
		}
		return nil, fmt.Errorf("failed to fetch planning exercise: %w", err)
	}

	projects, err := r.getProjects(exerciseID)
	if err != nil {
		return nil, err
	}
	ex.Projects = projects
	return ex, nil
}

func (r *PlanningExerciseRepository) getProjects(exerciseID string) ([]models.PlanningProject, error) {
	query := `SELECT id, exercise_id, name, start_date, duration_months
		FROM planning_projects
		WHERE exercise_id = $1
		ORDER BY start_date, id`

	rows, err := r.db.Query(query, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch planning projects: %w", err)
	}
	defer rows.Close()

	var projects []models.PlanningProject
	var projectIDs []string
	for rows.Next() {
		var p models.PlanningProject
		err := rows.Scan(&p.ID, &p.ExerciseID, &p.Name, &p.StartDate, &p.DurationMonths)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planning project: %w", err)
		}
		projects = append(projects, p)
		projectIDs = append(projectIDs, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return projects, nil
	}

	rolesByProject, err := r.getRoles(projectIDs)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Roles = rolesByProject[projects[i].ID]
	}
	return projects, nil
}

func (r *PlanningExerciseRepository) getRoles(projectIDs []string) (map[string][]models.PlanningRole, error) {
	query := `SELECT id, planning_project_id, role_id, count,
			start_month_offset, end_month_offset, allocation_percentage, hours_per_week
		FROM planning_roles
		WHERE planning_project_id = ANY($1)
		ORDER BY planning_project_id, id`

	rows, err := r.db.Query(query, pq.Array(projectIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch planning roles: %w", err)
	}
	defer rows.Close()

	byProject := make(map[string][]models.PlanningRole)
	for rows.Next() {
		var role models.PlanningRole
		err := rows.Scan(
			&role.ID, &role.PlanningProjectID, &role.RoleID, &role.Count,
			&role.StartMonthOffset, &role.EndMonthOffset,
			&role.AllocationPercentage, &role.HoursPerWeek,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planning role: %w", err)
		}
		byProject[role.PlanningProjectID] = append(byProject[role.PlanningProjectID], role)
	}
	return byProject, rows.Err()
}
