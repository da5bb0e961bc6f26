package database

import (
	"database/sql"
	"fmt"

	"github.com/planwise/staffing-backend/internal/models"
)

const ghostColumns = `
	id, role_id, project_id, hours_per_week, start_date, end_date,
	state, replaced_by_assignment_id, created_at, updated_at
`

// GhostStaffRepository handles database operations for ghost staff
type GhostStaffRepository struct {
	db DB
}

// NewGhostStaffRepository creates a new GhostStaffRepository
func NewGhostStaffRepository(db DB) *GhostStaffRepository {
	return &GhostStaffRepository{db: db}
}

func scanGhost(row rowScanner) (*models.GhostStaff, error) {
	g := &models.GhostStaff{}
	var replacedBy sql.NullString
	err := row.Scan(
		&g.ID, &g.RoleID, &g.ProjectID, &g.HoursPerWeek, &g.StartDate, &g.EndDate,
		&g.State, &replacedBy, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if replacedBy.Valid {
		g.ReplacedByAssignmentID = &replacedBy.String
	}
	return g, nil
}

// GetByID retrieves a ghost staff record by ID
func (r *GhostStaffRepository) GetByID(ghostID string) (*models.GhostStaff, error) {
	query := `SELECT ` + ghostColumns + ` FROM ghost_staff WHERE id = $1`

	g, err := scanGhost(r.db.QueryRow(query, ghostID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NewNotFoundError("ghost staff", ghostID)
		}
		return nil, fmt.Errorf("failed to fetch ghost staff: %w", err)
	}

	return g, nil
}

// GetByProjectID retrieves all ghost staff for a project, active first.
func (r *GhostStaffRepository) GetByProjectID(projectID string) ([]models.GhostStaff, error) {
	query := `SELECT ` + ghostColumns + ` FROM ghost_staff
		WHERE project_id = $1
		ORDER BY state, start_date, id`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ghost staff for project: %w", err)
	}
	defer rows.Close()

	var ghosts []models.GhostStaff
	for rows.Next() {
		g, err := scanGhost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ghost staff: %w", err)
		}
		ghosts = append(ghosts, *g)
	}
	return ghosts, rows.Err()
}

// CreateBatchTx inserts a batch of ghost staff records inside a transaction.
// Timestamps are filled in from the returned values.
func (r *GhostStaffRepository) CreateBatchTx(tx *sql.Tx, ghosts []*models.GhostStaff) error {
	query := `INSERT INTO ghost_staff (
			id, role_id, project_id, hours_per_week, start_date, end_date, state
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	for _, g := range ghosts {
		err := tx.QueryRow(query,
			g.ID, g.RoleID, g.ProjectID, g.HoursPerWeek, g.StartDate, g.EndDate, g.State,
		).Scan(&g.CreatedAt, &g.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create ghost staff: %w", err)
		}
	}
	return nil
}

// MarkReplacedTx marks an active ghost as replaced by the given assignment.
// It returns the number of rows updated; zero means the ghost was not in the
// active state and the caller should roll back.
func (r *GhostStaffRepository) MarkReplacedTx(tx *sql.Tx, ghostID, assignmentID string) (int64, error) {
	query := `UPDATE ghost_staff
		SET state = $2, replaced_by_assignment_id = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND state = $4`

	result, err := tx.Exec(query, ghostID, models.GhostStateReplaced, assignmentID, models.GhostStateActive)
	if err != nil {
		return 0, fmt.Errorf("failed to mark ghost staff replaced: %w", err)
	}
	return result.RowsAffected()
}

// MarkDeleted marks an active ghost as deleted. Returns the number of rows
// updated; zero means the ghost was already replaced or deleted.
func (r *GhostStaffRepository) MarkDeleted(ghostID string) (int64, error) {
	query := `UPDATE ghost_staff
		SET state = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND state = $3`

	result, err := r.db.Exec(query, ghostID, models.GhostStateDeleted, models.GhostStateActive)
	if err != nil {
		return 0, fmt.Errorf("failed to mark ghost staff deleted: %w", err)
	}
	return result.RowsAffected()
}
