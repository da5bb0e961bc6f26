package services

import (
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
)

func newGhostService(t *testing.T) (*GhostStaffService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mockDB := &mockDatabase{db: db}
	svc := NewGhostStaffService(
		mockDB,
		database.NewGhostStaffRepository(mockDB),
		database.NewAssignmentRepository(mockDB),
		database.NewProjectRepository(mockDB),
		database.NewTemplateRepository(mockDB),
		logger,
	)
	return svc, mock, func() { db.Close() }
}

func ghostRow(id string, state models.GhostState) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "role_id", "project_id", "hours_per_week", "start_date", "end_date",
		"state", "replaced_by_assignment_id", "created_at", "updated_at",
	}).AddRow(id, "role-1", "proj-1", 40.0, date(2026, 1, 1), date(2026, 6, 30), state, nil, now, now)
}

func TestReplaceGhost(t *testing.T) {
	svc, mock, done := newGhostService(t)
	defer done()

	mock.ExpectQuery(`FROM ghost_staff`).
		WithArgs("ghost-1").
		WillReturnRows(ghostRow("ghost-1", models.GhostStateActive))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO assignments`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	mock.ExpectExec(`UPDATE ghost_staff`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assignment, err := svc.Replace("ghost-1", &models.ReplaceGhostRequest{StaffID: "staff-9"})
	require.NoError(t, err)
	assert.Equal(t, "staff-9", assignment.StaffID)
	assert.Equal(t, "proj-1", assignment.ProjectID)
	assert.Equal(t, "role-1", assignment.RoleID)
	assert.Equal(t, models.AllocationFull, assignment.AllocationType)
	assert.Equal(t, date(2026, 1, 1), assignment.StartDate)
	assert.Equal(t, date(2026, 6, 30), assignment.EndDate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceGhostAlreadyReplaced(t *testing.T) {
	svc, mock, done := newGhostService(t)
	defer done()

	mock.ExpectQuery(`FROM ghost_staff`).
		WithArgs("ghost-1").
		WillReturnRows(ghostRow("ghost-1", models.GhostStateReplaced))

	_, err := svc.Replace("ghost-1", &models.ReplaceGhostRequest{StaffID: "staff-9"})
	require.Error(t, err)

	var invalidState *models.InvalidStateError
	assert.ErrorAs(t, err, &invalidState)

	// No transaction is opened and no assignment is written.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceGhostLostRace(t *testing.T) {
	svc, mock, done := newGhostService(t)
	defer done()

	// The ghost looked active at read time but left the state before the
	// guarded update ran. The whole transaction rolls back.
	mock.ExpectQuery(`FROM ghost_staff`).
		WithArgs("ghost-1").
		WillReturnRows(ghostRow("ghost-1", models.GhostStateActive))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO assignments`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	mock.ExpectExec(`UPDATE ghost_staff`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Replace("ghost-1", &models.ReplaceGhostRequest{StaffID: "staff-9"})
	require.Error(t, err)

	var invalidState *models.InvalidStateError
	assert.ErrorAs(t, err, &invalidState)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGhost(t *testing.T) {
	svc, mock, done := newGhostService(t)
	defer done()

	mock.ExpectQuery(`FROM ghost_staff`).
		WithArgs("ghost-1").
		WillReturnRows(ghostRow("ghost-1", models.GhostStateActive))
	mock.ExpectExec(`UPDATE ghost_staff`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, svc.Delete("ghost-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGhostTerminalState(t *testing.T) {
	svc, mock, done := newGhostService(t)
	defer done()

	mock.ExpectQuery(`FROM ghost_staff`).
		WithArgs("ghost-1").
		WillReturnRows(ghostRow("ghost-1", models.GhostStateDeleted))

	err := svc.Delete("ghost-1")
	require.Error(t, err)

	var invalidState *models.InvalidStateError
	assert.ErrorAs(t, err, &invalidState)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTemplate(t *testing.T) {
	svc, mock, done := newGhostService(t)
	defer done()

	now := time.Now()
	projectStart := date(2026, 3, 1)
	mock.ExpectQuery(`FROM projects`).
		WithArgs("proj-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "parent_project_id", "is_folder", "status",
			"start_date", "end_date", "created_at", "updated_at",
		}).AddRow("proj-1", "Rollout", nil, false, "planned", projectStart, nil, now, now))
	mock.ExpectQuery(`FROM templates`).
		WithArgs("tmpl-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow("tmpl-1", "Standard Delivery", now, now))
	mock.ExpectQuery(`FROM template_roles`).
		WithArgs("tmpl-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "template_id", "role_id", "count",
			"start_month_offset", "end_month_offset", "hours_per_week", "allocation_percentage",
		}).AddRow("tr-1", "tmpl-1", "role-1", 2, 0, 3, 40.0, 100.0))

	mock.ExpectBegin()
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`INSERT INTO ghost_staff`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now))
	}
	mock.ExpectCommit()

	ghosts, err := svc.ApplyTemplate("proj-1", "tmpl-1")
	require.NoError(t, err)
	require.Len(t, ghosts, 2)
	for _, g := range ghosts {
		assert.Equal(t, models.GhostStateActive, g.State)
		assert.Equal(t, projectStart, g.StartDate)
		assert.Equal(t, date(2026, 5, 31), g.EndDate)
		assert.Equal(t, "role-1", g.RoleID)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyTemplateInvertedOffsets(t *testing.T) {
	svc, mock, done := newGhostService(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery(`FROM projects`).
		WithArgs("proj-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "parent_project_id", "is_folder", "status",
			"start_date", "end_date", "created_at", "updated_at",
		}).AddRow("proj-1", "Rollout", nil, false, "planned", date(2026, 3, 1), nil, now, now))
	mock.ExpectQuery(`FROM templates`).
		WithArgs("tmpl-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow("tmpl-1", "Standard Delivery", now, now))
	mock.ExpectQuery(`FROM template_roles`).
		WithArgs("tmpl-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "template_id", "role_id", "count",
			"start_month_offset", "end_month_offset", "hours_per_week", "allocation_percentage",
		}).AddRow("tr-1", "tmpl-1", "role-1", 1, 3, 3, 40.0, 100.0))

	_, err := svc.ApplyTemplate("proj-1", "tmpl-1")
	require.Error(t, err)

	var validation *models.ValidationError
	assert.ErrorAs(t, err, &validation)

	assert.NoError(t, mock.ExpectationsWereMet())
}
