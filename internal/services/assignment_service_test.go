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

func newAssignmentService(t *testing.T) (*AssignmentService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mockDB := &mockDatabase{db: db}
	svc := NewAssignmentService(mockDB, database.NewAssignmentRepository(mockDB), logger)
	return svc, mock, func() { db.Close() }
}

func assignmentRequest() *models.AssignmentRequest {
	return &models.AssignmentRequest{
		StaffID:        "staff-1",
		ProjectID:      "proj-1",
		RoleID:         "role-1",
		StartDate:      "2026-01-01",
		EndDate:        "2026-02-28",
		HoursPerWeek:   40,
		AllocationType: "full",
	}
}

func TestCreateAssignment(t *testing.T) {
	svc, mock, done := newAssignmentService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM assignments`).
		WillReturnRows(assignmentRows())
	mock.ExpectQuery(`INSERT INTO assignments`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	mock.ExpectCommit()

	assignment, report, err := svc.Create(assignmentRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, assignment.ID)
	assert.False(t, report.HasConflicts)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssignmentBlockedByConflict(t *testing.T) {
	svc, mock, done := newAssignmentService(t)
	defer done()

	existing := testAssignment("existing", models.AllocationFull, 0, date(2026, 1, 1), date(2026, 2, 28))

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM assignments`).
		WillReturnRows(assignmentRows(existing))
	mock.ExpectRollback()

	_, report, err := svc.Create(assignmentRequest())
	require.ErrorIs(t, err, ErrOverAllocationBlocked)
	require.NotNil(t, report)
	assert.True(t, report.HasConflicts)
	assert.Equal(t, 200.0, report.MaxTotal())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssignmentOverrideAllowed(t *testing.T) {
	svc, mock, done := newAssignmentService(t)
	defer done()

	existing := testAssignment("existing", models.AllocationFull, 0, date(2026, 1, 1), date(2026, 2, 28))

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM assignments`).
		WillReturnRows(assignmentRows(existing))
	mock.ExpectQuery(`INSERT INTO assignments`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))
	mock.ExpectCommit()

	req := assignmentRequest()
	req.AllowOverAllocation = true

	assignment, report, err := svc.Create(req)
	require.NoError(t, err)
	assert.NotNil(t, assignment)
	// The write goes through, but the report still carries the conflicts.
	assert.True(t, report.HasConflicts)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssignmentRejectsBadDates(t *testing.T) {
	svc, _, done := newAssignmentService(t)
	defer done()

	req := assignmentRequest()
	req.EndDate = "2025-12-01"

	_, _, err := svc.Create(req)
	require.Error(t, err)

	var validation *models.ValidationError
	assert.ErrorAs(t, err, &validation)
}
