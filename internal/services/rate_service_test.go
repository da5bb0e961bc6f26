package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
)

func newRateService(t *testing.T) (*RateService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mockDB := &mockDatabase{db: db}
	svc := NewRateService(
		database.NewProjectRepository(mockDB),
		database.NewRoleRepository(mockDB),
		database.NewRoleRateRepository(mockDB),
		database.NewStaffRepository(mockDB),
		database.NewAssignmentRepository(mockDB),
	)
	return svc, mock, func() { db.Close() }
}

func roleRateRow(projectID, roleID, rate string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"project_id", "role_id", "billable_rate", "created_at"}).
		AddRow(projectID, roleID, rate, time.Now())
}

func projectRow(id string, parentID interface{}) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "parent_project_id", "is_folder", "status",
		"start_date", "end_date", "created_at", "updated_at",
	}).AddRow(id, "Project "+id, parentID, false, "active", nil, nil, now, now)
}

func TestResolveRateDirectOverride(t *testing.T) {
	svc, mock, done := newRateService(t)
	defer done()

	mock.ExpectQuery(`SELECT project_id, role_id, billable_rate`).
		WithArgs("proj-1", "role-1").
		WillReturnRows(roleRateRow("proj-1", "role-1", "150.00"))

	resolution, err := svc.ResolveRate("proj-1", "role-1")
	require.NoError(t, err)
	assert.Equal(t, models.RateSourceProjectRoleRate, resolution.Source)
	require.NotNil(t, resolution.Rate)
	assert.Equal(t, "150", resolution.Rate.String())
	assert.Nil(t, resolution.SourceProjectID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRateInheritedFromGrandparent(t *testing.T) {
	svc, mock, done := newRateService(t)
	defer done()

	// Three-level chain: only the grandparent folder defines a rate.
	mock.ExpectQuery(`SELECT project_id, role_id, billable_rate`).
		WithArgs("child", "role-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, name, parent_project_id`).
		WithArgs("child").
		WillReturnRows(projectRow("child", "parent"))
	mock.ExpectQuery(`SELECT project_id, role_id, billable_rate`).
		WithArgs("parent", "role-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, name, parent_project_id`).
		WithArgs("parent").
		WillReturnRows(projectRow("parent", "grandparent"))
	mock.ExpectQuery(`SELECT project_id, role_id, billable_rate`).
		WithArgs("grandparent", "role-1").
		WillReturnRows(roleRateRow("grandparent", "role-1", "95.50"))

	resolution, err := svc.ResolveRate("child", "role-1")
	require.NoError(t, err)
	assert.Equal(t, models.RateSourceInheritedProjectRoleRate, resolution.Source)
	require.NotNil(t, resolution.Rate)
	assert.Equal(t, "95.5", resolution.Rate.String())
	require.NotNil(t, resolution.SourceProjectID)
	assert.Equal(t, "grandparent", *resolution.SourceProjectID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRateFallsBackToRoleDefault(t *testing.T) {
	svc, mock, done := newRateService(t)
	defer done()

	mock.ExpectQuery(`SELECT project_id, role_id, billable_rate`).
		WithArgs("proj-1", "role-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, name, parent_project_id`).
		WithArgs("proj-1").
		WillReturnRows(projectRow("proj-1", nil))

	now := time.Now()
	mock.ExpectQuery(`SELECT id, name, hourly_cost, default_billable_rate`).
		WithArgs("role-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "hourly_cost", "default_billable_rate", "created_at", "updated_at",
		}).AddRow("role-1", "Engineer", "80.00", "110.00", now, now))

	resolution, err := svc.ResolveRate("proj-1", "role-1")
	require.NoError(t, err)
	assert.Equal(t, models.RateSourceRoleDefaultBillableRate, resolution.Source)
	require.NotNil(t, resolution.Rate)
	assert.Equal(t, "110", resolution.Rate.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRateNone(t *testing.T) {
	svc, mock, done := newRateService(t)
	defer done()

	mock.ExpectQuery(`SELECT project_id, role_id, billable_rate`).
		WithArgs("proj-1", "role-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, name, parent_project_id`).
		WithArgs("proj-1").
		WillReturnRows(projectRow("proj-1", nil))

	now := time.Now()
	mock.ExpectQuery(`SELECT id, name, hourly_cost, default_billable_rate`).
		WithArgs("role-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "hourly_cost", "default_billable_rate", "created_at", "updated_at",
		}).AddRow("role-1", "Engineer", "80.00", nil, now, now))

	resolution, err := svc.ResolveRate("proj-1", "role-1")
	require.NoError(t, err)
	assert.Equal(t, models.RateSourceNone, resolution.Source)
	assert.Nil(t, resolution.Rate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRateCyclicAncestryFaults(t *testing.T) {
	svc, mock, done := newRateService(t)
	defer done()

	mock.ExpectQuery(`SELECT project_id, role_id, billable_rate`).
		WithArgs("a", "role-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, name, parent_project_id`).
		WithArgs("a").
		WillReturnRows(projectRow("a", "b"))
	mock.ExpectQuery(`SELECT project_id, role_id, billable_rate`).
		WithArgs("b", "role-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, name, parent_project_id`).
		WithArgs("b").
		WillReturnRows(projectRow("b", "a"))

	_, err := svc.ResolveRate("a", "role-1")
	require.Error(t, err)

	var fault *models.ConfigurationFault
	assert.ErrorAs(t, err, &fault)

	assert.NoError(t, mock.ExpectationsWereMet())
}
