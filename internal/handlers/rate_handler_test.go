package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/services"
)

func newRateRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mockDB := &mockDatabase{db: db}
	rateService := services.NewRateService(
		database.NewProjectRepository(mockDB),
		database.NewRoleRepository(mockDB),
		database.NewRoleRateRepository(mockDB),
		database.NewStaffRepository(mockDB),
		database.NewAssignmentRepository(mockDB),
	)
	handler := NewRateHandler(rateService)

	router := gin.New()
	router.GET("/api/v1/projects/:id/roles/:role_id/rate", handler.Resolve)
	return router, mock, func() { db.Close() }
}

func TestRateEndpointDirectOverride(t *testing.T) {
	router, mock, done := newRateRouter(t)
	defer done()

	mock.ExpectQuery(`SELECT project_id, role_id, billable_rate`).
		WithArgs("proj-1", "role-1").
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "role_id", "billable_rate", "created_at"}).
			AddRow("proj-1", "role-1", "125.00", time.Now()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/proj-1/roles/role-1/rate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"source":"project_role_rate"`)
	assert.Contains(t, w.Body.String(), `"125"`)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateEndpointUnknownProject(t *testing.T) {
	router, mock, done := newRateRouter(t)
	defer done()

	mock.ExpectQuery(`SELECT project_id, role_id, billable_rate`).
		WithArgs("missing", "role-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, name, parent_project_id`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/missing/roles/role-1/rate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")

	assert.NoError(t, mock.ExpectationsWereMet())
}

// mockDatabase adapts a sqlmock *sql.DB to the database.DB interface.
type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Begin() (*sql.Tx, error) {
	return m.db.Begin()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}
