package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
)

func defaultWeights() SuggestionWeights {
	return SuggestionWeights{
		AvailabilityWeight: 0.6,
		SkillMatchBonus:    5,
		MaxSkillBonus:      20,
		LoadPenaltyWeight:  0.2,
	}
}

func newSuggestionService(t *testing.T) (*SuggestionService, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mockDB := &mockDatabase{db: db}
	svc := NewSuggestionService(
		database.NewStaffRepository(mockDB),
		database.NewAssignmentRepository(mockDB),
		defaultWeights(),
	)
	return svc, mock, func() { db.Close() }
}

func staffRows(entries ...[]interface{}) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "role_id", "internal_hourly_cost",
		"available_from", "available_until", "skills", "created_at", "updated_at",
	})
	now := time.Now()
	for _, e := range entries {
		rows.AddRow(e[0], e[1], "role-1", "50.00", nil, nil, e[2], now, now)
	}
	return rows
}

func assignmentRows(entries ...models.Assignment) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "staff_id", "project_id", "role_id", "start_date", "end_date",
		"hours_per_week", "allocation_type", "allocation_percentage",
		"monthly_allocations", "allow_over_allocation", "created_at", "updated_at",
	})
	now := time.Now()
	for _, a := range entries {
		rows.AddRow(a.ID, a.StaffID, a.ProjectID, a.RoleID, a.StartDate, a.EndDate,
			a.HoursPerWeek, a.AllocationType, a.AllocationPercentage,
			nil, a.AllowOverAllocation, now, now)
	}
	return rows
}

func TestSuggestExcludesOverloaded(t *testing.T) {
	svc, mock, done := newSuggestionService(t)
	defer done()

	mock.ExpectQuery(`FROM staff`).
		WithArgs("role-1").
		WillReturnRows(staffRows(
			[]interface{}{"s-busy", "Busy", []byte("{}")},
			[]interface{}{"s-free", "Free", []byte("{}")},
		))

	busy := testAssignment("a1", models.AllocationPercentageTotal, 80, date(2026, 1, 1), date(2026, 3, 31))
	busy.StaffID = "s-busy"
	mock.ExpectQuery(`FROM assignments`).
		WithArgs("s-busy", date(2026, 1, 1), date(2026, 2, 28)).
		WillReturnRows(assignmentRows(busy))
	mock.ExpectQuery(`FROM assignments`).
		WithArgs("s-free", date(2026, 1, 1), date(2026, 2, 28)).
		WillReturnRows(assignmentRows())

	suggestions, err := svc.Suggest("role-1", date(2026, 1, 1), date(2026, 2, 28), 50, nil)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "s-free", suggestions[0].StaffID)
	assert.Equal(t, 100.0, suggestions[0].AvailableAllocation)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestRanksByScore(t *testing.T) {
	svc, mock, done := newSuggestionService(t)
	defer done()

	mock.ExpectQuery(`FROM staff`).
		WithArgs("role-1").
		WillReturnRows(staffRows(
			[]interface{}{"s-half", "Half Loaded", []byte("{}")},
			[]interface{}{"s-idle", "Idle", []byte("{}")},
		))

	half := testAssignment("a1", models.AllocationPercentageTotal, 50, date(2026, 1, 1), date(2026, 1, 31))
	half.StaffID = "s-half"
	mock.ExpectQuery(`FROM assignments`).
		WithArgs("s-half", date(2026, 1, 1), date(2026, 1, 31)).
		WillReturnRows(assignmentRows(half))
	mock.ExpectQuery(`FROM assignments`).
		WithArgs("s-idle", date(2026, 1, 1), date(2026, 1, 31)).
		WillReturnRows(assignmentRows())

	suggestions, err := svc.Suggest("role-1", date(2026, 1, 1), date(2026, 1, 31), 20, nil)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	// More availability always outranks less with equal skills.
	assert.Equal(t, "s-idle", suggestions[0].StaffID)
	assert.Equal(t, "s-half", suggestions[1].StaffID)
	assert.Greater(t, suggestions[0].MatchScore, suggestions[1].MatchScore)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestSkillBonusAndTieBreak(t *testing.T) {
	svc, mock, done := newSuggestionService(t)
	defer done()

	mock.ExpectQuery(`FROM staff`).
		WithArgs("role-1").
		WillReturnRows(staffRows(
			[]interface{}{"s-b", "Generalist B", []byte("{}")},
			[]interface{}{"s-a", "Generalist A", []byte("{}")},
			[]interface{}{"s-skilled", "Specialist", []byte(`{postgres,go}`)},
		))
	for _, id := range []string{"s-b", "s-a", "s-skilled"} {
		mock.ExpectQuery(`FROM assignments`).
			WithArgs(id, date(2026, 1, 1), date(2026, 1, 31)).
			WillReturnRows(assignmentRows())
	}

	suggestions, err := svc.Suggest("role-1", date(2026, 1, 1), date(2026, 1, 31), 100, []string{"go", "postgres"})
	require.NoError(t, err)
	require.Len(t, suggestions, 3)

	assert.Equal(t, "s-skilled", suggestions[0].StaffID)
	assert.Contains(t, suggestions[0].Reasons[0], "2 of 2 requested skills")

	// Equal scores fall back to staff id ordering.
	assert.Equal(t, "s-a", suggestions[1].StaffID)
	assert.Equal(t, "s-b", suggestions[2].StaffID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuggestRejectsBadInput(t *testing.T) {
	svc, _, done := newSuggestionService(t)
	defer done()

	_, err := svc.Suggest("role-1", date(2026, 2, 1), date(2026, 1, 1), 50, nil)
	require.Error(t, err)

	_, err = svc.Suggest("role-1", date(2026, 1, 1), date(2026, 2, 1), 140, nil)
	require.Error(t, err)

	var validation *models.ValidationError
	assert.ErrorAs(t, err, &validation)
}
