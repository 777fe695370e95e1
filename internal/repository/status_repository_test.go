package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-api/internal/models"
)

func statusRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "enrollment_id", "status", "created_at"}).
		AddRow("100", "10", "PROVISIONAL", time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
}

func TestStatusRepositoryFetchAll(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStatusRepository(db)

	mock.ExpectQuery("SELECT .+ FROM enrollment_statuses ORDER BY id").WillReturnRows(statusRows())

	statuses, err := repo.FetchAllStatuses(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, models.StatusProvisional, statuses[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepositoryFetchFiltered(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStatusRepository(db)

	mock.ExpectQuery("SELECT .+ FROM enrollment_statuses WHERE status = ").
		WithArgs(models.StatusProvisional).
		WillReturnRows(statusRows())

	statuses, err := repo.FetchStatusesFiltered(context.Background(), models.StatusProvisional)
	require.NoError(t, err)
	assert.Len(t, statuses, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepositoryFetchByStudentID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStatusRepository(db)

	mock.ExpectQuery("SELECT .+ FROM enrollment_statuses cs JOIN enrollments e ON e.id = cs.enrollment_id WHERE e.student_id = ").
		WithArgs("1").
		WillReturnRows(statusRows())

	statuses, err := repo.FetchStatusesByStudentID(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, statuses, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepositoryFetchLatest(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStatusRepository(db)

	mock.ExpectQuery("SELECT .+ FROM enrollment_statuses WHERE enrollment_id = .+ ORDER BY created_at DESC, id DESC LIMIT 1").
		WithArgs("10").
		WillReturnRows(statusRows())

	status, err := repo.FetchLatestStatusByEnrollmentID(context.Background(), "10")
	require.NoError(t, err)
	assert.Equal(t, "100", status.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepositoryFetchLatestAbsent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStatusRepository(db)

	mock.ExpectQuery("SELECT .+ FROM enrollment_statuses WHERE enrollment_id = ").
		WithArgs("999").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FetchLatestStatusByEnrollmentID(context.Background(), "999")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepositoryInsertDefaultsCreatedAt(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStatusRepository(db)

	mock.ExpectQuery("INSERT INTO enrollment_statuses .+ RETURNING id").
		WithArgs("10", models.StatusProvisional, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("100"))

	status := models.EnrollmentStatus{EnrollmentID: "10", Status: models.StatusProvisional}
	id, err := repo.InsertStatus(context.Background(), &status)
	require.NoError(t, err)
	assert.Equal(t, "100", id)
	assert.False(t, status.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStatusRepository(db)

	mock.ExpectExec("UPDATE enrollment_statuses SET status = ").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), &models.EnrollmentStatus{ID: "100", Status: models.StatusConfirmed})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
