package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-api/internal/models"
)

func enrollmentRows() *sqlmock.Rows {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{"id", "student_id", "course_name", "course_start_at", "course_end_at"}).
		AddRow("10", "1", "Course A", start, start.AddDate(1, 0, 0))
}

func TestEnrollmentRepositoryFetchAll(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("SELECT .+ FROM enrollments ORDER BY id").WillReturnRows(enrollmentRows())

	enrollments, err := repo.FetchAllEnrollments(context.Background())
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, "Course A", enrollments[0].CourseName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryFetchByStudentID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("SELECT .+ FROM enrollments WHERE student_id = ").
		WithArgs("1").
		WillReturnRows(enrollmentRows())

	enrollments, err := repo.FetchEnrollmentsByStudentID(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryFetchFilteredBuildsConditions(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM enrollments WHERE course_name LIKE .+ AND course_start_at >= .+ AND course_end_at <= .+ AND EXISTS`).
		WithArgs("%Course%", start, end, models.StatusInProgress).
		WillReturnRows(enrollmentRows())

	enrollments, err := repo.FetchEnrollmentsFiltered(context.Background(), models.SearchFilter{
		CourseName: "Course",
		StartDate:  &start,
		EndDate:    &end,
		Status:     models.StatusInProgress,
	})
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryFetchFilteredWithoutConditions(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("SELECT .+ FROM enrollments ORDER BY id").WillReturnRows(enrollmentRows())

	enrollments, err := repo.FetchEnrollmentsFiltered(context.Background(), models.SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryInsertReturnsGeneratedID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO enrollments .+ RETURNING id").
		WithArgs("1", "Course A", start, start.AddDate(1, 0, 0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("10"))

	enrollment := models.CourseEnrollment{StudentID: "1", CourseName: "Course A", CourseStartAt: start, CourseEndAt: start.AddDate(1, 0, 0)}
	id, err := repo.InsertEnrollment(context.Background(), &enrollment)
	require.NoError(t, err)
	assert.Equal(t, "10", id)
	assert.Equal(t, "10", enrollment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectExec("UPDATE enrollments SET").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateEnrollment(context.Background(), &models.CourseEnrollment{ID: "10", StudentID: "1", CourseName: "Course B"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
