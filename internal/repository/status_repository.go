package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/enrollment-api/internal/models"
)

const statusColumns = "id, enrollment_id, status, created_at"

// StatusRepository handles the append-only enrollment status history.
type StatusRepository struct {
	q sqlx.ExtContext
}

// NewStatusRepository constructs the repository bound to a pool or
// transaction.
func NewStatusRepository(q sqlx.ExtContext) *StatusRepository {
	return &StatusRepository{q: q}
}

// FetchAllStatuses returns every status row, oldest first.
func (r *StatusRepository) FetchAllStatuses(ctx context.Context) ([]models.EnrollmentStatus, error) {
	query := fmt.Sprintf("SELECT %s FROM enrollment_statuses ORDER BY id", statusColumns)
	statuses := []models.EnrollmentStatus{}
	if err := sqlx.SelectContext(ctx, r.q, &statuses, query); err != nil {
		return nil, fmt.Errorf("fetch statuses: %w", err)
	}
	return statuses, nil
}

// FetchStatusesFiltered returns status rows with the given value, or all
// rows when the value is empty.
func (r *StatusRepository) FetchStatusesFiltered(ctx context.Context, status models.StatusValue) ([]models.EnrollmentStatus, error) {
	query := fmt.Sprintf("SELECT %s FROM enrollment_statuses", statusColumns)
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY id"
	statuses := []models.EnrollmentStatus{}
	if err := sqlx.SelectContext(ctx, r.q, &statuses, query, args...); err != nil {
		return nil, fmt.Errorf("fetch statuses filtered: %w", err)
	}
	return statuses, nil
}

// FetchStatusesByStudentID returns the status rows of every enrollment
// belonging to one student.
func (r *StatusRepository) FetchStatusesByStudentID(ctx context.Context, studentID string) ([]models.EnrollmentStatus, error) {
	const query = `SELECT cs.id, cs.enrollment_id, cs.status, cs.created_at
        FROM enrollment_statuses cs
        JOIN enrollments e ON e.id = cs.enrollment_id
        WHERE e.student_id = $1 ORDER BY cs.id`
	statuses := []models.EnrollmentStatus{}
	if err := sqlx.SelectContext(ctx, r.q, &statuses, query, studentID); err != nil {
		return nil, fmt.Errorf("fetch student statuses: %w", err)
	}
	return statuses, nil
}

// FetchLatestStatusByEnrollmentID returns the current status row of an
// enrollment. Absence surfaces as sql.ErrNoRows for the caller to map.
func (r *StatusRepository) FetchLatestStatusByEnrollmentID(ctx context.Context, enrollmentID string) (*models.EnrollmentStatus, error) {
	query := fmt.Sprintf(`SELECT %s FROM enrollment_statuses WHERE enrollment_id = $1
        ORDER BY created_at DESC, id DESC LIMIT 1`, statusColumns)
	var status models.EnrollmentStatus
	if err := sqlx.GetContext(ctx, r.q, &status, query, enrollmentID); err != nil {
		return nil, err
	}
	return &status, nil
}

// InsertStatus appends a new status row and returns the
// sequence-assigned ID.
func (r *StatusRepository) InsertStatus(ctx context.Context, status *models.EnrollmentStatus) (string, error) {
	if status.CreatedAt.IsZero() {
		status.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO enrollment_statuses (enrollment_id, status, created_at)
        VALUES ($1, $2, $3) RETURNING id`
	var id string
	if err := sqlx.GetContext(ctx, r.q, &id, query,
		status.EnrollmentID, status.Status, status.CreatedAt); err != nil {
		return "", fmt.Errorf("insert status: %w", err)
	}
	status.ID = id
	return id, nil
}

// UpdateStatus overwrites the value of an existing status row.
func (r *StatusRepository) UpdateStatus(ctx context.Context, status *models.EnrollmentStatus) error {
	const query = `UPDATE enrollment_statuses SET status = :status WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}
