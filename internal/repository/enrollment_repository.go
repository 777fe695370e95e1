package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/enrollment-api/internal/models"
)

const enrollmentColumns = "id, student_id, course_name, course_start_at, course_end_at"

// EnrollmentRepository handles persistence of course enrollments.
type EnrollmentRepository struct {
	q sqlx.ExtContext
}

// NewEnrollmentRepository constructs the repository bound to a pool or
// transaction.
func NewEnrollmentRepository(q sqlx.ExtContext) *EnrollmentRepository {
	return &EnrollmentRepository{q: q}
}

// FetchAllEnrollments returns every enrollment, oldest first.
func (r *EnrollmentRepository) FetchAllEnrollments(ctx context.Context) ([]models.CourseEnrollment, error) {
	query := fmt.Sprintf("SELECT %s FROM enrollments ORDER BY id", enrollmentColumns)
	enrollments := []models.CourseEnrollment{}
	if err := sqlx.SelectContext(ctx, r.q, &enrollments, query); err != nil {
		return nil, fmt.Errorf("fetch enrollments: %w", err)
	}
	return enrollments, nil
}

// FetchEnrollmentsByStudentID returns the enrollments of one student.
func (r *EnrollmentRepository) FetchEnrollmentsByStudentID(ctx context.Context, studentID string) ([]models.CourseEnrollment, error) {
	query := fmt.Sprintf("SELECT %s FROM enrollments WHERE student_id = $1 ORDER BY id", enrollmentColumns)
	enrollments := []models.CourseEnrollment{}
	if err := sqlx.SelectContext(ctx, r.q, &enrollments, query, studentID); err != nil {
		return nil, fmt.Errorf("fetch student enrollments: %w", err)
	}
	return enrollments, nil
}

// FetchEnrollmentsFiltered returns enrollments matching the supplied
// criteria; absent criteria match everything. The status criterion is
// checked against the enrollment's current status, i.e. its most recently
// created status row.
func (r *EnrollmentRepository) FetchEnrollmentsFiltered(ctx context.Context, filter models.SearchFilter) ([]models.CourseEnrollment, error) {
	query := fmt.Sprintf("SELECT %s FROM enrollments", enrollmentColumns)
	var conditions []string
	var args []interface{}

	if filter.CourseName != "" {
		conditions = append(conditions, fmt.Sprintf("course_name LIKE $%d", len(args)+1))
		args = append(args, "%"+filter.CourseName+"%")
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("course_start_at >= $%d", len(args)+1))
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("course_end_at <= $%d", len(args)+1))
		args = append(args, *filter.EndDate)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
            SELECT 1 FROM enrollment_statuses cs
            WHERE cs.enrollment_id = enrollments.id AND cs.status = $%d
              AND cs.created_at = (SELECT MAX(x.created_at) FROM enrollment_statuses x WHERE x.enrollment_id = enrollments.id)
        )`, len(args)+1))
		args = append(args, filter.Status)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	enrollments := []models.CourseEnrollment{}
	if err := sqlx.SelectContext(ctx, r.q, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("fetch enrollments filtered: %w", err)
	}
	return enrollments, nil
}

// InsertEnrollment stores a new enrollment and returns the
// sequence-assigned ID.
func (r *EnrollmentRepository) InsertEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) (string, error) {
	const query = `INSERT INTO enrollments (student_id, course_name, course_start_at, course_end_at)
        VALUES ($1, $2, $3, $4) RETURNING id`
	var id string
	if err := sqlx.GetContext(ctx, r.q, &id, query,
		enrollment.StudentID, enrollment.CourseName, enrollment.CourseStartAt, enrollment.CourseEndAt); err != nil {
		return "", fmt.Errorf("insert enrollment: %w", err)
	}
	enrollment.ID = id
	return id, nil
}

// UpdateEnrollment overwrites every mutable field of the enrollment row.
func (r *EnrollmentRepository) UpdateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error {
	const query = `UPDATE enrollments SET student_id = :student_id, course_name = :course_name,
        course_start_at = :course_start_at, course_end_at = :course_end_at WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, enrollment); err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	return nil
}
