package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/enrollment-api/internal/models"
)

// Gateway is the persistence boundary of the enrollment domain. Each
// method maps to one query shape; Transact runs the given function with a
// gateway bound to a single transaction, committing on nil and rolling
// back on error.
//
// The interface lives on the provider side because Transact's callback
// parameter is self-referential and cannot be restated structurally by a
// consumer package.
type Gateway interface {
	FetchAllStudents(ctx context.Context) ([]models.Student, error)
	FetchStudentByID(ctx context.Context, id string) (*models.Student, error)
	FetchStudentsFiltered(ctx context.Context, name string) ([]models.Student, error)

	FetchAllEnrollments(ctx context.Context) ([]models.CourseEnrollment, error)
	FetchEnrollmentsByStudentID(ctx context.Context, studentID string) ([]models.CourseEnrollment, error)
	FetchEnrollmentsFiltered(ctx context.Context, filter models.SearchFilter) ([]models.CourseEnrollment, error)

	FetchAllStatuses(ctx context.Context) ([]models.EnrollmentStatus, error)
	FetchStatusesFiltered(ctx context.Context, status models.StatusValue) ([]models.EnrollmentStatus, error)
	FetchStatusesByStudentID(ctx context.Context, studentID string) ([]models.EnrollmentStatus, error)
	FetchLatestStatusByEnrollmentID(ctx context.Context, enrollmentID string) (*models.EnrollmentStatus, error)

	InsertStudent(ctx context.Context, student *models.Student) (string, error)
	InsertEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) (string, error)
	InsertStatus(ctx context.Context, status *models.EnrollmentStatus) (string, error)

	UpdateStudent(ctx context.Context, student *models.Student) error
	UpdateEnrollment(ctx context.Context, enrollment *models.CourseEnrollment) error
	UpdateStatus(ctx context.Context, status *models.EnrollmentStatus) error

	Transact(ctx context.Context, fn func(tx Gateway) error) error
}

// SQLGateway implements Gateway on top of sqlx. It composes the
// per-entity repositories bound to either the shared pool or one
// transaction.
type SQLGateway struct {
	db *sqlx.DB

	*StudentRepository
	*EnrollmentRepository
	*StatusRepository
}

// NewGateway constructs a pool-bound SQLGateway.
func NewGateway(db *sqlx.DB) *SQLGateway {
	return &SQLGateway{
		db:                   db,
		StudentRepository:    NewStudentRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		StatusRepository:     NewStatusRepository(db),
	}
}

// Transact runs fn against a transaction-bound gateway.
func (g *SQLGateway) Transact(ctx context.Context, fn func(tx Gateway) error) error {
	if g.db == nil {
		// Already inside a transaction; nested scopes join it.
		return fn(g)
	}
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	txGateway := &SQLGateway{
		StudentRepository:    NewStudentRepository(tx),
		EnrollmentRepository: NewEnrollmentRepository(tx),
		StatusRepository:     NewStatusRepository(tx),
	}
	if err := fn(txGateway); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
