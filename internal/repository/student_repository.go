package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/enrollment-api/internal/models"
)

const studentColumns = "id, name, kana_name, nickname, mail_address, address, age, gender, remark, is_deleted"

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	q sqlx.ExtContext
}

// NewStudentRepository constructs a StudentRepository bound to a pool or
// transaction.
func NewStudentRepository(q sqlx.ExtContext) *StudentRepository {
	return &StudentRepository{q: q}
}

// FetchAllStudents returns every student, oldest first.
func (r *StudentRepository) FetchAllStudents(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students ORDER BY id", studentColumns)
	students := []models.Student{}
	if err := sqlx.SelectContext(ctx, r.q, &students, query); err != nil {
		return nil, fmt.Errorf("fetch students: %w", err)
	}
	return students, nil
}

// FetchStudentByID fetches a single student. Absence surfaces as
// sql.ErrNoRows for the caller to map.
func (r *StudentRepository) FetchStudentByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1", studentColumns)
	var student models.Student
	if err := sqlx.GetContext(ctx, r.q, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FetchStudentsFiltered returns students whose name contains the given
// fragment. An empty fragment matches everyone.
func (r *StudentRepository) FetchStudentsFiltered(ctx context.Context, name string) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students", studentColumns)
	args := []interface{}{}
	if name != "" {
		query += " WHERE name LIKE $1"
		args = append(args, "%"+name+"%")
	}
	query += " ORDER BY id"
	students := []models.Student{}
	if err := sqlx.SelectContext(ctx, r.q, &students, query, args...); err != nil {
		return nil, fmt.Errorf("fetch students filtered: %w", err)
	}
	return students, nil
}

// InsertStudent stores a new student and returns the sequence-assigned ID.
func (r *StudentRepository) InsertStudent(ctx context.Context, student *models.Student) (string, error) {
	const query = `INSERT INTO students (name, kana_name, nickname, mail_address, address, age, gender, remark, is_deleted)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	var id string
	if err := sqlx.GetContext(ctx, r.q, &id, query,
		student.Name, student.KanaName, student.Nickname, student.MailAddress,
		student.Address, student.Age, student.Gender, student.Remark, student.IsDeleted); err != nil {
		return "", fmt.Errorf("insert student: %w", err)
	}
	student.ID = id
	return id, nil
}

// UpdateStudent overwrites every mutable field of the student row.
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET name = :name, kana_name = :kana_name, nickname = :nickname,
        mail_address = :mail_address, address = :address, age = :age, gender = :gender,
        remark = :remark, is_deleted = :is_deleted WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, r.q, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}
