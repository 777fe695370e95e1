package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/internal/repository"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

// StudentPayload carries the client-settable fields of a student.
type StudentPayload struct {
	Name        string `json:"name" validate:"required"`
	KanaName    string `json:"kana_name" validate:"required"`
	Nickname    string `json:"nickname" validate:"required"`
	MailAddress string `json:"mail_address" validate:"required,email"`
	Address     string `json:"address" validate:"required"`
	Age         int    `json:"age" validate:"gte=0"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
	Remark      string `json:"remark"`
}

// RegisterCoursePayload names the course a new enrollment is for. The
// course period and initial status are server-assigned.
type RegisterCoursePayload struct {
	CourseName string `json:"course_name" validate:"required"`
}

// RegisterStudentRequest is the registration payload: one student with
// any number of course enrollments.
type RegisterStudentRequest struct {
	Student StudentPayload          `json:"student"`
	Courses []RegisterCoursePayload `json:"courses" validate:"dive"`
}

// UpdateStatusPayload addresses one existing status row.
type UpdateStatusPayload struct {
	ID     string             `json:"id" validate:"required"`
	Status models.StatusValue `json:"status" validate:"required,oneof=PROVISIONAL CONFIRMED IN_PROGRESS COMPLETED"`
}

// UpdateCoursePayload overwrites one existing enrollment and its status
// rows.
type UpdateCoursePayload struct {
	ID            string                `json:"id" validate:"required"`
	CourseName    string                `json:"course_name" validate:"required"`
	CourseStartAt time.Time             `json:"course_start_at"`
	CourseEndAt   time.Time             `json:"course_end_at"`
	Statuses      []UpdateStatusPayload `json:"statuses" validate:"dive"`
}

// UpdateStudentRequest is the full-overwrite update payload. The logical
// delete flag travels here; no endpoint removes rows physically.
type UpdateStudentRequest struct {
	Student   StudentPayload        `json:"student"`
	IsDeleted bool                  `json:"is_deleted"`
	Courses   []UpdateCoursePayload `json:"courses" validate:"dive"`
}

// EnrollmentService orchestrates the enrollment read and write
// workflows. It holds no request state; everything it needs lives in the
// gateway, the assembler and the transition engine.
type EnrollmentService struct {
	gateway     repository.Gateway
	assembler   DetailAssembler
	transitions StatusTransitioner
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewEnrollmentService constructs the EnrollmentService.
func NewEnrollmentService(gateway repository.Gateway, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{gateway: gateway, validator: validate, logger: logger}
}

// SearchAll returns every student with nested enrollments and status
// history, unfiltered.
func (s *EnrollmentService) SearchAll(ctx context.Context) ([]models.EnrollmentDetail, error) {
	students, err := s.gateway.FetchAllStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	enrollments, err := s.gateway.FetchAllEnrollments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	statuses, err := s.gateway.FetchAllStatuses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load statuses")
	}
	return s.assembler.Assemble(students, enrollments, statuses), nil
}

// SearchWithConditions returns details matching the filter. Filtering is
// delegated to the gateway queries; this method only assembles what they
// return. An empty filter is the unfiltered search.
func (s *EnrollmentService) SearchWithConditions(ctx context.Context, filter models.SearchFilter) ([]models.EnrollmentDetail, error) {
	if filter.IsZero() {
		return s.SearchAll(ctx)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status value: "+string(filter.Status))
	}
	students, err := s.gateway.FetchStudentsFiltered(ctx, filter.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	enrollments, err := s.gateway.FetchEnrollmentsFiltered(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	statuses, err := s.gateway.FetchStatusesFiltered(ctx, filter.Status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load statuses")
	}
	return s.assembler.Assemble(students, enrollments, statuses), nil
}

// SearchOne returns the detail of a single student by ID.
func (s *EnrollmentService) SearchOne(ctx context.Context, id string) (*models.EnrollmentDetail, error) {
	student, err := s.gateway.FetchStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found: "+id)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	enrollments, err := s.gateway.FetchEnrollmentsByStudentID(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	statuses, err := s.gateway.FetchStatusesByStudentID(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load statuses")
	}
	details := s.assembler.Assemble([]models.Student{*student}, enrollments, statuses)
	return &details[0], nil
}

// Register persists a new student with their course enrollments inside
// one transaction. Enrollment IDs and the course period are
// server-assigned: the period starts now and runs for one year, and each
// enrollment gets an initial PROVISIONAL status row.
func (s *EnrollmentService) Register(ctx context.Context, req RegisterStudentRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	student := models.Student{
		Name:        req.Student.Name,
		KanaName:    req.Student.KanaName,
		Nickname:    req.Student.Nickname,
		MailAddress: req.Student.MailAddress,
		Address:     req.Student.Address,
		Age:         req.Student.Age,
		Gender:      req.Student.Gender,
		Remark:      req.Student.Remark,
	}
	now := time.Now().UTC()
	enrollments := make([]models.EnrollmentWithStatuses, 0, len(req.Courses))

	err := s.gateway.Transact(ctx, func(tx repository.Gateway) error {
		studentID, err := tx.InsertStudent(ctx, &student)
		if err != nil {
			return err
		}
		for _, course := range req.Courses {
			enrollment := models.CourseEnrollment{
				StudentID:     studentID,
				CourseName:    course.CourseName,
				CourseStartAt: now,
				CourseEndAt:   now.AddDate(1, 0, 0),
			}
			enrollmentID, err := tx.InsertEnrollment(ctx, &enrollment)
			if err != nil {
				return err
			}
			status := models.EnrollmentStatus{
				EnrollmentID: enrollmentID,
				Status:       models.StatusProvisional,
				CreatedAt:    now,
			}
			if _, err := tx.InsertStatus(ctx, &status); err != nil {
				return err
			}
			enrollments = append(enrollments, models.EnrollmentWithStatuses{
				CourseEnrollment: enrollment,
				Statuses:         []models.EnrollmentStatus{status},
			})
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register student")
	}

	s.logger.Info("student registered",
		zap.String("student_id", student.ID),
		zap.Int("courses", len(enrollments)))

	return &models.EnrollmentDetail{Student: student, Enrollments: enrollments}, nil
}

// Update overwrites the student, their enrollments and their status rows
// with the supplied field values, all inside one transaction.
func (s *EnrollmentService) Update(ctx context.Context, id string, req UpdateStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}
	if _, err := s.gateway.FetchStudentByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found: "+id)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	student := models.Student{
		ID:          id,
		Name:        req.Student.Name,
		KanaName:    req.Student.KanaName,
		Nickname:    req.Student.Nickname,
		MailAddress: req.Student.MailAddress,
		Address:     req.Student.Address,
		Age:         req.Student.Age,
		Gender:      req.Student.Gender,
		Remark:      req.Student.Remark,
		IsDeleted:   req.IsDeleted,
	}

	err := s.gateway.Transact(ctx, func(tx repository.Gateway) error {
		if err := tx.UpdateStudent(ctx, &student); err != nil {
			return err
		}
		for _, course := range req.Courses {
			enrollment := models.CourseEnrollment{
				ID:            course.ID,
				StudentID:     id,
				CourseName:    course.CourseName,
				CourseStartAt: course.CourseStartAt,
				CourseEndAt:   course.CourseEndAt,
			}
			if err := tx.UpdateEnrollment(ctx, &enrollment); err != nil {
				return err
			}
			for _, st := range course.Statuses {
				status := models.EnrollmentStatus{ID: st.ID, EnrollmentID: course.ID, Status: st.Status}
				if err := tx.UpdateStatus(ctx, &status); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}

	s.logger.Info("student updated", zap.String("student_id", id))
	return nil
}

// UpdateStatus advances the current status of one enrollment. The current
// status is the most recently created row; on a valid transition that row
// is updated in place. The read-check-write sequence is not serialized
// against concurrent callers; two simultaneous updates on the same
// enrollment can race (known gap, needs a row lock or version check at
// the gateway).
func (s *EnrollmentService) UpdateStatus(ctx context.Context, enrollmentID string, target models.StatusValue) error {
	if !target.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown status value: "+string(target))
	}
	current, err := s.gateway.FetchLatestStatusByEnrollmentID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "no status found for enrollment: "+enrollmentID)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load status")
	}
	updated, err := s.transitions.Apply(*current, target)
	if err != nil {
		return err
	}
	if err := s.gateway.UpdateStatus(ctx, &updated); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}

	s.logger.Info("enrollment status updated",
		zap.String("enrollment_id", enrollmentID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(target)))
	return nil
}
