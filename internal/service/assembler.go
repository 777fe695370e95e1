package service

import (
	"github.com/noah-isme/enrollment-api/internal/models"
)

// DetailAssembler nests flat student, enrollment and status rows into
// EnrollmentDetail aggregates. It is a pure collaborator of the
// enrollment service: inputs are never mutated and the result is built
// from fresh values.
type DetailAssembler struct{}

// Assemble produces one detail per student, in student input order. Each
// detail carries the student's enrollments in enrollment input order,
// each enrollment carries its status rows in status input order. A
// student without enrollments gets an empty, non-nil enrollment list.
func (DetailAssembler) Assemble(students []models.Student, enrollments []models.CourseEnrollment, statuses []models.EnrollmentStatus) []models.EnrollmentDetail {
	statusesByEnrollment := make(map[string][]models.EnrollmentStatus, len(enrollments))
	for _, status := range statuses {
		statusesByEnrollment[status.EnrollmentID] = append(statusesByEnrollment[status.EnrollmentID], status)
	}

	enrollmentsByStudent := make(map[string][]models.EnrollmentWithStatuses, len(students))
	for _, enrollment := range enrollments {
		nested := models.EnrollmentWithStatuses{
			CourseEnrollment: enrollment,
			Statuses:         append([]models.EnrollmentStatus{}, statusesByEnrollment[enrollment.ID]...),
		}
		enrollmentsByStudent[enrollment.StudentID] = append(enrollmentsByStudent[enrollment.StudentID], nested)
	}

	details := make([]models.EnrollmentDetail, 0, len(students))
	for _, student := range students {
		nested := enrollmentsByStudent[student.ID]
		if nested == nil {
			nested = []models.EnrollmentWithStatuses{}
		}
		details = append(details, models.EnrollmentDetail{Student: student, Enrollments: nested})
	}
	return details
}
