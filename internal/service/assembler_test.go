package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-api/internal/models"
)

func TestAssembleNestsByForeignKey(t *testing.T) {
	students := []models.Student{
		{ID: "1", Name: "Mitsuo Morimoto"},
		{ID: "2", Name: "Hanako Yamada"},
	}
	enrollments := []models.CourseEnrollment{
		{ID: "10", StudentID: "1", CourseName: "Course A"},
		{ID: "11", StudentID: "2", CourseName: "Course B"},
		{ID: "12", StudentID: "1", CourseName: "Course C"},
	}
	statuses := []models.EnrollmentStatus{
		{ID: "100", EnrollmentID: "10", Status: models.StatusProvisional},
		{ID: "101", EnrollmentID: "12", Status: models.StatusProvisional},
		{ID: "102", EnrollmentID: "10", Status: models.StatusConfirmed},
	}

	details := DetailAssembler{}.Assemble(students, enrollments, statuses)
	require.Len(t, details, 2)

	// One detail per student, input order preserved.
	assert.Equal(t, "1", details[0].Student.ID)
	assert.Equal(t, "2", details[1].Student.ID)

	// Enrollments keep their relative input order under each student.
	require.Len(t, details[0].Enrollments, 2)
	assert.Equal(t, "10", details[0].Enrollments[0].ID)
	assert.Equal(t, "12", details[0].Enrollments[1].ID)
	require.Len(t, details[1].Enrollments, 1)
	assert.Equal(t, "11", details[1].Enrollments[0].ID)

	// Every nested record references its parent.
	for _, detail := range details {
		for _, enrollment := range detail.Enrollments {
			assert.Equal(t, detail.Student.ID, enrollment.StudentID)
			for _, status := range enrollment.Statuses {
				assert.Equal(t, enrollment.ID, status.EnrollmentID)
			}
		}
	}

	// Status rows keep their relative input order.
	require.Len(t, details[0].Enrollments[0].Statuses, 2)
	assert.Equal(t, "100", details[0].Enrollments[0].Statuses[0].ID)
	assert.Equal(t, "102", details[0].Enrollments[0].Statuses[1].ID)
}

func TestAssembleStudentWithoutEnrollments(t *testing.T) {
	details := DetailAssembler{}.Assemble(
		[]models.Student{{ID: "7", Name: "Taro"}},
		nil,
		nil,
	)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].Enrollments)
	assert.Empty(t, details[0].Enrollments)
}

func TestAssembleEmptyInputs(t *testing.T) {
	details := DetailAssembler{}.Assemble(nil, nil, nil)
	require.NotNil(t, details)
	assert.Empty(t, details)
}

func TestAssembleDoesNotMutateInputs(t *testing.T) {
	enrollments := []models.CourseEnrollment{
		{ID: "10", StudentID: "1", CourseName: "Course A", CourseStartAt: time.Now()},
	}
	statuses := []models.EnrollmentStatus{
		{ID: "100", EnrollmentID: "10", Status: models.StatusProvisional},
	}
	original := enrollments[0]

	DetailAssembler{}.Assemble([]models.Student{{ID: "1"}}, enrollments, statuses)

	assert.Equal(t, original, enrollments[0])
}

func TestAssembleOrphanEnrollmentIgnored(t *testing.T) {
	details := DetailAssembler{}.Assemble(
		[]models.Student{{ID: "1"}},
		[]models.CourseEnrollment{{ID: "10", StudentID: "999"}},
		nil,
	)
	require.Len(t, details, 1)
	assert.Empty(t, details[0].Enrollments)
}
