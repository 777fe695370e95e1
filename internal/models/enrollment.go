package models

import "time"

// CourseEnrollment captures a student's registration in one named course.
// The course period is server-computed at registration time and runs for
// one year from the moment of registration.
type CourseEnrollment struct {
	ID            string    `db:"id" json:"id"`
	StudentID     string    `db:"student_id" json:"student_id"`
	CourseName    string    `db:"course_name" json:"course_name"`
	CourseStartAt time.Time `db:"course_start_at" json:"course_start_at"`
	CourseEndAt   time.Time `db:"course_end_at" json:"course_end_at"`
}

// EnrollmentStatus is one lifecycle record of an enrollment. Rows
// accumulate over time; the row with the latest CreatedAt is the current
// status of the enrollment.
type EnrollmentStatus struct {
	ID           string      `db:"id" json:"id"`
	EnrollmentID string      `db:"enrollment_id" json:"enrollment_id"`
	Status       StatusValue `db:"status" json:"status"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
}

// EnrollmentWithStatuses pairs an enrollment with its status history,
// ordered as returned by the store.
type EnrollmentWithStatuses struct {
	CourseEnrollment
	Statuses []EnrollmentStatus `json:"statuses"`
}

// EnrollmentDetail is the transient read aggregate: one student with all
// of their enrollments and nested status history. It is assembled per
// request and never persisted.
type EnrollmentDetail struct {
	Student     Student                  `json:"student"`
	Enrollments []EnrollmentWithStatuses `json:"enrollments"`
}

// SearchFilter holds the optional criteria of the conditional search.
// Zero values mean "not filtered"; Name and CourseName are case-sensitive
// substring matches, the date bounds are inclusive and Status matches the
// enrollment's current status exactly.
type SearchFilter struct {
	Name       string
	CourseName string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     StatusValue
}

// IsZero reports whether no criterion is set, in which case the search is
// equivalent to an unfiltered listing.
func (f SearchFilter) IsZero() bool {
	return f.Name == "" && f.CourseName == "" && f.StartDate == nil && f.EndDate == nil && f.Status == ""
}
