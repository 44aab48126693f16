package models

import (
	"time"
)

// StudentStatus gates whether an account may authenticate.
type StudentStatus string

const (
	// StudentStatusActive marks an account in good standing.
	StudentStatusActive StudentStatus = "active"
	// StudentStatusInactive marks an account that must not log in,
	// regardless of credentials. Set out-of-band by administrators.
	StudentStatusInactive StudentStatus = "inactive"
)

// Student represents one registered account row.
type Student struct {
	ID         string        `json:"id" db:"id"`
	Email      string        `json:"email" db:"email"`
	Password   string        `json:"-" db:"password"`
	Name       string        `json:"name" db:"name"`
	Course     string        `json:"course" db:"course"`
	EnrolledAt time.Time     `json:"enrolled_at" db:"enrolled_at"`
	Status     StudentStatus `json:"status" db:"status"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// StudentProfile is the projection returned to portal clients on
// login and data retrieval. It never carries the password.
type StudentProfile struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	Course         string `json:"course"`
	EnrollmentDate string `json:"enrollmentDate"`
	Status         string `json:"status"`
}

// Profile builds the client-facing projection of a student record.
func (s *Student) Profile() *StudentProfile {
	return &StudentProfile{
		Email:          s.Email,
		Name:           s.Name,
		Course:         s.Course,
		EnrollmentDate: FormatEnrollmentDate(s.EnrolledAt),
		Status:         string(s.Status),
	}
}

// FormatEnrollmentDate renders an enrollment timestamp as zero-padded
// DD/MM/YYYY. The zero value renders as an empty string.
func FormatEnrollmentDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
