package repository

import (
	"context"
	"errors"

	"github.com/student-portal-api/internal/database"
	"github.com/student-portal-api/internal/models"
)

// ErrDuplicateEmail is returned by StudentRepository.Create when the
// storage-level uniqueness constraint on email is violated.
var ErrDuplicateEmail = errors.New("email already registered")

// StudentRepository defines the interface for account record operations.
// Lookups are exact, case-sensitive email matches. Missing records are
// reported as (nil, nil), not as errors.
type StudentRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Student) error) error
}

// ActivityRepository defines the interface for the append-only audit
// trail. The directory never reads entries back.
type ActivityRepository interface {
	Append(ctx context.Context, entry *models.ActivityEntry) error
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Student  StudentRepository
	Activity ActivityRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Student:  NewStudentRepo(db),
		Activity: NewActivityRepo(db),
	}
}
