package mocks

import (
	"context"

	"github.com/student-portal-api/internal/models"
	"github.com/student-portal-api/internal/repository"
)

// MockStudentRepository is an in-memory implementation of
// StudentRepository. Insertion order is preserved for StreamAll.
type MockStudentRepository struct {
	Students    []*models.Student
	ByEmail     map[string]*models.Student
	FindError   error
	CreateError error
}

func NewMockStudentRepository() *MockStudentRepository {
	return &MockStudentRepository{
		ByEmail: make(map[string]*models.Student),
	}
}

func (m *MockStudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	return m.ByEmail[email], nil
}

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.ByEmail[student.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	m.Students = append(m.Students, student)
	m.ByEmail[student.Email] = student
	return nil
}

func (m *MockStudentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Students), nil
}

func (m *MockStudentRepository) StreamAll(ctx context.Context, callback func(*models.Student) error) error {
	for _, student := range m.Students {
		if err := callback(student); err != nil {
			return err
		}
	}
	return nil
}

// Seed inserts a student directly, bypassing the duplicate check.
func (m *MockStudentRepository) Seed(student *models.Student) {
	m.Students = append(m.Students, student)
	m.ByEmail[student.Email] = student
}

// MockActivityRepository is an in-memory implementation of
// ActivityRepository
type MockActivityRepository struct {
	Entries     []*models.ActivityEntry
	AppendError error
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{}
}

func (m *MockActivityRepository) Append(ctx context.Context, entry *models.ActivityEntry) error {
	if m.AppendError != nil {
		return m.AppendError
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

func (m *MockActivityRepository) Count(ctx context.Context) (int, error) {
	return len(m.Entries), nil
}
