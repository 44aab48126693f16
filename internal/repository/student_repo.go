package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/student-portal-api/internal/database"
	"github.com/student-portal-api/internal/models"
)

// uniqueViolation is the PostgreSQL error code for constraint 23505
const uniqueViolation = pq.ErrorCode("23505")

// studentRepo is the concrete implementation of StudentRepository
type studentRepo struct {
	db *database.DB
}

// NewStudentRepo creates a new student repository
func NewStudentRepo(db *database.DB) StudentRepository {
	return &studentRepo{db: db}
}

// FindByEmail retrieves a student by exact email match
func (r *studentRepo) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `
		SELECT id, email, password, name, course, enrolled_at, status, created_at
		FROM students
		WHERE email = $1
	`

	var student models.Student
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&student.ID, &student.Email, &student.Password, &student.Name,
		&student.Course, &student.EnrolledAt, &student.Status, &student.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &student, nil
}

// Create inserts a new student. The unique constraint on email is the
// authoritative duplicate check; a violation surfaces as ErrDuplicateEmail.
func (r *studentRepo) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (id, email, password, name, course, enrolled_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		student.ID, student.Email, student.Password, student.Name,
		student.Course, student.EnrolledAt, student.Status, student.CreatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

// Count returns the total number of students
func (r *studentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM students").Scan(&count)
	return count, err
}

// StreamAll streams all students in enrollment order (memory efficient)
func (r *studentRepo) StreamAll(ctx context.Context, callback func(*models.Student) error) error {
	query := `
		SELECT id, email, password, name, course, enrolled_at, status, created_at
		FROM students
		ORDER BY enrolled_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var student models.Student
		err := rows.Scan(
			&student.ID, &student.Email, &student.Password, &student.Name,
			&student.Course, &student.EnrolledAt, &student.Status, &student.CreatedAt,
		)
		if err != nil {
			return err
		}

		if err := callback(&student); err != nil {
			return err
		}
	}

	return rows.Err()
}
