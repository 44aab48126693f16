package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/student-portal-api/internal/mailer"
	"github.com/student-portal-api/internal/metrics"
	"github.com/student-portal-api/internal/models"
	"github.com/student-portal-api/internal/repository"
)

// directoryService is the concrete implementation of DirectoryService
type directoryService struct {
	repos  *repository.Repositories
	sender mailer.Sender
	now    func() time.Time
	log    zerolog.Logger
}

// newDirectoryService creates a new DirectoryService
func newDirectoryService(repos *repository.Repositories, sender mailer.Sender, log zerolog.Logger) *directoryService {
	return &directoryService{
		repos:  repos,
		sender: sender,
		now:    time.Now,
		log:    log.With().Str("service", "directory").Logger(),
	}
}

// Login verifies credentials. Precondition order is fixed: missing
// fields, unknown email, inactive status, then password comparison.
// Wrong-password and success paths each write exactly one audit entry;
// the earlier rejections write none.
func (s *directoryService) Login(ctx context.Context, email, password string) (*models.StudentProfile, error) {
	if email == "" || password == "" {
		return nil, &models.DirectoryError{
			Kind:    models.ErrKindValidation,
			Message: "Email and password are required",
		}
	}

	student, err := s.repos.Student.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		metrics.LoginAttempts.WithLabelValues("not_found").Inc()
		return nil, &models.DirectoryError{
			Kind:    models.ErrKindNotFound,
			Message: "Email not found. Please contact us to enroll.",
		}
	}

	// The status gate precedes the password comparison: an inactive
	// account rejects login even with correct credentials.
	if student.Status == models.StudentStatusInactive {
		metrics.LoginAttempts.WithLabelValues("inactive").Inc()
		return nil, &models.DirectoryError{
			Kind:    models.ErrKindAccountInactive,
			Message: "Your account is inactive. Please contact us.",
		}
	}

	if student.Password != password {
		s.recordActivity(ctx, email, models.ActionLogin, models.ResultWrongPassword)
		metrics.LoginAttempts.WithLabelValues("wrong_password").Inc()
		return nil, &models.DirectoryError{
			Kind:    models.ErrKindInvalidCredentials,
			Message: "Invalid password",
		}
	}

	s.recordActivity(ctx, email, models.ActionLogin, models.ResultSuccess)
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.log.Info().Str("email", email).Msg("Login successful")

	return student.Profile(), nil
}

// Register appends a new active account. The email uniqueness check runs
// application-side for the friendly error, and again at the storage layer
// where the UNIQUE constraint settles concurrent registrations.
func (s *directoryService) Register(ctx context.Context, email, password, name, course string) error {
	if email == "" || password == "" || name == "" || course == "" {
		return &models.DirectoryError{
			Kind:    models.ErrKindValidation,
			Message: "All fields are required",
		}
	}

	existing, err := s.repos.Student.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return &models.DirectoryError{
			Kind:    models.ErrKindDuplicate,
			Message: "Email already registered",
		}
	}

	now := s.now().UTC()
	student := &models.Student{
		ID:         uuid.New().String(),
		Email:      email,
		Password:   password,
		Name:       name,
		Course:     course,
		EnrolledAt: now,
		Status:     models.StudentStatusActive,
		CreatedAt:  now,
	}

	if err := s.repos.Student.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return &models.DirectoryError{
				Kind:    models.ErrKindDuplicate,
				Message: "Email already registered",
			}
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	s.recordActivity(ctx, email, models.ActionRegister, models.ResultSuccess)
	metrics.Registrations.Inc()
	s.log.Info().Str("email", email).Str("course", course).Msg("Student registered")

	return nil
}

// ForgotPassword emails the stored password to the account's address.
// No audit entry is written when delivery fails.
func (s *directoryService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return &models.DirectoryError{
			Kind:    models.ErrKindValidation,
			Message: "Email is required",
		}
	}

	student, err := s.repos.Student.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		return &models.DirectoryError{
			Kind:    models.ErrKindNotFound,
			Message: "Email not found",
		}
	}

	subject := "Student Portal - Password Recovery"
	body := recoveryEmailBody(student.Name, student.Password)

	if err := s.sender.Send(ctx, student.Email, subject, body); err != nil {
		metrics.RecoveryEmails.WithLabelValues("failed").Inc()
		s.log.Error().Err(err).Str("email", email).Msg("Recovery email delivery failed")
		return &models.DirectoryError{
			Kind:    models.ErrKindDelivery,
			Message: "Failed to send email. Please contact us.",
		}
	}

	metrics.RecoveryEmails.WithLabelValues("sent").Inc()
	s.recordActivity(ctx, email, models.ActionForgotPassword, models.ResultEmailSent)

	return nil
}

// GetStudentData returns the account projection. Reads leave no audit
// trail.
func (s *directoryService) GetStudentData(ctx context.Context, email string) (*models.StudentProfile, error) {
	if email == "" {
		return nil, &models.DirectoryError{
			Kind:    models.ErrKindValidation,
			Message: "Email is required",
		}
	}

	student, err := s.repos.Student.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		return nil, &models.DirectoryError{
			Kind:    models.ErrKindNotFound,
			Message: "Student not found",
		}
	}

	return student.Profile(), nil
}

// recordActivity appends an audit entry best-effort. Failures are
// logged and counted but never abort the triggering operation.
func (s *directoryService) recordActivity(ctx context.Context, email, action, result string) {
	entry := &models.ActivityEntry{
		OccurredAt: s.now().UTC(),
		Email:      email,
		Action:     action,
		Result:     result,
	}

	if err := s.repos.Activity.Append(ctx, entry); err != nil {
		metrics.ActivityAppendFailures.Inc()
		s.log.Warn().Err(err).
			Str("email", email).
			Str("action", action).
			Msg("Failed to append activity entry")
	}
}

// recoveryEmailBody renders the recovery message. Mailing the stored
// password mirrors the portal's original contract; see DESIGN.md.
func recoveryEmailBody(name, password string) string {
	return fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Your password is: <strong>%s</strong></p>
		<p>We recommend changing your password after logging in.</p>
		<br>
		<p>If you didn't request this, please contact us immediately.</p>
		<p><strong>Student Portal Team</strong></p>
	`, name, password)
}
