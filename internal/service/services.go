package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/student-portal-api/internal/mailer"
	"github.com/student-portal-api/internal/models"
	"github.com/student-portal-api/internal/repository"
)

// DirectoryService defines the four account directory operations.
// Failures are *models.DirectoryError values; any other error is an
// internal fault the caller should not expose verbatim.
type DirectoryService interface {
	Login(ctx context.Context, email, password string) (*models.StudentProfile, error)
	Register(ctx context.Context, email, password, name, course string) error
	ForgotPassword(ctx context.Context, email string) error
	GetStudentData(ctx context.Context, email string) (*models.StudentProfile, error)
}

// ExportService defines the interface for roster export and counts
type ExportService interface {
	StreamStudents(ctx context.Context, w http.ResponseWriter, format string) error
	StudentCount(ctx context.Context) (int, error)
	ActivityCount(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Directory DirectoryService
	Export    ExportService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, sender mailer.Sender, log zerolog.Logger) *Services {
	return &Services{
		Directory: newDirectoryService(repos, sender, log),
		Export:    newExportService(repos, log),
	}
}
