package mocks

import (
	"context"
	"net/http"

	"github.com/student-portal-api/internal/models"
)

// SentEmail records one delivery made through MockSender
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// MockSender is a mock implementation of mailer.Sender
type MockSender struct {
	Sent      []SentEmail
	SendError error
}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// MockDirectoryService is a mock implementation of DirectoryService
type MockDirectoryService struct {
	LoginFunc          func(ctx context.Context, email, password string) (*models.StudentProfile, error)
	RegisterFunc       func(ctx context.Context, email, password, name, course string) error
	ForgotPasswordFunc func(ctx context.Context, email string) error
	GetStudentDataFunc func(ctx context.Context, email string) (*models.StudentProfile, error)
}

func NewMockDirectoryService() *MockDirectoryService {
	return &MockDirectoryService{}
}

func (m *MockDirectoryService) Login(ctx context.Context, email, password string) (*models.StudentProfile, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, &models.DirectoryError{Kind: models.ErrKindNotFound, Message: "Email not found. Please contact us to enroll."}
}

func (m *MockDirectoryService) Register(ctx context.Context, email, password, name, course string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password, name, course)
	}
	return nil
}

func (m *MockDirectoryService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockDirectoryService) GetStudentData(ctx context.Context, email string) (*models.StudentProfile, error) {
	if m.GetStudentDataFunc != nil {
		return m.GetStudentDataFunc(ctx, email)
	}
	return nil, &models.DirectoryError{Kind: models.ErrKindNotFound, Message: "Student not found"}
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	Counts     map[string]int
	StreamFunc func(ctx context.Context, w http.ResponseWriter, format string) error
}

func NewMockExportService() *MockExportService {
	return &MockExportService{
		Counts: make(map[string]int),
	}
}

func (m *MockExportService) StreamStudents(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, w, format)
	}
	return nil
}

func (m *MockExportService) StudentCount(ctx context.Context) (int, error) {
	return m.Counts["students"], nil
}

func (m *MockExportService) ActivityCount(ctx context.Context) (int, error) {
	return m.Counts["activity_entries"], nil
}
