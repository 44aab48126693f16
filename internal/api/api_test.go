package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/student-portal-api/internal/api"
	"github.com/student-portal-api/internal/config"
	"github.com/student-portal-api/internal/mocks"
	"github.com/student-portal-api/internal/models"
	"github.com/student-portal-api/internal/service"
)

func setupTestRouter() (*gin.Engine, *mocks.MockDirectoryService, *mocks.MockExportService) {
	gin.SetMode(gin.TestMode)

	mockDirectory := mocks.NewMockDirectoryService()
	mockExport := mocks.NewMockExportService()

	services := &service.Services{
		Directory: mockDirectory,
		Export:    mockExport,
	}

	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "8080"},
		RateLimit: config.RateLimitConfig{PerMinute: 1000, Burst: 1000},
	}

	log := zerolog.Nop()
	router := api.NewRouter(services, nil, cfg, log)

	return router, mockDirectory, mockExport
}

func postAction(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var envelope models.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Invalid envelope JSON: %v", err)
	}
	return envelope
}

func TestRootConfirmation(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "Student Portal API is running" {
		t.Errorf("Unexpected confirmation string: %q", w.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "student-portal-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestInvalidAction(t *testing.T) {
	router, _, _ := setupTestRouter()

	for _, action := range []string{"", "deleteEverything"} {
		form := url.Values{}
		if action != "" {
			form.Set("action", action)
		}
		w := postAction(router, form)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		envelope := decodeEnvelope(t, w)
		if envelope.Success {
			t.Error("Expected success=false")
		}
		if envelope.Message != "Invalid action" {
			t.Errorf("Expected 'Invalid action', got %q", envelope.Message)
		}
	}
}

func TestLoginAction_Success(t *testing.T) {
	router, mockDirectory, _ := setupTestRouter()

	mockDirectory.LoginFunc = func(ctx context.Context, email, password string) (*models.StudentProfile, error) {
		if email != "a@x.com" || password != "pw1" {
			t.Errorf("Handler passed wrong credentials: %s / %s", email, password)
		}
		return &models.StudentProfile{
			Email:          "a@x.com",
			Name:           "Asha",
			Course:         "Tailoring",
			EnrollmentDate: "05/03/2024",
			Status:         "active",
		}, nil
	}

	form := url.Values{"action": {"login"}, "email": {"a@x.com"}, "password": {"pw1"}}
	w := postAction(router, form)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	if !envelope.Success {
		t.Fatalf("Expected success, got %+v", envelope)
	}
	if envelope.Message != "Login successful" {
		t.Errorf("Expected 'Login successful', got %q", envelope.Message)
	}
	if envelope.Timestamp == "" {
		t.Error("Envelope timestamp must be set")
	}

	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected data object, got %T", envelope.Data)
	}
	if data["email"] != "a@x.com" || data["enrollmentDate"] != "05/03/2024" {
		t.Errorf("Unexpected payload: %v", data)
	}
}

func TestLoginAction_Failure(t *testing.T) {
	router, mockDirectory, _ := setupTestRouter()

	mockDirectory.LoginFunc = func(ctx context.Context, email, password string) (*models.StudentProfile, error) {
		return nil, &models.DirectoryError{
			Kind:    models.ErrKindInvalidCredentials,
			Message: "Invalid password",
		}
	}

	form := url.Values{"action": {"login"}, "email": {"a@x.com"}, "password": {"wrong"}}
	w := postAction(router, form)

	// Failures stay 200; the envelope carries the outcome.
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	envelope := decodeEnvelope(t, w)
	if envelope.Success {
		t.Error("Expected success=false")
	}
	if envelope.Error != models.ErrKindInvalidCredentials {
		t.Errorf("Expected error kind invalid_credentials, got %q", envelope.Error)
	}
	if envelope.Message != "Invalid password" {
		t.Errorf("Expected 'Invalid password', got %q", envelope.Message)
	}
	if envelope.Data != nil {
		t.Errorf("Expected null data, got %v", envelope.Data)
	}
}

func TestLoginAction_InternalErrorIsOpaque(t *testing.T) {
	router, mockDirectory, _ := setupTestRouter()

	mockDirectory.LoginFunc = func(ctx context.Context, email, password string) (*models.StudentProfile, error) {
		return nil, context.DeadlineExceeded
	}

	form := url.Values{"action": {"login"}, "email": {"a@x.com"}, "password": {"pw1"}}
	w := postAction(router, form)

	envelope := decodeEnvelope(t, w)
	if envelope.Success {
		t.Error("Expected success=false")
	}
	if envelope.Error != models.ErrKindInternal {
		t.Errorf("Expected error kind internal, got %q", envelope.Error)
	}
	if envelope.Message != "Server error" {
		t.Errorf("Internal detail must not leak, got %q", envelope.Message)
	}
}

func TestRegisterAction(t *testing.T) {
	router, mockDirectory, _ := setupTestRouter()

	var got [4]string
	mockDirectory.RegisterFunc = func(ctx context.Context, email, password, name, course string) error {
		got = [4]string{email, password, name, course}
		return nil
	}

	form := url.Values{
		"action":   {"register"},
		"email":    {"b@x.com"},
		"password": {"secret"},
		"name":     {"Bina"},
		"course":   {"Design"},
	}
	w := postAction(router, form)

	envelope := decodeEnvelope(t, w)
	if !envelope.Success {
		t.Fatalf("Expected success, got %+v", envelope)
	}
	if envelope.Message != "Registration successful" {
		t.Errorf("Expected 'Registration successful', got %q", envelope.Message)
	}
	if envelope.Data != nil {
		t.Errorf("Register returns no data, got %v", envelope.Data)
	}
	if got != [4]string{"b@x.com", "secret", "Bina", "Design"} {
		t.Errorf("Handler passed wrong parameters: %v", got)
	}
}

func TestForgotPasswordAction(t *testing.T) {
	router, mockDirectory, _ := setupTestRouter()

	mockDirectory.ForgotPasswordFunc = func(ctx context.Context, email string) error {
		return nil
	}

	form := url.Values{"action": {"forgotPassword"}, "email": {"a@x.com"}}
	w := postAction(router, form)

	envelope := decodeEnvelope(t, w)
	if !envelope.Success {
		t.Fatalf("Expected success, got %+v", envelope)
	}
	if envelope.Message != "Password has been sent to your email" {
		t.Errorf("Unexpected message: %q", envelope.Message)
	}
}

func TestGetStudentDataAction(t *testing.T) {
	router, mockDirectory, _ := setupTestRouter()

	mockDirectory.GetStudentDataFunc = func(ctx context.Context, email string) (*models.StudentProfile, error) {
		return &models.StudentProfile{Email: email, Name: "Asha", Status: "active"}, nil
	}

	form := url.Values{"action": {"getStudentData"}, "email": {"a@x.com"}}
	w := postAction(router, form)

	envelope := decodeEnvelope(t, w)
	if !envelope.Success {
		t.Fatalf("Expected success, got %+v", envelope)
	}
	if envelope.Message != "Data retrieved" {
		t.Errorf("Expected 'Data retrieved', got %q", envelope.Message)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router, _, mockExport := setupTestRouter()
	mockExport.Counts["students"] = 42
	mockExport.Counts["activity_entries"] = 1200

	req := httptest.NewRequest("GET", "/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	db := response["database"].(map[string]interface{})
	if db["students"].(float64) != 42 {
		t.Errorf("Expected 42 students, got %v", db["students"])
	}
	if db["activity_entries"].(float64) != 1200 {
		t.Errorf("Expected 1200 activity entries, got %v", db["activity_entries"])
	}
}

func TestExportEndpoint_BadFormat(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/admin/export?format=xml", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header to be set")
	}

	req = httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "given-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") != "given-id" {
		t.Error("Expected supplied X-Request-ID to be echoed")
	}
}
