package models_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/student-portal-api/internal/models"
)

func TestFormatEnrollmentDate(t *testing.T) {
	cases := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"zero value", time.Time{}, ""},
		{"zero-padded day and month", time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC), "05/03/2024"},
		{"double digit day and month", time.Date(2023, 11, 21, 0, 0, 0, 0, time.UTC), "21/11/2023"},
		{"first of january", time.Date(2025, 1, 1, 23, 59, 0, 0, time.UTC), "01/01/2025"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := models.FormatEnrollmentDate(tc.input); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestStudentProfile(t *testing.T) {
	student := &models.Student{
		ID:         "id-1",
		Email:      "a@x.com",
		Password:   "pw1",
		Name:       "Asha",
		Course:     "Tailoring",
		EnrolledAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		Status:     models.StudentStatusActive,
	}

	profile := student.Profile()
	if profile.Email != "a@x.com" || profile.Name != "Asha" || profile.Course != "Tailoring" {
		t.Errorf("Unexpected profile: %+v", profile)
	}
	if profile.EnrollmentDate != "05/03/2024" {
		t.Errorf("Expected 05/03/2024, got %s", profile.EnrollmentDate)
	}
	if profile.Status != "active" {
		t.Errorf("Expected active, got %s", profile.Status)
	}
}

func TestStudentJSONExcludesPassword(t *testing.T) {
	student := &models.Student{
		ID:       "id-1",
		Email:    "a@x.com",
		Password: "topsecret",
		Name:     "Asha",
	}

	data, err := json.Marshal(student)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), "topsecret") {
		t.Error("Serialized student must not contain the password")
	}
}

func TestResponseEnvelope(t *testing.T) {
	ok := models.OK("Login successful", map[string]string{"email": "a@x.com"})
	if !ok.Success || ok.Error != "" || ok.Timestamp == "" {
		t.Errorf("Unexpected success envelope: %+v", ok)
	}
	if _, err := time.Parse(time.RFC3339, ok.Timestamp); err != nil {
		t.Errorf("Timestamp must be RFC 3339, got %q", ok.Timestamp)
	}

	fail := models.Fail(models.ErrKindDuplicate, "Email already registered")
	if fail.Success || fail.Error != models.ErrKindDuplicate || fail.Data != nil {
		t.Errorf("Unexpected failure envelope: %+v", fail)
	}

	// Data is always serialized, null when absent.
	data, _ := json.Marshal(fail)
	if !strings.Contains(string(data), `"data":null`) {
		t.Errorf("Failure envelope must carry data:null, got %s", data)
	}
}
