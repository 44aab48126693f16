package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/student-portal-api/internal/models"
	"github.com/student-portal-api/internal/repository"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamStudents streams the roster in the specified format. Passwords
// are never included in any export format.
func (s *exportService) StreamStudents(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting roster export")

	switch format {
	case "ndjson":
		return s.streamNDJSON(ctx, w)
	case "json":
		return s.streamJSON(ctx, w)
	case "csv":
		return s.streamCSV(ctx, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// StudentCount returns the total number of account records
func (s *exportService) StudentCount(ctx context.Context) (int, error) {
	return s.repos.Student.Count(ctx)
}

// ActivityCount returns the total number of audit entries
func (s *exportService) ActivityCount(ctx context.Context) (int, error) {
	return s.repos.Activity.Count(ctx)
}

func (s *exportService) streamNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=students.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repos.Student.StreamAll(ctx, func(student *models.Student) error {
		data, err := json.Marshal(student)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Roster export completed")
	return err
}

func (s *exportService) streamJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=students.json")

	w.Write([]byte("["))
	first := true

	err := s.repos.Student.StreamAll(ctx, func(student *models.Student) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(student)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})

	w.Write([]byte("]"))
	return err
}

func (s *exportService) streamCSV(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=students.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"email", "name", "course", "enrolled_at", "status"})

	return s.repos.Student.StreamAll(ctx, func(student *models.Student) error {
		return writer.Write([]string{
			student.Email,
			student.Name,
			student.Course,
			student.EnrolledAt.Format(time.RFC3339),
			string(student.Status),
		})
	})
}
