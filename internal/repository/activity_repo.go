package repository

import (
	"context"

	"github.com/student-portal-api/internal/database"
	"github.com/student-portal-api/internal/models"
)

// activityRepo is the concrete implementation of ActivityRepository
type activityRepo struct {
	db *database.DB
}

// NewActivityRepo creates a new activity log repository
func NewActivityRepo(db *database.DB) ActivityRepository {
	return &activityRepo{db: db}
}

// Append inserts a single audit entry
func (r *activityRepo) Append(ctx context.Context, entry *models.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (occurred_at, email, action, result)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.OccurredAt, entry.Email, entry.Action, entry.Result,
	)
	return err
}

// Count returns the total number of audit entries
func (r *activityRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM activity_log").Scan(&count)
	return count, err
}
