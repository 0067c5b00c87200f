package repository

import (
	"context"
	"time"

	"project-compass/internal/database"

	"github.com/google/uuid"
)

type Completion struct {
	ProjectID   uuid.UUID
	Title       string
	Domain      string
	CompletedAt time.Time
}

type CompletionRepository interface {
	MarkCompleted(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Completion, error)
	CountAll(ctx context.Context) (int, error)
}

type PostgresCompletionRepository struct {
	db database.DB
}

func NewPostgresCompletionRepository(db database.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

// MarkCompleted is idempotent; the second call for the same pair reports
// created=false.
func (r *PostgresCompletionRepository) MarkCompleted(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO project_completions (id, user_id, project_id)
		 VALUES (gen_random_uuid(), $1, $2)
		 ON CONFLICT (user_id, project_id) DO NOTHING`,
		userID, projectID,
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresCompletionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Completion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.project_id, COALESCE(p.title, ''), COALESCE(p.domain, ''), c.completed_at
		 FROM project_completions c
		 LEFT JOIN projects p ON p.id = c.project_id
		 WHERE c.user_id = $1
		 ORDER BY c.completed_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Completion, 0)
	for rows.Next() {
		var c Completion
		if err := rows.Scan(&c.ProjectID, &c.Title, &c.Domain, &c.CompletedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompletionRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM project_completions`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
