package repository

import (
	"context"
	"time"

	"project-compass/internal/database"

	"github.com/google/uuid"
)

type ActivityEntry struct {
	ID        uuid.UUID
	Kind      string
	ActorID   *uuid.UUID
	Subject   string
	Detail    string
	CreatedAt time.Time
}

type ActivityRepository interface {
	Insert(ctx context.Context, kind string, actorID *uuid.UUID, subject, detail string) error
	ListRecent(ctx context.Context, limit int) ([]ActivityEntry, error)
}

type PostgresActivityRepository struct {
	db database.DB
}

func NewPostgresActivityRepository(db database.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

func (r *PostgresActivityRepository) Insert(ctx context.Context, kind string, actorID *uuid.UUID, subject, detail string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO activity_log (id, kind, actor_id, subject, detail)
		 VALUES (gen_random_uuid(), $1, $2, $3, $4)`,
		kind, actorID, subject, detail,
	)
	return err
}

func (r *PostgresActivityRepository) ListRecent(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, kind, actor_id, COALESCE(subject, ''), COALESCE(detail, ''), created_at
		 FROM activity_log
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ActivityEntry, 0)
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.ActorID, &e.Subject, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
