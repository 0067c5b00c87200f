package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"project-compass/internal/database"
	"project-compass/internal/domain/project"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectListFilter narrows catalog listings. Zero values mean "no filter".
type ProjectListFilter struct {
	Query      string
	Domain     string
	Difficulty string
	Tech       string
	Limit      int
	Offset     int
}

type ProjectFacets struct {
	Domains      []string
	Difficulties []string
	TechStack    []string
}

type ProjectRepository interface {
	ListActive(ctx context.Context) ([]project.Project, error)
	ListForCatalog(ctx context.Context, f ProjectListFilter) ([]project.Project, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error)
	Facets(ctx context.Context) (*ProjectFacets, error)
	Create(ctx context.Context, p *project.Project) error
	Update(ctx context.Context, p *project.Project) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int, error)
}

type PostgresProjectRepository struct {
	db database.DB
}

func NewPostgresProjectRepository(db database.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

const projectColumns = `id, title, description, COALESCE(domain, ''), COALESCE(tech_stack, '{}'),
	COALESCE(difficulty, ''), COALESCE(tags, '{}'), COALESCE(estimated_time, ''),
	COALESCE(prerequisites, '{}'), COALESCE(learning_outcomes, '{}'),
	is_active, COALESCE(source, ''), COALESCE(external_id, ''), created_at, updated_at`

func scanProject(row database.Row, p *project.Project) error {
	var difficulty string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Domain, &p.TechStack,
		&difficulty, &p.Tags, &p.EstimatedTime,
		&p.Prerequisites, &p.LearningOutcomes,
		&p.IsActive, &p.Source, &p.ExternalID, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return err
	}
	p.Difficulty = project.Difficulty(difficulty)
	return nil
}

// ListActive returns the full active catalog for scoring; callers cache it.
func (r *PostgresProjectRepository) ListActive(ctx context.Context) ([]project.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE is_active ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *PostgresProjectRepository) ListForCatalog(ctx context.Context, f ProjectListFilter) ([]project.Project, int, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	where := []string{"is_active"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + q + "%")
		where = append(where, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", p, p))
	}
	if f.Domain != "" {
		where = append(where, fmt.Sprintf("LOWER(domain) = LOWER(%s)", arg(f.Domain)))
	}
	if f.Difficulty != "" {
		where = append(where, fmt.Sprintf("LOWER(difficulty) = LOWER(%s)", arg(f.Difficulty)))
	}
	if f.Tech != "" {
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM unnest(tech_stack) t WHERE LOWER(t) = LOWER(%s))", arg(f.Tech)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE `+cond, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	limitArgs := append(args, f.Limit, f.Offset)
	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM projects WHERE %s ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`,
			projectColumns, cond, len(args)+1, len(args)+2),
		limitArgs...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectProjects(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var p project.Project
	row := r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	if err := scanProject(row, &p); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresProjectRepository) Facets(ctx context.Context) (*ProjectFacets, error) {
	f := &ProjectFacets{}

	if err := r.scanStrings(ctx,
		`SELECT DISTINCT domain FROM projects WHERE is_active AND domain <> '' ORDER BY domain`,
		&f.Domains); err != nil {
		return nil, err
	}
	if err := r.scanStrings(ctx,
		`SELECT DISTINCT difficulty FROM projects WHERE is_active AND difficulty <> '' ORDER BY difficulty`,
		&f.Difficulties); err != nil {
		return nil, err
	}
	if err := r.scanStrings(ctx,
		`SELECT DISTINCT t FROM projects, unnest(tech_stack) t WHERE is_active ORDER BY t`,
		&f.TechStack); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *PostgresProjectRepository) scanStrings(ctx context.Context, query string, dst *[]string) error {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	*dst = out
	return nil
}

func (r *PostgresProjectRepository) Create(ctx context.Context, p *project.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO projects
			(id, title, description, domain, tech_stack, difficulty, tags,
			 estimated_time, prerequisites, learning_outcomes, is_active, source, external_id)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		 RETURNING created_at, updated_at`,
		p.ID, p.Title, p.Description, p.Domain, p.TechStack, string(p.Difficulty), p.Tags,
		p.EstimatedTime, p.Prerequisites, p.LearningOutcomes, p.IsActive, p.Source, p.ExternalID,
	)
	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PostgresProjectRepository) Update(ctx context.Context, p *project.Project) error {
	row := r.db.QueryRow(ctx,
		`UPDATE projects SET
			title = $2, description = $3, domain = $4, tech_stack = $5, difficulty = $6,
			tags = $7, estimated_time = $8, prerequisites = $9, learning_outcomes = $10,
			is_active = $11, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		p.ID, p.Title, p.Description, p.Domain, p.TechStack, string(p.Difficulty),
		p.Tags, p.EstimatedTime, p.Prerequisites, p.LearningOutcomes, p.IsActive,
	)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresProjectRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE projects SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE is_active`)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func collectProjects(rows database.Rows) ([]project.Project, error) {
	out := make([]project.Project, 0)
	for rows.Next() {
		var p project.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
