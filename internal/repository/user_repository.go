package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"project-compass/internal/database"
	"project-compass/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	uniqueViolationPg = "23505"
)

type UserListFilter struct {
	Search string
	Status string
	Limit  int
	Offset int
}

type UserCounts struct {
	Total  int
	Active int
}

// ProfileUpdate carries the mutable profile fields. Nil slices mean the
// field was never provided and must not overwrite stored values.
type ProfileUpdate struct {
	Name            string
	Bio             string
	Interests       []string
	Skills          []string
	ExperienceLevel string
	AcademicBranch  string
	AcademicSem     string
	AcademicUni     string
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, up ProfileUpdate) (*user.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f UserListFilter) ([]user.User, int, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Counts(ctx context.Context) (*UserCounts, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, email, password_hash, COALESCE(name, ''), is_admin, status, last_login_at,
	COALESCE(bio, ''), interests, skills, COALESCE(experience_level, ''),
	COALESCE(academic_branch, ''), COALESCE(academic_semester, ''), COALESCE(academic_university, ''),
	created_at, updated_at`

func scanUser(row database.Row, u *user.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsAdmin, &u.Status, &u.LastLoginAt,
		&u.Bio, &u.Interests, &u.Skills, &u.ExperienceLevel,
		&u.AcademicBranch, &u.AcademicSemester, &u.AcademicUniversity,
		&u.CreatedAt, &u.UpdatedAt,
	)
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Status == "" {
		u.Status = user.StatusActive
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, name, is_admin, status)
		 VALUES ($1, LOWER($2), $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.IsAdmin, u.Status,
	)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if strings.Contains(err.Error(), uniqueViolationPg) {
			return ErrEmailTaken
		}
		return err
	}
	u.Email = strings.ToLower(u.Email)
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err := scanUser(row, &u); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = LOWER($1)`, email)
	if err := scanUser(row, &u); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, up ProfileUpdate) (*user.User, error) {
	var u user.User
	row := r.db.QueryRow(ctx,
		`UPDATE users SET
			name = $2, bio = $3,
			interests = COALESCE($4, interests),
			skills = COALESCE($5, skills),
			experience_level = $6,
			academic_branch = $7, academic_semester = $8, academic_university = $9,
			updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, up.Name, up.Bio, up.Interests, up.Skills, up.ExperienceLevel,
		up.AcademicBranch, up.AcademicSem, up.AcademicUni,
	)
	if err := scanUser(row, &u); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *PostgresUserRepository) List(ctx context.Context, f UserListFilter) ([]user.User, int, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	where := []string{"TRUE"}
	args := []any{}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(email ILIKE $%d OR name ILIKE $%d)", len(args), len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	rows, err := r.db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`,
			userColumns, cond, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresUserRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) Counts(ctx context.Context) (*UserCounts, error) {
	var c UserCounts
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'active') FROM users`)
	if err := row.Scan(&c.Total, &c.Active); err != nil {
		return nil, err
	}
	return &c, nil
}
