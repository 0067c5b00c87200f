package seeder

import (
	"context"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"project-compass/internal/database"
)

type AdminSeeder struct{}

func (AdminSeeder) Name() string { return "admin" }

// Run creates the bootstrap admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are set. Existing rows are promoted, never overwritten,
// so a re-run cannot reset a rotated password.
func (AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "name", "is_admin", "status"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, name, is_admin, status)
		 VALUES (gen_random_uuid(), $1, $2, 'Admin', TRUE, 'active')
		 ON CONFLICT (email) DO UPDATE SET is_admin = TRUE`,
		email,
		string(hash),
	)
	return err
}
