package seeder

import (
	"context"

	"project-compass/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
