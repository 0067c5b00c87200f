package usecase

import (
	"context"
	"errors"
	"log"

	"project-compass/internal/repository"

	"github.com/google/uuid"
)

type CompletionUsecase interface {
	CompleteProject(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
	ListCompletions(ctx context.Context, userID uuid.UUID) ([]repository.Completion, error)
}

type Completion struct {
	projects    repository.ProjectRepository
	completions repository.CompletionRepository
	activity    repository.ActivityRepository
	notifier    ActivityNotifier
	logger      *log.Logger
}

func NewCompletionUsecase(
	projects repository.ProjectRepository,
	completions repository.CompletionRepository,
	activity repository.ActivityRepository,
	notifier ActivityNotifier,
	logger *log.Logger,
) *Completion {
	return &Completion{projects: projects, completions: completions, activity: activity, notifier: notifier, logger: logger}
}

// CompleteProject records the completion, reporting created=false when it
// was already marked.
func (u *Completion) CompleteProject(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || projectID == uuid.Nil {
		return false, ErrInvalidInput
	}

	p, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return false, ErrNotFound
		}
		return false, ErrInternal
	}
	if !p.IsActive {
		return false, ErrNotFound
	}

	created, err := u.completions.MarkCompleted(ctx, userID, projectID)
	if err != nil {
		return false, ErrInternal
	}

	if created {
		if u.activity != nil {
			id := userID
			if err := u.activity.Insert(ctx, "project_completed", &id, p.Title, ""); err != nil && u.logger != nil {
				u.logger.Printf("[Completions] activity log failed err=%v", err)
			}
		}
		if u.notifier != nil {
			u.notifier.Publish("project_completed", p.Title, "")
		}
	}
	return created, nil
}

func (u *Completion) ListCompletions(ctx context.Context, userID uuid.UUID) ([]repository.Completion, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	items, err := u.completions.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
