package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"project-compass/internal/domain/project"
	"project-compass/internal/domain/user"
	"project-compass/internal/repository"

	"github.com/google/uuid"
)

// ActivityNotifier pushes an event to whoever watches the live activity
// feed. Implementations must not block.
type ActivityNotifier interface {
	Publish(kind, subject, detail string)
}

type AdminStats struct {
	TotalUsers        int `json:"total_users"`
	ActiveUsers       int `json:"active_users"`
	TotalProjects     int `json:"total_projects"`
	CompletedProjects int `json:"completed_projects"`
}

type ProjectInput struct {
	Title            string
	Description      string
	Domain           string
	TechStack        []string
	Difficulty       string
	Tags             []string
	EstimatedTime    string
	Prerequisites    []string
	LearningOutcomes []string
	IsActive         *bool
}

type AdminUsecase interface {
	ListUsers(ctx context.Context, f repository.UserListFilter) ([]user.User, int, error)
	SetUserStatus(ctx context.Context, actorID, userID uuid.UUID, status string) error
	DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error

	CreateProject(ctx context.Context, actorID uuid.UUID, in ProjectInput) (*project.Project, error)
	UpdateProject(ctx context.Context, actorID, projectID uuid.UUID, in ProjectInput) (*project.Project, error)
	DeleteProject(ctx context.Context, actorID, projectID uuid.UUID) error

	GetStats(ctx context.Context) (*AdminStats, error)
	ListActivity(ctx context.Context, limit int) ([]repository.ActivityEntry, error)
}

type Admin struct {
	users       repository.UserRepository
	projects    repository.ProjectRepository
	completions repository.CompletionRepository
	activity    repository.ActivityRepository
	cache       CatalogCache
	notifier    ActivityNotifier
	logger      *log.Logger
}

func NewAdminUsecase(
	users repository.UserRepository,
	projects repository.ProjectRepository,
	completions repository.CompletionRepository,
	activity repository.ActivityRepository,
	cache CatalogCache,
	notifier ActivityNotifier,
	logger *log.Logger,
) *Admin {
	return &Admin{
		users:       users,
		projects:    projects,
		completions: completions,
		activity:    activity,
		cache:       cache,
		notifier:    notifier,
		logger:      logger,
	}
}

func (u *Admin) ListUsers(ctx context.Context, f repository.UserListFilter) ([]user.User, int, error) {
	items, total, err := u.users.List(ctx, f)
	if err != nil {
		return nil, 0, ErrInternal
	}
	for i := range items {
		items[i].PasswordHash = ""
	}
	return items, total, nil
}

func (u *Admin) SetUserStatus(ctx context.Context, actorID, userID uuid.UUID, status string) error {
	if status != user.StatusActive && status != user.StatusInactive {
		return ErrInvalidInput
	}
	if actorID == userID {
		// Admins cannot lock themselves out.
		return ErrInvalidInput
	}
	if err := u.users.SetStatus(ctx, userID, status); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.record(ctx, actorID, "user_status_changed", userID.String(), status)
	return nil
}

func (u *Admin) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return ErrInvalidInput
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.record(ctx, actorID, "user_deleted", userID.String(), "")
	return nil
}

func (u *Admin) CreateProject(ctx context.Context, actorID uuid.UUID, in ProjectInput) (*project.Project, error) {
	p, err := projectFromInput(in, nil)
	if err != nil {
		return nil, err
	}
	if err := u.projects.Create(ctx, p); err != nil {
		return nil, ErrInternal
	}

	u.bustCatalog(ctx)
	u.record(ctx, actorID, "project_created", p.Title, "")
	return p, nil
}

func (u *Admin) UpdateProject(ctx context.Context, actorID, projectID uuid.UUID, in ProjectInput) (*project.Project, error) {
	if projectID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	existing, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	p, err := projectFromInput(in, existing)
	if err != nil {
		return nil, err
	}
	if err := u.projects.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	u.bustCatalog(ctx)
	u.record(ctx, actorID, "project_updated", p.Title, "")
	return p, nil
}

func (u *Admin) DeleteProject(ctx context.Context, actorID, projectID uuid.UUID) error {
	if projectID == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	u.bustCatalog(ctx)
	u.record(ctx, actorID, "project_deleted", projectID.String(), "")
	return nil
}

func (u *Admin) GetStats(ctx context.Context) (*AdminStats, error) {
	counts, err := u.users.Counts(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	totalProjects, err := u.projects.CountAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	completed, err := u.completions.CountAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return &AdminStats{
		TotalUsers:        counts.Total,
		ActiveUsers:       counts.Active,
		TotalProjects:     totalProjects,
		CompletedProjects: completed,
	}, nil
}

func (u *Admin) ListActivity(ctx context.Context, limit int) ([]repository.ActivityEntry, error) {
	items, err := u.activity.ListRecent(ctx, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Admin) bustCatalog(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateCatalog(ctx); err != nil && u.logger != nil {
		u.logger.Printf("[Admin] catalog cache invalidation failed err=%v", err)
	}
}

func (u *Admin) record(ctx context.Context, actorID uuid.UUID, kind, subject, detail string) {
	if u.activity != nil {
		id := actorID
		if err := u.activity.Insert(ctx, kind, &id, subject, detail); err != nil && u.logger != nil {
			u.logger.Printf("[Admin] activity log failed kind=%s err=%v", kind, err)
		}
	}
	if u.notifier != nil {
		u.notifier.Publish(kind, subject, detail)
	}
}

func projectFromInput(in ProjectInput, existing *project.Project) (*project.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > 300 {
		return nil, ErrInvalidInput
	}
	diff := project.Difficulty(strings.TrimSpace(in.Difficulty))
	if diff != "" && !diff.Valid() {
		return nil, ErrInvalidInput
	}

	p := &project.Project{}
	if existing != nil {
		*p = *existing
	} else {
		p.IsActive = true
		p.Source = "admin"
	}

	p.Title = title
	p.Description = strings.TrimSpace(in.Description)
	p.Domain = strings.TrimSpace(in.Domain)
	p.TechStack = in.TechStack
	p.Difficulty = diff
	p.Tags = in.Tags
	p.EstimatedTime = strings.TrimSpace(in.EstimatedTime)
	p.Prerequisites = in.Prerequisites
	p.LearningOutcomes = in.LearningOutcomes
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return p, nil
}
