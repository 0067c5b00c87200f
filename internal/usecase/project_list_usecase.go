package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"project-compass/internal/domain/project"
	"project-compass/internal/repository"

	"github.com/google/uuid"
)

// anonymousPreviewLimit caps how much of the catalog is shown without a
// session.
const anonymousPreviewLimit = 4

type ProjectListParams struct {
	Query      string
	Domain     string
	Difficulty string
	Tech       string
	Limit      int
	Offset     int

	// Preview is set for anonymous requests.
	Preview bool
}

type ProjectListResult struct {
	Items   []project.Project `json:"items"`
	Total   int               `json:"total"`
	Preview bool              `json:"preview"`
}

type ProjectListUsecase interface {
	ListProjects(ctx context.Context, params ProjectListParams) (*ProjectListResult, error)
	GetProject(ctx context.Context, id uuid.UUID) (*project.Project, error)
	GetFacets(ctx context.Context) (*repository.ProjectFacets, error)
}

type ProjectList struct {
	projects repository.ProjectRepository
	cache    CatalogCache
	logger   *log.Logger
}

func NewProjectListUsecase(projects repository.ProjectRepository, cache CatalogCache, logger *log.Logger) *ProjectList {
	return &ProjectList{projects: projects, cache: cache, logger: logger}
}

func (u *ProjectList) ListProjects(ctx context.Context, params ProjectListParams) (*ProjectListResult, error) {
	if params.Limit == 0 {
		params.Limit = 20
	}
	if params.Limit < 0 || params.Limit > 100 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}
	if params.Preview {
		params.Offset = 0
		if params.Limit > anonymousPreviewLimit {
			params.Limit = anonymousPreviewLimit
		}
	}

	cacheKey := CatalogSearchCacheKey(params)
	lockKey := CatalogSearchLockKey(cacheKey)

	if u.cache != nil {
		var cached ProjectListResult
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Projects] Cache HIT: %s", cacheKey)
			}
			return &cached, nil
		}
	}

	lockAcquired := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		switch {
		case err == nil && ok:
			lockAcquired = true
		case err == nil && !ok:
			// Another request is filling the same key; a short wait
			// usually turns this into a hit.
			time.Sleep(300 * time.Millisecond)
			var cached ProjectListResult
			hit, err2 := u.cache.GetJSON(ctx, cacheKey, &cached)
			if err2 == nil && hit {
				return &cached, nil
			}
		}
	}

	items, total, err := u.projects.ListForCatalog(ctx, repository.ProjectListFilter{
		Query:      params.Query,
		Domain:     params.Domain,
		Difficulty: params.Difficulty,
		Tech:       params.Tech,
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		return nil, ErrInternal
	}

	res := &ProjectListResult{Items: items, Total: total, Preview: params.Preview}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, res, 0)
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}
	return res, nil
}

func (u *ProjectList) GetProject(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidInput
	}
	p, err := u.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	if !p.IsActive {
		return nil, ErrNotFound
	}
	return p, nil
}

func (u *ProjectList) GetFacets(ctx context.Context) (*repository.ProjectFacets, error) {
	if u.cache != nil {
		var cached repository.ProjectFacets
		hit, err := u.cache.GetJSON(ctx, "projects:meta", &cached)
		if err == nil && hit {
			return &cached, nil
		}
	}

	f, err := u.projects.Facets(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, "projects:meta", f, 0)
	}
	return f, nil
}
