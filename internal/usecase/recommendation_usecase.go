package usecase

import (
	"context"
	"errors"
	"log"

	"project-compass/internal/domain/project"
	"project-compass/internal/domain/recommend"
	"project-compass/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultRecommendationLimit = 6
	maxRecommendationLimit     = 20
)

type RecommendationItem struct {
	Project project.Project `json:"project"`
	Score   int             `json:"score"`
	Reason  string          `json:"reason"`
}

type RecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]RecommendationItem, error)
}

type Recommendation struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	ranker   *recommend.Ranker
	cache    CatalogCache
	logger   *log.Logger
}

func NewRecommendationUsecase(
	users repository.UserRepository,
	projects repository.ProjectRepository,
	ranker *recommend.Ranker,
	cache CatalogCache,
	logger *log.Logger,
) *Recommendation {
	if ranker == nil {
		ranker = recommend.NewRanker(nil)
	}
	return &Recommendation{users: users, projects: projects, ranker: ranker, cache: cache, logger: logger}
}

// GetRecommendations ranks the active catalog for the user. A nil userID
// serves the anonymous discovery path: a shuffled sample with generic
// reasons. Only the deterministic scored path is cached.
func (u *Recommendation) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]RecommendationItem, error) {
	if limit == 0 {
		limit = defaultRecommendationLimit
	}
	if limit > maxRecommendationLimit {
		limit = maxRecommendationLimit
	}

	var prof *recommend.Profile
	if userID != uuid.Nil {
		usr, err := u.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, ErrUnauthorized
			}
			return nil, ErrInternal
		}
		prof = &recommend.Profile{
			Interests:      usr.Interests,
			Skills:         usr.Skills,
			AcademicBranch: usr.AcademicBranch,
		}
	}

	scored := recommend.HasInterests(prof)

	cacheKey := ""
	if scored && u.cache != nil {
		cacheKey = RecommendationCacheKey(userID, limit)
		var cached []RecommendationItem
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Recs] Cache HIT: %s", cacheKey)
			}
			return cached, nil
		}
	}

	catalog, err := u.projects.ListActive(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	ranked, err := u.ranker.Rank(prof, catalog, limit)
	if err != nil {
		if errors.Is(err, recommend.ErrNegativeLimit) {
			return nil, ErrInvalidInput
		}
		return nil, ErrInternal
	}

	out := make([]RecommendationItem, 0, len(ranked))
	for _, p := range ranked {
		out = append(out, RecommendationItem{
			Project: p,
			Score:   recommend.Score(prof, p),
			Reason:  recommend.Explain(p, prof),
		})
	}

	if scored && u.cache != nil && cacheKey != "" {
		_ = u.cache.SetJSON(ctx, cacheKey, out, 0)
	}
	return out, nil
}
