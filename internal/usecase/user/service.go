package user

import (
	"context"
	"errors"
	"log"
	"strings"

	"project-compass/internal/domain/user"
	"project-compass/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

type recsInvalidator interface {
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// UpdateProfileInput mirrors the editable profile. Nil Interests/Skills
// mean "leave as stored"; an empty slice clears the field.
type UpdateProfileInput struct {
	Name            string
	Bio             string
	Interests       []string
	Skills          []string
	ExperienceLevel string
	AcademicBranch  string
	AcademicSem     string
	AcademicUni     string
}

type Service struct {
	users  repository.UserRepository
	cache  recsInvalidator
	logger *log.Logger
}

func NewService(users repository.UserRepository, cache recsInvalidator, logger *log.Logger) *Service {
	return &Service{users: users, cache: cache, logger: logger}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	return sanitize(usr), nil
}

// UpdateMe saves the profile and drops the user's cached recommendations;
// the next request re-ranks against the new interests and skills.
func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*user.User, error) {
	if len(in.Name) > 200 || len(in.Bio) > 2000 {
		return nil, ErrInvalidInput
	}

	up := repository.ProfileUpdate{
		Name:            strings.TrimSpace(in.Name),
		Bio:             strings.TrimSpace(in.Bio),
		Interests:       cleanList(in.Interests),
		Skills:          cleanList(in.Skills),
		ExperienceLevel: strings.TrimSpace(in.ExperienceLevel),
		AcademicBranch:  strings.TrimSpace(in.AcademicBranch),
		AcademicSem:     strings.TrimSpace(in.AcademicSem),
		AcademicUni:     strings.TrimSpace(in.AcademicUni),
	}

	usr, err := s.users.UpdateProfile(ctx, userID, up)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "recs:user:"+userID.String()+":*"); err != nil && s.logger != nil {
			s.logger.Printf("[Users] recommendation cache invalidation failed user=%s err=%v", userID, err)
		}
	}
	return sanitize(usr), nil
}

// cleanList trims entries and drops blanks while preserving the
// nil-vs-empty distinction the ranker relies on.
func cleanList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func sanitize(u *user.User) *user.User {
	u.PasswordHash = ""
	return u
}
