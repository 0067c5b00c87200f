package user

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"project-compass/internal/domain/user"
	"project-compass/internal/repository"

	"github.com/google/uuid"
)

type profileRepo struct {
	stored   *user.User
	lastUp   *repository.ProfileUpdate
	notFound bool
}

func (m profileRepo) Create(context.Context, *user.User) error { return nil }
func (m profileRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if m.notFound || m.stored == nil || m.stored.ID != id {
		return nil, repository.ErrUserNotFound
	}
	cp := *m.stored
	return &cp, nil
}
func (m profileRepo) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, repository.ErrUserNotFound
}
func (m profileRepo) UpdateProfile(_ context.Context, id uuid.UUID, up repository.ProfileUpdate) (*user.User, error) {
	if m.notFound || m.stored == nil || m.stored.ID != id {
		return nil, repository.ErrUserNotFound
	}
	*m.lastUp = up
	cp := *m.stored
	cp.Name = up.Name
	if up.Interests != nil {
		cp.Interests = up.Interests
	}
	if up.Skills != nil {
		cp.Skills = up.Skills
	}
	return &cp, nil
}
func (m profileRepo) TouchLastLogin(context.Context, uuid.UUID) error { return nil }
func (m profileRepo) List(context.Context, repository.UserListFilter) ([]user.User, int, error) {
	return nil, 0, nil
}
func (m profileRepo) SetStatus(context.Context, uuid.UUID, string) error { return nil }
func (m profileRepo) Delete(context.Context, uuid.UUID) error            { return nil }
func (m profileRepo) Counts(context.Context) (*repository.UserCounts, error) {
	return &repository.UserCounts{}, nil
}

type patternCache struct {
	patterns *[]string
}

func (c patternCache) Delete(context.Context, string) error { return nil }
func (c patternCache) DeleteByPattern(_ context.Context, pattern string) error {
	*c.patterns = append(*c.patterns, pattern)
	return nil
}

func TestGetMe_StripsPasswordHash(t *testing.T) {
	id := uuid.New()
	svc := NewService(profileRepo{stored: &user.User{ID: id, PasswordHash: "secret"}}, nil, nil)

	u, err := svc.GetMe(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must be stripped")
	}

	if _, err := svc.GetMe(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMe_CleansListsAndKeepsNil(t *testing.T) {
	id := uuid.New()
	var captured repository.ProfileUpdate
	repo := profileRepo{
		stored: &user.User{ID: id, Skills: []string{"Go"}},
		lastUp: &captured,
	}
	svc := NewService(repo, nil, nil)

	_, err := svc.UpdateMe(context.Background(), id, UpdateProfileInput{
		Name:      " Ada ",
		Interests: []string{" Web Development ", "  ", "AI"},
		Skills:    nil,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(captured.Interests, []string{"Web Development", "AI"}) {
		t.Fatalf("interests not cleaned: %v", captured.Interests)
	}
	if captured.Skills != nil {
		t.Fatalf("nil skills must stay nil, got %v", captured.Skills)
	}
	if captured.Name != "Ada" {
		t.Fatalf("name not trimmed: %q", captured.Name)
	}

	// Empty non-nil slice clears the field instead of keeping it.
	_, err = svc.UpdateMe(context.Background(), id, UpdateProfileInput{Skills: []string{}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if captured.Skills == nil || len(captured.Skills) != 0 {
		t.Fatalf("empty skills must stay empty non-nil, got %#v", captured.Skills)
	}
}

func TestUpdateMe_InvalidatesRecommendationCache(t *testing.T) {
	id := uuid.New()
	var captured repository.ProfileUpdate
	var patterns []string
	svc := NewService(
		profileRepo{stored: &user.User{ID: id}, lastUp: &captured},
		patternCache{patterns: &patterns},
		nil,
	)

	if _, err := svc.UpdateMe(context.Background(), id, UpdateProfileInput{Name: "Ada"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(patterns) != 1 || !strings.HasPrefix(patterns[0], "recs:user:"+id.String()) {
		t.Fatalf("expected recommendation cache drop for user, got %v", patterns)
	}
}

func TestUpdateMe_FieldLengthCaps(t *testing.T) {
	svc := NewService(profileRepo{}, nil, nil)

	_, err := svc.UpdateMe(context.Background(), uuid.New(), UpdateProfileInput{
		Name: strings.Repeat("a", 201),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("long name: expected ErrInvalidInput, got %v", err)
	}
	_, err = svc.UpdateMe(context.Background(), uuid.New(), UpdateProfileInput{
		Bio: strings.Repeat("b", 2001),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("long bio: expected ErrInvalidInput, got %v", err)
	}
}
