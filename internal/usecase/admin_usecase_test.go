package usecase

import (
	"context"
	"errors"
	"testing"

	"project-compass/internal/repository"

	"github.com/google/uuid"
)

type mockCompletionRepo struct {
	completed map[string]bool
	total     int
}

func (m *mockCompletionRepo) MarkCompleted(_ context.Context, userID, projectID uuid.UUID) (bool, error) {
	if m.completed == nil {
		m.completed = map[string]bool{}
	}
	key := userID.String() + "/" + projectID.String()
	if m.completed[key] {
		return false, nil
	}
	m.completed[key] = true
	return true, nil
}
func (m *mockCompletionRepo) ListByUser(context.Context, uuid.UUID) ([]repository.Completion, error) {
	return nil, nil
}
func (m *mockCompletionRepo) CountAll(context.Context) (int, error) { return m.total, nil }

type recordingActivityRepo struct {
	kinds *[]string
}

func (m recordingActivityRepo) Insert(_ context.Context, kind string, _ *uuid.UUID, _, _ string) error {
	*m.kinds = append(*m.kinds, kind)
	return nil
}
func (m recordingActivityRepo) ListRecent(context.Context, int) ([]repository.ActivityEntry, error) {
	return nil, nil
}

type recordingNotifier struct {
	kinds *[]string
}

func (n recordingNotifier) Publish(kind, _, _ string) {
	*n.kinds = append(*n.kinds, kind)
}

func TestAdmin_SetUserStatus_Guards(t *testing.T) {
	adminID := uuid.New()
	uc := NewAdminUsecase(mockUserRepo{}, mockProjectRepo{}, &mockCompletionRepo{}, nil, nil, nil, nil)

	if err := uc.SetUserStatus(context.Background(), adminID, uuid.New(), "banished"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status: expected ErrInvalidInput, got %v", err)
	}
	if err := uc.SetUserStatus(context.Background(), adminID, adminID, "inactive"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("self status change: expected ErrInvalidInput, got %v", err)
	}
}

func TestAdmin_DeleteUser_NoSelfDelete(t *testing.T) {
	adminID := uuid.New()
	uc := NewAdminUsecase(mockUserRepo{}, mockProjectRepo{}, &mockCompletionRepo{}, nil, nil, nil, nil)

	if err := uc.DeleteUser(context.Background(), adminID, adminID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAdmin_CreateProject_Validation(t *testing.T) {
	uc := NewAdminUsecase(mockUserRepo{}, mockProjectRepo{}, &mockCompletionRepo{}, nil, nil, nil, nil)

	if _, err := uc.CreateProject(context.Background(), uuid.New(), ProjectInput{Title: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank title: expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.CreateProject(context.Background(), uuid.New(), ProjectInput{
		Title: "T", Difficulty: "Impossible",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad difficulty: expected ErrInvalidInput, got %v", err)
	}

	p, err := uc.CreateProject(context.Background(), uuid.New(), ProjectInput{
		Title: " Realtime Chat ", Difficulty: "Beginner",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Title != "Realtime Chat" {
		t.Fatalf("title not trimmed: %q", p.Title)
	}
	if !p.IsActive || p.Source != "admin" {
		t.Fatalf("new project defaults wrong: active=%v source=%q", p.IsActive, p.Source)
	}
}

func TestAdmin_CreateProject_RecordsAndNotifies(t *testing.T) {
	var logged, published []string
	cache := newFakeCache()
	cache.store["projects:meta"] = []byte(`{}`)

	uc := NewAdminUsecase(
		mockUserRepo{}, mockProjectRepo{}, &mockCompletionRepo{},
		recordingActivityRepo{kinds: &logged}, cache, recordingNotifier{kinds: &published}, nil,
	)

	if _, err := uc.CreateProject(context.Background(), uuid.New(), ProjectInput{Title: "T"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(logged) != 1 || logged[0] != "project_created" {
		t.Fatalf("activity log entries: %v", logged)
	}
	if len(published) != 1 || published[0] != "project_created" {
		t.Fatalf("published events: %v", published)
	}
	if _, ok := cache.store["projects:meta"]; ok {
		t.Fatalf("catalog cache should be invalidated on create")
	}
}

func TestAdmin_GetStats(t *testing.T) {
	uc := NewAdminUsecase(
		mockUserRepo{}, mockProjectRepo{active: sampleProjects()},
		&mockCompletionRepo{total: 7}, nil, nil, nil, nil,
	)

	stats, err := uc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stats.TotalProjects != 3 || stats.CompletedProjects != 7 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestCompletion_Idempotent(t *testing.T) {
	p := sampleProjects()[0]
	p.IsActive = true
	repo := singleProjectRepo{p: p}
	completions := &mockCompletionRepo{}
	var logged, published []string

	uc := NewCompletionUsecase(repo, completions, recordingActivityRepo{kinds: &logged}, recordingNotifier{kinds: &published}, nil)
	userID := uuid.New()

	created, err := uc.CompleteProject(context.Background(), userID, p.ID)
	if err != nil || !created {
		t.Fatalf("first completion: created=%v err=%v", created, err)
	}
	created, err = uc.CompleteProject(context.Background(), userID, p.ID)
	if err != nil || created {
		t.Fatalf("second completion: created=%v err=%v", created, err)
	}
	if len(logged) != 1 {
		t.Fatalf("expected exactly one activity entry, got %d", len(logged))
	}
	if len(published) != 1 || published[0] != "project_completed" {
		t.Fatalf("published events: %v", published)
	}
}

func TestCompletion_UnknownProject(t *testing.T) {
	uc := NewCompletionUsecase(mockProjectRepo{}, &mockCompletionRepo{}, nil, nil, nil)

	_, err := uc.CompleteProject(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
