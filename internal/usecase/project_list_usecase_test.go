package usecase

import (
	"context"
	"errors"
	"testing"

	"project-compass/internal/domain/project"
	"project-compass/internal/repository"

	"github.com/google/uuid"
)

// capturingProjectRepo records the filter the usecase hands to the catalog
// query so tests can assert on clamping.
type capturingProjectRepo struct {
	mockProjectRepo
	lastFilter *repository.ProjectListFilter
}

func (m capturingProjectRepo) ListForCatalog(ctx context.Context, f repository.ProjectListFilter) ([]project.Project, int, error) {
	*m.lastFilter = f
	return m.mockProjectRepo.ListForCatalog(ctx, f)
}

// singleProjectRepo serves exactly one project by its ID.
type singleProjectRepo struct {
	mockProjectRepo
	p project.Project
}

func (m singleProjectRepo) GetByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	if id != m.p.ID {
		return nil, repository.ErrProjectNotFound
	}
	cp := m.p
	return &cp, nil
}

func TestProjectList_InvalidLimit(t *testing.T) {
	uc := NewProjectListUsecase(mockProjectRepo{}, nil, nil)

	for _, limit := range []int{-1, 101} {
		_, err := uc.ListProjects(context.Background(), ProjectListParams{Limit: limit})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("limit %d: expected ErrInvalidInput, got %v", limit, err)
		}
	}

	_, err := uc.ListProjects(context.Background(), ProjectListParams{Offset: -3})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative offset: expected ErrInvalidInput, got %v", err)
	}
}

func TestProjectList_PreviewClampsLimitAndOffset(t *testing.T) {
	var captured repository.ProjectListFilter
	repo := capturingProjectRepo{
		mockProjectRepo: mockProjectRepo{active: sampleProjects()},
		lastFilter:      &captured,
	}
	uc := NewProjectListUsecase(repo, nil, nil)

	res, err := uc.ListProjects(context.Background(), ProjectListParams{Limit: 50, Offset: 40, Preview: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !res.Preview {
		t.Fatalf("expected preview flag on result")
	}
	if captured.Limit != anonymousPreviewLimit {
		t.Fatalf("expected limit clamped to %d, got %d", anonymousPreviewLimit, captured.Limit)
	}
	if captured.Offset != 0 {
		t.Fatalf("expected offset reset to 0, got %d", captured.Offset)
	}
}

func TestProjectList_CacheHitSkipsRepository(t *testing.T) {
	cache := newFakeCache()
	uc := NewProjectListUsecase(mockProjectRepo{active: sampleProjects()}, cache, nil)

	params := ProjectListParams{Domain: "Web Development", Limit: 10}

	first, err := uc.ListProjects(context.Background(), params)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected 1 cache set after miss, got %d", cache.sets)
	}

	// Swap in a repo that errors; a cache hit must not touch it.
	uc = NewProjectListUsecase(mockProjectRepo{err: errors.New("db down")}, cache, nil)
	second, err := uc.ListProjects(context.Background(), params)
	if err != nil {
		t.Fatalf("expected cache hit, got err: %v", err)
	}
	if second.Total != first.Total || len(second.Items) != len(first.Items) {
		t.Fatalf("cached result mismatch: %d/%d vs %d/%d",
			second.Total, len(second.Items), first.Total, len(first.Items))
	}
}

func TestProjectList_GetProjectHidesInactive(t *testing.T) {
	p := sampleProjects()[0]
	p.IsActive = false
	uc := NewProjectListUsecase(singleProjectRepo{p: p}, nil, nil)

	_, err := uc.GetProject(context.Background(), p.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive project, got %v", err)
	}

	_, err = uc.GetProject(context.Background(), uuid.Nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil id, got %v", err)
	}
}
