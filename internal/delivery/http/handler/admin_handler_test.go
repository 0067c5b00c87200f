package handler

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"project-compass/internal/delivery/http/middleware"
	"project-compass/internal/domain/project"
	"project-compass/internal/domain/user"
	"project-compass/internal/repository"
	"project-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type stubAdminUsecase struct {
	statusChanges *[]string
}

func (s stubAdminUsecase) ListUsers(context.Context, repository.UserListFilter) ([]user.User, int, error) {
	return nil, 0, nil
}
func (s stubAdminUsecase) SetUserStatus(_ context.Context, _, userID uuid.UUID, status string) error {
	*s.statusChanges = append(*s.statusChanges, userID.String()+"="+status)
	return nil
}
func (s stubAdminUsecase) DeleteUser(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s stubAdminUsecase) CreateProject(context.Context, uuid.UUID, usecase.ProjectInput) (*project.Project, error) {
	return &project.Project{}, nil
}
func (s stubAdminUsecase) UpdateProject(context.Context, uuid.UUID, uuid.UUID, usecase.ProjectInput) (*project.Project, error) {
	return &project.Project{}, nil
}
func (s stubAdminUsecase) DeleteProject(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (s stubAdminUsecase) GetStats(context.Context) (*usecase.AdminStats, error) {
	return &usecase.AdminStats{}, nil
}
func (s stubAdminUsecase) ListActivity(context.Context, int) ([]repository.ActivityEntry, error) {
	return nil, nil
}

func newAdminTestApp(uc usecase.AdminUsecase) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())
	app.Use(func(c fiber.Ctx) error {
		c.Locals(middleware.CtxUserIDKey, uuid.New())
		return c.Next()
	})
	NewAdminHandler(uc).RegisterRoutes(app.Group("/admin"))
	return app
}

func TestAdminHandler_SetUserStatusRoute(t *testing.T) {
	var changes []string
	app := newAdminTestApp(stubAdminUsecase{statusChanges: &changes})

	target := uuid.New()
	req, err := http.NewRequest(http.MethodPatch,
		"/admin/users/"+target.String()+"/status",
		bytes.NewReader([]byte(`{"status":"inactive"}`)))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(changes) != 1 || changes[0] != target.String()+"=inactive" {
		t.Fatalf("unexpected status changes: %v", changes)
	}
}

func TestAdminHandler_SetUserStatusRejectsBadID(t *testing.T) {
	var changes []string
	app := newAdminTestApp(stubAdminUsecase{statusChanges: &changes})

	req, err := http.NewRequest(http.MethodPatch,
		"/admin/users/not-a-uuid/status",
		bytes.NewReader([]byte(`{"status":"inactive"}`)))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if len(changes) != 0 {
		t.Fatalf("no status change expected, got %v", changes)
	}
}
