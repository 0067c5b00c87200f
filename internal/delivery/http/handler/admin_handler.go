package handler

import (
	"project-compass/internal/delivery/http/dto"
	"project-compass/internal/delivery/http/middleware"
	"project-compass/internal/pkg/response"
	"project-compass/internal/repository"
	"project-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AdminHandler struct {
	uc usecase.AdminUsecase
}

type adminProjectRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Domain           string   `json:"domain"`
	TechStack        []string `json:"tech_stack"`
	Difficulty       string   `json:"difficulty"`
	Tags             []string `json:"tags"`
	EstimatedTime    string   `json:"estimated_time"`
	Prerequisites    []string `json:"prerequisites"`
	LearningOutcomes []string `json:"learning_outcomes"`
	IsActive         *bool    `json:"is_active"`
}

type setUserStatusRequest struct {
	Status string `json:"status"`
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/users", h.ListUsers)
	r.Patch("/users/:id/status", h.SetUserStatus)
	r.Delete("/users/:id", h.DeleteUser)

	r.Post("/projects", h.CreateProject)
	r.Put("/projects/:id", h.UpdateProject)
	r.Delete("/projects/:id", h.DeleteProject)

	r.Get("/stats", h.Stats)
	r.Get("/activity", h.Activity)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	items, total, err := h.uc.ListUsers(c.Context(), repository.UserListFilter{
		Search: c.Query("q"),
		Status: c.Query("status"),
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
	})
	if err != nil {
		return mapCommonUsecaseError(err)
	}

	users := make([]dto.UserResponse, 0, len(items))
	for i := range items {
		users = append(users, dto.FromUser(&items[i]))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"items": users,
		"total": total,
	})
}

func (h *AdminHandler) SetUserStatus(c fiber.Ctx) error {
	actorID, targetID, err := h.actorAndTarget(c)
	if err != nil {
		return err
	}

	var req setUserStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.SetUserStatus(c.Context(), actorID, targetID, req.Status); err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	actorID, targetID, err := h.actorAndTarget(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeleteUser(c.Context(), actorID, targetID); err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) CreateProject(c fiber.Ctx) error {
	actorID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req adminProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.CreateProject(c.Context(), actorID, projectInputFromRequest(req))
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromProject(*p))
}

func (h *AdminHandler) UpdateProject(c fiber.Ctx) error {
	actorID, projectID, err := h.actorAndTarget(c)
	if err != nil {
		return err
	}

	var req adminProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.UpdateProject(c.Context(), actorID, projectID, projectInputFromRequest(req))
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProject(*p))
}

func (h *AdminHandler) DeleteProject(c fiber.Ctx) error {
	actorID, projectID, err := h.actorAndTarget(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeleteProject(c.Context(), actorID, projectID); err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AdminHandler) Stats(c fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, stats)
}

func (h *AdminHandler) Activity(c fiber.Ctx) error {
	items, err := h.uc.ListActivity(c.Context(), queryInt(c, "limit", 0))
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromActivity(items))
}

func (h *AdminHandler) actorAndTarget(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	actorID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return actorID, targetID, nil
}

func projectInputFromRequest(req adminProjectRequest) usecase.ProjectInput {
	return usecase.ProjectInput{
		Title:            req.Title,
		Description:      req.Description,
		Domain:           req.Domain,
		TechStack:        req.TechStack,
		Difficulty:       req.Difficulty,
		Tags:             req.Tags,
		EstimatedTime:    req.EstimatedTime,
		Prerequisites:    req.Prerequisites,
		LearningOutcomes: req.LearningOutcomes,
		IsActive:         req.IsActive,
	}
}
