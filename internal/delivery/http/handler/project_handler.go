package handler

import (
	"errors"
	"strconv"

	"project-compass/internal/delivery/http/dto"
	"project-compass/internal/delivery/http/middleware"
	"project-compass/internal/pkg/response"
	"project-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	uc usecase.ProjectListUsecase
}

func NewProjectHandler(uc usecase.ProjectListUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/meta", h.Meta)
	r.Get("/:id", h.Get)
}

// List serves the browsable catalog. Requests without a session get a
// short preview instead of the full listing.
func (h *ProjectHandler) List(c fiber.Ctx) error {
	_, authenticated := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)

	params := usecase.ProjectListParams{
		Query:      c.Query("q"),
		Domain:     c.Query("domain"),
		Difficulty: c.Query("difficulty"),
		Tech:       c.Query("tech"),
		Limit:      queryInt(c, "limit", 0),
		Offset:     queryInt(c, "offset", 0),
		Preview:    !authenticated,
	}

	res, err := h.uc.ListProjects(c.Context(), params)
	if err != nil {
		return mapCommonUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ProjectListResponse{
		Items:   dto.FromProjects(res.Items),
		Total:   res.Total,
		Preview: res.Preview,
	})
}

func (h *ProjectHandler) Meta(c fiber.Ctx) error {
	f, err := h.uc.GetFacets(c.Context())
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ProjectFacetsResponse{
		Domains:      f.Domains,
		Difficulties: f.Difficulties,
		TechStack:    f.TechStack,
	})
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid project id", nil, err)
	}

	p, err := h.uc.GetProject(c.Context(), id)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProject(*p))
}

func queryInt(c fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func mapCommonUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
