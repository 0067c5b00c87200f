package handler

import (
	"project-compass/internal/delivery/http/middleware"
	"project-compass/internal/pkg/response"
	"project-compass/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompletionHandler struct {
	uc usecase.CompletionUsecase
}

func NewCompletionHandler(uc usecase.CompletionUsecase) *CompletionHandler {
	return &CompletionHandler{uc: uc}
}

func (h *CompletionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:id/complete", h.Complete)
}

func (h *CompletionHandler) Complete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid project id", nil, err)
	}

	created, err := h.uc.CompleteProject(c.Context(), userID, projectID)
	if err != nil {
		return mapCommonUsecaseError(err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return response.Success(c, status, response.MessageOK, map[string]any{"created": created})
}
