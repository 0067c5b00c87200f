package handler

import (
	"errors"

	"project-compass/internal/delivery/http/dto"
	"project-compass/internal/delivery/http/middleware"
	"project-compass/internal/pkg/response"
	"project-compass/internal/usecase"
	useruc "project-compass/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	profiles    *useruc.Service
	completions usecase.CompletionUsecase
}

type updateProfileRequest struct {
	Name            string   `json:"name"`
	Bio             string   `json:"bio"`
	Interests       []string `json:"interests"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level"`

	AcademicBranch     string `json:"academic_branch"`
	AcademicSemester   string `json:"academic_semester"`
	AcademicUniversity string `json:"academic_university"`
}

func NewUserHandler(profiles *useruc.Service, completions usecase.CompletionUsecase) *UserHandler {
	return &UserHandler{profiles: profiles, completions: completions}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.Me)
	r.Put("/me", h.UpdateMe)
	r.Get("/me/completions", h.Completions)
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	usr, err := h.profiles.GetMe(c.Context(), userID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.profiles.UpdateMe(c.Context(), userID, useruc.UpdateProfileInput{
		Name:            req.Name,
		Bio:             req.Bio,
		Interests:       req.Interests,
		Skills:          req.Skills,
		ExperienceLevel: req.ExperienceLevel,
		AcademicBranch:  req.AcademicBranch,
		AcademicSem:     req.AcademicSemester,
		AcademicUni:     req.AcademicUniversity,
	})
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(usr))
}

func (h *UserHandler) Completions(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.completions.ListCompletions(c.Context(), userID)
	if err != nil {
		return mapCommonUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompletions(items))
}

func mapProfileError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, useruc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
