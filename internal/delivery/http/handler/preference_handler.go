package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"talent-track/internal/delivery/http/middleware"
	"talent-track/internal/domain/preference"
	"talent-track/internal/pkg/response"
	"talent-track/internal/usecase"
)

type PreferenceHandler struct {
	uc usecase.PreferenceUsecase
}

type preferenceRequest struct {
	Values []string `json:"values"`
}

func NewPreferenceHandler(uc usecase.PreferenceUsecase) *PreferenceHandler {
	return &PreferenceHandler{uc: uc}
}

func (h *PreferenceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.GetAll)
	r.Get("/:kind", h.GetKind)
	r.Put("/:kind", h.ReplaceKind)
}

func (h *PreferenceHandler) GetAll(c fiber.Ctx) error {
	prefs, err := h.uc.GetAll(c.Context())
	if err != nil {
		return mapPreferenceError(err)
	}
	return response.Success(c, fiber.StatusOK, "", prefs)
}

func (h *PreferenceHandler) GetKind(c fiber.Ctx) error {
	values, err := h.uc.GetKind(c.Context(), c.Params("kind"))
	if err != nil {
		return mapPreferenceError(err)
	}
	return response.Success(c, fiber.StatusOK, "", values)
}

func (h *PreferenceHandler) ReplaceKind(c fiber.Ctx) error {
	var req preferenceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	values, err := h.uc.ReplaceKind(c.Context(), c.Params("kind"), req.Values)
	if err != nil {
		return mapPreferenceError(err)
	}
	return response.Success(c, fiber.StatusOK, "", values)
}

func mapPreferenceError(err error) error {
	switch {
	case errors.Is(err, preference.ErrUnknownKind):
		return middleware.NewAppError(fiber.StatusNotFound, "Unknown preference kind", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
}
