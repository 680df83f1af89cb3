package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"talent-track/internal/delivery/http/dto"
	"talent-track/internal/delivery/http/middleware"
	"talent-track/internal/domain/opening"
	"talent-track/internal/pkg/response"
	"talent-track/internal/repository"
	"talent-track/internal/usecase"
)

type OpeningHandler struct {
	uc usecase.OpeningUsecase
}

type openingRequest struct {
	Reference   string     `json:"reference"`
	Title       string     `json:"title"`
	Department  string     `json:"department"`
	Recruiter   string     `json:"recruiter"`
	Status      string     `json:"status"`
	OpenedAt    *time.Time `json:"opened_at"`
	StartDate   *time.Time `json:"start_date"`
	HiringCost  *float64   `json:"hiring_cost"`
	TargetHires int        `json:"target_hires"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func NewOpeningHandler(uc usecase.OpeningUsecase) *OpeningHandler {
	return &OpeningHandler{uc: uc}
}

func (h *OpeningHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Put("/:id/status", h.ChangeStatus)
}

func (h *OpeningHandler) List(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}

	items, err := h.uc.List(c.Context(), repository.OpeningFilter{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return mapOpeningError(err)
	}
	return response.Success(c, fiber.StatusOK, "", dto.FromOpenings(items))
}

func (h *OpeningHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapOpeningError(err)
	}
	return response.Success(c, fiber.StatusOK, "", dto.FromOpening(item))
}

func (h *OpeningHandler) Create(c fiber.Ctx) error {
	var req openingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.Create(c.Context(), openingInput(req))
	if err != nil {
		return mapOpeningError(err)
	}
	return response.Success(c, fiber.StatusCreated, "", dto.FromOpening(item))
}

func (h *OpeningHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req openingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.Update(c.Context(), id, openingInput(req))
	if err != nil {
		return mapOpeningError(err)
	}
	return response.Success(c, fiber.StatusOK, "", dto.FromOpening(item))
}

func (h *OpeningHandler) ChangeStatus(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.ChangeStatus(c.Context(), id, req.Status)
	if err != nil {
		return mapOpeningError(err)
	}
	return response.Success(c, fiber.StatusOK, "", dto.FromOpening(item))
}

func openingInput(req openingRequest) usecase.CreateOpeningInput {
	in := usecase.CreateOpeningInput{
		Reference:   req.Reference,
		Title:       req.Title,
		Department:  req.Department,
		Recruiter:   req.Recruiter,
		Status:      req.Status,
		StartDate:   req.StartDate,
		HiringCost:  req.HiringCost,
		TargetHires: req.TargetHires,
	}
	if req.OpenedAt != nil {
		in.OpenedAt = *req.OpenedAt
	}
	return in
}

func mapOpeningError(err error) error {
	switch {
	case errors.Is(err, opening.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job opening not found", nil, err)
	case errors.Is(err, opening.ErrReferenceTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Reference already in use", nil, err)
	case errors.Is(err, usecase.ErrUnknownJobStatus):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown job status", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
}
