package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"talent-track/internal/delivery/http/dto"
	"talent-track/internal/delivery/http/middleware"
	"talent-track/internal/domain/candidate"
	"talent-track/internal/pkg/response"
	"talent-track/internal/repository"
	"talent-track/internal/usecase"
)

type CandidateHandler struct {
	uc usecase.CandidateUsecase
}

type candidateRequest struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	OpeningID    string     `json:"opening_id"`
	Position     string     `json:"position"`
	Recruiter    string     `json:"recruiter"`
	Source       string     `json:"source"`
	Stage        string     `json:"stage"`
	AppliedAt    *time.Time `json:"applied_at"`
	HiredAt      *time.Time `json:"hired_at"`
	HRView       string     `json:"hr_view"`
	ManagerView  string     `json:"manager_view"`
	DecisionView string     `json:"decision_view"`
	Notes        string     `json:"notes"`
}

type stageRequest struct {
	Stage   string     `json:"stage"`
	HiredAt *time.Time `json:"hired_at"`
}

type withdrawRequest struct {
	Decision string `json:"decision"`
}

func NewCandidateHandler(uc usecase.CandidateUsecase) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Put("/:id/stage", h.ChangeStage)
	r.Delete("/:id", h.Withdraw)
}

func (h *CandidateHandler) List(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}

	f := repository.CandidateFilter{
		Stage:     c.Query("stage"),
		Recruiter: c.Query("recruiter"),
		Source:    c.Query("source"),
		Limit:     limit,
		Offset:    offset,
	}
	if raw := c.Query("opening_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid opening_id", nil, err)
		}
		f.OpeningID = id
	}

	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return mapCandidateError(err)
	}
	return response.Success(c, fiber.StatusOK, "", dto.FromCandidates(items))
}

func (h *CandidateHandler) Get(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCandidateError(err)
	}
	return response.Success(c, fiber.StatusOK, "", dto.FromCandidate(item))
}

func (h *CandidateHandler) Create(c fiber.Ctx) error {
	var req candidateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	openingID, err := uuid.Parse(req.OpeningID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid opening_id", nil, err)
	}

	in := usecase.CreateCandidateInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		OpeningID: openingID,
		Position:  req.Position,
		Recruiter: req.Recruiter,
		Source:    req.Source,
		Stage:     req.Stage,
		Notes:     req.Notes,
	}
	if req.AppliedAt != nil {
		in.AppliedAt = *req.AppliedAt
	}

	item, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapCandidateError(err)
	}
	return response.Success(c, fiber.StatusCreated, "", dto.FromCandidate(item))
}

func (h *CandidateHandler) Update(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req candidateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	in := usecase.UpdateCandidateInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Position:     req.Position,
		Recruiter:    req.Recruiter,
		Source:       req.Source,
		HiredAt:      req.HiredAt,
		HRView:       req.HRView,
		ManagerView:  req.ManagerView,
		DecisionView: req.DecisionView,
		Notes:        req.Notes,
	}
	if req.AppliedAt != nil {
		in.AppliedAt = *req.AppliedAt
	}

	item, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return mapCandidateError(err)
	}
	return response.Success(c, fiber.StatusOK, "", dto.FromCandidate(item))
}

func (h *CandidateHandler) ChangeStage(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req stageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	item, err := h.uc.ChangeStage(c.Context(), id, req.Stage, req.HiredAt)
	if err != nil {
		return mapCandidateError(err)
	}
	return response.Success(c, fiber.StatusOK, "", dto.FromCandidate(item))
}

func (h *CandidateHandler) Withdraw(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req withdrawRequest
	// Body is optional; the decision defaults to a refusal.
	_ = c.Bind().Body(&req)

	if err := h.uc.Withdraw(c.Context(), id, req.Decision); err != nil {
		return mapCandidateError(err)
	}
	return response.Success(c, fiber.StatusOK, "", nil)
}

func pathID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}

func queryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func mapCandidateError(err error) error {
	switch {
	case errors.Is(err, candidate.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate not found", nil, err)
	case errors.Is(err, usecase.ErrOpeningNotFound):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job opening not found", nil, err)
	case errors.Is(err, usecase.ErrUnknownStage):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown pipeline stage", nil, err)
	case errors.Is(err, usecase.ErrUnknownDecision):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Unknown final decision", nil, err)
	case errors.Is(err, usecase.ErrInvalidTimestamps):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Hire date precedes application date", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
}
