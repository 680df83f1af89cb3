package handler

import (
	"github.com/gofiber/fiber/v3"

	"talent-track/internal/pkg/response"
	"talent-track/internal/usecase"
)

type MetricsHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewMetricsHandler(uc usecase.AnalyticsUsecase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

func (h *MetricsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/dashboard", h.Dashboard)
	r.Get("/time-to-hire", h.TimeToHire)
	r.Get("/cost-per-hire", h.CostPerHire)
	r.Get("/funnel", h.Funnel)
	r.Get("/sources", h.Sources)
	r.Get("/recruiters", h.Recruiters)
	r.Get("/departments", h.Departments)
	r.Get("/trends", h.Trends)
}

func (h *MetricsHandler) Dashboard(c fiber.Ctx) error {
	data, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "", data)
}

func (h *MetricsHandler) TimeToHire(c fiber.Ctx) error {
	data, err := h.uc.TimeToHire(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "", data)
}

func (h *MetricsHandler) CostPerHire(c fiber.Ctx) error {
	data, err := h.uc.CostPerHire(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "", data)
}

func (h *MetricsHandler) Funnel(c fiber.Ctx) error {
	data, err := h.uc.Funnel(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "", data)
}

func (h *MetricsHandler) Sources(c fiber.Ctx) error {
	data, err := h.uc.Sources(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "", data)
}

func (h *MetricsHandler) Recruiters(c fiber.Ctx) error {
	data, err := h.uc.Recruiters(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "", data)
}

func (h *MetricsHandler) Departments(c fiber.Ctx) error {
	data, err := h.uc.Departments(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "", data)
}

func (h *MetricsHandler) Trends(c fiber.Ctx) error {
	data, err := h.uc.Trends(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, "", data)
}
