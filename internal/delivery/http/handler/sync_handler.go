package handler

import (
	"github.com/gofiber/fiber/v3"

	"talent-track/internal/delivery/http/middleware"
	"talent-track/internal/pkg/response"
	"talent-track/internal/sheets"
)

type SyncHandler struct {
	syncer *sheets.Syncer
}

func NewSyncHandler(syncer *sheets.Syncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

func (h *SyncHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/sheets/import", h.Import)
	r.Post("/sheets/export", h.Export)
	r.Get("/sheets/status", h.Status)
}

func (h *SyncHandler) Import(c fiber.Ctx) error {
	if h.syncer == nil {
		return errSheetsDisabled()
	}

	summary, err := h.syncer.Import(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadGateway, "Sheets import failed", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "import complete", summary)
}

func (h *SyncHandler) Export(c fiber.Ctx) error {
	if h.syncer == nil {
		return errSheetsDisabled()
	}

	if err := h.syncer.Export(c.Context()); err != nil {
		return middleware.NewAppError(fiber.StatusBadGateway, "Sheets export failed", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "export complete", nil)
}

func (h *SyncHandler) Status(c fiber.Ctx) error {
	if h.syncer == nil {
		return response.Success(c, fiber.StatusOK, "", sheets.Status{Enabled: false})
	}
	return response.Success(c, fiber.StatusOK, "", h.syncer.Status())
}

func errSheetsDisabled() error {
	return middleware.NewAppError(fiber.StatusServiceUnavailable, "Google Sheets sync is not configured", nil, nil)
}
