package handler

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"talent-track/internal/delivery/http/middleware"
	"talent-track/internal/pkg/response"
	"talent-track/internal/workbook"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type WorkbookHandler struct {
	svc *workbook.Service
}

func NewWorkbookHandler(svc *workbook.Service) *WorkbookHandler {
	return &WorkbookHandler{svc: svc}
}

func (h *WorkbookHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/import", h.Import)
	r.Get("/export", h.Export)
}

func (h *WorkbookHandler) Import(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing file upload", nil, err)
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".xlsx") {
		return middleware.NewAppError(fiber.StatusUnsupportedMediaType, "Only .xlsx files are supported", nil, nil)
	}

	src, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable file upload", nil, err)
	}
	defer func() {
		_ = src.Close()
	}()

	summary, err := h.svc.Import(c.Context(), src)
	if err != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Workbook import failed", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "import complete", summary)
}

func (h *WorkbookHandler) Export(c fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.svc.Export(c.Context(), &buf); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	filename := fmt.Sprintf("recruitment-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
