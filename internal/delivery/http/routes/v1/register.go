package v1

import (
	"github.com/gofiber/fiber/v3"

	"talent-track/internal/delivery/http/handler"
	"talent-track/internal/delivery/http/middleware"
)

// Deps carries the handlers the v1 API mounts. Auth endpoints stay public;
// everything else sits behind the bearer-token middleware.
type Deps struct {
	AuthMW      *middleware.AuthMiddleware
	Auth        *handler.AuthHandler
	Candidates  *handler.CandidateHandler
	Openings    *handler.OpeningHandler
	Preferences *handler.PreferenceHandler
	Metrics     *handler.MetricsHandler
	Sync        *handler.SyncHandler
	Workbook    *handler.WorkbookHandler
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	if d.Auth != nil {
		d.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r
	if d.AuthMW != nil {
		protected = r.Group("", d.AuthMW.Middleware())
	}

	if d.Candidates != nil {
		d.Candidates.RegisterRoutes(protected.Group("/candidates"))
	}
	if d.Openings != nil {
		d.Openings.RegisterRoutes(protected.Group("/openings"))
	}
	if d.Preferences != nil {
		d.Preferences.RegisterRoutes(protected.Group("/preferences"))
	}
	if d.Metrics != nil {
		d.Metrics.RegisterRoutes(protected.Group("/metrics"))
	}
	if d.Sync != nil {
		d.Sync.RegisterRoutes(protected.Group("/sync"))
	}
	if d.Workbook != nil {
		d.Workbook.RegisterRoutes(protected.Group("/workbook"))
	}
}
