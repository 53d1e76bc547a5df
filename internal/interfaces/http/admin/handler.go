package admin

import (
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	adminapp "github.com/sngm3741/team-mood-services/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger    *zap.SugaredLogger
	companies adminapp.CompanyService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger    *zap.SugaredLogger
	Companies adminapp.CompanyService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:    cfg.Logger,
		companies: cfg.Companies,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/companies", h.companyCreateHandler())
	r.Delete("/companies/{domain}", h.companyDeleteHandler())
	r.Get("/companies/{domain}/users", h.companyUsersHandler())
}
