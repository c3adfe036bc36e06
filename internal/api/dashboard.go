package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pathlight-labs/pathlight/internal/identity"
)

// DashboardHandler resolves the caller's role to their dashboard.
type DashboardHandler struct{}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// RegisterRoutes registers the dashboard route.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/dashboard", h.HandleDashboard)
}

// HandleDashboard returns the caller's role and the dashboard path for it.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	role := identity.RoleFromContext(r.Context())
	JSON(w, http.StatusOK, map[string]string{
		"username": identity.UsernameFromContext(r.Context()),
		"role":     string(role),
		"redirect": role.DashboardPath(),
	})
}
