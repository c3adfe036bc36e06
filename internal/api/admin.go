package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pathlight-labs/pathlight/internal/domain"
	"github.com/pathlight-labs/pathlight/internal/identity"
	"github.com/pathlight-labs/pathlight/internal/store"
)

// AdminHandler exposes user management to admins.
type AdminHandler struct {
	repo store.Repository
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(repo store.Repository) *AdminHandler {
	return &AdminHandler{repo: repo}
}

// RegisterRoutes registers admin routes. Every route requires the admin role.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Get("/users", h.HandleListUsers)
		r.Put("/users/{id}/role", h.HandleUpdateRole)
	})
}

func (h *AdminHandler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity.RoleFromContext(r.Context()) != domain.RoleAdmin {
			Error(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleListUsers returns all users, most recently seen first.
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.ListUsers(r.Context())
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	JSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// HandleUpdateRole changes a user's role.
func (h *AdminHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	role := domain.Role(req.Role)
	if !domain.ValidRole(role) {
		Error(w, http.StatusBadRequest, "invalid role")
		return
	}

	userID := chi.URLParam(r, "id")
	user, err := h.repo.GetUser(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to load user", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		Error(w, http.StatusNotFound, "user not found")
		return
	}

	if err := h.repo.UpdateUserRole(r.Context(), userID, role); err != nil {
		slog.Error("Failed to update role", "user_id", userID, "role", role, "error", err)
		Error(w, http.StatusInternalServerError, "failed to update role")
		return
	}

	slog.Info("User role updated", "user_id", userID, "role", role,
		"admin_id", identity.UserIDFromContext(r.Context()))
	JSON(w, http.StatusOK, map[string]string{"status": "updated", "user_id": userID, "role": string(role)})
}
