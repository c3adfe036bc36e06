package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pathlight-labs/pathlight/internal/catalog"
	"github.com/pathlight-labs/pathlight/internal/domain"
	"github.com/pathlight-labs/pathlight/internal/identity"
	"github.com/pathlight-labs/pathlight/internal/store"
)

// CatalogHandler serves curated content and the user's portfolio.
type CatalogHandler struct {
	catalog *catalog.Catalog
	repo    store.Repository
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(cat *catalog.Catalog, repo store.Repository) *CatalogHandler {
	return &CatalogHandler{catalog: cat, repo: repo}
}

// RegisterRoutes registers catalog and portfolio routes.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/experts", h.HandleExperts)
		r.Get("/experts/{id}", h.HandleExpert)
		r.Get("/sessions", h.HandleSessions)
		r.Get("/events", h.HandleEvents)
		r.Get("/stories", h.HandleStories)
		r.Get("/communities", h.HandleCommunities)
		r.Post("/communities/{id}/join", h.HandleJoinCommunity)
		r.Get("/projects", h.HandleProjects)
		r.Post("/projects/{id}/save", h.HandleSaveProject)
		r.Get("/portfolio", h.HandlePortfolio)
	})
}

// HandleExperts lists experts, filtered by an optional ?q= query.
func (h *CatalogHandler) HandleExperts(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"experts": h.catalog.Experts(r.URL.Query().Get("q")),
	})
}

// HandleExpert returns one expert with their bookable sessions.
func (h *CatalogHandler) HandleExpert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	expert := h.catalog.Expert(id)
	if expert == nil {
		Error(w, http.StatusNotFound, "expert not found")
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"expert":   expert,
		"sessions": h.catalog.MentorSessions(id),
	})
}

// HandleSessions lists mentor sessions, filtered by an optional ?expert_id=.
func (h *CatalogHandler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"sessions": h.catalog.MentorSessions(r.URL.Query().Get("expert_id")),
	})
}

// HandleEvents lists events, filtered by an optional ?category=.
func (h *CatalogHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"events": h.catalog.Events(r.URL.Query().Get("category")),
	})
}

// HandleStories lists success stories.
func (h *CatalogHandler) HandleStories(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"stories": h.catalog.Stories(),
	})
}

// HandleCommunities lists communities with the caller's membership state.
func (h *CatalogHandler) HandleCommunities(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())

	joined := map[string]bool{}
	if userID != "" {
		ids, err := h.repo.ListJoinedCommunities(r.Context(), userID)
		if err != nil {
			slog.Warn("Failed to load community memberships", "user_id", userID, "error", err)
		}
		for _, id := range ids {
			joined[id] = true
		}
	}

	type communityView struct {
		domain.Community
		Joined bool `json:"joined"`
	}
	communities := h.catalog.Communities(r.URL.Query().Get("topic"))
	views := make([]communityView, 0, len(communities))
	for _, c := range communities {
		views = append(views, communityView{Community: c, Joined: joined[c.ID]})
	}
	JSON(w, http.StatusOK, map[string]interface{}{"communities": views})
}

// HandleJoinCommunity records a community membership. Idempotent.
func (h *CatalogHandler) HandleJoinCommunity(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if h.catalog.Community(id) == nil {
		Error(w, http.StatusNotFound, "community not found")
		return
	}

	if err := h.repo.JoinCommunity(r.Context(), userID, id); err != nil {
		slog.Error("Failed to join community", "user_id", userID, "community_id", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to join community")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "joined", "community_id": id})
}

// HandleProjects lists board projects, filtered by optional ?difficulty= and ?skill=.
func (h *CatalogHandler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"projects": h.catalog.Projects(r.URL.Query().Get("difficulty"), r.URL.Query().Get("skill")),
	})
}

// HandleSaveProject adds a board project to the caller's portfolio.
func (h *CatalogHandler) HandleSaveProject(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	project := h.catalog.Project(id)
	if project == nil {
		Error(w, http.StatusNotFound, "project not found")
		return
	}

	item := &domain.PortfolioItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      domain.PortfolioKindProject,
		Title:     project.Title,
		CreatedAt: time.Now(),
	}
	if err := h.repo.AddPortfolioItem(r.Context(), item); err != nil {
		slog.Error("Failed to save project", "user_id", userID, "project_id", id, "error", err)
		Error(w, http.StatusInternalServerError, "failed to save project")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "saved", "portfolio_item_id": item.ID})
}

// HandlePortfolio lists the caller's portfolio, newest first.
func (h *CatalogHandler) HandlePortfolio(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := h.repo.ListPortfolioItems(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to load portfolio", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to load portfolio")
		return
	}
	if items == nil {
		items = []*domain.PortfolioItem{}
	}
	JSON(w, http.StatusOK, map[string]interface{}{"items": items})
}
