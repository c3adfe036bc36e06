// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/pathlight-labs/pathlight/internal/domain"
)

// Repository defines the interface for persisting users, coach sessions,
// portfolio items, and community memberships.
type Repository interface {
	// GetUser retrieves a user by ID. Returns (nil, nil) when not found.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// UpsertUser creates or updates a user record.
	UpsertUser(ctx context.Context, user *domain.User) error

	// UpdateLastSeen updates the last_seen_at timestamp for a user.
	UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error

	// UpdateUserRole changes a user's role.
	UpdateUserRole(ctx context.Context, userID string, role domain.Role) error

	// ListUsers returns all users, most recently seen first.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetCoachSession retrieves a coach session snapshot.
	// Returns (nil, nil) when not found.
	GetCoachSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// PutCoachSession writes a full coach session snapshot, overwriting any
	// existing record for the same session ID.
	PutCoachSession(ctx context.Context, session *domain.Session) error

	// DeleteCoachSession removes a coach session snapshot.
	DeleteCoachSession(ctx context.Context, sessionID string) error

	// CleanupExpiredSessions removes coach sessions idle longer than TTL.
	CleanupExpiredSessions(ctx context.Context, ttl time.Duration) (int64, error)

	// AddPortfolioItem appends an item to a user's portfolio.
	AddPortfolioItem(ctx context.Context, item *domain.PortfolioItem) error

	// ListPortfolioItems returns a user's portfolio, newest first.
	ListPortfolioItems(ctx context.Context, userID string) ([]*domain.PortfolioItem, error)

	// JoinCommunity records a community membership. Joining twice is a no-op.
	JoinCommunity(ctx context.Context, userID, communityID string) error

	// ListJoinedCommunities returns the community IDs a user has joined.
	ListJoinedCommunities(ctx context.Context, userID string) ([]string, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
