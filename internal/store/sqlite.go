package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pathlight-labs/pathlight/internal/domain"
	"github.com/pathlight-labs/pathlight/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db             *sql.DB
	coachSessionMu sync.Mutex // Serializes coach session writes to prevent SQLITE_BUSY
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'student',
		last_seen_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_users_last_seen ON users(last_seen_at);

	CREATE TABLE IF NOT EXISTS coach_sessions (
		session_id TEXT PRIMARY KEY,
		user_id TEXT,
		stage TEXT NOT NULL,
		question_index INTEGER NOT NULL DEFAULT 0,
		snapshot_json TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_coach_sessions_updated ON coach_sessions(updated_at);
	CREATE INDEX IF NOT EXISTS idx_coach_sessions_user ON coach_sessions(user_id);

	CREATE TABLE IF NOT EXISTS portfolio_items (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		title TEXT NOT NULL,
		detail_json TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_portfolio_user ON portfolio_items(user_id, created_at);

	CREATE TABLE IF NOT EXISTS community_members (
		user_id TEXT NOT NULL,
		community_id TEXT NOT NULL,
		joined_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, community_id)
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// GetUser retrieves a user by their user ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, username, role, last_seen_at, created_at, updated_at
		FROM users WHERE user_id = ?`

	row := s.db.QueryRowContext(ctx, query, userID)

	var user domain.User
	var role string
	var lastSeen, createdAt, updatedAt int64

	err := row.Scan(&user.UserID, &user.Username, &role, &lastSeen, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}

	user.Role = domain.Role(role)
	if !domain.ValidRole(user.Role) {
		user.Role = domain.RoleStudent
	}
	user.LastSeenAt = time.Unix(lastSeen, 0)
	user.CreatedAt = time.Unix(createdAt, 0)
	user.UpdatedAt = time.Unix(updatedAt, 0)

	return &user, nil
}

// UpsertUser creates or updates a user record.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user *domain.User) error {
	query := `
	INSERT INTO users (user_id, username, role, last_seen_at, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		username = excluded.username,
		last_seen_at = excluded.last_seen_at,
		updated_at = excluded.updated_at`

	role := user.Role
	if !domain.ValidRole(role) {
		role = domain.RoleStudent
	}

	_, err := s.db.ExecContext(ctx, query,
		user.UserID, user.Username, string(role),
		user.LastSeenAt.Unix(), user.CreatedAt.Unix(), user.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// UpdateLastSeen updates the last_seen_at timestamp for a user.
func (s *SQLiteStore) UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error {
	query := `UPDATE users SET last_seen_at = ?, updated_at = ? WHERE user_id = ?`
	result, err := s.db.ExecContext(ctx, query, lastSeen.Unix(), time.Now().Unix(), userID)
	if err != nil {
		return fmt.Errorf("update last_seen: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		slog.Warn("UpdateLastSeen affected 0 rows", "user_id", userID)
	}

	return nil
}

// UpdateUserRole changes a user's role.
func (s *SQLiteStore) UpdateUserRole(ctx context.Context, userID string, role domain.Role) error {
	if !domain.ValidRole(role) {
		return fmt.Errorf("invalid role: %q", role)
	}
	query := `UPDATE users SET role = ?, updated_at = ? WHERE user_id = ?`
	result, err := s.db.ExecContext(ctx, query, string(role), time.Now().Unix(), userID)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// ListUsers returns all users, most recently seen first.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT user_id, username, role, last_seen_at, created_at, updated_at
		FROM users ORDER BY last_seen_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close user rows", "error", closeErr)
		}
	}()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		var role string
		var lastSeen, createdAt, updatedAt int64

		if err := rows.Scan(&user.UserID, &user.Username, &role, &lastSeen, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		user.Role = domain.Role(role)
		user.LastSeenAt = time.Unix(lastSeen, 0)
		user.CreatedAt = time.Unix(createdAt, 0)
		user.UpdatedAt = time.Unix(updatedAt, 0)
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// GetCoachSession retrieves a coach session snapshot.
func (s *SQLiteStore) GetCoachSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.coachSessionMu.Lock()
	defer s.coachSessionMu.Unlock()

	query := `SELECT snapshot_json FROM coach_sessions WHERE session_id = ?`
	row := s.db.QueryRowContext(ctx, query, sessionID)

	var snapshot string
	err := row.Scan(&snapshot)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan coach session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(snapshot), &sess); err != nil {
		return nil, fmt.Errorf("decode coach session snapshot: %w", err)
	}
	if sess.SessionID == "" {
		sess.SessionID = sessionID
	}
	return &sess, nil
}

// PutCoachSession writes a full session snapshot keyed by session ID.
// Repeated writes of the same snapshot are idempotent overwrites.
func (s *SQLiteStore) PutCoachSession(ctx context.Context, session *domain.Session) error {
	s.coachSessionMu.Lock()
	defer s.coachSessionMu.Unlock()

	snapshot, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode coach session snapshot: %w", err)
	}

	query := `
	INSERT INTO coach_sessions (session_id, user_id, stage, question_index, snapshot_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		user_id = excluded.user_id,
		stage = excluded.stage,
		question_index = excluded.question_index,
		snapshot_json = excluded.snapshot_json,
		updated_at = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		session.SessionID, session.UserID, string(session.Stage), session.QuestionIndex,
		string(snapshot), session.CreatedAt.Unix(), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert coach session: %w", err)
	}
	return nil
}

// DeleteCoachSession removes a coach session snapshot.
// Retries with exponential backoff on SQLITE_BUSY.
func (s *SQLiteStore) DeleteCoachSession(ctx context.Context, sessionID string) error {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		err := s.deleteCoachSessionOnce(ctx, sessionID)
		if err == nil {
			return nil
		}

		if shared.IsSQLiteConflictError(err) && i < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<i)
			slog.Debug("DeleteCoachSession hit SQLITE_BUSY, retrying",
				"session_id", sessionID,
				"attempt", i+1,
				"delay", delay)
			time.Sleep(delay)
			continue
		}

		return fmt.Errorf("delete coach session %s: %w", sessionID, err)
	}

	return nil
}

func (s *SQLiteStore) deleteCoachSessionOnce(ctx context.Context, sessionID string) error {
	s.coachSessionMu.Lock()
	defer s.coachSessionMu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM coach_sessions WHERE session_id = ?`, sessionID)
	return err
}

// CleanupExpiredSessions removes coach sessions idle longer than TTL.
func (s *SQLiteStore) CleanupExpiredSessions(ctx context.Context, ttl time.Duration) (int64, error) {
	threshold := time.Now().Add(-ttl).Unix()
	result, err := s.db.ExecContext(ctx, `DELETE FROM coach_sessions WHERE updated_at < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("cleanup expired sessions: %w", err)
	}
	return result.RowsAffected()
}

// AddPortfolioItem appends an item to a user's portfolio.
func (s *SQLiteStore) AddPortfolioItem(ctx context.Context, item *domain.PortfolioItem) error {
	query := `
	INSERT INTO portfolio_items (id, user_id, kind, title, detail_json, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	var detail interface{}
	if item.DetailJSON != "" {
		detail = item.DetailJSON
	}

	_, err := s.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.Kind, item.Title, detail, item.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert portfolio item: %w", err)
	}
	return nil
}

// ListPortfolioItems returns a user's portfolio, newest first.
func (s *SQLiteStore) ListPortfolioItems(ctx context.Context, userID string) ([]*domain.PortfolioItem, error) {
	query := `
		SELECT id, user_id, kind, title, detail_json, created_at
		FROM portfolio_items WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query portfolio: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close portfolio rows", "error", closeErr)
		}
	}()

	var items []*domain.PortfolioItem
	for rows.Next() {
		var item domain.PortfolioItem
		var detail sql.NullString
		var createdAt int64

		if err := rows.Scan(&item.ID, &item.UserID, &item.Kind, &item.Title, &detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan portfolio row: %w", err)
		}
		item.DetailJSON = detail.String
		item.CreatedAt = time.Unix(createdAt, 0)
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate portfolio: %w", err)
	}
	return items, nil
}

// JoinCommunity records a community membership. Joining twice is a no-op.
func (s *SQLiteStore) JoinCommunity(ctx context.Context, userID, communityID string) error {
	query := `
	INSERT INTO community_members (user_id, community_id, joined_at)
	VALUES (?, ?, ?)
	ON CONFLICT(user_id, community_id) DO NOTHING`

	_, err := s.db.ExecContext(ctx, query, userID, communityID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("join community: %w", err)
	}
	return nil
}

// ListJoinedCommunities returns the community IDs a user has joined.
func (s *SQLiteStore) ListJoinedCommunities(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT community_id FROM community_members WHERE user_id = ? ORDER BY joined_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query memberships: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close membership rows", "error", closeErr)
		}
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan membership row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}
	return ids, nil
}
