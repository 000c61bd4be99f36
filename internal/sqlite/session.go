package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/outrun/memeverse/internal/domain/session"
	"github.com/outrun/memeverse/internal/repository"
)

// SessionRepository implements session.Repository for SQLite
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save inserts or replaces a view session
func (r *SessionRepository) Save(ctx context.Context, rec *session.Record) error {
	state, err := json.Marshal(rec.State)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	query := `
		INSERT INTO view_sessions (id, state, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		string(state),
		formatTime(rec.CreatedAt),
		formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Get retrieves a view session by ID
func (r *SessionRepository) Get(ctx context.Context, id string) (*session.Record, error) {
	query := `
		SELECT id, state, created_at, updated_at
		FROM view_sessions
		WHERE id = ?
	`

	var (
		rec                  session.Record
		state                string
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rec.ID, &state, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if err := json.Unmarshal([]byte(state), &rec.State); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &rec, nil
}

// Delete removes a view session
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM view_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// DeleteIdle removes view sessions not saved since before and returns how
// many were removed.
func (r *SessionRepository) DeleteIdle(ctx context.Context, before time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM view_sessions WHERE updated_at < ?`, formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}
