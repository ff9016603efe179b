package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studyprep/backend/internal/device"
	"studyprep/backend/internal/session/domain"
)

const sessionColumns = `id, user_id, access_token_hash, device_fingerprint, device_name, device_platform, ip_address, user_agent, created_at, expires_at, last_activity, active`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a session repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the session for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// ListActiveByUser returns the user's active, unexpired sessions ordered by
// most recent activity. Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListActiveByUser(ctx context.Context, userID string, now time.Time) ([]*domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+sessionColumns+` FROM sessions
WHERE user_id = $1 AND active = TRUE AND expires_at > $2
ORDER BY last_activity DESC`, userID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create persists the session to the database. The session must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (id, user_id, access_token_hash, device_fingerprint, device_name, device_platform, ip_address, user_agent, created_at, expires_at, last_activity, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		s.ID, s.UserID, s.AccessTokenHash,
		nullString(s.Device.Fingerprint), nullString(s.Device.Name), nullString(s.Device.Platform),
		s.IPAddress, s.UserAgent, s.CreatedAt, s.ExpiresAt, s.LastActivity, s.Active,
	)
	return err
}

// Touch stamps last_activity and the observed ip on the user's live sessions.
func (r *PostgresRepository) Touch(ctx context.Context, userID, ip string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE sessions SET last_activity = $3, ip_address = $2
WHERE user_id = $1 AND active = TRUE AND expires_at > $3`, userID, ip, at)
	return err
}

// Deactivate marks the session inactive. The update is scoped to userID so a
// caller can never deactivate another user's session.
func (r *PostgresRepository) Deactivate(ctx context.Context, userID, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET active = FALSE WHERE id = $2 AND user_id = $1`, userID, sessionID)
	return err
}

// DeactivateAllByUser marks every active session for the user inactive.
func (r *PostgresRepository) DeactivateAllByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE sessions SET active = FALSE WHERE user_id = $1 AND active = TRUE`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		s                  domain.Session
		fp, name, platform sql.NullString
	)
	err := row.Scan(&s.ID, &s.UserID, &s.AccessTokenHash, &fp, &name, &platform,
		&s.IPAddress, &s.UserAgent, &s.CreatedAt, &s.ExpiresAt, &s.LastActivity, &s.Active)
	if err != nil {
		return nil, err
	}
	s.Device = device.Info{Fingerprint: fp.String, Name: name.String, Platform: platform.String}
	return &s, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
