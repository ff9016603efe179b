package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studyprep/backend/internal/device"
	"studyprep/backend/internal/refreshtoken/domain"
)

const tokenColumns = `id, user_id, token_hash, device_fingerprint, device_name, device_platform, ip_address, user_agent, created_at, expires_at, revoked, revoked_at, revoked_reason, last_used_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a refresh-token repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the token row. The token must have ID and TokenHash set.
func (r *PostgresRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO refresh_tokens (id, user_id, token_hash, device_fingerprint, device_name, device_platform, ip_address, user_agent, created_at, expires_at, revoked, revoked_at, revoked_reason, last_used_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID, t.UserID, t.TokenHash,
		nullString(t.Device.Fingerprint), nullString(t.Device.Name), nullString(t.Device.Platform),
		t.IPAddress, t.UserAgent, t.CreatedAt, t.ExpiresAt,
		t.Revoked, nullTime(t.RevokedAt), nullString(t.RevokedReason), nullTime(t.LastUsedAt),
	)
	return err
}

// GetLiveByHash returns the live token matching tokenHash, or nil if there is
// none. Expiry is enforced here, lazily, against the caller-supplied now.
func (r *PostgresRepository) GetLiveByHash(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshToken, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+tokenColumns+` FROM refresh_tokens
WHERE token_hash = $1 AND revoked = FALSE AND expires_at > $2`, tokenHash, now)
	t, err := scanToken(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// Revoke retires the token iff it is still live from a revocation standpoint.
// The WHERE revoked = FALSE clause makes the update a mutex: of two concurrent
// calls exactly one observes rows-affected = 1.
func (r *PostgresRepository) Revoke(ctx context.Context, id, reason string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $3, revoked_reason = $2
WHERE id = $1 AND revoked = FALSE`, id, reason, at)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// RevokeAllByUser retires every non-revoked token for the user.
func (r *PostgresRepository) RevokeAllByUser(ctx context.Context, userID, reason string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE refresh_tokens SET revoked = TRUE, revoked_at = $3, revoked_reason = $2
WHERE user_id = $1 AND revoked = FALSE`, userID, reason, at)
	return err
}

// MarkUsed stamps last_used_at on the token.
func (r *PostgresRepository) MarkUsed(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET last_used_at = $2 WHERE id = $1`, id, at)
	return err
}

func scanToken(row *sql.Row) (*domain.RefreshToken, error) {
	var (
		t                  domain.RefreshToken
		fp, name, platform sql.NullString
		revokedAt, usedAt  sql.NullTime
		reason             sql.NullString
	)
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &fp, &name, &platform,
		&t.IPAddress, &t.UserAgent, &t.CreatedAt, &t.ExpiresAt,
		&t.Revoked, &revokedAt, &reason, &usedAt)
	if err != nil {
		return nil, err
	}
	t.Device = device.Info{Fingerprint: fp.String, Name: name.String, Platform: platform.String}
	t.RevokedReason = reason.String
	if revokedAt.Valid {
		at := revokedAt.Time
		t.RevokedAt = &at
	}
	if usedAt.Valid {
		at := usedAt.Time
		t.LastUsedAt = &at
	}
	return &t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
