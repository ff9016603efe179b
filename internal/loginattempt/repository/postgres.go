package repository

import (
	"context"
	"database/sql"
	"time"

	"studyprep/backend/internal/loginattempt/domain"
)

const attemptColumns = `id, email, ip_address, success, failure_reason, user_agent, fingerprint, attempted_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a login-attempt repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends the attempt. The attempt must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Attempt) error {
	reason := sql.NullString{String: a.FailureReason, Valid: a.FailureReason != ""}
	fp := sql.NullString{String: a.Fingerprint, Valid: a.Fingerprint != ""}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO login_attempts (id, email, ip_address, success, failure_reason, user_agent, fingerprint, attempted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Email, a.IPAddress, a.Success, reason, a.UserAgent, fp, a.AttemptedAt,
	)
	return err
}

// CountFailuresByEmail counts failed attempts for the email since the given
// instant. Failures older than the account's most recent successful login do
// not count; the success row is the reset marker.
func (r *PostgresRepository) CountFailuresByEmail(ctx context.Context, email string, since time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM login_attempts
WHERE email = $1 AND success = FALSE AND attempted_at > $2
  AND attempted_at > COALESCE(
    (SELECT MAX(attempted_at) FROM login_attempts WHERE email = $1 AND success = TRUE),
    '-infinity')`, email, since).Scan(&n)
	return n, err
}

// CountFailuresByIP counts failed attempts from the address since the given instant.
func (r *PostgresRepository) CountFailuresByIP(ctx context.Context, ip string, since time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM login_attempts
WHERE ip_address = $1 AND success = FALSE AND attempted_at > $2`, ip, since).Scan(&n)
	return n, err
}

// RecentSuccessesByEmail returns up to limit successful attempts for the email
// since the given instant, newest first.
func (r *PostgresRepository) RecentSuccessesByEmail(ctx context.Context, email string, since time.Time, limit int) ([]*domain.Attempt, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+attemptColumns+` FROM login_attempts
WHERE email = $1 AND success = TRUE AND attempted_at > $2
ORDER BY attempted_at DESC LIMIT $3`, email, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Attempt
	for rows.Next() {
		var (
			a          domain.Attempt
			reason, fp sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Email, &a.IPAddress, &a.Success, &reason, &a.UserAgent, &fp, &a.AttemptedAt); err != nil {
			return nil, err
		}
		a.FailureReason = reason.String
		a.Fingerprint = fp.String
		out = append(out, &a)
	}
	return out, rows.Err()
}
