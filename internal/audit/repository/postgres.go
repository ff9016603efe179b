package repository

import (
	"context"
	"database/sql"

	"studyprep/backend/internal/audit/domain"
)

const eventColumns = `id, user_id, action, resource, resource_id, details, ip_address, user_agent, created_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an audit repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save appends the event. The event must have ID set.
func (r *PostgresRepository) Save(ctx context.Context, e *domain.Event) error {
	rid := sql.NullString{String: e.ResourceID, Valid: e.ResourceID != ""}
	details := sql.NullString{String: e.Details, Valid: e.Details != ""}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO audit_events (id, user_id, action, resource, resource_id, details, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.UserID, e.Action, e.Resource, rid, details, e.IPAddress, e.UserAgent, e.CreatedAt,
	)
	return err
}

// ListRecentByUser returns the user's events, newest first, paginated by limit
// and offset. Returns (nil, error) only on database errors.
func (r *PostgresRepository) ListRecentByUser(ctx context.Context, userID string, limit, offset int32) ([]*domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+eventColumns+` FROM audit_events
WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Event
	for rows.Next() {
		var (
			e            domain.Event
			rid, details sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Resource, &rid, &details, &e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ResourceID = rid.String
		e.Details = details.String
		out = append(out, &e)
	}
	return out, rows.Err()
}
