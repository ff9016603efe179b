package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studyprep/backend/internal/audit/domain"
	auditrepo "studyprep/backend/internal/audit/repository"
)

// Recorder accepts security-relevant events. Recording is best-effort by
// contract: an implementation never fails or blocks the calling operation
// beyond its own I/O.
type Recorder interface {
	Record(ctx context.Context, e *domain.Event)
}

// Logger implements Recorder by writing synchronously to the audit repository.
type Logger struct {
	repo auditrepo.Repository
	log  *zap.Logger
}

// NewLogger returns a Recorder that persists to repo. log may be nil.
func NewLogger(repo auditrepo.Repository, log *zap.Logger) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Logger{repo: repo, log: log}
}

// Record writes one audit event. Errors are logged and not returned.
func (l *Logger) Record(ctx context.Context, e *domain.Event) {
	if l.repo == nil || e == nil {
		return
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if err := l.repo.Save(ctx, e); err != nil {
		l.log.Warn("audit: failed to record event",
			zap.String("action", e.Action),
			zap.String("resource", e.Resource),
			zap.Error(err))
	}
}

// Discard is a Recorder that drops every event. Useful for tests and for
// callers that wire no audit store.
type Discard struct{}

func (Discard) Record(context.Context, *domain.Event) {}
