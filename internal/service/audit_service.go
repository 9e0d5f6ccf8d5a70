package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/vignette-service/internal/domain"
	"github.com/spec-kit/vignette-service/internal/repository"
)

// AuditService appends entries to the audit trail. Writes are best-effort:
// a failed append is logged for operators but never fails the triggering
// operation, so callers ignore the outcome entirely.
type AuditService struct {
	audit  repository.AuditRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewAuditService constructs the service.
func NewAuditService(audit repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{audit: audit, logger: logger, now: time.Now}
}

// Record appends one entry. ActorID is nil for anonymous actions. Details are
// serialized to JSON; a payload that cannot marshal is recorded empty rather
// than dropped.
func (s *AuditService) Record(ctx context.Context, actorID *string, action, module string, details map[string]any) {
	if s == nil || s.audit == nil {
		return
	}

	payload := ""
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("audit details not serializable", zap.String("action", action), zap.Error(err))
		} else {
			payload = string(raw)
		}
	}

	entry := &domain.AuditEntry{
		ID:        uuid.NewString(),
		ActorID:   actorID,
		Action:    action,
		Module:    module,
		Details:   payload,
		Timestamp: s.now(),
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", action),
			zap.String("module", module),
			zap.Error(err))
	}
}
