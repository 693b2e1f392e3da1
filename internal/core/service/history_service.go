package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// HistoryService reads the audit trail.
type HistoryService struct {
	repo ports.HistoryRepository
}

func NewHistoryService(repo ports.HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Recent returns the newest audit entries. limit is clamped to
// [1, MaxHistoryLimit]; zero or negative selects DefaultHistoryLimit.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.repo.Recent(ctx, limit)
}

// auditor appends entries for completed mutations. The mutation has already
// been persisted when it runs, so a failed append is logged, not returned.
type auditor struct {
	repo   ports.HistoryRepository
	logger zerolog.Logger
}

func (a auditor) record(ctx context.Context, actorID string, action domain.Action, description string) {
	err := a.repo.Append(ctx, &domain.HistoryEntry{
		UserID:      actorID,
		Action:      action,
		Description: description,
	})
	if err != nil {
		a.logger.Error().Err(err).Str("actor_id", actorID).Str("action", string(action)).Msg("failed to append audit entry")
	}
}
