package service

import (
	"context"
	"log/slog"
	"time"

	"focustime/internal/core/domain"
	"focustime/internal/core/port"
)

type FocusSessionService struct {
	uow   port.UnitOfWork
	cache port.SummaryCache
}

func NewFocusSessionService(uow port.UnitOfWork, cache port.SummaryCache) *FocusSessionService {
	return &FocusSessionService{uow: uow, cache: cache}
}

// Save persists a finished focus session against a project the user owns.
// Sessions are independent rows: two saves with overlapping time ranges on
// the same project both persist, there is no overlap detection.
func (s *FocusSessionService) Save(ctx context.Context, userID, projectID string, startedAt time.Time, durationSeconds int) (domain.FocusSession, error) {
	var session domain.FocusSession

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		project, err := resolveOwnedProject(ctx, r, userID, projectID)

		if err != nil {
			return err
		}

		session, err = domain.NewFocusSession(*project, startedAt, durationSeconds)

		if err != nil {
			return err
		}

		session, err = r.FocusSessions.Add(ctx, session)
		return err
	})

	if err != nil {
		slog.Warn("focus session save failed", "project_id", projectID, "user_id", userID, "error", err)
		return domain.FocusSession{}, err
	}

	// The project card rollup is stale now.
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}

	slog.Info("focus session saved", "session_id", session.ID, "project_id", projectID, "duration_seconds", durationSeconds)

	return session, nil
}
