package service

import (
	"context"
	"log/slog"
	"time"

	"focustime/internal/core/domain"
	"focustime/internal/core/port"
)

type ProjectService struct {
	uow   port.UnitOfWork
	cache port.SummaryCache
}

func NewProjectService(uow port.UnitOfWork, cache port.SummaryCache) *ProjectService {
	return &ProjectService{uow: uow, cache: cache}
}

func (s *ProjectService) Create(ctx context.Context, userID, title, color string) (domain.Project, error) {
	var project domain.Project

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		owner, err := r.Users.GetByIdentificator(ctx, userID)

		if err != nil {
			return err
		}

		if owner == nil {
			return domain.NewNotFoundError("user", userID)
		}

		project, err = domain.NewProject(userID, title, color)

		if err != nil {
			return err
		}

		return r.Projects.Add(ctx, project)
	})

	if err != nil {
		slog.Warn("project creation failed", "user_id", userID, "error", err)
		return domain.Project{}, err
	}

	slog.Info("project created", "project_id", project.Identificator, "user_id", userID)

	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (domain.Project, error) {
	var project domain.Project

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		found, err := resolveOwnedProject(ctx, r, userID, projectID)

		if err != nil {
			return err
		}

		project = *found

		return nil
	})

	if err != nil {
		return domain.Project{}, err
	}

	return project, nil
}

// Detail loads the project together with its tasks and focus sessions in one
// transaction, so the view is a consistent snapshot.
func (s *ProjectService) Detail(ctx context.Context, userID, projectID string) (domain.ProjectDetail, error) {
	var detail domain.ProjectDetail

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		found, err := resolveOwnedProject(ctx, r, userID, projectID)

		if err != nil {
			return err
		}

		detail.Project = *found

		detail.Tasks, err = r.Tasks.ListByProject(ctx, projectID)

		if err != nil {
			return err
		}

		detail.FocusSessions, err = r.FocusSessions.ListByProject(ctx, projectID)
		return err
	})

	if err != nil {
		return domain.ProjectDetail{}, err
	}

	return detail, nil
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]domain.Project, error) {
	var projects []domain.Project

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		var err error
		projects, err = r.Projects.ListByUser(ctx, userID)
		return err
	})

	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, userID, projectID, title, color string, active bool) (domain.Project, error) {
	var project domain.Project

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		found, err := resolveOwnedProject(ctx, r, userID, projectID)

		if err != nil {
			return err
		}

		if err := found.Rename(title, color); err != nil {
			return err
		}

		found.Active = active

		if err := r.Projects.Update(ctx, *found); err != nil {
			return err
		}

		project = *found

		return nil
	})

	if err != nil {
		slog.Warn("project update failed", "project_id", projectID, "error", err)
		return domain.Project{}, err
	}

	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	err := s.uow.Do(ctx, func(r port.Repositories) error {
		if _, err := resolveOwnedProject(ctx, r, userID, projectID); err != nil {
			return err
		}

		// Tasks, to-dos and focus sessions go with the project via
		// ON DELETE CASCADE.
		return r.Projects.Delete(ctx, projectID)
	})

	if err != nil {
		slog.Warn("project deletion failed", "project_id", projectID, "error", err)
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}

	slog.Info("project deleted", "project_id", projectID, "user_id", userID)

	return nil
}

// Summaries returns the per-project focus-time rollup for the user's project
// cards. The result is cached per user; SaveFocusSession invalidates it.
func (s *ProjectService) Summaries(ctx context.Context, userID string) ([]domain.ProjectFocusSummary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, userID); ok {
			return cached, nil
		}
	}

	var summaries []domain.ProjectFocusSummary

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := today.AddDate(0, 0, -6)

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		var err error
		summaries, err = r.FocusSessions.ProjectSummaries(ctx, userID, today, weekStart)
		return err
	})

	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, summaries)
	}

	return summaries, nil
}

// Heatmap returns daily focus totals for the last 365 days.
func (s *ProjectService) Heatmap(ctx context.Context, userID string) ([]domain.DailyFocusTotal, error) {
	var totals []domain.DailyFocusTotal

	since := time.Now().UTC().AddDate(0, 0, -365)

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		var err error
		totals, err = r.FocusSessions.DailyTotals(ctx, userID, since)
		return err
	})

	if err != nil {
		return nil, err
	}

	return totals, nil
}
