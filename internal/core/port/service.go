package port

import (
	"context"
	"time"

	"focustime/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	GetUser(ctx context.Context, identificator string) (domain.User, error)
}

type ProjectService interface {
	Create(ctx context.Context, userID, title, color string) (domain.Project, error)
	Get(ctx context.Context, userID, projectID string) (domain.Project, error)
	Detail(ctx context.Context, userID, projectID string) (domain.ProjectDetail, error)
	List(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, userID, projectID, title, color string, active bool) (domain.Project, error)
	Delete(ctx context.Context, userID, projectID string) error
	Summaries(ctx context.Context, userID string) ([]domain.ProjectFocusSummary, error)
	Heatmap(ctx context.Context, userID string) ([]domain.DailyFocusTotal, error)
}

type TaskService interface {
	Create(ctx context.Context, userID, projectID, title, description string) (domain.Task, error)
	ListByProject(ctx context.Context, userID, projectID string) ([]domain.Task, error)
	ChangeStatus(ctx context.Context, userID, projectID, taskID, targetStatus string) (domain.Task, error)
	Delete(ctx context.Context, userID, projectID, taskID string) error
}

type ToDoService interface {
	Create(ctx context.Context, userID, taskID, title string) (domain.ToDo, error)
	ListByTask(ctx context.Context, userID, taskID string) ([]domain.ToDo, error)
	ChangeState(ctx context.Context, userID, taskID, todoID, targetStatus string) (domain.ToDo, error)
	Delete(ctx context.Context, userID, taskID, todoID string) error
}

type FocusSessionService interface {
	Save(ctx context.Context, userID, projectID string, startedAt time.Time, durationSeconds int) (domain.FocusSession, error)
}

// SummaryCache caches the per-user project summary rollup. A nil cache is
// valid: services skip caching entirely.
type SummaryCache interface {
	Get(ctx context.Context, userID string) ([]domain.ProjectFocusSummary, bool)
	Set(ctx context.Context, userID string, summaries []domain.ProjectFocusSummary)
	Invalidate(ctx context.Context, userID string)
}
