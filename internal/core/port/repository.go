package port

import (
	"context"
	"time"

	"focustime/internal/core/domain"
)

// Repository lookup methods return (nil, nil) when the row is absent; only
// infrastructure failures and multiplicity violations produce an error.
// Mutating methods report a missing row as a domain NotFoundError, distinct
// from database-level errors.

type UserRepository interface {
	Add(ctx context.Context, user domain.User) error
	GetByIdentificator(ctx context.Context, identificator string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Delete(ctx context.Context, identificator string) error
}

type ProjectRepository interface {
	Add(ctx context.Context, project domain.Project) error
	GetByIdentificator(ctx context.Context, identificator string) (*domain.Project, error)
	ListByUser(ctx context.Context, userIdentificator string) ([]domain.Project, error)
	Update(ctx context.Context, project domain.Project) error
	Delete(ctx context.Context, identificator string) error
}

type TaskStatusRepository interface {
	// GetByName returns the status row for a fixed vocabulary name. A missing
	// required row is a fatal configuration problem reported as DatabaseError.
	GetByName(ctx context.Context, name string) (domain.TaskStatus, error)
}

type TaskRepository interface {
	Add(ctx context.Context, task domain.Task) error
	GetByIdentificator(ctx context.Context, identificator string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectIdentificator string) ([]domain.Task, error)
	Update(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, identificator string) error
}

type FocusSessionRepository interface {
	Add(ctx context.Context, session domain.FocusSession) (domain.FocusSession, error)
	ListByProject(ctx context.Context, projectIdentificator string) ([]domain.FocusSession, error)
	DailyTotals(ctx context.Context, userIdentificator string, since time.Time) ([]domain.DailyFocusTotal, error)
	ProjectSummaries(ctx context.Context, userIdentificator string, today, weekStart time.Time) ([]domain.ProjectFocusSummary, error)
}

type ToDoRepository interface {
	Add(ctx context.Context, todo domain.ToDo) error
	GetByIdentificator(ctx context.Context, identificator string) (*domain.ToDo, error)
	// ListByTask returns the task's to-dos without the soft-deleted ones.
	ListByTask(ctx context.Context, taskIdentificator string) ([]domain.ToDo, error)
	Update(ctx context.Context, todo domain.ToDo) error
}

// Repositories is the set handed to a unit-of-work function. Every repository
// in the set is bound to the same open transaction.
type Repositories struct {
	Users         UserRepository
	Projects      ProjectRepository
	TaskStatuses  TaskStatusRepository
	Tasks         TaskRepository
	FocusSessions FocusSessionRepository
	ToDos         ToDoRepository
}

// UnitOfWork is owned by the service layer: Do begins a transaction, runs fn
// with transaction-bound repositories, commits when fn returns nil and rolls
// back otherwise. Errors outside the domain taxonomy come back wrapped in a
// domain.DatabaseError, so no partial writes survive a failed unit of work.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repositories) error) error
}
