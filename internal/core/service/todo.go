package service

import (
	"context"
	"log/slog"

	"focustime/internal/core/domain"
	"focustime/internal/core/port"
)

type ToDoService struct {
	uow port.UnitOfWork
}

func NewToDoService(uow port.UnitOfWork) *ToDoService {
	return &ToDoService{uow: uow}
}

func (s *ToDoService) Create(ctx context.Context, userID, taskID, title string) (domain.ToDo, error) {
	var todo domain.ToDo

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		if _, err := resolveOwnedTask(ctx, r, userID, taskID); err != nil {
			return err
		}

		var err error
		todo, err = domain.NewToDo(taskID, title)

		if err != nil {
			return err
		}

		return r.ToDos.Add(ctx, todo)
	})

	if err != nil {
		slog.Warn("to-do creation failed", "task_id", taskID, "error", err)
		return domain.ToDo{}, err
	}

	slog.Info("to-do created", "todo_id", todo.Identificator, "task_id", taskID)

	return todo, nil
}

func (s *ToDoService) ListByTask(ctx context.Context, userID, taskID string) ([]domain.ToDo, error) {
	var todos []domain.ToDo

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		if _, err := resolveOwnedTask(ctx, r, userID, taskID); err != nil {
			return err
		}

		var err error
		todos, err = r.ToDos.ListByTask(ctx, taskID)
		return err
	})

	if err != nil {
		return nil, err
	}

	return todos, nil
}

// ChangeState moves a to-do between "in progress" and "completed". Deleted
// to-dos cannot be transitioned, and "deleted" is not a valid target here.
func (s *ToDoService) ChangeState(ctx context.Context, userID, taskID, todoID, targetStatus string) (domain.ToDo, error) {
	var todo domain.ToDo

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		if _, err := resolveOwnedTask(ctx, r, userID, taskID); err != nil {
			return err
		}

		if !domain.ValidTargetStatus(targetStatus) {
			return domain.NewValidationError("to_do", "status",
				"invalid target status, allowed values are 'completed' and 'in progress'")
		}

		found, err := r.ToDos.GetByIdentificator(ctx, todoID)

		if err != nil {
			return err
		}

		if found == nil || found.IsDeleted() {
			return domain.NewNotFoundError("to-do", todoID)
		}

		if found.TaskIdentificator != taskID {
			return domain.NewAuthorizationError(userID, "to-do", todoID)
		}

		switch targetStatus {
		case domain.ToDoStatusCompleted:
			found.MarkAsCompleted()
		case domain.ToDoStatusInProgress:
			found.MarkAsInProgress()
		}

		if err := r.ToDos.Update(ctx, *found); err != nil {
			return err
		}

		todo = *found

		return nil
	})

	if err != nil {
		slog.Warn("to-do state change failed", "todo_id", todoID, "target", targetStatus, "error", err)
		return domain.ToDo{}, err
	}

	return todo, nil
}

// Delete soft-deletes a to-do: the row stays, its status becomes "deleted"
// and it disappears from listings.
func (s *ToDoService) Delete(ctx context.Context, userID, taskID, todoID string) error {
	err := s.uow.Do(ctx, func(r port.Repositories) error {
		if _, err := resolveOwnedTask(ctx, r, userID, taskID); err != nil {
			return err
		}

		found, err := r.ToDos.GetByIdentificator(ctx, todoID)

		if err != nil {
			return err
		}

		if found == nil || found.IsDeleted() {
			return domain.NewNotFoundError("to-do", todoID)
		}

		if found.TaskIdentificator != taskID {
			return domain.NewAuthorizationError(userID, "to-do", todoID)
		}

		found.MarkAsDeleted()

		return r.ToDos.Update(ctx, *found)
	})

	if err != nil {
		slog.Warn("to-do deletion failed", "todo_id", todoID, "error", err)
		return err
	}

	slog.Info("to-do deleted", "todo_id", todoID)

	return nil
}
