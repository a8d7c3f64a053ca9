package service

import (
	"context"
	"log/slog"

	"focustime/internal/core/domain"
	"focustime/internal/core/port"
)

type TaskService struct {
	uow port.UnitOfWork
}

func NewTaskService(uow port.UnitOfWork) *TaskService {
	return &TaskService{uow: uow}
}

// Create adds a task to a project the user owns, starting in the default
// "in progress" status.
func (s *TaskService) Create(ctx context.Context, userID, projectID, title, description string) (domain.Task, error) {
	var task domain.Task

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		project, err := resolveOwnedProject(ctx, r, userID, projectID)

		if err != nil {
			return err
		}

		status, err := r.TaskStatuses.GetByName(ctx, domain.StatusInProgress)

		if err != nil {
			return err
		}

		task, err = domain.NewTask(*project, status, title, description)

		if err != nil {
			return err
		}

		return r.Tasks.Add(ctx, task)
	})

	if err != nil {
		slog.Warn("task creation failed", "project_id", projectID, "user_id", userID, "error", err)
		return domain.Task{}, err
	}

	slog.Info("task created", "task_id", task.Identificator, "project_id", projectID)

	return task, nil
}

func (s *TaskService) ListByProject(ctx context.Context, userID, projectID string) ([]domain.Task, error) {
	var tasks []domain.Task

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		if _, err := resolveOwnedProject(ctx, r, userID, projectID); err != nil {
			return err
		}

		var err error
		tasks, err = r.Tasks.ListByProject(ctx, projectID)
		return err
	})

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// ChangeStatus moves a task between "in progress" and "completed". Any other
// target status is a validation error and the transaction is rolled back with
// the task untouched. Completing stamps the completion time only if unset;
// reopening clears it.
func (s *TaskService) ChangeStatus(ctx context.Context, userID, projectID, taskID, targetStatus string) (domain.Task, error) {
	var task domain.Task

	err := s.uow.Do(ctx, func(r port.Repositories) error {
		if _, err := resolveOwnedProject(ctx, r, userID, projectID); err != nil {
			return err
		}

		if !domain.ValidTargetStatus(targetStatus) {
			return domain.NewValidationError("task", "status",
				"invalid target status, allowed values are 'completed' and 'in progress'")
		}

		found, err := r.Tasks.GetByIdentificator(ctx, taskID)

		if err != nil {
			return err
		}

		if found == nil {
			return domain.NewNotFoundError("task", taskID)
		}

		if found.Project.Identificator != projectID {
			return domain.NewAuthorizationError(userID, "task", taskID)
		}

		status, err := r.TaskStatuses.GetByName(ctx, targetStatus)

		if err != nil {
			return err
		}

		switch targetStatus {
		case domain.StatusCompleted:
			found.Complete(status)
		case domain.StatusInProgress:
			found.Reopen(status)
		}

		if err := r.Tasks.Update(ctx, *found); err != nil {
			return err
		}

		task = *found

		return nil
	})

	if err != nil {
		slog.Warn("task status change failed", "task_id", taskID, "target", targetStatus, "error", err)
		return domain.Task{}, err
	}

	slog.Info("task status changed", "task_id", taskID, "status", task.Status.Name)

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, projectID, taskID string) error {
	err := s.uow.Do(ctx, func(r port.Repositories) error {
		if _, err := resolveOwnedProject(ctx, r, userID, projectID); err != nil {
			return err
		}

		found, err := r.Tasks.GetByIdentificator(ctx, taskID)

		if err != nil {
			return err
		}

		if found == nil {
			return domain.NewNotFoundError("task", taskID)
		}

		if found.Project.Identificator != projectID {
			return domain.NewAuthorizationError(userID, "task", taskID)
		}

		return r.Tasks.Delete(ctx, taskID)
	})

	if err != nil {
		slog.Warn("task deletion failed", "task_id", taskID, "error", err)
		return err
	}

	slog.Info("task deleted", "task_id", taskID)

	return nil
}
