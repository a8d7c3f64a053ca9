package service

import (
	"context"
	"log/slog"

	"focustime/internal/core/domain"
	"focustime/internal/core/port"
)

// resolveOwnedProject is the ownership gate used by every mutating service
// method. Absence and wrong ownership are reported as different errors: a
// missing project is a NotFound, an existing project owned by someone else is
// an AuthorizationError.
func resolveOwnedProject(ctx context.Context, r port.Repositories, userID, projectID string) (*domain.Project, error) {
	project, err := r.Projects.GetByIdentificator(ctx, projectID)

	if err != nil {
		return nil, err
	}

	if project == nil {
		slog.Warn("project not found during authorization", "project_id", projectID)
		return nil, domain.NewNotFoundError("project", projectID)
	}

	if !project.BelongsTo(userID) {
		slog.Error("authorization failed", "user_id", userID, "project_id", projectID, "owner_id", project.UserIdentificator)
		return nil, domain.NewAuthorizationError(userID, "project", projectID)
	}

	return project, nil
}

// resolveOwnedTask walks the ownership chain task -> project -> user.
func resolveOwnedTask(ctx context.Context, r port.Repositories, userID, taskID string) (*domain.Task, error) {
	task, err := r.Tasks.GetByIdentificator(ctx, taskID)

	if err != nil {
		return nil, err
	}

	if task == nil {
		return nil, domain.NewNotFoundError("task", taskID)
	}

	if _, err := resolveOwnedProject(ctx, r, userID, task.Project.Identificator); err != nil {
		return nil, err
	}

	return task, nil
}
