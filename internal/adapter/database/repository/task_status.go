package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"focustime/internal/core/domain"
)

type TaskStatusRepository struct {
	q  runner
	qb sq.StatementBuilderType
}

// GetByName resolves one of the fixed vocabulary rows seeded by migration.
// Absence means the database is misconfigured, so this is a DatabaseError
// rather than a NotFound the caller could recover from.
func (sr *TaskStatusRepository) GetByName(ctx context.Context, name string) (domain.TaskStatus, error) {
	query, args, err := sr.qb.Select("id", "name").From("task_status").Where(sq.Eq{"name": name}).ToSql()

	if err != nil {
		return domain.TaskStatus{}, err
	}

	var status domain.TaskStatus
	err = sr.q.QueryRowContext(ctx, query, args...).Scan(&status.ID, &status.Name)

	if err == sql.ErrNoRows {
		return domain.TaskStatus{}, domain.NewDatabaseError("load task status",
			fmt.Errorf("required status row %q is missing, run migrations", name))
	}

	if err != nil {
		return domain.TaskStatus{}, err
	}

	return status, nil
}
