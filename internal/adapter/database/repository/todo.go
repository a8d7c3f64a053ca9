package repository

import (
	"context"
	"database/sql"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"focustime/internal/core/domain"
)

type ToDoRepository struct {
	q  runner
	qb sq.StatementBuilderType
}

func (dr *ToDoRepository) Add(ctx context.Context, todo domain.ToDo) error {
	taskID, ok, err := resolveID(ctx, dr.q, dr.qb, "tasks", todo.TaskIdentificator)

	if err != nil {
		return err
	}

	if !ok {
		return domain.NewNotFoundError("task", todo.TaskIdentificator)
	}

	query, args, err := dr.qb.Insert("todos").
		Columns("identificator", "title", "task_id", "status", "created_time", "completed_time").
		Values(todo.Identificator, todo.Title, taskID, todo.Status, todo.CreatedTime, completedTimeArg(todo)).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := dr.q.ExecContext(ctx, query, args...); err != nil {
		slog.Error("error inserting to-do", "todo_id", todo.Identificator, "error", err)
		return err
	}

	return nil
}

// GetByIdentificator returns the to-do even when soft-deleted; the service
// layer decides whether a deleted row counts as absent.
func (dr *ToDoRepository) GetByIdentificator(ctx context.Context, identificator string) (*domain.ToDo, error) {
	query, args, err := dr.selectToDos().Where(sq.Eq{"d.identificator": identificator}).ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := dr.q.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	var todo domain.ToDo

	found, err := scanOne(rows, "to-do", func(r *sql.Rows) error {
		return scanToDo(r, &todo)
	})

	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return &todo, nil
}

// ListByTask returns the task's to-dos with soft-deleted rows filtered out.
func (dr *ToDoRepository) ListByTask(ctx context.Context, taskIdentificator string) ([]domain.ToDo, error) {
	query, args, err := dr.selectToDos().
		Where(sq.Eq{"t.identificator": taskIdentificator}).
		Where(sq.NotEq{"d.status": domain.ToDoStatusDeleted}).
		OrderBy("d.created_time ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := dr.q.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	todos := []domain.ToDo{}

	for rows.Next() {
		var todo domain.ToDo

		if err := scanToDo(rows, &todo); err != nil {
			return nil, err
		}

		todos = append(todos, todo)
	}

	return todos, rows.Err()
}

func (dr *ToDoRepository) Update(ctx context.Context, todo domain.ToDo) error {
	if _, ok, err := resolveID(ctx, dr.q, dr.qb, "todos", todo.Identificator); err != nil {
		return err
	} else if !ok {
		return domain.NewNotFoundError("to-do", todo.Identificator)
	}

	query, args, err := dr.qb.Update("todos").
		SetMap(map[string]any{
			"title":          todo.Title,
			"status":         todo.Status,
			"completed_time": completedTimeArg(todo),
		}).
		Where(sq.Eq{"identificator": todo.Identificator}).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := dr.q.ExecContext(ctx, query, args...); err != nil {
		slog.Error("error updating to-do", "todo_id", todo.Identificator, "error", err)
		return err
	}

	return nil
}

func (dr *ToDoRepository) selectToDos() sq.SelectBuilder {
	return dr.qb.Select(
		"d.id", "d.identificator", "d.title", "t.identificator",
		"d.status", "d.created_time", "d.completed_time",
	).
		From("todos d").
		Join("tasks t ON t.id = d.task_id")
}

func completedTimeArg(todo domain.ToDo) any {
	if todo.CompletedTime != nil {
		return *todo.CompletedTime
	}

	return nil
}

func scanToDo(r *sql.Rows, todo *domain.ToDo) error {
	var completedTime sql.NullTime

	err := r.Scan(
		&todo.ID, &todo.Identificator, &todo.Title, &todo.TaskIdentificator,
		&todo.Status, &todo.CreatedTime, &completedTime,
	)

	if err != nil {
		return err
	}

	if completedTime.Valid {
		t := completedTime.Time
		todo.CompletedTime = &t
	}

	return nil
}
