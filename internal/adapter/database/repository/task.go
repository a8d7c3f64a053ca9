package repository

import (
	"context"
	"database/sql"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"focustime/internal/core/domain"
	"focustime/pkg/tracing"
)

type TaskRepository struct {
	q  runner
	qb sq.StatementBuilderType
}

// Add resolves the owning project and the status row by their public
// identity, then stages the task inside the open transaction.
func (tr *TaskRepository) Add(ctx context.Context, task domain.Task) error {
	ctx, span := tracing.CreateChildSpan(ctx, "db.task.Add", []attribute.KeyValue{
		attribute.String("db.table", "tasks"),
		attribute.String("db.operation", "INSERT"),
	})

	defer span.End()

	projectID, ok, err := resolveID(ctx, tr.q, tr.qb, "projects", task.Project.Identificator)

	if err != nil {
		tracing.AddSpanError(span, err)
		return err
	}

	if !ok {
		return domain.NewNotFoundError("project", task.Project.Identificator)
	}

	statusID, err := tr.resolveStatusID(ctx, task.Status)

	if err != nil {
		return err
	}

	var completedAt any

	if task.CompletedAt != nil {
		completedAt = *task.CompletedAt
	}

	query, args, err := tr.qb.Insert("tasks").
		Columns("identificator", "title", "description", "created_at", "completed_at", "project_id", "status_id").
		Values(task.Identificator, task.Title, task.Description, task.CreatedAt, completedAt, projectID, statusID).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := tr.q.ExecContext(ctx, query, args...); err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("error inserting task", "task_id", task.Identificator, "error", err)
		return err
	}

	return nil
}

// GetByIdentificator loads the task with its project (and owner) and status
// relationships fully resolved; the joins fail the match rather than produce
// a partially-loaded task.
func (tr *TaskRepository) GetByIdentificator(ctx context.Context, identificator string) (*domain.Task, error) {
	query, args, err := tr.selectTasks().Where(sq.Eq{"t.identificator": identificator}).ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.q.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	var task domain.Task

	found, err := scanOne(rows, "task", func(r *sql.Rows) error {
		return scanTask(r, &task)
	})

	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return &task, nil
}

func (tr *TaskRepository) ListByProject(ctx context.Context, projectIdentificator string) ([]domain.Task, error) {
	query, args, err := tr.selectTasks().
		Where(sq.Eq{"p.identificator": projectIdentificator}).
		OrderBy("t.created_at DESC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.q.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	tasks := []domain.Task{}

	for rows.Next() {
		var task domain.Task

		if err := scanTask(rows, &task); err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (tr *TaskRepository) Update(ctx context.Context, task domain.Task) error {
	if _, ok, err := resolveID(ctx, tr.q, tr.qb, "tasks", task.Identificator); err != nil {
		return err
	} else if !ok {
		return domain.NewNotFoundError("task", task.Identificator)
	}

	statusID, err := tr.resolveStatusID(ctx, task.Status)

	if err != nil {
		return err
	}

	var completedAt any

	if task.CompletedAt != nil {
		completedAt = *task.CompletedAt
	}

	query, args, err := tr.qb.Update("tasks").
		SetMap(map[string]any{
			"title":        task.Title,
			"description":  task.Description,
			"completed_at": completedAt,
			"status_id":    statusID,
		}).
		Where(sq.Eq{"identificator": task.Identificator}).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := tr.q.ExecContext(ctx, query, args...); err != nil {
		slog.Error("error updating task", "task_id", task.Identificator, "error", err)
		return err
	}

	return nil
}

func (tr *TaskRepository) Delete(ctx context.Context, identificator string) error {
	query, args, err := tr.qb.Delete("tasks").Where(sq.Eq{"identificator": identificator}).ToSql()

	if err != nil {
		return err
	}

	result, err := tr.q.ExecContext(ctx, query, args...)

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.NewNotFoundError("task", identificator)
	}

	return nil
}

func (tr *TaskRepository) selectTasks() sq.SelectBuilder {
	return tr.qb.Select(
		"t.id", "t.identificator", "t.title", "t.description", "t.created_at", "t.completed_at",
		"p.id", "p.identificator", "p.title", "p.color", "p.active", "u.identificator",
		"s.id", "s.name",
	).
		From("tasks t").
		Join("projects p ON p.id = t.project_id").
		Join("users u ON u.id = p.user_id").
		Join("task_status s ON s.id = t.status_id")
}

// resolveStatusID trusts a status already loaded in this transaction and
// falls back to a name lookup otherwise.
func (tr *TaskRepository) resolveStatusID(ctx context.Context, status domain.TaskStatus) (int, error) {
	if status.ID != 0 {
		return status.ID, nil
	}

	statuses := &TaskStatusRepository{q: tr.q, qb: tr.qb}
	resolved, err := statuses.GetByName(ctx, status.Name)

	if err != nil {
		return 0, err
	}

	return resolved.ID, nil
}

func scanTask(r *sql.Rows, task *domain.Task) error {
	var (
		description sql.NullString
		completedAt sql.NullTime
	)

	err := r.Scan(
		&task.ID, &task.Identificator, &task.Title, &description, &task.CreatedAt, &completedAt,
		&task.Project.ID, &task.Project.Identificator, &task.Project.Title, &task.Project.Color,
		&task.Project.Active, &task.Project.UserIdentificator,
		&task.Status.ID, &task.Status.Name,
	)

	if err != nil {
		return err
	}

	task.Description = description.String

	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}

	return nil
}
