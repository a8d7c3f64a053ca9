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

type ProjectRepository struct {
	q  runner
	qb sq.StatementBuilderType
}

// Add resolves the owner by public identificator and stages the project row
// inside the open transaction, so constraint violations surface immediately.
func (pr *ProjectRepository) Add(ctx context.Context, project domain.Project) error {
	ctx, span := tracing.CreateChildSpan(ctx, "db.project.Add", []attribute.KeyValue{
		attribute.String("db.table", "projects"),
		attribute.String("db.operation", "INSERT"),
	})

	defer span.End()

	userID, ok, err := resolveID(ctx, pr.q, pr.qb, "users", project.UserIdentificator)

	if err != nil {
		tracing.AddSpanError(span, err)
		return err
	}

	if !ok {
		return domain.NewNotFoundError("user", project.UserIdentificator)
	}

	query, args, err := pr.qb.Insert("projects").
		Columns("identificator", "title", "color", "active", "user_id").
		Values(project.Identificator, project.Title, project.Color, project.Active, userID).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := pr.q.ExecContext(ctx, query, args...); err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("error inserting project", "project_id", project.Identificator, "error", err)
		return err
	}

	return nil
}

// GetByIdentificator loads the project together with its owner's
// identificator. The inner join guarantees the owner relationship is loaded;
// an orphaned project row simply does not match.
func (pr *ProjectRepository) GetByIdentificator(ctx context.Context, identificator string) (*domain.Project, error) {
	query, args, err := pr.qb.
		Select("p.id", "p.identificator", "p.title", "p.color", "p.active", "u.identificator").
		From("projects p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"p.identificator": identificator}).
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := pr.q.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	var project domain.Project

	found, err := scanOne(rows, "project", func(r *sql.Rows) error {
		return r.Scan(&project.ID, &project.Identificator, &project.Title, &project.Color, &project.Active, &project.UserIdentificator)
	})

	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return &project, nil
}

func (pr *ProjectRepository) ListByUser(ctx context.Context, userIdentificator string) ([]domain.Project, error) {
	query, args, err := pr.qb.
		Select("p.id", "p.identificator", "p.title", "p.color", "p.active", "u.identificator").
		From("projects p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"u.identificator": userIdentificator}).
		OrderBy("p.id").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := pr.q.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	projects := []domain.Project{}

	for rows.Next() {
		var project domain.Project

		if err := rows.Scan(&project.ID, &project.Identificator, &project.Title, &project.Color, &project.Active, &project.UserIdentificator); err != nil {
			return nil, err
		}

		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// Update re-fetches the managed row first: a missing row is a domain
// NotFound, not a silent zero-row update.
func (pr *ProjectRepository) Update(ctx context.Context, project domain.Project) error {
	if _, ok, err := resolveID(ctx, pr.q, pr.qb, "projects", project.Identificator); err != nil {
		return err
	} else if !ok {
		return domain.NewNotFoundError("project", project.Identificator)
	}

	query, args, err := pr.qb.Update("projects").
		SetMap(map[string]any{
			"title":  project.Title,
			"color":  project.Color,
			"active": project.Active,
		}).
		Where(sq.Eq{"identificator": project.Identificator}).
		ToSql()

	if err != nil {
		return err
	}

	_, err = pr.q.ExecContext(ctx, query, args...)

	return err
}

func (pr *ProjectRepository) Delete(ctx context.Context, identificator string) error {
	query, args, err := pr.qb.Delete("projects").Where(sq.Eq{"identificator": identificator}).ToSql()

	if err != nil {
		return err
	}

	result, err := pr.q.ExecContext(ctx, query, args...)

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.NewNotFoundError("project", identificator)
	}

	return nil
}
