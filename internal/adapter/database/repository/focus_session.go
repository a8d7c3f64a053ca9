package repository

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"focustime/internal/core/domain"
	"focustime/pkg/tracing"
)

type FocusSessionRepository struct {
	q       runner
	qb      sq.StatementBuilderType
	dayExpr func(string) string
}

// Add persists the session and returns it with the generated row id.
// Sessions are append-only, so there is no Update counterpart.
func (fr *FocusSessionRepository) Add(ctx context.Context, session domain.FocusSession) (domain.FocusSession, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.focus_session.Add", []attribute.KeyValue{
		attribute.String("db.table", "focus_sessions"),
		attribute.String("db.operation", "INSERT"),
	})

	defer span.End()

	projectID, ok, err := resolveID(ctx, fr.q, fr.qb, "projects", session.Project.Identificator)

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.FocusSession{}, err
	}

	if !ok {
		return domain.FocusSession{}, domain.NewNotFoundError("project", session.Project.Identificator)
	}

	query, args, err := fr.qb.Insert("focus_sessions").
		Columns("project_id", "started_at", "duration_seconds").
		Values(projectID, session.StartedAt, session.DurationSeconds).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.FocusSession{}, err
	}

	if err := fr.q.QueryRowContext(ctx, query, args...).Scan(&session.ID); err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("error inserting focus session", "project_id", session.Project.Identificator, "error", err)
		return domain.FocusSession{}, err
	}

	return session, nil
}

func (fr *FocusSessionRepository) ListByProject(ctx context.Context, projectIdentificator string) ([]domain.FocusSession, error) {
	query, args, err := fr.qb.Select(
		"f.id", "f.started_at", "f.duration_seconds",
		"p.id", "p.identificator", "p.title", "p.color", "p.active", "u.identificator",
	).
		From("focus_sessions f").
		Join("projects p ON p.id = f.project_id").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"p.identificator": projectIdentificator}).
		OrderBy("f.started_at DESC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := fr.q.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	sessions := []domain.FocusSession{}

	for rows.Next() {
		var session domain.FocusSession

		err := rows.Scan(
			&session.ID, &session.StartedAt, &session.DurationSeconds,
			&session.Project.ID, &session.Project.Identificator, &session.Project.Title,
			&session.Project.Color, &session.Project.Active, &session.Project.UserIdentificator,
		)

		if err != nil {
			return nil, err
		}

		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// DailyTotals sums focus time per calendar day across all of the user's
// projects, starting at since. Days without sessions are simply absent.
func (fr *FocusSessionRepository) DailyTotals(ctx context.Context, userIdentificator string, since time.Time) ([]domain.DailyFocusTotal, error) {
	day := fr.dayExpr("f.started_at")

	query, args, err := fr.qb.Select().
		Column(sq.Alias(sq.Expr(day), "day")).
		Column("SUM(f.duration_seconds) AS total_seconds").
		From("focus_sessions f").
		Join("projects p ON p.id = f.project_id").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"u.identificator": userIdentificator}).
		Where(sq.GtOrEq{"f.started_at": since}).
		GroupBy(day).
		OrderBy("day ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := fr.q.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	totals := []domain.DailyFocusTotal{}

	for rows.Next() {
		var total domain.DailyFocusTotal

		if err := rows.Scan(&total.Day, &total.TotalSeconds); err != nil {
			return nil, err
		}

		totals = append(totals, total)
	}

	return totals, rows.Err()
}

// ProjectSummaries rolls up today / this week / all time focus seconds for
// every active project of the user, including projects with no sessions yet.
func (fr *FocusSessionRepository) ProjectSummaries(ctx context.Context, userIdentificator string, today, weekStart time.Time) ([]domain.ProjectFocusSummary, error) {
	query, args, err := fr.qb.Select("p.identificator", "p.title", "p.color").
		Column(sq.Alias(sq.Expr("COALESCE(SUM(CASE WHEN f.started_at >= ? THEN f.duration_seconds ELSE 0 END), 0)", today), "today_seconds")).
		Column(sq.Alias(sq.Expr("COALESCE(SUM(CASE WHEN f.started_at >= ? THEN f.duration_seconds ELSE 0 END), 0)", weekStart), "week_seconds")).
		Column(sq.Alias(sq.Expr("COALESCE(SUM(f.duration_seconds), 0)"), "total_seconds")).
		From("projects p").
		Join("users u ON u.id = p.user_id").
		LeftJoin("focus_sessions f ON f.project_id = p.id").
		Where(sq.Eq{"u.identificator": userIdentificator, "p.active": true}).
		GroupBy("p.id", "p.identificator", "p.title", "p.color").
		OrderBy("p.title ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := fr.q.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	summaries := []domain.ProjectFocusSummary{}

	for rows.Next() {
		var summary domain.ProjectFocusSummary

		err := rows.Scan(
			&summary.ProjectIdentificator, &summary.Title, &summary.Color,
			&summary.TodaySeconds, &summary.WeekSeconds, &summary.TotalSeconds,
		)

		if err != nil {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}
