package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"focustime/internal/core/domain"
	"focustime/internal/core/port"
)

// runner is satisfied by both *sql.DB and *sql.Tx; the unit of work always
// hands repositories a transaction.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New builds the full repository set over one runner. dayExpr renders a
// timestamp column as a YYYY-MM-DD string in the dialect of the underlying
// engine.
func New(r runner, qb sq.StatementBuilderType, dayExpr func(string) string) port.Repositories {
	return port.Repositories{
		Users:         &UserRepository{q: r, qb: qb},
		Projects:      &ProjectRepository{q: r, qb: qb},
		TaskStatuses:  &TaskStatusRepository{q: r, qb: qb},
		Tasks:         &TaskRepository{q: r, qb: qb},
		FocusSessions: &FocusSessionRepository{q: r, qb: qb, dayExpr: dayExpr},
		ToDos:         &ToDoRepository{q: r, qb: qb},
	}
}

// resolveID maps a public identificator to the internal primary key.
// (nil, nil) result convention does not apply here: callers always need the
// row, so absence returns ok=false.
func resolveID(ctx context.Context, r runner, qb sq.StatementBuilderType, table, identificator string) (int, bool, error) {
	query, args, err := qb.Select("id").From(table).Where(sq.Eq{"identificator": identificator}).ToSql()

	if err != nil {
		return 0, false, err
	}

	var id int
	err = r.QueryRowContext(ctx, query, args...).Scan(&id)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, err
	}

	return id, true, nil
}

// scanOne scans exactly one row out of rows. More than one row for a
// supposedly-unique identificator is a data-integrity failure, reported as a
// DatabaseError rather than silently returning the first match.
func scanOne(rows *sql.Rows, resource string, scan func(*sql.Rows) error) (bool, error) {
	defer rows.Close()

	if !rows.Next() {
		return false, rows.Err()
	}

	if err := scan(rows); err != nil {
		return false, err
	}

	if rows.Next() {
		return false, domain.NewDatabaseError(
			fmt.Sprintf("load %s", resource),
			fmt.Errorf("data integrity issue: multiple %s rows for a unique identificator", resource),
		)
	}

	return true, rows.Err()
}
