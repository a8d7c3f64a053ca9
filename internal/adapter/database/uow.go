package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"focustime/internal/adapter/database/repository"
	"focustime/internal/core/domain"
	"focustime/internal/core/port"
)

// UnitOfWork implements port.UnitOfWork over a single sql transaction. All
// repositories inside one Do call share the open transaction, so they see
// each other's uncommitted changes and either all land or none do.
type UnitOfWork struct {
	db *DB
}

func NewUnitOfWork(db *DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(r port.Repositories) error) error {
	tx, err := u.db.BeginTx(ctx, nil)

	if err != nil {
		return domain.NewDatabaseError("begin transaction", err)
	}

	repos := repository.New(tx, u.db.QueryBuilder, u.db.DayExpr)

	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.Error("rollback failed", "error", rbErr)
		}

		if domain.IsDomainError(err) {
			return err
		}

		return domain.NewDatabaseError("unit of work", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.NewDatabaseError("commit transaction", err)
	}

	return nil
}
