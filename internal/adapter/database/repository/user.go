package repository

import (
	"context"
	"database/sql"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"focustime/internal/core/domain"
)

type UserRepository struct {
	q  runner
	qb sq.StatementBuilderType
}

func (ur *UserRepository) Add(ctx context.Context, user domain.User) error {
	query, args, err := ur.qb.Insert("users").
		Columns("identificator", "username", "email", "password_hash", "active").
		Values(user.Identificator, user.Username, user.Email, user.PasswordHash, user.Active).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := ur.q.ExecContext(ctx, query, args...); err != nil {
		slog.Error("error inserting user", "username", user.Username, "error", err)
		return err
	}

	return nil
}

func (ur *UserRepository) GetByIdentificator(ctx context.Context, identificator string) (*domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"identificator": identificator})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"username": username})
}

func (ur *UserRepository) getBy(ctx context.Context, pred sq.Eq) (*domain.User, error) {
	query, args, err := ur.qb.
		Select("id", "identificator", "username", "email", "password_hash", "active").
		From("users").
		Where(pred).
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.q.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, err
	}

	var user domain.User

	found, err := scanOne(rows, "user", func(r *sql.Rows) error {
		return r.Scan(&user.ID, &user.Identificator, &user.Username, &user.Email, &user.PasswordHash, &user.Active)
	})

	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return &user, nil
}

func (ur *UserRepository) Delete(ctx context.Context, identificator string) error {
	if _, ok, err := resolveID(ctx, ur.q, ur.qb, "users", identificator); err != nil {
		return err
	} else if !ok {
		return domain.NewNotFoundError("user", identificator)
	}

	query, args, err := ur.qb.Delete("users").Where(sq.Eq{"identificator": identificator}).ToSql()

	if err != nil {
		return err
	}

	// Projects and everything under them go via ON DELETE CASCADE.
	_, err = ur.q.ExecContext(ctx, query, args...)

	return err
}
