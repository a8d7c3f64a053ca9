package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"
)

// DB wraps the sql pool with the placeholder-aware query builder and the
// driver name, so repositories stay identical across postgres and sqlite.
type DB struct {
	*sql.DB
	QueryBuilder squirrel.StatementBuilderType
	DriverName   string
}

// Open connects, wraps the driver with tracing and SQL statement logging, and
// applies migrations. driverName is "pgx" or "sqlite3".
func Open(driverName, dsn, migrationsPath string) (*DB, error) {
	tracerProvider := otel.GetTracerProvider()

	sqlDB, err := otelsql.Open(driverName, dsn,
		otelsql.WithDBSystem(dbSystem(driverName)),
		otelsql.WithDBName("focustime"),
		otelsql.WithTracerProvider(tracerProvider),
	)

	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driverName, err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	loggedDB := sqldblogger.OpenDriver(dsn, sqlDB.Driver(), zerologadapter.New(logger))

	// Only the instrumented driver is reused; the first handle is not.
	sqlDB.Close()

	if driverName == "sqlite3" {
		// An in-memory sqlite database lives on a single connection; a second
		// pooled connection would see an empty schema.
		if strings.Contains(dsn, ":memory:") {
			loggedDB.SetMaxOpenConns(1)
		}

		if _, err := loggedDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
			loggedDB.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	} else {
		loggedDB.SetMaxOpenConns(100)
		loggedDB.SetMaxIdleConns(5)
		loggedDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := loggedDB.Ping(); err != nil {
		loggedDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if migrationsPath != "" {
		if err := runMigrations(loggedDB, driverName, migrationsPath); err != nil {
			loggedDB.Close()
			return nil, err
		}
	}

	var placeholder squirrel.PlaceholderFormat = squirrel.Dollar

	if driverName == "sqlite3" {
		placeholder = squirrel.Question
	}

	return &DB{
		DB:           loggedDB,
		QueryBuilder: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		DriverName:   driverName,
	}, nil
}

// DayExpr returns the SQL expression rendering a timestamp column as a
// YYYY-MM-DD day string, which differs between the two engines.
func (d *DB) DayExpr(column string) string {
	if d.DriverName == "sqlite3" {
		return fmt.Sprintf("date(%s)", column)
	}

	return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", column)
}

func runMigrations(db *sql.DB, driverName, migrationsPath string) error {
	var (
		m   *migrate.Migrate
		err error
	)

	switch driverName {
	case "sqlite3":
		d, derr := migratesqlite.WithInstance(db, &migratesqlite.Config{})

		if derr != nil {
			return fmt.Errorf("migration driver: %w", derr)
		}

		m, err = migrate.NewWithDatabaseInstance("file://"+migrationsPath, "sqlite3", d)
	default:
		d, derr := migratepg.WithInstance(db, &migratepg.Config{})

		if derr != nil {
			return fmt.Errorf("migration driver: %w", derr)
		}

		m, err = migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", d)
	}

	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func dbSystem(driverName string) string {
	if driverName == "sqlite3" {
		return "sqlite"
	}

	return "postgresql"
}
