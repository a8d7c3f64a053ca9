package database_test

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	. "github.com/onsi/gomega"

	"focustime/internal/adapter/database"
	"focustime/pkg/test"
)

// The query builder must render the placeholder style of the engine it was
// opened for.
func TestOpenPicksSqlitePlaceholderFormat(t *testing.T) {
	RegisterTestingT(t)

	db := test.InitTestDB()
	defer test.TeardownTestDB(t, db)

	query, args, err := db.QueryBuilder.
		Select("id").
		From("users").
		Where(sq.Eq{"identificator": "u-1"}).
		ToSql()

	Expect(err).ToNot(HaveOccurred())
	Expect(query).To(ContainSubstring("identificator = ?"))
	Expect(args).To(HaveLen(1))
}

func TestDayExprPerDriver(t *testing.T) {
	RegisterTestingT(t)

	sqlite := &database.DB{DriverName: "sqlite3"}
	postgres := &database.DB{DriverName: "pgx"}

	Expect(sqlite.DayExpr("f.started_at")).To(Equal("date(f.started_at)"))
	Expect(postgres.DayExpr("f.started_at")).To(Equal("to_char(f.started_at, 'YYYY-MM-DD')"))
}
