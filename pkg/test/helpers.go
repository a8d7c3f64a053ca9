package test

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"focustime/internal/adapter/database"
)

// findProjectRoot walks up from this file until it finds go.mod, so tests
// locate the migrations regardless of which package runs them.
func findProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")
	return ""
}

// InitTestDB opens an in-memory sqlite database with the full schema applied.
func InitTestDB() *database.DB {
	migrationsPath := filepath.Join(findProjectRoot(), "db", "migrations", "sqlite")

	db, err := database.Open("sqlite3", ":memory:", migrationsPath)

	if err != nil {
		log.Fatal(err)
	}

	return db
}

func TeardownTestDB(t *testing.T, db *database.DB) {
	t.Helper()

	if db != nil {
		db.Close()
	}
}
