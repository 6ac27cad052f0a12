// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"business-directory-api/config"

	"gorm.io/gorm"
)

// NewDB opens a migrated sqlite database in a per-test directory. The pool
// is limited to one connection, so code under test must not query the
// handle while it holds a transaction on it.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := config.Connect(&config.Config{DBDriver: "sqlite", DatabaseURL: path, GinMode: "test"})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
