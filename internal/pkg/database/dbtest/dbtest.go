// Package dbtest cria bancos SQLite temporários e migrados para testes de repositório.
package dbtest

import (
	"path/filepath"
	"testing"

	"medstock/internal/pkg/database"
	"medstock/migrations"
)

// New abre um SQLite em arquivo temporário com o schema aplicado.
func New(t *testing.T) *database.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "medstock.db")
	db, err := database.Open(database.Options{Driver: database.DialectSQLite, URL: path})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := migrations.Up(db.DB, db.Dialect.GooseDialect); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
