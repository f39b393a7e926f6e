// Package migrations embute os scripts goose de cada dialeto suportado.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql mysql/*.sql sqlite/*.sql
var FS embed.FS

// dirFor mapeia o dialeto goose para o diretório embutido.
func dirFor(gooseDialect string) (string, error) {
	switch gooseDialect {
	case "postgres":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	case "sqlite3":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("sem migrações para o dialeto %q", gooseDialect)
	}
}

// Run executa um comando goose (up, down, status, ...) com os scripts embutidos.
// Um dir não vazio substitui os scripts embutidos por arquivos do disco.
func Run(command string, db *sql.DB, gooseDialect, dir string, args ...string) error {
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("goose: dialeto inválido: %w", err)
	}
	if dir == "" {
		embedded, err := dirFor(gooseDialect)
		if err != nil {
			return err
		}
		goose.SetBaseFS(FS)
		defer goose.SetBaseFS(nil)
		dir = embedded
	}
	return goose.Run(command, db, dir, args...)
}

// Up aplica todas as migrações pendentes.
func Up(db *sql.DB, gooseDialect string) error {
	goose.SetLogger(goose.NopLogger())
	return Run("up", db, gooseDialect, "")
}
