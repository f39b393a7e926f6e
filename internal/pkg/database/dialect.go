package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Nomes de dialeto aceitos em DB_DRIVER.
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectSQLite   = "sqlite"
)

// Dialect isola as diferenças de SQL entre os bancos suportados.
// As queries dos repositórios são escritas com placeholders "?" e passam por Rebind.
type Dialect struct {
	Name         string
	DriverName   string // nome registrado em database/sql
	GooseDialect string
}

// DialectFor retorna o dialeto para o nome de driver configurado.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case DialectPostgres, "postgresql":
		return Dialect{Name: DialectPostgres, DriverName: "postgres", GooseDialect: "postgres"}, nil
	case DialectMySQL:
		return Dialect{Name: DialectMySQL, DriverName: "mysql", GooseDialect: "mysql"}, nil
	case DialectSQLite, "sqlite3":
		return Dialect{Name: DialectSQLite, DriverName: "sqlite", GooseDialect: "sqlite3"}, nil
	default:
		return Dialect{}, fmt.Errorf("driver de banco não suportado: %q", name)
	}
}

// Rebind converte placeholders "?" para o formato do driver ($1, $2... no PostgreSQL).
// As queries do projeto não contêm "?" literais.
func (d Dialect) Rebind(query string) string {
	if d.Name != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Quote protege identificadores que colidem com palavras reservadas (ex.: "user").
func (d Dialect) Quote(ident string) string {
	if d.Name == DialectMySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// ForUpdate retorna a cláusula de bloqueio de linha. No SQLite a própria
// transação de escrita já serializa o acesso.
func (d Dialect) ForUpdate() string {
	if d.Name == DialectSQLite {
		return ""
	}
	return " FOR UPDATE"
}

// IsUniqueViolation reconhece violação de chave única em qualquer um dos drivers.
func (d Dialect) IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// Execer é satisfeito por *sql.DB e *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Querier é satisfeito por *sql.DB e *sql.Tx.
type Querier interface {
	Execer
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
