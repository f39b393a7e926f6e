package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Drivers suportados; o nome passado a sql.Open vem do Dialect.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Options agrupa os parâmetros do pool de conexões.
type Options struct {
	Driver      string // postgres | mysql | sqlite
	URL         string
	MaxOpen     int
	MaxIdle     int
	PingTimeout time.Duration
}

// DB combina o pool *sql.DB com o dialeto SQL em uso.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open inicializa e configura o pool de conexões para o driver escolhido.
// Retorna a conexão pronta para uso (ping já realizado).
func Open(opts Options) (*DB, error) {
	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	// 1. Abrir a Conexão
	db, err := sql.Open(dialect.DriverName, opts.URL)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// 2. Configuração do Connection Pool
	if dialect.Name == DialectSQLite {
		// SQLite serializa escritores; uma conexão evita SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(orDefault(opts.MaxOpen, 25))
		db.SetMaxIdleConns(orDefault(opts.MaxIdle, 10))
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(2 * time.Minute)
	}

	// 3. Testar a Conexão Imediatamente
	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	if dialect.Name == DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("falha ao configurar SQLite: %w", err)
		}
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
