package logrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medstock/internal/domain"
	"medstock/internal/errors"
	"medstock/internal/pkg/database"
	"medstock/internal/pkg/logger"
)

// LogRepository persiste o log de auditoria (somente inserção e leitura).
type LogRepository struct {
	DB        *database.DB
	DBTimeout time.Duration
	logger    logger.Logger
	now       func() time.Time

	insertSQL string
	listSQL   string
	countSQL  string
}

// NewLogRepository cria e retorna uma nova instância do Repositório de Logs.
func NewLogRepository(db *database.DB, dbTimeout time.Duration, logger logger.Logger) *LogRepository {
	d := db.Dialect
	user := d.Quote("user")

	return &LogRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
		now:       time.Now,
		insertSQL: d.Rebind(fmt.Sprintf(
			`INSERT INTO logs (uid, %s, date, location, data, created_at) VALUES (?, ?, ?, ?, ?, ?)`, user)),
		listSQL: d.Rebind(fmt.Sprintf(
			`SELECT uid, %s, date, location, data, created_at FROM logs
             ORDER BY date DESC, created_at DESC LIMIT ? OFFSET ?`, user)),
		countSQL: d.Rebind(`SELECT COUNT(*) FROM logs WHERE date = ?`),
	}
}

// WithClock substitui o relógio usado para datar os registros (testes).
func (r *LogRepository) WithClock(now func() time.Time) *LogRepository {
	r.now = now
	return r
}

// Append insere um registro com UUID novo e a data de hoje.
// exec pode ser a transação aberta pela operação que gerou o registro; nil usa o pool.
func (r *LogRepository) Append(ctx context.Context, exec database.Execer, actor, location, message string) (domain.LogEntry, error) {
	if exec == nil {
		exec = r.DB
	}

	now := r.now()
	entry := domain.LogEntry{
		ID:        uuid.NewString(),
		Actor:     actor,
		Date:      domain.DateOf(now),
		Location:  location,
		Message:   message,
		CreatedAt: now.UTC(),
	}

	_, err := exec.ExecContext(ctx, r.insertSQL,
		entry.ID, entry.Actor, database.FormatDate(entry.Date), entry.Location, entry.Message, now.UnixNano(),
	)
	if err != nil {
		r.logger.Error("Falha ao inserir registro de auditoria.", err)
		return domain.LogEntry{}, errors.NewDBError("Falha ao registrar log", err)
	}

	r.logger.Debug("Registro de auditoria inserido.", map[string]interface{}{"uid": entry.ID, "user": actor, "data": message})
	return entry, nil
}

// List retorna registros do mais recente para o mais antigo.
func (r *LogRepository) List(ctx context.Context, page domain.Pagination) ([]domain.LogEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, r.listSQL, page.Limit, page.Offset)
	if err != nil {
		r.logger.Error("Falha ao listar logs.", err)
		return nil, errors.NewDBError("Falha ao listar logs", err)
	}
	defer rows.Close()

	entries := make([]domain.LogEntry, 0, page.Limit)
	for rows.Next() {
		var (
			e       domain.LogEntry
			date    database.NullDate
			created int64
		)
		if err := rows.Scan(&e.ID, &e.Actor, &date, &e.Location, &e.Message, &created); err != nil {
			r.logger.Error("Falha ao ler linha de log.", err)
			return nil, errors.NewDBError("Falha ao ler logs", err)
		}
		e.Date = date.Time
		e.CreatedAt = time.Unix(0, created).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar logs", err)
	}
	return entries, nil
}

// CountByDate conta os registros de um dia.
func (r *LogRepository) CountByDate(ctx context.Context, day time.Time) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var n int
	err := r.DB.QueryRowContext(ctxTimeout, r.countSQL, database.FormatDate(day)).Scan(&n)
	if err != nil && err != sql.ErrNoRows {
		r.logger.Error("Falha ao contar logs do dia.", err)
		return 0, errors.NewDBError("Falha ao contar logs", err)
	}
	return n, nil
}
