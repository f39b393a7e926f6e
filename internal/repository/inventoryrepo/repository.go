package inventoryrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"medstock/internal/domain"
	"medstock/internal/errors"
	"medstock/internal/pkg/database"
	"medstock/internal/pkg/logger"
)

// AuditLog é o contrato que o repositório de estoque exige do Log Store.
type AuditLog interface {
	Append(ctx context.Context, exec database.Execer, actor, location, message string) (domain.LogEntry, error)
}

// InventoryRepository implementa as operações de leitura e escrita da tabela inventory.
// Cada mutação roda em uma única transação que inclui o registro de auditoria.
type InventoryRepository struct {
	DB        *database.DB
	DBTimeout time.Duration
	audit     AuditLog
	logger    logger.Logger

	sql struct {
		Upsert       string
		SelectQty    string
		SelectForUpd string
		Decrement    string
		Delete       string
		List         string
		ListAll      string
		Locations    string
	}
}

// NewInventoryRepository cria e retorna uma nova instância do Repositório de Estoque.
func NewInventoryRepository(db *database.DB, dbTimeout time.Duration, audit AuditLog, logger logger.Logger) *InventoryRepository {
	r := &InventoryRepository{DB: db, DBTimeout: dbTimeout, audit: audit, logger: logger}
	d := db.Dialect

	const keyFilter = ` WHERE location = ? AND upid = ? AND expiration = ?`
	const columns = `upid, location, quantity, expiration, name`

	// Inserção ou incremento em um único comando: elimina a corrida entre
	// "verificar existência" e "inserir" quando duas entradas chegam juntas.
	switch d.Name {
	case database.DialectMySQL:
		r.sql.Upsert = `INSERT INTO inventory (` + columns + `) VALUES (?, ?, ?, ?, ?)
            ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`
	default:
		r.sql.Upsert = d.Rebind(`INSERT INTO inventory (` + columns + `) VALUES (?, ?, ?, ?, ?)
            ON CONFLICT (location, upid, expiration) DO UPDATE SET quantity = inventory.quantity + excluded.quantity`)
	}

	r.sql.SelectQty = d.Rebind(`SELECT quantity, name FROM inventory` + keyFilter)
	r.sql.SelectForUpd = d.Rebind(`SELECT quantity FROM inventory` + keyFilter + d.ForUpdate())
	r.sql.Decrement = d.Rebind(`UPDATE inventory SET quantity = quantity - ?` + keyFilter)
	r.sql.Delete = d.Rebind(`DELETE FROM inventory` + keyFilter)

	const order = ` ORDER BY expiration DESC, upid ASC, location ASC`
	r.sql.List = d.Rebind(`SELECT ` + columns + ` FROM inventory` + order + ` LIMIT ? OFFSET ?`)
	r.sql.ListAll = `SELECT ` + columns + ` FROM inventory` + order
	r.sql.Locations = `SELECT location, COUNT(*), COALESCE(SUM(quantity), 0) FROM inventory
        GROUP BY location ORDER BY location ASC`

	return r
}

// Add soma quantity ao lote (location, upid, expiration), criando-o se não existir.
// Retorna o lote com a quantidade resultante.
func (r *InventoryRepository) Add(ctx context.Context, adj domain.StockAdjustment) (domain.InventoryItem, error) {
	r.logger.Debug("Iniciando entrada de estoque no repositório.", map[string]interface{}{
		"upid": adj.UPID, "location": adj.Location, "quantity": adj.Quantity,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de entrada de estoque.", err)
		return domain.InventoryItem{}, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback() // sem efeito após Commit

	exp := database.FormatDate(adj.Expiration)

	// 1. Inserir ou incrementar atomicamente
	if _, err := tx.ExecContext(ctxTimeout, r.sql.Upsert, adj.UPID, adj.Location, adj.Quantity, exp, adj.Name); err != nil {
		r.logger.Error("Falha ao inserir/incrementar estoque.", err)
		return domain.InventoryItem{}, errors.NewDBError("Falha ao inserir estoque", err)
	}

	// 2. Ler o resultado dentro da mesma transação
	item := domain.InventoryItem{UPID: adj.UPID, Location: adj.Location, Expiration: domain.DateOf(adj.Expiration)}
	if err := tx.QueryRowContext(ctxTimeout, r.sql.SelectQty, adj.Location, adj.UPID, exp).Scan(&item.Quantity, &item.Name); err != nil {
		r.logger.Error("Falha ao ler estoque após entrada.", err)
		return domain.InventoryItem{}, errors.NewDBError("Falha ao ler estoque", err)
	}

	// 3. Auditoria na mesma transação
	if _, err := r.audit.Append(ctxTimeout, tx, adj.Actor, adj.Location, fmt.Sprintf("Added %d of %s", adj.Quantity, adj.UPID)); err != nil {
		return domain.InventoryItem{}, err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar transação de entrada de estoque.", err)
		return domain.InventoryItem{}, errors.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Entrada de estoque registrada.", map[string]interface{}{
		"upid": item.UPID, "location": item.Location, "quantity": item.Quantity,
	})
	return item, nil
}

// Remove retira quantity do lote. Se o saldo ficar <= 0 o lote é apagado.
// Lote inexistente resulta em NotFoundError e nenhuma escrita.
func (r *InventoryRepository) Remove(ctx context.Context, adj domain.StockAdjustment) (domain.RemoveResult, error) {
	r.logger.Debug("Iniciando saída de estoque no repositório.", map[string]interface{}{
		"upid": adj.UPID, "location": adj.Location, "quantity": adj.Quantity,
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de saída de estoque.", err)
		return domain.RemoveResult{}, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	exp := database.FormatDate(adj.Expiration)

	// 1. Bloquear a linha até o commit
	var current int
	err = tx.QueryRowContext(ctxTimeout, r.sql.SelectForUpd, adj.Location, adj.UPID, exp).Scan(&current)
	if err == sql.ErrNoRows {
		r.logger.Info("Lote de estoque não encontrado para retirada.", map[string]interface{}{
			"upid": adj.UPID, "location": adj.Location, "expiration": exp,
		})
		return domain.RemoveResult{}, errors.NewNotFoundError(fmt.Sprintf("Estoque %s em %s com validade %s não encontrado.", adj.UPID, adj.Location, exp))
	}
	if err != nil {
		r.logger.Error("Falha ao selecionar estoque para retirada.", err)
		return domain.RemoveResult{}, errors.NewDBError("Falha ao buscar estoque", err)
	}

	// 2. Apagar ou decrementar
	result := domain.RemoveResult{UPID: adj.UPID, Location: adj.Location}
	if current-adj.Quantity <= 0 {
		_, err = tx.ExecContext(ctxTimeout, r.sql.Delete, adj.Location, adj.UPID, exp)
		result.Deleted = true
	} else {
		_, err = tx.ExecContext(ctxTimeout, r.sql.Decrement, adj.Quantity, adj.Location, adj.UPID, exp)
		result.Remaining = current - adj.Quantity
	}
	if err != nil {
		r.logger.Error("Falha ao retirar estoque.", err)
		return domain.RemoveResult{}, errors.NewDBError("Falha ao retirar estoque", err)
	}

	// 3. Auditoria
	if _, err := r.audit.Append(ctxTimeout, tx, adj.Actor, adj.Location, fmt.Sprintf("Removed %d of %s", adj.Quantity, adj.UPID)); err != nil {
		return domain.RemoveResult{}, err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar transação de saída de estoque.", err)
		return domain.RemoveResult{}, errors.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Saída de estoque registrada.", map[string]interface{}{
		"upid": adj.UPID, "location": adj.Location, "remaining": result.Remaining, "deleted": result.Deleted,
	})
	return result, nil
}

// List retorna lotes ordenados por validade decrescente, paginados.
func (r *InventoryRepository) List(ctx context.Context, page domain.Pagination) ([]domain.InventoryItem, error) {
	return r.query(ctx, r.sql.List, page.Limit, page.Offset)
}

// ListAll retorna todos os lotes, na mesma ordem de List.
func (r *InventoryRepository) ListAll(ctx context.Context) ([]domain.InventoryItem, error) {
	return r.query(ctx, r.sql.ListAll)
}

func (r *InventoryRepository) query(ctx context.Context, query string, args ...any) ([]domain.InventoryItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar estoque.", err)
		return nil, errors.NewDBError("Falha ao listar estoque", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var (
			it  domain.InventoryItem
			exp database.NullDate
		)
		if err := rows.Scan(&it.UPID, &it.Location, &it.Quantity, &exp, &it.Name); err != nil {
			r.logger.Error("Falha ao ler linha de estoque.", err)
			return nil, errors.NewDBError("Falha ao ler estoque", err)
		}
		it.Expiration = exp.Time
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar estoque", err)
	}
	return items, nil
}

// Locations agrega o estoque por localização.
func (r *InventoryRepository) Locations(ctx context.Context) ([]domain.LocationSummary, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, r.sql.Locations)
	if err != nil {
		r.logger.Error("Falha ao agregar localizações.", err)
		return nil, errors.NewDBError("Falha ao listar localizações", err)
	}
	defer rows.Close()

	out := []domain.LocationSummary{}
	for rows.Next() {
		var ls domain.LocationSummary
		if err := rows.Scan(&ls.Location, &ls.Items, &ls.Quantity); err != nil {
			return nil, errors.NewDBError("Falha ao ler localizações", err)
		}
		out = append(out, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao iterar localizações", err)
	}
	return out, nil
}
