package userrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/database"
	"medstock/internal/pkg/logger"
)

// AuditLog é o contrato que o repositório de usuários exige do Log Store.
type AuditLog interface {
	Append(ctx context.Context, exec database.Execer, actor, location, message string) (domain.LogEntry, error)
}

// auditLocation é a "localização" usada nos registros de auditoria de usuários.
const auditLocation = "userData"

// UserRepository persiste usuários e seus históricos.
type UserRepository struct {
	DB        *database.DB
	DBTimeout time.Duration
	audit     AuditLog
	logger    logger.Logger

	UserSQLs struct {
		Insert         string
		Exists         string
		FindByUsername string
		HistoryForUpd  string
		History        string
		UpdateHistory  string
	}
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *database.DB, dbTimeout time.Duration, audit AuditLog, logger logger.Logger) *UserRepository {
	r := &UserRepository{DB: db, DBTimeout: dbTimeout, audit: audit, logger: logger}
	d := db.Dialect

	r.UserSQLs.Insert = d.Rebind(`INSERT INTO users (userid, username, password, auth, history) VALUES (?, ?, ?, ?, ?)`)
	r.UserSQLs.Exists = d.Rebind(`SELECT userid FROM users WHERE username = ?`)
	r.UserSQLs.FindByUsername = d.Rebind(`SELECT userid, username, password, auth FROM users WHERE username = ?`)
	r.UserSQLs.HistoryForUpd = d.Rebind(`SELECT history FROM users WHERE userid = ?` + d.ForUpdate())
	r.UserSQLs.History = d.Rebind(`SELECT history FROM users WHERE userid = ?`)
	r.UserSQLs.UpdateHistory = d.Rebind(`UPDATE users SET history = ? WHERE userid = ?`)
	return r
}

// Register insere um novo usuário (com o hash da senha já calculado) e registra a auditoria.
// Nome de usuário já existente resulta em ConflictError.
func (r *UserRepository) Register(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando registro de usuário no repositório.", map[string]interface{}{"username": user.Username})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de registro.", err)
		return domain.User{}, apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	// 1. Verificar duplicidade
	var existing string
	err = tx.QueryRowContext(ctxTimeout, r.UserSQLs.Exists, user.Username).Scan(&existing)
	if err == nil {
		r.logger.Info("Nome de usuário já cadastrado.", map[string]interface{}{"username": user.Username})
		return domain.User{}, conflict(user.Username)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.logger.Error("Falha ao verificar existência do usuário.", err)
		return domain.User{}, apperror.NewDBError("Falha ao verificar usuário", err)
	}

	// 2. Inserir
	user.ID = uuid.NewString()
	user.History = []domain.HistoryEntry{}
	emptyHistory, _ := json.Marshal(domain.HistoryDocument{History: user.History})

	_, err = tx.ExecContext(ctxTimeout, r.UserSQLs.Insert, user.ID, user.Username, user.PasswordHash, user.Auth, string(emptyHistory))
	if err != nil {
		// Dois registros simultâneos podem passar pela verificação; a constraint UNIQUE decide.
		if r.DB.Dialect.IsUniqueViolation(err) {
			return domain.User{}, conflict(user.Username)
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao inserir usuário", err)
	}

	// 3. Auditoria
	if _, err := r.audit.Append(ctxTimeout, tx, domain.SystemActor, auditLocation, "Registered new user: "+user.Username); err != nil {
		return domain.User{}, err
	}

	if err := tx.Commit(); err != nil {
		if r.DB.Dialect.IsUniqueViolation(err) {
			return domain.User{}, conflict(user.Username)
		}
		r.logger.Error("Falha ao commitar registro de usuário.", err)
		return domain.User{}, apperror.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	return user, nil
}

func conflict(username string) error {
	return apperror.NewConflictError(fmt.Sprintf("O usuário '%s' já existe.", username))
}

// FindByUsername busca um usuário pelo nome de usuário.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var user domain.User
	err := r.DB.QueryRowContext(ctxTimeout, r.UserSQLs.FindByUsername, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Auth,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Info("Usuário não encontrado no DB.", map[string]interface{}{"username": username})
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário '%s' não encontrado", username))
		}
		r.logger.Error("Falha ao buscar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao buscar usuário", err)
	}
	return user, nil
}

// AppendHistory acrescenta uma entrada ao histórico do usuário, preservando as anteriores.
// A leitura bloqueia a linha, então chamadas simultâneas não perdem entradas.
func (r *UserRepository) AppendHistory(ctx context.Context, userID string, entry domain.HistoryEntry) ([]domain.HistoryEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de histórico.", err)
		return nil, apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	// 1. Ler o documento atual
	var raw sql.NullString
	err = tx.QueryRowContext(ctxTimeout, r.UserSQLs.HistoryForUpd, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Usuário %s não encontrado", userID))
	}
	if err != nil {
		r.logger.Error("Falha ao ler histórico do usuário.", err)
		return nil, apperror.NewDBError("Falha ao ler histórico", err)
	}

	doc, err := decodeHistory(raw)
	if err != nil {
		r.logger.Error("Histórico do usuário corrompido.", err)
		return nil, apperror.NewInternalError("Histórico do usuário em formato inválido.", err)
	}

	// 2. Acrescentar e gravar o documento completo
	doc.History = append(doc.History, entry)
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, apperror.NewInternalError("Falha ao serializar histórico.", err)
	}
	if _, err := tx.ExecContext(ctxTimeout, r.UserSQLs.UpdateHistory, string(encoded), userID); err != nil {
		r.logger.Error("Falha ao gravar histórico do usuário.", err)
		return nil, apperror.NewDBError("Falha ao gravar histórico", err)
	}

	// 3. Auditoria
	if _, err := r.audit.Append(ctxTimeout, tx, domain.SystemActor, auditLocation, "Updated history for user "+userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar histórico.", err)
		return nil, apperror.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Histórico do usuário atualizado.", map[string]interface{}{"user_id": userID, "entries": len(doc.History)})
	return doc.History, nil
}

// History retorna o histórico do usuário na ordem em que foi gravado.
func (r *UserRepository) History(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var raw sql.NullString
	err := r.DB.QueryRowContext(ctxTimeout, r.UserSQLs.History, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Usuário %s não encontrado", userID))
	}
	if err != nil {
		r.logger.Error("Falha ao ler histórico do usuário.", err)
		return nil, apperror.NewDBError("Falha ao ler histórico", err)
	}

	doc, err := decodeHistory(raw)
	if err != nil {
		return nil, apperror.NewInternalError("Histórico do usuário em formato inválido.", err)
	}
	return doc.History, nil
}

// decodeHistory trata NULL e texto vazio como histórico vazio.
func decodeHistory(raw sql.NullString) (domain.HistoryDocument, error) {
	doc := domain.HistoryDocument{History: []domain.HistoryEntry{}}
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return doc, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &doc); err != nil {
		return domain.HistoryDocument{}, err
	}
	if doc.History == nil {
		doc.History = []domain.HistoryEntry{}
	}
	return doc, nil
}
