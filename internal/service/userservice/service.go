package userservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/database"
	"medstock/internal/pkg/logger"
)

// UserRepository define o contrato que o Serviço de Usuários espera da camada de Persistência.
type UserRepository interface {
	Register(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	AppendHistory(ctx context.Context, userID string, entry domain.HistoryEntry) ([]domain.HistoryEntry, error)
	History(ctx context.Context, userID string) ([]domain.HistoryEntry, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID, username string) (string, error)
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo UserRepository
	TokenSvc TokenService
	logger   logger.Logger
	now      func() time.Time
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc TokenService, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		logger:   logger,
		now:      time.Now,
	}
}

// Register registra um novo usuário no sistema.
// Ele faz o hashing da senha e lida com validações básicas.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	// 1. Validação Básica
	username := strings.TrimSpace(registration.Username)
	if username == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Usuário e senha são obrigatórios.")
	}

	// 2. Hashing da Senha
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.User{}, apperror.NewValidationError("A senha deve ter no máximo 72 bytes.")
		}
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 3. Persistência (duplicidade vira ConflictError no repositório)
	user, err := s.UserRepo.Register(ctx, domain.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
	})
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	return user, nil
}

// Login autentica um usuário, verifica a senha e gera um JWT.
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	// 1. Validação Básica
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return domain.LoginResult{}, apperror.NewUnauthorizedError("Usuário e senha são obrigatórios.")
	}

	// 2. Buscar Usuário
	user, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		// NotFound vira 401 para não revelar quais usuários existem.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.LoginResult{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.LoginResult{}, err
	}

	// 3. Comparar Senhas (tempo constante)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("Senha incorreta no login.", map[string]interface{}{"username": username})
		return domain.LoginResult{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	// 4. Gerar JWT
	tokenString, err := s.TokenSvc.GenerateToken(user.ID, user.Username)
	if err != nil {
		return domain.LoginResult{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return domain.LoginResult{
		Success:  true,
		UserID:   user.ID,
		Username: user.Username,
		Token:    tokenString,
	}, nil
}

// AppendHistory acrescenta uma nota ao histórico do usuário. Sem data, usa hoje.
func (s *UserService) AppendHistory(ctx context.Context, userID string, req domain.HistoryRequest) ([]domain.HistoryEntry, error) {
	userID = strings.TrimSpace(userID)
	description := strings.TrimSpace(req.Description)
	if userID == "" || description == "" {
		return nil, apperror.NewValidationError("Usuário e descrição são obrigatórios.")
	}

	date := strings.TrimSpace(req.Date)
	if date == "" {
		date = database.FormatDate(s.now())
	} else if _, err := time.Parse(database.DateLayout, date); err != nil {
		return nil, apperror.NewValidationError("Data inválida; use o formato YYYY-MM-DD.")
	}

	return s.UserRepo.AppendHistory(ctx, userID, domain.HistoryEntry{Date: date, Description: description})
}

// History retorna o histórico do usuário.
func (s *UserService) History(ctx context.Context, userID string) ([]domain.HistoryEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.NewValidationError("Usuário é obrigatório.")
	}
	return s.UserRepo.History(ctx, userID)
}
