package user

import (
	"context"
	"fmt"
	"net/http"

	"medstock/internal/api/respond"
	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/logger"
	"medstock/internal/pkg/middleware"
)

// UserService define o contrato para registro, login e histórico.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error)
	AppendHistory(ctx context.Context, userID string, req domain.HistoryRequest) ([]domain.HistoryEntry, error)
	History(ctx context.Context, userID string) ([]domain.HistoryEntry, error)
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterUserHandler lida com a requisição POST /auth/register.
// @Summary Registra um novo usuário
// @Description Cria um novo usuário, hasheia a senha e salva no banco de dados.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciais de registro"
// @Success 201 {object} domain.MessageResponse "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Usuário já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /auth/register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := respond.Decode(r, &reg); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	newUser, err := h.Service.Register(r.Context(), reg)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	respond.Service(w, r, h.Logger, domain.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("User '%s' registered successfully", newUser.Username),
	}, nil, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /auth/login.
// @Summary Autentica um usuário e retorna um JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Credenciais"
// @Success 200 {object} domain.LoginResult
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	result, err := h.Service.Login(r.Context(), req)
	respond.Service(w, r, h.Logger, result, err, http.StatusOK)
}

// ownUser rejeita acesso ao histórico de outro usuário quando há token.
func ownUser(r *http.Request, userID string) error {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if ok && claims.UserID != userID {
		return apperror.NewUnauthorizedError("O token não pertence a este usuário.")
	}
	return nil
}

// HistoryHandler lida com GET /users/{id}/history.
// @Summary Histórico do usuário
// @Tags users
// @Produce json
// @Param id path string true "ID do usuário"
// @Success 200 {object} domain.HistoryResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /users/{id}/history [get]
func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if err := ownUser(r, userID); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	history, err := h.Service.History(r.Context(), userID)
	respond.Service(w, r, h.Logger, domain.HistoryResponse{UserID: userID, History: history}, err, http.StatusOK)
}

// AppendHistoryHandler lida com POST /users/{id}/history.
// @Summary Acrescenta uma nota ao histórico do usuário
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "ID do usuário"
// @Param request body domain.HistoryRequest true "Nota"
// @Success 201 {object} domain.HistoryResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /users/{id}/history [post]
func (h *Handler) AppendHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if err := ownUser(r, userID); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	var req domain.HistoryRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	history, err := h.Service.AppendHistory(r.Context(), userID, req)
	respond.Service(w, r, h.Logger, domain.HistoryResponse{UserID: userID, History: history}, err, http.StatusCreated)
}
