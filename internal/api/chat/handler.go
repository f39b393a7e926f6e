package chat

import (
	"context"
	"net/http"

	"medstock/internal/api/respond"
	"medstock/internal/domain"
	"medstock/internal/pkg/logger"
)

// ChatService define o contrato do assistente.
type ChatService interface {
	Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error)
}

// Handler expõe o assistente de IA.
type Handler struct {
	Service ChatService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ChatService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ChatHandler lida com POST /ai/chat.
// @Summary Conversa com o assistente de estoque
// @Description Injeta o snapshot do estoque no contexto e consulta o servidor de modelos.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body domain.ChatRequest true "Mensagem e histórico"
// @Success 200 {object} domain.ChatResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 429 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Failure 504 {object} domain.ErrorResponse "Modelo não respondeu a tempo"
// @Router /ai/chat [post]
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	res, err := h.Service.Chat(r.Context(), req)
	respond.Service(w, r, h.Logger, res, err, http.StatusOK)
}
