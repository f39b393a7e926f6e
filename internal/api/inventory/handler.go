package inventory

import (
	"context"
	"fmt"
	"net/http"

	"medstock/internal/api/respond"
	"medstock/internal/domain"
	"medstock/internal/pkg/logger"
	"medstock/internal/pkg/middleware"
)

// InventoryService define o contrato que o Handler espera da camada de Serviço.
type InventoryService interface {
	AddStock(ctx context.Context, req domain.AddStockRequest) (domain.InventoryItem, error)
	RemoveStock(ctx context.Context, req domain.RemoveStockRequest) (domain.RemoveResult, error)
	List(ctx context.Context, page domain.Pagination) ([]domain.InventoryItem, error)
	Locations(ctx context.Context) ([]domain.LocationSummary, error)
	Summary(ctx context.Context) (domain.InventorySummary, error)
}

// Handler agrupa os handlers de estoque.
type Handler struct {
	Service InventoryService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc InventoryService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// actor usa o usuário do token quando a requisição foi autenticada.
func actor(r *http.Request, fromBody string) string {
	if claims, ok := middleware.GetUserClaimsFromContext(r.Context()); ok {
		return claims.UserID
	}
	return fromBody
}

// SummaryHandler lida com GET /inventory/summary.
// @Summary Indicadores do dashboard
// @Tags inventory
// @Produce json
// @Success 200 {object} domain.InventorySummary
// @Failure 500 {object} domain.ErrorResponse
// @Router /inventory/summary [get]
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	respond.Service(w, r, h.Logger, summary, err, http.StatusOK)
}

// ListHandler lida com GET /inventory?amount=&offset=.
// @Summary Lista lotes de estoque
// @Description Ordenados por validade decrescente.
// @Tags inventory
// @Produce json
// @Param amount query int false "Quantidade de registros (padrão 10, máximo 1000)"
// @Param offset query int false "Deslocamento"
// @Success 200 {array} domain.InventoryItem
// @Failure 400 {object} domain.ErrorResponse
// @Router /inventory [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	amount, err := respond.QueryInt(r, "amount", 0)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	offset, err := respond.QueryInt(r, "offset", 0)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	items, err := h.Service.List(r.Context(), domain.Pagination{Limit: amount, Offset: offset})
	respond.Service(w, r, h.Logger, items, err, http.StatusOK)
}

// LocationsHandler lida com GET /inventory/locations.
// @Summary Estoque agregado por localização
// @Tags inventory
// @Produce json
// @Success 200 {array} domain.LocationSummary
// @Router /inventory/locations [get]
func (h *Handler) LocationsHandler(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.Locations(r.Context())
	respond.Service(w, r, h.Logger, locations, err, http.StatusOK)
}

// AddHandler lida com POST /inventory/add.
// @Summary Entrada de estoque
// @Description Cria o lote (upid, location, expiration) ou soma à quantidade existente.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body domain.AddStockRequest true "Entrada"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /inventory/add [post]
func (h *Handler) AddHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.AddStockRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	req.UserID = actor(r, req.UserID)

	item, err := h.Service.AddStock(r.Context(), req)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	// item.Name é o nome gravado: num incremento, prevalece o do lote existente.
	respond.Service(w, r, h.Logger, domain.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("Added %d of %s", req.Quantity, item.Name),
	}, nil, http.StatusOK)
}

// RemoveHandler lida com POST /inventory/remove.
// @Summary Saída de estoque
// @Description Decrementa o lote; se o saldo chegar a zero ou menos, o lote é apagado.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body domain.RemoveStockRequest true "Saída"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse "Lote inexistente"
// @Failure 500 {object} domain.ErrorResponse
// @Router /inventory/remove [post]
func (h *Handler) RemoveHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RemoveStockRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	req.UserID = actor(r, req.UserID)

	if _, err := h.Service.RemoveStock(r.Context(), req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	respond.Service(w, r, h.Logger, domain.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("Removed %d of %s", req.Quantity, req.UPID),
	}, nil, http.StatusOK)
}
