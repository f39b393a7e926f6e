package activity

import (
	"context"
	"net/http"

	"medstock/internal/api/respond"
	"medstock/internal/domain"
	"medstock/internal/pkg/logger"
)

// ActivityService define o contrato do feed de atividades.
type ActivityService interface {
	Recent(ctx context.Context, amount int) ([]domain.Activity, error)
}

// Handler expõe o feed de atividades.
type Handler struct {
	Service ActivityService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ActivityService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// RecentHandler lida com GET /activity/recent?amount=.
// @Summary Atividades recentes
// @Tags activity
// @Produce json
// @Param amount query int false "Quantidade (padrão 10)"
// @Success 200 {array} domain.Activity
// @Failure 400 {object} domain.ErrorResponse
// @Router /activity/recent [get]
func (h *Handler) RecentHandler(w http.ResponseWriter, r *http.Request) {
	amount, err := respond.QueryInt(r, "amount", 0)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	activity, err := h.Service.Recent(r.Context(), amount)
	respond.Service(w, r, h.Logger, activity, err, http.StatusOK)
}
