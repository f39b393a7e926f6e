package activityservice

import (
	"context"
	"strings"

	"medstock/internal/domain"
	"medstock/internal/pkg/database"
	"medstock/internal/pkg/logger"
)

// DefaultAmount é o tamanho padrão do feed de atividades.
const DefaultAmount = 10

// LogLister é o contrato de leitura do Log Store.
type LogLister interface {
	List(ctx context.Context, page domain.Pagination) ([]domain.LogEntry, error)
}

// Service monta o feed de atividades recentes a partir do log de auditoria.
type Service struct {
	logs   LogLister
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Atividades.
func NewService(logs LogLister, logger logger.Logger) *Service {
	return &Service{logs: logs, logger: logger}
}

// Recent retorna as últimas amount atividades, da mais recente para a mais antiga.
func (s *Service) Recent(ctx context.Context, amount int) ([]domain.Activity, error) {
	if amount <= 0 {
		amount = DefaultAmount
	}
	if amount > 1000 {
		amount = 1000
	}

	entries, err := s.logs.List(ctx, domain.Pagination{Limit: amount})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Activity, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.Activity{
			ID:        e.ID,
			User:      e.Actor,
			Action:    e.Message,
			Type:      InferType(e.Message),
			Timestamp: database.FormatDate(e.Date),
		})
	}
	return out, nil
}

// InferType classifica a mensagem por palavra-chave; a primeira regra que casa vence.
func InferType(message string) domain.ActivityType {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "added"):
		return domain.ActivityAdd
	case strings.Contains(m, "removed"):
		return domain.ActivityDelete
	case strings.Contains(m, "updated"), strings.Contains(m, "history"):
		return domain.ActivityUpdate
	case strings.Contains(m, "registered"):
		return domain.ActivityRestock
	default:
		return domain.ActivityUpdate
	}
}
