package chatservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/llm"
	"medstock/internal/pkg/logger"
)

// Modos de chamada ao servidor de modelos.
const (
	ModeChat     = "chat"
	ModeGenerate = "generate"
)

// InventorySnapshot fornece todos os lotes para o contexto do assistente.
type InventorySnapshot interface {
	ListAll(ctx context.Context) ([]domain.InventoryItem, error)
}

// ModelClient é o contrato do cliente do servidor de modelos (internal/pkg/llm).
type ModelClient interface {
	Chat(ctx context.Context, model string, messages []llm.Message) (string, error)
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Config agrupa os padrões do assistente.
type Config struct {
	DefaultModel string
	Mode         string
	HistoryTurns int
}

// Service responde mensagens do usuário com base no estoque atual.
type Service struct {
	inventory InventorySnapshot
	model     ModelClient
	cfg       Config
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Chat.
func NewService(inventory InventorySnapshot, model ModelClient, cfg Config, logger logger.Logger) *Service {
	if cfg.Mode == "" {
		cfg.Mode = ModeChat
	}
	if cfg.HistoryTurns <= 0 {
		cfg.HistoryTurns = DefaultHistoryTurns
	}
	return &Service{inventory: inventory, model: model, cfg: cfg, logger: logger, now: time.Now}
}

// Chat monta o contexto a partir do snapshot de estoque e consulta o modelo.
// O prazo da chamada deriva de ctx: se o cliente desconectar, a chamada é cancelada.
func (s *Service) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.ChatResponse{}, apperror.NewValidationError("A mensagem é obrigatória.")
	}
	for _, m := range req.History {
		switch m.Role {
		case domain.RoleUser, domain.RoleAssistant, domain.RoleSystem:
		default:
			return domain.ChatResponse{}, apperror.NewValidationError("Papel inválido no histórico: " + m.Role)
		}
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = s.cfg.DefaultModel
	}

	items, err := s.inventory.ListAll(ctx)
	if err != nil {
		return domain.ChatResponse{}, err
	}

	prompt := BuildPrompt(items, s.now(), req.History, message, s.cfg.HistoryTurns)

	start := time.Now()
	var text string
	if s.cfg.Mode == ModeGenerate {
		text, err = s.model.Generate(ctx, model, prompt.Transcript)
	} else {
		text, err = s.model.Chat(ctx, model, prompt.Messages)
	}
	if err != nil {
		if errors.Is(err, llm.ErrTimeout) {
			s.logger.Warn("Modelo excedeu o tempo limite.", map[string]interface{}{"model": model, "elapsed_ms": time.Since(start).Milliseconds()})
			return domain.ChatResponse{}, apperror.NewGatewayTimeoutError("O modelo de IA excedeu o tempo limite.", err)
		}
		return domain.ChatResponse{}, apperror.NewInternalError(err.Error(), err)
	}

	s.logger.Info("Resposta do assistente gerada.", map[string]interface{}{
		"model": model, "mode": s.cfg.Mode, "items": len(items), "turns": len(prompt.Messages) - 2,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return domain.ChatResponse{Response: text}, nil
}
