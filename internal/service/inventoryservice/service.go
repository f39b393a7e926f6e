package inventoryservice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/cache"
	"medstock/internal/pkg/database"
	"medstock/internal/pkg/logger"
)

// Limites de paginação de GET /inventory.
const (
	DefaultPageSize = 10
	MaxPageSize     = 1000
)

// SummaryCacheKey é o prefixo da chave do resumo do dashboard no cache.
const SummaryCacheKey = "inventory:summary"

// SummaryKey retorna a chave do resumo para o dia informado; um novo dia nunca lê o resumo anterior.
func SummaryKey(day time.Time) string {
	return SummaryCacheKey + ":" + database.FormatDate(day)
}

// InventoryRepository define o contrato que o Serviço de Estoque espera da camada de Persistência.
type InventoryRepository interface {
	Add(ctx context.Context, adj domain.StockAdjustment) (domain.InventoryItem, error)
	Remove(ctx context.Context, adj domain.StockAdjustment) (domain.RemoveResult, error)
	List(ctx context.Context, page domain.Pagination) ([]domain.InventoryItem, error)
	ListAll(ctx context.Context) ([]domain.InventoryItem, error)
	Locations(ctx context.Context) ([]domain.LocationSummary, error)
}

// LogCounter fornece a contagem de registros de auditoria do dia.
type LogCounter interface {
	CountByDate(ctx context.Context, day time.Time) (int, error)
}

// Service implementa as regras de entrada, saída e consulta de estoque.
type Service struct {
	repo     InventoryRepository
	logs     LogCounter
	cache    cache.Client // opcional
	cacheTTL time.Duration
	logger   logger.Logger
	now      func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
// cacheClient pode ser nil; nesse caso o resumo é sempre recalculado.
func NewService(repo InventoryRepository, logs LogCounter, cacheClient cache.Client, cacheTTL time.Duration, logger logger.Logger) *Service {
	return &Service{
		repo:     repo,
		logs:     logs,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock substitui o relógio usado para "hoje".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AddStock valida o pedido e soma a quantidade ao lote.
func (s *Service) AddStock(ctx context.Context, req domain.AddStockRequest) (domain.InventoryItem, error) {
	if strings.TrimSpace(req.Name) == "" {
		return domain.InventoryItem{}, apperror.NewValidationError("O nome do medicamento é obrigatório.")
	}
	adj, err := buildAdjustment(req.UserID, req.UPID, req.Location, req.Quantity, req.Expiration)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	adj.Name = strings.TrimSpace(req.Name)

	item, err := s.repo.Add(ctx, adj)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	s.invalidateSummary(ctx)
	s.logger.Info("Entrada de estoque concluída.", map[string]interface{}{
		"actor": adj.Actor, "upid": adj.UPID, "location": adj.Location, "added": adj.Quantity, "quantity": item.Quantity,
	})
	return item, nil
}

// RemoveStock valida o pedido e retira a quantidade do lote.
// Lote inexistente resulta em NotFoundError.
func (s *Service) RemoveStock(ctx context.Context, req domain.RemoveStockRequest) (domain.RemoveResult, error) {
	adj, err := buildAdjustment(req.UserID, req.UPID, req.Location, req.Quantity, req.Expiration)
	if err != nil {
		return domain.RemoveResult{}, err
	}

	res, err := s.repo.Remove(ctx, adj)
	if err != nil {
		return domain.RemoveResult{}, err
	}

	s.invalidateSummary(ctx)
	s.logger.Info("Saída de estoque concluída.", map[string]interface{}{
		"actor": adj.Actor, "upid": adj.UPID, "location": adj.Location, "removed": adj.Quantity, "deleted": res.Deleted,
	})
	return res, nil
}

func buildAdjustment(actor, upid, location string, quantity int, expiration string) (domain.StockAdjustment, error) {
	actor, upid, location = strings.TrimSpace(actor), strings.TrimSpace(upid), strings.TrimSpace(location)

	var missing []string
	if actor == "" {
		missing = append(missing, "userid")
	}
	if upid == "" {
		missing = append(missing, "upid")
	}
	if location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return domain.StockAdjustment{}, apperror.NewValidationError("Campos obrigatórios ausentes: " + strings.Join(missing, ", ") + ".")
	}
	if quantity <= 0 {
		return domain.StockAdjustment{}, apperror.NewValidationError("A quantidade deve ser maior que zero.")
	}

	exp, err := ParseDate(expiration)
	if err != nil {
		return domain.StockAdjustment{}, err
	}

	return domain.StockAdjustment{
		Actor:      actor,
		UPID:       upid,
		Location:   location,
		Quantity:   quantity,
		Expiration: exp,
	}, nil
}

// ParseDate interpreta uma data "YYYY-MM-DD".
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(database.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperror.NewValidationError("Data inválida; use o formato YYYY-MM-DD.")
	}
	return t, nil
}

// NormalizePage aplica os padrões de paginação.
func NormalizePage(limit, offset int) domain.Pagination {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return domain.Pagination{Limit: limit, Offset: offset}
}

// List retorna uma página de lotes ordenada por validade decrescente.
func (s *Service) List(ctx context.Context, page domain.Pagination) ([]domain.InventoryItem, error) {
	return s.repo.List(ctx, NormalizePage(page.Limit, page.Offset))
}

// Locations agrega o estoque por localização.
func (s *Service) Locations(ctx context.Context) ([]domain.LocationSummary, error) {
	return s.repo.Locations(ctx)
}

// Summary retorna os indicadores do dashboard.
// Os contadores derivados do estoque vêm do cache quando disponível;
// RecentUpdates é sempre lido do Log Store, pois usuários também geram registros.
func (s *Service) Summary(ctx context.Context) (domain.InventorySummary, error) {
	today := domain.DateOf(s.now())

	summary, ok := s.cachedSummary(ctx, today)
	if !ok {
		items, err := s.repo.ListAll(ctx)
		if err != nil {
			return domain.InventorySummary{}, err
		}
		summary = Summarize(items, today)
		s.storeSummary(ctx, today, summary)
	}

	recent, err := s.logs.CountByDate(ctx, today)
	if err != nil {
		return domain.InventorySummary{}, err
	}
	summary.RecentUpdates = recent
	return summary, nil
}

// Summarize classifica o snapshot com os mesmos predicados usados no contexto do assistente.
// RecentUpdates não é preenchido aqui.
func Summarize(items []domain.InventoryItem, today time.Time) domain.InventorySummary {
	summary := domain.InventorySummary{TotalItems: len(items)}
	for _, it := range items {
		if it.IsLowStock() {
			summary.LowStock++
		}
		if it.IsExpiringSoon(today) {
			summary.ExpiringSoon++
		}
	}
	return summary
}

func (s *Service) cachedSummary(ctx context.Context, today time.Time) (domain.InventorySummary, bool) {
	if s.cache == nil {
		return domain.InventorySummary{}, false
	}

	raw, err := s.cache.Get(ctx, SummaryKey(today))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Falha ao ler resumo do cache.", map[string]interface{}{"error": err.Error()})
		}
		return domain.InventorySummary{}, false
	}

	var summary domain.InventorySummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		s.logger.Warn("Resumo em cache corrompido; recalculando.", map[string]interface{}{"error": err.Error()})
		return domain.InventorySummary{}, false
	}
	return summary, true
}

func (s *Service) storeSummary(ctx context.Context, today time.Time, summary domain.InventorySummary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, SummaryKey(today), string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("Falha ao gravar resumo no cache.", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) invalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, SummaryKey(domain.DateOf(s.now()))); err != nil {
		s.logger.Warn("Falha ao invalidar resumo no cache.", map[string]interface{}{"error": err.Error()})
	}
}
