package inventoryservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/cache"
	"medstock/internal/pkg/logger"
	"medstock/internal/service/inventoryservice"
)

// MockInventoryRepository é uma implementação mock da interface InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Add(ctx context.Context, adj domain.StockAdjustment) (domain.InventoryItem, error) {
	args := m.Called(ctx, adj)
	return args.Get(0).(domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Remove(ctx context.Context, adj domain.StockAdjustment) (domain.RemoveResult, error) {
	args := m.Called(ctx, adj)
	return args.Get(0).(domain.RemoveResult), args.Error(1)
}

func (m *MockInventoryRepository) List(ctx context.Context, page domain.Pagination) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListAll(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Locations(ctx context.Context) ([]domain.LocationSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.LocationSummary), args.Error(1)
}

type MockLogCounter struct {
	mock.Mock
}

func (m *MockLogCounter) CountByDate(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

var today = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

func newService(repo *MockInventoryRepository, logs *MockLogCounter, c cache.Client) *inventoryservice.Service {
	return inventoryservice.NewService(repo, logs, c, 30*time.Second, logger.NewNop()).
		WithClock(func() time.Time { return today })
}

func validAdd() domain.AddStockRequest {
	return domain.AddStockRequest{
		UserID: "user-1", UPID: "MED-001", Location: "A1", Quantity: 5, Expiration: "2027-03-01", Name: "Paracetamol",
	}
}

func TestAddStock_Success(t *testing.T) {
	repo := new(MockInventoryRepository)
	svc := newService(repo, new(MockLogCounter), nil)

	expected := domain.StockAdjustment{
		Actor: "user-1", UPID: "MED-001", Location: "A1", Quantity: 5,
		Expiration: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), Name: "Paracetamol",
	}
	repo.On("Add", mock.Anything, expected).Return(domain.InventoryItem{UPID: "MED-001", Location: "A1", Quantity: 8}, nil)

	item, err := svc.AddStock(context.Background(), validAdd())

	assert.NoError(t, err)
	assert.Equal(t, 8, item.Quantity)
	repo.AssertExpectations(t)
}

func TestAddStock_ValidationErrors(t *testing.T) {
	cases := map[string]func(r *domain.AddStockRequest){
		"sem nome":         func(r *domain.AddStockRequest) { r.Name = " " },
		"sem upid":         func(r *domain.AddStockRequest) { r.UPID = "" },
		"sem usuario":      func(r *domain.AddStockRequest) { r.UserID = "" },
		"quantidade zero":  func(r *domain.AddStockRequest) { r.Quantity = 0 },
		"quantidade menor": func(r *domain.AddStockRequest) { r.Quantity = -3 },
		"data invalida":    func(r *domain.AddStockRequest) { r.Expiration = "01/03/2027" },
		"data inexistente": func(r *domain.AddStockRequest) { r.Expiration = "2027-02-30" },
		"sem localizacao":  func(r *domain.AddStockRequest) { r.Location = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(MockInventoryRepository)
			svc := newService(repo, new(MockLogCounter), nil)

			req := validAdd()
			mutate(&req)
			_, err := svc.AddStock(context.Background(), req)

			assert.Error(t, err)
			assert.IsType(t, &apperror.ValidationError{}, err)
			repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		})
	}
}

func TestAddStock_InvalidatesSummaryCache(t *testing.T) {
	repo := new(MockInventoryRepository)
	mc := new(MockCache)
	svc := newService(repo, new(MockLogCounter), mc)

	repo.On("Add", mock.Anything, mock.Anything).Return(domain.InventoryItem{Quantity: 5}, nil)
	mc.On("Delete", mock.Anything, "inventory:summary:2026-10-14").Return(nil)

	_, err := svc.AddStock(context.Background(), validAdd())

	assert.NoError(t, err)
	mc.AssertExpectations(t)
}

func TestRemoveStock_NotFoundPropagates(t *testing.T) {
	repo := new(MockInventoryRepository)
	mc := new(MockCache)
	svc := newService(repo, new(MockLogCounter), mc)

	repo.On("Remove", mock.Anything, mock.Anything).Return(domain.RemoveResult{}, apperror.NewNotFoundError("lote"))

	_, err := svc.RemoveStock(context.Background(), domain.RemoveStockRequest{
		UserID: "user-1", UPID: "MED-001", Location: "A1", Quantity: 1, Expiration: "2027-03-01",
	})

	assert.IsType(t, &apperror.NotFoundError{}, err)
	mc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRemoveStock_Success(t *testing.T) {
	repo := new(MockInventoryRepository)
	svc := newService(repo, new(MockLogCounter), nil)

	repo.On("Remove", mock.Anything, mock.MatchedBy(func(adj domain.StockAdjustment) bool {
		return adj.Quantity == 4 && adj.Name == ""
	})).Return(domain.RemoveResult{UPID: "MED-001", Location: "A1", Remaining: 6}, nil)

	res, err := svc.RemoveStock(context.Background(), domain.RemoveStockRequest{
		UserID: "user-1", UPID: "MED-001", Location: "A1", Quantity: 4, Expiration: "2027-03-01",
	})

	require.NoError(t, err)
	assert.Equal(t, 6, res.Remaining)
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, domain.Pagination{Limit: 10, Offset: 0}, inventoryservice.NormalizePage(0, -1))
	assert.Equal(t, domain.Pagination{Limit: 1000, Offset: 20}, inventoryservice.NormalizePage(5000, 20))
	assert.Equal(t, domain.Pagination{Limit: 25, Offset: 5}, inventoryservice.NormalizePage(25, 5))
}

func snapshot() []domain.InventoryItem {
	d := func(days int) time.Time { return domain.DateOf(today).AddDate(0, 0, days) }
	return []domain.InventoryItem{
		{UPID: "A", Quantity: 100, Expiration: d(-1)},
		{UPID: "B", Quantity: 49, Expiration: d(0)},
		{UPID: "C", Quantity: 50, Expiration: d(30)},
		{UPID: "D", Quantity: 200, Expiration: d(31)},
	}
}

func TestSummarize(t *testing.T) {
	s := inventoryservice.Summarize(snapshot(), today)

	assert.Equal(t, 4, s.TotalItems)
	assert.Equal(t, 1, s.LowStock)
	assert.Equal(t, 2, s.ExpiringSoon)
	assert.Equal(t, 0, s.CriticalItems)
}

func TestSummary_CacheMissComputesAndStores(t *testing.T) {
	repo := new(MockInventoryRepository)
	logs := new(MockLogCounter)
	mc := new(MockCache)
	svc := newService(repo, logs, mc)

	key := inventoryservice.SummaryKey(today)
	mc.On("Get", mock.Anything, key).Return("", cache.ErrCacheMiss)
	repo.On("ListAll", mock.Anything).Return(snapshot(), nil)
	logs.On("CountByDate", mock.Anything, domain.DateOf(today)).Return(7, nil)
	mc.On("Set", mock.Anything, key, `{"totalItems":4,"lowStock":1,"expiringSoon":2,"criticalItems":0,"recentUpdates":0}`, 30*time.Second).Return(nil)

	s, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.InventorySummary{TotalItems: 4, LowStock: 1, ExpiringSoon: 2, RecentUpdates: 7}, s)
	mc.AssertExpectations(t)
	logs.AssertExpectations(t)
}

func TestSummary_CacheHitSkipsRepository(t *testing.T) {
	repo := new(MockInventoryRepository)
	logs := new(MockLogCounter)
	mc := new(MockCache)
	svc := newService(repo, logs, mc)

	mc.On("Get", mock.Anything, inventoryservice.SummaryKey(today)).
		Return(`{"totalItems":3,"lowStock":1,"expiringSoon":0,"criticalItems":0,"recentUpdates":0}`, nil)
	logs.On("CountByDate", mock.Anything, domain.DateOf(today)).Return(2, nil)

	s, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, 2, s.RecentUpdates)
	repo.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestSummary_RecentUpdatesIsNeverServedFromCache(t *testing.T) {
	repo := new(MockInventoryRepository)
	logs := new(MockLogCounter)
	mc := new(MockCache)
	svc := newService(repo, logs, mc)

	// Um registro de usuário entre as duas leituras não passa pelo serviço de estoque.
	mc.On("Get", mock.Anything, inventoryservice.SummaryKey(today)).
		Return(`{"totalItems":3,"lowStock":1,"expiringSoon":0,"criticalItems":0,"recentUpdates":9}`, nil)
	logs.On("CountByDate", mock.Anything, domain.DateOf(today)).Return(4, nil).Once()
	logs.On("CountByDate", mock.Anything, domain.DateOf(today)).Return(5, nil).Once()

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	second, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, first.RecentUpdates)
	assert.Equal(t, 5, second.RecentUpdates)
	logs.AssertExpectations(t)
}

func TestSummary_NewDayDoesNotReadPreviousDaysEntry(t *testing.T) {
	repo := new(MockInventoryRepository)
	logs := new(MockLogCounter)
	mc := new(MockCache)

	clock := time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC)
	svc := inventoryservice.NewService(repo, logs, mc, time.Hour, logger.NewNop()).
		WithClock(func() time.Time { return clock })

	mc.On("Get", mock.Anything, "inventory:summary:2026-10-14").Return(`{"totalItems":4,"expiringSoon":1}`, nil)
	mc.On("Get", mock.Anything, "inventory:summary:2026-10-15").Return("", cache.ErrCacheMiss)
	mc.On("Set", mock.Anything, "inventory:summary:2026-10-15", mock.AnythingOfType("string"), time.Hour).Return(nil)
	logs.On("CountByDate", mock.Anything, mock.Anything).Return(0, nil)
	repo.On("ListAll", mock.Anything).Return(snapshot(), nil).Once()

	before, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, before.ExpiringSoon)

	clock = clock.Add(2 * time.Minute)
	after, err := svc.Summary(context.Background())
	require.NoError(t, err)

	// snapshot() é relativo a 14/10: no dia 15 vencem em até 30 dias C (29) e D (30); B já venceu.
	assert.Equal(t, 2, after.ExpiringSoon)
	assert.Equal(t, 4, after.TotalItems)
	repo.AssertExpectations(t)
	mc.AssertExpectations(t)
}

func TestSummary_CacheFailureDoesNotFailRequest(t *testing.T) {
	repo := new(MockInventoryRepository)
	logs := new(MockLogCounter)
	mc := new(MockCache)
	svc := newService(repo, logs, mc)

	mc.On("Get", mock.Anything, mock.Anything).Return("", errors.New("redis fora do ar"))
	mc.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis fora do ar"))
	repo.On("ListAll", mock.Anything).Return([]domain.InventoryItem{}, nil)
	logs.On("CountByDate", mock.Anything, mock.Anything).Return(0, nil)

	s, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalItems)
}

func TestSummary_WithoutCache(t *testing.T) {
	repo := new(MockInventoryRepository)
	logs := new(MockLogCounter)
	svc := newService(repo, logs, nil)

	repo.On("ListAll", mock.Anything).Return(snapshot(), nil)
	logs.On("CountByDate", mock.Anything, mock.Anything).Return(1, nil)

	s, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, s.TotalItems)
}
