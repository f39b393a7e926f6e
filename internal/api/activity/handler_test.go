package activity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"medstock/internal/domain"
	"medstock/internal/pkg/logger"
)

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Recent(ctx context.Context, amount int) ([]domain.Activity, error) {
	args := m.Called(ctx, amount)
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func TestRecentHandler(t *testing.T) {
	svc := new(MockActivityService)
	h := NewHandler(svc, logger.NewNop())

	svc.On("Recent", mock.Anything, 3).Return([]domain.Activity{
		{ID: "l-1", User: "u-1", Action: "Added 5 of MED-001", Type: domain.ActivityAdd, Timestamp: "2026-10-14"},
	}, nil)

	rec := httptest.NewRecorder()
	h.RecentHandler(rec, httptest.NewRequest(http.MethodGet, "/activity/recent?amount=3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"type":"add"`)
	svc.AssertExpectations(t)
}

func TestRecentHandler_DefaultAmountIsDelegated(t *testing.T) {
	svc := new(MockActivityService)
	h := NewHandler(svc, logger.NewNop())

	svc.On("Recent", mock.Anything, 0).Return([]domain.Activity{}, nil)

	rec := httptest.NewRecorder()
	h.RecentHandler(rec, httptest.NewRequest(http.MethodGet, "/activity/recent", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
