package activityservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/logger"
	"medstock/internal/service/activityservice"
)

type MockLogLister struct {
	mock.Mock
}

func (m *MockLogLister) List(ctx context.Context, page domain.Pagination) ([]domain.LogEntry, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.LogEntry), args.Error(1)
}

func TestInferType(t *testing.T) {
	cases := []struct {
		message string
		want    domain.ActivityType
	}{
		{"Added 5 of MED-001", domain.ActivityAdd},
		{"Removed 2 of MED-001", domain.ActivityDelete},
		{"Updated history for user 42", domain.ActivityUpdate},
		{"History rewritten", domain.ActivityUpdate},
		{"Registered new user: ana", domain.ActivityRestock},
		{"Something else", domain.ActivityUpdate},
		{"added and removed", domain.ActivityAdd},
	}

	for _, c := range cases {
		t.Run(c.message, func(t *testing.T) {
			assert.Equal(t, c.want, activityservice.InferType(c.message))
		})
	}
}

func TestRecent_MapsEntries(t *testing.T) {
	logs := new(MockLogLister)
	svc := activityservice.NewService(logs, logger.NewNop())

	logs.On("List", mock.Anything, domain.Pagination{Limit: 2}).Return([]domain.LogEntry{
		{ID: "1", Actor: "user-1", Date: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), Message: "Removed 2 of MED-001"},
		{ID: "2", Actor: domain.SystemActor, Date: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), Message: "Registered new user: ana"},
	}, nil)

	out, err := svc.Recent(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, []domain.Activity{
		{ID: "1", User: "user-1", Action: "Removed 2 of MED-001", Type: domain.ActivityDelete, Timestamp: "2026-10-14"},
		{ID: "2", User: "system", Action: "Registered new user: ana", Type: domain.ActivityRestock, Timestamp: "2026-10-13"},
	}, out)
}

func TestRecent_DefaultAmount(t *testing.T) {
	logs := new(MockLogLister)
	svc := activityservice.NewService(logs, logger.NewNop())

	logs.On("List", mock.Anything, domain.Pagination{Limit: activityservice.DefaultAmount}).Return([]domain.LogEntry{}, nil)

	out, err := svc.Recent(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, out)
	logs.AssertExpectations(t)
}

func TestRecent_RepositoryError(t *testing.T) {
	logs := new(MockLogLister)
	svc := activityservice.NewService(logs, logger.NewNop())

	logs.On("List", mock.Anything, mock.Anything).Return([]domain.LogEntry(nil), apperror.NewDBError("Falha ao listar logs", assert.AnError))

	_, err := svc.Recent(context.Background(), 5)

	assert.IsType(t, &apperror.InternalError{}, err)
}
