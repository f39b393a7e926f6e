package chatservice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medstock/internal/domain"
	apperror "medstock/internal/errors"
	"medstock/internal/pkg/llm"
	"medstock/internal/pkg/logger"
)

type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) ListAll(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

type MockModel struct {
	mock.Mock
}

func (m *MockModel) Chat(ctx context.Context, model string, messages []llm.Message) (string, error) {
	args := m.Called(ctx, model, messages)
	return args.String(0), args.Error(1)
}

func (m *MockModel) Generate(ctx context.Context, model, prompt string) (string, error) {
	args := m.Called(ctx, model, prompt)
	return args.String(0), args.Error(1)
}

func newChat(inv *MockInventory, model *MockModel, mode string) *Service {
	svc := NewService(inv, model, Config{DefaultModel: "medllama2:latest", Mode: mode}, logger.NewNop())
	svc.now = func() time.Time { return today }
	return svc
}

func TestChat_UsesDefaultModelAndBoundedHistory(t *testing.T) {
	inv := new(MockInventory)
	model := new(MockModel)
	svc := newChat(inv, model, ModeChat)

	inv.On("ListAll", mock.Anything).Return([]domain.InventoryItem{
		{Name: "Ibuprofen", UPID: "I-1", Location: "A1", Quantity: 20, Expiration: at(10)},
	}, nil)
	model.On("Chat", mock.Anything, "medllama2:latest", mock.MatchedBy(func(msgs []llm.Message) bool {
		return len(msgs) == 10 && msgs[len(msgs)-1].Content == "dor de cabeça"
	})).Return("Ibuprofeno 400mg.", nil)

	res, err := svc.Chat(context.Background(), domain.ChatRequest{Message: " dor de cabeça ", History: history(20)})

	require.NoError(t, err)
	assert.Equal(t, "Ibuprofeno 400mg.", res.Response)
	model.AssertExpectations(t)
}

func TestChat_GenerateModeSendsTranscript(t *testing.T) {
	inv := new(MockInventory)
	model := new(MockModel)
	svc := newChat(inv, model, ModeGenerate)

	inv.On("ListAll", mock.Anything).Return([]domain.InventoryItem{}, nil)
	model.On("Generate", mock.Anything, "llama3", mock.MatchedBy(func(p string) bool {
		return len(p) > 0 && p[len(p)-len("User: oi\nJJ:"):] == "User: oi\nJJ:"
	})).Return("Olá.", nil)

	res, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "oi", Model: "llama3"})

	require.NoError(t, err)
	assert.Equal(t, "Olá.", res.Response)
}

func TestChat_TimeoutIsGatewayTimeout(t *testing.T) {
	inv := new(MockInventory)
	model := new(MockModel)
	svc := newChat(inv, model, ModeChat)

	inv.On("ListAll", mock.Anything).Return([]domain.InventoryItem{}, nil)
	model.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return("", fmt.Errorf("%w: deadline", llm.ErrTimeout))

	_, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "oi"})

	assert.IsType(t, &apperror.GatewayTimeoutError{}, err)
}

func TestChat_StatusErrorIsInternalWithPeerMessage(t *testing.T) {
	inv := new(MockInventory)
	model := new(MockModel)
	svc := newChat(inv, model, ModeChat)

	inv.On("ListAll", mock.Anything).Return([]domain.InventoryItem{}, nil)
	model.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return("", &llm.StatusError{Code: 500, Body: "model crashed"})

	_, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "oi"})

	require.IsType(t, &apperror.InternalError{}, err)
	assert.Contains(t, err.Error(), "model crashed")
}

func TestChat_EmptyCompletionIsInternal(t *testing.T) {
	inv := new(MockInventory)
	model := new(MockModel)
	svc := newChat(inv, model, ModeChat)

	inv.On("ListAll", mock.Anything).Return([]domain.InventoryItem{}, nil)
	model.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return("", llm.ErrEmptyCompletion)

	_, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "oi"})

	assert.IsType(t, &apperror.InternalError{}, err)
}

func TestChat_Validation(t *testing.T) {
	inv := new(MockInventory)
	model := new(MockModel)
	svc := newChat(inv, model, ModeChat)

	_, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "   "})
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = svc.Chat(context.Background(), domain.ChatRequest{Message: "oi", History: []domain.ChatMessage{{Role: "robot", Content: "x"}}})
	assert.IsType(t, &apperror.ValidationError{}, err)

	inv.AssertNotCalled(t, "ListAll", mock.Anything)
}
