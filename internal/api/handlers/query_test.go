package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trtslyr/islajournal/internal/domain"
)

type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Answer(ctx context.Context, userText string, conversation []domain.ConversationMessage, settings domain.ContextSettings) (string, error) {
	args := m.Called(ctx, userText, conversation, settings)
	return args.String(0), args.Error(1)
}

type MockConversationStore struct {
	mock.Mock
}

func (m *MockConversationStore) Append(ctx context.Context, msg *domain.ConversationMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockConversationStore) Recent(ctx context.Context, n int) ([]domain.ConversationMessage, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConversationMessage), args.Error(1)
}

type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) ContextSettings(ctx context.Context) (domain.ContextSettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ContextSettings), args.Error(1)
}

func (m *MockSettingsStore) SaveContextSettings(ctx context.Context, settings domain.ContextSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func TestQueryHandler_Query_Success(t *testing.T) {
	mockSvc := new(MockAnswerer)
	mockConv := new(MockConversationStore)
	mockSettings := new(MockSettingsStore)
	handler := NewQueryHandler(mockSvc, mockConv, mockSettings)

	settings := domain.ContextSettings{TokenBudget: 12000}
	history := []domain.ConversationMessage{
		{Role: domain.MessageRoleUser, Content: "earlier question"},
	}
	mockSettings.On("ContextSettings", mock.Anything).Return(settings, nil)
	mockConv.On("Recent", mock.Anything, recentMessageWindow).Return(history, nil)
	mockSvc.On("Answer", mock.Anything, "How was my spring?", history, settings).
		Return("Your spring entries were mostly about the garden.", nil)
	mockConv.On("Append", mock.Anything, mock.MatchedBy(func(msg *domain.ConversationMessage) bool {
		return msg.Role == domain.MessageRoleUser && msg.Content == "How was my spring?"
	})).Return(nil)
	mockConv.On("Append", mock.Anything, mock.MatchedBy(func(msg *domain.ConversationMessage) bool {
		return msg.Role == domain.MessageRoleAssistant
	})).Return(nil)

	body, _ := json.Marshal(QueryRequest{Query: "How was my spring?"})
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Query(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data QueryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Your spring entries were mostly about the garden.", resp.Data.Answer)
	mockSvc.AssertExpectations(t)
	mockConv.AssertExpectations(t)
}

func TestQueryHandler_Query_EmptyQuery(t *testing.T) {
	handler := NewQueryHandler(new(MockAnswerer), new(MockConversationStore), new(MockSettingsStore))

	body, _ := json.Marshal(QueryRequest{})
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Query(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryHandler_Query_GenerationFailure(t *testing.T) {
	mockSvc := new(MockAnswerer)
	mockConv := new(MockConversationStore)
	mockSettings := new(MockSettingsStore)
	handler := NewQueryHandler(mockSvc, mockConv, mockSettings)

	mockSettings.On("ContextSettings", mock.Anything).Return(domain.ContextSettings{}, nil)
	mockConv.On("Recent", mock.Anything, recentMessageWindow).Return([]domain.ConversationMessage{}, nil)
	mockSvc.On("Answer", mock.Anything, "anything", mock.Anything, mock.Anything).
		Return("", domain.ErrGenerationFailed)

	body, _ := json.Marshal(QueryRequest{Query: "anything"})
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Query(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	mockConv.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestQueryHandler_Query_HistoryWriteFailureStillAnswers(t *testing.T) {
	mockSvc := new(MockAnswerer)
	mockConv := new(MockConversationStore)
	mockSettings := new(MockSettingsStore)
	handler := NewQueryHandler(mockSvc, mockConv, mockSettings)

	mockSettings.On("ContextSettings", mock.Anything).Return(domain.ContextSettings{}, nil)
	mockConv.On("Recent", mock.Anything, recentMessageWindow).Return([]domain.ConversationMessage{}, nil)
	mockSvc.On("Answer", mock.Anything, "q", mock.Anything, mock.Anything).Return("an answer", nil)
	mockConv.On("Append", mock.Anything, mock.Anything).Return(assert.AnError)

	body, _ := json.Marshal(QueryRequest{Query: "q"})
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Query(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
