package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockChatAPI is a mock for the chat backend
type MockChatAPI struct {
	mock.Mock
}

func (m *MockChatAPI) CreateChatCompletion(ctx context.Context, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

func TestClient_Generate_Success(t *testing.T) {
	mockAPI := new(MockChatAPI)
	client := &Client{api: mockAPI}

	ctx := context.Background()
	prompt := "Summarize what the writer said about their garden."
	mockAPI.On("CreateChatCompletion", ctx, prompt, 500).Return("The garden kept them grounded all spring.", nil)

	answer, err := client.Generate(ctx, prompt, 500)

	assert.NoError(t, err)
	assert.Equal(t, "The garden kept them grounded all spring.", answer)
	mockAPI.AssertExpectations(t)
}

func TestClient_Generate_EmptyPrompt(t *testing.T) {
	client := NewClient()

	ctx := context.Background()
	answer, err := client.Generate(ctx, "   ", 500)

	assert.Error(t, err)
	assert.Empty(t, answer)
	assert.Equal(t, ErrEmptyPrompt, err)
}

func TestClient_Generate_APIError(t *testing.T) {
	mockAPI := new(MockChatAPI)
	client := &Client{api: mockAPI}

	ctx := context.Background()
	mockAPI.On("CreateChatCompletion", ctx, "prompt", 100).Return("", errors.New("connection refused"))

	answer, err := client.Generate(ctx, "prompt", 100)

	assert.Error(t, err)
	assert.Empty(t, answer)
	assert.Contains(t, err.Error(), "failed to create completion")
	mockAPI.AssertExpectations(t)
}
