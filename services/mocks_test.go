package services

import (
	"context"
	"net/http"
	"sync"

	"github/itish2003/growthvision/models"
)

type backendMock struct {
	QueryFunc func(ctx context.Context, question string) AskResult

	mu        sync.Mutex
	questions []string
}

func (m *backendMock) Query(ctx context.Context, question string) AskResult {
	m.mu.Lock()
	m.questions = append(m.questions, question)
	m.mu.Unlock()
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, question)
	}
	return AskResult{Answer: "answer to " + question}
}

func (m *backendMock) Ask(ctx context.Context, question string) string {
	return m.Query(ctx, question).Render()
}

func (m *backendMock) Questions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.questions...)
}

type sinkMock struct {
	SubmitFunc func(ctx context.Context, req models.IngestionRequest) error

	mu       sync.Mutex
	received []models.IngestionRequest
}

func (m *sinkMock) Submit(ctx context.Context, req models.IngestionRequest) error {
	m.mu.Lock()
	m.received = append(m.received, req)
	m.mu.Unlock()
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, req)
	}
	return nil
}

func (m *sinkMock) Received() []models.IngestionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.IngestionRequest(nil), m.received...)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func testStoreOptions() StoreOptions {
	return StoreOptions{Greeting: "Hello Sir!, How can I help you?", AIAvatar: "chatbot.png"}
}

func testControllerOptions() ControllerOptions {
	return ControllerOptions{HumanAvatar: "user.png", AIAvatar: "chatbot.png"}
}
