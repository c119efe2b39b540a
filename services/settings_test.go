package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/itish2003/growthvision/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Backend:   config.BackendConfig{Kind: "http", BaseURL: "http://127.0.0.1:8000"},
		Ingestion: config.IngestionConfig{Kind: "log"},
		Chat: config.ChatConfig{
			Greeting:          "Hello Sir!, How can I help you?",
			AIAvatar:          "chatbot.png",
			HumanAvatar:       "user.png",
			BusyText:          testBusyText,
			MaxTurns:          7,
			StaleAnswerPolicy: "discard",
		},
	}
}

func TestNewSessionSettings_HTTPBackendAndLogSink(t *testing.T) {
	settings, err := NewSessionSettings(context.Background(), testConfig(), nil)
	require.NoError(t, err)

	assert.IsType(t, &httpBackend{}, settings.Backend)
	assert.IsType(t, logSink{}, settings.Sink)
	assert.Equal(t, StoreOptions{Greeting: "Hello Sir!, How can I help you?", AIAvatar: "chatbot.png", MaxTurns: 7}, settings.Store)
	assert.Equal(t, ControllerOptions{HumanAvatar: "user.png", AIAvatar: "chatbot.png", StalePolicy: StaleDiscard}, settings.Controller)
	assert.Equal(t, testBusyText, settings.BusyText)
}

func TestNewSessionSettings_HTTPSink(t *testing.T) {
	cfg := testConfig()
	cfg.Ingestion = config.IngestionConfig{Kind: "http", BaseURL: "http://ingest.local/"}

	settings, err := NewSessionSettings(context.Background(), cfg, nil)
	require.NoError(t, err)

	sink, ok := settings.Sink.(*httpSink)
	require.True(t, ok)
	assert.Equal(t, "http://ingest.local", sink.baseURL)
}

func TestNewSessionSettings_GeminiBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Backend = config.BackendConfig{Kind: "gemini", GeminiAPIKey: "test-key", GeminiModel: "gemini-2.5-flash"}

	settings, err := NewSessionSettings(context.Background(), cfg, nil)
	require.NoError(t, err)

	backend, ok := settings.Backend.(*geminiBackend)
	require.True(t, ok)
	assert.Equal(t, "gemini-2.5-flash", backend.model)
}

func TestNewSessionSettings_Errors(t *testing.T) {
	cfg := testConfig()
	cfg.Backend.Kind = "grpc"
	_, err := NewSessionSettings(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Chat.StaleAnswerPolicy = "drop"
	_, err = NewSessionSettings(context.Background(), cfg, nil)
	assert.Error(t, err)
}
