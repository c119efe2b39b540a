package services

import (
	"context"
	"fmt"
	"net/http"

	"github/itish2003/growthvision/config"
	"github/itish2003/growthvision/metrics"
)

// NewSessionSettings wires the backend client and ingestion sink selected by
// cfg.
func NewSessionSettings(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (SessionSettings, error) {
	policy, err := ParseStaleAnswerPolicy(cfg.Chat.StaleAnswerPolicy)
	if err != nil {
		return SessionSettings{}, err
	}

	var backend BackendClient
	switch cfg.Backend.Kind {
	case "gemini":
		backend, err = NewGeminiBackend(ctx, cfg.Backend.GeminiAPIKey, cfg.Backend.GeminiModel, m)
		if err != nil {
			return SessionSettings{}, err
		}
	case "http":
		backend = NewHTTPBackend(cfg.Backend.BaseURL, cfg.Backend.Timeout, m)
	default:
		return SessionSettings{}, fmt.Errorf("unknown backend kind %q", cfg.Backend.Kind)
	}

	var sink IngestionSink
	switch cfg.Ingestion.Kind {
	case "http":
		sink = NewHTTPSink(&http.Client{Timeout: cfg.Backend.Timeout}, cfg.Ingestion.BaseURL)
	default:
		sink = NewLogSink()
	}

	return SessionSettings{
		Store: StoreOptions{
			Greeting: cfg.Chat.Greeting,
			AIAvatar: cfg.Chat.AIAvatar,
			MaxTurns: cfg.Chat.MaxTurns,
		},
		Controller: ControllerOptions{
			HumanAvatar: cfg.Chat.HumanAvatar,
			AIAvatar:    cfg.Chat.AIAvatar,
			StalePolicy: policy,
		},
		Backend:  backend,
		Sink:     sink,
		BusyText: cfg.Chat.BusyText,
	}, nil
}
