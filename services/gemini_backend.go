package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github/itish2003/growthvision/logger"
	"github/itish2003/growthvision/metrics"
)

// contentGenerator is the slice of *genai.Models the Gemini backend uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiBackend struct {
	models  contentGenerator
	model   string
	metrics *metrics.Metrics
}

// NewGeminiBackend answers questions with Google Gemini instead of an HTTP QA
// service. Each question is sent on its own; no chat memory is kept remotely,
// so clearing the transcript needs no remote cleanup.
func NewGeminiBackend(ctx context.Context, apiKey, model string, m *metrics.Metrics) (BackendClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiBackend{models: client.Models, model: model, metrics: m}, nil
}

func (g *geminiBackend) Ask(ctx context.Context, question string) string {
	return g.Query(ctx, question).Render()
}

func (g *geminiBackend) Query(ctx context.Context, question string) AskResult {
	start := time.Now()
	result := g.query(ctx, question)
	g.metrics.ObserveAsk(result.Kind.String(), time.Since(start))
	if result.Failed() {
		logger.For("BACKEND").WithField("outcome", result.Kind.String()).Warn("Gemini call did not produce an answer")
	}
	return result
}

func (g *geminiBackend) query(ctx context.Context, question string) AskResult {
	result, err := g.models.GenerateContent(ctx, g.model, genai.Text(question), &genai.GenerateContentConfig{
		SystemInstruction: GetSystemPrompt(),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return AskResult{Kind: BackendRejected, Status: apiErr.Code, Detail: apiErr.Message}
		}
		return AskResult{Kind: BackendUnreachable, Detail: err.Error()}
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return AskResult{Kind: MalformedResponse}
	}

	var responseText strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		if p != nil && p.Text != "" {
			responseText.WriteString(p.Text)
		}
	}
	if responseText.Len() == 0 {
		return AskResult{Kind: MalformedResponse}
	}
	return AskResult{Answer: responseText.String()}
}
