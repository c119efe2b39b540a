package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

type generatorMock struct {
	GenerateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (m *generatorMock) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return m.GenerateContentFunc(ctx, model, contents, config)
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeminiBackend_JoinsTextParts(t *testing.T) {
	var gotModel string
	var gotConfig *genai.GenerateContentConfig
	backend := &geminiBackend{model: "gemini-2.5-flash", models: &generatorMock{
		GenerateContentFunc: func(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotModel = model
			gotConfig = config
			assert.Equal(t, "hello", contents[0].Parts[0].Text)
			return textResponse("Sawasdee ", "krub"), nil
		},
	}}

	assert.Equal(t, "Sawasdee krub", backend.Ask(context.Background(), "hello"))
	assert.Equal(t, "gemini-2.5-flash", gotModel)
	if assert.NotNil(t, gotConfig) {
		assert.NotNil(t, gotConfig.SystemInstruction)
	}
}

func TestGeminiBackend_APIErrorIsRejected(t *testing.T) {
	backend := &geminiBackend{models: &generatorMock{
		GenerateContentFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, genai.APIError{Code: 429, Message: "quota exceeded"}
		},
	}}

	result := backend.Query(context.Background(), "q")
	assert.Equal(t, BackendRejected, result.Kind)
	assert.Equal(t, "Error: 429 - quota exceeded", result.Render())
}

func TestGeminiBackend_OtherErrorIsUnreachable(t *testing.T) {
	backend := &geminiBackend{models: &generatorMock{
		GenerateContentFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("connection refused")
		},
	}}

	assert.Equal(t, "Error connecting to API: connection refused", backend.Ask(context.Background(), "q"))
}

func TestGeminiBackend_EmptyCandidatesFallBack(t *testing.T) {
	responses := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
		textResponse(""),
	}
	for _, resp := range responses {
		backend := &geminiBackend{models: &generatorMock{
			GenerateContentFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return resp, nil
			},
		}}
		assert.Equal(t, NoResponseFallback, backend.Ask(context.Background(), "q"))
	}
}

func TestGetSystemPrompt_MentionsGuidelines(t *testing.T) {
	prompt := GetSystemPrompt()
	if assert.NotNil(t, prompt) && assert.NotEmpty(t, prompt.Parts) {
		assert.Contains(t, prompt.Parts[0].Text, "Investment promotion policy")
	}
}
