package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github/itish2003/growthvision/logger"
	"github/itish2003/growthvision/metrics"
	"github/itish2003/growthvision/models"
)

// NoResponseFallback is shown when the backend answers without an answer field.
const NoResponseFallback = "No response from API."

// ErrorKind classifies why a backend call did not produce an answer.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	BackendUnreachable
	BackendRejected
	MalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case BackendUnreachable:
		return "unreachable"
	case BackendRejected:
		return "rejected"
	case MalformedResponse:
		return "malformed"
	default:
		return "unknown"
	}
}

// AskResult is the typed outcome of a backend call. Render flattens it into
// the text that ends up in the transcript.
type AskResult struct {
	Answer string
	Kind   ErrorKind
	Status int
	Detail string
}

func (r AskResult) Failed() bool { return r.Kind != KindNone }

// Render returns the display text for the result. Failures are rendered as
// ordinary answers.
func (r AskResult) Render() string {
	switch r.Kind {
	case KindNone:
		return r.Answer
	case BackendRejected:
		return fmt.Sprintf("Error: %d - %s", r.Status, r.Detail)
	case BackendUnreachable:
		return fmt.Sprintf("Error connecting to API: %s", r.Detail)
	default:
		return NoResponseFallback
	}
}

// BackendClient sends a question to the QA backend. Implementations never
// return errors: every failure is folded into the AskResult.
type BackendClient interface {
	Query(ctx context.Context, question string) AskResult
	Ask(ctx context.Context, question string) string
}

type httpBackend struct {
	httpClient *http.Client
	endpoint   string
	metrics    *metrics.Metrics
}

// NewHTTPBackend creates a client for POST {baseURL}/ask. A zero timeout keeps
// the transport default.
func NewHTTPBackend(baseURL string, timeout time.Duration, m *metrics.Metrics) BackendClient {
	return &httpBackend{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimRight(baseURL, "/") + "/ask",
		metrics:    m,
	}
}

// newHTTPBackendWithClient lets tests inject a transport.
func newHTTPBackendWithClient(client *http.Client, baseURL string) *httpBackend {
	return &httpBackend{httpClient: client, endpoint: strings.TrimRight(baseURL, "/") + "/ask"}
}

func (b *httpBackend) Ask(ctx context.Context, question string) string {
	return b.Query(ctx, question).Render()
}

func (b *httpBackend) Query(ctx context.Context, question string) AskResult {
	start := time.Now()
	result := b.query(ctx, question)
	b.metrics.ObserveAsk(result.Kind.String(), time.Since(start))

	entry := logger.For("BACKEND").WithField("outcome", result.Kind.String())
	if result.Failed() {
		entry.WithField("status", result.Status).Warn("QA backend call did not produce an answer")
	} else {
		entry.Debug("QA backend answered")
	}
	return result
}

func (b *httpBackend) query(ctx context.Context, question string) AskResult {
	reqBody, err := json.Marshal(models.AskRequest{Question: question})
	if err != nil {
		return AskResult{Kind: BackendUnreachable, Detail: fmt.Sprintf("failed to marshal request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return AskResult{Kind: BackendUnreachable, Detail: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return AskResult{Kind: BackendUnreachable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return AskResult{Kind: BackendUnreachable, Status: resp.StatusCode, Detail: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return AskResult{Kind: BackendRejected, Status: resp.StatusCode, Detail: string(body)}
	}

	answer, ok := decodeAnswer(body)
	if !ok {
		return AskResult{Kind: MalformedResponse, Status: resp.StatusCode, Detail: string(body)}
	}
	return AskResult{Answer: answer, Status: resp.StatusCode}
}

// decodeAnswer extracts a string "answer" field from a JSON object. Anything
// else (not an object, field absent, field not a string) counts as missing.
func decodeAnswer(body []byte) (string, bool) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	raw, ok := payload["answer"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	var answer string
	if err := json.Unmarshal(raw, &answer); err != nil {
		return "", false
	}
	return answer, true
}
