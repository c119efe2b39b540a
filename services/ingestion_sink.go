package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github/itish2003/growthvision/logger"
	"github/itish2003/growthvision/models"
)

type httpSink struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPSink forwards submissions to an ingestion service:
// POST /ingest/file (multipart), /ingest/text and /ingest/url (JSON).
func NewHTTPSink(client *http.Client, baseURL string) IngestionSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpSink{httpClient: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *httpSink) Submit(ctx context.Context, req models.IngestionRequest) error {
	var (
		body        io.Reader
		contentType string
		err         error
	)

	switch r := req.(type) {
	case models.FileUpload:
		body, contentType, err = fileUploadBody(r)
		if err != nil {
			return err
		}
	case models.TextInput:
		body, contentType, err = jsonBody(models.IngestTextRequest{Text: r.Text})
		if err != nil {
			return err
		}
	case models.URLInput:
		body, contentType, err = jsonBody(models.IngestURLRequest{URL: r.URL})
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnknownMode, req)
	}

	endpoint := fmt.Sprintf("%s/ingest/%s", s.baseURL, req.Mode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create ingestion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call ingestion service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ingestion service returned status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

func fileUploadBody(f models.FileUpload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	if err := writer.WriteField("declared_type", string(f.DeclaredType)); err != nil {
		return nil, "", fmt.Errorf("failed to write declared_type field: %w", err)
	}
	part, err := writer.CreateFormFile("file", f.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(f.Content); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}

func jsonBody(v any) (io.Reader, string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal ingestion request: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

type logSink struct{}

// NewLogSink accepts every submission and only logs it. It is used when no
// ingestion service is configured.
func NewLogSink() IngestionSink { return logSink{} }

func (logSink) Submit(_ context.Context, req models.IngestionRequest) error {
	entry := logger.For("INGEST").WithField("mode", req.Mode())
	switch r := req.(type) {
	case models.FileUpload:
		entry = entry.WithField("filename", r.Filename).WithField("bytes", len(r.Content))
	case models.TextInput:
		entry = entry.WithField("chars", len(r.Text))
	case models.URLInput:
		entry = entry.WithField("url", r.URL)
	}
	entry.Info("No ingestion service configured, dropping submission")
	return nil
}
