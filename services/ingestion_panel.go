package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github/itish2003/growthvision/logger"
	"github/itish2003/growthvision/metrics"
	"github/itish2003/growthvision/models"
)

var (
	ErrUnknownMode      = errors.New("unknown ingestion mode")
	ErrModeNotSelected  = errors.New("ingestion mode is not the selected one")
	ErrInvalidIngestion = errors.New("invalid ingestion input")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

// IngestionSink is the external collaborator that receives documents.
type IngestionSink interface {
	Submit(ctx context.Context, req models.IngestionRequest) error
}

// IngestionPanel tracks which of the three input modes is shown and hands
// submissions for that mode to the sink. Submissions are fire-and-forget:
// once handed off, their result is logged and counted but never reported back
// or written to the transcript.
type IngestionPanel struct {
	mu      sync.Mutex
	mode    models.IngestionMode
	sink    IngestionSink
	metrics *metrics.Metrics
}

// NewIngestionPanel starts in file mode.
func NewIngestionPanel(sink IngestionSink, m *metrics.Metrics) *IngestionPanel {
	return &IngestionPanel{mode: models.ModeFile, sink: sink, metrics: m}
}

func (p *IngestionPanel) Mode() models.IngestionMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// SelectMode switches the visible input. Only the selected mode's trigger is
// accepted afterwards, so input meant for the other modes is dropped.
func (p *IngestionPanel) SelectMode(mode models.IngestionMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
	return nil
}

// Submit validates req and hands it to the sink. Only validation and mode
// errors are returned; sink failures are not.
func (p *IngestionPanel) Submit(ctx context.Context, req models.IngestionRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidIngestion)
	}
	if current := p.Mode(); req.Mode() != current {
		return fmt.Errorf("%w: selected %s, got %s", ErrModeNotSelected, current, req.Mode())
	}
	if err := validate.Struct(req); err != nil {
		p.metrics.ObserveIngestion(string(req.Mode()), "invalid")
		return fmt.Errorf("%w: %v", ErrInvalidIngestion, err)
	}

	log := logger.For("INGEST").WithField("mode", req.Mode())
	if err := p.sink.Submit(ctx, req); err != nil {
		p.metrics.ObserveIngestion(string(req.Mode()), "failed")
		log.WithError(err).Warn("Ingestion hand-off failed")
		return nil
	}
	p.metrics.ObserveIngestion(string(req.Mode()), "accepted")
	log.Info("Ingestion request handed off")
	return nil
}
