package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github/itish2003/growthvision/models"
	"github/itish2003/growthvision/services"
)

// maxUploadBytes caps a single uploaded document.
const maxUploadBytes = 32 << 20

// SessionController exposes chat sessions over HTTP. It depends on the
// SessionRegistry for all state.
type SessionController struct {
	sessions *services.SessionRegistry
}

func NewSessionController(sessions *services.SessionRegistry) *SessionController {
	return &SessionController{sessions: sessions}
}

// CreateSession is the handler for POST /api/v1/sessions.
func (c *SessionController) CreateSession(ctx *gin.Context) {
	sess := c.sessions.Create()
	ctx.JSON(http.StatusCreated, sess.View())
}

// GetSession is the handler for GET /api/v1/sessions/:id.
func (c *SessionController) GetSession(ctx *gin.Context) {
	sess, ok := c.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, sess.View())
}

// SelectPage is the handler for PUT /api/v1/sessions/:id/page.
func (c *SessionController) SelectPage(ctx *gin.Context) {
	sess, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req models.SelectPageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := sess.Navigation.Select(req.Page); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sess.View())
}

// SubmitQuery is the handler for POST /api/v1/sessions/:id/messages. It
// blocks until the backend has answered. A blank query leaves the session
// unchanged and still returns 200.
func (c *SessionController) SubmitQuery(ctx *gin.Context) {
	sess, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req models.SubmitQueryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if _, err := sess.Chat.Submit(ctx.Request.Context(), req.Query); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sess.View())
}

// ClearHistory is the handler for DELETE /api/v1/sessions/:id/messages.
func (c *SessionController) ClearHistory(ctx *gin.Context) {
	sess, ok := c.lookup(ctx)
	if !ok {
		return
	}
	sess.Chat.ClearHistory()
	ctx.JSON(http.StatusOK, sess.View())
}

// SelectIngestionMode is the handler for PUT /api/v1/sessions/:id/ingestion/mode.
func (c *SessionController) SelectIngestionMode(ctx *gin.Context) {
	sess, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req models.SelectModeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := sess.Ingestion.SelectMode(req.Mode); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sess.View())
}

// UploadFile is the handler for POST /api/v1/sessions/:id/ingestion/file.
func (c *SessionController) UploadFile(ctx *gin.Context) {
	sess, ok := c.lookup(ctx)
	if !ok {
		return
	}
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing file: " + err.Error()})
		return
	}
	if header.Size > maxUploadBytes {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}
	f, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not open upload: " + err.Error()})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Could not read upload: " + err.Error()})
		return
	}

	upload, err := services.NewFileUpload(header.Filename, content)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.submit(ctx, sess, upload)
}

// UploadText is the handler for POST /api/v1/sessions/:id/ingestion/text.
func (c *SessionController) UploadText(ctx *gin.Context) {
	sess, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req models.IngestTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	c.submit(ctx, sess, models.TextInput{Text: req.Text})
}

// UploadURL is the handler for POST /api/v1/sessions/:id/ingestion/url.
func (c *SessionController) UploadURL(ctx *gin.Context) {
	sess, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req models.IngestURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	c.submit(ctx, sess, models.URLInput{URL: req.URL})
}

func (c *SessionController) submit(ctx *gin.Context, sess *services.Session, req models.IngestionRequest) {
	if err := sess.Ingestion.Submit(ctx.Request.Context(), req); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, models.IngestionAccepted{Message: "Submission handed off", Mode: req.Mode()})
}

func (c *SessionController) lookup(ctx *gin.Context) (*services.Session, bool) {
	sess, err := c.sessions.Get(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return nil, false
	}
	return sess, true
}

// respondError maps service errors onto HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrBusy), errors.Is(err, services.ErrModeNotSelected):
		status = http.StatusConflict
	case errors.Is(err, services.ErrUnknownPage),
		errors.Is(err, services.ErrUnknownMode),
		errors.Is(err, services.ErrInvalidIngestion):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnsupportedFileType), errors.Is(err, services.ErrContentMismatch):
		status = http.StatusUnsupportedMediaType
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
