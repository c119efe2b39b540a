package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github/itish2003/growthvision/logger"
	"github/itish2003/growthvision/metrics"
	"github/itish2003/growthvision/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the isolated state of one connected client. Nothing in it is
// shared with other sessions.
type Session struct {
	ID         string
	Store      *ConversationStore
	Chat       *ChatController
	Ingestion  *IngestionPanel
	Navigation *NavigationShell

	busyText string
	lastSeen time.Time
}

// View collects what a presentation layer needs to draw the session.
func (s *Session) View() models.SessionView {
	busy := s.Chat.Busy()
	view := models.SessionView{
		SessionID:     s.ID,
		Page:          s.Navigation.Current(),
		Busy:          busy,
		ForceRefresh:  s.Chat.ForceRefresh(),
		IngestionMode: s.Ingestion.Mode(),
		Turns:         s.Store.Snapshot(),
	}
	if busy {
		view.BusyText = s.busyText
	}
	return view
}

// SessionSettings are the collaborators and options new sessions are built
// with. Changing them affects only sessions created afterwards.
type SessionSettings struct {
	Store      StoreOptions
	Controller ControllerOptions
	Backend    BackendClient
	Sink       IngestionSink
	BusyText   string
}

// SessionRegistry creates and looks up sessions and expires idle ones.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	settings SessionSettings
	idleTTL  time.Duration
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewSessionRegistry(settings SessionSettings, idleTTL time.Duration, m *metrics.Metrics) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*Session),
		settings: settings,
		idleTTL:  idleTTL,
		metrics:  m,
		now:      time.Now,
	}
}

// Create builds a fresh session with its own store, controller, panel and
// navigation.
func (r *SessionRegistry) Create() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.settings
	store := NewConversationStore(st.Store)
	sess := &Session{
		ID:         uuid.New().String(),
		Store:      store,
		Chat:       NewChatController(store, st.Backend, st.Controller),
		Ingestion:  NewIngestionPanel(st.Sink, r.metrics),
		Navigation: NewNavigationShell(),
		busyText:   st.BusyText,
		lastSeen:   r.now(),
	}
	r.sessions[sess.ID] = sess
	r.metrics.SetSessions(len(r.sessions))
	logger.For("SERVICE").WithField("session", sess.ID).Info("Session created")
	return sess
}

// Get returns the session and marks it as recently used.
func (r *SessionRegistry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = r.now()
	return sess, nil
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// UpdateSettings swaps the settings used for new sessions.
func (r *SessionRegistry) UpdateSettings(settings SessionSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = settings
}

// Sweep drops sessions idle for longer than the TTL. A session waiting on the
// backend is kept until its answer arrives.
func (r *SessionRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, sess := range r.sessions {
		if now.Sub(sess.lastSeen) <= r.idleTTL || sess.Chat.Busy() {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	if removed > 0 {
		r.metrics.SetSessions(len(r.sessions))
		logger.For("SERVICE").WithField("removed", removed).Info("Expired idle sessions")
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (r *SessionRegistry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.Sweep(r.now())
		case <-ctx.Done():
			return
		}
	}
}
