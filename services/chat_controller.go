package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github/itish2003/growthvision/logger"
	"github/itish2003/growthvision/models"
)

// ErrBusy is returned when a question is submitted while the previous one is
// still waiting for the backend.
var ErrBusy = errors.New("a question is already being answered")

type ChatState int

const (
	Idle ChatState = iota
	AwaitingBackend
)

func (s ChatState) String() string {
	if s == AwaitingBackend {
		return "awaiting_backend"
	}
	return "idle"
}

// Outcome tells the caller what Submit did with a query.
type Outcome int

const (
	// OutcomeIgnored: the query was blank and nothing changed.
	OutcomeIgnored Outcome = iota
	// OutcomeAnswered: a Human turn and an AI turn were appended.
	OutcomeAnswered
	// OutcomeDiscarded: the history was cleared while the backend was
	// answering and the answer was dropped under the discard policy.
	OutcomeDiscarded
)

// StaleAnswerPolicy decides what happens to an answer that arrives after the
// history was cleared.
type StaleAnswerPolicy string

const (
	StaleAppend  StaleAnswerPolicy = "append"
	StaleDiscard StaleAnswerPolicy = "discard"
)

func ParseStaleAnswerPolicy(s string) (StaleAnswerPolicy, error) {
	switch p := StaleAnswerPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case StaleAppend, StaleDiscard:
		return p, nil
	case "":
		return StaleAppend, nil
	default:
		return "", fmt.Errorf("unknown stale answer policy %q", s)
	}
}

// ChatController runs one question/answer exchange at a time against the
// backend and records both sides in the conversation store.
type ChatController struct {
	mu           sync.Mutex
	state        ChatState
	forceRefresh bool

	store       *ConversationStore
	backend     BackendClient
	humanAvatar string
	aiAvatar    string
	policy      StaleAnswerPolicy
}

type ControllerOptions struct {
	HumanAvatar string
	AIAvatar    string
	StalePolicy StaleAnswerPolicy
}

func NewChatController(store *ConversationStore, backend BackendClient, opts ControllerOptions) *ChatController {
	if opts.StalePolicy == "" {
		opts.StalePolicy = StaleAppend
	}
	return &ChatController{
		store:       store,
		backend:     backend,
		humanAvatar: opts.HumanAvatar,
		aiAvatar:    opts.AIAvatar,
		policy:      opts.StalePolicy,
	}
}

// Submit handles one user query. Blank queries are ignored without error.
// The backend call is not cancelled when ctx is: once issued it runs to
// completion and its answer is recorded according to the stale answer policy.
func (c *ChatController) Submit(ctx context.Context, query string) (Outcome, error) {
	if strings.TrimSpace(query) == "" {
		return OutcomeIgnored, nil
	}

	c.mu.Lock()
	if c.state == AwaitingBackend {
		c.mu.Unlock()
		return OutcomeIgnored, ErrBusy
	}
	c.state = AwaitingBackend
	gen := c.store.Generation()
	c.store.Append(models.ChatTurn{Role: models.RoleHuman, Content: query, Avatar: c.humanAvatar})
	c.mu.Unlock()

	logger.For("SERVICE").WithField("query", query).Debug("Asking QA backend")
	result := c.backend.Query(context.WithoutCancel(ctx), query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle

	answer := models.ChatTurn{Role: models.RoleAI, Content: result.Render(), Avatar: c.aiAvatar}
	if c.policy == StaleDiscard {
		if !c.store.appendIfGeneration(gen, answer) {
			logger.For("SERVICE").Info("History was cleared while waiting for the backend, dropping answer")
			return OutcomeDiscarded, nil
		}
		return OutcomeAnswered, nil
	}
	c.store.Append(answer)
	return OutcomeAnswered, nil
}

// ClearHistory resets the transcript to the greeting and flips the
// force-refresh toggle. An in-flight question is left running.
func (c *ChatController) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Reset()
	c.forceRefresh = !c.forceRefresh
}

func (c *ChatController) State() ChatState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether the loading indicator should be shown.
func (c *ChatController) Busy() bool {
	return c.State() == AwaitingBackend
}

func (c *ChatController) ForceRefresh() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forceRefresh
}
