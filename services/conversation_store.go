package services

import (
	"sync"

	"github/itish2003/growthvision/models"
)

// minBoundedTurns keeps room for the greeting plus one full exchange.
const minBoundedTurns = 3

// ConversationStore is the ordered transcript of one session. It always holds
// at least the greeting turn.
type ConversationStore struct {
	mu         sync.RWMutex
	turns      []models.ChatTurn
	generation uint64

	greeting string
	avatar   string
	maxTurns int
}

// StoreOptions configures the greeting and an optional length bound. A
// MaxTurns of zero means the transcript grows without limit.
type StoreOptions struct {
	Greeting string
	AIAvatar string
	MaxTurns int
}

func NewConversationStore(opts StoreOptions) *ConversationStore {
	if opts.MaxTurns > 0 && opts.MaxTurns < minBoundedTurns {
		opts.MaxTurns = minBoundedTurns
	}
	s := &ConversationStore{
		greeting: opts.Greeting,
		avatar:   opts.AIAvatar,
		maxTurns: opts.MaxTurns,
	}
	s.Initialize()
	return s
}

// Initialize replaces the transcript with a single greeting turn and starts a
// new generation.
func (s *ConversationStore) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = []models.ChatTurn{{Role: models.RoleAI, Content: s.greeting, Avatar: s.avatar}}
	s.generation++
}

// Reset discards every turn. It is the same as Initialize.
func (s *ConversationStore) Reset() {
	s.Initialize()
}

// Append adds a turn at the end. When a bound is set, the oldest turns after
// the greeting are dropped to stay within it.
func (s *ConversationStore) Append(turn models.ChatTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(turn)
}

func (s *ConversationStore) appendLocked(turn models.ChatTurn) {
	s.turns = append(s.turns, turn)
	if s.maxTurns > 0 && len(s.turns) > s.maxTurns {
		drop := len(s.turns) - s.maxTurns
		s.turns = append(s.turns[:1], s.turns[1+drop:]...)
	}
}

// Snapshot returns a copy of the transcript in display order.
func (s *ConversationStore) Snapshot() []models.ChatTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChatTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Generation changes on every Initialize/Reset and never on Append.
func (s *ConversationStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// appendIfGeneration appends only when no reset happened since gen was read.
func (s *ConversationStore) appendIfGeneration(gen uint64, turn models.ChatTurn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	s.appendLocked(turn)
	return true
}
