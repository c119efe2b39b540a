package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/itish2003/growthvision/models"
)

func greetingTurn() models.ChatTurn {
	return models.ChatTurn{Role: models.RoleAI, Content: "Hello Sir!, How can I help you?", Avatar: "chatbot.png"}
}

func TestConversationStore_StartsWithGreeting(t *testing.T) {
	store := NewConversationStore(testStoreOptions())

	assert.Equal(t, []models.ChatTurn{greetingTurn()}, store.Snapshot())
	assert.Equal(t, 1, store.Len())
}

func TestConversationStore_AppendKeepsOrder(t *testing.T) {
	store := NewConversationStore(testStoreOptions())

	store.Append(models.ChatTurn{Role: models.RoleHuman, Content: "q1", Avatar: "user.png"})
	store.Append(models.ChatTurn{Role: models.RoleAI, Content: "a1", Avatar: "chatbot.png"})

	snap := store.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, greetingTurn(), snap[0])
	assert.Equal(t, "q1", snap[1].Content)
	assert.Equal(t, models.RoleHuman, snap[1].Role)
	assert.Equal(t, "a1", snap[2].Content)
}

func TestConversationStore_ResetIsIdempotent(t *testing.T) {
	store := NewConversationStore(testStoreOptions())
	store.Append(models.ChatTurn{Role: models.RoleHuman, Content: "q"})

	store.Reset()
	first := store.Snapshot()
	store.Reset()

	assert.Equal(t, []models.ChatTurn{greetingTurn()}, first)
	assert.Equal(t, first, store.Snapshot())
}

func TestConversationStore_SnapshotIsACopy(t *testing.T) {
	store := NewConversationStore(testStoreOptions())

	snap := store.Snapshot()
	snap[0].Content = "tampered"
	_ = append(snap, models.ChatTurn{Content: "extra"})

	assert.Equal(t, []models.ChatTurn{greetingTurn()}, store.Snapshot())
}

func TestConversationStore_GenerationChangesOnlyOnReset(t *testing.T) {
	store := NewConversationStore(testStoreOptions())
	gen := store.Generation()

	store.Append(models.ChatTurn{Content: "q"})
	assert.Equal(t, gen, store.Generation())

	store.Reset()
	assert.Greater(t, store.Generation(), gen)
}

func TestConversationStore_AppendIfGeneration(t *testing.T) {
	store := NewConversationStore(testStoreOptions())
	gen := store.Generation()

	assert.True(t, store.appendIfGeneration(gen, models.ChatTurn{Content: "kept"}))

	store.Reset()
	assert.False(t, store.appendIfGeneration(gen, models.ChatTurn{Content: "stale"}))
	assert.Equal(t, []models.ChatTurn{greetingTurn()}, store.Snapshot())
}

func TestConversationStore_BoundKeepsGreeting(t *testing.T) {
	opts := testStoreOptions()
	opts.MaxTurns = 5
	store := NewConversationStore(opts)

	for i := 0; i < 6; i++ {
		store.Append(models.ChatTurn{Role: models.RoleHuman, Content: fmt.Sprintf("q%d", i)})
	}

	snap := store.Snapshot()
	require.Len(t, snap, 5)
	assert.Equal(t, greetingTurn(), snap[0])
	assert.Equal(t, []string{"q2", "q3", "q4", "q5"}, contents(snap[1:]))
}

func TestConversationStore_SmallBoundIsRaised(t *testing.T) {
	opts := testStoreOptions()
	opts.MaxTurns = 1
	store := NewConversationStore(opts)

	for i := 0; i < 4; i++ {
		store.Append(models.ChatTurn{Content: fmt.Sprintf("t%d", i)})
	}

	assert.Equal(t, minBoundedTurns, store.Len())
	assert.Equal(t, greetingTurn(), store.Snapshot()[0])
}

func contents(turns []models.ChatTurn) []string {
	out := make([]string, 0, len(turns))
	for _, turn := range turns {
		out = append(out, turn.Content)
	}
	return out
}
