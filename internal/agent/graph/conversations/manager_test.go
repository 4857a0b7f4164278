package conversations

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrnexus-poc/server/internal/agent/model"
)

type fakeRepo struct {
	stored  map[string][]*schema.Message
	loadErr error
	addErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stored: map[string][]*schema.Message{}}
}

func (r *fakeRepo) AddMessage(_ context.Context, conversationID string, message *schema.Message) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.stored[conversationID] = append(r.stored[conversationID], message)
	return nil
}

func (r *fakeRepo) LoadHistory(_ context.Context, conversationID string) (*model.ConversationHistory, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return &model.ConversationHistory{
		ConversationID: conversationID,
		Messages:       r.stored[conversationID],
	}, nil
}

func (r *fakeRepo) ClearHistory(_ context.Context, conversationID string) error {
	delete(r.stored, conversationID)
	return nil
}

func (r *fakeRepo) GetMessageCount(_ context.Context, conversationID string) (int, error) {
	return len(r.stored[conversationID]), nil
}

func TestSeedHistoryDropsTrailingEntry(t *testing.T) {
	mm := NewMessagesManager(nil, model.ConversationConfig{MaxTurns: 10})

	turns, err := mm.SeedHistory(context.Background(), &model.QueryInput{
		ConversationID: "c1",
		Query:          "who is on call",
		History: []model.HistoryMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "Hello!"},
			{Role: "User", Content: "who is on call"},
		},
	})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, schema.User, turns[0].Role)
	assert.Equal(t, "hi", turns[0].Content)
	assert.Equal(t, schema.Assistant, turns[1].Role)
}

func TestSeedHistoryDropsTrailingEntryUnconditionally(t *testing.T) {
	mm := NewMessagesManager(nil, model.ConversationConfig{MaxTurns: 10})

	// the last entry is excluded even when it does not match the current
	// query; by contract it is always the query itself
	turns, err := mm.SeedHistory(context.Background(), &model.QueryInput{
		Query: "and the frontend team?",
		History: []model.HistoryMessage{
			{Role: "user", Content: "who is on the backend team"},
			{Role: "assistant", Content: "Lina and Omar."},
			{Role: "user", Content: "what about frontend"},
		},
	})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "who is on the backend team", turns[0].Content)
	assert.Equal(t, "Lina and Omar.", turns[1].Content)
}

func TestSeedHistorySkipsEmptyAndDefaultsUnknownRolesToUser(t *testing.T) {
	mm := NewMessagesManager(nil, model.ConversationConfig{MaxTurns: 10})

	turns, err := mm.SeedHistory(context.Background(), &model.QueryInput{
		Query: "next",
		History: []model.HistoryMessage{
			{Role: "user", Content: ""},
			{Role: "system", Content: "be nice"},
			{Role: "ASSISTANT", Content: "Sure."},
			{Role: "user", Content: "next"},
		},
	})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, schema.User, turns[0].Role)
	assert.Equal(t, "be nice", turns[0].Content)
	assert.Equal(t, schema.Assistant, turns[1].Role)
}

func TestSeedHistoryCapsAtMaxTurns(t *testing.T) {
	mm := NewMessagesManager(nil, model.ConversationConfig{MaxTurns: 3})

	history := make([]model.HistoryMessage, 0, 8)
	for i := 0; i < 8; i++ {
		history = append(history, model.HistoryMessage{Role: "user", Content: fmt.Sprintf("m%d", i)})
	}

	turns, err := mm.SeedHistory(context.Background(), &model.QueryInput{Query: "latest", History: history})
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "m4", turns[0].Content)
	assert.Equal(t, "m6", turns[2].Content)
}

func TestSeedHistoryLoadsFromRepoWhenRequestIsEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.stored["c1"] = []*schema.Message{
		schema.UserMessage("hi"),
		schema.AssistantMessage("Hello!", nil),
	}
	mm := NewMessagesManager(repo, model.ConversationConfig{MaxTurns: 10})

	turns, err := mm.SeedHistory(context.Background(), &model.QueryInput{ConversationID: "c1", Query: "thanks"})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "Hello!", turns[1].Content)
}

func TestSeedHistoryRequestHistoryWinsOverRepo(t *testing.T) {
	repo := newFakeRepo()
	repo.stored["c1"] = []*schema.Message{schema.UserMessage("stale")}
	mm := NewMessagesManager(repo, model.ConversationConfig{MaxTurns: 10})

	turns, err := mm.SeedHistory(context.Background(), &model.QueryInput{
		ConversationID: "c1",
		Query:          "q",
		History:        []model.HistoryMessage{{Role: "user", Content: "fresh"}},
	})
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "fresh", turns[0].Content)
}

func TestSeedHistoryPropagatesRepoError(t *testing.T) {
	repo := newFakeRepo()
	repo.loadErr = errors.New("redis down")
	mm := NewMessagesManager(repo, model.ConversationConfig{MaxTurns: 10})

	_, err := mm.SeedHistory(context.Background(), &model.QueryInput{ConversationID: "c1", Query: "q"})
	assert.Error(t, err)
}

func TestSeedHistoryNilRepoNoHistory(t *testing.T) {
	mm := NewMessagesManager(nil, model.ConversationConfig{MaxTurns: 10})

	turns, err := mm.SeedHistory(context.Background(), &model.QueryInput{ConversationID: "c1", Query: "hi"})
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSaveMessagesSwallowFailures(t *testing.T) {
	repo := newFakeRepo()
	repo.addErr = errors.New("redis down")
	mm := NewMessagesManager(repo, model.ConversationConfig{MaxTurns: 10})

	// neither persists nor panics nor fails the run
	mm.SaveUserMessage(context.Background(), "c1", "hi")
	mm.SaveResponse(context.Background(), "c1", "Hello!")
	assert.Empty(t, repo.stored["c1"])
}

func TestSaveMessagesPersistInOrder(t *testing.T) {
	repo := newFakeRepo()
	mm := NewMessagesManager(repo, model.ConversationConfig{MaxTurns: 10})

	mm.SaveUserMessage(context.Background(), "c1", "hi")
	mm.SaveResponse(context.Background(), "c1", "Hello!")

	require.Len(t, repo.stored["c1"], 2)
	assert.Equal(t, schema.User, repo.stored["c1"][0].Role)
	assert.Equal(t, schema.Assistant, repo.stored["c1"][1].Role)
}
