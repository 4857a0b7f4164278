package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T, ttl time.Duration) (*RedisConversationRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewRedisConversationRepository(rdb, ttl), mr
}

func TestAddMessageAndLoadHistoryRoundTrip(t *testing.T) {
	r, _ := setupRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("hi")))
	require.NoError(t, r.AddMessage(ctx, "c1", schema.AssistantMessage("Hello!", nil)))

	history, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", history.ConversationID)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, schema.User, history.Messages[0].Role)
	assert.Equal(t, "hi", history.Messages[0].Content)
	assert.Equal(t, schema.Assistant, history.Messages[1].Role)
	assert.Equal(t, "Hello!", history.Messages[1].Content)
}

func TestAddMessageRefreshesTTL(t *testing.T) {
	r, mr := setupRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("hi")))
	assert.Equal(t, time.Minute, mr.TTL("conversation:c1:messages"))

	mr.FastForward(30 * time.Second)
	require.NoError(t, r.AddMessage(ctx, "c1", schema.AssistantMessage("Hello!", nil)))
	assert.Equal(t, time.Minute, mr.TTL("conversation:c1:messages"))
}

func TestLoadHistoryUnknownConversationIsEmpty(t *testing.T) {
	r, _ := setupRepo(t, time.Minute)

	history, err := r.LoadHistory(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)
}

func TestLoadHistoryRejectsCorruptEntry(t *testing.T) {
	r, mr := setupRepo(t, time.Minute)

	_, err := mr.RPush("conversation:c1:messages", "{not json")
	require.NoError(t, err)

	_, err = r.LoadHistory(context.Background(), "c1")
	assert.Error(t, err)
}

func TestClearHistoryRemovesAllMessages(t *testing.T) {
	r, _ := setupRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("hi")))
	require.NoError(t, r.ClearHistory(ctx, "c1"))

	n, err := r.GetMessageCount(ctx, "c1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGetMessageCount(t *testing.T) {
	r, _ := setupRepo(t, time.Minute)
	ctx := context.Background()

	n, err := r.GetMessageCount(ctx, "c1")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("hi")))
	require.NoError(t, r.AddMessage(ctx, "c1", schema.AssistantMessage("Hello!", nil)))

	n, err = r.GetMessageCount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestConversationsAreIsolatedByKey(t *testing.T) {
	r, _ := setupRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("first")))
	require.NoError(t, r.AddMessage(ctx, "c2", schema.UserMessage("second")))

	h1, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, h1.Messages, 1)
	assert.Equal(t, "first", h1.Messages[0].Content)

	h2, err := r.LoadHistory(ctx, "c2")
	require.NoError(t, err)
	require.Len(t, h2.Messages, 1)
	assert.Equal(t, "second", h2.Messages[0].Content)
}
