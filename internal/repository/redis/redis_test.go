package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) redis.UniversalClient {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	return client
}

func testPrefix() string {
	return "tipjar-test-" + uuid.NewString()
}

func notification(userID, dedupe string) models.Notification {
	return models.Notification{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		Type:      models.NotificationTipReceived,
		Title:     "Tip Received",
		Message:   "You received $1.00 from 0x1234...abcd",
		Data:      map[string]interface{}{"transactionId": "t1"},
		Timestamp: time.Now().UTC(),
		DedupeKey: dedupe,
	}
}

func TestStorage_InsertDedupesAndOrders(t *testing.T) {
	s := NewStorage(newTestClient(t), testPrefix(), 100)
	ctx := context.Background()

	first := notification("bob", "t1:tip_received:bob")
	inserted, err := s.InsertNotification(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	again := first
	again.ID = uuid.Must(uuid.NewV7())
	inserted, err = s.InsertNotification(ctx, again)
	require.NoError(t, err)
	assert.False(t, inserted)

	second := notification("bob", "")
	_, err = s.InsertNotification(ctx, second)
	require.NoError(t, err)

	items, err := s.ListNotifications(ctx, "bob", false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, "t1", items[1].Data["transactionId"])
}

func TestStorage_ReadFlags(t *testing.T) {
	s := NewStorage(newTestClient(t), testPrefix(), 100)
	ctx := context.Background()

	a := notification("alice", "")
	b := notification("alice", "")
	for _, n := range []models.Notification{a, b} {
		_, err := s.InsertNotification(ctx, n)
		require.NoError(t, err)
	}

	require.NoError(t, s.SetNotificationRead(ctx, a.ID, true))
	assert.ErrorIs(t, s.SetNotificationRead(ctx, uuid.New(), true), repository.ErrNotificationNotFound)

	unread, err := s.ListNotifications(ctx, "alice", true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, b.ID, unread[0].ID)

	require.NoError(t, s.SetNotificationRead(ctx, a.ID, false))
	count, err := s.MarkAllNotificationsRead(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStorage_RetentionTrimsOldest(t *testing.T) {
	s := NewStorage(newTestClient(t), testPrefix(), 2)
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		n := notification("carol", "")
		ids = append(ids, n.ID)
		_, err := s.InsertNotification(ctx, n)
		require.NoError(t, err)
	}

	items, err := s.ListNotifications(ctx, "carol", false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ids[2], items[0].ID)
	assert.Equal(t, ids[1], items[1].ID)
	assert.ErrorIs(t, s.SetNotificationRead(ctx, ids[0], true), repository.ErrNotificationNotFound)
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(newTestClient(t), testPrefix())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, err := limiter.Allow(ctx, "tip_create", "10.0.0.1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "tip_create", "10.0.0.1", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.GreaterOrEqual(t, retryAfter, 1)

	other, _, err := limiter.Allow(ctx, "tip_create", "10.0.0.2", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, other)
}

func TestRateLimiter_DisabledLimitAllows(t *testing.T) {
	var limiter *RateLimiter

	allowed, _, err := limiter.Allow(context.Background(), "tip_create", "x", 0, time.Minute)

	require.NoError(t, err)
	assert.True(t, allowed)
}
