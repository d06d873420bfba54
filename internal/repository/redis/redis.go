package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// insertNotificationScript keeps a per-user list of ids (newest first) capped at the retention
// limit. Notification bodies live in one hash keyed by id so that mark-read by id works without
// the user id. The dedupe key is set before anything is written.
var insertNotificationScript = redis.NewScript(`
if ARGV[5] == "1" then
  if not redis.call("SET", KEYS[5], ARGV[1], "NX") then
    return 0
  end
end
redis.call("LPUSH", KEYS[1], ARGV[1])
redis.call("HSET", KEYS[2], ARGV[1], ARGV[2])
redis.call("HSET", KEYS[3], ARGV[1], ARGV[3])
local limit = tonumber(ARGV[4])
if limit > 0 then
  local stale = redis.call("LRANGE", KEYS[1], limit, -1)
  for _, sid in ipairs(stale) do
    redis.call("HDEL", KEYS[2], sid)
    redis.call("HDEL", KEYS[3], sid)
    redis.call("SREM", KEYS[4], sid)
  end
  redis.call("LTRIM", KEYS[1], 0, limit - 1)
end
return 1
`)

type Storage struct {
	db        redis.UniversalClient
	prefix    string
	retention int
}

func InitRedis(connStr, redisPassword string, dbNumber int, prefix string, retention int) (*Storage, error) {
	const op = "storage.redis.InitRedis"

	redisClient := redis.NewClient(&redis.Options{
		Addr:     connStr,
		Username: "",
		Password: redisPassword,
		DB:       dbNumber,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewStorage(redisClient, prefix, retention), nil
}

func NewStorage(client redis.UniversalClient, prefix string, retention int) *Storage {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "tipjar"
	}

	return &Storage{db: client, prefix: prefix, retention: retention}
}

func (s *Storage) Client() redis.UniversalClient {
	return s.db
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) userListKey(userID string) string {
	return fmt.Sprintf("%s:notifications:user:%s", s.prefix, userID)
}

func (s *Storage) readSetKey(userID string) string {
	return fmt.Sprintf("%s:notifications:read:%s", s.prefix, userID)
}

func (s *Storage) dataKey() string {
	return s.prefix + ":notifications:data"
}

func (s *Storage) ownerKey() string {
	return s.prefix + ":notifications:owner"
}

func (s *Storage) dedupeKey(key string) string {
	return fmt.Sprintf("%s:notifications:dedupe:%s", s.prefix, key)
}

func (s *Storage) InsertNotification(ctx context.Context, n models.Notification) (bool, error) {
	const op = "storage.Redis.InsertNotification"

	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	// read хранится в отдельном сете, в json всегда false
	n.Read = false

	body, err := json.Marshal(n)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	hasDedupe := "0"
	dedupeKey := s.dedupeKey("-")
	if n.DedupeKey != "" {
		hasDedupe = "1"
		dedupeKey = s.dedupeKey(n.DedupeKey)
	}

	keys := []string{s.userListKey(n.UserID), s.dataKey(), s.ownerKey(), s.readSetKey(n.UserID), dedupeKey}
	res, err := insertNotificationScript.Run(ctx, s.db, keys, n.ID.String(), body, n.UserID, s.retention, hasDedupe).Int()
	if err != nil {
		return false, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	return res == 1, nil
}

func (s *Storage) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	const op = "storage.Redis.ListNotifications"

	ids, err := s.db.LRange(ctx, s.userListKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}
	if len(ids) == 0 {
		return []models.Notification{}, nil
	}

	bodies, err := s.db.HMGet(ctx, s.dataKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	readIDs, err := s.db.SMembers(ctx, s.readSetKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}
	read := make(map[string]struct{}, len(readIDs))
	for _, id := range readIDs {
		read[id] = struct{}{}
	}

	items := make([]models.Notification, 0, len(ids))
	for i, raw := range bodies {
		body, ok := raw.(string)
		if !ok {
			continue
		}

		var n models.Notification
		if err := json.Unmarshal([]byte(body), &n); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		_, n.Read = read[ids[i]]
		if unreadOnly && n.Read {
			continue
		}
		items = append(items, n)
	}

	return items, nil
}

func (s *Storage) SetNotificationRead(ctx context.Context, id uuid.UUID, read bool) error {
	const op = "storage.Redis.SetNotificationRead"

	userID, err := s.db.HGet(ctx, s.ownerKey(), id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%s: %w", op, repository.ErrNotificationNotFound)
		}
		return fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	if read {
		err = s.db.SAdd(ctx, s.readSetKey(userID), id.String()).Err()
	} else {
		err = s.db.SRem(ctx, s.readSetKey(userID), id.String()).Err()
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	return nil
}

func (s *Storage) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	const op = "storage.Redis.MarkAllNotificationsRead"

	ids, err := s.db.LRange(ctx, s.userListKey(userID), 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}

	added, err := s.db.SAdd(ctx, s.readSetKey(userID), members...).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	return added, nil
}
