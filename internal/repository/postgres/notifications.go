package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/repository"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const notificationsTable = "notifications"

func (s *Storage) InsertNotification(ctx context.Context, n models.Notification) (bool, error) {
	const op = "storage.Postgres.InsertNotification"

	data := n.Data
	if data == nil {
		data = map[string]interface{}{}
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var dedupeKey *string
	if n.DedupeKey != "" {
		dedupeKey = &n.DedupeKey
	}

	createdAt := n.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := squirrel.Insert(notificationsTable).
		Columns("id", "user_id", "type", "title", "message", "data", "dedupe_key", "read", "created_at").
		Values(n.ID, n.UserID, string(n.Type), n.Title, n.Message, dataJSON, dedupeKey, n.Read, createdAt).
		PlaceholderFormat(squirrel.Dollar)
	if dedupeKey != nil {
		query = query.Suffix("ON CONFLICT (dedupe_key) DO NOTHING")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, classify(err))
	}

	return tag.RowsAffected() > 0, nil
}

func (s *Storage) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	const op = "storage.Postgres.ListNotifications"

	query := squirrel.Select("id", "user_id", "type", "title", "message", "data", "read", "created_at").
		From(notificationsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)
	if unreadOnly {
		query = query.Where(squirrel.Eq{"read": false})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	defer rows.Close()

	items := make([]models.Notification, 0)
	for rows.Next() {
		var (
			n        models.Notification
			typ      string
			dataJSON []byte
		)
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Title, &n.Message, &dataJSON, &n.Read, &n.Timestamp); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		n.Type = models.NotificationType(typ)
		if len(dataJSON) > 0 {
			if err := json.Unmarshal(dataJSON, &n.Data); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return items, nil
}

func (s *Storage) SetNotificationRead(ctx context.Context, id uuid.UUID, read bool) error {
	const op = "storage.Postgres.SetNotificationRead"

	sql, args, err := squirrel.Update(notificationsTable).
		Set("read", read).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotificationNotFound)
	}

	return nil
}

func (s *Storage) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	const op = "storage.Postgres.MarkAllNotificationsRead"

	sql, args, err := squirrel.Update(notificationsTable).
		Set("read", true).
		Where(squirrel.Eq{"user_id": userID, "read": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, classify(err))
	}

	return tag.RowsAffected(), nil
}
