package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/lib/logger/sl"
	"tipjar/internal/middlewares"

	"github.com/google/uuid"
)

type NotificationService struct {
	log     *slog.Logger
	repo    NotificationRepository
	timeout time.Duration
	now     func() time.Time
}

func NewNotificationService(log *slog.Logger, repo NotificationRepository, timeout time.Duration) *NotificationService {
	return &NotificationService{
		log:     log,
		repo:    repo,
		timeout: timeout,
		now:     time.Now,
	}
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	const op = "services.NotificationService.List"

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%s: %w: userId", op, middlewares.ErrEmptyField)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	items, err := s.repo.ListNotifications(storeCtx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// Create stores a notification submitted directly by a client.
func (s *NotificationService) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	const op = "services.NotificationService.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", n.UserID),
		slog.String("type", string(n.Type)),
	)

	if err := middlewares.CheckNotification(n); err != nil {
		return models.Notification{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return models.Notification{}, fmt.Errorf("%s: %w", op, err)
	}
	n.ID = id
	n.Read = false
	n.DedupeKey = ""
	n.Timestamp = s.now().UTC().Truncate(time.Microsecond)

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if _, err := s.repo.InsertNotification(storeCtx, n); err != nil {
		log.Error("failed to create notification", sl.Err(err))
		return models.Notification{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("notification created", slog.String("notification_id", id.String()))

	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string, read bool) error {
	const op = "services.NotificationService.MarkRead"

	notificationID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w: %q", op, middlewares.ErrInvalidNotificationID, id)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.repo.SetNotificationRead(storeCtx, notificationID, read); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	const op = "services.NotificationService.MarkAllRead"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	if strings.TrimSpace(userID) == "" {
		return 0, fmt.Errorf("%s: %w: userId", op, middlewares.ErrEmptyField)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	count, err := s.repo.MarkAllNotificationsRead(storeCtx, userID)
	if err != nil {
		log.Error("failed to mark notifications read", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("notifications marked read", slog.Int64("count", count))

	return count, nil
}

func (s *NotificationService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
