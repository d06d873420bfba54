package mocks

import (
	"context"
	"time"

	"tipjar/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) InsertNotification(ctx context.Context, n models.Notification) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func (m *NotificationRepositoryMock) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	items, _ := args.Get(0).([]models.Notification)
	return items, args.Error(1)
}

func (m *NotificationRepositoryMock) SetNotificationRead(ctx context.Context, id uuid.UUID, read bool) error {
	args := m.Called(ctx, id, read)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type NotificationServiceMock struct {
	mock.Mock
}

func (m *NotificationServiceMock) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	items, _ := args.Get(0).([]models.Notification)
	return items, args.Error(1)
}

func (m *NotificationServiceMock) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(models.Notification), args.Error(1)
}

func (m *NotificationServiceMock) MarkRead(ctx context.Context, id string, read bool) error {
	args := m.Called(ctx, id, read)
	return args.Error(0)
}

func (m *NotificationServiceMock) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type RateLimiterMock struct {
	mock.Mock
}

func (m *RateLimiterMock) Allow(ctx context.Context, scope, subject string, limit int, window time.Duration) (bool, int, error) {
	args := m.Called(ctx, scope, subject, limit, window)
	return args.Bool(0), args.Int(1), args.Error(2)
}
