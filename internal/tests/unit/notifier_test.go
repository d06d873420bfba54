package unit

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/services"
	"tipjar/internal/tests/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func tipForNotifier(senderID, receiverID *string) models.TipTransaction {
	return models.TipTransaction{
		TransactionID:   "tip-1",
		SenderAddress:   "0x1234567890abcdef1234567890abcdef1234abcd",
		ReceiverAddress: "0xfedcba0987654321fedcba0987654321fedc5678",
		AmountUSD:       decimal.RequireFromString("10"),
		SenderUserID:    senderID,
		ReceiverUserID:  receiverID,
	}
}

func strPtr(s string) *string { return &s }

func TestNotifier_OnCreated_NotifiesBothSides(t *testing.T) {
	// Arrange
	repo := new(mocks.NotificationRepositoryMock)

	var delivered []models.Notification
	repo.On("InsertNotification", mock.Anything, mock.AnythingOfType("models.Notification")).
		Run(func(args mock.Arguments) { delivered = append(delivered, args.Get(1).(models.Notification)) }).
		Return(true, nil).Twice()

	notifier := services.NewNotifier(slog.Default(), repo, time.Second)

	// Act
	notifier.OnCreated(context.Background(), tipForNotifier(strPtr("alice"), strPtr("bob")))

	// Assert
	require.Len(t, delivered, 2)

	sent := delivered[0]
	assert.Equal(t, "alice", sent.UserID)
	assert.Equal(t, models.NotificationTipSent, sent.Type)
	assert.Equal(t, "Tip Sent", sent.Title)
	assert.Equal(t, "You sent $10.00 to 0xfedc...5678", sent.Message)
	assert.Equal(t, "tip-1", sent.Data["transactionId"])
	assert.Equal(t, "10.00", sent.Data["amount"])
	assert.Equal(t, "tip-1:tip_sent:alice", sent.DedupeKey)
	assert.False(t, sent.Read)
	assert.NotEqual(t, uuid.Nil, sent.ID)

	received := delivered[1]
	assert.Equal(t, "bob", received.UserID)
	assert.Equal(t, models.NotificationTipReceived, received.Type)
	assert.Equal(t, "Tip Received", received.Title)
	assert.Equal(t, "You received $10.00 from 0x1234...abcd", received.Message)
	assert.Equal(t, "0x1234567890abcdef1234567890abcdef1234abcd", received.Data["senderAddress"])
	repo.AssertExpectations(t)
}

func TestNotifier_OnCreated_SkipsSidesWithoutUserID(t *testing.T) {
	// Arrange
	repo := new(mocks.NotificationRepositoryMock)
	repo.On("InsertNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.UserID == "bob" && n.Type == models.NotificationTipReceived
	})).Return(true, nil).Once()

	notifier := services.NewNotifier(slog.Default(), repo, time.Second)

	// Act
	notifier.OnCreated(context.Background(), tipForNotifier(nil, strPtr("bob")))

	// Assert
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "InsertNotification", 1)
}

func TestNotifier_OnFinalized_NotifiesSenderOnly(t *testing.T) {
	cases := []struct {
		status  models.TransactionStatus
		typ     models.NotificationType
		title   string
		message string
	}{
		{models.StatusSuccess, models.NotificationTransactionSuccess, "Transaction Successful", "Transaction completed successfully"},
		{models.StatusFailed, models.NotificationTransactionFailed, "Transaction Failed", "Transaction failed"},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			// Arrange
			repo := new(mocks.NotificationRepositoryMock)
			repo.On("InsertNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
				return n.UserID == "alice" && n.Type == tc.typ && n.Title == tc.title && n.Message == tc.message &&
					n.Data["status"] == string(tc.status)
			})).Return(true, nil).Once()

			notifier := services.NewNotifier(slog.Default(), repo, time.Second)
			tx := tipForNotifier(strPtr("alice"), strPtr("bob"))
			tx.Status = tc.status

			// Act
			notifier.OnFinalized(context.Background(), tx)

			// Assert
			repo.AssertExpectations(t)
			repo.AssertNumberOfCalls(t, "InsertNotification", 1)
		})
	}
}

func TestNotifier_OnFinalized_IgnoresPending(t *testing.T) {
	// Arrange
	repo := new(mocks.NotificationRepositoryMock)
	notifier := services.NewNotifier(slog.Default(), repo, time.Second)

	tx := tipForNotifier(strPtr("alice"), nil)
	tx.Status = models.StatusPending

	// Act
	notifier.OnFinalized(context.Background(), tx)

	// Assert
	repo.AssertNotCalled(t, "InsertNotification", mock.Anything, mock.Anything)
}

func TestNotifier_DeliveryFailureIsSwallowed(t *testing.T) {
	// Arrange
	repo := new(mocks.NotificationRepositoryMock)
	repo.On("InsertNotification", mock.Anything, mock.Anything).
		Return(false, errors.New("redis down")).Twice()

	notifier := services.NewNotifier(slog.Default(), repo, time.Second)

	// Act & Assert
	assert.NotPanics(t, func() {
		notifier.OnCreated(context.Background(), tipForNotifier(strPtr("alice"), strPtr("bob")))
	})
	repo.AssertExpectations(t)
}

func TestNotifier_SurvivesCancelledRequestContext(t *testing.T) {
	// Arrange
	repo := new(mocks.NotificationRepositoryMock)
	repo.On("InsertNotification", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(true, nil).Once()

	notifier := services.NewNotifier(slog.Default(), repo, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tx := tipForNotifier(strPtr("alice"), nil)
	tx.Status = models.StatusSuccess

	// Act
	notifier.OnFinalized(ctx, tx)

	// Assert
	repo.AssertExpectations(t)
}

func TestNotifier_ShortAddressesAreNotTruncated(t *testing.T) {
	// Arrange
	repo := new(mocks.NotificationRepositoryMock)
	repo.On("InsertNotification", mock.Anything, mock.MatchedBy(func(n models.Notification) bool {
		return n.Message == "You sent $0.50 to bob"
	})).Return(true, nil).Once()

	notifier := services.NewNotifier(slog.Default(), repo, time.Second)
	tx := tipForNotifier(strPtr("alice"), nil)
	tx.ReceiverAddress = "bob"
	tx.AmountUSD = decimal.RequireFromString("0.5")

	// Act
	notifier.OnCreated(context.Background(), tx)

	// Assert
	repo.AssertExpectations(t)
}
