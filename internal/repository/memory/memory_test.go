package memory_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/repository"
	"tipjar/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingTx(id string, ts time.Time) models.TipTransaction {
	return models.TipTransaction{
		TransactionID:   id,
		SenderAddress:   "0xsender",
		ReceiverAddress: "0xreceiver",
		AmountUSD:       decimal.RequireFromString("1.00"),
		FeeAmountUSD:    decimal.RequireFromString("0.01"),
		NetAmountUSD:    decimal.RequireFromString("0.99"),
		AmountUSDC:      "1.00",
		Status:          models.StatusPending,
		NetTransfer:     models.Transfer{Status: models.TransferPending},
		FeeTransfer:     models.Transfer{Status: models.TransferPending},
		Timestamp:       ts,
	}
}

func TestStorage_InsertTransaction_RejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)

	require.NoError(t, store.InsertTransaction(ctx, pendingTx("tx-1", time.Now())))
	err := store.InsertTransaction(ctx, pendingTx("tx-1", time.Now()))

	assert.ErrorIs(t, err, repository.ErrDuplicateTransaction)
}

func TestStorage_UpdateTransaction_CompareAndSet(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)
	require.NoError(t, store.InsertTransaction(ctx, pendingTx("tx-1", time.Now())))

	pending := models.StatusPending
	success := models.StatusSuccess
	failed := models.StatusFailed
	hash := "0xabc"

	updated, applied, err := store.UpdateTransaction(ctx, "tx-1", models.TransactionUpdate{
		ExpectStatus:    &pending,
		Status:          &success,
		TransactionHash: &hash,
	})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, models.StatusSuccess, updated.Status)
	require.NotNil(t, updated.TransactionHash)
	assert.Equal(t, hash, *updated.TransactionHash)

	current, applied, err := store.UpdateTransaction(ctx, "tx-1", models.TransactionUpdate{
		ExpectStatus: &pending,
		Status:       &failed,
	})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, models.StatusSuccess, current.Status)
}

func TestStorage_UpdateTransaction_TransferLegOnlyOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)
	require.NoError(t, store.InsertTransaction(ctx, pendingTx("tx-1", time.Now())))

	hash := "0xfee"
	updated, applied, err := store.UpdateTransaction(ctx, "tx-1", models.TransactionUpdate{
		Transfer: &models.TransferUpdate{Leg: models.LegFee, Status: models.TransferSuccess, TransactionHash: &hash},
	})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, models.TransferSuccess, updated.FeeTransfer.Status)
	assert.Equal(t, models.TransferPending, updated.NetTransfer.Status)
	assert.Equal(t, models.StatusPending, updated.Status)

	_, applied, err = store.UpdateTransaction(ctx, "tx-1", models.TransactionUpdate{
		Transfer: &models.TransferUpdate{Leg: models.LegFee, Status: models.TransferFailed},
	})
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestStorage_UpdateTransaction_NotFound(t *testing.T) {
	store := memory.New(0)
	success := models.StatusSuccess

	_, _, err := store.UpdateTransaction(context.Background(), "missing", models.TransactionUpdate{Status: &success})

	assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
}

func TestStorage_UpdateTransaction_ConcurrentWritersSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)
	require.NoError(t, store.InsertTransaction(ctx, pendingTx("tx-1", time.Now())))

	pending := models.StatusPending
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := models.StatusSuccess
			if i%2 == 0 {
				status = models.StatusFailed
			}
			_, applied, err := store.UpdateTransaction(ctx, "tx-1", models.TransactionUpdate{
				ExpectStatus: &pending,
				Status:       &status,
			})
			assert.NoError(t, err)
			if applied {
				atomic.AddInt32(&wins, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}

func TestStorage_ListTransactions_FiltersSortsAndPaginates(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		tx := pendingTx(fmt.Sprintf("tx-%d", i), base.Add(time.Duration(i)*time.Minute))
		if i == 4 {
			tx.SenderAddress = "0xother"
		}
		require.NoError(t, store.InsertTransaction(ctx, tx))
	}

	list, err := store.ListTransactions(ctx, models.TransactionFilter{SenderAddress: "0xsender", Skip: 1, Take: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "tx-2", list[0].TransactionID)
	assert.Equal(t, "tx-1", list[1].TransactionID)

	list, err = store.ListTransactions(ctx, models.TransactionFilter{Skip: 10, Take: 2})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStorage_GetTransactionByHash(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)
	require.NoError(t, store.InsertTransaction(ctx, pendingTx("tx-1", time.Now())))

	_, err := store.GetTransactionByHash(ctx, "0xabc")
	assert.ErrorIs(t, err, repository.ErrTransactionNotFound)

	hash := "0xabc"
	_, _, err = store.UpdateTransaction(ctx, "tx-1", models.TransactionUpdate{TransactionHash: &hash})
	require.NoError(t, err)

	tx, err := store.GetTransactionByHash(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "tx-1", tx.TransactionID)
}

func TestStorage_Notifications_DedupeOrderAndRead(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)

	first := models.Notification{ID: uuid.New(), UserID: "alice", Type: models.NotificationTipSent, DedupeKey: "tx-1:tip_sent:alice"}
	second := models.Notification{ID: uuid.New(), UserID: "alice", Type: models.NotificationTransactionSuccess}

	inserted, err := store.InsertNotification(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	dup := first
	dup.ID = uuid.New()
	inserted, err = store.InsertNotification(ctx, dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	_, err = store.InsertNotification(ctx, second)
	require.NoError(t, err)

	list, err := store.ListNotifications(ctx, "alice", false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	require.NoError(t, store.SetNotificationRead(ctx, first.ID, true))
	unread, err := store.ListNotifications(ctx, "alice", true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, second.ID, unread[0].ID)

	count, err := store.MarkAllNotificationsRead(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	err = store.SetNotificationRead(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, repository.ErrNotificationNotFound)
}

func TestStorage_Notifications_Retention(t *testing.T) {
	ctx := context.Background()
	store := memory.New(2)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		id := uuid.New()
		ids = append(ids, id)
		_, err := store.InsertNotification(ctx, models.Notification{ID: id, UserID: "bob"})
		require.NoError(t, err)
	}

	list, err := store.ListNotifications(ctx, "bob", false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)

	assert.ErrorIs(t, store.SetNotificationRead(ctx, ids[0], true), repository.ErrNotificationNotFound)
}

func TestStorage_UpdateTransaction_FinalizeWithSettledNetIsRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)
	require.NoError(t, store.InsertTransaction(ctx, pendingTx("tx-1", time.Now())))

	netHash := "0xnet"
	_, applied, err := store.UpdateTransaction(ctx, "tx-1", models.TransactionUpdate{
		Transfer: &models.TransferUpdate{Leg: models.LegNet, Status: models.TransferSuccess, TransactionHash: &netHash},
	})
	require.NoError(t, err)
	require.True(t, applied)

	pending, failed := models.StatusPending, models.StatusFailed
	current, applied, err := store.UpdateTransaction(ctx, "tx-1", models.TransactionUpdate{
		ExpectStatus: &pending,
		Status:       &failed,
		Transfer:     &models.TransferUpdate{Leg: models.LegNet, Status: models.TransferFailed},
	})

	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, models.StatusPending, current.Status)
	assert.Equal(t, models.TransferSuccess, current.NetTransfer.Status)
}

func TestStorage_ListTransactions_ByUserID(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)
	alice, bob := "alice", "bob"

	sent := pendingTx("tx-1", time.Now())
	sent.SenderUserID, sent.ReceiverUserID = &alice, &bob
	anonymous := pendingTx("tx-2", time.Now())
	require.NoError(t, store.InsertTransaction(ctx, sent))
	require.NoError(t, store.InsertTransaction(ctx, anonymous))

	bySender, err := store.ListTransactions(ctx, models.TransactionFilter{SenderUserID: alice})
	require.NoError(t, err)
	require.Len(t, bySender, 1)
	assert.Equal(t, "tx-1", bySender[0].TransactionID)

	byReceiver, err := store.ListTransactions(ctx, models.TransactionFilter{ReceiverUserID: alice})
	require.NoError(t, err)
	assert.Empty(t, byReceiver)
}

func TestStorage_Users(t *testing.T) {
	ctx := context.Background()
	store := memory.New(0)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertUser(ctx, models.User{UserID: "alice", BaseWalletAddress: "0xaaa", CreatedAt: base}))
	require.NoError(t, store.InsertUser(ctx, models.User{UserID: "bob", BaseWalletAddress: "0xbbb", CreatedAt: base.Add(time.Minute)}))

	assert.ErrorIs(t, store.InsertUser(ctx, models.User{UserID: "carol", BaseWalletAddress: "0xaaa"}), repository.ErrUserAlreadyExists)
	assert.ErrorIs(t, store.InsertUser(ctx, models.User{UserID: "alice", BaseWalletAddress: "0xccc"}), repository.ErrDuplicateUser)

	u, err := store.GetUserByWallet(ctx, "0xbbb")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.UserID)

	list, err := store.ListUsers(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].UserID)

	page, err := store.ListUsers(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "bob", page[0].UserID)

	taken := "0xaaa"
	_, err = store.UpdateUser(ctx, "bob", models.UserUpdate{BaseWalletAddress: &taken})
	assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)

	fid, wallet := "42", "0xnew"
	updated, err := store.UpdateUser(ctx, "bob", models.UserUpdate{FarcasterID: &fid, BaseWalletAddress: &wallet})
	require.NoError(t, err)
	assert.Equal(t, "0xnew", updated.BaseWalletAddress)
	assert.Equal(t, "42", *updated.FarcasterID)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = store.GetUserByWallet(ctx, "0xbbb")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	require.NoError(t, store.DeleteUser(ctx, "bob"))
	assert.ErrorIs(t, store.DeleteUser(ctx, "bob"), repository.ErrUserNotFound)
	_, err = store.GetUserByID(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	// кошелек освобождается после удаления
	require.NoError(t, store.InsertUser(ctx, models.User{UserID: "dave", BaseWalletAddress: "0xnew"}))
}
