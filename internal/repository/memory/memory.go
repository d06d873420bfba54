// Package memory keeps transactions, notifications and users in process memory.
// It backs local runs and is the fake the service tests are written against.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/repository"

	"github.com/google/uuid"
)

type Storage struct {
	mu           sync.RWMutex
	transactions map[string]models.TipTransaction

	nmu           sync.RWMutex
	notifications map[uuid.UUID]*models.Notification
	byUser        map[string][]uuid.UUID // oldest first
	dedupe        map[string]uuid.UUID
	retention     int

	umu     sync.RWMutex
	users   map[string]models.User
	wallets map[string]string // wallet -> user id

	now func() time.Time
}

// New creates an empty store. retention caps how many notifications are kept per user;
// zero keeps everything.
func New(retention int) *Storage {
	return &Storage{
		transactions:  make(map[string]models.TipTransaction),
		notifications: make(map[uuid.UUID]*models.Notification),
		byUser:        make(map[string][]uuid.UUID),
		dedupe:        make(map[string]uuid.UUID),
		retention:     retention,
		users:         make(map[string]models.User),
		wallets:       make(map[string]string),
		now:           time.Now,
	}
}

func (s *Storage) InsertTransaction(ctx context.Context, tx models.TipTransaction) error {
	const op = "storage.memory.InsertTransaction"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[tx.TransactionID]; ok {
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicateTransaction)
	}

	if tx.Timestamp.IsZero() {
		tx.Timestamp = s.now()
	}
	tx.UpdatedAt = tx.Timestamp
	s.transactions[tx.TransactionID] = cloneTransaction(tx)

	return nil
}

func (s *Storage) GetTransactionByID(ctx context.Context, transactionID string) (models.TipTransaction, error) {
	const op = "storage.memory.GetTransactionByID"

	if err := ctx.Err(); err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[transactionID]
	if !ok {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, repository.ErrTransactionNotFound)
	}

	return cloneTransaction(tx), nil
}

func (s *Storage) GetTransactionByHash(ctx context.Context, hash string) (models.TipTransaction, error) {
	const op = "storage.memory.GetTransactionByHash"

	if err := ctx.Err(); err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found models.TipTransaction
		ok    bool
	)
	for _, tx := range s.transactions {
		if tx.TransactionHash == nil || *tx.TransactionHash != hash {
			continue
		}
		if !ok || tx.Timestamp.After(found.Timestamp) {
			found, ok = tx, true
		}
	}
	if !ok {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, repository.ErrTransactionNotFound)
	}

	return cloneTransaction(found), nil
}

func (s *Storage) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.TipTransaction, error) {
	const op = "storage.memory.ListTransactions"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.mu.RLock()
	matched := make([]models.TipTransaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if filter.SenderAddress != "" && tx.SenderAddress != filter.SenderAddress {
			continue
		}
		if filter.ReceiverAddress != "" && tx.ReceiverAddress != filter.ReceiverAddress {
			continue
		}
		if filter.SenderUserID != "" && (tx.SenderUserID == nil || *tx.SenderUserID != filter.SenderUserID) {
			continue
		}
		if filter.ReceiverUserID != "" && (tx.ReceiverUserID == nil || *tx.ReceiverUserID != filter.ReceiverUserID) {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		matched = append(matched, cloneTransaction(tx))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].TransactionID > matched[j].TransactionID
		}
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if filter.Skip >= len(matched) {
		return []models.TipTransaction{}, nil
	}
	matched = matched[filter.Skip:]
	if filter.Take > 0 && filter.Take < len(matched) {
		matched = matched[:filter.Take]
	}

	return matched, nil
}

func (s *Storage) UpdateTransaction(ctx context.Context, transactionID string, upd models.TransactionUpdate) (models.TipTransaction, bool, error) {
	const op = "storage.memory.UpdateTransaction"

	if err := ctx.Err(); err != nil {
		return models.TipTransaction{}, false, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[transactionID]
	if !ok {
		return models.TipTransaction{}, false, fmt.Errorf("%s: %w", op, repository.ErrTransactionNotFound)
	}

	if upd.ExpectStatus != nil && tx.Status != *upd.ExpectStatus {
		return cloneTransaction(tx), false, nil
	}
	if upd.Transfer != nil && tx.Leg(upd.Transfer.Leg).Status != models.TransferPending {
		return cloneTransaction(tx), false, nil
	}

	if upd.Status != nil {
		tx.Status = *upd.Status
	}
	if upd.TransactionHash != nil {
		tx.TransactionHash = stringPtr(*upd.TransactionHash)
	}
	if upd.Transfer != nil {
		transfer := models.Transfer{Status: upd.Transfer.Status}
		if upd.Transfer.TransactionHash != nil {
			transfer.TransactionHash = stringPtr(*upd.Transfer.TransactionHash)
		}
		if upd.Transfer.Leg == models.LegFee {
			tx.FeeTransfer = transfer
		} else {
			tx.NetTransfer = transfer
		}
	}
	tx.UpdatedAt = s.now()
	s.transactions[transactionID] = tx

	return cloneTransaction(tx), true, nil
}

func (s *Storage) InsertNotification(ctx context.Context, n models.Notification) (bool, error) {
	const op = "storage.memory.InsertNotification"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.nmu.Lock()
	defer s.nmu.Unlock()

	if n.DedupeKey != "" {
		if _, ok := s.dedupe[n.DedupeKey]; ok {
			return false, nil
		}
		s.dedupe[n.DedupeKey] = n.ID
	}

	stored := n
	stored.Data = cloneData(n.Data)
	s.notifications[n.ID] = &stored
	s.byUser[n.UserID] = append(s.byUser[n.UserID], n.ID)

	if s.retention > 0 && len(s.byUser[n.UserID]) > s.retention {
		excess := len(s.byUser[n.UserID]) - s.retention
		for _, id := range s.byUser[n.UserID][:excess] {
			delete(s.notifications, id)
		}
		s.byUser[n.UserID] = append([]uuid.UUID(nil), s.byUser[n.UserID][excess:]...)
	}

	return true, nil
}

func (s *Storage) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	const op = "storage.memory.ListNotifications"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.nmu.RLock()
	defer s.nmu.RUnlock()

	ids := s.byUser[userID]
	result := make([]models.Notification, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		n := s.notifications[ids[i]]
		if unreadOnly && n.Read {
			continue
		}
		item := *n
		item.Data = cloneData(n.Data)
		result = append(result, item)
	}

	return result, nil
}

func (s *Storage) SetNotificationRead(ctx context.Context, id uuid.UUID, read bool) error {
	const op = "storage.memory.SetNotificationRead"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.nmu.Lock()
	defer s.nmu.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrNotificationNotFound)
	}
	n.Read = read

	return nil
}

func (s *Storage) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	const op = "storage.memory.MarkAllNotificationsRead"

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.nmu.Lock()
	defer s.nmu.Unlock()

	var count int64
	for _, id := range s.byUser[userID] {
		if n := s.notifications[id]; !n.Read {
			n.Read = true
			count++
		}
	}

	return count, nil
}

func cloneTransaction(tx models.TipTransaction) models.TipTransaction {
	tx.TransactionHash = clonePtr(tx.TransactionHash)
	tx.NetTransfer.TransactionHash = clonePtr(tx.NetTransfer.TransactionHash)
	tx.FeeTransfer.TransactionHash = clonePtr(tx.FeeTransfer.TransactionHash)
	tx.SenderUserID = clonePtr(tx.SenderUserID)
	tx.ReceiverUserID = clonePtr(tx.ReceiverUserID)
	return tx
}

func cloneData(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return nil
	}
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	return stringPtr(*p)
}

func stringPtr(s string) *string {
	return &s
}
