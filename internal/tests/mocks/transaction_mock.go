package mocks

import (
	"context"

	"tipjar/internal/domain/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type TransactionRepositoryMock struct {
	mock.Mock
}

func (m *TransactionRepositoryMock) InsertTransaction(ctx context.Context, tx models.TipTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepositoryMock) GetTransactionByID(ctx context.Context, transactionID string) (models.TipTransaction, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(models.TipTransaction), args.Error(1)
}

func (m *TransactionRepositoryMock) GetTransactionByHash(ctx context.Context, hash string) (models.TipTransaction, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(models.TipTransaction), args.Error(1)
}

func (m *TransactionRepositoryMock) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.TipTransaction, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]models.TipTransaction)
	return items, args.Error(1)
}

func (m *TransactionRepositoryMock) UpdateTransaction(ctx context.Context, transactionID string,
	upd models.TransactionUpdate) (models.TipTransaction, bool, error) {
	args := m.Called(ctx, transactionID, upd)
	return args.Get(0).(models.TipTransaction), args.Bool(1), args.Error(2)
}

type TransactionNotifierMock struct {
	mock.Mock
}

func (m *TransactionNotifierMock) OnCreated(ctx context.Context, tx models.TipTransaction) {
	m.Called(ctx, tx)
}

func (m *TransactionNotifierMock) OnFinalized(ctx context.Context, tx models.TipTransaction) {
	m.Called(ctx, tx)
}

type FeePolicyMock struct {
	mock.Mock
}

func (m *FeePolicyMock) ComputeSplit(amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(amount)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// TransactionServiceMock stands in for services.TransactionService in handler and consumer tests.
type TransactionServiceMock struct {
	mock.Mock
}

func (m *TransactionServiceMock) Create(ctx context.Context, intent models.TipIntent) (models.TipTransaction, error) {
	args := m.Called(ctx, intent)
	return args.Get(0).(models.TipTransaction), args.Error(1)
}

func (m *TransactionServiceMock) Reconcile(ctx context.Context, transactionID string, outcome models.TransactionStatus,
	hash string) (models.TipTransaction, error) {
	args := m.Called(ctx, transactionID, outcome, hash)
	return args.Get(0).(models.TipTransaction), args.Error(1)
}

func (m *TransactionServiceMock) ReconcileTransfer(ctx context.Context, transactionID string, leg models.TransferLeg,
	outcome models.TransactionStatus, hash string) (models.TipTransaction, error) {
	args := m.Called(ctx, transactionID, leg, outcome, hash)
	return args.Get(0).(models.TipTransaction), args.Error(1)
}

func (m *TransactionServiceMock) GetByID(ctx context.Context, transactionID string) (models.TipTransaction, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(models.TipTransaction), args.Error(1)
}

func (m *TransactionServiceMock) GetByHash(ctx context.Context, hash string) (models.TipTransaction, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(models.TipTransaction), args.Error(1)
}

func (m *TransactionServiceMock) List(ctx context.Context, filter models.TransactionFilter) ([]models.TipTransaction, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]models.TipTransaction)
	return items, args.Error(1)
}
