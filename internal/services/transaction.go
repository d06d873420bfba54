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
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	InsertTransaction(ctx context.Context, tx models.TipTransaction) error
	GetTransactionByID(ctx context.Context, transactionID string) (models.TipTransaction, error)
	GetTransactionByHash(ctx context.Context, hash string) (models.TipTransaction, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.TipTransaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, upd models.TransactionUpdate) (models.TipTransaction, bool, error)
}

type FeePolicy interface {
	ComputeSplit(amount decimal.Decimal) (fee, net decimal.Decimal, err error)
}

type TransactionNotifier interface {
	OnCreated(ctx context.Context, tx models.TipTransaction)
	OnFinalized(ctx context.Context, tx models.TipTransaction)
}

// TransactionService owns the tip lifecycle: pending on create, then exactly one move to a
// terminal status. The store's conditional update is the only serialization point.
type TransactionService struct {
	log          *slog.Logger
	repo         TransactionRepository
	fees         FeePolicy
	notifier     TransactionNotifier
	feeRecipient string
	timeout      time.Duration

	now   func() time.Time
	newID func() string
}

func NewTransactionService(log *slog.Logger, repo TransactionRepository, fees FeePolicy, notifier TransactionNotifier,
	feeRecipient string, timeout time.Duration) *TransactionService {
	return &TransactionService{
		log:          log,
		repo:         repo,
		fees:         fees,
		notifier:     notifier,
		feeRecipient: feeRecipient,
		timeout:      timeout,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

func (s *TransactionService) Create(ctx context.Context, intent models.TipIntent) (models.TipTransaction, error) {
	const op = "services.TransactionService.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("sender", intent.SenderAddress),
		slog.String("receiver", intent.ReceiverAddress),
	)

	if err := middlewares.CheckTipIntent(intent); err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}

	feeAmount, netAmount, err := s.fees.ComputeSplit(intent.AmountUSD)
	if err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}

	transactionID := strings.TrimSpace(intent.TransactionID)
	if transactionID == "" {
		transactionID = s.newID()
	}

	feeTransfer := models.Transfer{Status: models.TransferPending}
	if feeAmount.IsZero() {
		feeTransfer.Status = models.TransferSkipped
	}

	tx := models.TipTransaction{
		TransactionID:       transactionID,
		SenderAddress:       intent.SenderAddress,
		ReceiverAddress:     intent.ReceiverAddress,
		AmountUSD:           intent.AmountUSD,
		FeeAmountUSD:        feeAmount,
		NetAmountUSD:        netAmount,
		AmountUSDC:          intent.AmountUSDC,
		FeeRecipientAddress: s.feeRecipient,
		Status:              models.StatusPending,
		NetTransfer:         models.Transfer{Status: models.TransferPending},
		FeeTransfer:         feeTransfer,
		SenderUserID:        intent.SenderUserID,
		ReceiverUserID:      intent.ReceiverUserID,
		Timestamp:           s.now().UTC().Truncate(time.Microsecond),
	}
	tx.UpdatedAt = tx.Timestamp

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	log.Info("creating tip transaction", slog.String("transaction_id", transactionID))

	if err := s.repo.InsertTransaction(storeCtx, tx); err != nil {
		log.Error("failed to create tip transaction", sl.Err(err))
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("tip transaction created",
		slog.String("transaction_id", transactionID),
		slog.String("fee", feeAmount.StringFixed(2)),
		slog.String("net", netAmount.StringFixed(2)),
	)

	s.notifier.OnCreated(ctx, tx)

	if intent.Status.Terminal() {
		// запись уже создана, повтор запроса получил бы 409
		reconciled, err := s.Reconcile(ctx, transactionID, intent.Status, intent.TransactionHash)
		if err != nil {
			log.Error("created tip left pending, initial status not applied",
				slog.String("transaction_id", transactionID),
				slog.String("status", string(intent.Status)),
				sl.Err(err),
			)
			return tx, nil
		}
		return reconciled, nil
	}

	return tx, nil
}

// Reconcile applies a confirmation for the whole tip. A record that is already terminal is
// returned unchanged; a contradicting outcome is logged and swallowed.
func (s *TransactionService) Reconcile(ctx context.Context, transactionID string, outcome models.TransactionStatus,
	hash string) (models.TipTransaction, error) {
	const op = "services.TransactionService.Reconcile"

	log := s.log.With(
		slog.String("op", op),
		slog.String("transaction_id", transactionID),
		slog.String("outcome", string(outcome)),
	)

	if err := middlewares.CheckReconcile(transactionID, outcome); err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	// статус и основной перевод меняются одним CAS, иначе они могут разойтись
	pending := models.StatusPending
	upd := models.TransactionUpdate{
		ExpectStatus: &pending,
		Status:       &outcome,
		Transfer:     &models.TransferUpdate{Leg: models.LegNet, Status: models.TransferStatus(outcome)},
	}
	if hash != "" {
		upd.TransactionHash = &hash
		upd.Transfer.TransactionHash = &hash
	}

	tx, applied, err := s.repo.UpdateTransaction(storeCtx, transactionID, upd)
	if err != nil {
		log.Error("failed to reconcile transaction", sl.Err(err))
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}
	if applied {
		log.Info("transaction finalized")
		s.notifier.OnFinalized(ctx, tx)
		return tx, nil
	}
	if tx.Status.Terminal() {
		s.logNoop(log, tx, outcome)
		return tx, nil
	}

	// the net transfer was already settled on its own, the tip may only follow it
	net := tx.NetTransfer
	if net.Status != models.TransferStatus(outcome) ||
		(hash != "" && net.TransactionHash != nil && *net.TransactionHash != hash) {
		log.Warn("anomalous reconciliation: net transfer already settled",
			slog.String("net_status", string(net.Status)),
		)
		return tx, nil
	}

	final := models.TransactionUpdate{ExpectStatus: &pending, Status: &outcome}
	switch {
	case net.TransactionHash != nil:
		final.TransactionHash = net.TransactionHash
	case hash != "":
		final.TransactionHash = &hash
	}

	updated, applied, err := s.repo.UpdateTransaction(storeCtx, transactionID, final)
	if err != nil {
		log.Error("failed to reconcile transaction", sl.Err(err))
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}
	if !applied {
		s.logNoop(log, updated, outcome)
		return updated, nil
	}

	log.Info("transaction finalized")

	s.notifier.OnFinalized(ctx, updated)

	return updated, nil
}

// ReconcileTransfer records the outcome of one of the two transfers. The tip is finalized once
// a required transfer failed or every required transfer succeeded.
func (s *TransactionService) ReconcileTransfer(ctx context.Context, transactionID string, leg models.TransferLeg,
	outcome models.TransactionStatus, hash string) (models.TipTransaction, error) {
	const op = "services.TransactionService.ReconcileTransfer"

	log := s.log.With(
		slog.String("op", op),
		slog.String("transaction_id", transactionID),
		slog.String("leg", string(leg)),
		slog.String("outcome", string(outcome)),
	)

	if err := middlewares.CheckReconcile(transactionID, outcome); err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := middlewares.CheckTransferLeg(leg); err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	legStatus := models.TransferStatus(outcome)
	upd := models.TransactionUpdate{Transfer: &models.TransferUpdate{Leg: leg, Status: legStatus}}
	if hash != "" {
		upd.Transfer.TransactionHash = &hash
	}

	tx, applied, err := s.repo.UpdateTransaction(storeCtx, transactionID, upd)
	if err != nil {
		log.Error("failed to record transfer outcome", sl.Err(err))
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}

	if applied {
		log.Info("transfer outcome recorded")
	} else if current := tx.Leg(leg); current.Status != legStatus {
		log.Warn("anomalous reconciliation: transfer already settled",
			slog.String("current", string(current.Status)),
		)
	} else {
		log.Info("transfer outcome already recorded")
	}

	// a retry still completes a finalization that an earlier attempt did not reach
	if tx.Status.Terminal() {
		return tx, nil
	}
	parent, settled := settledOutcome(tx)
	if !settled {
		log.Info("waiting for remaining transfer")
		return tx, nil
	}

	final := models.TransactionUpdate{ExpectStatus: statusPtr(models.StatusPending), Status: &parent}
	if tx.NetTransfer.TransactionHash != nil {
		final.TransactionHash = tx.NetTransfer.TransactionHash
	}

	updated, applied, err := s.repo.UpdateTransaction(storeCtx, transactionID, final)
	if err != nil {
		log.Error("failed to finalize transaction", sl.Err(err))
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}
	if !applied {
		s.logNoop(log, updated, parent)
		return updated, nil
	}

	log.Info("transaction finalized", slog.String("status", string(parent)))

	s.notifier.OnFinalized(ctx, updated)

	return updated, nil
}

func (s *TransactionService) GetByID(ctx context.Context, transactionID string) (models.TipTransaction, error) {
	const op = "services.TransactionService.GetByID"

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	tx, err := s.repo.GetTransactionByID(storeCtx, transactionID)
	if err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}

	return tx, nil
}

func (s *TransactionService) GetByHash(ctx context.Context, hash string) (models.TipTransaction, error) {
	const op = "services.TransactionService.GetByHash"

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	tx, err := s.repo.GetTransactionByHash(storeCtx, hash)
	if err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}

	return tx, nil
}

func (s *TransactionService) List(ctx context.Context, filter models.TransactionFilter) ([]models.TipTransaction, error) {
	const op = "services.TransactionService.List"

	skip, take, err := middlewares.CheckPagination(filter.Skip, filter.Take)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%s: %w: %q", op, middlewares.ErrInvalidStatus, filter.Status)
	}
	filter.Skip, filter.Take = skip, take

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	items, err := s.repo.ListTransactions(storeCtx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (s *TransactionService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *TransactionService) logNoop(log *slog.Logger, tx models.TipTransaction, requested models.TransactionStatus) {
	if tx.Status != requested {
		log.Warn("anomalous reconciliation: transaction already terminal",
			slog.String("current", string(tx.Status)),
			slog.String("requested", string(requested)),
		)
		return
	}

	log.Info("transaction already reconciled")
}

func settledOutcome(tx models.TipTransaction) (models.TransactionStatus, bool) {
	settled := true
	for _, transfer := range []models.Transfer{tx.NetTransfer, tx.FeeTransfer} {
		switch transfer.Status {
		case models.TransferFailed:
			return models.StatusFailed, true
		case models.TransferPending:
			settled = false
		}
	}

	if !settled {
		return "", false
	}
	return models.StatusSuccess, true
}

func statusPtr(s models.TransactionStatus) *models.TransactionStatus {
	return &s
}
