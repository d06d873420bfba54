package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/repository"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const transactionsTable = "tip_transactions"

var transactionColumns = []string{
	"transaction_id",
	"sender_address",
	"receiver_address",
	"amount_usd",
	"fee_usd",
	"net_usd",
	"amount_usdc",
	"fee_recipient_address",
	"status",
	"transaction_hash",
	"net_transfer_status",
	"net_transfer_hash",
	"fee_transfer_status",
	"fee_transfer_hash",
	"sender_user_id",
	"receiver_user_id",
	"created_at",
	"updated_at",
}

func (s *Storage) InsertTransaction(ctx context.Context, tx models.TipTransaction) error {
	const op = "storage.Postgres.InsertTransaction"

	createdAt := tx.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	sql, args, err := squirrel.Insert(transactionsTable).
		Columns(transactionColumns...).
		Values(
			tx.TransactionID,
			tx.SenderAddress,
			tx.ReceiverAddress,
			tx.AmountUSD,
			tx.FeeAmountUSD,
			tx.NetAmountUSD,
			tx.AmountUSDC,
			tx.FeeRecipientAddress,
			string(tx.Status),
			tx.TransactionHash,
			string(tx.NetTransfer.Status),
			tx.NetTransfer.TransactionHash,
			string(tx.FeeTransfer.Status),
			tx.FeeTransfer.TransactionHash,
			tx.SenderUserID,
			tx.ReceiverUserID,
			createdAt,
			createdAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrDuplicateTransaction)
		}

		return fmt.Errorf("%s: %w", op, classify(err))
	}

	return nil
}

func (s *Storage) GetTransactionByID(ctx context.Context, transactionID string) (models.TipTransaction, error) {
	const op = "storage.Postgres.GetTransactionByID"

	tx, err := s.getTransaction(ctx, squirrel.Eq{"transaction_id": transactionID})
	if err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}

	return tx, nil
}

func (s *Storage) GetTransactionByHash(ctx context.Context, hash string) (models.TipTransaction, error) {
	const op = "storage.Postgres.GetTransactionByHash"

	tx, err := s.getTransaction(ctx, squirrel.Eq{"transaction_hash": hash})
	if err != nil {
		return models.TipTransaction{}, fmt.Errorf("%s: %w", op, err)
	}

	return tx, nil
}

func (s *Storage) getTransaction(ctx context.Context, where squirrel.Eq) (models.TipTransaction, error) {
	sql, args, err := squirrel.Select(transactionColumns...).
		From(transactionsTable).
		Where(where).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.TipTransaction{}, err
	}

	tx, err := scanTransaction(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.TipTransaction{}, repository.ErrTransactionNotFound
		}
		return models.TipTransaction{}, classify(err)
	}

	return tx, nil
}

func (s *Storage) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.TipTransaction, error) {
	const op = "storage.Postgres.ListTransactions"

	where := squirrel.Eq{}
	if filter.SenderAddress != "" {
		where["sender_address"] = filter.SenderAddress
	}
	if filter.ReceiverAddress != "" {
		where["receiver_address"] = filter.ReceiverAddress
	}
	if filter.SenderUserID != "" {
		where["sender_user_id"] = filter.SenderUserID
	}
	if filter.ReceiverUserID != "" {
		where["receiver_user_id"] = filter.ReceiverUserID
	}
	if filter.Status != "" {
		where["status"] = string(filter.Status)
	}

	query := squirrel.Select(transactionColumns...).
		From(transactionsTable).
		OrderBy("created_at DESC", "transaction_id DESC").
		Offset(uint64(filter.Skip)).
		PlaceholderFormat(squirrel.Dollar)
	if len(where) > 0 {
		query = query.Where(where)
	}
	if filter.Take > 0 {
		query = query.Limit(uint64(filter.Take))
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

	items := make([]models.TipTransaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return items, nil
}

// UpdateTransaction runs a single conditional UPDATE. When the guards do not match no row is
// returned, and the current record is read back so the caller can see what won.
func (s *Storage) UpdateTransaction(ctx context.Context, transactionID string, upd models.TransactionUpdate) (models.TipTransaction, bool, error) {
	const op = "storage.Postgres.UpdateTransaction"

	query := squirrel.Update(transactionsTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"transaction_id": transactionID})

	if upd.ExpectStatus != nil {
		query = query.Where(squirrel.Eq{"status": string(*upd.ExpectStatus)})
	}
	if upd.Status != nil {
		query = query.Set("status", string(*upd.Status))
	}
	if upd.TransactionHash != nil {
		query = query.Set("transaction_hash", *upd.TransactionHash)
	}
	if upd.Transfer != nil {
		statusColumn, hashColumn := transferColumns(upd.Transfer.Leg)
		query = query.
			Set(statusColumn, string(upd.Transfer.Status)).
			Where(squirrel.Eq{statusColumn: string(models.TransferPending)})
		if upd.Transfer.TransactionHash != nil {
			query = query.Set(hashColumn, *upd.Transfer.TransactionHash)
		}
	}

	sql, args, err := query.
		Suffix("RETURNING " + strings.Join(transactionColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.TipTransaction{}, false, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := scanTransaction(s.db.QueryRow(ctx, sql, args...))
	if err == nil {
		return tx, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.TipTransaction{}, false, fmt.Errorf("%s: %w", op, classify(err))
	}

	current, err := s.getTransaction(ctx, squirrel.Eq{"transaction_id": transactionID})
	if err != nil {
		return models.TipTransaction{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return current, false, nil
}

func transferColumns(leg models.TransferLeg) (status, hash string) {
	if leg == models.LegFee {
		return "fee_transfer_status", "fee_transfer_hash"
	}
	return "net_transfer_status", "net_transfer_hash"
}

func scanTransaction(row pgx.Row) (models.TipTransaction, error) {
	var (
		tx                           models.TipTransaction
		status, netStatus, feeStatus string
	)

	err := row.Scan(
		&tx.TransactionID,
		&tx.SenderAddress,
		&tx.ReceiverAddress,
		&tx.AmountUSD,
		&tx.FeeAmountUSD,
		&tx.NetAmountUSD,
		&tx.AmountUSDC,
		&tx.FeeRecipientAddress,
		&status,
		&tx.TransactionHash,
		&netStatus,
		&tx.NetTransfer.TransactionHash,
		&feeStatus,
		&tx.FeeTransfer.TransactionHash,
		&tx.SenderUserID,
		&tx.ReceiverUserID,
		&tx.Timestamp,
		&tx.UpdatedAt,
	)
	if err != nil {
		return models.TipTransaction{}, err
	}

	tx.Status = models.TransactionStatus(status)
	tx.NetTransfer.Status = models.TransferStatus(netStatus)
	tx.FeeTransfer.Status = models.TransferStatus(feeStatus)

	return tx, nil
}
