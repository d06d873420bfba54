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
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	usersTable = "users"

	walletConstraint = "users_base_wallet_address_key"
)

var userColumns = []string{
	"user_id",
	"farcaster_id",
	"base_wallet_address",
	"created_at",
	"updated_at",
}

func (s *Storage) InsertUser(ctx context.Context, u models.User) error {
	const op = "storage.Postgres.InsertUser"

	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	sql, args, err := squirrel.Insert(usersTable).
		Columns(userColumns...).
		Values(u.UserID, u.FarcasterID, u.BaseWalletAddress, createdAt, createdAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("%s: %w", op, userConflict(err))
	}

	return nil
}

func (s *Storage) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	const op = "storage.Postgres.GetUserByID"

	u, err := s.getUser(ctx, squirrel.Eq{"user_id": userID})
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func (s *Storage) GetUserByWallet(ctx context.Context, wallet string) (models.User, error) {
	const op = "storage.Postgres.GetUserByWallet"

	u, err := s.getUser(ctx, squirrel.Eq{"base_wallet_address": wallet})
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func (s *Storage) ListUsers(ctx context.Context, skip, take int) ([]models.User, error) {
	const op = "storage.Postgres.ListUsers"

	query := squirrel.Select(userColumns...).
		From(usersTable).
		OrderBy("created_at", "user_id").
		Offset(uint64(skip)).
		PlaceholderFormat(squirrel.Dollar)
	if take > 0 {
		query = query.Limit(uint64(take))
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

	items := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return items, nil
}

func (s *Storage) UpdateUser(ctx context.Context, userID string, upd models.UserUpdate) (models.User, error) {
	const op = "storage.Postgres.UpdateUser"

	query := squirrel.Update(usersTable).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID}).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar)
	if upd.FarcasterID != nil {
		query = query.Set("farcaster_id", *upd.FarcasterID)
	}
	if upd.BaseWalletAddress != nil {
		query = query.Set("base_wallet_address", *upd.BaseWalletAddress)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	u, err := scanUser(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, userConflict(err))
	}

	return u, nil
}

func (s *Storage) DeleteUser(ctx context.Context, userID string) error {
	const op = "storage.Postgres.DeleteUser"

	sql, args, err := squirrel.Delete(usersTable).
		Where(squirrel.Eq{"user_id": userID}).
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
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	return nil
}

func (s *Storage) getUser(ctx context.Context, where squirrel.Eq) (models.User, error) {
	sql, args, err := squirrel.Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return models.User{}, err
	}

	u, err := scanUser(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, repository.ErrUserNotFound
		}
		return models.User{}, classify(err)
	}

	return u, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.FarcasterID, &u.BaseWalletAddress, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// userConflict tells a taken wallet from a taken user id.
func userConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return classify(err)
	}
	if pgErr.ConstraintName == walletConstraint {
		return repository.ErrUserAlreadyExists
	}
	return repository.ErrDuplicateUser
}
