package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"tipjar/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrations embed.FS

const uniqueViolation = "23505"

type Storage struct {
	db *pgxpool.Pool
}

func NewPostgres(ctx context.Context, conn string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := pgxpool.New(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Migrate applies the embedded schema files in lexical order. Every file is idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgres.Migrate"

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	sort.Strings(files)

	for _, name := range files {
		body, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", op, name, err)
		}

		// без аргументов pgx идет по simple protocol, так что несколько statement в одном файле ок
		if _, err := s.db.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("%s: %s: %w", op, name, classify(err))
		}
	}

	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Close() error {
	s.db.Close()
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// classify marks timeouts and connection failures as transient.
func classify(err error) error {
	var connErr *pgconn.ConnectError
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		pgconn.Timeout(err) || errors.As(err, &connErr) {
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}

	return err
}
