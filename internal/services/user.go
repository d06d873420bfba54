package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/lib/logger/sl"
	"tipjar/internal/middlewares"
	"tipjar/internal/repository"

	"github.com/google/uuid"
)

type UserRepository interface {
	InsertUser(ctx context.Context, u models.User) error
	GetUserByID(ctx context.Context, userID string) (models.User, error)
	GetUserByWallet(ctx context.Context, wallet string) (models.User, error)
	ListUsers(ctx context.Context, skip, take int) ([]models.User, error)
	UpdateUser(ctx context.Context, userID string, upd models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// TipHistory is the read side of the transaction store a user profile needs.
type TipHistory interface {
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.TipTransaction, error)
}

type UserService struct {
	log     *slog.Logger
	repo    UserRepository
	tips    TipHistory
	timeout time.Duration
	now     func() time.Time
}

func NewUserService(log *slog.Logger, repo UserRepository, tips TipHistory, timeout time.Duration) *UserService {
	return &UserService{
		log:     log,
		repo:    repo,
		tips:    tips,
		timeout: timeout,
		now:     time.Now,
	}
}

// Create registers a user. An empty userId gets a random UUID.
func (s *UserService) Create(ctx context.Context, u models.User) (models.User, error) {
	const op = "services.UserService.Create"

	u.UserID = strings.TrimSpace(u.UserID)
	u.BaseWalletAddress = strings.TrimSpace(u.BaseWalletAddress)

	log := s.log.With(
		slog.String("op", op),
		slog.String("wallet", u.BaseWalletAddress),
	)

	if err := middlewares.CheckUser(u); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	u.CreatedAt = s.now().UTC().Truncate(time.Microsecond)
	u.UpdatedAt = u.CreatedAt

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.repo.InsertUser(storeCtx, u); err != nil {
		if !errors.Is(err, repository.ErrUserAlreadyExists) && !errors.Is(err, repository.ErrDuplicateUser) {
			log.Error("failed to create user", sl.Err(err))
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user created", slog.String("user_id", u.UserID))

	return u, nil
}

// Get returns the user with the tips selected by include, newest first.
func (s *UserService) Get(ctx context.Context, userID string, include models.TipsInclude) (models.UserProfile, error) {
	const op = "services.UserService.Get"

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	u, err := s.repo.GetUserByID(storeCtx, userID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%s: %w", op, err)
	}

	profile := models.UserProfile{User: u}

	if include.Sent() {
		profile.SentTips, err = s.tips.ListTransactions(storeCtx, models.TransactionFilter{SenderUserID: u.UserID})
		if err != nil {
			return models.UserProfile{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if include.Received() {
		profile.ReceivedTips, err = s.tips.ListTransactions(storeCtx, models.TransactionFilter{ReceiverUserID: u.UserID})
		if err != nil {
			return models.UserProfile{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	return profile, nil
}

func (s *UserService) GetByWallet(ctx context.Context, wallet string) (models.User, error) {
	const op = "services.UserService.GetByWallet"

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	u, err := s.repo.GetUserByWallet(storeCtx, strings.TrimSpace(wallet))
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// List pages through all users, or looks up a single one when wallet is set.
func (s *UserService) List(ctx context.Context, wallet string, skip, take int) ([]models.User, error) {
	const op = "services.UserService.List"

	if wallet = strings.TrimSpace(wallet); wallet != "" {
		u, err := s.GetByWallet(ctx, wallet)
		if errors.Is(err, repository.ErrUserNotFound) {
			return []models.User{}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return []models.User{u}, nil
	}

	skip, take, err := middlewares.CheckPagination(skip, take)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	items, err := s.repo.ListUsers(storeCtx, skip, take)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (s *UserService) Update(ctx context.Context, userID string, upd models.UserUpdate) (models.User, error) {
	const op = "services.UserService.Update"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID),
	)

	if upd.BaseWalletAddress != nil {
		wallet := strings.TrimSpace(*upd.BaseWalletAddress)
		upd.BaseWalletAddress = &wallet
	}
	if err := middlewares.CheckUserUpdate(upd); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	u, err := s.repo.UpdateUser(storeCtx, userID, upd)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user updated")

	return u, nil
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	const op = "services.UserService.Delete"

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.repo.DeleteUser(storeCtx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user deleted", slog.String("op", op), slog.String("user_id", userID))

	return nil
}

func (s *UserService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
