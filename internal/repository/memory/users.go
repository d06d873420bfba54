package memory

import (
	"context"
	"fmt"
	"sort"

	"tipjar/internal/domain/models"
	"tipjar/internal/repository"
)

func (s *Storage) InsertUser(ctx context.Context, u models.User) error {
	const op = "storage.memory.InsertUser"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.umu.Lock()
	defer s.umu.Unlock()

	if _, ok := s.users[u.UserID]; ok {
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicateUser)
	}
	if _, ok := s.wallets[u.BaseWalletAddress]; ok {
		return fmt.Errorf("%s: %w", op, repository.ErrUserAlreadyExists)
	}

	now := s.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = u.CreatedAt

	s.users[u.UserID] = cloneUser(u)
	s.wallets[u.BaseWalletAddress] = u.UserID

	return nil
}

func (s *Storage) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	const op = "storage.memory.GetUserByID"

	if err := ctx.Err(); err != nil {
		return models.User{}, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.umu.RLock()
	defer s.umu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	return cloneUser(u), nil
}

func (s *Storage) GetUserByWallet(ctx context.Context, wallet string) (models.User, error) {
	const op = "storage.memory.GetUserByWallet"

	if err := ctx.Err(); err != nil {
		return models.User{}, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.umu.RLock()
	defer s.umu.RUnlock()

	id, ok := s.wallets[wallet]
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	return cloneUser(s.users[id]), nil
}

// ListUsers returns users in registration order.
func (s *Storage) ListUsers(ctx context.Context, skip, take int) ([]models.User, error) {
	const op = "storage.memory.ListUsers"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.umu.RLock()
	items := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		items = append(items, cloneUser(u))
	}
	s.umu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].UserID < items[j].UserID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	if skip >= len(items) {
		return []models.User{}, nil
	}
	items = items[skip:]
	if take > 0 && take < len(items) {
		items = items[:take]
	}

	return items, nil
}

func (s *Storage) UpdateUser(ctx context.Context, userID string, upd models.UserUpdate) (models.User, error) {
	const op = "storage.memory.UpdateUser"

	if err := ctx.Err(); err != nil {
		return models.User{}, fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.umu.Lock()
	defer s.umu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	if upd.BaseWalletAddress != nil && *upd.BaseWalletAddress != u.BaseWalletAddress {
		if _, taken := s.wallets[*upd.BaseWalletAddress]; taken {
			return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserAlreadyExists)
		}
		delete(s.wallets, u.BaseWalletAddress)
		u.BaseWalletAddress = *upd.BaseWalletAddress
		s.wallets[u.BaseWalletAddress] = u.UserID
	}
	if upd.FarcasterID != nil {
		id := *upd.FarcasterID
		u.FarcasterID = &id
	}
	u.UpdatedAt = s.now()

	s.users[userID] = u

	return cloneUser(u), nil
}

func (s *Storage) DeleteUser(ctx context.Context, userID string) error {
	const op = "storage.memory.DeleteUser"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %v", op, repository.ErrStoreUnavailable, err)
	}

	s.umu.Lock()
	defer s.umu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	delete(s.wallets, u.BaseWalletAddress)
	delete(s.users, userID)

	return nil
}

func cloneUser(u models.User) models.User {
	if u.FarcasterID != nil {
		id := *u.FarcasterID
		u.FarcasterID = &id
	}
	return u
}
