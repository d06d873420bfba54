package mocks

import (
	"context"

	"tipjar/internal/domain/models"

	"github.com/stretchr/testify/mock"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) InsertUser(ctx context.Context, u models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepositoryMock) GetUserByWallet(ctx context.Context, wallet string) (models.User, error) {
	args := m.Called(ctx, wallet)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepositoryMock) ListUsers(ctx context.Context, skip, take int) ([]models.User, error) {
	args := m.Called(ctx, skip, take)
	items, _ := args.Get(0).([]models.User)
	return items, args.Error(1)
}

func (m *UserRepositoryMock) UpdateUser(ctx context.Context, userID string, upd models.UserUpdate) (models.User, error) {
	args := m.Called(ctx, userID, upd)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepositoryMock) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) Create(ctx context.Context, u models.User) (models.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserServiceMock) Get(ctx context.Context, userID string, include models.TipsInclude) (models.UserProfile, error) {
	args := m.Called(ctx, userID, include)
	return args.Get(0).(models.UserProfile), args.Error(1)
}

func (m *UserServiceMock) GetByWallet(ctx context.Context, wallet string) (models.User, error) {
	args := m.Called(ctx, wallet)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserServiceMock) List(ctx context.Context, wallet string, skip, take int) ([]models.User, error) {
	args := m.Called(ctx, wallet, skip, take)
	items, _ := args.Get(0).([]models.User)
	return items, args.Error(1)
}

func (m *UserServiceMock) Update(ctx context.Context, userID string, upd models.UserUpdate) (models.User, error) {
	args := m.Called(ctx, userID, upd)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserServiceMock) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
