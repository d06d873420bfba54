package unit

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"tipjar/internal/domain/models"
	"tipjar/internal/middlewares"
	"tipjar/internal/repository"
	"tipjar/internal/services"
	"tipjar/internal/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create_GeneratesIDAndTimestamps(t *testing.T) {
	// Arrange
	repo := new(mocks.UserRepositoryMock)
	repo.On("InsertUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		_, err := uuid.Parse(u.UserID)
		return err == nil && u.BaseWalletAddress == "0xaaa" && !u.CreatedAt.IsZero() && u.UpdatedAt.Equal(u.CreatedAt)
	})).Return(nil).Once()

	service := services.NewUserService(slog.Default(), repo, new(mocks.TransactionRepositoryMock), time.Second)

	// Act
	u, err := service.Create(context.Background(), models.User{BaseWalletAddress: " 0xaaa "})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, u.UserID)
	assert.Equal(t, "0xaaa", u.BaseWalletAddress)
	repo.AssertExpectations(t)
}

func TestUserService_Create_KeepsGivenID(t *testing.T) {
	// Arrange
	repo := new(mocks.UserRepositoryMock)
	repo.On("InsertUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.UserID == "alice"
	})).Return(nil).Once()

	service := services.NewUserService(slog.Default(), repo, new(mocks.TransactionRepositoryMock), time.Second)

	// Act
	u, err := service.Create(context.Background(), models.User{UserID: "alice", BaseWalletAddress: "0xaaa"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alice", u.UserID)
	repo.AssertExpectations(t)
}

func TestUserService_Create_Errors(t *testing.T) {
	// Arrange
	repo := new(mocks.UserRepositoryMock)
	repo.On("InsertUser", mock.Anything, mock.Anything).
		Return(fmt.Errorf("storage.memory.InsertUser: %w", repository.ErrUserAlreadyExists)).Once()

	service := services.NewUserService(slog.Default(), repo, new(mocks.TransactionRepositoryMock), time.Second)

	// Act
	_, errMissing := service.Create(context.Background(), models.User{UserID: "alice", BaseWalletAddress: "  "})
	_, errTaken := service.Create(context.Background(), models.User{BaseWalletAddress: "0xaaa"})

	// Assert
	assert.ErrorIs(t, errMissing, middlewares.ErrEmptyField)
	assert.ErrorIs(t, errTaken, repository.ErrUserAlreadyExists)
	repo.AssertNumberOfCalls(t, "InsertUser", 1)
}

func TestUserService_Get_IncludesTips(t *testing.T) {
	sent := []models.TipTransaction{{TransactionID: "s1"}}
	received := []models.TipTransaction{{TransactionID: "r1"}, {TransactionID: "r2"}}

	cases := []struct {
		include      models.TipsInclude
		wantSent     int
		wantReceived int
	}{
		{include: "", wantSent: 0, wantReceived: 0},
		{include: models.IncludeSent, wantSent: 1},
		{include: models.IncludeReceived, wantReceived: 2},
		{include: models.IncludeAll, wantSent: 1, wantReceived: 2},
		{include: "everything"},
	}

	for _, tc := range cases {
		t.Run(string(tc.include), func(t *testing.T) {
			// Arrange
			repo := new(mocks.UserRepositoryMock)
			repo.On("GetUserByID", mock.Anything, "alice").
				Return(models.User{UserID: "alice", BaseWalletAddress: "0xaaa"}, nil).Once()

			tips := new(mocks.TransactionRepositoryMock)
			tips.On("ListTransactions", mock.Anything, models.TransactionFilter{SenderUserID: "alice"}).Return(sent, nil).Maybe()
			tips.On("ListTransactions", mock.Anything, models.TransactionFilter{ReceiverUserID: "alice"}).Return(received, nil).Maybe()

			service := services.NewUserService(slog.Default(), repo, tips, time.Second)

			// Act
			profile, err := service.Get(context.Background(), "alice", tc.include)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "0xaaa", profile.BaseWalletAddress)
			assert.Len(t, profile.SentTips, tc.wantSent)
			assert.Len(t, profile.ReceivedTips, tc.wantReceived)
			if tc.wantSent == 0 && tc.wantReceived == 0 {
				tips.AssertNotCalled(t, "ListTransactions", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUserService_Get_NotFound(t *testing.T) {
	// Arrange
	repo := new(mocks.UserRepositoryMock)
	repo.On("GetUserByID", mock.Anything, "ghost").
		Return(models.User{}, fmt.Errorf("storage.memory.GetUserByID: %w", repository.ErrUserNotFound)).Once()
	tips := new(mocks.TransactionRepositoryMock)

	service := services.NewUserService(slog.Default(), repo, tips, time.Second)

	// Act
	_, err := service.Get(context.Background(), "ghost", models.IncludeAll)

	// Assert
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	tips.AssertNotCalled(t, "ListTransactions", mock.Anything, mock.Anything)
}

func TestUserService_List(t *testing.T) {
	// Arrange
	repo := new(mocks.UserRepositoryMock)
	repo.On("GetUserByWallet", mock.Anything, "0xaaa").Return(models.User{UserID: "alice"}, nil).Once()
	repo.On("GetUserByWallet", mock.Anything, "0xnobody").
		Return(models.User{}, fmt.Errorf("storage.memory.GetUserByWallet: %w", repository.ErrUserNotFound)).Once()
	repo.On("ListUsers", mock.Anything, 5, 10).Return([]models.User{{UserID: "alice"}, {UserID: "bob"}}, nil).Once()

	service := services.NewUserService(slog.Default(), repo, new(mocks.TransactionRepositoryMock), time.Second)

	// Act
	byWallet, errWallet := service.List(context.Background(), " 0xaaa ", 0, 0)
	missing, errMissing := service.List(context.Background(), "0xnobody", 0, 0)
	page, errPage := service.List(context.Background(), "", 5, 0)
	_, errPagination := service.List(context.Background(), "", -1, 0)

	// Assert
	require.NoError(t, errWallet)
	require.Len(t, byWallet, 1)
	assert.Equal(t, "alice", byWallet[0].UserID)
	require.NoError(t, errMissing)
	assert.Empty(t, missing)
	require.NoError(t, errPage)
	assert.Len(t, page, 2)
	assert.ErrorIs(t, errPagination, middlewares.ErrInvalidPagination)
	repo.AssertExpectations(t)
}

func TestUserService_Update(t *testing.T) {
	// Arrange
	repo := new(mocks.UserRepositoryMock)
	repo.On("UpdateUser", mock.Anything, "alice", mock.MatchedBy(func(upd models.UserUpdate) bool {
		return upd.BaseWalletAddress != nil && *upd.BaseWalletAddress == "0xnew" && upd.FarcasterID == nil
	})).Return(models.User{UserID: "alice", BaseWalletAddress: "0xnew"}, nil).Once()

	service := services.NewUserService(slog.Default(), repo, new(mocks.TransactionRepositoryMock), time.Second)

	wallet, blank := " 0xnew ", " "

	// Act
	u, err := service.Update(context.Background(), "alice", models.UserUpdate{BaseWalletAddress: &wallet})
	_, errBlank := service.Update(context.Background(), "alice", models.UserUpdate{BaseWalletAddress: &blank})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0xnew", u.BaseWalletAddress)
	assert.ErrorIs(t, errBlank, middlewares.ErrEmptyField)
	repo.AssertNumberOfCalls(t, "UpdateUser", 1)
}

func TestUserService_Delete(t *testing.T) {
	// Arrange
	repo := new(mocks.UserRepositoryMock)
	repo.On("DeleteUser", mock.Anything, "alice").Return(nil).Once()
	repo.On("DeleteUser", mock.Anything, "ghost").
		Return(fmt.Errorf("storage.memory.DeleteUser: %w", repository.ErrUserNotFound)).Once()

	service := services.NewUserService(slog.Default(), repo, new(mocks.TransactionRepositoryMock), time.Second)

	// Act
	err := service.Delete(context.Background(), "alice")
	errMissing := service.Delete(context.Background(), "ghost")

	// Assert
	require.NoError(t, err)
	assert.ErrorIs(t, errMissing, repository.ErrUserNotFound)
	repo.AssertExpectations(t)
}
