package middlewares

import (
	"fmt"
	"strings"

	"tipjar/internal/domain/models"
)

func CheckUser(u models.User) error {
	if strings.TrimSpace(u.BaseWalletAddress) == "" {
		return fmt.Errorf("%w: baseWalletAddress", ErrEmptyField)
	}

	return nil
}

func CheckUserUpdate(upd models.UserUpdate) error {
	if upd.BaseWalletAddress != nil && strings.TrimSpace(*upd.BaseWalletAddress) == "" {
		return fmt.Errorf("%w: baseWalletAddress", ErrEmptyField)
	}

	return nil
}
