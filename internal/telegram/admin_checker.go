package telegram

import (
	"slices"

	"smmpanel-bot/internal/config"
)

// AdminChecker knows who receives operator notices.
type AdminChecker struct {
	adminIDs []int64
}

func NewAdminChecker(cfg *config.TelegramConfig) *AdminChecker {
	return &AdminChecker{
		adminIDs: slices.Clone(cfg.AdminIDs),
	}
}

func (a *AdminChecker) IsAdmin(telegramID int64) bool {
	return slices.Contains(a.adminIDs, telegramID)
}

func (a *AdminChecker) AdminIDs() []int64 {
	return slices.Clone(a.adminIDs)
}
