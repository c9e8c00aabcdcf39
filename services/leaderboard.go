package services

import (
	"github.com/omkarchillalndss/cryptominerpp/db"
	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/shopspring/decimal"
)

const leaderboardSize = 100

type LeaderboardEntry struct {
	Rank    int             `json:"rank"`
	Wallet  string          `json:"wallet"`
	Balance decimal.Decimal `json:"balance"`
}

func (e *Engine) Leaderboard() ([]*LeaderboardEntry, error) {
	accounts, err := e.stores.Accounts.Leaderboard(leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(accounts))
	for i, account := range accounts {
		entries = append(entries, &LeaderboardEntry{
			Rank:    i + 1,
			Wallet:  account.Wallet,
			Balance: account.Balance,
		})
	}

	return entries, nil
}

func (e *Engine) DashboardStats() (*db.DashboardStats, error) {
	return e.stores.Stats.Collect()
}

func (e *Engine) Notifications(wallet string, limit int) ([]*model.Notification, error) {
	if _, err := e.stores.Accounts.GetByWallet(wallet); err != nil {
		return nil, err
	}

	return e.stores.Notifications.ListByWallet(wallet, limit)
}

func (e *Engine) MarkNotificationsRead(wallet string) error {
	if _, err := e.stores.Accounts.GetByWallet(wallet); err != nil {
		return err
	}

	return e.stores.Notifications.MarkAllRead(wallet)
}
