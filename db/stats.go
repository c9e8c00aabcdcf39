package db

import (
	"database/sql"

	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalUsers      int             `json:"totalUsers"`
	OpenSessions    int             `json:"openSessions"`
	SettledSessions int             `json:"settledSessions"`
	ReferralPayouts int             `json:"referralPayouts"`
	AdRewardGrants  int             `json:"adRewardGrants"`
	TotalBalance    decimal.Decimal `json:"totalBalance"`
}

type StatsStore struct {
	db *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) Collect() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		query string
		args  []interface{}
		dest  *int
	}{
		{"SELECT COUNT(*) FROM accounts;", nil, &stats.TotalUsers},
		{"SELECT COUNT(*) FROM sessions WHERE status = ?;", []interface{}{model.StatusMining}, &stats.OpenSessions},
		{"SELECT COUNT(*) FROM sessions WHERE status = ?;", []interface{}{model.StatusSettled}, &stats.SettledSessions},
		{"SELECT COUNT(*) FROM referral_bonuses;", nil, &stats.ReferralPayouts},
		{"SELECT COUNT(*) FROM ad_reward_grants;", nil, &stats.AdRewardGrants},
	}

	for _, c := range counts {
		if err := s.db.QueryRow(c.query, c.args...).Scan(c.dest); err != nil {
			return nil, errors.Wrap(err, "collect stats")
		}
	}

	var total decimal.NullDecimal
	if err := s.db.QueryRow("SELECT SUM(balance) FROM accounts;").Scan(&total); err != nil {
		return nil, errors.Wrap(err, "sum balances")
	}
	stats.TotalBalance = total.Decimal

	return stats, nil
}
