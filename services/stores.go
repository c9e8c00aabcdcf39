package services

import (
	"github.com/omkarchillalndss/cryptominerpp/db"
	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/shopspring/decimal"
)

// Store capabilities the engine depends on. The db package provides the
// MySQL/Redis implementations; tests substitute in-memory ones.

type AccountStore interface {
	Create(account *model.Account) error
	GetByWallet(wallet string) (*model.Account, error)
	GetByReferralCode(code string) (*model.Account, error)
	ApplyReferral(wallet, code string, userReward, ownerReward decimal.Decimal) (decimal.Decimal, error)
	CountReferrals(code string) (int, error)
	Leaderboard(limit int) ([]*model.Account, error)
}

type SessionStore interface {
	Create(session *model.Session) error
	GetOpen(wallet string) (*model.Session, error)
	UpgradeMultiplier(wallet string, max int, now int64) (int, error)
	SettleAndCredit(sessionID, wallet string, awarded decimal.Decimal, settledAt int64) (decimal.Decimal, error)
	Abandon(sessionID string, amount decimal.Decimal, settledAt int64) error
	ExpiredOpen(before int64, limit int) ([]*model.Session, error)
}

type BonusStore interface {
	PayOut(record *model.ReferralBonusRecord) error
	ListByReferrer(wallet string, limit int) ([]*model.ReferralBonusRecord, error)
}

type GrantStore interface {
	CountInWindow(wallet string, from, to int64) (int, error)
	Grant(grant *model.AdRewardGrant) (decimal.Decimal, error)
}

type NotificationStore interface {
	Append(n *model.Notification) error
	ListByWallet(wallet string, limit int) ([]*model.Notification, error)
	MarkAllRead(wallet string) error
}

type ReceiptStore interface {
	SaveClaimReceipt(key string, receipt *model.ClaimReceipt) error
	GetClaimReceipt(key string) (*model.ClaimReceipt, error)
	SaveAdRewardReceipt(key string, receipt *model.AdRewardReceipt) error
	GetAdRewardReceipt(key string) (*model.AdRewardReceipt, error)
}

type ActivityStore interface {
	Append(a *model.Activity) error
	Recent(limit int) ([]*model.Activity, error)
}

type StatsCollector interface {
	Collect() (*db.DashboardStats, error)
}

// Stores bundles everything durable the engine talks to.
type Stores struct {
	Accounts      AccountStore
	Sessions      SessionStore
	Bonuses       BonusStore
	Grants        GrantStore
	Notifications NotificationStore
	Receipts      ReceiptStore
	Activities    ActivityStore
	Stats         StatsCollector
}
