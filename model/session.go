package model

import "github.com/shopspring/decimal"

// Session statuses as stored. A settled session is immutable history;
// a new mining attempt is always a new row.
const (
	StatusMining  = "mining"
	StatusSettled = "settled"
)

type Session struct {
	ID              string          `json:"id"`
	Wallet          string          `json:"wallet"`
	Status          string          `json:"status"`
	StartTime       int64           `json:"startTime"`
	PlannedDuration int64           `json:"plannedDurationSeconds"`
	Multiplier      int             `json:"multiplier"`
	MultiplierSetAt int64           `json:"multiplierSetAt"`
	CarriedBalance  decimal.Decimal `json:"carriedBalance"`
	SettledAmount   decimal.Decimal `json:"settledAmount"`
	SettledAt       int64           `json:"settledAt,omitempty"`
}

// Deadline is the unix second past which the session stops accruing.
func (s *Session) Deadline() int64 {
	return s.StartTime + s.PlannedDuration
}

// ElapsedAt clamps elapsed mining time into [0, PlannedDuration] so a
// session can never accrue past its own deadline.
func (s *Session) ElapsedAt(now int64) int64 {
	elapsed := now - s.StartTime
	if elapsed < 0 {
		return 0
	}
	if elapsed > s.PlannedDuration {
		return s.PlannedDuration
	}
	return elapsed
}

type ReferralBonusRecord struct {
	ID               string          `json:"id"`
	SessionID        string          `json:"sessionId"`
	ReferrerWallet   string          `json:"referrerWallet"`
	ReferredWallet   string          `json:"referredWallet"`
	BonusAmount      decimal.Decimal `json:"bonusAmount"`
	SettlementAmount decimal.Decimal `json:"settlementAmount"`
	CreatedAt        int64           `json:"createdAt"`
}

type AdRewardGrant struct {
	ID        string          `json:"id"`
	Wallet    string          `json:"wallet"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt int64           `json:"createdAt"`
}

// ClaimReceipt is the stored outcome of a settlement, replayed verbatim
// when a client retries the same claim with its idempotency key.
type ClaimReceipt struct {
	SessionID  string          `json:"sessionId"`
	Awarded    decimal.Decimal `json:"awarded"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// AdRewardReceipt is the ad-view counterpart of ClaimReceipt: a retried
// grant replays it instead of crediting again or burning a daily claim.
type AdRewardReceipt struct {
	GrantID         string          `json:"grantId"`
	Reward          decimal.Decimal `json:"reward"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	ClaimedCount    int             `json:"claimedCount"`
	RemainingClaims int             `json:"remainingClaims"`
}

const NotificationMiningBonus = "mining_bonus"

type Notification struct {
	ID        string `json:"id"`
	Wallet    string `json:"wallet"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"isRead"`
	CreatedAt int64  `json:"createdAt"`
}
