package model

import "github.com/shopspring/decimal"

// Account is the durable per-wallet ledger record. The balance is mutated
// only by session settlement, the referral pathway and ad-reward grants.
type Account struct {
	Wallet               string          `json:"wallet"`
	Balance              decimal.Decimal `json:"balance"`
	ReferralCode         string          `json:"referralCode"`
	ReferrerCode         string          `json:"referrerCode,omitempty"`
	ReferralBonusAccrued decimal.Decimal `json:"referralBonusAccrued"`
	CreatedAt            int64           `json:"createdAt"`
}

// Referred reports whether a referral code was ever applied to this account.
// ReferrerCode is set at most once and never changes afterwards.
func (a *Account) Referred() bool {
	return a.ReferrerCode != ""
}
