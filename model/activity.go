package model

// Activity event types on the admin feed.
const (
	ActivityUserCreated     = "user_created"
	ActivityMiningStarted   = "mining_started"
	ActivityMiningClaimed   = "mining_claimed"
	ActivityReferralCreated = "referral_created"
)

// Activity is one append-only event on the admin feed. Unlike a
// Notification it is never addressed to the wallet that caused it.
type Activity struct {
	ID        string `json:"id"`
	Wallet    string `json:"wallet"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
}
