package model

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrSessionAlreadyOpen  = errors.New("session already open")
	ErrNoActiveSession     = errors.New("no active session")
	ErrInvalidReferralCode = errors.New("invalid referral code")
	ErrReferralCodeUsed    = errors.New("referral code already used")
	ErrOwnReferralCode     = errors.New("cannot use own referral code")
	ErrBonusAlreadyPaid    = errors.New("referral bonus already paid")
	ErrInvalidDuration     = errors.New("planned duration must be positive")
)

// DailyLimitError rejects an ad-reward claim once the calendar-day cap is
// reached. It carries the counters the client renders.
type DailyLimitError struct {
	ClaimedCount int
	MaxClaims    int
	ResetAt      int64
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("daily limit reached: %d/%d claims used", e.ClaimedCount, e.MaxClaims)
}
