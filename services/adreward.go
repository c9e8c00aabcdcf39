package services

import (
	"math/rand"
	"time"

	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdRewardResult is the outcome of a granted ad-view claim.
type AdRewardResult struct {
	Reward          decimal.Decimal `json:"reward"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	ClaimedCount    int             `json:"claimedCount"`
	RemainingClaims int             `json:"remainingClaims"`
}

// ClaimAdReward grants a randomized bonus, capped per calendar day in the
// pinned reference timezone. Independent of session state on purpose.
// With a non-empty idempotency key a retry replays the stored receipt
// instead of crediting again or consuming a second daily claim.
func (e *Engine) ClaimAdReward(wallet, idempotencyKey string) (*AdRewardResult, error) {
	var result *AdRewardResult
	err := e.spreader.Do(wallet, func() error {
		if idempotencyKey != "" {
			stored, err := e.stores.Receipts.GetAdRewardReceipt(idempotencyKey)
			if err != nil {
				e.logger.Warn("ad reward receipt lookup failed for %s: %s", wallet, err.Error())
			} else if stored != nil {
				result = &AdRewardResult{
					Reward:          stored.Reward,
					NewBalance:      stored.NewBalance,
					ClaimedCount:    stored.ClaimedCount,
					RemainingClaims: stored.RemainingClaims,
				}
				return nil
			}
		}

		if _, err := e.stores.Accounts.GetByWallet(wallet); err != nil {
			return err
		}

		now := e.clock.Now().In(e.loc)
		dayStart, dayEnd := calendarDay(now)

		count, err := e.stores.Grants.CountInWindow(wallet, dayStart, dayEnd)
		if err != nil {
			return err
		}

		if count >= e.params.MaxDailyAdClaims {
			model.AdRewardClaims.WithLabelValues("limited").Inc()
			return &model.DailyLimitError{
				ClaimedCount: count,
				MaxClaims:    e.params.MaxDailyAdClaims,
				ResetAt:      dayEnd,
			}
		}

		options := e.params.AdRewardOptions
		reward := decimal.NewFromInt(options[rand.Intn(len(options))])

		grant := &model.AdRewardGrant{
			ID:        uuid.NewString(),
			Wallet:    wallet,
			Amount:    reward,
			CreatedAt: now.Unix(),
		}

		balance, err := e.stores.Grants.Grant(grant)
		if err != nil {
			return err
		}

		model.AdRewardClaims.WithLabelValues("granted").Inc()

		result = &AdRewardResult{
			Reward:          reward,
			NewBalance:      balance,
			ClaimedCount:    count + 1,
			RemainingClaims: e.params.MaxDailyAdClaims - count - 1,
		}

		if idempotencyKey != "" {
			receipt := &model.AdRewardReceipt{
				GrantID:         grant.ID,
				Reward:          result.Reward,
				NewBalance:      result.NewBalance,
				ClaimedCount:    result.ClaimedCount,
				RemainingClaims: result.RemainingClaims,
			}
			if err := e.stores.Receipts.SaveAdRewardReceipt(idempotencyKey, receipt); err != nil {
				e.logger.Warn("failed save ad reward receipt for %s: %s", wallet, err.Error())
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

type AdRewardStatus struct {
	ClaimedCount    int   `json:"claimedCount"`
	RemainingClaims int   `json:"remainingClaims"`
	MaxClaims       int   `json:"maxClaims"`
	CanClaim        bool  `json:"canClaim"`
	ResetAt         int64 `json:"resetAt"`
}

func (e *Engine) AdRewardStatus(wallet string) (*AdRewardStatus, error) {
	if _, err := e.stores.Accounts.GetByWallet(wallet); err != nil {
		return nil, err
	}

	now := e.clock.Now().In(e.loc)
	dayStart, dayEnd := calendarDay(now)

	count, err := e.stores.Grants.CountInWindow(wallet, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	remaining := e.params.MaxDailyAdClaims - count
	if remaining < 0 {
		remaining = 0
	}

	return &AdRewardStatus{
		ClaimedCount:    count,
		RemainingClaims: remaining,
		MaxClaims:       e.params.MaxDailyAdClaims,
		CanClaim:        count < e.params.MaxDailyAdClaims,
		ResetAt:         dayEnd,
	}, nil
}

// calendarDay returns [start, end) unix bounds of the day containing t,
// in t's location. The cap resets at midnight, not 24h after last use.
func calendarDay(t time.Time) (int64, int64) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start.Unix(), start.AddDate(0, 0, 1).Unix()
}
