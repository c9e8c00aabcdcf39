package services

import (
	"fmt"
	"strings"

	"github.com/omkarchillalndss/cryptominerpp/model"
	"github.com/omkarchillalndss/cryptominerpp/msgs"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// runReferralCascade pays the settler's referrer a floored fraction of the
// settlement. Settlement has already committed when this runs; a broken
// referral graph is logged and reported but never fails the claim.
func (e *Engine) runReferralCascade(session *model.Session, awarded decimal.Decimal, now int64) {
	settler, err := e.stores.Accounts.GetByWallet(session.Wallet)
	if err != nil {
		e.logger.Error("cascade: settler %s lookup failed: %s", session.Wallet, err.Error())
		msgs.SendNotificationToDeveloper("referral cascade could not load settler " + session.Wallet + ": " + err.Error())
		return
	}

	if !settler.Referred() {
		return
	}

	referrer, err := e.stores.Accounts.GetByReferralCode(settler.ReferrerCode)
	if errors.Is(err, model.ErrUserNotFound) {
		model.DanglingReferralCodes.Inc()
		e.logger.Warn("cascade: dangling referrer code %s on wallet %s", settler.ReferrerCode, settler.Wallet)
		msgs.SendNotificationToDeveloper("dangling referrer code " + settler.ReferrerCode + " on wallet " + settler.Wallet)
		return
	}
	if err != nil {
		e.logger.Error("cascade: referrer lookup failed: %s", err.Error())
		return
	}

	bonus := awarded.Mul(e.params.ReferralBonusRate).Floor()
	if bonus.Sign() <= 0 {
		return
	}

	record := &model.ReferralBonusRecord{
		ID:               uuid.NewString(),
		SessionID:        session.ID,
		ReferrerWallet:   referrer.Wallet,
		ReferredWallet:   settler.Wallet,
		BonusAmount:      bonus,
		SettlementAmount: awarded,
		CreatedAt:        now,
	}

	err = e.stores.Bonuses.PayOut(record)
	if errors.Is(err, model.ErrBonusAlreadyPaid) {
		return
	}
	if err != nil {
		e.logger.Error("cascade: payout to %s failed: %s", referrer.Wallet, err.Error())
		msgs.SendNotificationToDeveloper("referral payout to " + referrer.Wallet + " failed: " + err.Error())
		return
	}

	model.ReferralPayouts.Inc()

	notification := &model.Notification{
		ID:      uuid.NewString(),
		Wallet:  referrer.Wallet,
		Type:    model.NotificationMiningBonus,
		Title:   "Mining bonus earned",
		Message: fmt.Sprintf("%s mined and you earned %s tokens (%s%% of %s).",
			shortWallet(settler.Wallet),
			bonus.String(),
			e.params.ReferralBonusRate.Mul(decimal.NewFromInt(100)).String(),
			awarded.String()),
		CreatedAt: now,
	}
	if err := e.stores.Notifications.Append(notification); err != nil {
		e.logger.Warn("cascade: notification append failed: %s", err.Error())
	}
}

type ReferralApplication struct {
	UserReward     decimal.Decimal `json:"userReward"`
	ReferrerReward decimal.Decimal `json:"referrerReward"`
	NewBalance     decimal.Decimal `json:"newBalance"`
}

// ApplyReferralCode links the wallet to the code owner, once, and pays the
// one-time rewards to both sides.
func (e *Engine) ApplyReferralCode(wallet, code string) (*ReferralApplication, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var application *ReferralApplication
	err := e.spreader.Do(wallet, func() error {
		account, err := e.stores.Accounts.GetByWallet(wallet)
		if err != nil {
			return err
		}

		if account.Referred() {
			return model.ErrReferralCodeUsed
		}

		if account.ReferralCode == code {
			return model.ErrOwnReferralCode
		}

		owner, err := e.stores.Accounts.GetByReferralCode(code)
		if errors.Is(err, model.ErrUserNotFound) {
			return model.ErrInvalidReferralCode
		}
		if err != nil {
			return errors.Wrap(err, "resolve referral code")
		}

		balance, err := e.stores.Accounts.ApplyReferral(wallet, code,
			e.params.ReferralCodeUserReward,
			e.params.ReferralCodeOwnerReward)
		if err != nil {
			return err
		}

		application = &ReferralApplication{
			UserReward:     e.params.ReferralCodeUserReward,
			ReferrerReward: e.params.ReferralCodeOwnerReward,
			NewBalance:     balance,
		}

		now := e.clock.Now().Unix()
		e.recordActivity(wallet, model.ActivityReferralCreated,
			fmt.Sprintf("used referral code %s", code), now)

		notification := &model.Notification{
			ID:        uuid.NewString(),
			Wallet:    owner.Wallet,
			Type:      model.NotificationMiningBonus,
			Title:     "Referral code used",
			Message:   fmt.Sprintf("%s used your referral code, you earned %s tokens.", shortWallet(wallet), e.params.ReferralCodeOwnerReward.String()),
			CreatedAt: now,
		}
		if err := e.stores.Notifications.Append(notification); err != nil {
			e.logger.Warn("referral notification append failed: %s", err.Error())
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return application, nil
}

type ReferralStats struct {
	ReferralCode         string                       `json:"referralCode"`
	UsedReferralCode     string                       `json:"usedReferralCode,omitempty"`
	CanUseReferral       bool                         `json:"canUseReferral"`
	ReferralCount        int                          `json:"referralCount"`
	ReferralBonusAccrued decimal.Decimal              `json:"referralBonusAccrued"`
	RecentBonuses        []*model.ReferralBonusRecord `json:"recentBonuses"`
}

func (e *Engine) ReferralStats(wallet string) (*ReferralStats, error) {
	account, err := e.stores.Accounts.GetByWallet(wallet)
	if err != nil {
		return nil, err
	}

	count, err := e.stores.Accounts.CountReferrals(account.ReferralCode)
	if err != nil {
		return nil, err
	}

	bonuses, err := e.stores.Bonuses.ListByReferrer(wallet, 20)
	if err != nil {
		return nil, err
	}

	return &ReferralStats{
		ReferralCode:         account.ReferralCode,
		UsedReferralCode:     account.ReferrerCode,
		CanUseReferral:       !account.Referred(),
		ReferralCount:        count,
		ReferralBonusAccrued: account.ReferralBonusAccrued,
		RecentBonuses:        bonuses,
	}, nil
}

func shortWallet(wallet string) string {
	if len(wallet) <= 10 {
		return wallet
	}
	return wallet[:6] + "..." + wallet[len(wallet)-4:]
}
