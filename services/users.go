package services

import (
	"math/rand"

	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referralCodeLength   = 8
)

// Signup creates the account with a fresh unique referral code, or returns
// the existing one. The second return reports whether an account was
// created.
func (e *Engine) Signup(wallet string) (*model.Account, bool, error) {
	var account *model.Account
	var created bool

	err := e.spreader.Do(wallet, func() error {
		existing, err := e.stores.Accounts.GetByWallet(wallet)
		if err == nil {
			account = existing
			return nil
		}
		if !errors.Is(err, model.ErrUserNotFound) {
			return err
		}

		code, err := e.generateReferralCode()
		if err != nil {
			return err
		}

		account = &model.Account{
			Wallet:               wallet,
			Balance:              decimal.Zero,
			ReferralCode:         code,
			ReferralBonusAccrued: decimal.Zero,
			CreatedAt:            e.clock.Now().Unix(),
		}

		if err := e.stores.Accounts.Create(account); err != nil {
			return err
		}

		created = true
		model.TotalSignups.Inc()
		e.recordActivity(wallet, model.ActivityUserCreated, "account created", account.CreatedAt)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return account, created, nil
}

func (e *Engine) generateReferralCode() (string, error) {
	for {
		code := make([]byte, referralCodeLength)
		for i := range code {
			code[i] = referralCodeAlphabet[rand.Intn(len(referralCodeAlphabet))]
		}

		_, err := e.stores.Accounts.GetByReferralCode(string(code))
		if errors.Is(err, model.ErrUserNotFound) {
			return string(code), nil
		}
		if err != nil {
			return "", errors.Wrap(err, "check referral code uniqueness")
		}
	}
}

// UserView is the account plus a summary of the open session, if any.
type UserView struct {
	*model.Account
	MiningStatus    string `json:"miningStatus"`
	StartTime       int64  `json:"miningStartTime,omitempty"`
	PlannedDuration int64  `json:"plannedDurationSeconds,omitempty"`
	Multiplier      int    `json:"multiplier,omitempty"`
}

func (e *Engine) GetUser(wallet string) (*UserView, error) {
	account, err := e.stores.Accounts.GetByWallet(wallet)
	if err != nil {
		return nil, err
	}

	view := &UserView{
		Account:      account,
		MiningStatus: "inactive",
	}

	session, err := e.stores.Sessions.GetOpen(wallet)
	if err == nil {
		view.MiningStatus = "active"
		view.StartTime = session.StartTime
		view.PlannedDuration = session.PlannedDuration
		view.Multiplier = session.Multiplier
	} else if !errors.Is(err, model.ErrNoActiveSession) {
		return nil, err
	}

	return view, nil
}
