package services

import (
	"fmt"
	"time"

	"github.com/omkarchillalndss/cryptominerpp/assets"
	"github.com/omkarchillalndss/cryptominerpp/log"
	"github.com/omkarchillalndss/cryptominerpp/model"
	"github.com/omkarchillalndss/cryptominerpp/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Engine is the session settlement core. Every mutation for a wallet runs
// under that wallet's lock in the spreader; distinct wallets proceed in
// parallel.
type Engine struct {
	stores   Stores
	params   *assets.EngineSettings
	clock    model.Clock
	spreader *utils.Spreader
	logger   log.Logger
	loc      *time.Location
}

func NewEngine(stores Stores, params *assets.EngineSettings, clock model.Clock, logger log.Logger, loc *time.Location) *Engine {
	return &Engine{
		stores:   stores,
		params:   params,
		clock:    clock,
		spreader: utils.NewSpreader(),
		logger:   logger,
		loc:      loc,
	}
}

// SessionView is the live read-side projection of an open session. The
// client may tick the same numbers locally between requests, but this is
// the authoritative snapshot it must overwrite with.
type SessionView struct {
	*model.Session
	CurrentMiningPoints decimal.Decimal `json:"currentMiningPoints"`
	ElapsedSeconds      int64           `json:"elapsedSeconds"`
	RemainingSeconds    int64           `json:"remainingSeconds"`
}

func (e *Engine) StartSession(wallet string, plannedDurationSeconds int64, multiplier int) (*model.Session, error) {
	if plannedDurationSeconds <= 0 {
		return nil, model.ErrInvalidDuration
	}

	var session *model.Session
	err := e.spreader.Do(wallet, func() error {
		account, err := e.stores.Accounts.GetByWallet(wallet)
		if err != nil {
			return err
		}

		_, err = e.stores.Sessions.GetOpen(wallet)
		if err == nil {
			return model.ErrSessionAlreadyOpen
		}
		if !errors.Is(err, model.ErrNoActiveSession) {
			return errors.Wrap(err, "check open session")
		}

		now := e.clock.Now().Unix()
		session = &model.Session{
			ID:              uuid.NewString(),
			Wallet:          wallet,
			Status:          model.StatusMining,
			StartTime:       now,
			PlannedDuration: plannedDurationSeconds,
			Multiplier:      ClampMultiplier(multiplier, e.params.MaxMultiplier),
			MultiplierSetAt: now,
			CarriedBalance:  account.Balance,
		}

		if err := e.stores.Sessions.Create(session); err != nil {
			return errors.Wrap(err, "create session")
		}

		model.SessionsStarted.Inc()
		e.recordActivity(wallet, model.ActivityMiningStarted,
			fmt.Sprintf("mining started for %ds at x%d", session.PlannedDuration, session.Multiplier), now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (e *Engine) UpgradeMultiplier(wallet string) (int, error) {
	var multiplier int
	err := e.spreader.Do(wallet, func() error {
		now := e.clock.Now().Unix()

		var err error
		multiplier, err = e.stores.Sessions.UpgradeMultiplier(wallet, e.params.MaxMultiplier, now)
		return err
	})
	if err != nil {
		return 0, err
	}

	return multiplier, nil
}

// StopSession abandons the open session: the accrued amount is recorded on
// the settled row for history, but nothing is credited and no referral
// bonus is paid. Stopping early forfeits the claim pathway.
func (e *Engine) StopSession(wallet string) error {
	return e.spreader.Do(wallet, func() error {
		session, err := e.stores.Sessions.GetOpen(wallet)
		if err != nil {
			return err
		}

		now := e.clock.Now().Unix()
		accrued := Reward(session.ElapsedAt(now), session.Multiplier, e.params.BaseRate)

		if err := e.stores.Sessions.Abandon(session.ID, accrued, now); err != nil {
			return err
		}

		model.SessionsSettled.WithLabelValues(model.SettleTriggerStop).Inc()
		return nil
	})
}

// ClaimSession settles the open session: computes the clamped award,
// credits the balance, finalizes the session row and pays the referrer.
// With a non-empty idempotency key a retry replays the stored receipt.
func (e *Engine) ClaimSession(wallet, idempotencyKey string) (*model.ClaimReceipt, error) {
	return e.settle(wallet, idempotencyKey, model.SettleTriggerClaim)
}

func (e *Engine) settle(wallet, idempotencyKey, trigger string) (*model.ClaimReceipt, error) {
	var receipt *model.ClaimReceipt
	err := e.spreader.Do(wallet, func() error {
		if idempotencyKey != "" {
			stored, err := e.stores.Receipts.GetClaimReceipt(idempotencyKey)
			if err != nil {
				e.logger.Warn("claim receipt lookup failed for %s: %s", wallet, err.Error())
			} else if stored != nil {
				receipt = stored
				return nil
			}
		}

		session, err := e.stores.Sessions.GetOpen(wallet)
		if err != nil {
			return err
		}

		now := e.clock.Now().Unix()
		awarded := Reward(session.ElapsedAt(now), session.Multiplier, e.params.BaseRate)

		balance, err := e.stores.Sessions.SettleAndCredit(session.ID, wallet, awarded, now)
		if err != nil {
			return err
		}

		model.SessionsSettled.WithLabelValues(trigger).Inc()
		e.recordActivity(wallet, model.ActivityMiningClaimed,
			fmt.Sprintf("settled %s tokens", awarded.String()), now)

		e.runReferralCascade(session, awarded, now)

		receipt = &model.ClaimReceipt{
			SessionID:  session.ID,
			Awarded:    awarded,
			NewBalance: balance,
		}

		if idempotencyKey != "" {
			if err := e.stores.Receipts.SaveClaimReceipt(idempotencyKey, receipt); err != nil {
				e.logger.Warn("failed save claim receipt for %s: %s", wallet, err.Error())
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

// CurrentSession returns the open session with live-computed accrual.
func (e *Engine) CurrentSession(wallet string) (*SessionView, error) {
	session, err := e.stores.Sessions.GetOpen(wallet)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now().Unix()
	elapsed := session.ElapsedAt(now)

	remaining := session.PlannedDuration - elapsed
	if remaining < 0 {
		remaining = 0
	}

	return &SessionView{
		Session:             session,
		CurrentMiningPoints: Reward(elapsed, session.Multiplier, e.params.BaseRate),
		ElapsedSeconds:      elapsed,
		RemainingSeconds:    remaining,
	}, nil
}
