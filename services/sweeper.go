package services

import (
	"time"

	"github.com/omkarchillalndss/cryptominerpp/model"
	"github.com/omkarchillalndss/cryptominerpp/msgs"

	"github.com/pkg/errors"
	"github.com/roylee0704/gron"
)

const sweepBatchSize = 100

// StartSweeper schedules the hourly pass that settles sessions whose
// deadline passed more than the grace period ago. Abandoned miners still
// get their award and their referrers still get paid; the grace period
// leaves room for ordinary late claims.
func (e *Engine) StartSweeper(c *gron.Cron) {
	c.AddFunc(gron.Every(1*time.Hour), func() {
		e.SweepExpiredSessions()
	})
}

func (e *Engine) SweepExpiredSessions() {
	grace := time.Duration(e.params.SweepGraceHours) * time.Hour
	before := e.clock.Now().Add(-grace).Unix()

	sessions, err := e.stores.Sessions.ExpiredOpen(before, sweepBatchSize)
	if err != nil {
		e.logger.Error("sweep: expired sessions query failed: %s", err.Error())
		msgs.SendNotificationToDeveloper("session sweep query failed: " + err.Error())
		return
	}

	for _, session := range sessions {
		_, err := e.settle(session.Wallet, "", model.SettleTriggerSweep)
		if errors.Is(err, model.ErrNoActiveSession) {
			// Settled by its owner between the query and the lock.
			continue
		}
		if err != nil {
			e.logger.Error("sweep: settle %s failed: %s", session.ID, err.Error())
			continue
		}

		e.logger.Info("sweep: settled expired session %s for %s", session.ID, session.Wallet)
	}
}
