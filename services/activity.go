package services

import (
	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/google/uuid"
)

const activityFeedSize = 50

// recordActivity appends to the admin event feed. Best-effort: the feed is
// observability, a write failure never fails the operation that caused it.
func (e *Engine) recordActivity(wallet, atype, message string, now int64) {
	activity := &model.Activity{
		ID:        uuid.NewString(),
		Wallet:    wallet,
		Type:      atype,
		Message:   message,
		CreatedAt: now,
	}

	if err := e.stores.Activities.Append(activity); err != nil {
		e.logger.Warn("activity append failed: %s", err.Error())
	}
}

func (e *Engine) RecentActivity(limit int) ([]*model.Activity, error) {
	if limit <= 0 || limit > activityFeedSize {
		limit = activityFeedSize
	}

	return e.stores.Activities.Recent(limit)
}
