package db

import (
	"database/sql"

	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(session *model.Session) error {
	_, err := s.db.Exec(`
INSERT INTO sessions (id, wallet, status, start_time, planned_duration, multiplier, multiplier_set_at, carried_balance, settled_amount, settled_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, NULL, NULL);`,
		session.ID,
		session.Wallet,
		session.Status,
		session.StartTime,
		session.PlannedDuration,
		session.Multiplier,
		session.MultiplierSetAt,
		session.CarriedBalance)
	if err != nil {
		return errors.Wrap(err, "insert session")
	}

	return nil
}

func (s *SessionStore) GetOpen(wallet string) (*model.Session, error) {
	rows, err := s.db.Query(`
SELECT * FROM sessions
	WHERE wallet = ? AND status = ?;`,
		wallet, model.StatusMining)
	if err != nil {
		return nil, errors.Wrap(err, "get open session")
	}

	sessions, err := readSessions(rows)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, model.ErrNoActiveSession
	}

	return sessions[0], nil
}

// UpgradeMultiplier bumps the open session's multiplier, clamped at max.
// Repeated calls at the ceiling are no-ops, not errors.
func (s *SessionStore) UpgradeMultiplier(wallet string, max int, now int64) (int, error) {
	_, err := s.db.Exec(`
UPDATE sessions
	SET multiplier = LEAST(multiplier + 1, ?),
	    multiplier_set_at = ?
WHERE wallet = ? AND status = ?;`,
		max,
		now,
		wallet,
		model.StatusMining)
	if err != nil {
		return 0, errors.Wrap(err, "upgrade multiplier")
	}

	// MySQL reports 0 affected rows both for a same-value update (already
	// at the ceiling) and for a missing session, so re-read instead of
	// trusting RowsAffected.
	session, err := s.GetOpen(wallet)
	if err != nil {
		return 0, err
	}

	return session.Multiplier, nil
}

// SettleAndCredit is the single Settled transition plus the balance credit,
// in one transaction. The status guard makes exactly one of N racing
// settlements win; the rest see ErrNoActiveSession and nothing changes.
func (s *SessionStore) SettleAndCredit(sessionID, wallet string, awarded decimal.Decimal, settledAt int64) (decimal.Decimal, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "begin tx")
	}

	res, err := tx.Exec(`
UPDATE sessions
	SET status = ?,
	    settled_amount = ?,
	    settled_at = ?
WHERE id = ? AND status = ?;`,
		model.StatusSettled,
		awarded,
		settledAt,
		sessionID,
		model.StatusMining)
	if err != nil {
		tx.Rollback()
		return decimal.Zero, errors.Wrap(err, "settle session")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		tx.Rollback()
		return decimal.Zero, model.ErrNoActiveSession
	}

	_, err = tx.Exec(`
UPDATE accounts
	SET balance = balance + ?
WHERE wallet = ?;`,
		awarded,
		wallet)
	if err != nil {
		tx.Rollback()
		return decimal.Zero, errors.Wrap(err, "credit balance")
	}

	var balance decimal.Decimal
	if err := tx.QueryRow(`SELECT balance FROM accounts WHERE wallet = ?;`, wallet).Scan(&balance); err != nil {
		tx.Rollback()
		return decimal.Zero, errors.Wrap(err, "read new balance")
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, errors.Wrap(err, "commit tx")
	}

	return balance, nil
}

// Abandon finalizes the session with the accrued amount recorded for
// history but credits nothing.
func (s *SessionStore) Abandon(sessionID string, amount decimal.Decimal, settledAt int64) error {
	res, err := s.db.Exec(`
UPDATE sessions
	SET status = ?,
	    settled_amount = ?,
	    settled_at = ?
WHERE id = ? AND status = ?;`,
		model.StatusSettled,
		amount,
		settledAt,
		sessionID,
		model.StatusMining)
	if err != nil {
		return errors.Wrap(err, "abandon session")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return model.ErrNoActiveSession
	}

	return nil
}

// ExpiredOpen lists open sessions whose deadline passed before the given
// unix second, oldest first, for the sweeper.
func (s *SessionStore) ExpiredOpen(before int64, limit int) ([]*model.Session, error) {
	rows, err := s.db.Query(`
SELECT * FROM sessions
	WHERE status = ? AND start_time + planned_duration < ?
	ORDER BY start_time
	LIMIT ?;`,
		model.StatusMining, before, limit)
	if err != nil {
		return nil, errors.Wrap(err, "expired sessions query")
	}

	return readSessions(rows)
}

func readSessions(rows *sql.Rows) ([]*model.Session, error) {
	defer rows.Close()

	var sessions []*model.Session

	for rows.Next() {
		session := &model.Session{}
		var settledAmount decimal.NullDecimal
		var settledAt sql.NullInt64

		if err := rows.Scan(&session.ID,
			&session.Wallet,
			&session.Status,
			&session.StartTime,
			&session.PlannedDuration,
			&session.Multiplier,
			&session.MultiplierSetAt,
			&session.CarriedBalance,
			&settledAmount,
			&settledAt); err != nil {
			return nil, errors.Wrap(err, "scan session row")
		}

		session.SettledAmount = settledAmount.Decimal
		session.SettledAt = settledAt.Int64
		sessions = append(sessions, session)
	}

	return sessions, nil
}
