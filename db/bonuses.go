package db

import (
	"database/sql"

	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

const duplicateEntryErrNo = 1062

type BonusStore struct {
	db *sql.DB
}

func NewBonusStore(db *sql.DB) *BonusStore {
	return &BonusStore{db: db}
}

// PayOut appends the bonus record and credits the referrer in one
// transaction. The unique session_id index is the idempotency gate: a
// replayed settlement hits the duplicate key and pays nothing.
func (s *BonusStore) PayOut(record *model.ReferralBonusRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}

	_, err = tx.Exec(`
INSERT INTO referral_bonuses (id, session_id, referrer_wallet, referred_wallet, bonus_amount, settlement_amount, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?);`,
		record.ID,
		record.SessionID,
		record.ReferrerWallet,
		record.ReferredWallet,
		record.BonusAmount,
		record.SettlementAmount,
		record.CreatedAt)
	if err != nil {
		tx.Rollback()

		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntryErrNo {
			return model.ErrBonusAlreadyPaid
		}
		return errors.Wrap(err, "insert bonus record")
	}

	_, err = tx.Exec(`
UPDATE accounts
	SET balance = balance + ?,
	    referral_bonus_accrued = referral_bonus_accrued + ?
WHERE wallet = ?;`,
		record.BonusAmount,
		record.BonusAmount,
		record.ReferrerWallet)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "credit referrer")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit tx")
	}

	return nil
}

func (s *BonusStore) ListByReferrer(wallet string, limit int) ([]*model.ReferralBonusRecord, error) {
	rows, err := s.db.Query(`
SELECT * FROM referral_bonuses
	WHERE referrer_wallet = ?
	ORDER BY created_at DESC
	LIMIT ?;`,
		wallet, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list bonuses")
	}

	defer rows.Close()

	var records []*model.ReferralBonusRecord

	for rows.Next() {
		record := &model.ReferralBonusRecord{}

		if err := rows.Scan(&record.ID,
			&record.SessionID,
			&record.ReferrerWallet,
			&record.ReferredWallet,
			&record.BonusAmount,
			&record.SettlementAmount,
			&record.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan bonus row")
		}

		records = append(records, record)
	}

	return records, nil
}
