package db

import (
	"database/sql"

	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type GrantStore struct {
	db *sql.DB
}

func NewGrantStore(db *sql.DB) *GrantStore {
	return &GrantStore{db: db}
}

// CountInWindow counts grant rows for the wallet inside [from, to). The
// row count is the rate-limit state; there is no separate counter to drift
// away from the ledger.
func (s *GrantStore) CountInWindow(wallet string, from, to int64) (int, error) {
	var count int
	err := s.db.QueryRow(`
SELECT COUNT(*) FROM ad_reward_grants
	WHERE wallet = ? AND created_at >= ? AND created_at < ?;`,
		wallet, from, to).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "count grants")
	}

	return count, nil
}

// Grant appends the grant row and credits the balance, all or nothing.
func (s *GrantStore) Grant(grant *model.AdRewardGrant) (decimal.Decimal, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "begin tx")
	}

	_, err = tx.Exec(`
INSERT INTO ad_reward_grants (id, wallet, amount, created_at)
	VALUES(?, ?, ?, ?);`,
		grant.ID,
		grant.Wallet,
		grant.Amount,
		grant.CreatedAt)
	if err != nil {
		tx.Rollback()
		return decimal.Zero, errors.Wrap(err, "insert grant")
	}

	_, err = tx.Exec(`
UPDATE accounts
	SET balance = balance + ?
WHERE wallet = ?;`,
		grant.Amount,
		grant.Wallet)
	if err != nil {
		tx.Rollback()
		return decimal.Zero, errors.Wrap(err, "credit balance")
	}

	var balance decimal.Decimal
	if err := tx.QueryRow(`SELECT balance FROM accounts WHERE wallet = ?;`, grant.Wallet).Scan(&balance); err != nil {
		tx.Rollback()
		return decimal.Zero, errors.Wrap(err, "read new balance")
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, errors.Wrap(err, "commit tx")
	}

	return balance, nil
}
