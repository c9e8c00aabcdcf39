package db

import (
	"database/sql"

	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(account *model.Account) error {
	_, err := s.db.Exec(`
INSERT INTO accounts (wallet, balance, referral_code, referrer_code, referral_bonus_accrued, created_at)
	VALUES(?, ?, ?, NULL, ?, ?);`,
		account.Wallet,
		account.Balance,
		account.ReferralCode,
		account.ReferralBonusAccrued,
		account.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert account")
	}

	return nil
}

func (s *AccountStore) GetByWallet(wallet string) (*model.Account, error) {
	rows, err := s.db.Query(`
SELECT * FROM accounts
	WHERE wallet = ?;`,
		wallet)
	if err != nil {
		return nil, errors.Wrap(err, "get account")
	}

	return readAccount(rows)
}

func (s *AccountStore) GetByReferralCode(code string) (*model.Account, error) {
	rows, err := s.db.Query(`
SELECT * FROM accounts
	WHERE referral_code = ?;`,
		code)
	if err != nil {
		return nil, errors.Wrap(err, "get account by referral code")
	}

	return readAccount(rows)
}

// ApplyReferral links the wallet to the code owner and pays both sides, all
// or nothing. The referrer_code IS NULL guard makes the linkage one-shot
// even against a racing duplicate request.
func (s *AccountStore) ApplyReferral(wallet, code string, userReward, ownerReward decimal.Decimal) (decimal.Decimal, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "begin tx")
	}

	res, err := tx.Exec(`
UPDATE accounts
	SET balance = balance + ?,
	    referrer_code = ?
WHERE wallet = ? AND referrer_code IS NULL;`,
		userReward,
		code,
		wallet)
	if err != nil {
		tx.Rollback()
		return decimal.Zero, errors.Wrap(err, "link referrer")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		tx.Rollback()
		return decimal.Zero, model.ErrReferralCodeUsed
	}

	_, err = tx.Exec(`
UPDATE accounts
	SET balance = balance + ?,
	    referral_bonus_accrued = referral_bonus_accrued + ?
WHERE referral_code = ?;`,
		ownerReward,
		ownerReward,
		code)
	if err != nil {
		tx.Rollback()
		return decimal.Zero, errors.Wrap(err, "credit code owner")
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

func (s *AccountStore) CountReferrals(code string) (int, error) {
	var count int
	err := s.db.QueryRow(`
SELECT COUNT(*) FROM accounts
	WHERE referrer_code = ?;`,
		code).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "count referrals")
	}

	return count, nil
}

func (s *AccountStore) Leaderboard(limit int) ([]*model.Account, error) {
	rows, err := s.db.Query(`
SELECT * FROM accounts
	ORDER BY balance DESC, wallet
	LIMIT ?;`,
		limit)
	if err != nil {
		return nil, errors.Wrap(err, "leaderboard query")
	}

	return readAccounts(rows)
}

func readAccount(rows *sql.Rows) (*model.Account, error) {
	accounts, err := readAccounts(rows)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, model.ErrUserNotFound
	}

	return accounts[0], nil
}

func readAccounts(rows *sql.Rows) ([]*model.Account, error) {
	defer rows.Close()

	var accounts []*model.Account

	for rows.Next() {
		account := &model.Account{}
		var referrerCode sql.NullString

		if err := rows.Scan(&account.Wallet,
			&account.Balance,
			&account.ReferralCode,
			&referrerCode,
			&account.ReferralBonusAccrued,
			&account.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan account row")
		}

		account.ReferrerCode = referrerCode.String
		accounts = append(accounts, account)
	}

	return accounts, nil
}
