package db

import (
	"database/sql"

	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/pkg/errors"
)

type NotificationStore struct {
	db *sql.DB
}

func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

func (s *NotificationStore) Append(n *model.Notification) error {
	_, err := s.db.Exec(`
INSERT INTO notifications (id, wallet, ntype, title, message, is_read, created_at)
	VALUES(?, ?, ?, ?, ?, FALSE, ?);`,
		n.ID,
		n.Wallet,
		n.Type,
		n.Title,
		n.Message,
		n.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert notification")
	}

	return nil
}

func (s *NotificationStore) ListByWallet(wallet string, limit int) ([]*model.Notification, error) {
	rows, err := s.db.Query(`
SELECT * FROM notifications
	WHERE wallet = ?
	ORDER BY created_at DESC
	LIMIT ?;`,
		wallet, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list notifications")
	}

	defer rows.Close()

	var notifications []*model.Notification

	for rows.Next() {
		n := &model.Notification{}

		if err := rows.Scan(&n.ID,
			&n.Wallet,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.IsRead,
			&n.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan notification row")
		}

		notifications = append(notifications, n)
	}

	return notifications, nil
}

func (s *NotificationStore) MarkAllRead(wallet string) error {
	_, err := s.db.Exec(`
UPDATE notifications
	SET is_read = TRUE
WHERE wallet = ?;`,
		wallet)
	if err != nil {
		return errors.Wrap(err, "mark notifications read")
	}

	return nil
}
