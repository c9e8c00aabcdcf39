package db

import (
	"database/sql"

	"github.com/omkarchillalndss/cryptominerpp/model"

	"github.com/pkg/errors"
)

type ActivityStore struct {
	db *sql.DB
}

func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) Append(a *model.Activity) error {
	_, err := s.db.Exec(`
INSERT INTO activities (id, wallet, atype, message, created_at)
	VALUES(?, ?, ?, ?, ?);`,
		a.ID,
		a.Wallet,
		a.Type,
		a.Message,
		a.CreatedAt)
	if err != nil {
		return errors.Wrap(err, "insert activity")
	}

	return nil
}

func (s *ActivityStore) Recent(limit int) ([]*model.Activity, error) {
	rows, err := s.db.Query(`
SELECT * FROM activities
	ORDER BY created_at DESC
	LIMIT ?;`,
		limit)
	if err != nil {
		return nil, errors.Wrap(err, "recent activities")
	}

	defer rows.Close()

	var activities []*model.Activity

	for rows.Next() {
		a := &model.Activity{}

		if err := rows.Scan(&a.ID,
			&a.Wallet,
			&a.Type,
			&a.Message,
			&a.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan activity row")
		}

		activities = append(activities, a)
	}

	return activities, nil
}
