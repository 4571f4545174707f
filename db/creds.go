package db

import (
	"database/sql"
	"time"
)

type Credential struct {
	Number string `json:"number"`
	User   string `json:"user"`
	Pass   string `json:"pass"`
}

// LookupCreds returns nil, nil when no record exists for the number.
func (db *DB) LookupCreds(number string) (*Credential, error) {
	c := &Credential{}
	err := db.QueryRow(`
		SELECT number, user, pass FROM creds WHERE number = ?
	`, number).Scan(&c.Number, &c.User, &c.Pass)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// StoreCreds replaces any existing record for the number.
func (db *DB) StoreCreds(number, user, pass string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO creds (number, user, pass, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(number) DO UPDATE SET
			user = excluded.user,
			pass = excluded.pass,
			updated_at = excluded.updated_at
	`, number, user, pass, now, now)
	return err
}

// RemoveCreds deletes the record for the number. Removing a number that has
// no record is not an error.
func (db *DB) RemoveCreds(number string) error {
	_, err := db.Exec(`DELETE FROM creds WHERE number = ?`, number)
	return err
}
