// Package devgateway is a local stand-in for the hosted backend platform.
// It speaks the same wire protocol the application's gateway client uses -
// /rest/v1 tables, /auth/v1 password sessions, /storage/v1 objects - backed
// by a sqlite file, so the site runs end to end without a hosted backend and
// tests exercise the real client path.
package devgateway

import (
	"database/sql"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	// modernc/sqlite is safest with a single writer connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

// CreateUser inserts an auth user with an already-hashed password. Mainly
// for seeding the initial admin.
func (s *Store) CreateUser(email, hashedPassword string) error {
	query := `INSERT INTO auth_users (email, password) VALUES (?, ?)`
	_, err := s.DB.Exec(query, email, hashedPassword)
	return err
}

func (s *Store) Close() error {
	return s.DB.Close()
}
