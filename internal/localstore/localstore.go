// Package localstore provides SQLite-backed persistence for wallet
// sessions and mint receipts.
package localstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite database operations for local application state.
type Store struct {
	db *sql.DB
}

// Receipt records a submitted mint transaction.
type Receipt struct {
	ID          int64     `json:"id"`
	RequestKey  string    `json:"request_key"`
	Account     string    `json:"account"`
	Collection  string    `json:"collection"`
	Amount      int       `json:"amount"`
	Status      string    `json:"status"` // "pending", "success", "failure"
	SubmittedAt time.Time `json:"submitted_at"`
}

// Receipt status values.
const (
	ReceiptPending = "pending"
	ReceiptSuccess = "success"
	ReceiptFailure = "failure"
)

// New creates a Store backed by the database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS receipts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_key TEXT NOT NULL,
		account TEXT NOT NULL,
		collection TEXT NOT NULL,
		amount INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		submitted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_receipts_request_key ON receipts(request_key);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores value under key. Values are JSON-encoded so any string
// round-trips exactly.
func (s *Store) Save(key, value string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO session (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(encoded), time.Now().UTC(),
	)
	return err
}

// Load returns the value stored under key. Missing keys and values that
// fail to decode both yield the empty string.
func (s *Store) Load(key string) string {
	row := s.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key)

	var encoded string
	if err := row.Scan(&encoded); err != nil {
		return ""
	}

	var value string
	if err := json.Unmarshal([]byte(encoded), &value); err != nil {
		return ""
	}
	return value
}

// Delete removes key from the session table.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, key)
	return err
}

// RecordReceipt inserts a pending receipt for a submitted transaction.
func (s *Store) RecordReceipt(requestKey, account, collection string, amount int) error {
	_, err := s.db.Exec(
		`INSERT INTO receipts (request_key, account, collection, amount, submitted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		requestKey, account, collection, amount, time.Now().UTC(),
	)
	return err
}

// ResolveReceipt updates the status of a receipt once its outcome is known.
func (s *Store) ResolveReceipt(requestKey, status string) error {
	_, err := s.db.Exec(
		`UPDATE receipts SET status = ? WHERE request_key = ?`,
		status, requestKey,
	)
	return err
}

// RecentReceipts returns the most recently submitted receipts.
func (s *Store) RecentReceipts(limit int) ([]*Receipt, error) {
	rows, err := s.db.Query(
		`SELECT id, request_key, account, collection, amount, status, submitted_at
		 FROM receipts ORDER BY submitted_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*Receipt
	for rows.Next() {
		var r Receipt
		err := rows.Scan(&r.ID, &r.RequestKey, &r.Account, &r.Collection,
			&r.Amount, &r.Status, &r.SubmittedAt)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, &r)
	}
	return receipts, rows.Err()
}
