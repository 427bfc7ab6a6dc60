// Copyright © 2026 Replpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: notebook/history.go
// Summary: In-memory SQLite store of submitted inputs, backing history
// recall in the active input cell. Recall steps through submissions newest
// first, filtered by the prefix the user had already typed. Lives and dies
// with the session; nothing is persisted across restarts.

package notebook

import (
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS submissions (
    id      INTEGER PRIMARY KEY,
    created INTEGER NOT NULL,
    text    TEXT NOT NULL
);
`

// HistoryStore records submissions in order and supports prefix-filtered
// stepping through them (Prev/Next). Single-goroutine use: the panel's
// event path is the only caller.
type HistoryStore struct {
	db *sql.DB
	// cursor is the id currently recalled; 0 means "live" (not navigating).
	cursor int64
}

// OpenHistory creates the in-memory store.
func OpenHistory() (*HistoryStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, err
	}
	return &HistoryStore{db: db}, nil
}

// Close releases the store.
func (h *HistoryStore) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

// Add records a submission and resets the recall cursor. Blank submissions
// and immediate repeats are not recorded.
func (h *HistoryStore) Add(text string) error {
	h.cursor = 0
	if text == "" {
		return nil
	}
	var last string
	err := h.db.QueryRow(`SELECT text FROM submissions ORDER BY id DESC LIMIT 1`).Scan(&last)
	if err == nil && last == text {
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	_, err = h.db.Exec(`INSERT INTO submissions (created, text) VALUES (?, ?)`,
		time.Now().UnixNano(), text)
	return err
}

// Len returns the number of recorded submissions.
func (h *HistoryStore) Len() int {
	var n int
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM submissions`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Recalling reports whether a Prev call has entered recall mode.
func (h *HistoryStore) Recalling() bool { return h.cursor != 0 }

// Prev steps to the previous (older) submission starting with prefix.
// Returns false at the top. An empty prefix matches everything.
func (h *HistoryStore) Prev(prefix string) (string, bool) {
	row := h.db.QueryRow(
		`SELECT id, text FROM submissions
		  WHERE (?1 = 0 OR id < ?1) AND text LIKE ?2 ESCAPE '\'
		  ORDER BY id DESC LIMIT 1`,
		h.cursor, likePattern(prefix))
	var id int64
	var text string
	if err := row.Scan(&id, &text); err != nil {
		return "", false
	}
	h.cursor = id
	return text, true
}

// Next steps to the following (newer) submission starting with prefix.
// Stepping past the newest match returns ("", false) and leaves recall mode.
func (h *HistoryStore) Next(prefix string) (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	row := h.db.QueryRow(
		`SELECT id, text FROM submissions
		  WHERE id > ?1 AND text LIKE ?2 ESCAPE '\'
		  ORDER BY id ASC LIMIT 1`,
		h.cursor, likePattern(prefix))
	var id int64
	var text string
	if err := row.Scan(&id, &text); err != nil {
		h.cursor = 0
		return "", false
	}
	h.cursor = id
	return text, true
}

// likePattern turns a literal prefix into a LIKE pattern, escaping the
// wildcard characters so user input matches itself.
func likePattern(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}
