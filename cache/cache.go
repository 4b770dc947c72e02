/*
Package cache implements a small sqlite database of converted images keyed
by the SHA1 of the source image, the conversion options and the output
format.
*/
package cache

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// DB is the conversion cache.
type DB struct {
	db *sql.DB
}

// New opens or creates the cache database in file.
func New(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS conversion (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, options TEXT NOT NULL, format TEXT NOT NULL, image BLOB NOT NULL, UNIQUE (sha1, options, format))"); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

// Find returns the cached image, or nil if there isn't one.
func (db *DB) Find(sha1, options, format string) ([]byte, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT image FROM conversion WHERE sha1 = ? AND options = ? AND format = ?", sha1, options, format).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return b, nil
	default:
		return nil, err
	}
}

// Store adds or replaces a cached image.
func (db *DB) Store(sha1, options, format string, b []byte) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO conversion (sha1, options, format, image) VALUES (?, ?, ?, ?)", sha1, options, format, b); err != nil {
		return err
	}
	return nil
}

// Len returns the number of cached images.
func (db *DB) Len() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM conversion").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Purge removes every cached image.
func (db *DB) Purge() error {
	_, err := db.db.Exec("DELETE FROM conversion")
	return err
}
