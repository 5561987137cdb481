package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

const schemaRoastLogs = `
CREATE TABLE IF NOT EXISTS roast_logs (
    id TEXT PRIMARY KEY,
    ts REAL NOT NULL,
    date TEXT NOT NULL,
    name TEXT NOT NULL,
    profile TEXT NOT NULL,
    notes TEXT,
    duration REAL NOT NULL,
    data TEXT NOT NULL,
    markers TEXT,
    crack_status TEXT
);
`

// InitDB opens/creates the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	d, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite handles a single writer best
	d.SetMaxOpenConns(1)
	d.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := d.Exec(pragma); err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := d.Exec(schemaRoastLogs); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("apply roast_logs schema: %w", err)
	}

	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return d, nil
}
