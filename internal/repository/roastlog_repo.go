package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"coffee_roaster"

	"github.com/google/uuid"
)

type RoastLogSQLite struct {
	db *sql.DB
}

func NewRoastLogSQLite(db *sql.DB) *RoastLogSQLite { return &RoastLogSQLite{db: db} }

const (
	insertLogSQL = `
		INSERT INTO roast_logs (id, ts, date, name, profile, notes, duration, data, markers, crack_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectLogColumns = `id, ts, date, name, profile, notes, duration, data, markers, crack_status`
)

// Save inserts a new record, assigning a fresh id. The id is owned by
// the store; any id on the input is ignored.
func (r *RoastLogSQLite) Save(ctx context.Context, log coffee_roaster.RoastLog) (string, error) {
	log.ID = uuid.NewString()

	dataJSON, err := json.Marshal(log.Data)
	if err != nil {
		return "", fmt.Errorf("marshal data points: %w", err)
	}
	markersJSON, err := json.Marshal(log.Markers)
	if err != nil {
		return "", fmt.Errorf("marshal markers: %w", err)
	}
	crackJSON, err := json.Marshal(log.CrackStatus)
	if err != nil {
		return "", fmt.Errorf("marshal crack status: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertLogSQL,
		log.ID,
		log.Timestamp,
		log.Date,
		log.Name,
		log.Profile,
		log.Notes,
		log.Duration,
		string(dataJSON),
		string(markersJSON),
		string(crackJSON),
	)
	if err != nil {
		return "", err
	}
	return log.ID, nil
}

// List returns all saved roasts, newest first.
func (r *RoastLogSQLite) List(ctx context.Context) ([]coffee_roaster.RoastLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectLogColumns+` FROM roast_logs ORDER BY ts DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]coffee_roaster.RoastLog, 0, 16)
	for rows.Next() {
		log, err := scanLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one record by id; (nil, nil) when not found.
func (r *RoastLogSQLite) Get(ctx context.Context, id string) (*coffee_roaster.RoastLog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectLogColumns+` FROM roast_logs WHERE id = ?`, id)
	log, err := scanLog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// Delete removes one record and reports whether a row was affected.
func (r *RoastLogSQLite) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roast_logs WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// scanLog reads one row, decoding the JSON columns. Malformed nested
// JSON fails the scan rather than returning a half-decoded record.
func scanLog(scan func(...any) error) (coffee_roaster.RoastLog, error) {
	var (
		log                   coffee_roaster.RoastLog
		notes, markers, crack sql.NullString
		dataJSON              string
	)
	if err := scan(
		&log.ID,
		&log.Timestamp,
		&log.Date,
		&log.Name,
		&log.Profile,
		&notes,
		&log.Duration,
		&dataJSON,
		&markers,
		&crack,
	); err != nil {
		return coffee_roaster.RoastLog{}, err
	}
	log.Notes = notes.String

	if err := json.Unmarshal([]byte(dataJSON), &log.Data); err != nil {
		return coffee_roaster.RoastLog{}, fmt.Errorf("decode data points for %s: %w", log.ID, err)
	}
	if markers.Valid && markers.String != "" {
		if err := json.Unmarshal([]byte(markers.String), &log.Markers); err != nil {
			return coffee_roaster.RoastLog{}, fmt.Errorf("decode markers for %s: %w", log.ID, err)
		}
	}
	if crack.Valid && crack.String != "" {
		if err := json.Unmarshal([]byte(crack.String), &log.CrackStatus); err != nil {
			return coffee_roaster.RoastLog{}, fmt.Errorf("decode crack status for %s: %w", log.ID, err)
		}
	}
	return log, nil
}
