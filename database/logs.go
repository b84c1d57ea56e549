package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymlog/live"
	"gymlog/models"
)

// LogDAO is the query surface of the gym_logs collection.
type LogDAO struct {
	s *Store
}

func scanLog(row rowScanner) (models.LogEntry, error) {
	var (
		e    models.LogEntry
		date int64
	)
	if err := row.Scan(&e.ID, &e.Exercise, &e.Weight, &e.Reps, &date, &e.UserID); err != nil {
		return e, err
	}
	e.Date = time.UnixMicro(date)
	return e, nil
}

// Insert stores e and returns its identity. A non-zero ID replaces the
// existing row entirely.
func (d *LogDAO) Insert(ctx context.Context, e models.LogEntry) (int, error) {
	var id int64
	err := d.s.db.withTx(ctx, func(tx *sql.Tx) error {
		var (
			res sql.Result
			err error
		)
		if e.ID == 0 {
			res, err = tx.ExecContext(ctx, `
				INSERT INTO gym_logs (exercise, weight, reps, date, user_id)
				VALUES (?, ?, ?, ?, ?)
			`, e.Exercise, e.Weight, e.Reps, e.Date.UnixMicro(), e.UserID)
		} else {
			res, err = tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO gym_logs (id, exercise, weight, reps, date, user_id)
				VALUES (?, ?, ?, ?, ?, ?)
			`, e.ID, e.Exercise, e.Weight, e.Reps, e.Date.UnixMicro(), e.UserID)
		}
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("insert log: %w", err)
	}

	d.s.tracker.Notify(LogsTable)
	return int(id), nil
}

// GetAll returns every log, newest first.
func (d *LogDAO) GetAll(ctx context.Context) ([]models.LogEntry, error) {
	return d.query(ctx, `
		SELECT id, exercise, weight, reps, date, user_id
		FROM gym_logs
		ORDER BY date DESC, id DESC
	`)
}

// GetByUserID returns the logs of one user, newest first.
func (d *LogDAO) GetByUserID(ctx context.Context, userID int) ([]models.LogEntry, error) {
	return d.query(ctx, `
		SELECT id, exercise, weight, reps, date, user_id
		FROM gym_logs WHERE user_id = ?
		ORDER BY date DESC, id DESC
	`, userID)
}

func (d *LogDAO) GetByUserIDLive(userID int) *live.Value[[]models.LogEntry] {
	return newLiveQuery(d.s, "logs_by_user", func(ctx context.Context) ([]models.LogEntry, error) {
		return d.GetByUserID(ctx, userID)
	}, LogsTable)
}

func (d *LogDAO) query(ctx context.Context, query string, args ...any) ([]models.LogEntry, error) {
	rows, err := d.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	entries := []models.LogEntry{}
	for rows.Next() {
		e, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
