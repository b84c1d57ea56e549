package database

import (
	"context"
	"database/sql"
	"fmt"

	"gymlog/live"
	"gymlog/models"
)

// UserDAO is the query surface of the users collection.
type UserDAO struct {
	s *Store
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.IsAdmin)
	return u, err
}

// ==================== WRITES ====================

// Insert upserts users in one transaction and returns their identities in
// argument order. A zero ID gets a fresh identity.
func (d *UserDAO) Insert(ctx context.Context, users ...models.User) ([]int, error) {
	ids := make([]int, 0, len(users))
	err := d.s.db.withTx(ctx, func(tx *sql.Tx) error {
		for _, u := range users {
			id, err := upsertUser(ctx, tx, u)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert users: %w", err)
	}

	d.s.tracker.Notify(UsersTable)
	return ids, nil
}

func upsertUser(ctx context.Context, tx *sql.Tx, u models.User) (int, error) {
	var (
		res sql.Result
		err error
	)
	if u.ID == 0 {
		res, err = tx.ExecContext(ctx, `
			INSERT INTO users (username, password, is_admin)
			VALUES (?, ?, ?)
		`, u.Username, u.Password, u.IsAdmin)
	} else {
		res, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO users (id, username, password, is_admin)
			VALUES (?, ?, ?, ?)
		`, u.ID, u.Username, u.Password, u.IsAdmin)
	}
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// Delete removes the user with u's identity. Missing rows are not an error.
func (d *UserDAO) Delete(ctx context.Context, u models.User) error {
	if _, err := d.s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, u.ID); err != nil {
		return fmt.Errorf("delete user %d: %w", u.ID, err)
	}
	d.s.tracker.Notify(UsersTable)
	return nil
}

// DeleteAll clears the users collection.
func (d *UserDAO) DeleteAll(ctx context.Context) error {
	if _, err := d.s.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("delete all users: %w", err)
	}
	d.s.tracker.Notify(UsersTable)
	return nil
}

// ==================== READS ====================

// GetAll returns every user ordered by username.
func (d *UserDAO) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := d.s.db.QueryContext(ctx, `
		SELECT id, username, password, is_admin
		FROM users
		ORDER BY username ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (d *UserDAO) GetAllLive() *live.Value[[]models.User] {
	return newLiveQuery(d.s, "users", d.GetAll, UsersTable)
}

// FindByUsername returns the lowest-id user with that username, or nil.
func (d *UserDAO) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	row := d.s.db.QueryRowContext(ctx, `
		SELECT id, username, password, is_admin
		FROM users WHERE username = ?
		ORDER BY id ASC LIMIT 1
	`, username)
	return oneUser(row)
}

// FindByID returns the user with that identity, or nil.
func (d *UserDAO) FindByID(ctx context.Context, id int) (*models.User, error) {
	row := d.s.db.QueryRowContext(ctx, `
		SELECT id, username, password, is_admin
		FROM users WHERE id = ?
	`, id)
	return oneUser(row)
}

func oneUser(row *sql.Row) (*models.User, error) {
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *UserDAO) GetByUsername(username string) *live.Value[*models.User] {
	return newLiveQuery(d.s, "user_by_username", func(ctx context.Context) (*models.User, error) {
		return d.FindByUsername(ctx, username)
	}, UsersTable)
}

func (d *UserDAO) GetByUserID(id int) *live.Value[*models.User] {
	return newLiveQuery(d.s, "user_by_id", func(ctx context.Context) (*models.User, error) {
		return d.FindByID(ctx, id)
	}, UsersTable)
}
