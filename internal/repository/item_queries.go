package repository

import (
	"context"
	"time"
)

const setItem = `
INSERT INTO items ("key", "value", "updated_at")
VALUES (?, ?, ?)
ON CONFLICT("key") DO UPDATE SET
	"value" = excluded."value",
	"updated_at" = excluded."updated_at"
`

// SetItem stores value under key in the plain key/value store
func (q *Queries) SetItem(ctx context.Context, key string, value string) error {
	_, err := q.db.ExecContext(ctx, setItem, key, value, time.Now().Unix())
	return err
}

const getItem = `
SELECT "value" FROM items
WHERE "key" = ?
`

func (q *Queries) GetItem(ctx context.Context, key string) (string, error) {
	row := q.db.QueryRowContext(ctx, getItem, key)
	var value string
	err := row.Scan(&value)
	return value, err
}

const deleteItem = `
DELETE FROM items
WHERE "key" = ?
`

func (q *Queries) DeleteItem(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, deleteItem, key)
	return err
}

const setSecureItem = `
INSERT INTO secure_items ("key", "value", "updated_at")
VALUES (?, ?, ?)
ON CONFLICT("key") DO UPDATE SET
	"value" = excluded."value",
	"updated_at" = excluded."updated_at"
`

// SetSecureItem stores value under key in the secure store, used for tokens
func (q *Queries) SetSecureItem(ctx context.Context, key string, value string) error {
	_, err := q.db.ExecContext(ctx, setSecureItem, key, value, time.Now().Unix())
	return err
}

const getSecureItem = `
SELECT "value" FROM secure_items
WHERE "key" = ?
`

func (q *Queries) GetSecureItem(ctx context.Context, key string) (string, error) {
	row := q.db.QueryRowContext(ctx, getSecureItem, key)
	var value string
	err := row.Scan(&value)
	return value, err
}

const deleteSecureItem = `
DELETE FROM secure_items
WHERE "key" = ?
`

func (q *Queries) DeleteSecureItem(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, deleteSecureItem, key)
	return err
}
