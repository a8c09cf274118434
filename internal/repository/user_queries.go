package repository

import (
	"context"
	"time"

	"github.com/steveiliop56/tinynotion/internal/model"
)

const storeUserData = `
INSERT INTO users ("id", "name", "email", "image", "created_at", "updated_at")
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT("id") DO UPDATE SET
	"name" = excluded."name",
	"email" = excluded."email",
	"image" = excluded."image",
	"updated_at" = excluded."updated_at"
`

// StoreUserData upserts the user record keyed by userID
func (q *Queries) StoreUserData(ctx context.Context, userID string, user model.User) error {
	now := time.Now().Unix()
	_, err := q.db.ExecContext(ctx, storeUserData,
		userID,
		user.Name,
		user.Email,
		user.Image,
		now,
		now,
	)
	return err
}

const getUserData = `
SELECT "id", "name", "email", "image" FROM users
WHERE "id" = ?
`

func (q *Queries) GetUserData(ctx context.Context, userID string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, getUserData, userID)
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Image,
	)
	return user, err
}

const deleteUserData = `
DELETE FROM users
WHERE "id" = ?
`

func (q *Queries) DeleteUserData(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, deleteUserData, userID)
	return err
}
